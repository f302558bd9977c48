package models

import "time"

// Document is metadata for a stored file (lease copy, receipt, ID proof).
// The file itself lives wherever file_url points; only the reference is kept.
type Document struct {
	ID         int       `json:"id"`
	EntityType string    `json:"entity_type"` // property, tenant, lease
	EntityID   int       `json:"entity_id"`
	Name       string    `json:"name"`
	FileURL    *string   `json:"file_url"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DocumentInput is used for creating/updating documents.
type DocumentInput struct {
	EntityType string  `json:"entity_type"`
	EntityID   int     `json:"entity_id"`
	Name       string  `json:"name"`
	FileURL    *string `json:"file_url"`
	Notes      *string `json:"notes"`
}

func (d *DocumentInput) Validate() string {
	switch d.EntityType {
	case "property", "tenant", "lease":
	default:
		return "entity_type must be one of: property, tenant, lease"
	}
	if d.EntityID <= 0 {
		return "entity_id is required"
	}
	if d.Name == "" {
		return "name is required"
	}
	return ""
}
