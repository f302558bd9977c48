package models

import "time"

// Property represents a rental building with a fixed number of flats.
type Property struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Address    *string   `json:"address"`
	TotalFlats int       `json:"total_flats"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// Computed fields
	OccupiedUnits int `json:"occupied_units"`
	VacantUnits   int `json:"vacant_units"`
}

// PropertyInput is used for creating/updating properties.
type PropertyInput struct {
	Name       string  `json:"name"`
	Address    *string `json:"address"`
	TotalFlats int     `json:"total_flats"`
	Notes      *string `json:"notes"`
}

func (p *PropertyInput) Validate() string {
	if p.Name == "" {
		return "name is required"
	}
	if p.TotalFlats <= 0 {
		return "total_flats must be positive"
	}
	return ""
}
