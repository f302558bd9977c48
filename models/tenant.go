package models

import "time"

// Tenant represents a renter.
type Tenant struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Computed fields
	Outstanding Money `json:"outstanding"` // unpaid amounts plus partial remainders
}

// TenantInput is used for creating/updating tenants.
type TenantInput struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

func (t *TenantInput) Validate() string {
	if t.Name == "" {
		return "name is required"
	}
	return ""
}
