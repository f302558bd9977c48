package models

import "time"

// Lease status values. An empty status is treated as active.
const (
	LeaseActive     = "active"
	LeaseExpired    = "expired"
	LeaseTerminated = "terminated"
)

// Lease represents a tenancy agreement for one or more units of a property.
type Lease struct {
	ID          int       `json:"id"`
	TenantID    int       `json:"tenant_id"`
	PropertyID  int       `json:"property_id"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	MonthlyRent Money     `json:"monthly_rent"`
	Units       int       `json:"units"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// Computed fields
	TenantName   *string `json:"tenant_name,omitempty"`
	PropertyName *string `json:"property_name,omitempty"`
}

// LeaseInput is used for creating/updating leases.
type LeaseInput struct {
	TenantID    int     `json:"tenant_id"`
	PropertyID  int     `json:"property_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	MonthlyRent Money   `json:"monthly_rent"`
	Units       int     `json:"units"`
	Status      string  `json:"status"`
}

func (l *LeaseInput) Validate() string {
	if l.TenantID <= 0 {
		return "tenant_id is required"
	}
	if l.PropertyID <= 0 {
		return "property_id is required"
	}
	if l.MonthlyRent < 0 {
		return "monthly_rent must be non-negative"
	}
	if l.Units < 0 {
		return "units must be non-negative"
	}
	if l.Units == 0 {
		l.Units = 1
	}
	switch l.Status {
	case "", LeaseActive, LeaseExpired, LeaseTerminated:
	default:
		return "status must be one of: active, expired, terminated"
	}
	if l.Status == "" {
		l.Status = LeaseActive
	}
	return ""
}
