package models

import "time"

// Rent record status values.
const (
	RentUnpaid  = "unpaid"
	RentPartial = "partial"
	RentPaid    = "paid"
)

// RentPayment is one tenant's rent obligation for one calendar month.
// Generated rows carry a deterministic ID derived from
// (tenant_id, lease_id, year, month) so regeneration never duplicates them.
//
// Amount holds the full due while unpaid, the total paid so far while
// partial, and the settled total once paid. OriginalAmount is set only
// while partial and freezes the pristine due; RemainingDue is zero in
// every state except partial.
type RentPayment struct {
	ID             string    `json:"id"`
	TenantID       int       `json:"tenant_id"`
	LeaseID        int       `json:"lease_id"`
	PropertyID     int       `json:"property_id"`
	Month          string    `json:"month"` // calendar month name, e.g. "January"
	Year           int       `json:"year"`
	Amount         Money     `json:"amount"`
	Status         string    `json:"status"`
	DueDate        *string   `json:"due_date"`
	PaymentMethod  *string   `json:"payment_method"`
	PaidDate       *string   `json:"paid_date"`
	OriginalAmount *Money    `json:"original_amount"`
	RemainingDue   Money     `json:"remaining_due"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	// Computed fields
	TenantName   *string `json:"tenant_name,omitempty"`
	PropertyName *string `json:"property_name,omitempty"`
}

// RentStatusInput is the payload for a rent status change.
// Amount is the incoming payment amount for paid/partial requests; when
// zero on a paid request, the caller settles the full remaining due.
type RentStatusInput struct {
	Status        string  `json:"status"`
	Amount        Money   `json:"amount"`
	PaymentMethod *string `json:"payment_method"`
	PaidDate      *string `json:"paid_date"`
}

func (r *RentStatusInput) Validate() string {
	switch r.Status {
	case RentUnpaid, RentPartial, RentPaid:
	default:
		return "status must be one of: unpaid, partial, paid"
	}
	if r.Amount < 0 {
		return "amount must be non-negative"
	}
	if r.Status == RentPartial && r.Amount == 0 {
		return "amount is required for partial payments"
	}
	return ""
}
