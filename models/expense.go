package models

import "time"

// Expense represents a property upkeep cost.
type Expense struct {
	ID          int       `json:"id"`
	PropertyID  *int      `json:"property_id"`
	Category    string    `json:"category"`
	Amount      Money     `json:"amount"`
	ExpenseDate *string   `json:"expense_date"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// Computed fields
	PropertyName *string `json:"property_name,omitempty"`
}

// ExpenseInput is used for creating/updating expenses.
type ExpenseInput struct {
	PropertyID  *int    `json:"property_id"`
	Category    string  `json:"category"`
	Amount      Money   `json:"amount"`
	ExpenseDate *string `json:"expense_date"`
	Notes       *string `json:"notes"`
}

func (e *ExpenseInput) Validate() string {
	if e.Category == "" {
		return "category is required"
	}
	if e.Amount < 0 {
		return "amount must be non-negative"
	}
	return ""
}
