package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		input PropertyInput
		want  string
	}{
		{"valid", PropertyInput{Name: "Shanti Niwas", TotalFlats: 6}, ""},
		{"missing name", PropertyInput{TotalFlats: 6}, "name is required"},
		{"zero flats", PropertyInput{Name: "Shanti Niwas"}, "total_flats must be positive"},
		{"negative flats", PropertyInput{Name: "Shanti Niwas", TotalFlats: -1}, "total_flats must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.Validate())
		})
	}
}

func TestTenantInputValidate(t *testing.T) {
	valid := TenantInput{Name: "Ramesh Kumar"}
	assert.Empty(t, valid.Validate())

	empty := TenantInput{}
	assert.Equal(t, "name is required", empty.Validate())
}

func TestLeaseInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		input LeaseInput
		want  string
	}{
		{"valid", LeaseInput{TenantID: 1, PropertyID: 1, MonthlyRent: 1500000, Units: 2, Status: LeaseActive}, ""},
		{"missing tenant", LeaseInput{PropertyID: 1}, "tenant_id is required"},
		{"missing property", LeaseInput{TenantID: 1}, "property_id is required"},
		{"negative rent", LeaseInput{TenantID: 1, PropertyID: 1, MonthlyRent: -1}, "monthly_rent must be non-negative"},
		{"negative units", LeaseInput{TenantID: 1, PropertyID: 1, Units: -2}, "units must be non-negative"},
		{"bad status", LeaseInput{TenantID: 1, PropertyID: 1, Status: "paused"}, "status must be one of: active, expired, terminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.Validate())
		})
	}
}

func TestLeaseInputValidateDefaults(t *testing.T) {
	input := LeaseInput{TenantID: 1, PropertyID: 1}
	assert.Empty(t, input.Validate())
	assert.Equal(t, 1, input.Units, "zero units should default to one")
	assert.Equal(t, LeaseActive, input.Status, "empty status should default to active")
}

func TestRentStatusInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		input RentStatusInput
		want  string
	}{
		{"paid", RentStatusInput{Status: RentPaid}, ""},
		{"paid with amount", RentStatusInput{Status: RentPaid, Amount: 1000000}, ""},
		{"partial with amount", RentStatusInput{Status: RentPartial, Amount: 400000}, ""},
		{"reset to unpaid", RentStatusInput{Status: RentUnpaid}, ""},
		{"unknown status", RentStatusInput{Status: "pending"}, "status must be one of: unpaid, partial, paid"},
		{"negative amount", RentStatusInput{Status: RentPaid, Amount: -100}, "amount must be non-negative"},
		{"partial without amount", RentStatusInput{Status: RentPartial}, "amount is required for partial payments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.Validate())
		})
	}
}

func TestExpenseInputValidate(t *testing.T) {
	valid := ExpenseInput{Category: "repairs", Amount: 250000}
	assert.Empty(t, valid.Validate())

	noCategory := ExpenseInput{Amount: 250000}
	assert.Equal(t, "category is required", noCategory.Validate())

	negative := ExpenseInput{Category: "repairs", Amount: -1}
	assert.Equal(t, "amount must be non-negative", negative.Validate())
}

func TestDocumentInputValidate(t *testing.T) {
	valid := DocumentInput{EntityType: "lease", EntityID: 3, Name: "agreement.pdf"}
	assert.Empty(t, valid.Validate())

	badType := DocumentInput{EntityType: "invoice", EntityID: 3, Name: "x"}
	assert.Equal(t, "entity_type must be one of: property, tenant, lease", badType.Validate())

	noEntity := DocumentInput{EntityType: "tenant", Name: "x"}
	assert.Equal(t, "entity_id is required", noEntity.Validate())

	noName := DocumentInput{EntityType: "tenant", EntityID: 3}
	assert.Equal(t, "name is required", noName.Validate())
}
