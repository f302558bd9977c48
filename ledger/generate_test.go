package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/models"
)

func TestGenerateCompleteness(t *testing.T) {
	// Lease from January 2024, today mid-March 2025: exactly 14 rows,
	// January 2024 through February 2025, nothing for the running month.
	lease := activeLease(1, 1, 1)
	lease.StartDate = strp("2024-01-10")
	lease.MonthlyRent = 150000

	payments, added := Generate([]models.Lease{lease}, nil, testToday())
	require.Equal(t, 14, added)
	require.Len(t, payments, 14)

	first, last := payments[0], payments[13]
	assert.Equal(t, "January", first.Month)
	assert.Equal(t, 2024, first.Year)
	assert.Equal(t, "February", last.Month)
	assert.Equal(t, 2025, last.Year)

	for _, p := range payments {
		assert.Equal(t, models.RentUnpaid, p.Status)
		assert.Equal(t, models.Money(150000), p.Amount)
		assert.Equal(t, PaymentID(p.TenantID, p.LeaseID, p.Year, p.Month), p.ID)
	}

	// Rent for January 2024 falls due on the 5th of February 2024.
	require.NotNil(t, first.DueDate)
	assert.Equal(t, "2024-02-05", *first.DueDate)
}

func TestGenerateIsIdempotent(t *testing.T) {
	lease := activeLease(1, 1, 1)
	lease.StartDate = strp("2024-06-01")

	payments, added := Generate([]models.Lease{lease}, nil, testToday())
	require.Equal(t, 9, added)

	again, added := Generate([]models.Lease{lease}, payments, testToday())
	assert.Equal(t, 0, added)
	assert.Len(t, again, 9)
}

func TestGenerateSkipsLeaseWithNoCompletedMonths(t *testing.T) {
	lease := activeLease(1, 1, 1)
	lease.StartDate = strp("2025-03-01") // starts in the running month

	_, added := Generate([]models.Lease{lease}, nil, testToday())
	assert.Equal(t, 0, added)
}

func TestGenerateStopsAtLeaseEnd(t *testing.T) {
	lease := activeLease(1, 1, 1)
	lease.StartDate = strp("2024-11-01")
	lease.EndDate = strp("2025-12-15")

	// Today far past the lease end: rows stop at the end month.
	today := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, added := Generate([]models.Lease{lease}, nil, today)
	assert.Equal(t, 0, added, "expired lease is no longer effectively active")

	// While still active, generation runs up to the last completed month only.
	payments, added := Generate([]models.Lease{lease}, nil, testToday())
	require.Equal(t, 4, added) // Nov, Dec 2024, Jan, Feb 2025
	assert.Equal(t, "February", payments[3].Month)
}

func TestGenerateJanuaryRollsBackToDecember(t *testing.T) {
	lease := activeLease(1, 1, 1)
	lease.StartDate = strp("2024-11-20")

	today := time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)
	payments, added := Generate([]models.Lease{lease}, nil, today)
	require.Equal(t, 2, added)
	assert.Equal(t, "November", payments[0].Month)
	assert.Equal(t, "December", payments[1].Month)
	assert.Equal(t, 2024, payments[1].Year)
}

func TestGenerateDegradesOnBadInput(t *testing.T) {
	malformedStart := activeLease(1, 1, 1)
	malformedStart.StartDate = strp("soon")

	terminated := activeLease(2, 1, 1)
	terminated.StartDate = strp("2024-01-01")
	terminated.Status = models.LeaseTerminated

	missingStart := activeLease(3, 1, 1)
	missingStart.StartDate = nil // falls back to today's month: nothing completed yet

	fine := activeLease(4, 1, 1)
	fine.StartDate = strp("2025-01-01")

	payments, added := Generate(
		[]models.Lease{malformedStart, terminated, missingStart, fine}, nil, testToday())
	require.Equal(t, 2, added, "only the well-formed lease generates")
	for _, p := range payments {
		assert.Equal(t, 4, p.LeaseID)
	}
}
