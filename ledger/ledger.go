// Package ledger derives and settles monthly rent obligations.
//
// It has three parts: an occupancy calculator over active leases, a due
// generator that synthesizes missing monthly obligation rows, and a payment
// state machine that moves rows between unpaid, partial, and paid. All three
// are pure functions over in-memory snapshots; Service owns the
// read-snapshot/write-back cycle through a Repository.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentdesk/models"
)

const dateLayout = "2006-01-02"

// rentNamespace seeds the deterministic UUIDv5 IDs of generated rows.
var rentNamespace = uuid.MustParse("5f9d3b2e-6c4a-4f1b-9e8d-2a7c5b1d0e3f")

// PaymentID derives the deterministic record ID for a tenant's rent
// obligation in a given month. Regenerating the same tuple always yields
// the same ID, which is what makes due generation idempotent.
func PaymentID(tenantID, leaseID, year int, month string) string {
	key := fmt.Sprintf("%d/%d/%d/%s", tenantID, leaseID, year, month)
	return uuid.NewSHA1(rentNamespace, []byte(key)).String()
}

func parseDate(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// monthIndex maps a calendar month name to 1..12, or 0 when unknown.
func monthIndex(name string) int {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return int(m)
		}
	}
	return 0
}

// monthKey orders (year, month) pairs on a single axis.
func monthKey(year int, month string) int {
	return year*12 + monthIndex(month) - 1
}

// EffectivelyActive reports whether a lease is live on the given day:
// status active (or unset) and an end date that has not passed. A lease
// whose end date is missing or unparseable is not considered active.
func EffectivelyActive(l models.Lease, today time.Time) bool {
	if l.Status != "" && l.Status != models.LeaseActive {
		return false
	}
	end, ok := parseDate(l.EndDate)
	if !ok {
		return false
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return !endDay.Before(day)
}

func leaseUnits(l models.Lease) int {
	if l.Units <= 0 {
		return 1
	}
	return l.Units
}
