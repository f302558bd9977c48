package ledger

import (
	"fmt"

	"rentdesk/models"
)

// StatusUpdate is a fully-validated request to move one rent record.
// Amount is the incoming payment for paid/partial requests; a paid request
// with a zero amount settles whatever is still due.
type StatusUpdate struct {
	Status        string
	Amount        models.Money
	PaymentMethod *string
	PaidDate      *string
}

// ChronologyError rejects a settlement out of chronological order: an
// earlier month for the same tenant is still pending. The caller surfaces
// it to the user; nothing was mutated.
type ChronologyError struct {
	Month  string
	Year   int
	Status string
}

func (e *ChronologyError) Error() string {
	return fmt.Sprintf("%s %d is still %s and must be settled first", e.Month, e.Year, e.Status)
}

// ApplyUpdate runs the payment state machine for one record and returns its
// new state. The full ledger snapshot is consulted only for the
// chronological guard; no other record is read or written.
//
// Transitions: unpaid→paid, unpaid→partial, partial→partial (amend),
// partial→paid (completion), and any state back to unpaid. Completing a
// partial record bypasses the guard; the month already cleared it when the
// first installment was accepted.
func ApplyUpdate(rec models.RentPayment, req StatusUpdate, all []models.RentPayment) (models.RentPayment, error) {
	if req.Status == models.RentUnpaid {
		return reset(rec), nil
	}

	completing := rec.Status == models.RentPartial && req.Status == models.RentPaid
	if !completing {
		if b := earliestPending(rec, all); b != nil {
			return rec, &ChronologyError{Month: b.Month, Year: b.Year, Status: b.Status}
		}
	}

	totalDue := rec.Amount
	if rec.OriginalAmount != nil {
		totalDue = *rec.OriginalAmount
	}
	remainingBefore := totalDue
	switch rec.Status {
	case models.RentPartial:
		remainingBefore = rec.RemainingDue
	case models.RentPaid:
		remainingBefore = 0
	}
	previouslyPaid := totalDue - remainingBefore

	incoming := req.Amount
	if req.Status == models.RentPaid && incoming == 0 {
		incoming = remainingBefore
	}

	totalPaid := previouslyPaid + incoming
	remaining := totalDue - totalPaid
	if remaining < 0 {
		remaining = 0
	}

	switch {
	case totalPaid >= totalDue:
		rec.Status = models.RentPaid
		rec.Amount = totalDue // overpay clamps to the original due
		rec.OriginalAmount = nil
		rec.RemainingDue = 0
	case totalPaid > 0:
		rec.Status = models.RentPartial
		rec.Amount = totalPaid
		orig := totalDue
		rec.OriginalAmount = &orig
		rec.RemainingDue = remaining
	default:
		return reset(rec), nil
	}

	rec.PaymentMethod = req.PaymentMethod
	rec.PaidDate = req.PaidDate
	return rec, nil
}

// reset reverts a record to unpaid, restoring the pristine due amount and
// clearing all payment bookkeeping.
func reset(rec models.RentPayment) models.RentPayment {
	if rec.OriginalAmount != nil {
		rec.Amount = *rec.OriginalAmount
	}
	rec.Status = models.RentUnpaid
	rec.OriginalAmount = nil
	rec.RemainingDue = 0
	rec.PaymentMethod = nil
	rec.PaidDate = nil
	return rec
}

// earliestPending finds the oldest unpaid/partial record for the same tenant
// (narrowed to the same lease) in a month strictly before rec's. Nil when
// the record is clear to settle.
func earliestPending(rec models.RentPayment, all []models.RentPayment) *models.RentPayment {
	target := monthKey(rec.Year, rec.Month)
	var blocker *models.RentPayment
	blockerKey := 0
	for i := range all {
		other := &all[i]
		if other.ID == rec.ID || other.TenantID != rec.TenantID {
			continue
		}
		if rec.LeaseID != 0 && other.LeaseID != rec.LeaseID {
			continue
		}
		if other.Status != models.RentUnpaid && other.Status != models.RentPartial {
			continue
		}
		k := monthKey(other.Year, other.Month)
		if k >= target {
			continue
		}
		if blocker == nil || k < blockerKey {
			blocker, blockerKey = other, k
		}
	}
	return blocker
}
