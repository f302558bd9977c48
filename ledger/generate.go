package ledger

import (
	"time"

	"rentdesk/models"
)

// Generate scans effectively-active leases and appends any missing monthly
// obligation rows up to the last fully elapsed calendar month. Existing
// (tenant, lease, month, year) tuples are never touched, so running it on
// every data load is safe. A lease with an unusable start date simply
// produces nothing; the rest of the batch still generates.
//
// Rent for month M falls due on the 5th of M+1.
func Generate(leases []models.Lease, payments []models.RentPayment, today time.Time) ([]models.RentPayment, int) {
	// Month strictly before today's; December of the prior year in January.
	lastCompleted := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	existing := make(map[string]struct{}, len(payments))
	for _, p := range payments {
		existing[PaymentID(p.TenantID, p.LeaseID, p.Year, p.Month)] = struct{}{}
	}

	added := 0
	for _, l := range leases {
		if !EffectivelyActive(l, today) {
			continue
		}
		end, ok := parseDate(l.EndDate)
		if !ok {
			continue
		}

		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		if s, ok := parseDate(l.StartDate); ok {
			start = time.Date(s.Year(), s.Month(), 1, 0, 0, 0, 0, time.UTC)
		} else if l.StartDate != nil && *l.StartDate != "" {
			// Malformed start date: skip this lease rather than fail the batch.
			continue
		}

		endMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
		if lastCompleted.Before(endMonth) {
			endMonth = lastCompleted
		}

		for cur := start; !cur.After(endMonth); cur = cur.AddDate(0, 1, 0) {
			id := PaymentID(l.TenantID, l.ID, cur.Year(), cur.Month().String())
			if _, ok := existing[id]; ok {
				continue
			}
			due := cur.AddDate(0, 1, 4).Format(dateLayout)
			payments = append(payments, models.RentPayment{
				ID:         id,
				TenantID:   l.TenantID,
				LeaseID:    l.ID,
				PropertyID: l.PropertyID,
				Month:      cur.Month().String(),
				Year:       cur.Year(),
				Amount:     l.MonthlyRent,
				Status:     models.RentUnpaid,
				DueDate:    &due,
			})
			existing[id] = struct{}{}
			added++
		}
	}
	return payments, added
}
