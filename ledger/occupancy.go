package ledger

import (
	"time"

	"rentdesk/models"
)

// OccupiedUnits sums the units of effectively-active leases on the property.
// The result is deliberately not clamped to total_flats: an oversell in the
// data shows up as occupancy above capacity instead of being hidden.
func OccupiedUnits(p models.Property, leases []models.Lease, today time.Time) int {
	occupied := 0
	for _, l := range leases {
		if l.PropertyID != p.ID {
			continue
		}
		if !EffectivelyActive(l, today) {
			continue
		}
		occupied += leaseUnits(l)
	}
	return occupied
}

// VacantUnits is the property's spare capacity, floored at zero.
func VacantUnits(p models.Property, leases []models.Lease, today time.Time) int {
	vacant := p.TotalFlats - OccupiedUnits(p, leases, today)
	if vacant < 0 {
		return 0
	}
	return vacant
}

// AvailableUnits is the capacity left for a new or edited lease. Units held
// by excludeLeaseID are counted as available so that editing a lease does
// not block on its own allocation; pass 0 when creating.
func AvailableUnits(p models.Property, leases []models.Lease, excludeLeaseID int, today time.Time) int {
	occupied := 0
	for _, l := range leases {
		if l.PropertyID != p.ID || l.ID == excludeLeaseID {
			continue
		}
		if !EffectivelyActive(l, today) {
			continue
		}
		occupied += leaseUnits(l)
	}
	available := p.TotalFlats - occupied
	if available < 0 {
		return 0
	}
	return available
}
