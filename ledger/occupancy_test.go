package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentdesk/models"
)

func strp(s string) *string { return &s }

func testToday() time.Time {
	return time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
}

func activeLease(id, propertyID, units int) models.Lease {
	return models.Lease{
		ID:         id,
		TenantID:   id,
		PropertyID: propertyID,
		StartDate:  strp("2024-01-01"),
		EndDate:    strp("2026-12-31"),
		Units:      units,
		Status:     models.LeaseActive,
	}
}

func TestOccupancyConservation(t *testing.T) {
	p := models.Property{ID: 1, TotalFlats: 10}
	leases := []models.Lease{
		activeLease(1, 1, 2),
		activeLease(2, 1, 4),
	}

	assert.Equal(t, 6, OccupiedUnits(p, leases, testToday()))
	assert.Equal(t, 4, VacantUnits(p, leases, testToday()))

	// A terminated lease changes nothing.
	terminated := activeLease(3, 1, 3)
	terminated.Status = models.LeaseTerminated
	leases = append(leases, terminated)

	assert.Equal(t, 6, OccupiedUnits(p, leases, testToday()))
	assert.Equal(t, 4, VacantUnits(p, leases, testToday()))
}

func TestVacancyFloorsAtZero(t *testing.T) {
	p := models.Property{ID: 1, TotalFlats: 2}
	leases := []models.Lease{
		activeLease(1, 1, 2),
		activeLease(2, 1, 1),
	}

	// Oversell stays visible in occupied, vacancy floors at zero.
	assert.Equal(t, 3, OccupiedUnits(p, leases, testToday()))
	assert.Equal(t, 0, VacantUnits(p, leases, testToday()))
}

func TestOccupancyDefaultsAndFilters(t *testing.T) {
	p := models.Property{ID: 1, TotalFlats: 5}

	noUnits := activeLease(1, 1, 0) // absent units count as 1
	noStatus := activeLease(2, 1, 1)
	noStatus.Status = "" // unset status is treated as active
	ended := activeLease(3, 1, 2)
	ended.EndDate = strp("2025-01-31")
	otherProperty := activeLease(4, 2, 2)
	noEndDate := activeLease(5, 1, 2)
	noEndDate.EndDate = nil

	leases := []models.Lease{noUnits, noStatus, ended, otherProperty, noEndDate}
	assert.Equal(t, 2, OccupiedUnits(p, leases, testToday()))
}

func TestAvailableUnitsExcludesEditedLease(t *testing.T) {
	p := models.Property{ID: 1, TotalFlats: 10}
	leases := []models.Lease{
		activeLease(1, 1, 6),
		activeLease(2, 1, 3),
	}

	// Creating: only one unit left.
	assert.Equal(t, 1, AvailableUnits(p, leases, 0, testToday()))
	// Editing lease 1: its own six units are available to it.
	assert.Equal(t, 7, AvailableUnits(p, leases, 1, testToday()))
}

func TestEndDateBoundaryIsInclusive(t *testing.T) {
	l := activeLease(1, 1, 1)
	l.EndDate = strp("2025-03-15")
	assert.True(t, EffectivelyActive(l, testToday()))

	l.EndDate = strp("2025-03-14")
	assert.False(t, EffectivelyActive(l, testToday()))
}
