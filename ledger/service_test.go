package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/models"
)

// fakeRepo keeps the ledger in memory and counts writes.
type fakeRepo struct {
	leases   []models.Lease
	payments []models.RentPayment
	inserts  int
	updates  int
}

func (f *fakeRepo) Leases() ([]models.Lease, error) { return f.leases, nil }

func (f *fakeRepo) Payments() ([]models.RentPayment, error) { return f.payments, nil }

func (f *fakeRepo) InsertPayments(recs []models.RentPayment) error {
	f.payments = append(f.payments, recs...)
	f.inserts++
	return nil
}

func (f *fakeRepo) UpdatePayment(rec models.RentPayment) error {
	f.updates++
	for i := range f.payments {
		if f.payments[i].ID == rec.ID {
			f.payments[i] = rec
			return nil
		}
	}
	return ErrRecordNotFound
}

func (f *fakeRepo) DeleteUnpaidForLease(leaseID int) (int64, error) {
	var kept []models.RentPayment
	var n int64
	for _, p := range f.payments {
		if p.LeaseID == leaseID && p.Status == models.RentUnpaid {
			n++
			continue
		}
		kept = append(kept, p)
	}
	f.payments = kept
	return n, nil
}

func newTestService(repo *fakeRepo) *Service {
	s := NewService(repo)
	s.now = testToday
	return s
}

func TestServiceSyncDues(t *testing.T) {
	lease := activeLease(1, 1, 1)
	lease.StartDate = strp("2025-01-01")
	repo := &fakeRepo{leases: []models.Lease{lease}}
	svc := newTestService(repo)

	added, err := svc.SyncDues()
	require.NoError(t, err)
	assert.Equal(t, 2, added) // January and February 2025
	assert.Len(t, repo.payments, 2)

	// Re-running against the persisted snapshot writes nothing.
	added, err = svc.SyncDues()
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, repo.inserts)
}

func TestServiceSetStatus(t *testing.T) {
	jan := rentRecord(1, 1, "January", 2025, 1000, models.RentUnpaid)
	feb := rentRecord(1, 1, "February", 2025, 1000, models.RentUnpaid)
	repo := &fakeRepo{payments: []models.RentPayment{jan, feb}}
	svc := newTestService(repo)

	// Guard rejection reaches the caller and nothing is written.
	_, err := svc.SetStatus(feb.ID, payReq(models.RentPaid, 0))
	var cerr *ChronologyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, repo.updates)

	updated, err := svc.SetStatus(jan.ID, payReq(models.RentPaid, 0))
	require.NoError(t, err)
	assert.Equal(t, models.RentPaid, updated.Status)
	assert.Equal(t, 1, repo.updates)

	// February is clear once January settles.
	_, err = svc.SetStatus(feb.ID, payReq(models.RentPaid, 0))
	require.NoError(t, err)
}

func TestServiceSetStatusUnknownID(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	_, err := svc.SetStatus("nope", payReq(models.RentPaid, 0))
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestServicePurgeUnpaid(t *testing.T) {
	jan := rentRecord(1, 1, "January", 2025, 1000, models.RentPaid)
	feb := rentRecord(1, 1, "February", 2025, 1000, models.RentUnpaid)
	repo := &fakeRepo{payments: []models.RentPayment{jan, feb}}
	svc := newTestService(repo)

	n, err := svc.PurgeUnpaid(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.Len(t, repo.payments, 1)
	assert.Equal(t, models.RentPaid, repo.payments[0].Status)
}
