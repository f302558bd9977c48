package ledger

import (
	"errors"
	"time"

	"rentdesk/models"
)

// ErrRecordNotFound is returned by Service.SetStatus for an unknown record ID.
var ErrRecordNotFound = errors.New("rent record not found")

// Repository is the persistence boundary of the engine. Implementations
// read and write whole records; the engine never issues partial updates.
type Repository interface {
	Leases() ([]models.Lease, error)
	Payments() ([]models.RentPayment, error)
	InsertPayments(recs []models.RentPayment) error
	UpdatePayment(rec models.RentPayment) error
	DeleteUnpaidForLease(leaseID int) (int64, error)
}

// Service orchestrates the pure engine over a Repository: each operation
// reads a fresh snapshot, computes, and writes back. Operations are invoked
// serially; behind a shared store with concurrent writers the
// read-validate-write would need a transaction around it.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SyncDues runs the due generator against the current ledger snapshot and
// persists any newly synthesized rows. Returns how many were added.
func (s *Service) SyncDues() (int, error) {
	leases, err := s.repo.Leases()
	if err != nil {
		return 0, err
	}
	payments, err := s.repo.Payments()
	if err != nil {
		return 0, err
	}
	updated, added := Generate(leases, payments, s.now())
	if added == 0 {
		return 0, nil
	}
	// Generate only appends, so the new rows are the tail.
	if err := s.repo.InsertPayments(updated[len(updated)-added:]); err != nil {
		return 0, err
	}
	return added, nil
}

// SetStatus applies a status change to one record. A *ChronologyError means
// the change was rejected and nothing was written.
func (s *Service) SetStatus(id string, req StatusUpdate) (models.RentPayment, error) {
	payments, err := s.repo.Payments()
	if err != nil {
		return models.RentPayment{}, err
	}
	idx := -1
	for i := range payments {
		if payments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.RentPayment{}, ErrRecordNotFound
	}
	updated, err := ApplyUpdate(payments[idx], req, payments)
	if err != nil {
		return models.RentPayment{}, err
	}
	if err := s.repo.UpdatePayment(updated); err != nil {
		return models.RentPayment{}, err
	}
	return updated, nil
}

// PurgeUnpaid removes a terminated lease's unpaid obligations. Paid and
// partial history always survives termination.
func (s *Service) PurgeUnpaid(leaseID int) (int64, error) {
	return s.repo.DeleteUnpaidForLease(leaseID)
}
