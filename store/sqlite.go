// Package store persists the rent ledger in SQLite. It implements
// ledger.Repository: whole-record reads and writes, no partial updates.
package store

import (
	"database/sql"
	"fmt"

	"rentdesk/models"
)

const paymentColumns = `id, tenant_id, lease_id, property_id, month, year, amount, status,
	due_date, payment_method, paid_date, original_amount, remaining_due, created_at, updated_at`

// SQL is the sqlite-backed ledger repository.
type SQL struct {
	db *sql.DB
}

func New(database *sql.DB) *SQL {
	return &SQL{db: database}
}

func scanPayment(scanner interface{ Scan(...any) error }) (models.RentPayment, error) {
	var p models.RentPayment
	err := scanner.Scan(&p.ID, &p.TenantID, &p.LeaseID, &p.PropertyID, &p.Month, &p.Year,
		&p.Amount, &p.Status, &p.DueDate, &p.PaymentMethod, &p.PaidDate,
		&p.OriginalAmount, &p.RemainingDue, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Leases returns every lease, active or not; the engine does its own filtering.
func (s *SQL) Leases() ([]models.Lease, error) {
	rows, err := s.db.Query(`SELECT id, tenant_id, property_id, start_date, end_date,
		monthly_rent, units, status, created_at, updated_at FROM leases`)
	if err != nil {
		return nil, fmt.Errorf("loading leases: %w", err)
	}
	defer rows.Close()

	var leases []models.Lease
	for rows.Next() {
		var l models.Lease
		if err := rows.Scan(&l.ID, &l.TenantID, &l.PropertyID, &l.StartDate, &l.EndDate,
			&l.MonthlyRent, &l.Units, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning lease: %w", err)
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

// Payments returns the full rent ledger.
func (s *SQL) Payments() ([]models.RentPayment, error) {
	rows, err := s.db.Query(`SELECT ` + paymentColumns + ` FROM rent_payments ORDER BY year, due_date`)
	if err != nil {
		return nil, fmt.Errorf("loading rent ledger: %w", err)
	}
	defer rows.Close()

	var payments []models.RentPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rent record: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// InsertPayments writes newly generated rows in one transaction.
func (s *SQL) InsertPayments(recs []models.RentPayment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning insert: %w", err)
	}
	defer tx.Rollback()

	for _, p := range recs {
		if _, err := tx.Exec(`INSERT INTO rent_payments
			(id, tenant_id, lease_id, property_id, month, year, amount, status, due_date, remaining_due)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.TenantID, p.LeaseID, p.PropertyID, p.Month, p.Year,
			p.Amount, p.Status, p.DueDate, p.RemainingDue); err != nil {
			return fmt.Errorf("inserting rent record %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// UpdatePayment writes back one record's full mutable state.
func (s *SQL) UpdatePayment(rec models.RentPayment) error {
	res, err := s.db.Exec(`UPDATE rent_payments SET amount = ?, status = ?, payment_method = ?,
		paid_date = ?, original_amount = ?, remaining_due = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		rec.Amount, rec.Status, rec.PaymentMethod, rec.PaidDate,
		rec.OriginalAmount, rec.RemainingDue, rec.ID)
	if err != nil {
		return fmt.Errorf("updating rent record %s: %w", rec.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("rent record %s not found", rec.ID)
	}
	return nil
}

// DeleteUnpaidForLease purges a terminated lease's unpaid rows.
func (s *SQL) DeleteUnpaidForLease(leaseID int) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM rent_payments WHERE lease_id = ? AND status = ?`,
		leaseID, models.RentUnpaid)
	if err != nil {
		return 0, fmt.Errorf("purging unpaid rent for lease %d: %w", leaseID, err)
	}
	return res.RowsAffected()
}
