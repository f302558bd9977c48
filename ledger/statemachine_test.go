package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/models"
)

func rentRecord(tenantID, leaseID int, month string, year int, amount models.Money, status string) models.RentPayment {
	return models.RentPayment{
		ID:       PaymentID(tenantID, leaseID, year, month),
		TenantID: tenantID,
		LeaseID:  leaseID,
		Month:    month,
		Year:     year,
		Amount:   amount,
		Status:   status,
	}
}

func payReq(status string, amount models.Money) StatusUpdate {
	return StatusUpdate{
		Status:        status,
		Amount:        amount,
		PaymentMethod: strp("cash"),
		PaidDate:      strp("2025-03-10"),
	}
}

func TestChronologicalGuard(t *testing.T) {
	jan := rentRecord(1, 1, "January", 2025, 1000, models.RentUnpaid)
	feb := rentRecord(1, 1, "February", 2025, 1000, models.RentUnpaid)
	all := []models.RentPayment{jan, feb}

	// February cannot settle while January is pending.
	_, err := ApplyUpdate(feb, payReq(models.RentPaid, 0), all)
	var cerr *ChronologyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "January", cerr.Month)
	assert.Equal(t, 2025, cerr.Year)
	assert.Equal(t, models.RentUnpaid, cerr.Status)

	// Partial attempts are guarded the same way.
	_, err = ApplyUpdate(feb, payReq(models.RentPartial, 400), all)
	require.ErrorAs(t, err, &cerr)

	// January first, then February, succeeds.
	janPaid, err := ApplyUpdate(jan, payReq(models.RentPaid, 0), all)
	require.NoError(t, err)
	assert.Equal(t, models.RentPaid, janPaid.Status)

	all[0] = janPaid
	febPaid, err := ApplyUpdate(feb, payReq(models.RentPaid, 0), all)
	require.NoError(t, err)
	assert.Equal(t, models.RentPaid, febPaid.Status)
}

func TestGuardReportsEarliestBlockingMonth(t *testing.T) {
	all := []models.RentPayment{
		rentRecord(1, 1, "December", 2024, 1000, models.RentPartial),
		rentRecord(1, 1, "January", 2025, 1000, models.RentUnpaid),
		rentRecord(1, 1, "March", 2025, 1000, models.RentUnpaid),
	}

	_, err := ApplyUpdate(all[2], payReq(models.RentPaid, 0), all)
	var cerr *ChronologyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "December", cerr.Month)
	assert.Equal(t, 2024, cerr.Year)
	assert.Equal(t, models.RentPartial, cerr.Status)
}

func TestGuardIgnoresOtherTenantsAndLeases(t *testing.T) {
	otherTenant := rentRecord(2, 2, "January", 2025, 1000, models.RentUnpaid)
	otherLease := rentRecord(1, 3, "January", 2025, 1000, models.RentUnpaid)
	feb := rentRecord(1, 1, "February", 2025, 1000, models.RentUnpaid)
	all := []models.RentPayment{otherTenant, otherLease, feb}

	updated, err := ApplyUpdate(feb, payReq(models.RentPaid, 0), all)
	require.NoError(t, err)
	assert.Equal(t, models.RentPaid, updated.Status)
}

func TestPartialCompletionBypassesGuard(t *testing.T) {
	jan := rentRecord(1, 1, "January", 2025, 1000, models.RentUnpaid)
	feb := rentRecord(1, 1, "February", 2025, 400, models.RentPartial)
	orig := models.Money(1000)
	feb.OriginalAmount = &orig
	feb.RemainingDue = 600
	all := []models.RentPayment{jan, feb}

	// Completing an in-flight partial is allowed even with an earlier
	// pending month; it cleared the guard when the first installment landed.
	updated, err := ApplyUpdate(feb, payReq(models.RentPaid, 600), all)
	require.NoError(t, err)
	assert.Equal(t, models.RentPaid, updated.Status)
	assert.Equal(t, models.Money(1000), updated.Amount)
}

func TestPartialPaymentConvergence(t *testing.T) {
	rec := rentRecord(1, 1, "January", 2025, 1000, models.RentUnpaid)
	all := []models.RentPayment{rec}

	// First installment of 400.
	partial, err := ApplyUpdate(rec, payReq(models.RentPartial, 400), all)
	require.NoError(t, err)
	assert.Equal(t, models.RentPartial, partial.Status)
	assert.Equal(t, models.Money(400), partial.Amount)
	require.NotNil(t, partial.OriginalAmount)
	assert.Equal(t, models.Money(1000), *partial.OriginalAmount)
	assert.Equal(t, models.Money(600), partial.RemainingDue)
	require.NotNil(t, partial.PaymentMethod)

	// Second installment of 600 settles the month.
	all[0] = partial
	paid, err := ApplyUpdate(partial, payReq(models.RentPaid, 600), all)
	require.NoError(t, err)
	assert.Equal(t, models.RentPaid, paid.Status)
	assert.Equal(t, models.Money(1000), paid.Amount)
	assert.Nil(t, paid.OriginalAmount)
	assert.Equal(t, models.Money(0), paid.RemainingDue)
}

func TestPartialAmendment(t *testing.T) {
	rec := rentRecord(1, 1, "January", 2025, 1000, models.RentUnpaid)
	all := []models.RentPayment{rec}

	partial, err := ApplyUpdate(rec, payReq(models.RentPartial, 300), all)
	require.NoError(t, err)

	all[0] = partial
	amended, err := ApplyUpdate(partial, payReq(models.RentPartial, 200), all)
	require.NoError(t, err)
	assert.Equal(t, models.RentPartial, amended.Status)
	assert.Equal(t, models.Money(500), amended.Amount)
	assert.Equal(t, models.Money(500), amended.RemainingDue)
}

func TestOverpaymentClampsToDue(t *testing.T) {
	rec := rentRecord(1, 1, "January", 2025, 1000, models.RentUnpaid)
	all := []models.RentPayment{rec}

	partial, _ := ApplyUpdate(rec, payReq(models.RentPartial, 400), all)
	all[0] = partial
	paid, err := ApplyUpdate(partial, payReq(models.RentPaid, 900), all)
	require.NoError(t, err)
	assert.Equal(t, models.RentPaid, paid.Status)
	assert.Equal(t, models.Money(1000), paid.Amount)
	assert.Equal(t, models.Money(0), paid.RemainingDue)
}

func TestResetToUnpaid(t *testing.T) {
	rec := rentRecord(1, 1, "January", 2025, 1000, models.RentUnpaid)
	all := []models.RentPayment{rec}

	paid, err := ApplyUpdate(rec, payReq(models.RentPaid, 0), all)
	require.NoError(t, err)
	require.Equal(t, models.RentPaid, paid.Status)

	// Reversal restores the original due and clears payment bookkeeping.
	reverted, err := ApplyUpdate(paid, StatusUpdate{Status: models.RentUnpaid}, all)
	require.NoError(t, err)
	assert.Equal(t, models.RentUnpaid, reverted.Status)
	assert.Equal(t, models.Money(1000), reverted.Amount)
	assert.Nil(t, reverted.PaymentMethod)
	assert.Nil(t, reverted.PaidDate)
	assert.Nil(t, reverted.OriginalAmount)
	assert.Equal(t, models.Money(0), reverted.RemainingDue)
}

func TestResetFromPartialRestoresOriginal(t *testing.T) {
	rec := rentRecord(1, 1, "January", 2025, 1000, models.RentUnpaid)
	all := []models.RentPayment{rec}

	partial, _ := ApplyUpdate(rec, payReq(models.RentPartial, 400), all)
	reverted, err := ApplyUpdate(partial, StatusUpdate{Status: models.RentUnpaid}, all)
	require.NoError(t, err)
	assert.Equal(t, models.Money(1000), reverted.Amount)
	assert.Equal(t, models.RentUnpaid, reverted.Status)
}

func TestRejectionLeavesRecordUntouched(t *testing.T) {
	jan := rentRecord(1, 1, "January", 2025, 1000, models.RentUnpaid)
	feb := rentRecord(1, 1, "February", 2025, 1000, models.RentUnpaid)
	all := []models.RentPayment{jan, feb}

	got, err := ApplyUpdate(feb, payReq(models.RentPaid, 0), all)
	require.Error(t, err)
	assert.Equal(t, feb, got)
}
