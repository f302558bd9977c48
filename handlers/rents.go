package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"rentdesk/ledger"
	"rentdesk/models"
)

const rentSelectQuery = `SELECT rp.id, rp.tenant_id, rp.lease_id, rp.property_id, rp.month, rp.year,
	rp.amount, rp.status, rp.due_date, rp.payment_method, rp.paid_date,
	rp.original_amount, rp.remaining_due, rp.created_at, rp.updated_at,
	t.name,
	p.name
	FROM rent_payments rp
	LEFT JOIN tenants t ON rp.tenant_id = t.id
	LEFT JOIN properties p ON rp.property_id = p.id`

func scanRent(scanner interface{ Scan(...any) error }) (models.RentPayment, error) {
	var rp models.RentPayment
	err := scanner.Scan(&rp.ID, &rp.TenantID, &rp.LeaseID, &rp.PropertyID, &rp.Month, &rp.Year,
		&rp.Amount, &rp.Status, &rp.DueDate, &rp.PaymentMethod, &rp.PaidDate,
		&rp.OriginalAmount, &rp.RemainingDue, &rp.CreatedAt, &rp.UpdatedAt,
		&rp.TenantName, &rp.PropertyName)
	return rp, err
}

func getRentByID(id string) (models.RentPayment, error) {
	return scanRent(DB.QueryRow(rentSelectQuery+" WHERE rp.id = ?", id))
}

// ListRents lists rent ledger records
// @Summary      List rent records
// @Description  Synthesize any missing monthly dues, then list the rent ledger.
// @Tags         rents
// @Produce      json
// @Param        tenant_id    query     int     false  "Filter by tenant"
// @Param        lease_id     query     int     false  "Filter by lease"
// @Param        property_id  query     int     false  "Filter by property"
// @Param        status       query     string  false  "Filter by status"
// @Param        year         query     int     false  "Filter by year"
// @Success      200          {object}  Response{data=[]models.RentPayment}
// @Router       /rents [get]
// @Security     BasicAuth
func ListRents(w http.ResponseWriter, r *http.Request) {
	// Every load tops the ledger up to the last completed month first.
	if _, err := Ledger.SyncDues(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := rentSelectQuery
	var conditions []string
	var args []any

	if tid := r.URL.Query().Get("tenant_id"); tid != "" {
		conditions = append(conditions, "rp.tenant_id = ?")
		args = append(args, tid)
	}
	if lid := r.URL.Query().Get("lease_id"); lid != "" {
		conditions = append(conditions, "rp.lease_id = ?")
		args = append(args, lid)
	}
	if pid := r.URL.Query().Get("property_id"); pid != "" {
		conditions = append(conditions, "rp.property_id = ?")
		args = append(args, pid)
	}
	if s := r.URL.Query().Get("status"); s != "" {
		conditions = append(conditions, "rp.status = ?")
		args = append(args, s)
	}
	if y := r.URL.Query().Get("year"); y != "" {
		conditions = append(conditions, "rp.year = ?")
		args = append(args, y)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY rp.year, rp.due_date"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var rents []models.RentPayment
	for rows.Next() {
		rp, err := scanRent(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		rents = append(rents, rp)
	}
	if rents == nil {
		rents = []models.RentPayment{}
	}
	writeJSON(w, http.StatusOK, rents)
}

// GetRent retrieves a single rent record by ID
// @Summary      Get rent record
// @Description  Get details of a specific rent ledger record.
// @Tags         rents
// @Produce      json
// @Param        id   path      string  true  "Rent record ID"
// @Success      200  {object}  Response{data=models.RentPayment}
// @Failure      404  {object}  Response{error=string}
// @Router       /rents/{id} [get]
// @Security     BasicAuth
func GetRent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rp, err := getRentByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "rent record not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, rp)
}

// UpdateRentStatus applies a payment status change
// @Summary      Update rent status
// @Description  Mark a rent record paid, partial, or back to unpaid. Settling out of chronological order is rejected with 409.
// @Tags         rents
// @Accept       json
// @Produce      json
// @Param        id      path      string                  true  "Rent record ID"
// @Param        status  body      models.RentStatusInput  true  "Status change"
// @Success      200     {object}  Response{data=models.RentPayment}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Failure      409     {object}  Response{error=string}
// @Router       /rents/{id}/status [put]
// @Security     BasicAuth
func UpdateRentStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input models.RentStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	_, err := Ledger.SetStatus(id, ledger.StatusUpdate{
		Status:        input.Status,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		PaidDate:      input.PaidDate,
	})
	if err != nil {
		var cerr *ledger.ChronologyError
		switch {
		case errors.As(err, &cerr):
			writeError(w, http.StatusConflict, cerr.Error())
		case errors.Is(err, ledger.ErrRecordNotFound):
			writeError(w, http.StatusNotFound, "rent record not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	rp, err := getRentByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated rent record: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rp)
}
