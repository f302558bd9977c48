package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"rentdesk/ledger"
	"rentdesk/models"
)

const leaseSelectQuery = `SELECT l.id, l.tenant_id, l.property_id, l.start_date, l.end_date,
	l.monthly_rent, l.units, l.status, l.created_at, l.updated_at,
	t.name,
	p.name
	FROM leases l
	LEFT JOIN tenants t ON l.tenant_id = t.id
	LEFT JOIN properties p ON l.property_id = p.id`

func scanLease(scanner interface{ Scan(...any) error }) (models.Lease, error) {
	var l models.Lease
	err := scanner.Scan(&l.ID, &l.TenantID, &l.PropertyID, &l.StartDate, &l.EndDate,
		&l.MonthlyRent, &l.Units, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		&l.TenantName, &l.PropertyName)
	return l, err
}

func getLeaseByID(id int) (models.Lease, error) {
	return scanLease(DB.QueryRow(leaseSelectQuery+" WHERE l.id = ?", id))
}

// checkUnitAvailability verifies the requested units fit the property's
// spare capacity. excludeLeaseID keeps an edited lease from blocking on the
// units it already holds; pass 0 on create.
func checkUnitAvailability(input models.LeaseInput, excludeLeaseID int) (string, error) {
	p, err := getPropertyByID(input.PropertyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "property not found", nil
		}
		return "", err
	}
	leases, err := Store.Leases()
	if err != nil {
		return "", err
	}
	available := ledger.AvailableUnits(p, leases, excludeLeaseID, time.Now())
	if input.Units > available {
		return fmt.Sprintf("%s has only %d unit(s) available (requested %d)",
			p.Name, available, input.Units), nil
	}
	return "", nil
}

// ListLeases lists all leases
// @Summary      List leases
// @Description  Get all leases with tenant and property names.
// @Tags         leases
// @Produce      json
// @Param        tenant_id    query     int     false  "Filter by tenant"
// @Param        property_id  query     int     false  "Filter by property"
// @Param        status       query     string  false  "Filter by status"
// @Success      200          {object}  Response{data=[]models.Lease}
// @Router       /leases [get]
// @Security     BasicAuth
func ListLeases(w http.ResponseWriter, r *http.Request) {
	query := leaseSelectQuery
	var conditions []string
	var args []any

	if tid := r.URL.Query().Get("tenant_id"); tid != "" {
		conditions = append(conditions, "l.tenant_id = ?")
		args = append(args, tid)
	}
	if pid := r.URL.Query().Get("property_id"); pid != "" {
		conditions = append(conditions, "l.property_id = ?")
		args = append(args, pid)
	}
	if s := r.URL.Query().Get("status"); s != "" {
		conditions = append(conditions, "l.status = ?")
		args = append(args, s)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var leases []models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		leases = append(leases, l)
	}
	if leases == nil {
		leases = []models.Lease{}
	}
	writeJSON(w, http.StatusOK, leases)
}

// GetLease retrieves a single lease by ID
// @Summary      Get lease
// @Description  Get details of a specific lease.
// @Tags         leases
// @Produce      json
// @Param        id   path      int  true  "Lease ID"
// @Success      200  {object}  Response{data=models.Lease}
// @Failure      404  {object}  Response{error=string}
// @Router       /leases/{id} [get]
// @Security     BasicAuth
func GetLease(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	l, err := getLeaseByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "lease not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// CreateLease creates a new lease
// @Summary      Create lease
// @Description  Create a new lease. The requested units must fit the property's spare capacity.
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        lease  body      models.LeaseInput  true  "Lease contents"
// @Success      201    {object}  Response{data=models.Lease}
// @Failure      400    {object}  Response{error=string}
// @Router       /leases [post]
// @Security     BasicAuth
func CreateLease(w http.ResponseWriter, r *http.Request) {
	var input models.LeaseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	msg, err := checkUnitAvailability(input, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := DB.Exec(`INSERT INTO leases (tenant_id, property_id, start_date, end_date, monthly_rent, units, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		input.TenantID, input.PropertyID, input.StartDate, input.EndDate,
		input.MonthlyRent, input.Units, input.Status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	l, err := getLeaseByID(int(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created lease: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// UpdateLease updates an existing lease
// @Summary      Update lease
// @Description  Update details of an existing lease. Its own units never block the edit.
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        id     path      int                true  "Lease ID"
// @Param        lease  body      models.LeaseInput  true  "Updated lease contents"
// @Success      200    {object}  Response{data=models.Lease}
// @Failure      400    {object}  Response{error=string}
// @Failure      404    {object}  Response{error=string}
// @Router       /leases/{id} [put]
// @Security     BasicAuth
func UpdateLease(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.LeaseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	msg, err := checkUnitAvailability(input, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE leases SET tenant_id = ?, property_id = ?, start_date = ?, end_date = ?,
		monthly_rent = ?, units = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.TenantID, input.PropertyID, input.StartDate, input.EndDate,
		input.MonthlyRent, input.Units, input.Status, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "lease not found")
		return
	}

	l, err := getLeaseByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated lease: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// TerminateLease terminates a lease
// @Summary      Terminate lease
// @Description  Mark a lease terminated and purge its unpaid rent records. Paid history survives.
// @Tags         leases
// @Produce      json
// @Param        id   path      int  true  "Lease ID"
// @Success      200  {object}  Response{data=models.Lease}
// @Failure      404  {object}  Response{error=string}
// @Router       /leases/{id}/terminate [post]
// @Security     BasicAuth
func TerminateLease(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	res, err := DB.Exec(`UPDATE leases SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		models.LeaseTerminated, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "lease not found")
		return
	}

	purged, err := Ledger.PurgeUnpaid(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	l, err := getLeaseByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch terminated lease: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lease": l, "purged_unpaid": purged})
}

// DeleteLease deletes a lease
// @Summary      Delete lease
// @Description  Remove a lease. Refused while rent records reference it; terminate instead.
// @Tags         leases
// @Produce      json
// @Param        id   path      int  true  "Lease ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Failure      409  {object}  Response{error=string}
// @Router       /leases/{id} [delete]
// @Security     BasicAuth
func DeleteLease(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var rentCount int
	DB.QueryRow("SELECT COUNT(*) FROM rent_payments WHERE lease_id = ?", id).Scan(&rentCount)
	if rentCount > 0 {
		writeError(w, http.StatusConflict, "lease has rent records and cannot be deleted; terminate it instead")
		return
	}

	res, err := DB.Exec("DELETE FROM leases WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "lease not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
