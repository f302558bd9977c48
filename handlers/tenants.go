package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rentdesk/models"
)

// Outstanding balance: unpaid rows owe their full amount, partial rows owe
// the remaining due.
const tenantSelectQuery = `SELECT t.id, t.name, t.phone, t.email, t.notes, t.created_at, t.updated_at,
	COALESCE((SELECT SUM(CASE rp.status WHEN 'unpaid' THEN rp.amount WHEN 'partial' THEN rp.remaining_due ELSE 0 END)
		FROM rent_payments rp WHERE rp.tenant_id = t.id), 0)
	FROM tenants t`

func scanTenant(scanner interface{ Scan(...any) error }) (models.Tenant, error) {
	var t models.Tenant
	err := scanner.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt, &t.Outstanding)
	return t, err
}

func getTenantByID(id int) (models.Tenant, error) {
	return scanTenant(DB.QueryRow(tenantSelectQuery+" WHERE t.id = ?", id))
}

// ListTenants lists all tenants
// @Summary      List tenants
// @Description  Get all tenants with their outstanding rent balance.
// @Tags         tenants
// @Produce      json
// @Param        search  query     string  false  "Search by name, phone, or email"
// @Success      200     {object}  Response{data=[]models.Tenant}
// @Router       /tenants [get]
// @Security     BasicAuth
func ListTenants(w http.ResponseWriter, r *http.Request) {
	query := tenantSelectQuery
	var args []any

	if search := r.URL.Query().Get("search"); search != "" {
		query += " WHERE (t.name LIKE ? OR t.phone LIKE ? OR t.email LIKE ?)"
		s := "%" + search + "%"
		args = append(args, s, s, s)
	}
	query += " ORDER BY t.name"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		tenants = append(tenants, t)
	}
	if tenants == nil {
		tenants = []models.Tenant{}
	}
	writeJSON(w, http.StatusOK, tenants)
}

// GetTenant retrieves a single tenant by ID
// @Summary      Get tenant
// @Description  Get a tenant with their outstanding rent balance.
// @Tags         tenants
// @Produce      json
// @Param        id   path      int  true  "Tenant ID"
// @Success      200  {object}  Response{data=models.Tenant}
// @Failure      404  {object}  Response{error=string}
// @Router       /tenants/{id} [get]
// @Security     BasicAuth
func GetTenant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	t, err := getTenantByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "tenant not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// CreateTenant creates a new tenant
// @Summary      Create tenant
// @Description  Create a new tenant.
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        tenant  body      models.TenantInput  true  "Tenant contents"
// @Success      201     {object}  Response{data=models.Tenant}
// @Failure      400     {object}  Response{error=string}
// @Router       /tenants [post]
// @Security     BasicAuth
func CreateTenant(w http.ResponseWriter, r *http.Request) {
	var input models.TenantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := DB.Exec(`INSERT INTO tenants (name, phone, email, notes) VALUES (?, ?, ?, ?)`,
		input.Name, input.Phone, input.Email, input.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	t, err := getTenantByID(int(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created tenant: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTenant updates an existing tenant
// @Summary      Update tenant
// @Description  Update details of an existing tenant.
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id      path      int                 true  "Tenant ID"
// @Param        tenant  body      models.TenantInput  true  "Updated tenant contents"
// @Success      200     {object}  Response{data=models.Tenant}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /tenants/{id} [put]
// @Security     BasicAuth
func UpdateTenant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.TenantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE tenants SET name = ?, phone = ?, email = ?, notes = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.Name, input.Phone, input.Email, input.Notes, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "tenant not found")
		return
	}

	t, err := getTenantByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated tenant: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTenant deletes a tenant
// @Summary      Delete tenant
// @Description  Remove a tenant. Refused while leases reference them.
// @Tags         tenants
// @Produce      json
// @Param        id   path      int  true  "Tenant ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Failure      409  {object}  Response{error=string}
// @Router       /tenants/{id} [delete]
// @Security     BasicAuth
func DeleteTenant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var leaseCount int
	DB.QueryRow("SELECT COUNT(*) FROM leases WHERE tenant_id = ?", id).Scan(&leaseCount)
	if leaseCount > 0 {
		writeError(w, http.StatusConflict, "tenant has leases and cannot be deleted")
		return
	}

	res, err := DB.Exec("DELETE FROM tenants WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
