package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"rentdesk/ledger"
	"rentdesk/models"
)

const propertySelectQuery = `SELECT id, name, address, total_flats, notes, created_at, updated_at
	FROM properties`

func scanProperty(scanner interface{ Scan(...any) error }) (models.Property, error) {
	var p models.Property
	err := scanner.Scan(&p.ID, &p.Name, &p.Address, &p.TotalFlats, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func getPropertyByID(id int) (models.Property, error) {
	return scanProperty(DB.QueryRow(propertySelectQuery+" WHERE id = ?", id))
}

func attachOccupancy(p *models.Property, leases []models.Lease) {
	now := time.Now()
	p.OccupiedUnits = ledger.OccupiedUnits(*p, leases, now)
	p.VacantUnits = ledger.VacantUnits(*p, leases, now)
}

// ListProperties lists all properties
// @Summary      List properties
// @Description  Get all properties with derived occupied and vacant unit counts.
// @Tags         properties
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Property}
// @Router       /properties [get]
// @Security     BasicAuth
func ListProperties(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(propertySelectQuery + " ORDER BY name")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		properties = append(properties, p)
	}
	if properties == nil {
		properties = []models.Property{}
	}

	leases, err := Store.Leases()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for i := range properties {
		attachOccupancy(&properties[i], leases)
	}
	writeJSON(w, http.StatusOK, properties)
}

// GetProperty retrieves a single property by ID
// @Summary      Get property
// @Description  Get a property with its current occupancy.
// @Tags         properties
// @Produce      json
// @Param        id   path      int  true  "Property ID"
// @Success      200  {object}  Response{data=models.Property}
// @Failure      404  {object}  Response{error=string}
// @Router       /properties/{id} [get]
// @Security     BasicAuth
func GetProperty(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	p, err := getPropertyByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "property not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	leases, err := Store.Leases()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	attachOccupancy(&p, leases)
	writeJSON(w, http.StatusOK, p)
}

// CreateProperty creates a new property
// @Summary      Create property
// @Description  Create a new rental property.
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        property  body      models.PropertyInput  true  "Property contents"
// @Success      201       {object}  Response{data=models.Property}
// @Failure      400       {object}  Response{error=string}
// @Router       /properties [post]
// @Security     BasicAuth
func CreateProperty(w http.ResponseWriter, r *http.Request) {
	var input models.PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := DB.Exec(`INSERT INTO properties (name, address, total_flats, notes)
		VALUES (?, ?, ?, ?)`, input.Name, input.Address, input.TotalFlats, input.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	p, err := getPropertyByID(int(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created property: "+err.Error())
		return
	}
	p.VacantUnits = p.TotalFlats
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProperty updates an existing property
// @Summary      Update property
// @Description  Update details of an existing property.
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id        path      int                   true  "Property ID"
// @Param        property  body      models.PropertyInput  true  "Updated property contents"
// @Success      200       {object}  Response{data=models.Property}
// @Failure      400       {object}  Response{error=string}
// @Failure      404       {object}  Response{error=string}
// @Router       /properties/{id} [put]
// @Security     BasicAuth
func UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE properties SET name = ?, address = ?, total_flats = ?, notes = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.Name, input.Address, input.TotalFlats, input.Notes, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}

	p, err := getPropertyByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated property: "+err.Error())
		return
	}
	leases, err := Store.Leases()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	attachOccupancy(&p, leases)
	writeJSON(w, http.StatusOK, p)
}

// DeleteProperty deletes a property
// @Summary      Delete property
// @Description  Remove a property. Refused while leases reference it.
// @Tags         properties
// @Produce      json
// @Param        id   path      int  true  "Property ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Failure      409  {object}  Response{error=string}
// @Router       /properties/{id} [delete]
// @Security     BasicAuth
func DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var leaseCount int
	DB.QueryRow("SELECT COUNT(*) FROM leases WHERE property_id = ?", id).Scan(&leaseCount)
	if leaseCount > 0 {
		writeError(w, http.StatusConflict, "property has leases and cannot be deleted")
		return
	}

	res, err := DB.Exec("DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
