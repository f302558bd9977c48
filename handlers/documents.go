package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"rentdesk/models"
)

const documentSelectQuery = `SELECT id, entity_type, entity_id, name, file_url, notes, created_at, updated_at
	FROM documents`

func scanDocument(scanner interface{ Scan(...any) error }) (models.Document, error) {
	var d models.Document
	err := scanner.Scan(&d.ID, &d.EntityType, &d.EntityID, &d.Name, &d.FileURL,
		&d.Notes, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func getDocumentByID(id int) (models.Document, error) {
	return scanDocument(DB.QueryRow(documentSelectQuery+" WHERE id = ?", id))
}

// ListDocuments lists all documents
// @Summary      List documents
// @Description  Get stored document references, optionally scoped to one entity.
// @Tags         documents
// @Produce      json
// @Param        entity_type  query     string  false  "Filter by entity type (property, tenant, lease)"
// @Param        entity_id    query     int     false  "Filter by entity ID"
// @Success      200          {object}  Response{data=[]models.Document}
// @Router       /documents [get]
// @Security     BasicAuth
func ListDocuments(w http.ResponseWriter, r *http.Request) {
	query := documentSelectQuery
	var conditions []string
	var args []any

	if et := r.URL.Query().Get("entity_type"); et != "" {
		conditions = append(conditions, "entity_type = ?")
		args = append(args, et)
	}
	if eid := r.URL.Query().Get("entity_id"); eid != "" {
		conditions = append(conditions, "entity_id = ?")
		args = append(args, eid)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		documents = append(documents, d)
	}
	if documents == nil {
		documents = []models.Document{}
	}
	writeJSON(w, http.StatusOK, documents)
}

// GetDocument retrieves a single document by ID
// @Summary      Get document
// @Description  Get a stored document reference.
// @Tags         documents
// @Produce      json
// @Param        id   path      int  true  "Document ID"
// @Success      200  {object}  Response{data=models.Document}
// @Failure      404  {object}  Response{error=string}
// @Router       /documents/{id} [get]
// @Security     BasicAuth
func GetDocument(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	d, err := getDocumentByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "document not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// CreateDocument creates a new document reference
// @Summary      Create document
// @Description  Attach a document reference to a property, tenant, or lease.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        document  body      models.DocumentInput  true  "Document contents"
// @Success      201       {object}  Response{data=models.Document}
// @Failure      400       {object}  Response{error=string}
// @Router       /documents [post]
// @Security     BasicAuth
func CreateDocument(w http.ResponseWriter, r *http.Request) {
	var input models.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := DB.Exec(`INSERT INTO documents (entity_type, entity_id, name, file_url, notes)
		VALUES (?, ?, ?, ?, ?)`,
		input.EntityType, input.EntityID, input.Name, input.FileURL, input.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	d, err := getDocumentByID(int(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created document: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// UpdateDocument updates an existing document reference
// @Summary      Update document
// @Description  Update a stored document reference.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id        path      int                   true  "Document ID"
// @Param        document  body      models.DocumentInput  true  "Updated document contents"
// @Success      200       {object}  Response{data=models.Document}
// @Failure      400       {object}  Response{error=string}
// @Failure      404       {object}  Response{error=string}
// @Router       /documents/{id} [put]
// @Security     BasicAuth
func UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE documents SET entity_type = ?, entity_id = ?, name = ?, file_url = ?,
		notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.EntityType, input.EntityID, input.Name, input.FileURL, input.Notes, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	d, err := getDocumentByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated document: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// DeleteDocument deletes a document reference
// @Summary      Delete document
// @Description  Remove a stored document reference. The underlying file is untouched.
// @Tags         documents
// @Produce      json
// @Param        id   path      int  true  "Document ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /documents/{id} [delete]
// @Security     BasicAuth
func DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
