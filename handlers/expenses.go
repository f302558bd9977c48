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

const expenseSelectQuery = `SELECT e.id, e.property_id, e.category, e.amount, e.expense_date, e.notes,
	e.created_at, e.updated_at,
	p.name
	FROM expenses e
	LEFT JOIN properties p ON e.property_id = p.id`

func scanExpense(scanner interface{ Scan(...any) error }) (models.Expense, error) {
	var e models.Expense
	err := scanner.Scan(&e.ID, &e.PropertyID, &e.Category, &e.Amount, &e.ExpenseDate,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.PropertyName)
	return e, err
}

func getExpenseByID(id int) (models.Expense, error) {
	return scanExpense(DB.QueryRow(expenseSelectQuery+" WHERE e.id = ?", id))
}

// ListExpenses lists all expenses
// @Summary      List expenses
// @Description  Get all property expenses.
// @Tags         expenses
// @Produce      json
// @Param        property_id  query     int     false  "Filter by property"
// @Param        category     query     string  false  "Filter by category"
// @Param        from         query     string  false  "Expenses on/after this date"
// @Param        to           query     string  false  "Expenses on/before this date"
// @Success      200          {object}  Response{data=[]models.Expense}
// @Router       /expenses [get]
// @Security     BasicAuth
func ListExpenses(w http.ResponseWriter, r *http.Request) {
	query := expenseSelectQuery
	var conditions []string
	var args []any

	if pid := r.URL.Query().Get("property_id"); pid != "" {
		conditions = append(conditions, "e.property_id = ?")
		args = append(args, pid)
	}
	if c := r.URL.Query().Get("category"); c != "" {
		conditions = append(conditions, "e.category = ?")
		args = append(args, c)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		conditions = append(conditions, "e.expense_date >= ?")
		args = append(args, from)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		conditions = append(conditions, "e.expense_date <= ?")
		args = append(args, to)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		expenses = append(expenses, e)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// GetExpense retrieves a single expense by ID
// @Summary      Get expense
// @Description  Get details of a specific expense.
// @Tags         expenses
// @Produce      json
// @Param        id   path      int  true  "Expense ID"
// @Success      200  {object}  Response{data=models.Expense}
// @Failure      404  {object}  Response{error=string}
// @Router       /expenses/{id} [get]
// @Security     BasicAuth
func GetExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	e, err := getExpenseByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "expense not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// CreateExpense creates a new expense
// @Summary      Create expense
// @Description  Record a property expense.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        expense  body      models.ExpenseInput  true  "Expense contents"
// @Success      201      {object}  Response{data=models.Expense}
// @Failure      400      {object}  Response{error=string}
// @Router       /expenses [post]
// @Security     BasicAuth
func CreateExpense(w http.ResponseWriter, r *http.Request) {
	var input models.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := DB.Exec(`INSERT INTO expenses (property_id, category, amount, expense_date, notes)
		VALUES (?, ?, ?, ?, ?)`,
		input.PropertyID, input.Category, input.Amount, input.ExpenseDate, input.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	e, err := getExpenseByID(int(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created expense: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// UpdateExpense updates an existing expense
// @Summary      Update expense
// @Description  Update details of an existing expense.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Expense ID"
// @Param        expense  body      models.ExpenseInput  true  "Updated expense contents"
// @Success      200      {object}  Response{data=models.Expense}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /expenses/{id} [put]
// @Security     BasicAuth
func UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE expenses SET property_id = ?, category = ?, amount = ?, expense_date = ?,
		notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.PropertyID, input.Category, input.Amount, input.ExpenseDate, input.Notes, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	e, err := getExpenseByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated expense: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteExpense deletes an expense
// @Summary      Delete expense
// @Description  Remove an expense.
// @Tags         expenses
// @Produce      json
// @Param        id   path      int  true  "Expense ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /expenses/{id} [delete]
// @Security     BasicAuth
func DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
