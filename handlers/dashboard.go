package handlers

import (
	"net/http"

	"rentdesk/models"
)

type dashboardData struct {
	TotalProperties int `json:"total_properties"`
	TotalTenants    int `json:"total_tenants"`
	ActiveLeases    int `json:"active_leases"`

	TotalFlats    int `json:"total_flats"`
	OccupiedUnits int `json:"occupied_units"`
	VacantUnits   int `json:"vacant_units"`

	RentCollected   models.Money `json:"rent_collected"`   // paid totals plus partial installments
	RentOutstanding models.Money `json:"rent_outstanding"` // unpaid amounts plus partial remainders
	ExpenseTotal    models.Money `json:"expense_total"`

	RecentPayments []models.RentPayment `json:"recent_payments"`
}

// GetDashboard retrieves dashboard summary statistics
// @Summary      Get dashboard
// @Description  Get portfolio totals: occupancy, rent collected and outstanding, expenses, recent payments.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Response{data=dashboardData}
// @Router       /dashboard [get]
// @Security     BasicAuth
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	// Top the ledger up first so outstanding figures include the latest month.
	if _, err := Ledger.SyncDues(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var d dashboardData

	DB.QueryRow("SELECT COUNT(*) FROM properties").Scan(&d.TotalProperties)
	DB.QueryRow("SELECT COUNT(*) FROM tenants").Scan(&d.TotalTenants)
	DB.QueryRow("SELECT COUNT(*) FROM leases WHERE status = 'active' AND end_date >= date('now')").Scan(&d.ActiveLeases)
	DB.QueryRow("SELECT COALESCE(SUM(total_flats), 0) FROM properties").Scan(&d.TotalFlats)

	DB.QueryRow(`SELECT COALESCE(SUM(CASE status WHEN 'paid' THEN amount WHEN 'partial' THEN amount ELSE 0 END), 0)
		FROM rent_payments`).Scan(&d.RentCollected)
	DB.QueryRow(`SELECT COALESCE(SUM(CASE status WHEN 'unpaid' THEN amount WHEN 'partial' THEN remaining_due ELSE 0 END), 0)
		FROM rent_payments`).Scan(&d.RentOutstanding)
	DB.QueryRow("SELECT COALESCE(SUM(amount), 0) FROM expenses").Scan(&d.ExpenseTotal)

	// Occupancy from the engine, per property, summed across the portfolio.
	properties, leases, err := loadOccupancyInputs()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for i := range properties {
		attachOccupancy(&properties[i], leases)
		d.OccupiedUnits += properties[i].OccupiedUnits
		d.VacantUnits += properties[i].VacantUnits
	}

	// Recent 5 settled or amended records
	rows, err := DB.Query(rentSelectQuery + ` WHERE rp.status != 'unpaid'
		ORDER BY rp.updated_at DESC LIMIT 5`)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			rp, err := scanRent(rows)
			if err != nil {
				break
			}
			d.RecentPayments = append(d.RecentPayments, rp)
		}
	}
	if d.RecentPayments == nil {
		d.RecentPayments = []models.RentPayment{}
	}

	writeJSON(w, http.StatusOK, d)
}

func loadOccupancyInputs() ([]models.Property, []models.Lease, error) {
	rows, err := DB.Query(propertySelectQuery)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, nil, err
		}
		properties = append(properties, p)
	}
	leases, err := Store.Leases()
	if err != nil {
		return nil, nil, err
	}
	return properties, leases, nil
}
