package main

//go:generate swag init

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"rentdesk/db"
	_ "rentdesk/docs"
	"rentdesk/handlers"
	"rentdesk/ledger"
	"rentdesk/store"
)

// @title           RentDesk API
// @version         1.0.0
// @description     Property-rental back office: properties, tenants, leases, rent ledger, expenses, and documents.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.basic  BasicAuth

func main() {
	// Configure structured logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Open database
	database, err := db.Open()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Wire shared state for handlers
	handlers.DB = database
	handlers.Store = store.New(database)
	handlers.Ledger = ledger.NewService(handlers.Store)

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// API routes with basic auth
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handlers.BasicAuth)

		// Properties
		r.Get("/properties", handlers.ListProperties)
		r.Post("/properties", handlers.CreateProperty)
		r.Get("/properties/{id}", handlers.GetProperty)
		r.Put("/properties/{id}", handlers.UpdateProperty)
		r.Delete("/properties/{id}", handlers.DeleteProperty)

		// Tenants
		r.Get("/tenants", handlers.ListTenants)
		r.Post("/tenants", handlers.CreateTenant)
		r.Get("/tenants/{id}", handlers.GetTenant)
		r.Put("/tenants/{id}", handlers.UpdateTenant)
		r.Delete("/tenants/{id}", handlers.DeleteTenant)

		// Leases
		r.Get("/leases", handlers.ListLeases)
		r.Post("/leases", handlers.CreateLease)
		r.Get("/leases/{id}", handlers.GetLease)
		r.Put("/leases/{id}", handlers.UpdateLease)
		r.Delete("/leases/{id}", handlers.DeleteLease)
		r.Post("/leases/{id}/terminate", handlers.TerminateLease)

		// Rent ledger
		r.Get("/rents", handlers.ListRents)
		r.Get("/rents/{id}", handlers.GetRent)
		r.Put("/rents/{id}/status", handlers.UpdateRentStatus)

		// Expenses
		r.Get("/expenses", handlers.ListExpenses)
		r.Post("/expenses", handlers.CreateExpense)
		r.Get("/expenses/{id}", handlers.GetExpense)
		r.Put("/expenses/{id}", handlers.UpdateExpense)
		r.Delete("/expenses/{id}", handlers.DeleteExpense)

		// Documents
		r.Get("/documents", handlers.ListDocuments)
		r.Post("/documents", handlers.CreateDocument)
		r.Get("/documents/{id}", handlers.GetDocument)
		r.Put("/documents/{id}", handlers.UpdateDocument)
		r.Delete("/documents/{id}", handlers.DeleteDocument)

		// Dashboard
		r.Get("/dashboard", handlers.GetDashboard)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := fmt.Sprintf(":%s", port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
