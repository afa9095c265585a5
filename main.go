package main

//go:generate swag init

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/codyde/payme/db"
	_ "github.com/codyde/payme/docs"
	"github.com/codyde/payme/handlers"
	"github.com/codyde/payme/inference"
	"github.com/codyde/payme/ingest"
	"github.com/codyde/payme/ledger"
)

// @title           Payme Ledger API
// @version         1.0.0
// @description     API for importing, normalizing, and aggregating financial transactions into invoices.
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

	store := ledger.New(database)

	// The extraction model is optional; without credentials the
	// deterministic import paths still work.
	var extractor inference.Extractor
	if os.Getenv("GEMINI_API_KEY") != "" {
		ext, err := inference.NewGeminiExtractor(context.Background())
		if err != nil {
			slog.Error("failed to create extractor", "error", err)
			os.Exit(1)
		}
		extractor = ext
	} else {
		slog.Warn("GEMINI_API_KEY not set, inferred imports are disabled")
	}

	h := &handlers.Handler{
		Store:    store,
		Importer: ingest.New(store, extractor),
	}

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// API routes with basic auth
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handlers.BasicAuth)

		// Transactions
		r.Get("/transactions", h.ListTransactions)
		r.Post("/transactions", h.CreateTransaction)
		r.Post("/transactions/bulk", h.BulkCreate)
		r.Get("/transactions/{id}", h.GetTransaction)
		r.Put("/transactions/{id}", h.UpdateTransaction)
		r.Delete("/transactions/{id}", h.DeleteTransaction)
		r.Post("/transactions/{id}/notes", h.UpdateNotes)

		// Imports
		r.Post("/imports", h.Import)
		r.Post("/imports/inferred", h.ImportInferred)

		// Invoices
		r.Get("/invoices", h.ListInvoices)
		r.Post("/invoices", h.CreateInvoice)
		r.Get("/invoices/{id}", h.GetInvoice)
		r.Delete("/invoices/{id}", h.DeleteInvoice)
		r.Post("/invoices/{id}/complete", h.CompleteInvoice)
		r.Get("/invoices/{id}/transactions", h.ListInvoiceTransactions)
		r.Post("/invoices/{id}/transactions", h.AssignTransactions)

		// Dashboard
		r.Get("/dashboard", h.GetDashboard)
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
