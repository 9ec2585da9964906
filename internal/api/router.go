package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// Services bundles the services the HTTP layer delegates to.
type Services struct {
	System      *service.SystemService
	Asset       *service.AssetService
	Transaction *service.TransactionService
	Portfolio   *service.PortfolioService
	Price       *service.PriceService
	Backup      *service.BackupService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	requireKey := custommiddleware.RequireAPIKey(cfg.Auth.InternalAPIKey)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Get("/selfcheck", systemHandler.SelfCheck)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svc.Asset, svc.Transaction, svc.Portfolio)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateIDMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
				r.Put("/price", assetHandler.UpdatePrice)
				r.Get("/transactions", assetHandler.AssetTransactions)
				r.Get("/inventory", assetHandler.Inventory)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/positions", portfolioHandler.Positions)
			r.Get("/summary", portfolioHandler.Summary)
		})

		r.Route("/price", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(svc.Price)
			r.With(requireKey).Post("/refresh", priceHandler.RefreshAll)
		})

		r.Route("/backup", func(r chi.Router) {
			backupHandler := handlers.NewBackupHandler(svc.Backup)
			r.Get("/export", backupHandler.Export)
			r.With(requireKey).Post("/import", backupHandler.Import)
		})
	})

	return r
}
