// Package server wires the HTTP surface of the record store: routes,
// middleware chain and lifecycle.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/roach88/nysm/internal/config"
	"github.com/roach88/nysm/internal/server/handlers"
	"github.com/roach88/nysm/internal/server/middleware"
)

// maxBodyBytes caps request bodies at 1 MiB, matching the original API.
const maxBodyBytes = 1 << 20

// Server is the HTTP front of the record store.
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
}

// New builds a server with all routes and middleware attached.
func New(cfg *config.Config, logger *slog.Logger, version string, recordsSvc handlers.RecordsService, integritySvc handlers.IntegrityService) *Server {
	recordsHandler := handlers.NewRecordsHandler(logger, recordsSvc)
	integrityHandler := handlers.NewIntegrityHandler(logger, integritySvc)
	healthHandler := handlers.NewHealthHandler(logger, version)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/save-feelings", recordsHandler.SaveFeelings)
	mux.HandleFunc("GET /api/get-feelings", recordsHandler.GetFeelings)
	mux.HandleFunc("POST /api/save-coins", recordsHandler.SaveCoins)
	mux.HandleFunc("GET /api/get-coins", recordsHandler.GetCoins)
	mux.HandleFunc("POST /api/save-todos", recordsHandler.SaveTodos)
	mux.HandleFunc("GET /api/get-todos", recordsHandler.GetTodos)
	mux.HandleFunc("POST /api/save-bookmark", recordsHandler.SaveBookmark)
	mux.HandleFunc("GET /api/get-bookmark/{bookId}", recordsHandler.GetBookmark)
	mux.HandleFunc("GET /api/get-all-bookmarks", recordsHandler.GetAllBookmarks)
	mux.HandleFunc("GET /api/get-products", recordsHandler.GetProducts)
	mux.HandleFunc("POST /api/add-product", recordsHandler.AddProduct)
	mux.HandleFunc("POST /api/purchase-product", recordsHandler.PurchaseProduct)
	mux.HandleFunc("GET /api/get-purchases", recordsHandler.GetPurchases)
	mux.HandleFunc("GET /api/check-integrity", integrityHandler.CheckIntegrity)
	mux.HandleFunc("POST /api/restore-feelings", integrityHandler.RestoreFeelings)
	mux.HandleFunc("POST /api/reset-feelings", integrityHandler.ResetFeelings)
	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Innermost first: logging sees the final status, recovery wraps
	// everything.
	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/api/health"})(handler)
	handler = middleware.RateLimitMiddleware(cfg.RateLimit, cfg.RateWindow, logger)(handler)
	handler = middleware.BodyLimitMiddleware(maxBodyBytes)(handler)
	handler = middleware.CORSMiddleware()(handler)
	handler = middleware.RequestIDMiddleware()(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", slog.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
