package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/internal/config"
	"github.com/mdvenues/kitplanner/pkg/db"
)

const shutdownTimeout = 10 * time.Second

// Server represents the kit planner API server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   chi.Router
	handlers *Handlers
}

// NewServer creates a new API server backed by the given database
func NewServer(cfg *config.Config, database db.Database, logger *zap.Logger) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		router:   chi.NewRouter(),
		handlers: NewHandlers(database, cfg, logger),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)

	origins := s.config.API.AllowedOrigins
	allowCredentials := len(origins) > 0
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handlers.HealthCheck)

	s.router.Route("/api/v1/kits", func(r chi.Router) {
		// Stateless planning
		r.Post("/plan", s.handlers.PlanTransfers)
		r.Post("/validate", s.handlers.ValidatePlan)

		// Organization data
		r.Get("/weeks/{weekStart}/plan", s.handlers.GetWeekPlan)
		r.Get("/locations", s.handlers.ListKitLocations)
		r.Patch("/transfers/{id}", s.handlers.UpdateTransferStatus)
	})
}

// Router returns the chi router
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe serves the API until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.APIAddr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}
	return nil
}

// requestLogger logs one line per request with its status and duration
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
