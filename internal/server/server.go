// Package server wires the application together: database, services,
// handlers, middleware, and routes. It is the composition root — every
// dependency is assembled here and nowhere else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/auth"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/handler"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/middleware"
	sqliteRepo "github.com/hcanning/hcann-CafeteriaMenu/internal/repository/sqlite"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/seed"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port          int
	DBPath        string
	AdminUsername string
	AdminPassword string
	SessionTTL    time.Duration
}

// Server owns the router and the long-lived resources — the database
// connection and the session store — both released on shutdown.
type Server struct {
	router   *chi.Mux
	config   Config
	logger   *slog.Logger
	db       *sqliteRepo.DB
	sessions *auth.SessionStore
}

// New assembles the full dependency chain:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// It also runs the two startup tasks: the admin account bootstrap and the
// base-menu seed (empty store only).
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		db:       db,
		sessions: auth.NewSessionStore(cfg.SessionTTL),
	}

	if err := s.setup(); err != nil {
		s.sessions.Close()
		db.Close()
		return nil, err
	}

	return s, nil
}

// setup wires services and routes and runs the startup tasks.
func (s *Server) setup() error {
	mealService := service.NewMealService(s.db, s.logger)
	authService := service.NewAuthService(s.db, s.sessions, auth.NewPasswordService(), s.logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := authService.EnsureAdmin(ctx, s.config.AdminUsername, s.config.AdminPassword); err != nil {
		return fmt.Errorf("bootstrapping admin account: %w", err)
	}
	if err := seed.Meals(ctx, s.db, s.logger); err != nil {
		return fmt.Errorf("seeding menu: %w", err)
	}

	mealHandler := handler.NewMealHandler(mealService, validator.New())
	authHandler := handler.NewAuthHandler(authService, s.sessions.TTL())

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.HandleHealth)

		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)

		// Public menu reads.
		r.Get("/meals", mealHandler.HandleListAll)
		r.Get("/meals/{day}", mealHandler.HandleListByDay)
		r.Get("/meal/{id}", mealHandler.HandleGetByID)

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(s.sessions))

			r.Get("/auth/user", authHandler.HandleMe)

			r.Post("/admin/meals", mealHandler.HandleCreate)
			r.Put("/admin/meals/{id}", mealHandler.HandleUpdate)
			r.Delete("/admin/meals/{id}", mealHandler.HandleDelete)
		})
	})

	return nil
}

// Router exposes the assembled routes, mainly for httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the server's long-lived resources.
func (s *Server) Close() {
	s.sessions.Close()
	if err := s.db.Close(); err != nil {
		s.logger.Error("closing database", slog.String("error", err.Error()))
	}
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up
// to 30 seconds, then close the session store and the database.
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
