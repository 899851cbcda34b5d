// Package server exposes the temple engine over HTTP: status effects,
// session completion, companion scanning, and a live event stream.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/oneiric/dreamtemple/internal/companions"
	"github.com/oneiric/dreamtemple/internal/config"
	"github.com/oneiric/dreamtemple/internal/ledger"
	"github.com/oneiric/dreamtemple/internal/rewards"
	"github.com/oneiric/dreamtemple/internal/server/sse"
	"github.com/oneiric/dreamtemple/internal/session"
	"github.com/oneiric/dreamtemple/internal/store"
	"github.com/oneiric/dreamtemple/pkg/models"
)

// Deps carries the wired domain components the service serves.
type Deps struct {
	Config   *config.Config
	Sessions *store.SessionStore
	Ledger   *ledger.Ledger
	Registry *companions.Registry
	Tracker  *rewards.Tracker
	Scanner  *companions.Scanner
	Engine   *session.Engine
}

// Service is the HTTP front end of the temple engine.
type Service struct {
	version   string
	cfg       *config.Config
	sessions  *store.SessionStore
	ledger    *ledger.Ledger
	registry  *companions.Registry
	tracker   *rewards.Tracker
	scanner   *companions.Scanner
	engine    *session.Engine
	sse       *sse.Broadcaster
	router    chi.Router
	startTime time.Time
	ready     atomic.Bool
}

// New builds the service and its routes. Ledger expiries are forwarded
// to connected SSE clients.
func New(version string, deps Deps) *Service {
	svc := &Service{
		version:   version,
		cfg:       deps.Config,
		sessions:  deps.Sessions,
		ledger:    deps.Ledger,
		registry:  deps.Registry,
		tracker:   deps.Tracker,
		scanner:   deps.Scanner,
		engine:    deps.Engine,
		sse:       sse.NewBroadcaster(),
		router:    chi.NewRouter(),
		startTime: time.Now(),
	}

	svc.ledger.SetOnExpired(func(expired []models.ExpiredStatusEffect) {
		svc.sse.Broadcast(sse.Event{Type: "effects_expired", Data: expired})
	})

	svc.setupRoutes()
	svc.ready.Store(true)
	return svc
}

func (s *Service) setupRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)
		r.Get("/events", s.sse.HandleSSE)

		r.Route("/effects", func(r chi.Router) {
			r.Get("/", s.handleListEffects)
			r.Post("/", s.handleAdmitEffect)
			r.Get("/aggregate", s.handleAggregateEffects)
			r.Delete("/{id}", s.handleRevokeEffect)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleCompleteSession)
		})

		r.Post("/scan", s.handleScan)
		r.Get("/stats", s.handleStats)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/companions", s.handleCompanions)
	})
}

// Router returns the HTTP handler, for embedding and tests.
func (s *Service) Router() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", s.cfg.Port).Str("version", s.version).Msg("Temple server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("Temple server stopped")
	return nil
}
