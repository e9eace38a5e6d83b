// Package server wires the stores, composer, hub, and snapshot manager
// into the HTTP surface.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/avandermeer/wellspring/internal/dashboard"
	"github.com/avandermeer/wellspring/internal/handler"
	"github.com/avandermeer/wellspring/internal/hub"
	"github.com/avandermeer/wellspring/internal/middleware"
	"github.com/avandermeer/wellspring/internal/snapshot"
	"github.com/avandermeer/wellspring/internal/store"
)

type Server struct {
	db          *sql.DB
	hub         *hub.Hub
	composer    *dashboard.Composer
	metricH     *handler.MetricHandler
	sessionH    *handler.SessionHandler
	dashboardH  *handler.DashboardHandler
	rateLimiter *middleware.RateLimiter
	snapshotMgr *snapshot.Manager
	logger      *slog.Logger
}

func New(db *sql.DB, snapCfg snapshot.Config, logger *slog.Logger) *Server {
	h := hub.NewHub(logger.With("component", "hub"))

	stores := dashboard.Stores{
		Metrics:  store.NewMetricStore(db),
		Scores:   store.NewLifeScoreStore(db),
		Sessions: store.NewSessionStore(db),
		Streaks:  store.NewStreakStore(db),
		Profiles: store.NewProfileStore(db),
		Analyses: store.NewAnalysisStore(db),
		Flags:    store.NewFlagStore(db),
	}
	composer := dashboard.NewComposer(stores, h, nil, logger)

	return &Server{
		db:          db,
		hub:         h,
		composer:    composer,
		metricH:     handler.NewMetricHandler(composer, stores.Metrics, logger.With("component", "metric")),
		sessionH:    handler.NewSessionHandler(composer, stores.Sessions, logger.With("component", "session")),
		dashboardH:  handler.NewDashboardHandler(composer, logger.With("component", "dashboard_http")),
		rateLimiter: middleware.NewRateLimiter(60, time.Minute),
		snapshotMgr: snapshot.NewManager(snapCfg, db, logger),
		logger:      logger,
	}
}

// SnapshotManager returns the snapshot manager for lifecycle control.
func (s *Server) SnapshotManager() *snapshot.Manager {
	return s.snapshotMgr
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/metrics", s.rateLimited(s.metricH.Create))
	mux.HandleFunc("GET /api/metrics", s.metricH.List)
	mux.HandleFunc("POST /api/sessions", s.rateLimited(s.sessionH.Create))
	mux.HandleFunc("POST /api/sessions/{id}/response", s.rateLimited(s.sessionH.Respond))
	mux.HandleFunc("GET /api/dashboard", s.dashboardH.Get)
	mux.HandleFunc("POST /api/profile/regenerate", s.rateLimited(s.dashboardH.RegenerateProfile))
	mux.HandleFunc("GET /ws", hub.Handler(s.hub, s.logger.With("component", "ws")))
	mux.HandleFunc("GET /health", s.healthHandler)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	limited := s.rateLimiter.Middleware(keyFunc)(http.HandlerFunc(h))
	return func(w http.ResponseWriter, r *http.Request) {
		limited.ServeHTTP(w, r)
	}
}
