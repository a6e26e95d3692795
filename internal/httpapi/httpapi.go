// Package httpapi is a convenience HTTP wrapper around the same request
// handler the CLI uses, exposing POST /base, POST /requests, and
// GET /health. It introduces no new core semantics — see SPEC_FULL.md
// §4.6.
package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/antigravity/transitcat/internal/audit"
	"github.com/antigravity/transitcat/internal/handler"
	"github.com/antigravity/transitcat/internal/ingest"
	"github.com/antigravity/transitcat/internal/schema"
	"github.com/antigravity/transitcat/internal/transit"
	"github.com/antigravity/transitcat/internal/validation"
)

// snapshot is the (catalogue, graph, renderer) triple a POST /base call
// swaps in atomically; readers of /requests capture one pointer at the
// start of the request and serve entirely from it.
type snapshot struct {
	handler *handler.Handler
}

// Server hosts the chi router and the currently active snapshot.
type Server struct {
	router    *chi.Mux
	current   atomic.Pointer[snapshot]
	auditSink *audit.Sink
	logger    *zap.Logger
}

// New builds a Server with no catalogue loaded yet; POST /base must be
// called before POST /requests can answer anything.
func New(auditSink *audit.Sink, logger *zap.Logger) *Server {
	s := &Server{auditSink: auditSink, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Post("/base", s.handleBase)
	r.Post("/requests", s.handleRequests)
	r.Get("/health", s.handleHealth)

	s.router = r
	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleBase(w http.ResponseWriter, r *http.Request) {
	correlationID := uuid.NewString()
	logger := s.logger.With(zap.String("correlation_id", correlationID))

	var doc schema.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		logger.Warn("malformed base document", zap.Error(err))
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	if err := validation.Document(&doc); err != nil {
		logger.Warn("base document validation failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if doc.RenderSettings == nil || doc.RoutingSettings == nil {
		http.Error(w, "render_settings and routing_settings are required", http.StatusBadRequest)
		return
	}

	cat, err := ingest.Catalogue(doc.BaseRequests)
	if err != nil {
		logger.Warn("catalogue build failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	renderSettings, err := ingest.RenderSettings(doc.RenderSettings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	routingSettings := transit.Settings{
		BusWaitTimeMinutes: doc.RoutingSettings.BusWaitTime,
		BusVelocityKmh:     doc.RoutingSettings.BusVelocity,
	}
	router, err := transit.Build(cat, routingSettings)
	if err != nil {
		logger.Warn("routing graph build failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h := handler.New(cat, router, renderSettings, s.auditSink, s.logger)
	s.current.Store(&snapshot{handler: h})

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	correlationID := uuid.NewString()

	snap := s.current.Load()
	if snap == nil {
		http.Error(w, "no catalogue loaded, call POST /base first", http.StatusConflict)
		return
	}

	var reqs []schema.StatRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	replies := snap.handler.Answer(correlationID, reqs)
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(replies)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	loaded := s.current.Load() != nil
	auditOK := s.auditSink.Healthy(r.Context())

	status := http.StatusOK
	if !loaded {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]bool{"catalogue_loaded": loaded, "audit_reachable": auditOK})
}

