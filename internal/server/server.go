package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"PnLBoard/internal/aggregator"
	"PnLBoard/internal/config"
	"PnLBoard/internal/loader"
	"PnLBoard/internal/logger"
	"PnLBoard/internal/parser"
	"PnLBoard/internal/source"
)

// Server is the HTTP presentation adapter. It owns the cache instance that
// sits between the loader and the handlers; the cache key is the sheet URL,
// i.e. the source identity.
type Server struct {
	loader    *loader.Loader
	cache     *loader.Cache
	cacheKey  string
	formatter *Formatter
	log       *logger.Logger
	router    *mux.Router
}

// New wires the loader, cache, and routes.
func New(cfg *config.Config, ld *loader.Loader, cache *loader.Cache, log *logger.Logger) *Server {
	s := &Server{
		loader:    ld,
		cache:     cache,
		cacheKey:  cfg.Source.SheetURL,
		formatter: NewFormatter(cfg.Server.Currency),
		log:       log,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/api/dashboard", s.handleDashboard).Methods(http.MethodGet)
	s.router.HandleFunc("/api/refresh", s.handleRefresh).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// Router returns the HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.cache.GetOrLoad(r.Context(), s.cacheKey, s.loader.Load)
	if err != nil {
		s.writeError(w, err)
		return
	}
	metrics, err := aggregator.Summarize(snap.Dataset)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, buildDashboard(snap, metrics, s.formatter))
}

// handleRefresh invalidates the memo and reloads synchronously. Idempotent:
// repeating it just fetches again.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.cache.Invalidate(s.cacheKey)
	snap, err := s.cache.GetOrLoad(r.Context(), s.cacheKey, s.loader.Load)
	if err != nil {
		s.log.Warn("manual refresh failed", zap.Error(err))
		s.writeError(w, err)
		return
	}
	s.log.Info("manual refresh", zap.Int("records", len(snap.Dataset)))
	s.writeJSON(w, http.StatusOK, RefreshResponse{
		Refreshed:     true,
		Records:       len(snap.Dataset),
		LastRefreshed: snap.FetchedAt.Format(time.RFC1123),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		unavailErr *source.UnavailableError
		formatErr  *parser.FormatError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &unavailErr), errors.As(err, &formatErr):
		status = http.StatusBadGateway
	case errors.Is(err, aggregator.ErrEmptyDataset):
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
