package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
	engineuc "github.com/huntly/leadsearch/internal/usecase/engine"
	healthuc "github.com/huntly/leadsearch/internal/usecase/health"
	indexeruc "github.com/huntly/leadsearch/internal/usecase/indexer"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search engine and indexer over HTTP.
type Server struct {
	engine        *engineuc.Service
	indexer       *indexeruc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	engine *engineuc.Service,
	indexer *indexeruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		engine:  engine,
		indexer: indexer,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrLeadNotFound, http.StatusNotFound, codeLeadNotFound),
		sentinelHandler(domain.ErrJobNotFound, http.StatusNotFound, codeJobNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrCorpusUnavailable, http.StatusServiceUnavailable, codeCorpusUnavailable),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			r.Post("/", s.Search)
			r.Get("/suggestions", s.Suggestions)
			r.Get("/stats", s.SearchStats)
			r.Post("/cache/invalidate", s.InvalidateCache)
		})

		r.Route("/preferences/{userID}", func(r chi.Router) {
			r.Get("/", s.GetPreferences)
			r.Put("/", s.SavePreferences)
		})

		r.Route("/index", func(r chi.Router) {
			r.Post("/lead", s.IndexLead)
			r.Post("/lead/{id}", s.IndexLeadByID)
			r.Delete("/lead/{id}", s.RemoveLead)
			r.Post("/bulk", s.BulkIndex)
			r.Post("/reindex", s.Reindex)
			r.Get("/status", s.IndexStatus)
			r.Get("/jobs/{id}", s.IndexJob)
			r.Post("/jobs/{id}/cancel", s.CancelIndexJob)
		})
	})
}

// Search handles POST /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Query) == "" && req.Filters.IsZero() {
		writeError(w, http.StatusBadRequest, codeInvalidQuery, "query text or filters required")
		return
	}

	var prefs *domain.Preferences
	if req.UserID > 0 {
		prefs = s.engine.Preferences(r.Context(), req.UserID)
	}

	query := domain.Query{
		Text:    req.Query,
		Filters: req.Filters,
		SortBy:  req.SortBy,
		Limit:   req.Limit,
		Offset:  req.Offset,
	}
	results, err := s.engine.Search(r.Context(), query, prefs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results: results,
		Count:   len(results),
		Query:   req.Query,
		Limit:   req.Limit,
		Offset:  req.Offset,
	})
}

// Suggestions handles GET /api/search/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	partial := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	suggestions := s.engine.Suggestions(r.Context(), partial, limit)
	if suggestions == nil {
		suggestions = []string{}
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{
		Query:       partial,
		Suggestions: suggestions,
	})
}

// SearchStats handles GET /api/search/stats.
func (s *Server) SearchStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.SearchStats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// InvalidateCache handles POST /api/search/cache/invalidate.
func (s *Server) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	n := s.engine.InvalidateCache(r.Context())
	writeJSON(w, http.StatusOK, invalidateResponse{Invalidated: n})
}

// GetPreferences handles GET /api/preferences/{userID}.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt64(w, r, "userID")
	if !ok {
		return
	}

	prefs := s.engine.Preferences(r.Context(), userID)
	if prefs == nil {
		prefs = &domain.Preferences{}
	}
	writeJSON(w, http.StatusOK, prefs)
}

// SavePreferences handles PUT /api/preferences/{userID}.
func (s *Server) SavePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt64(w, r, "userID")
	if !ok {
		return
	}

	var prefs domain.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.engine.SavePreferences(r.Context(), userID, prefs)
	w.WriteHeader(http.StatusNoContent)
}

// IndexLead handles POST /api/index/lead. The full lead record comes in
// the body; the caller owns the record store write, this only indexes.
func (s *Server) IndexLead(w http.ResponseWriter, r *http.Request) {
	var lead domain.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if lead.ID <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "lead id is required")
		return
	}
	if lead.Company == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "lead company is required")
		return
	}

	if err := s.indexer.IndexLead(r.Context(), lead); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, indexLeadResponse{LeadID: lead.ID, Indexed: true})
}

// IndexLeadByID handles POST /api/index/lead/{id}. Reindexes a lead
// already present in the record store.
func (s *Server) IndexLeadByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	if err := s.indexer.IndexLeadByID(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, indexLeadResponse{LeadID: id, Indexed: true})
}

// RemoveLead handles DELETE /api/index/lead/{id}.
func (s *Server) RemoveLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	if err := s.indexer.Remove(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removeLeadResponse{LeadID: id, Removed: true})
}

// BulkIndex handles POST /api/index/bulk. Starts an asynchronous job;
// an empty lead_ids list indexes the whole corpus.
func (s *Server) BulkIndex(w http.ResponseWriter, r *http.Request) {
	var req bulkIndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	job := s.indexer.StartBulkJob(r.Context(), req.LeadIDs)
	writeJSON(w, http.StatusAccepted, job)
}

// Reindex handles POST /api/index/reindex. Runs synchronously.
func (s *Server) Reindex(w http.ResponseWriter, r *http.Request) {
	stats := s.indexer.ReindexAll(r.Context())
	writeJSON(w, http.StatusOK, stats)
}

// IndexStatus handles GET /api/index/status.
func (s *Server) IndexStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.indexer.Status(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// IndexJob handles GET /api/index/jobs/{id}.
func (s *Server) IndexJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.indexer.Job(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// CancelIndexJob handles POST /api/index/jobs/{id}/cancel.
func (s *Server) CancelIndexJob(w http.ResponseWriter, r *http.Request) {
	if err := s.indexer.CancelJob(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrLeadNotFound,
		domain.ErrJobNotFound,
		domain.ErrInvalidQuery,
		domain.ErrCorpusUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
