// Package ui exposes the detection lab over HTTP: JSON endpoints for
// analysis and experiments, plus a rendered summary report.
package ui

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"detectlab/app"
	"detectlab/domain/core"
	"detectlab/internal"
	"detectlab/internal/errors"
	"detectlab/ports"
)

// Server wires the lab services into an HTTP router
type Server struct {
	router      *chi.Mux
	analysis    *app.AnalysisService
	experiments *app.ExperimentService
	logger      *internal.Logger
}

// NewServer creates the HTTP server around the lab services
func NewServer(analysis *app.AnalysisService, experiments *app.ExperimentService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:      chi.NewRouter(),
		analysis:    analysis,
		experiments: experiments,
		logger:      logger,
	}
	s.setupRoutes()
	return s
}

// Router returns the configured router for mounting or serving
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/signals/summary", s.handleSignalSummary)
		r.Post("/experiments/{protocol}", s.handleRunProtocol)
		r.Post("/suites/{suite}", s.handleRunSuite)
	})
	s.router.Get("/report", s.handleReport)
}

// analyzeRequest is the POST /api/analyze body
type analyzeRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Notes   string `json:"notes"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 32<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput("request body unreadable"))
		return
	}

	var req analyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		// A non-JSON body is treated as raw transcript text.
		req = analyzeRequest{Name: "upload", Content: string(body)}
	}
	if req.Content == "" {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput("content is required"))
		return
	}

	rep, err := s.analysis.AnalyzeBatch(r.Context(), []app.Source{{Name: req.Name, Content: req.Content}}, req.Notes)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleSignalSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.analysis.SignalSummary(r.Context(), ports.SignalFilter{})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleRunProtocol(w http.ResponseWriter, r *http.Request) {
	key, err := core.ParseProtocolKey(chi.URLParam(r, "protocol"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput(err.Error()))
		return
	}

	contextVars := map[string]string{}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&contextVars)
	}

	results, err := s.experiments.RunProtocol(r.Context(), key, contextVars)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsCatalogError(err) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleRunSuite(w http.ResponseWriter, r *http.Request) {
	key, err := core.ParseSuiteKey(chi.URLParam(r, "suite"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput(err.Error()))
		return
	}

	contextVars := map[string]string{}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&contextVars)
	}

	summary, _, err := s.experiments.RunSuite(r.Context(), key, contextVars)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsCatalogError(err) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	signalSummary, err := s.analysis.SignalSummary(r.Context(), ports.SignalFilter{})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	resultSummary, err := s.experiments.ResultSummary(r.Context(), ports.ResultFilter{})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	html := RenderReportHTML(signalSummary, resultSummary)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("http %d: %v", status, err)
	s.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
