package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	probmodels "github.com/b5strbal/probability-models"
	"github.com/b5strbal/probability-models/internal/dto"
	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/layout"
	"github.com/b5strbal/probability-models/pkg/markup"
	"github.com/go-chi/chi/v5"
)

// MaxBodyBytes caps posted definitions.
const MaxBodyBytes = 1 << 20

// Engine defines what the HTTP API needs from the rendering core.
// *probmodels.Engine satisfies it.
type Engine interface {
	List(ctx context.Context) ([]string, error)
	Experiment(ctx context.Context, name string) (*domain.Experiment, error)
	Describe(ctx context.Context, name string) (string, error)
	AreaModel(ctx context.Context, name string, opts ...markup.AreaOption) (string, error)
	TreeModel(ctx context.Context, name string, opts ...layout.TreeOption) (string, error)
	Mermaid(ctx context.Context, name, highlight string, opts ...layout.TreeOption) (string, error)
	RenderArea(ctx context.Context, label string, exp *domain.Experiment, opts ...markup.AreaOption) (string, error)
	RenderTree(ctx context.Context, label string, exp *domain.Experiment, opts ...layout.TreeOption) (string, error)
	RenderMermaid(ctx context.Context, label string, exp *domain.Experiment, highlight string, opts ...layout.TreeOption) (string, error)
}

// Server serves the experiment API.
type Server struct {
	Engine  Engine
	Metrics *Metrics
	Logger  *slog.Logger
}

// NewHandler creates a new HTTP handler for the engine. metrics may be nil,
// in which case /metrics is not mounted.
func NewHandler(engine Engine, metrics *Metrics, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	server := &Server{Engine: engine, Metrics: metrics, Logger: logger}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/experiments", server.ListExperiments)
	r.Get("/experiments/{name}", server.GetExperiment)
	r.Get("/experiments/{name}/area", server.GetArea)
	r.Get("/experiments/{name}/tree", server.GetTree)
	r.Post("/render/area", server.PostArea)
	r.Post("/render/tree", server.PostTree)
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "probmodels-http",
		"version": probmodels.Version,
	})
}

// ListExperiments handles the GET /experiments request.
func (s *Server) ListExperiments(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"experiments": names})
}

// GetExperiment handles the GET /experiments/{name} request.
// The experiment is returned as an explicit definition.
func (s *Server) GetExperiment(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	exp, err := s.Engine.Experiment(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	desc, err := s.Engine.Describe(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.FromExperiment(name, desc, exp))
}

// GetArea handles the GET /experiments/{name}/area request.
func (s *Server) GetArea(w http.ResponseWriter, r *http.Request) {
	opts, err := areaOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.Engine.AreaModel(r.Context(), chi.URLParam(r, "name"), opts...)
	s.writeMarkup(w, out, err)
}

// GetTree handles the GET /experiments/{name}/tree request.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	opts, mermaid, err := treeOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	name := chi.URLParam(r, "name")

	var out string
	if mermaid {
		out, err = s.Engine.Mermaid(r.Context(), name, r.URL.Query().Get("highlight"), opts...)
	} else {
		out, err = s.Engine.TreeModel(r.Context(), name, opts...)
	}
	s.writeMarkup(w, out, err)
}

// PostArea handles the POST /render/area request.
func (s *Server) PostArea(w http.ResponseWriter, r *http.Request) {
	opts, err := areaOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	def, exp, err := s.decodeDefinition(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.Engine.RenderArea(r.Context(), label(def), exp, opts...)
	s.writeMarkup(w, out, err)
}

// PostTree handles the POST /render/tree request.
func (s *Server) PostTree(w http.ResponseWriter, r *http.Request) {
	opts, mermaid, err := treeOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	def, exp, err := s.decodeDefinition(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var out string
	if mermaid {
		out, err = s.Engine.RenderMermaid(r.Context(), label(def), exp, r.URL.Query().Get("highlight"), opts...)
	} else {
		out, err = s.Engine.RenderTree(r.Context(), label(def), exp, opts...)
	}
	s.writeMarkup(w, out, err)
}

func (s *Server) decodeDefinition(w http.ResponseWriter, r *http.Request) (dto.Definition, *domain.Experiment, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return dto.Definition{}, nil, errors.Join(domain.ErrInvalidInput, err)
	}
	def, err := dto.ParseJSON(data)
	if err != nil {
		return dto.Definition{}, nil, err
	}
	exp, err := def.Experiment()
	if err != nil {
		return dto.Definition{}, nil, err
	}
	return def, exp, nil
}

func label(def dto.Definition) string {
	if def.Name == "" {
		return "posted"
	}
	return def.Name
}

func boolParam(r *http.Request, key string, fallback bool) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Join(domain.ErrInvalidInput, errors.New("query parameter "+key+" must be a boolean"))
	}
	return v, nil
}

func areaOptions(r *http.Request) ([]markup.AreaOption, error) {
	columns, err := boolParam(r, "columns", false)
	if err != nil {
		return nil, err
	}
	return []markup.AreaOption{markup.WithColumnLabels(columns)}, nil
}

func treeOptions(r *http.Request) ([]layout.TreeOption, bool, error) {
	labels, err := boolParam(r, "labels", true)
	if err != nil {
		return nil, false, err
	}
	var mermaid bool
	switch format := r.URL.Query().Get("format"); format {
	case "", "tikz":
	case "mermaid":
		mermaid = true
	default:
		return nil, false, errors.Join(domain.ErrInvalidInput, errors.New("unknown format "+strconv.Quote(format)))
	}
	if !mermaid && r.URL.Query().Get("highlight") != "" {
		return nil, false, errors.Join(domain.ErrInvalidInput, errors.New("highlight requires format=mermaid"))
	}
	return []layout.TreeOption{layout.WithLabels(labels)}, mermaid, nil
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrExperimentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedDepth):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error      string             `json:"error"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	} else {
		s.Logger.Debug("request rejected", "status", status, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Violations: domain.Violations(err)})
}

func (s *Server) writeMarkup(w http.ResponseWriter, out string, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, out); err != nil {
		s.Logger.Error("markup response write failed", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
