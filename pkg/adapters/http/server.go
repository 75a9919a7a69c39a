// Package http exposes the wizard engine, the clinical resolvers, and the AI
// generation relay over a chi router. Wizard endpoints are state-in/state-out;
// passing a sessionId instead persists the state server-side.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulmotools/ildflow/internal/metrics"
	"github.com/pulmotools/ildflow/pkg/domain"
	"github.com/pulmotools/ildflow/pkg/graphs"
	"github.com/pulmotools/ildflow/pkg/session"
	"github.com/pulmotools/ildflow/pkg/wizard"
)

// Server routes API requests to the wizard engines and resolvers.
type Server struct {
	registry *graphs.Registry
	engines  map[string]*wizard.Engine
	sessions *session.Manager
	streams  *StreamManager
	logger   *slog.Logger
}

// NewHandler builds the API handler. generate serves POST /api/generate;
// sessions may be nil to disable server-side persistence.
func NewHandler(reg *graphs.Registry, sessions *session.Manager, generate http.Handler, logger *slog.Logger) (http.Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	engines := make(map[string]*wizard.Engine)
	for _, g := range reg.List() {
		eng, err := wizard.NewEngine(g, wizard.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("graph %q: %w", g.ID, err)
		}
		engines[g.ID] = eng
	}

	s := &Server{
		registry: reg,
		engines:  engines,
		sessions: sessions,
		streams:  NewStreamManager(logger),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.getHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Handle("/generate", instrumentGenerate(generate))
		r.Get("/events", s.subscribeEvents)

		r.Get("/graphs", s.listGraphs)
		r.Route("/graphs/{graphID}", func(r chi.Router) {
			r.Get("/", s.getGraph)
			r.Post("/start", s.wizardOp(opStart))
			r.Post("/navigate", s.wizardOp(opNavigate))
			r.Post("/select", s.wizardOp(opSelect))
			r.Post("/answer", s.wizardOp(opAnswer))
			r.Post("/advance", s.wizardOp(opAdvance))
			r.Post("/back", s.wizardOp(opBack))
			r.Post("/reset", s.wizardOp(opReset))
		})

		r.Get("/sessions", s.listSessions)
		r.Delete("/sessions/{sessionID}", s.deleteSession)

		s.mountTools(r)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func instrumentGenerate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		metrics.GenerateDuration.Observe(time.Since(start).Seconds())
		outcome := "ok"
		if ww.Status() >= 400 {
			outcome = "error"
		}
		metrics.GenerateRequests.WithLabelValues(outcome).Inc()
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// graphSummary is the list representation of a graph.
type graphSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Entry string `json:"entry"`
}

func (s *Server) listGraphs(w http.ResponseWriter, r *http.Request) {
	list := s.registry.List()
	out := make([]graphSummary, 0, len(list))
	for _, g := range list {
		out = append(out, graphSummary{ID: g.ID, Title: g.Title, Entry: g.Entry})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.registry.Get(chi.URLParam(r, "graphID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown graph")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

type wizardOpKind int

const (
	opStart wizardOpKind = iota
	opNavigate
	opSelect
	opAnswer
	opAdvance
	opBack
	opReset
)

// wizardRequest is the shared body for the wizard endpoints. Either State or
// SessionID must be set, except for start and reset which accept neither.
type wizardRequest struct {
	State     *domain.State `json:"state,omitempty"`
	SessionID string        `json:"sessionId,omitempty"`

	// Navigate target.
	Next string `json:"next,omitempty"`
	// Selected option value.
	Value string `json:"value,omitempty"`
	// Answer field update.
	Field  string `json:"field,omitempty"`
	Toggle bool   `json:"toggle,omitempty"`
}

// wizardResponse carries the resulting state plus the rendered step.
type wizardResponse struct {
	SessionID string        `json:"sessionId,omitempty"`
	State     *domain.State `json:"state"`
	Step      *domain.Step  `json:"step"`
	Terminal  bool          `json:"terminal"`
}

func (s *Server) wizardOp(kind wizardOpKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graphID := chi.URLParam(r, "graphID")
		eng, ok := s.engines[graphID]
		if !ok {
			writeError(w, http.StatusNotFound, "unknown graph")
			return
		}

		var req wizardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		state, err := s.resolveState(r, eng, &req, kind)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		next, err := s.applyOp(eng, kind, state, &req)
		if err != nil {
			var incomplete *wizard.IncompleteError
			switch {
			case errors.As(err, &incomplete):
				writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
					"error":   incomplete.Error(),
					"missing": incomplete.Missing,
				})
			case errors.Is(err, domain.ErrUnknownStep):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				s.logger.Error("wizard operation failed", "graph", graphID, "error", err)
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		if next.CurrentStep != state.CurrentStep {
			metrics.Transitions.WithLabelValues(graphID).Inc()
		}

		if req.SessionID != "" && s.sessions != nil {
			if err := s.sessions.Save(r.Context(), req.SessionID, next); err != nil {
				s.logger.Error("failed to persist session", "session_id", req.SessionID, "error", err)
				writeError(w, http.StatusInternalServerError, "failed to persist session")
				return
			}
			s.streams.BroadcastState(req.SessionID, next)
		}

		step, err := eng.Current(next)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, wizardResponse{
			SessionID: req.SessionID,
			State:     next,
			Step:      step,
			Terminal:  step.Terminal(),
		})
	}
}

func (s *Server) resolveState(r *http.Request, eng *wizard.Engine, req *wizardRequest, kind wizardOpKind) (*domain.State, error) {
	if kind == opStart || kind == opReset {
		if req.SessionID != "" && s.sessions != nil && kind == opStart {
			return s.sessions.LoadOrStart(r.Context(), req.SessionID, eng.Graph().Entry)
		}
		return eng.Start(), nil
	}
	if req.SessionID != "" {
		if s.sessions == nil {
			return nil, errors.New("session persistence is not enabled")
		}
		return s.sessions.Load(r.Context(), req.SessionID)
	}
	if req.State == nil {
		return nil, errors.New("state or sessionId is required")
	}
	return req.State, nil
}

func (s *Server) applyOp(eng *wizard.Engine, kind wizardOpKind, state *domain.State, req *wizardRequest) (*domain.State, error) {
	switch kind {
	case opStart:
		return state, nil
	case opNavigate:
		return eng.NavigateTo(state, req.Next)
	case opSelect:
		return eng.SelectOption(state, req.Value)
	case opAnswer:
		if req.Field == "" {
			return nil, errors.New("field is required")
		}
		if req.Toggle {
			return eng.ToggleAnswer(state, req.Field, req.Value), nil
		}
		return eng.RecordAnswer(state, req.Field, req.Value), nil
	case opAdvance:
		return eng.Advance(state)
	case opBack:
		return eng.GoBack(state), nil
	case opReset:
		return eng.Reset(), nil
	}
	return nil, errors.New("unknown operation")
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeError(w, http.StatusNotFound, "session persistence is not enabled")
		return
	}
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeError(w, http.StatusNotFound, "session persistence is not enabled")
		return
	}
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
