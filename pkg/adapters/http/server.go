package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cardio-onc/qtwizard"
	"github.com/cardio-onc/qtwizard/internal/dto"
	"github.com/cardio-onc/qtwizard/internal/logging"
	"github.com/cardio-onc/qtwizard/internal/presentation/graph"
	"github.com/cardio-onc/qtwizard/internal/runtime"
	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/ports"
	"github.com/cardio-onc/qtwizard/pkg/registry"
	"github.com/cardio-onc/qtwizard/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Actions accepted by POST /navigate.
const (
	ActionOption = "option"
	ActionChoose = "choose"
	ActionNext   = "next"
	ActionBack   = "back"
	ActionReplay = "replay"
)

// NavigateRequest carries the client-held index and the requested move.
type NavigateRequest struct {
	Current int    `json:"current"`
	Action  string `json:"action"`
	// Label is the clicked text for "option".
	Label string `json:"label,omitempty"`
	// Option is the zero-based clickable option for "choose".
	Option *int `json:"option,omitempty"`
	// Target is the popped history step for "replay".
	Target *int `json:"target,omitempty"`
}

// NavigateResponse reports the outcome. Push is true when the client must push
// {step: current} onto its history.
type NavigateResponse struct {
	Current   int      `json:"current"`
	Committed bool     `json:"committed"`
	Push      bool     `json:"push"`
	Suppress  bool     `json:"suppress_transition_effect"`
	Step      dto.Step `json:"step"`
}

// Server is a stateless JSON front for the navigation engine.
// Each request rebuilds an engine at the client's index; nothing is kept
// between requests.
type Server struct {
	Registry *registry.Registry
	Logger   *slog.Logger
	Hooks    domain.LifecycleHooks
	Gatherer prometheus.Gatherer
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithLifecycleHooks attaches hooks to every per-request engine.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ServerOption {
	return func(s *Server) {
		s.Hooks = hooks
	}
}

// WithGatherer serves g on /metrics instead of the default registry.
func WithGatherer(g prometheus.Gatherer) ServerOption {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// NewHandler creates the HTTP handler for reg.
func NewHandler(reg *registry.Registry, opts ...ServerOption) http.Handler {
	s := &Server{
		Registry: reg,
		Logger:   logging.NewNop(),
		Gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/steps", s.ListSteps)
	r.Get("/steps/{index}", s.GetStep)
	r.Post("/navigate", s.Navigate)
	r.Get("/graph", s.GetGraph)
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListSteps handles GET /steps.
func (s *Server) ListSteps(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, dto.FromRegistry(s.Registry))
}

// GetStep handles GET /steps/{index}.
func (s *Server) GetStep(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "Invalid step index", http.StatusBadRequest)
		return
	}

	step, err := s.Registry.Get(index)
	if err != nil {
		if errors.Is(err, domain.ErrOutOfRange) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Step error: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.FromStep(step))
}

// Navigate handles POST /navigate.
func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	var body NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Navigate: Invalid request body", "error", err)
		return
	}

	if !s.Registry.InRange(body.Current) {
		http.Error(w, fmt.Sprintf("current %d out of range [0, %d)", body.Current, s.Registry.Len()), http.StatusBadRequest)
		return
	}

	if body.Label != "" {
		clean, err := runner.NormalizeLabel(body.Label)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid label: %v", err), http.StatusBadRequest)
			s.Logger.Warn("Navigate: Label rejected", "error", err, "size", len(body.Label))
			return
		}
		body.Label = clean
	}

	var push bool
	engine := runtime.NewEngine(s.Registry,
		runtime.WithStartIndex(body.Current),
		runtime.WithAnimationDelay(0),
		runtime.WithLogger(s.Logger),
		runtime.WithLifecycleHooks(s.Hooks),
		runtime.WithRecorder(ports.RecorderFunc(func(context.Context, int) { push = true })),
	)
	defer engine.Close()

	committed, err := apply(r.Context(), engine, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := engine.State()
	s.writeJSON(w, http.StatusOK, NavigateResponse{
		Current:   state.CurrentIndex,
		Committed: committed,
		Push:      push,
		Suppress:  state.SuppressTransitionEffect,
		Step:      dto.FromStep(engine.Step()),
	})
}

func apply(ctx context.Context, engine *runtime.Engine, body NavigateRequest) (bool, error) {
	switch strings.ToLower(body.Action) {
	case ActionOption:
		return engine.HandleOptionClick(ctx, body.Label), nil
	case ActionChoose:
		if body.Option == nil {
			return false, errors.New("choose requires option")
		}
		return engine.ChooseOption(ctx, *body.Option), nil
	case ActionNext:
		return engine.HandleNext(ctx), nil
	case ActionBack:
		return engine.HandleBack(ctx), nil
	case ActionReplay:
		// An absent target mirrors a state-less history entry.
		target := domain.PopEvent{}
		if body.Target != nil {
			target.State = &domain.HistoryState{Step: *body.Target}
		}
		return engine.Replay(ctx, target.TargetIndex()), nil
	default:
		return false, fmt.Errorf("unknown action %q", body.Action)
	}
}

// GetGraph handles GET /graph. An optional ?current=N highlights a step.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.GraphOverlay
	if v := r.URL.Query().Get("current"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Invalid current", http.StatusBadRequest)
			return
		}
		overlay = &graph.GraphOverlay{CurrentStep: n, HasCurrent: true}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(s.Registry, overlay))
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":     "qtwizard-http",
		"version": qtwizard.Version,
		"steps":   s.Registry.Len(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
