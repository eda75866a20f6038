// Package http provides the operational HTTP routes served next to the SSE transport.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/observability"
	"github.com/aretw0/tickertape/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Info identifies the running server.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolView is the JSON shape of a tool in GET /tools.
type ToolView struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  []domain.Parameter `json:"parameters"`
}

// PromptView is the JSON shape of a prompt in GET /tools.
type PromptView struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Arguments   []domain.PromptArgument `json:"arguments"`
}

// Catalog is the body of GET /tools.
type Catalog struct {
	Tools   []ToolView   `json:"tools"`
	Prompts []PromptView `json:"prompts"`
}

// NewRouter returns a router with /health, /info, /tools and, when metrics is
// non-nil, /metrics. Callers mount the transport endpoints on it.
func NewRouter(reg *registry.Registry, info Info, metrics *observability.Metrics, logger *slog.Logger) chi.Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, map[string]string{"status": "ok"})
	})
	r.Get("/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, info)
	})
	r.Get("/tools", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, CatalogOf(reg))
	})
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler())
	}
	return r
}

// CatalogOf snapshots the tools and prompts of reg in registration order.
func CatalogOf(reg *registry.Registry) Catalog {
	c := Catalog{Tools: []ToolView{}, Prompts: []PromptView{}}
	for _, spec := range reg.Tools() {
		params := spec.Parameters
		if params == nil {
			params = []domain.Parameter{}
		}
		c.Tools = append(c.Tools, ToolView{Name: spec.Name, Description: spec.Description, Parameters: params})
	}
	for _, p := range reg.Prompts() {
		args := p.Arguments
		if args == nil {
			args = []domain.PromptArgument{}
		}
		c.Prompts = append(c.Prompts, PromptView{Name: p.Name, Description: p.Description, Arguments: args})
	}
	return c
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Baggage, Sentry-Trace")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
