package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"supplyledger/internal/platform/metrics"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/platform/httputil"
	"supplyledger/pkg/platform/middleware/auth"
	"supplyledger/pkg/platform/middleware/metadata"
	"supplyledger/pkg/platform/middleware/request"
	"supplyledger/pkg/platform/middleware/requesttime"
)

// RouteRegistrar is implemented by every bounded-context handler.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Config carries everything the router needs. Handlers are mounted under the
// versioned, authenticated prefix in the order given.
type Config struct {
	Logger    *slog.Logger
	Validator auth.JWTValidator
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Health    map[string]HealthCheck
	Handlers  []RouteRegistrar
}

// NewRouter wires global middleware, the unauthenticated operational
// endpoints and the authenticated API.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(cfg.Logger))
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(cfg.Logger))
	r.Use(requesttime.Middleware)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/healthz", healthHandler(cfg.Health))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route(domain.DefaultVersion().Prefix(), func(v chi.Router) {
		v.Use(auth.RequireAuth(cfg.Validator, cfg.Logger))
		for _, h := range cfg.Handlers {
			h.Register(v)
		}
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
