// Package web assembles the page handlers into the application router.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"schemereg/internal/identity"
	"schemereg/internal/journey"
	"schemereg/internal/platform/metrics"
	"schemereg/internal/session"
	"schemereg/internal/web/landing"
	"schemereg/internal/web/membership"
	"schemereg/internal/web/nomination"
	"schemereg/internal/web/packaging"
	"schemereg/internal/web/registration"
	"schemereg/internal/web/render"
	"schemereg/pkg/platform/httputil"
	"schemereg/pkg/platform/middleware/metadata"
	"schemereg/pkg/platform/middleware/request"
	"schemereg/pkg/platform/middleware/requesttime"
)

// ViewError is the page every unrecoverable failure lands on.
const ViewError = "Error"

const healthTimeout = 2 * time.Second

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers groups the page handlers mounted by the router.
type Handlers struct {
	Landing      *landing.Handler
	Packaging    *packaging.Handler
	Registration *registration.Handler
	Membership   *membership.Handler
	Nomination   *nomination.Handler
}

// Config carries everything NewRouter wires together.
type Config struct {
	Logger         *slog.Logger
	Sessions       *session.Manager
	Guard          *journey.Guard
	Tokens         identity.Validator
	IdentityCookie string
	Metrics        *metrics.Registry
	// Health names the backing services probed by /healthz.
	Health   map[string]HealthChecker
	Handlers Handlers
}

// NewRouter builds the application router. Health, metrics and the error page are served
// without a session; every other page requires a signed-in user and the session cookie.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(countRequests(cfg.Metrics))
	}
	r.Use(request.Recovery(cfg.Logger, string(journey.PageError)))

	r.Get("/healthz", healthHandler(cfg.Health))
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}
	r.Get(string(journey.PageError), func(w http.ResponseWriter, _ *http.Request) {
		render.View(w, ViewError, nil, nil, string(journey.PageLanding))
	})

	h := cfg.Handlers
	r.Group(func(r chi.Router) {
		r.Use(identity.Authenticate(cfg.Tokens, cfg.IdentityCookie, cfg.Logger))
		r.Use(cfg.Sessions.Middleware)

		h.Landing.Register(r)
		r.Group(func(r chi.Router) {
			r.Use(identity.Require(identity.EprSelectSchemePolicy, cfg.Logger))
			h.Landing.RegisterProducerSchemes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(identity.Require(identity.EprFileUploadPolicy, cfg.Logger))
			h.Packaging.Register(r, cfg.Guard)
			h.Registration.Register(r, cfg.Guard)
		})
		r.Group(func(r chi.Router) {
			r.Use(identity.Require(identity.EprNonRegulatorRolesPolicy, cfg.Logger))
			h.Membership.Register(r, cfg.Guard)
			h.Nomination.Register(r, cfg.Guard)
		})
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// healthHandler probes every checker concurrently and answers 503 when any is down.
func healthHandler(checks map[string]HealthChecker) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		results := make([]string, len(names))
		var g errgroup.Group
		for i, name := range names {
			g.Go(func() error {
				results[i] = "ok"
				if err := checks[name].Health(ctx); err != nil {
					results[i] = err.Error()
				}
				return nil
			})
		}
		_ = g.Wait()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
		status := http.StatusOK
		for i, name := range names {
			resp.Checks[name] = results[i]
			if results[i] != "ok" {
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}
		httputil.WriteJSON(w, status, resp)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// countRequests counts requests by matched route pattern so ids in paths do not explode
// the label space.
func countRequests(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			reg.HTTPRequests.WithLabelValues(route, statusClass(rec.status)).Inc()
		})
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
