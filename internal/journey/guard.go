package journey

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"schemereg/pkg/requestcontext"
)

// Source loads the current journey of a family for the request's session.
type Source interface {
	Journey(ctx context.Context, family Family) (Journey, error)
}

// boundQuery lists the query parameters that name the entity a step was visited for.
var boundQuery = []string{"submissionId"}

// Guard enforces that a page is only reachable once it has been recorded in the journey,
// and only for the ids it was recorded with.
type Guard struct {
	source    Source
	logger    *slog.Logger
	redirects *prometheus.CounterVec
}

// NewGuard builds a Guard. Redirect counts are registered with reg.
func NewGuard(source Source, logger *slog.Logger, reg prometheus.Registerer) *Guard {
	return &Guard{
		source: source,
		logger: logger,
		redirects: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "schemereg_journey_guard_redirects_total",
			Help: "Requests redirected by the journey guard, by family, page and reason",
		}, []string{"family", "page", "reason"}),
	}
}

// Require lets the request through only when page is in the flow's journey with the same
// route parameters and submission as the request. A user with no journey is sent to the
// flow fallback; a user who skipped ahead or swapped an id is sent back to the last page
// they legitimately reached.
func (g *Guard) Require(flow Flow, page Page) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			j, err := g.source.Journey(ctx, flow.Family)
			if err != nil {
				g.logger.WarnContext(ctx, "journey unavailable, treating as empty",
					"request_id", requestcontext.RequestID(ctx),
					"family", flow.Family,
					"error", err,
				)
				j = Journey{}
			}

			if reached(j, page, r) {
				next.ServeHTTP(w, r)
				return
			}

			target, reason := flow.Fallback, "empty"
			if last, ok := j.Last(); ok {
				target, reason = last.Path, "out_of_sequence"
				if j.Contains(page) {
					reason = "id_mismatch"
				}
			}
			g.redirects.WithLabelValues(string(flow.Family), string(page), reason).Inc()
			g.logger.InfoContext(ctx, "journey guard redirect",
				"request_id", requestcontext.RequestID(ctx),
				"family", flow.Family,
				"page", page,
				"target", target,
			)
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}

// reached reports whether any visit to page was recorded for the ids the request names.
func reached(j Journey, page Page, r *http.Request) bool {
	for _, step := range j.steps {
		if step.Page == page && step.binds(r) {
			return true
		}
	}
	return false
}

// binds reports whether the request carries the route parameters and bound query values
// recorded in the step's path.
func (s Step) binds(r *http.Request) bool {
	recorded, err := url.Parse(s.Path)
	if err != nil {
		return false
	}
	pattern := strings.Split(strings.Trim(string(s.Page), "/"), "/")
	segments := strings.Split(strings.Trim(recorded.Path, "/"), "/")
	for i, seg := range pattern {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := seg[1 : len(seg)-1]
		if i >= len(segments) || chi.URLParam(r, name) != segments[i] {
			return false
		}
	}
	query, want := r.URL.Query(), recorded.Query()
	for _, key := range boundQuery {
		if query.Get(key) != want.Get(key) {
			return false
		}
	}
	return true
}
