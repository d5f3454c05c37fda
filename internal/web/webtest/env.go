// Package webtest runs page handlers behind the real session and journey middleware, with
// an in-memory session store the test can seed and inspect.
package webtest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"schemereg/internal/identity"
	"schemereg/internal/journey"
	"schemereg/internal/session"
	id "schemereg/pkg/domain"
	"schemereg/pkg/testutil"
)

const cookieName = ".schemereg.session"

// Env is a router with session and identity wired for handler tests.
type Env struct {
	t         *testing.T
	Logger    *slog.Logger
	Store     *session.InMemoryStore
	Sessions  *session.Manager
	Guard     *journey.Guard
	Registry  *prometheus.Registry
	Router    chi.Router
	User      identity.User
	sessionID string
}

// New builds an Env signed in as an approved person of a producer organisation.
func New(t *testing.T) *Env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewInMemory()
	sessions := session.NewManager(store, logger, session.WithSecureCookie(false))
	reg := prometheus.NewRegistry()

	e := &Env{
		t:         t,
		Logger:    logger,
		Store:     store,
		Sessions:  sessions,
		Guard:     journey.NewGuard(sessions, logger, reg),
		Registry:  reg,
		User:      ApprovedPerson(),
		sessionID: uuid.NewString(),
	}
	r := chi.NewRouter()
	r.Use(sessions.Middleware)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := identity.WithUser(req.Context(), e.User)
			if org, ok := e.User.Primary(); ok {
				req = testutil.WithUser(req.WithContext(ctx), e.User.ID, org.ID)
			} else {
				req = req.WithContext(ctx)
			}
			next.ServeHTTP(w, req)
		})
	})
	e.Router = r
	return e
}

// ApprovedPerson is a producer's approved person.
func ApprovedPerson() identity.User {
	return identity.User{
		ID:          id.UserID(uuid.New()),
		Email:       "ada@example.com",
		FirstName:   "Ada",
		LastName:    "Person",
		ServiceRole: identity.RoleApprovedPerson,
		Organisations: []identity.Organisation{{
			ID:               id.OrganisationID(uuid.New()),
			Name:             "Acme Packaging Ltd",
			OrganisationRole: "Producer",
		}},
	}
}

// OrganisationID is the signed-in user's organisation.
func (e *Env) OrganisationID() id.OrganisationID {
	org, _ := e.User.Primary()
	return org.ID
}

// Seed stores s as the test browser's session.
func (e *Env) Seed(s session.Session) {
	e.t.Helper()
	data, err := json.Marshal(s)
	require.NoError(e.t, err)
	require.NoError(e.t, e.Store.Set(context.Background(), session.Key(e.sessionID), data, time.Hour))
}

// SeedJourney stores a session whose flow journey is steps.
func (e *Env) SeedJourney(family journey.Family, steps ...journey.Step) {
	e.t.Helper()
	e.Seed(session.Session{}.WithJourney(family, journey.New(steps...)))
}

// Session reads back the test browser's session.
func (e *Env) Session() session.Session {
	e.t.Helper()
	data, err := e.Store.Get(context.Background(), session.Key(e.sessionID))
	require.NoError(e.t, err)
	var s session.Session
	require.NoError(e.t, json.Unmarshal(data, &s))
	return s
}

// Do serves req with the test browser's session cookie.
func (e *Env) Do(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(&http.Cookie{Name: cookieName, Value: e.sessionID})
	return testutil.DoRequest(e.Router, req)
}

// Get serves a GET of path.
func (e *Env) Get(path string) *httptest.ResponseRecorder {
	return e.Do(httptest.NewRequest(http.MethodGet, path, nil))
}
