// Package session keeps the per-browser workflow state.
//
// The browser holds only an opaque cookie id. The session document lives in a Store and
// is loaded at most once per request; later reads in the same request are served from a
// request-scoped holder.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"schemereg/internal/journey"
	dErrors "schemereg/pkg/domain-errors"
	"schemereg/pkg/platform/sentinel"
	"schemereg/pkg/requestcontext"
)

// Manager issues session cookies and loads and saves sessions for a request.
type Manager struct {
	store      Store
	logger     *slog.Logger
	cookieName string
	secure     bool
	ttl        time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithSecureCookie marks the cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithIdleTimeout sets how long an untouched session lives.
func WithIdleTimeout(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// NewManager builds a Manager over store.
func NewManager(store Store, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		logger:     logger,
		cookieName: ".schemereg.session",
		secure:     true,
		ttl:        20 * time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type holderKey struct{}

type holder struct {
	id      string
	loaded  bool
	session Session
}

// Middleware reads the session cookie, issuing a new id when it is missing or malformed,
// and attaches a request-scoped holder for Get and Save.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(m.cookieName); err == nil {
			if _, perr := uuid.Parse(c.Value); perr == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), holderKey{}, &holder{id: sid})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func holderFrom(ctx context.Context) (*holder, error) {
	h, ok := ctx.Value(holderKey{}).(*holder)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "session middleware not installed")
	}
	return h, nil
}

// Get returns the request's session. A session that does not exist yet, or cannot be
// decoded, comes back empty rather than as an error.
func (m *Manager) Get(ctx context.Context) (Session, error) {
	h, err := holderFrom(ctx)
	if err != nil {
		return Session{}, err
	}
	if h.loaded {
		return h.session, nil
	}

	data, err := m.store.Get(ctx, Key(h.id))
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		h.session = Session{}
	case err != nil:
		return Session{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "load session")
	default:
		var s Session
		if uerr := json.Unmarshal(data, &s); uerr != nil {
			m.logger.WarnContext(ctx, "discarding unreadable session",
				"request_id", requestcontext.RequestID(ctx),
				"error", uerr,
			)
			s = Session{}
		}
		h.session = s
	}
	h.loaded = true
	return h.session, nil
}

// Save writes s through to the store and makes it the request's current session.
// Concurrent saves from other tabs are overwritten.
func (m *Manager) Save(ctx context.Context, s Session) error {
	h, err := holderFrom(ctx)
	if err != nil {
		return err
	}
	s.Version++
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Set(ctx, Key(h.id), data, m.ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "save session")
	}
	h.session = s
	h.loaded = true
	return nil
}

// Clear deletes the stored session; the next Get starts empty.
func (m *Manager) Clear(ctx context.Context) error {
	h, err := holderFrom(ctx)
	if err != nil {
		return err
	}
	if err := m.store.Delete(ctx, Key(h.id)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "clear session")
	}
	h.session = Session{}
	h.loaded = true
	return nil
}

// Journey returns the journey of family from the request's session.
func (m *Manager) Journey(ctx context.Context, family journey.Family) (journey.Journey, error) {
	s, err := m.Get(ctx)
	if err != nil {
		return journey.Journey{}, err
	}
	return s.Journey(family), nil
}
