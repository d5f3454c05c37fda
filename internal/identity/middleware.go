package identity

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "schemereg/pkg/domain-errors"
	"schemereg/pkg/platform/httputil"
	"schemereg/pkg/requestcontext"
)

// Validator validates an identity token.
type Validator interface {
	Validate(token string) (*User, error)
}

// Authenticate requires a valid identity token, from the Authorization header or the
// identity cookie, and puts the user and organisation into the request context.
func Authenticate(validator Validator, cookieName string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := tokenFrom(r, cookieName)
			if token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing identity token"))
				return
			}

			user, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			ctx = WithUser(ctx, *user)
			ctx = requestcontext.WithUserID(ctx, user.ID)
			if org, ok := user.Primary(); ok {
				ctx = requestcontext.WithOrganisationID(ctx, org.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFrom(r *http.Request, cookieName string) string {
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// Require rejects users the policy does not admit with 403.
func Require(p Policy, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			user, ok := FromContext(ctx)
			if !ok {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "not signed in"))
				return
			}
			if !p.Allow(user) {
				logger.WarnContext(ctx, "forbidden by policy",
					"request_id", requestcontext.RequestID(ctx),
					"policy", p.Name,
					"user_id", user.ID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, p.Name))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
