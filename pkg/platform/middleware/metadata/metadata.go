package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"schemereg/pkg/requestcontext"
)

// ClientMetadata extracts client IP address, User-Agent and browser from the request
// and adds them to the context for request logging.
// This middleware should be applied early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), ua, Browser(ua))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Browser returns "<name> <version>" for a User-Agent string, or "" when unknown.
func Browser(ua string) string {
	if ua == "" {
		return ""
	}
	name, version := useragent.New(ua).Browser()
	if name == "" {
		return ""
	}
	return strings.TrimSpace(name + " " + version)
}

// ClientIPFromRequest extracts the real client IP from the request, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// First entry of X-Forwarded-For is the original client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port" or "[::1]:port"
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}

	return "unknown"
}
