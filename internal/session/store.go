package session

import (
	"context"
	"time"
)

// Store persists serialised sessions by key. Implementations return sentinel.ErrNotFound
// from Get when the key is absent or expired. Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const keySuffix = "FrontendSchemeRegistrationSession"

// Key is the store key of the session with the given cookie id.
func Key(sessionID string) string {
	return "session:" + sessionID + ":" + keySuffix
}
