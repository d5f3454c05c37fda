package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches and API clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: key or remote resource does not exist
//   - ErrExpired: stored entry outlived its ttl
//   - ErrInvalidState: entity in wrong state for requested operation
//   - ErrUnavailable: backing service temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
