package auth

import "errors"

// Authentication errors. All map to UNAUTHENTICATED at the gRPC boundary;
// the distinction is for logs and tests, not for callers (a uniform status
// avoids confirming whether a given key exists).
var (
	ErrMissingKey       = errors.New("API key required in x-api-key metadata")
	ErrInvalidKeyFormat = errors.New("invalid API key format")
	ErrUnknownKey       = errors.New("unknown secret ID")
	ErrInvalidKey       = errors.New("invalid API key signature")
)
