// Package auth provides HMAC-based API key authentication for the gRPC
// decode service.
//
// Keys are self-authenticating: the key carries a secret ID, random data,
// and an HMAC-SHA256 signature over the first two computed with the secret
// the ID names. Validation needs only the in-memory secret map, no
// storage round trip, which keeps the decode service stateless.
package auth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// contextKey is a typed key for context values to avoid collisions.
type contextKey string

// keyIDKey is the context key for the authenticated secret ID.
const keyIDKey = contextKey("key_id")

// Authenticator validates API keys using HMAC-SHA256 signatures.
// Holds an in-memory secret map for O(1) lookup.
type Authenticator struct {
	secrets map[string][]byte
}

// NewAuthenticator creates an authenticator over the given HMAC secrets
// (secret_id -> secret bytes, loaded from the environment by config).
func NewAuthenticator(secrets map[string][]byte) *Authenticator {
	return &Authenticator{secrets: secrets}
}

// Authenticate validates an API key and returns its secret ID on success.
func (a *Authenticator) Authenticate(ctx context.Context, apiKey string) (string, error) {
	secretID, payload, mac, err := ParseAPIKey(apiKey)
	if err != nil {
		return "", err
	}

	secret, ok := a.secrets[secretID]
	if !ok {
		return "", ErrUnknownKey
	}

	if !VerifyHMAC(mac, ComputeHMAC(secret, payload)) {
		return "", ErrInvalidKey
	}
	return secretID, nil
}

// UnaryInterceptor returns a gRPC interceptor that authenticates requests
// via the x-api-key metadata entry.
func (a *Authenticator) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		apiKeys := md.Get("x-api-key")
		if len(apiKeys) == 0 {
			return nil, status.Error(codes.Unauthenticated, ErrMissingKey.Error())
		}

		keyID, err := a.Authenticate(ctx, apiKeys[0])
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}

		ctx = context.WithValue(ctx, keyIDKey, keyID)
		return handler(ctx, req)
	}
}

// KeyIDFromContext extracts the authenticated secret ID from the context.
// Returns an empty string if not found.
func KeyIDFromContext(ctx context.Context) string {
	if keyID, ok := ctx.Value(keyIDKey).(string); ok {
		return keyID
	}
	return ""
}
