// Package config provides configuration management for tnattest services.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"
)

// AttestAPIConfig holds configuration for the gRPC attestation decode
// service.
type AttestAPIConfig struct {
	Host            string
	Port            int
	RequestTimeout  time.Duration
	MaxPayloadBytes int
	ArchiveURL      string
}

// DefaultAttestAPIConfig returns configuration with default values.
func DefaultAttestAPIConfig() *AttestAPIConfig {
	return &AttestAPIConfig{
		Host:            "0.0.0.0",
		Port:            50061,
		RequestTimeout:  30 * time.Second,
		MaxPayloadBytes: 4 * 1024 * 1024,
		ArchiveURL:      "",
	}
}

// HMACSecrets extracts HMAC secrets from environment variables.
// Supports TN_HMAC_SECRET (single) and TN_HMAC_SECRET_N (rotation).
// Returns a map of secret_id -> decoded secret bytes.
// Secret IDs are UUIDv7 (32 hex chars without hyphens) matching the API
// key format.
func HMACSecrets() (map[string][]byte, error) {
	secrets := make(map[string][]byte)

	// Single secret TN_HMAC_SECRET, format: <secret_id>:<base64_secret>
	if val := os.Getenv("TN_HMAC_SECRET"); val != "" {
		secretID, decoded, err := ParseHMACSecretWithID(val)
		if err != nil {
			return nil, fmt.Errorf("TN_HMAC_SECRET: %w", err)
		}
		secrets[secretID] = decoded
	}

	// Numbered secrets TN_HMAC_SECRET_1, TN_HMAC_SECRET_2, etc.
	// Multiple secrets enable rotation: old and new keys stay valid during
	// migration.
	for i := 1; ; i++ {
		key := fmt.Sprintf("TN_HMAC_SECRET_%d", i)
		val := os.Getenv(key)
		if val == "" {
			break
		}
		secretID, decoded, err := ParseHMACSecretWithID(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if _, exists := secrets[secretID]; exists {
			return nil, fmt.Errorf("duplicate secret_id '%s' found in environment variables (check TN_HMAC_SECRET and TN_HMAC_SECRET_* for conflicts)", secretID)
		}
		secrets[secretID] = decoded
	}

	return secrets, nil
}

// ParseHMACSecretWithID parses the <secret_id>:<base64_secret> format.
// Secret ID must be 32 hex chars (UUIDv7 without hyphens).
func ParseHMACSecretWithID(envValue string) (secretID string, secret []byte, err error) {
	parts := strings.SplitN(strings.TrimSpace(envValue), ":", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("format must be <secret_id>:<base64_secret>")
	}

	secretID = parts[0]
	if len(secretID) != 32 {
		return "", nil, fmt.Errorf("secret_id must be 32 hex chars (UUIDv7 without hyphens)")
	}
	for _, c := range secretID {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return "", nil, fmt.Errorf("secret_id must be hex chars only")
		}
	}

	secret, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	if len(secret) < 32 {
		return "", nil, fmt.Errorf("secret must be at least 32 bytes, got %d", len(secret))
	}

	return secretID, secret, nil
}
