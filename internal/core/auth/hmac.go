package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseAPIKey splits an API key into its signed payload and signature.
// Format: tn-v1-<secret_id>-<random_data>-<mac>, where secret_id is 32 hex
// chars (UUIDv7 without hyphens), random_data is 64 hex chars (256 bits),
// and mac is the hex HMAC-SHA256 of "tn-v1-<secret_id>-<random_data>".
func ParseAPIKey(key string) (secretID, payload string, mac []byte, err error) {
	parts := strings.Split(key, "-")
	if len(parts) != 5 || parts[0] != "tn" || parts[1] != "v1" {
		return "", "", nil, ErrInvalidKeyFormat
	}

	secretID = parts[2]
	randomData := parts[3]
	macHex := parts[4]

	if len(secretID) != 32 || len(randomData) != 64 || len(macHex) != 64 {
		return "", "", nil, ErrInvalidKeyFormat
	}
	for _, c := range secretID + randomData + macHex {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return "", "", nil, ErrInvalidKeyFormat
		}
	}

	mac, err = hex.DecodeString(macHex)
	if err != nil {
		return "", "", nil, ErrInvalidKeyFormat
	}

	return secretID, fmt.Sprintf("tn-v1-%s-%s", secretID, randomData), mac, nil
}

// ComputeHMAC computes the HMAC-SHA256 signature of payload using secret.
func ComputeHMAC(secret []byte, payload string) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(payload))
	return h.Sum(nil)
}

// VerifyHMAC compares signatures in constant time to prevent timing
// attacks.
func VerifyHMAC(expected, computed []byte) bool {
	return hmac.Equal(expected, computed)
}

// FormatAPIKey constructs a complete API key from a secret ID, random hex
// data, and the signing secret. Used during key generation.
func FormatAPIKey(secretID, randomData string, secret []byte) string {
	payload := fmt.Sprintf("tn-v1-%s-%s", secretID, randomData)
	return payload + "-" + hex.EncodeToString(ComputeHMAC(secret, payload))
}
