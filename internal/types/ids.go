package types

import (
	"github.com/google/uuid"
)

// RecordID identifies one archived attestation record.
// String alias enables type safety while maintaining JSON string serialization.
type RecordID string

// NewRecordID generates a UUIDv7 archive record identifier.
// Time-ordered IDs ensure sequential inserts cluster in B-tree pages.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewRecordID() RecordID {
	return RecordID(uuid.Must(uuid.NewV7()).String())
}

// ParseRecordID validates and converts a string to RecordID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the archive.
func ParseRecordID(s string) (RecordID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return RecordID(s), nil
}
