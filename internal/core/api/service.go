// Package api implements the gRPC attestation decode service.
// Thin orchestration layer delegating to the codec and archive packages.
package api

import (
	"fmt"

	"github.com/trufnetwork/tnattest/internal/core/archive"
	"github.com/trufnetwork/tnattest/internal/core/config"
)

// AttestService implements the AttestServer interface. The archive is
// optional: when queries is nil, decoded payloads are returned without
// being persisted.
type AttestService struct {
	cfg     *config.AttestAPIConfig
	queries *archive.Queries
}

var _ AttestServer = (*AttestService)(nil)

// NewAttestService creates a service instance. queries may be nil to run
// without an archive.
func NewAttestService(cfg *config.AttestAPIConfig, queries *archive.Queries) (*AttestService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	return &AttestService{
		cfg:     cfg,
		queries: queries,
	}, nil
}
