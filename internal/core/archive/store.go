package archive

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trufnetwork/tnattest/internal/types"
)

// ErrNotFound indicates no archived attestation matches the digest.
var ErrNotFound = errors.New("attestation not found")

// Record is one archived attestation. Digest is the sha256 of the raw
// payload bytes (the signed canonical bytes), which makes inserts
// idempotent: re-archiving the same payload is a no-op.
type Record struct {
	RecordID     types.RecordID `db:"record_id"`
	Digest       string         `db:"digest"`
	Version      uint8          `db:"version"`
	Algorithm    uint8          `db:"algorithm"`
	BlockHeight  uint64         `db:"block_height"`
	DataProvider string         `db:"data_provider"`
	StreamID     string         `db:"stream_id"`
	ActionID     uint16         `db:"action_id"`
	ArgsJSON     string         `db:"args_json"`
	ResultJSON   string         `db:"result_json"`
	Raw          []byte         `db:"raw"`
	CreatedAt    time.Time      `db:"created_at"`
}

// Store persists a decoded payload together with its raw bytes and returns
// the digest key. Duplicate digests are ignored, not errors.
func (q *Queries) Store(p *types.AttestationPayload, raw []byte) (string, error) {
	sum := sha256.Sum256(raw)
	digest := hex.EncodeToString(sum[:])

	argsJSON, err := json.Marshal(jsonSafeValues(p.Args))
	if err != nil {
		return "", fmt.Errorf("marshal args: %w", err)
	}

	rows := make([][]any, len(p.Result))
	for i, row := range p.Result {
		rows[i] = jsonSafeValues(row.Values)
	}
	resultJSON, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	_, err = q.Exec("insert-attestation",
		string(types.NewRecordID()), digest,
		p.Version, p.Algorithm, p.BlockHeight,
		p.DataProvider, p.StreamID, p.ActionID,
		string(argsJSON), string(resultJSON), raw,
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert attestation: %w", err)
	}
	return digest, nil
}

// GetAttestation returns the archived attestation with the given digest.
func (q *Queries) GetAttestation(digest string) (*Record, error) {
	var rec Record
	err := q.Get("get-attestation-by-digest", &rec, digest)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAttestations returns the most recently archived attestations,
// newest first.
func (q *Queries) ListAttestations(limit int) ([]Record, error) {
	var recs []Record
	if err := q.Select("list-attestations", &recs, limit); err != nil {
		return nil, err
	}
	return recs, nil
}

// jsonSafeValues converts decoded native values for JSON storage: []byte
// becomes a hex string, int64 stays numeric. Mirrors the rendering the CLI
// uses so archived rows match tool output.
func jsonSafeValues(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if raw, ok := v.([]byte); ok {
			out[i] = hex.EncodeToString(raw)
			continue
		}
		out[i] = v
	}
	return out
}
