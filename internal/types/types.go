// Package types provides domain models shared across tnattest components.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library so the codec core can be embedded without pulling in transport or
// storage dependencies. ID utilities in ids.go import uuid but are isolated
// for selective inclusion.
//
// Separation from the codec: decoding logic lives in internal/codec. This
// package contains the decoded shapes and the error taxonomy those decoders
// produce, nothing that touches wire bytes itself.
package types

// TypeDescriptor is the self-describing type tag embedded in every encoded
// value on the wire: a short ASCII name (e.g. "text", "int8", "numeric"),
// an array flag, and two opaque metadata words (precision/scale for
// numerics, unused otherwise). Immutable once decoded.
type TypeDescriptor struct {
	Name     string
	IsArray  bool
	Metadata [2]uint16
}

// EncodedValue is the canonical wire unit representing one value, scalar or
// array: a type descriptor plus one length-prefixed data item per element.
//
// Null convention: an empty Data slice, or an item whose first byte is 0,
// denotes null. A leading byte of 1 marks a present value; the byte is
// stripped before scalar decoding.
type EncodedValue struct {
	Type TypeDescriptor
	Data [][]byte
}

// DecodedRow is one row of a query result table. Column order is preserved
// from the wire; values are native Go values produced by the scalar
// interpreter (string, int64, bool, []byte, or nil for SQL null).
type DecodedRow struct {
	Values []any
}

// AttestationPayload is the decoded attestation envelope returned by the
// network as proof of a computed result. The signature is sliced off by the
// caller before parsing; Version and Algorithm are passed through as opaque
// tags for downstream consumers to police.
//
// Constructed once per decode call from an immutable input buffer, never
// mutated afterwards, owned exclusively by the caller.
type AttestationPayload struct {
	Version      uint8
	Algorithm    uint8
	BlockHeight  uint64
	DataProvider string
	StreamID     string
	ActionID     uint16
	Args         []any
	Result       []DecodedRow
}
