package codec

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/trufnetwork/tnattest/internal/types"
)

// Attestation payload layout (big-endian framing; signature already sliced
// off by the caller):
//
//	1 byte    version
//	1 byte    algorithm
//	8 bytes   block height
//	4 + n     data provider (length-prefixed)
//	4 + m     stream ID (length-prefixed)
//	2 bytes   action ID
//	4 + k     arguments (length-prefixed; inner buffer is the LE-framed
//	          argument buffer of value.go)
//	4 + r     result (length-prefixed; ABI datapoints of datapoints.go)
//
// Version and algorithm are passed through undecoded; rejecting unsupported
// values is the caller's contract.

// addressLength is the size of an on-chain account address. A data provider
// of exactly this many bytes renders as a 0x-prefixed hex address.
const addressLength = 20

// renderProvider converts the raw data-provider field to its display form:
// 20 bytes become a lowercase 0x hex address, valid UTF-8 passes through as
// text, anything else falls back to plain hex.
func renderProvider(raw []byte) string {
	if len(raw) == addressLength {
		return "0x" + hex.EncodeToString(raw)
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	return hex.EncodeToString(raw)
}

// DecodePayload parses a full attestation payload. Decoding is
// all-or-nothing: any truncated or malformed field fails the whole call
// with an error naming the field, and trailing bytes after the result
// section are rejected so storage corruption cannot round-trip silently.
func DecodePayload(buf []byte) (*types.AttestationPayload, error) {
	c := &beCursor{buf: buf}

	version, err := c.u8("version")
	if err != nil {
		return nil, err
	}
	algorithm, err := c.u8("algorithm")
	if err != nil {
		return nil, err
	}

	heightHigh, err := c.u32("block height high word")
	if err != nil {
		return nil, err
	}
	heightLow, err := c.u32("block height low word")
	if err != nil {
		return nil, err
	}

	provider, err := c.lengthPrefixed("data provider")
	if err != nil {
		return nil, err
	}
	streamID, err := c.lengthPrefixed("stream ID")
	if err != nil {
		return nil, err
	}

	actionID, err := c.u16("action ID")
	if err != nil {
		return nil, err
	}

	argsBuf, err := c.lengthPrefixed("arguments")
	if err != nil {
		return nil, err
	}
	args, err := DecodeArgumentBuffer(argsBuf)
	if err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}

	resultBuf, err := c.lengthPrefixed("result")
	if err != nil {
		return nil, err
	}
	result, err := DecodeDataPoints(resultBuf)
	if err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	if c.off != len(buf) {
		return nil, fmt.Errorf("attestation payload has %d trailing bytes", len(buf)-c.off)
	}

	return &types.AttestationPayload{
		Version:      version,
		Algorithm:    algorithm,
		BlockHeight:  uint64(heightHigh)<<32 | uint64(heightLow),
		DataProvider: renderProvider(provider),
		StreamID:     string(streamID),
		ActionID:     actionID,
		Args:         args,
		Result:       result,
	}, nil
}
