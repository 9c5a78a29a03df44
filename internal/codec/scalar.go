package codec

import (
	"strings"
	"unicode/utf8"

	"github.com/trufnetwork/tnattest/internal/types"
)

// Tag classifies a type-descriptor name into a decoding rule. The wire
// carries free-form names; the network currently emits the PostgreSQL-style
// tags below. Unrecognized names map to TagUnknown, which decodes as UTF-8
// text with a raw-bytes fallback so a new tag never crashes an old client.
type Tag int

const (
	TagUnknown Tag = iota
	TagText
	TagUUID
	TagInt
	TagBool
	TagNumeric
	TagBytes
)

// tagOf resolves a type name case-insensitively. Aliases follow the
// network's SQL dialect: int/int8/integer are all the 64-bit integer type.
func tagOf(name string) Tag {
	switch strings.ToLower(name) {
	case "text":
		return TagText
	case "uuid":
		return TagUUID
	case "int", "int8", "integer":
		return TagInt
	case "bool", "boolean":
		return TagBool
	case "numeric", "decimal":
		return TagNumeric
	case "bytea", "blob":
		return TagBytes
	default:
		return TagUnknown
	}
}

// decodeScalar interprets one null-stripped payload according to tag.
// rawName is the original descriptor name, used only for error context.
func decodeScalar(tag Tag, rawName string, payload []byte) (any, error) {
	switch tag {
	case TagText, TagUUID:
		return string(payload), nil
	case TagInt:
		if len(payload) != 8 {
			return nil, &types.ScalarError{Tag: rawName, Len: len(payload)}
		}
		return int64(readU64BE(payload, 0)), nil
	case TagBool:
		return len(payload) > 0 && payload[0] == 1, nil
	case TagNumeric:
		// The network sends decimal text for numerics, not a binary
		// fixed-point encoding.
		return string(payload), nil
	case TagBytes:
		return payload, nil
	default:
		// Forward compatibility: attempt UTF-8, fall back to raw bytes,
		// never fail.
		if utf8.Valid(payload) {
			return string(payload), nil
		}
		return payload, nil
	}
}

// stripNullIndicator splits one data item into its presence flag and
// payload. An empty item or a leading 0 byte is null; a leading 1 byte
// precedes the actual payload.
func stripNullIndicator(item []byte) (payload []byte, null bool) {
	if len(item) == 0 || item[0] == 0 {
		return nil, true
	}
	return item[1:], false
}

// DecodeValue converts one EncodedValue into a native Go value: a scalar
// (string, int64, bool, []byte), nil for null, or []any for arrays where
// each element is independently nullable.
func DecodeValue(ev types.EncodedValue) (any, error) {
	tag := tagOf(ev.Type.Name)

	if ev.Type.IsArray {
		out := make([]any, 0, len(ev.Data))
		for _, item := range ev.Data {
			payload, null := stripNullIndicator(item)
			if null {
				out = append(out, nil)
				continue
			}
			v, err := decodeScalar(tag, ev.Type.Name, payload)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	if len(ev.Data) == 0 {
		return nil, nil
	}
	payload, null := stripNullIndicator(ev.Data[0])
	if null {
		return nil, nil
	}
	return decodeScalar(tag, ev.Type.Name, payload)
}
