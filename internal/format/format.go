// Package format provides the reference value formatter: it converts native
// Go values into the type-tagged EncodedValue bytes the network expects for
// action arguments.
//
// The codec core depends only on the codec.ValueFormatter capability
// interface; this package is the standalone implementation injected at the
// boundary, mirroring what the network's client library does. Formatting is
// pure computation with no I/O, so it satisfies the codec's non-blocking
// contract.
//
// Type mapping:
//   - string            -> text
//   - int/int8..int64   -> int8 (8-byte big-endian signed)
//   - bool              -> bool
//   - []byte            -> bytea
//   - *big.Int          -> numeric (decimal text)
//   - float64           -> numeric (decimal text)
//   - uuid.UUID         -> uuid
//   - nil               -> null under the hinted type (text if unhinted)
//   - []T / []any       -> array of the element mapping
//
// An explicit hint (e.g. "int8", "numeric(10,2)", "text[]") overrides
// inference and is validated against the value; mismatches are rejected
// rather than coerced.
package format

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/trufnetwork/tnattest/internal/codec"
	"github.com/trufnetwork/tnattest/internal/types"
)

// Formatter is the reference codec.ValueFormatter. Stateless and safe for
// concurrent use.
type Formatter struct{}

// New returns the reference formatter.
func New() *Formatter {
	return &Formatter{}
}

var _ codec.ValueFormatter = (*Formatter)(nil)

// dtype is a parsed type hint: the base wire type name plus array flag and
// optional numeric precision/scale.
type dtype struct {
	name         string
	isArray      bool
	precision    uint16
	scale        uint16
	hasPrecision bool
}

// parseHint normalizes a dtype hint. Empty hints return ok=false and leave
// type selection to inference.
func parseHint(hint string) (dtype, bool, error) {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return dtype{}, false, nil
	}

	var d dtype
	if strings.HasSuffix(hint, "[]") {
		d.isArray = true
		hint = strings.TrimSuffix(hint, "[]")
	}

	base, args, hasArgs := strings.Cut(hint, "(")
	switch base {
	case "text", "uuid", "bool", "boolean", "bytea", "blob":
		if hasArgs {
			return dtype{}, false, fmt.Errorf("type %q does not take parameters", base)
		}
		d.name = base
	case "int", "int8", "integer":
		if hasArgs {
			return dtype{}, false, fmt.Errorf("type %q does not take parameters", base)
		}
		d.name = "int8"
	case "numeric", "decimal":
		d.name = "numeric"
		if hasArgs {
			args = strings.TrimSuffix(args, ")")
			precStr, scaleStr, ok := strings.Cut(args, ",")
			if !ok {
				return dtype{}, false, fmt.Errorf("invalid numeric parameters %q: want numeric(precision,scale)", args)
			}
			prec, err := strconv.ParseUint(strings.TrimSpace(precStr), 10, 16)
			if err != nil {
				return dtype{}, false, fmt.Errorf("invalid numeric precision %q", precStr)
			}
			scale, err := strconv.ParseUint(strings.TrimSpace(scaleStr), 10, 16)
			if err != nil {
				return dtype{}, false, fmt.Errorf("invalid numeric scale %q", scaleStr)
			}
			if scale > prec {
				return dtype{}, false, fmt.Errorf("numeric scale %d exceeds precision %d", scale, prec)
			}
			d.precision = uint16(prec)
			d.scale = uint16(scale)
			d.hasPrecision = true
		}
	default:
		return dtype{}, false, fmt.Errorf("unknown type hint %q", hint)
	}
	return d, true, nil
}

// inferDtype maps a Go scalar to its wire type.
func inferDtype(value any) (dtype, error) {
	switch value.(type) {
	case string:
		return dtype{name: "text"}, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return dtype{name: "int8"}, nil
	case bool:
		return dtype{name: "bool"}, nil
	case []byte:
		return dtype{name: "bytea"}, nil
	case *big.Int, float64:
		return dtype{name: "numeric"}, nil
	case uuid.UUID:
		return dtype{name: "uuid"}, nil
	default:
		return dtype{}, fmt.Errorf("unsupported value type %T", value)
	}
}

// Format implements codec.ValueFormatter.
func (f *Formatter) Format(value any, hint string) ([]byte, error) {
	d, hinted, err := parseHint(hint)
	if err != nil {
		return nil, err
	}

	elems, isArray := arrayElements(value)
	if !hinted {
		if isArray {
			d, err = inferArrayDtype(elems)
		} else if value == nil {
			d = dtype{name: "text"}
		} else {
			d, err = inferDtype(value)
		}
		if err != nil {
			return nil, err
		}
		d.isArray = isArray
	} else if isArray && !d.isArray {
		return nil, fmt.Errorf("array value given for scalar hint %q", hint)
	}

	desc := types.TypeDescriptor{
		Name:     d.name,
		IsArray:  d.isArray,
		Metadata: [2]uint16{d.precision, d.scale},
	}

	ev := types.EncodedValue{Type: desc}
	if d.isArray {
		if !isArray && value != nil {
			return nil, fmt.Errorf("scalar value %T given for array hint %q", value, hint)
		}
		for i, elem := range elems {
			item, err := formatItem(elem, d)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			ev.Data = append(ev.Data, item)
		}
	} else if value != nil {
		item, err := formatItem(value, d)
		if err != nil {
			return nil, err
		}
		ev.Data = [][]byte{item}
	}
	// A nil scalar keeps Data empty: zero items is the wire's null form.

	return codec.EncodeEncodedValue(ev), nil
}

// arrayElements flattens supported slice types into []any. []byte is a
// bytea scalar, not an array.
func arrayElements(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []int64:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []bool:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case [][]byte:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []*big.Int:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

// inferArrayDtype infers the element type from the first non-nil element.
// An all-nil or empty array defaults to text.
func inferArrayDtype(elems []any) (dtype, error) {
	for _, e := range elems {
		if e == nil {
			continue
		}
		if _, nested := arrayElements(e); nested {
			return dtype{}, fmt.Errorf("nested arrays are not supported")
		}
		return inferDtype(e)
	}
	return dtype{name: "text"}, nil
}

// formatItem renders one data item: the null-indicator byte followed by the
// scalar payload.
func formatItem(value any, d dtype) ([]byte, error) {
	if value == nil {
		return []byte{0}, nil
	}
	payload, err := scalarPayload(value, d)
	if err != nil {
		return nil, err
	}
	return append([]byte{1}, payload...), nil
}

// scalarPayload converts one non-nil native scalar to its wire payload for
// the given dtype. Values that cannot represent the hinted type are
// rejected, not coerced.
func scalarPayload(value any, d dtype) ([]byte, error) {
	switch d.name {
	case "text":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("cannot format %T as text", value)
		}
		return []byte(s), nil

	case "uuid":
		switch v := value.(type) {
		case uuid.UUID:
			return []byte(v.String()), nil
		case string:
			u, err := uuid.Parse(v)
			if err != nil {
				return nil, fmt.Errorf("invalid uuid %q: %w", v, err)
			}
			return []byte(u.String()), nil
		default:
			return nil, fmt.Errorf("cannot format %T as uuid", value)
		}

	case "int8":
		i, err := toInt64(value)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 8)
		for b := 7; b >= 0; b-- {
			buf[b] = byte(i)
			i >>= 8
		}
		return buf, nil

	case "bool":
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("cannot format %T as bool", value)
		}
		if b {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case "bytea":
		raw, ok := value.([]byte)
		if !ok {
			return nil, fmt.Errorf("cannot format %T as bytea", value)
		}
		return raw, nil

	case "numeric":
		s, err := toDecimalString(value)
		if err != nil {
			return nil, err
		}
		if d.hasPrecision {
			if err := checkPrecision(s, d.precision, d.scale); err != nil {
				return nil, err
			}
		}
		return []byte(s), nil

	default:
		return nil, fmt.Errorf("unsupported dtype %q", d.name)
	}
}

// toInt64 widens any supported integer type, rejecting unsigned values that
// overflow int64.
func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, fmt.Errorf("unsigned value %d overflows int8", v)
		}
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("cannot format %T as int8", value)
	}
}

// toDecimalString renders a numeric value as plain decimal text.
func toDecimalString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		if _, _, err := splitDecimal(v); err != nil {
			return "", err
		}
		return v, nil
	case *big.Int:
		return v.String(), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("cannot format %v as numeric", v)
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", fmt.Errorf("cannot format %T as numeric", value)
	}
}

// splitDecimal validates a decimal literal and returns its integer and
// fractional digit strings (sign stripped).
func splitDecimal(s string) (intDigits, fracDigits string, err error) {
	t := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	intDigits, fracDigits, _ = strings.Cut(t, ".")
	if intDigits == "" && fracDigits == "" {
		return "", "", fmt.Errorf("invalid decimal %q", s)
	}
	for _, part := range []string{intDigits, fracDigits} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return "", "", fmt.Errorf("invalid decimal %q", s)
			}
		}
	}
	return intDigits, fracDigits, nil
}

// checkPrecision enforces numeric(p,s): at most p-s digits before the
// point and at most s after it. Values outside the declared shape are a
// formatting error, matching the network's rejection behavior.
func checkPrecision(s string, precision, scale uint16) error {
	intDigits, fracDigits, err := splitDecimal(s)
	if err != nil {
		return err
	}
	intDigits = strings.TrimLeft(intDigits, "0")
	if len(fracDigits) > int(scale) {
		return fmt.Errorf("value %s has %d fractional digits, numeric(%d,%d) allows %d", s, len(fracDigits), precision, scale, scale)
	}
	if len(intDigits) > int(precision)-int(scale) {
		return fmt.Errorf("value %s has %d integer digits, numeric(%d,%d) allows %d", s, len(intDigits), precision, scale, int(precision)-int(scale))
	}
	return nil
}
