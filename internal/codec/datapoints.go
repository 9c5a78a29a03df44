package codec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/trufnetwork/tnattest/internal/types"
)

// ABI datapoints: the result section of an attestation payload is the
// standard contract-ABI encoding of (uint256[] timestamps, int256[] values),
// where values are 18-decimal fixed point. The head holds two offset words,
// each pointing at a length word followed by that many 32-byte elements.

const abiWordSize = 32

// decimalPlaces is the fixed-point scale: an on-chain value equals the true
// decimal multiplied by 10^18.
const decimalPlaces = 18

var (
	fixedPointScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(decimalPlaces), nil)
	twoPow256       = new(big.Int).Lsh(big.NewInt(1), 256)
)

// abiWord reads the 32-byte word at off as an unsigned big integer.
func abiWord(buf []byte, off int, field string) (*big.Int, error) {
	if off < 0 || off+abiWordSize > len(buf) {
		return nil, &types.TruncatedError{Field: field, Offset: off, Need: abiWordSize, Have: len(buf) - off}
	}
	return new(big.Int).SetBytes(buf[off : off+abiWordSize]), nil
}

// abiOffset reads a head word and validates it fits the buffer as a byte
// offset.
func abiOffset(buf []byte, off int, field string) (int, error) {
	w, err := abiWord(buf, off, field)
	if err != nil {
		return 0, err
	}
	if !w.IsInt64() || w.Int64() > int64(len(buf)) {
		return 0, fmt.Errorf("%s %s exceeds buffer size %d", field, w, len(buf))
	}
	return int(w.Int64()), nil
}

// abiArray reads a dynamic array at off: one length word, then length
// elements of one word each. Returned integers are unsigned magnitudes;
// signed interpretation is the caller's concern.
func abiArray(buf []byte, off int, field string) ([]*big.Int, error) {
	length, err := abiWord(buf, off, field+" array length")
	if err != nil {
		return nil, err
	}
	if !length.IsInt64() {
		return nil, fmt.Errorf("%s array length %s exceeds buffer size %d", field, length, len(buf))
	}
	n := int(length.Int64())
	if n < 0 || n > (len(buf)-off-abiWordSize)/abiWordSize {
		return nil, &types.TruncatedError{Field: field + " array elements", Offset: off + abiWordSize, Need: n * abiWordSize, Have: len(buf) - off - abiWordSize}
	}

	out := make([]*big.Int, 0, n)
	for i := 0; i < n; i++ {
		w, err := abiWord(buf, off+abiWordSize*(i+1), fmt.Sprintf("%s element %d", field, i))
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// fromTwosComplement reinterprets an unsigned 256-bit magnitude as a signed
// int256.
func fromTwosComplement(w *big.Int) *big.Int {
	if w.Bit(255) == 0 {
		return w
	}
	return new(big.Int).Sub(w, twoPow256)
}

// FormatFixedPoint renders an 18-decimal fixed-point integer as a decimal
// string: "12.345" for 12345000000000000000, "-0.5" for
// -500000000000000000, "0" for zero. Trailing fractional zeros are
// stripped; a zero value never carries a sign.
func FormatFixedPoint(v *big.Int) string {
	sign := ""
	abs := v
	if v.Sign() < 0 {
		sign = "-"
		abs = new(big.Int).Neg(v)
	}

	intPart, fracPart := new(big.Int).QuoRem(abs, fixedPointScale, new(big.Int))
	fracDigits := fracPart.String()
	if len(fracDigits) < decimalPlaces {
		fracDigits = strings.Repeat("0", decimalPlaces-len(fracDigits)) + fracDigits
	}
	frac := strings.TrimRight(fracDigits, "0")
	if frac == "" {
		return sign + intPart.String()
	}
	return sign + intPart.String() + "." + frac
}

// DecodeDataPoints decodes the ABI-encoded (uint256[], int256[]) tuple into
// rows of [timestamp, value] string pairs. Empty input is the defined
// "no data" case and yields an empty row list; a length mismatch between
// the two arrays is a hard error.
func DecodeDataPoints(buf []byte) ([]types.DecodedRow, error) {
	if len(buf) == 0 {
		return []types.DecodedRow{}, nil
	}

	tsOff, err := abiOffset(buf, 0, "timestamps offset")
	if err != nil {
		return nil, err
	}
	valOff, err := abiOffset(buf, abiWordSize, "values offset")
	if err != nil {
		return nil, err
	}

	timestamps, err := abiArray(buf, tsOff, "timestamps")
	if err != nil {
		return nil, err
	}
	values, err := abiArray(buf, valOff, "values")
	if err != nil {
		return nil, err
	}

	if len(timestamps) != len(values) {
		return nil, &types.LengthMismatchError{Timestamps: len(timestamps), Values: len(values)}
	}

	rows := make([]types.DecodedRow, 0, len(timestamps))
	for i := range timestamps {
		rows = append(rows, types.DecodedRow{Values: []any{
			timestamps[i].String(),
			FormatFixedPoint(fromTwosComplement(values[i])),
		}})
	}
	return rows, nil
}
