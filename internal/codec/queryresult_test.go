package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/trufnetwork/tnattest/internal/types"
)

// buildQueryResult assembles the canonical row/column wire format from
// already-encoded cells.
func buildQueryResult(rows [][][]byte) []byte {
	buf := appendU32LE(nil, uint32(len(rows)))
	for _, row := range rows {
		buf = appendU32LE(buf, uint32(len(row)))
		for _, cell := range row {
			buf = appendU32LE(buf, uint32(len(cell)))
			buf = append(buf, cell...)
		}
	}
	return buf
}

func textCell(s string) []byte {
	return EncodeEncodedValue(types.EncodedValue{
		Type: types.TypeDescriptor{Name: "text"},
		Data: [][]byte{item([]byte(s))},
	})
}

func intCell(v int64) []byte {
	return EncodeEncodedValue(types.EncodedValue{
		Type: types.TypeDescriptor{Name: "int8"},
		Data: [][]byte{item(int64BE(v))},
	})
}

func nullCell() []byte {
	return EncodeEncodedValue(types.EncodedValue{Type: types.TypeDescriptor{Name: "text"}})
}

func TestDecodeQueryResult_ZeroRows(t *testing.T) {
	buf := appendU32LE(nil, 0)

	rows, err := DecodeQueryResult(buf)
	if err != nil {
		t.Fatalf("DecodeQueryResult() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}

func TestDecodeQueryResult_TwoByteBuffer(t *testing.T) {
	_, err := DecodeQueryResult([]byte{0x01, 0x00})
	if !errors.Is(err, types.ErrTruncated) {
		t.Fatalf("error = %v, want ErrTruncated class", err)
	}

	var te *types.TruncatedError
	if !errors.As(err, &te) {
		t.Fatalf("error %v is not a *TruncatedError", err)
	}
	if te.Field != "row count" {
		t.Errorf("Field = %q, want %q", te.Field, "row count")
	}
}

func TestDecodeQueryResult_Table(t *testing.T) {
	buf := buildQueryResult([][][]byte{
		{textCell("alice"), intCell(30), nullCell()},
		{textCell("bob"), intCell(-2), textCell("x")},
	})

	rows, err := DecodeQueryResult(buf)
	if err != nil {
		t.Fatalf("DecodeQueryResult() error = %v", err)
	}

	want := []types.DecodedRow{
		{Values: []any{"alice", int64(30), nil}},
		{Values: []any{"bob", int64(-2), "x"}},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %+v, want %+v", rows, want)
	}
}

func TestDecodeQueryResult_RaggedRows(t *testing.T) {
	// Rows may carry different column counts; order within each row is
	// preserved.
	buf := buildQueryResult([][][]byte{
		{textCell("only")},
		{intCell(1), intCell(2), intCell(3)},
	})

	rows, err := DecodeQueryResult(buf)
	if err != nil {
		t.Fatalf("DecodeQueryResult() error = %v", err)
	}
	if len(rows[0].Values) != 1 || len(rows[1].Values) != 3 {
		t.Errorf("column counts = %d/%d, want 1/3", len(rows[0].Values), len(rows[1].Values))
	}
}

func TestDecodeQueryResult_TruncationNamesRowAndColumn(t *testing.T) {
	full := buildQueryResult([][][]byte{
		{textCell("a"), textCell("b")},
		{textCell("c")},
	})

	for cut := 0; cut < len(full); cut++ {
		_, err := DecodeQueryResult(full[:cut])
		if err == nil {
			t.Fatalf("prefix of %d bytes decoded successfully, want error", cut)
		}
		if !errors.Is(err, types.ErrTruncated) {
			t.Errorf("prefix of %d bytes: error = %v, want ErrTruncated class", cut, err)
		}
	}

	// A cut inside the second row's column must name row 1.
	_, err := DecodeQueryResult(full[:len(full)-1])
	if err == nil || !strings.Contains(err.Error(), "row 1") {
		t.Errorf("error %v does not identify row 1", err)
	}
}

func TestDecodeQueryResult_OverdeclaredColumnLength(t *testing.T) {
	// Column length claims more bytes than remain in the buffer.
	buf := appendU32LE(nil, 1)          // one row
	buf = appendU32LE(buf, 1)           // one column
	buf = appendU32LE(buf, 0xffff)      // declared cell length far past the end
	buf = append(buf, 0x01, 0x02, 0x03) // only 3 bytes present

	_, err := DecodeQueryResult(buf)
	if !errors.Is(err, types.ErrTruncated) {
		t.Fatalf("error = %v, want ErrTruncated class", err)
	}
}
