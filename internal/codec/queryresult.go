package codec

import (
	"fmt"

	"github.com/trufnetwork/tnattest/internal/types"
)

// Canonical query result layout (little-endian framing):
//
//	4 bytes   row count
//	per row:
//	  4 bytes  column count
//	  per column:
//	    4 bytes  cell length
//	    n bytes  cell (one EncodedValue, decoded from offset 0)
//
// DecodeQueryResult builds the ordered row list and fails the moment any
// declared length would overrun the remaining buffer; it never reads past
// the end and never returns partial rows.
func DecodeQueryResult(buf []byte) ([]types.DecodedRow, error) {
	c := &leCursor{buf: buf}

	rowCount, err := c.u32("row count")
	if err != nil {
		return nil, err
	}

	rows := make([]types.DecodedRow, 0, rowCount)
	for r := 0; r < int(rowCount); r++ {
		colCount, err := c.u32(fmt.Sprintf("column count of row %d", r))
		if err != nil {
			return nil, err
		}

		values := make([]any, 0, colCount)
		for col := 0; col < int(colCount); col++ {
			field := fmt.Sprintf("column %d of row %d", col, r)
			cellLen, err := c.u32(field + " length")
			if err != nil {
				return nil, err
			}
			cell, err := c.bytes(int(cellLen), field)
			if err != nil {
				return nil, err
			}
			ev, _, err := decodeEncodedValue(cell, 0)
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", field, err)
			}
			v, err := DecodeValue(ev)
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", field, err)
			}
			values = append(values, v)
		}
		rows = append(rows, types.DecodedRow{Values: values})
	}
	return rows, nil
}
