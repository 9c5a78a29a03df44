package api

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/trufnetwork/tnattest/internal/types"
	"google.golang.org/protobuf/types/known/structpb"
)

// PayloadToStruct converts a decoded attestation payload to a structpb
// tree. Integers wider than 53 bits (block height, int64 values) are
// rendered as strings because structpb numbers are float64.
func PayloadToStruct(p *types.AttestationPayload) (*structpb.Struct, error) {
	args, err := ValuesToList(p.Args)
	if err != nil {
		return nil, fmt.Errorf("args: %w", err)
	}
	result, err := RowsToList(p.Result)
	if err != nil {
		return nil, fmt.Errorf("result: %w", err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"version":       structpb.NewNumberValue(float64(p.Version)),
		"algorithm":     structpb.NewNumberValue(float64(p.Algorithm)),
		"block_height":  structpb.NewStringValue(strconv.FormatUint(p.BlockHeight, 10)),
		"data_provider": structpb.NewStringValue(p.DataProvider),
		"stream_id":     structpb.NewStringValue(p.StreamID),
		"action_id":     structpb.NewNumberValue(float64(p.ActionID)),
		"args":          structpb.NewListValue(args),
		"result":        structpb.NewListValue(result),
	}}, nil
}

// RowsToList converts decoded rows to a list of lists.
func RowsToList(rows []types.DecodedRow) (*structpb.ListValue, error) {
	out := make([]*structpb.Value, len(rows))
	for i, row := range rows {
		lv, err := ValuesToList(row.Values)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = structpb.NewListValue(lv)
	}
	return &structpb.ListValue{Values: out}, nil
}

// ValuesToList converts a slice of decoded native values to a structpb
// list.
func ValuesToList(values []any) (*structpb.ListValue, error) {
	out := make([]*structpb.Value, len(values))
	for i, v := range values {
		pv, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = pv
	}
	return &structpb.ListValue{Values: out}, nil
}

// toValue maps the codec's native value types onto structpb. int64 is
// stringified to survive the float64 round trip, []byte is 0x-hex.
func toValue(v any) (*structpb.Value, error) {
	switch x := v.(type) {
	case nil:
		return structpb.NewNullValue(), nil
	case string:
		return structpb.NewStringValue(x), nil
	case bool:
		return structpb.NewBoolValue(x), nil
	case int64:
		return structpb.NewStringValue(strconv.FormatInt(x, 10)), nil
	case []byte:
		return structpb.NewStringValue("0x" + hex.EncodeToString(x)), nil
	case []any:
		lv, err := ValuesToList(x)
		if err != nil {
			return nil, err
		}
		return structpb.NewListValue(lv), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
