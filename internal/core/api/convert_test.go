package api

import (
	"testing"

	"github.com/trufnetwork/tnattest/internal/types"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestToValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *structpb.Value
	}{
		{"nil", nil, structpb.NewNullValue()},
		{"string", "hello", structpb.NewStringValue("hello")},
		{"bool", true, structpb.NewBoolValue(true)},
		{"int64 as string", int64(9007199254740993), structpb.NewStringValue("9007199254740993")},
		{"negative int64", int64(-5), structpb.NewStringValue("-5")},
		{"bytes as hex", []byte{0xde, 0xad}, structpb.NewStringValue("0xdead")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toValue(tt.in)
			if err != nil {
				t.Fatalf("toValue(%v) error = %v", tt.in, err)
			}
			if got.String() != tt.want.String() {
				t.Errorf("toValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToValue_NestedArray(t *testing.T) {
	got, err := toValue([]any{"a", nil, int64(7)})
	if err != nil {
		t.Fatalf("toValue() error = %v", err)
	}

	lv := got.GetListValue()
	if lv == nil || len(lv.Values) != 3 {
		t.Fatalf("got %v, want 3-element list", got)
	}
	if lv.Values[0].GetStringValue() != "a" {
		t.Errorf("element 0 = %v", lv.Values[0])
	}
	if _, ok := lv.Values[1].Kind.(*structpb.Value_NullValue); !ok {
		t.Errorf("element 1 = %v, want null", lv.Values[1])
	}
	if lv.Values[2].GetStringValue() != "7" {
		t.Errorf("element 2 = %v, want \"7\"", lv.Values[2])
	}
}

func TestToValue_Unsupported(t *testing.T) {
	if _, err := toValue(struct{}{}); err == nil {
		t.Fatal("toValue(struct{}{}) succeeded, want error")
	}
}

func TestPayloadToStruct(t *testing.T) {
	p := &types.AttestationPayload{
		Version:      1,
		Algorithm:    2,
		BlockHeight:  1<<62 + 3,
		DataProvider: "0xabcdef0123456789abcdef0123456789abcdef01",
		StreamID:     "stfcfa66217eca7a6c8e9a44d9da0ecdb2",
		ActionID:     7,
		Args:         []any{"st123", nil},
		Result: []types.DecodedRow{
			{Values: []any{int64(1700000000), "12.345"}},
		},
	}

	got, err := PayloadToStruct(p)
	if err != nil {
		t.Fatalf("PayloadToStruct() error = %v", err)
	}

	// Block height must survive as an exact decimal string.
	if bh := got.Fields["block_height"].GetStringValue(); bh != "4611686018427387907" {
		t.Errorf("block_height = %q, want 4611686018427387907", bh)
	}
	if v := got.Fields["version"].GetNumberValue(); v != 1 {
		t.Errorf("version = %v, want 1", v)
	}
	if sid := got.Fields["stream_id"].GetStringValue(); sid != p.StreamID {
		t.Errorf("stream_id = %q", sid)
	}

	args := got.Fields["args"].GetListValue()
	if args == nil || len(args.Values) != 2 {
		t.Fatalf("args = %v, want 2 values", got.Fields["args"])
	}
	if args.Values[0].GetStringValue() != "st123" {
		t.Errorf("args[0] = %v", args.Values[0])
	}

	result := got.Fields["result"].GetListValue()
	if result == nil || len(result.Values) != 1 {
		t.Fatalf("result = %v, want 1 row", got.Fields["result"])
	}
	row := result.Values[0].GetListValue()
	if row == nil || len(row.Values) != 2 {
		t.Fatalf("row = %v, want 2 cells", result.Values[0])
	}
	if row.Values[0].GetStringValue() != "1700000000" {
		t.Errorf("row[0] = %v, want \"1700000000\"", row.Values[0])
	}
	if row.Values[1].GetStringValue() != "12.345" {
		t.Errorf("row[1] = %v, want \"12.345\"", row.Values[1])
	}
}
