package codec

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/trufnetwork/tnattest/internal/types"
)

// textFormatter formats every argument as a text scalar (nil as null).
// Stands in for the client-owned formatter in framing tests; full native
// type coverage lives in internal/format.
type textFormatter struct{}

func (textFormatter) Format(value any, hint string) ([]byte, error) {
	ev := types.EncodedValue{Type: types.TypeDescriptor{Name: "text"}}
	if value != nil {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("unsupported value type %T", value)
		}
		ev.Data = [][]byte{append([]byte{1}, s...)}
	}
	return EncodeEncodedValue(ev), nil
}

func TestEncodedValue_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ev   types.EncodedValue
	}{
		{
			"text scalar",
			types.EncodedValue{Type: types.TypeDescriptor{Name: "text"}, Data: [][]byte{item([]byte("hello"))}},
		},
		{
			"null scalar",
			types.EncodedValue{Type: types.TypeDescriptor{Name: "int8"}},
		},
		{
			"int array with null hole",
			types.EncodedValue{
				Type: types.TypeDescriptor{Name: "int8", IsArray: true},
				Data: [][]byte{item(int64BE(7)), {0}, item(int64BE(-9))},
			},
		},
		{
			"numeric with precision metadata",
			types.EncodedValue{
				Type: types.TypeDescriptor{Name: "numeric", Metadata: [2]uint16{10, 2}},
				Data: [][]byte{item([]byte("123.45"))},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := EncodeEncodedValue(tt.ev)
			got, off, err := decodeEncodedValue(buf, 0)
			if err != nil {
				t.Fatalf("decodeEncodedValue() error = %v", err)
			}
			if off != len(buf) {
				t.Errorf("offset = %d, want %d", off, len(buf))
			}
			if got.Type != tt.ev.Type {
				t.Errorf("type = %+v, want %+v", got.Type, tt.ev.Type)
			}
			if len(got.Data) != len(tt.ev.Data) {
				t.Fatalf("data items = %d, want %d", len(got.Data), len(tt.ev.Data))
			}
			for i := range got.Data {
				if !reflect.DeepEqual([]byte(got.Data[i]), []byte(tt.ev.Data[i])) {
					t.Errorf("item %d = %x, want %x", i, got.Data[i], tt.ev.Data[i])
				}
			}
		})
	}
}

func TestDecodeEncodedValue_UnsupportedVersion(t *testing.T) {
	buf := EncodeEncodedValue(types.EncodedValue{Type: types.TypeDescriptor{Name: "text"}})
	buf[0], buf[1] = 0x02, 0x00 // version 2, little-endian

	_, err := DecodeEncodedValue(buf)
	if !errors.Is(err, types.ErrUnsupportedVersion) {
		t.Fatalf("error = %v, want ErrUnsupportedVersion class", err)
	}
}

func TestDecodeEncodedValue_Truncated(t *testing.T) {
	full := EncodeEncodedValue(types.EncodedValue{
		Type: types.TypeDescriptor{Name: "text", IsArray: true},
		Data: [][]byte{item([]byte("ab")), item([]byte("cdef"))},
	})

	for cut := 0; cut < len(full); cut++ {
		_, _, err := decodeEncodedValue(full[:cut], 0)
		if err == nil {
			t.Fatalf("prefix of %d bytes decoded successfully, want error", cut)
		}
		if !errors.Is(err, types.ErrTruncated) {
			t.Errorf("prefix of %d bytes: error = %v, want ErrTruncated class", cut, err)
		}
	}
}

func TestEncodeActionArgs_EmptyList(t *testing.T) {
	buf, err := EncodeActionArgs(nil, textFormatter{})
	if err != nil {
		t.Fatalf("EncodeActionArgs() error = %v", err)
	}
	// Exactly the 4-byte zero count.
	if len(buf) != 4 {
		t.Fatalf("buffer length = %d, want 4", len(buf))
	}
	if got := readU32LE(buf, 0); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}

	args, err := DecodeArgumentBuffer(buf)
	if err != nil {
		t.Fatalf("DecodeArgumentBuffer() error = %v", err)
	}
	if len(args) != 0 {
		t.Errorf("decoded %d arguments, want 0", len(args))
	}
}

func TestEncodeActionArgs_RoundTrip(t *testing.T) {
	args := []Arg{
		{Value: "first"},
		{Value: nil},
		{Value: "third"},
	}

	buf, err := EncodeActionArgs(args, textFormatter{})
	if err != nil {
		t.Fatalf("EncodeActionArgs() error = %v", err)
	}

	got, err := DecodeArgumentBuffer(buf)
	if err != nil {
		t.Fatalf("DecodeArgumentBuffer() error = %v", err)
	}
	want := []any{"first", nil, "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded = %v, want %v", got, want)
	}
}

func TestEncodeActionArgs_FormatterRejection(t *testing.T) {
	args := []Arg{
		{Value: "ok"},
		{Value: 3.14}, // textFormatter only handles strings
	}

	_, err := EncodeActionArgs(args, textFormatter{})
	if !errors.Is(err, types.ErrEncoding) {
		t.Fatalf("error = %v, want ErrEncoding class", err)
	}

	var fe *types.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("error %v is not a *FormatError", err)
	}
	if fe.Index != 1 {
		t.Errorf("Index = %d, want 1", fe.Index)
	}
	if fe.Err == nil {
		t.Error("underlying cause not attached")
	}
}

func TestDecodeArgumentBuffer_Truncated(t *testing.T) {
	full, err := EncodeActionArgs([]Arg{{Value: "hello"}, {Value: "world"}}, textFormatter{})
	if err != nil {
		t.Fatalf("EncodeActionArgs() error = %v", err)
	}

	for cut := 0; cut < len(full); cut++ {
		_, err := DecodeArgumentBuffer(full[:cut])
		if err == nil {
			t.Fatalf("prefix of %d bytes decoded successfully, want error", cut)
		}
		if !errors.Is(err, types.ErrTruncated) {
			t.Errorf("prefix of %d bytes: error = %v, want ErrTruncated class", cut, err)
		}
	}
}

// Property-based test: argument buffers of arbitrary text/null mixes
// round-trip exactly.
func TestArgumentBuffer_RoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(args)) == args", prop.ForAll(
		func(values []string, nullMask []bool) bool {
			args := make([]Arg, len(values))
			want := make([]any, len(values))
			for i, v := range values {
				if i < len(nullMask) && nullMask[i] {
					args[i] = Arg{Value: nil}
					want[i] = nil
				} else {
					args[i] = Arg{Value: v}
					want[i] = v
				}
			}

			buf, err := EncodeActionArgs(args, textFormatter{})
			if err != nil {
				return false
			}
			got, err := DecodeArgumentBuffer(buf)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(got, want)
		},
		gen.SliceOf(gen.AnyString()),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
