package codec

import (
	"errors"
	"testing"

	"github.com/trufnetwork/tnattest/internal/types"
)

func TestDecodeTypeDescriptor_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		desc types.TypeDescriptor
	}{
		{"scalar text", types.TypeDescriptor{Name: "text"}},
		{"int array", types.TypeDescriptor{Name: "int8", IsArray: true}},
		{"numeric with metadata", types.TypeDescriptor{Name: "numeric", Metadata: [2]uint16{10, 2}}},
		{"empty name", types.TypeDescriptor{Name: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := encodeTypeDescriptor(tt.desc)
			got, off, err := decodeTypeDescriptor(buf, 0)
			if err != nil {
				t.Fatalf("decodeTypeDescriptor() error = %v", err)
			}
			if got != tt.desc {
				t.Errorf("descriptor = %+v, want %+v", got, tt.desc)
			}
			if off != len(buf) {
				t.Errorf("offset = %d, want %d", off, len(buf))
			}
		})
	}
}

func TestDecodeTypeDescriptor_ArrayFlag(t *testing.T) {
	// Only flag byte 1 means array; any other value is scalar.
	for _, flag := range []byte{0, 2, 0xff} {
		buf := encodeTypeDescriptor(types.TypeDescriptor{Name: "text"})
		buf[2+4+len("text")] = flag

		desc, _, err := decodeTypeDescriptor(buf, 0)
		if err != nil {
			t.Fatalf("flag %d: error = %v", flag, err)
		}
		if desc.IsArray {
			t.Errorf("flag %d decoded as array, want scalar", flag)
		}
	}
}

func TestDecodeTypeDescriptor_UnsupportedVersion(t *testing.T) {
	buf := encodeTypeDescriptor(types.TypeDescriptor{Name: "text"})
	buf[0], buf[1] = 0x00, 0x01 // version 1, big-endian

	_, _, err := decodeTypeDescriptor(buf, 0)
	if !errors.Is(err, types.ErrUnsupportedVersion) {
		t.Fatalf("error = %v, want ErrUnsupportedVersion class", err)
	}

	var ve *types.VersionError
	if !errors.As(err, &ve) {
		t.Fatalf("error %v is not a *VersionError", err)
	}
	if ve.Got != 1 {
		t.Errorf("Got = %d, want 1", ve.Got)
	}
}

func TestDecodeTypeDescriptor_Truncated(t *testing.T) {
	full := encodeTypeDescriptor(types.TypeDescriptor{Name: "numeric", Metadata: [2]uint16{10, 2}})

	// Every proper prefix must fail with a truncation error, never panic
	// and never succeed.
	for cut := 0; cut < len(full); cut++ {
		_, _, err := decodeTypeDescriptor(full[:cut], 0)
		if err == nil {
			t.Fatalf("prefix of %d bytes decoded successfully, want error", cut)
		}
		if !errors.Is(err, types.ErrTruncated) {
			t.Errorf("prefix of %d bytes: error = %v, want ErrTruncated class", cut, err)
		}
	}
}

func TestDecodeTypeDescriptor_OffsetAdvances(t *testing.T) {
	// Two descriptors back to back decode independently.
	first := encodeTypeDescriptor(types.TypeDescriptor{Name: "bool"})
	second := encodeTypeDescriptor(types.TypeDescriptor{Name: "bytea", IsArray: true})
	buf := append(append([]byte{}, first...), second...)

	d1, off, err := decodeTypeDescriptor(buf, 0)
	if err != nil {
		t.Fatalf("first decode error = %v", err)
	}
	if d1.Name != "bool" {
		t.Errorf("first name = %q, want bool", d1.Name)
	}

	d2, off, err := decodeTypeDescriptor(buf, off)
	if err != nil {
		t.Fatalf("second decode error = %v", err)
	}
	if d2.Name != "bytea" || !d2.IsArray {
		t.Errorf("second descriptor = %+v, want bytea array", d2)
	}
	if off != len(buf) {
		t.Errorf("final offset = %d, want %d", off, len(buf))
	}
}
