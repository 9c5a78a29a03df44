package codec

import (
	"fmt"

	"github.com/trufnetwork/tnattest/internal/types"
)

// EncodedValue layout (little-endian framing, big-endian descriptor inside):
//
//	2 bytes   version (must be 0)
//	4 bytes   type descriptor length
//	n bytes   type descriptor (see descriptor.go, self-contained)
//	2 bytes   item count
//	per item:
//	  4 bytes  item length
//	  k bytes  item (first byte null indicator, remainder payload)
const encodedValueVersion = 0

// decodeEncodedValue decodes one EncodedValue starting at off and returns
// it with the offset of the first byte after it. The type descriptor is
// decoded from its own slice, so its internal layout never shifts the
// outer cursor beyond the declared descriptor length.
func decodeEncodedValue(buf []byte, off int) (types.EncodedValue, int, error) {
	c := &leCursor{buf: buf, off: off}

	version, err := c.u16("encoded value version")
	if err != nil {
		return types.EncodedValue{}, off, err
	}
	if version != encodedValueVersion {
		return types.EncodedValue{}, off, &types.VersionError{Field: "encoded value", Got: version}
	}

	typeLen, err := c.u32("type descriptor length")
	if err != nil {
		return types.EncodedValue{}, off, err
	}
	typeBytes, err := c.bytes(int(typeLen), "type descriptor")
	if err != nil {
		return types.EncodedValue{}, off, err
	}
	desc, _, err := decodeTypeDescriptor(typeBytes, 0)
	if err != nil {
		return types.EncodedValue{}, off, err
	}

	itemCount, err := c.u16("item count")
	if err != nil {
		return types.EncodedValue{}, off, err
	}

	data := make([][]byte, 0, itemCount)
	for i := 0; i < int(itemCount); i++ {
		itemLen, err := c.u32(fmt.Sprintf("length of item %d", i))
		if err != nil {
			return types.EncodedValue{}, off, err
		}
		item, err := c.bytes(int(itemLen), fmt.Sprintf("item %d", i))
		if err != nil {
			return types.EncodedValue{}, off, err
		}
		data = append(data, item)
	}

	return types.EncodedValue{Type: desc, Data: data}, c.off, nil
}

// DecodeEncodedValue decodes a buffer holding exactly one EncodedValue.
func DecodeEncodedValue(buf []byte) (types.EncodedValue, error) {
	ev, _, err := decodeEncodedValue(buf, 0)
	return ev, err
}

// EncodeEncodedValue serializes ev into its wire form: LE envelope and item
// framing around the BE type descriptor. The inverse of DecodeEncodedValue.
func EncodeEncodedValue(ev types.EncodedValue) []byte {
	desc := encodeTypeDescriptor(ev.Type)

	size := 2 + 4 + len(desc) + 2
	for _, item := range ev.Data {
		size += 4 + len(item)
	}

	buf := make([]byte, 0, size)
	buf = appendU16LE(buf, encodedValueVersion)
	buf = appendU32LE(buf, uint32(len(desc)))
	buf = append(buf, desc...)
	buf = appendU16LE(buf, uint16(len(ev.Data)))
	for _, item := range ev.Data {
		buf = appendU32LE(buf, uint32(len(item)))
		buf = append(buf, item...)
	}
	return buf
}

// ValueFormatter converts one native value into fully formed EncodedValue
// bytes. Hint optionally forces a wire dtype (e.g. "int8", "numeric(10,2)");
// empty means infer from the Go type. The formatter is owned by the client
// layer; internal/format provides the reference implementation. It must not
// block: the codec invokes it synchronously.
type ValueFormatter interface {
	Format(value any, hint string) ([]byte, error)
}

// Arg pairs one action argument with its optional dtype hint.
type Arg struct {
	Value any
	Hint  string
}

// EncodeActionArgs packs an argument list into the canonical argument
// buffer: a little-endian u32 count followed by one length-prefixed
// EncodedValue per argument. An empty list encodes to exactly 4 bytes.
// A formatter rejection surfaces as a FormatError carrying the argument
// index and the underlying cause.
func EncodeActionArgs(args []Arg, f ValueFormatter) ([]byte, error) {
	buf := make([]byte, 4, 4+16*len(args))
	writeU32LE(buf, uint32(len(args)), 0)

	for i, arg := range args {
		encoded, err := f.Format(arg.Value, arg.Hint)
		if err != nil {
			return nil, &types.FormatError{Index: i, Err: err}
		}
		var prefix [4]byte
		writeU32LE(prefix[:], uint32(len(encoded)), 0)
		buf = append(buf, prefix[:]...)
		buf = append(buf, encoded...)
	}
	return buf, nil
}

// DecodeArgumentBuffer reverses EncodeActionArgs: it walks the LE-framed
// argument buffer and decodes every argument to its native value through
// the scalar interpreter.
func DecodeArgumentBuffer(buf []byte) ([]any, error) {
	c := &leCursor{buf: buf}

	count, err := c.u32("argument count")
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, count)
	for i := 0; i < int(count); i++ {
		argLen, err := c.u32(fmt.Sprintf("length of argument %d", i))
		if err != nil {
			return nil, err
		}
		argBytes, err := c.bytes(int(argLen), fmt.Sprintf("argument %d", i))
		if err != nil {
			return nil, err
		}
		ev, _, err := decodeEncodedValue(argBytes, 0)
		if err != nil {
			return nil, fmt.Errorf("decode argument %d: %w", i, err)
		}
		v, err := DecodeValue(ev)
		if err != nil {
			return nil, fmt.Errorf("decode argument %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
