package codec

import (
	"github.com/trufnetwork/tnattest/internal/types"
)

// Type descriptor layout (big-endian framing):
//
//	2 bytes   version (must be 0)
//	4 bytes   name length
//	n bytes   name (UTF-8)
//	1 byte    isArray flag (1 = array, anything else = scalar)
//	2 bytes   metadata word 0
//	2 bytes   metadata word 1
const typeDescriptorVersion = 0

// decodeTypeDescriptor decodes one type descriptor starting at off and
// returns it together with the offset of the first byte after it. Pure
// parsing: any truncation or unknown version is a hard failure.
func decodeTypeDescriptor(buf []byte, off int) (types.TypeDescriptor, int, error) {
	c := &beCursor{buf: buf, off: off}

	version, err := c.u16("type descriptor version")
	if err != nil {
		return types.TypeDescriptor{}, off, err
	}
	if version != typeDescriptorVersion {
		return types.TypeDescriptor{}, off, &types.VersionError{Field: "type descriptor", Got: version}
	}

	name, err := c.lengthPrefixed("type name")
	if err != nil {
		return types.TypeDescriptor{}, off, err
	}

	isArray, err := c.u8("array flag")
	if err != nil {
		return types.TypeDescriptor{}, off, err
	}

	var meta [2]uint16
	if meta[0], err = c.u16("metadata word 0"); err != nil {
		return types.TypeDescriptor{}, off, err
	}
	if meta[1], err = c.u16("metadata word 1"); err != nil {
		return types.TypeDescriptor{}, off, err
	}

	return types.TypeDescriptor{
		Name:     string(name),
		IsArray:  isArray == 1,
		Metadata: meta,
	}, c.off, nil
}

// encodeTypeDescriptor serializes d into its big-endian wire form.
func encodeTypeDescriptor(d types.TypeDescriptor) []byte {
	buf := make([]byte, 0, 11+len(d.Name))
	buf = appendU16BE(buf, typeDescriptorVersion)
	buf = appendU32BE(buf, uint32(len(d.Name)))
	buf = append(buf, d.Name...)
	if d.IsArray {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = appendU16BE(buf, d.Metadata[0])
	buf = appendU16BE(buf, d.Metadata[1])
	return buf
}
