// Package codec implements the TRUF.NETWORK attestation wire format:
// encoding action argument lists into the network's canonical buffer and
// decoding typed values, query result tables, ABI datapoints, and full
// attestation payloads back into native Go values.
//
// The format mixes two endianness conventions on purpose. The EncodedValue
// envelope and all item framing are little-endian; the embedded type
// descriptor and the top-level attestation payload fields are big-endian.
// They mirror two independently-versioned wire formats of the producing and
// consuming systems and must not be normalized. To keep the two conventions
// from being swapped during maintenance, every multi-byte read goes through
// either an leCursor or a beCursor; raw binary.ByteOrder calls do not appear
// outside this file.
//
// The codec is synchronous, stateless, and side-effect-free: every call
// operates on a caller-owned buffer and either returns a fresh result or
// fails with a structured error from internal/types. Safe for concurrent
// use without coordination.
package codec

import (
	"encoding/binary"

	"github.com/trufnetwork/tnattest/internal/types"
)

// readU16LE returns the little-endian uint16 at off. Bounds are the
// caller's responsibility; cursors below are the checked entry points.
func readU16LE(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off:])
}

// readU32LE returns the little-endian uint32 at off.
func readU32LE(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

// writeU32LE writes v little-endian at off.
func writeU32LE(b []byte, v uint32, off int) {
	binary.LittleEndian.PutUint32(b[off:], v)
}

// appendU16LE appends v little-endian.
func appendU16LE(b []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(b, v)
}

// appendU32LE appends v little-endian.
func appendU32LE(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

// appendU16BE appends v big-endian.
func appendU16BE(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

// appendU32BE appends v big-endian.
func appendU32BE(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// readU16BE returns the big-endian uint16 at off.
func readU16BE(b []byte, off int) uint16 {
	return binary.BigEndian.Uint16(b[off:])
}

// readU32BE returns the big-endian uint32 at off.
func readU32BE(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off:])
}

// readU64BE returns the big-endian uint64 at off.
func readU64BE(b []byte, off int) uint64 {
	return binary.BigEndian.Uint64(b[off:])
}

// leCursor walks a little-endian-framed section of a buffer. Every read
// names the field it is consuming so truncation errors can be traced back
// to a hex dump position.
type leCursor struct {
	buf []byte
	off int
}

func (c *leCursor) need(n int, field string) error {
	if c.off+n > len(c.buf) || c.off+n < c.off {
		return &types.TruncatedError{Field: field, Offset: c.off, Need: n, Have: len(c.buf) - c.off}
	}
	return nil
}

func (c *leCursor) u16(field string) (uint16, error) {
	if err := c.need(2, field); err != nil {
		return 0, err
	}
	v := readU16LE(c.buf, c.off)
	c.off += 2
	return v, nil
}

func (c *leCursor) u32(field string) (uint32, error) {
	if err := c.need(4, field); err != nil {
		return 0, err
	}
	v := readU32LE(c.buf, c.off)
	c.off += 4
	return v, nil
}

// bytes consumes n raw bytes. The returned slice aliases the input buffer;
// callers that retain it past the decode call must copy.
func (c *leCursor) bytes(n int, field string) ([]byte, error) {
	if err := c.need(n, field); err != nil {
		return nil, err
	}
	v := c.buf[c.off : c.off+n]
	c.off += n
	return v, nil
}

// beCursor walks a big-endian-framed section of a buffer. Same contract as
// leCursor with the opposite byte order.
type beCursor struct {
	buf []byte
	off int
}

func (c *beCursor) need(n int, field string) error {
	if c.off+n > len(c.buf) || c.off+n < c.off {
		return &types.TruncatedError{Field: field, Offset: c.off, Need: n, Have: len(c.buf) - c.off}
	}
	return nil
}

func (c *beCursor) u8(field string) (uint8, error) {
	if err := c.need(1, field); err != nil {
		return 0, err
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

func (c *beCursor) u16(field string) (uint16, error) {
	if err := c.need(2, field); err != nil {
		return 0, err
	}
	v := readU16BE(c.buf, c.off)
	c.off += 2
	return v, nil
}

func (c *beCursor) u32(field string) (uint32, error) {
	if err := c.need(4, field); err != nil {
		return 0, err
	}
	v := readU32BE(c.buf, c.off)
	c.off += 4
	return v, nil
}

func (c *beCursor) bytes(n int, field string) ([]byte, error) {
	if err := c.need(n, field); err != nil {
		return nil, err
	}
	v := c.buf[c.off : c.off+n]
	c.off += n
	return v, nil
}

// lengthPrefixed reads a big-endian u32 length followed by that many bytes.
// Used by the attestation payload walk where every variable field carries a
// BE length prefix.
func (c *beCursor) lengthPrefixed(field string) ([]byte, error) {
	n, err := c.u32(field + " length")
	if err != nil {
		return nil, err
	}
	return c.bytes(int(n), field)
}
