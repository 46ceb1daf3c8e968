// Package devicestring decodes the variable-length text encoding used
// throughout the device database, colloquially the "device string". A
// device string begins with a one-byte tag that selects one of three
// incompatible encodings; see Decode for the exact layouts.
//
// Any malformed tag, inconsistent length, or out-of-bounds read yields the
// empty string rather than an error: strings are frequently the last field
// of a row and a corrupt one should never taint the rest of the record.
package devicestring

import (
	"unicode/utf16"

	"github.com/cuebox/pdb/internal/bytesource"
)

const (
	tagLongASCII = 0x40
	tagUTF16LE   = 0x90
)

// Decode reads a device string starting at off and returns its decoded
// text. It never returns an error; any problem decodes to "".
func Decode(src *bytesource.Source, off int64) string {
	tag, err := src.U8At(off)
	if err != nil {
		return ""
	}

	switch {
	case tag == tagLongASCII:
		return decodeLong(src, off, false)
	case tag == tagUTF16LE:
		return decodeLong(src, off, true)
	case tag&1 != 0:
		return decodeShort(src, off, tag)
	default:
		return ""
	}
}

// decodeLong handles both the long-ASCII and UTF-16LE forms, which share a
// layout: a u16 length at off+1, one padding byte, then length-4 payload
// bytes starting at off+4.
func decodeLong(src *bytesource.Source, off int64, wide bool) string {
	length, err := src.U16leAt(off + 1)
	if err != nil {
		return ""
	}
	if length < 4 || length > 65535 {
		return ""
	}
	n := int(length) - 4
	buf, err := src.Slice(off+4, n)
	if err != nil {
		return ""
	}
	if !wide {
		return string(buf)
	}
	return decodeUTF16LE(buf)
}

// decodeShort handles the short-ASCII form: length = tag>>1, payload of
// length-1 bytes starting at off+1.
func decodeShort(src *bytesource.Source, off int64, tag byte) string {
	length := int(tag >> 1)
	if length < 1 || length > 127 {
		return ""
	}
	n := length - 1
	buf, err := src.Slice(off+1, n)
	if err != nil {
		return ""
	}
	return string(buf)
}

// decodeUTF16LE decodes a little-endian UTF-16 byte slice to text. An odd
// trailing byte, which cannot form a full code unit, is dropped rather than
// treated as an error.
func decodeUTF16LE(buf []byte) string {
	n := len(buf) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = uint16(buf[2*i]) | uint16(buf[2*i+1])<<8
	}
	return string(utf16.Decode(units))
}
