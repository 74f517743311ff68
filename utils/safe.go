// This file contains bounds-checked readers for length-prefixed binary
// fields, guarding decoders against truncated input and oversized
// allocations driven by attacker-controlled lengths.

package utils

import (
	"encoding/binary"

	"github.com/pkg/errors"

	ffdh "github.com/primekeys/ffdh-go"
)

// MaxFieldLength caps a single length-prefixed field in the raw key packet.
// The largest catalogued modulus is 1024 octets; anything near this cap is
// already implausible.
const MaxFieldLength = 8192

// ReadLengthPrefix reads a 4-byte big-endian length at offset and validates
// it against the remaining input and MaxFieldLength. It returns the field
// length and the offset of the field body.
func ReadLengthPrefix(data []byte, offset int) (length, next int, err error) {
	if offset < 0 || offset+4 > len(data) {
		return 0, offset, errors.WithMessage(ffdh.ErrInvalidPacket, "truncated length field")
	}
	raw := binary.BigEndian.Uint32(data[offset:])
	if raw > MaxFieldLength {
		return 0, offset, errors.WithMessagef(ffdh.ErrInvalidPacket, "field length %d exceeds maximum", raw)
	}
	next = offset + 4
	if next+int(raw) > len(data) {
		return 0, offset, errors.WithMessage(ffdh.ErrInvalidPacket, "truncated field body")
	}
	return int(raw), next, nil
}

// ReadField reads one length-prefixed field at offset and returns the field
// body (a sub-slice of data, not a copy) and the offset just past it.
func ReadField(data []byte, offset int) (field []byte, next int, err error) {
	n, body, err := ReadLengthPrefix(data, offset)
	if err != nil {
		return nil, offset, err
	}
	return data[body : body+n], body + n, nil
}

// AppendField appends a 4-byte big-endian length prefix and the field body.
func AppendField(out, field []byte) []byte {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(field)))
	out = append(out, l[:]...)
	return append(out, field...)
}
