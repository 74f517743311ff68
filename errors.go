package ffdh

import (
	"errors"
	"fmt"
)

// Errors returned across the module. Callers should match with errors.Is;
// sub-packages wrap these with additional context.
var (
	// ErrInvalidArgument indicates a nil, empty, or out-of-range input,
	// including a public value that fails the small-subgroup range check.
	ErrInvalidArgument = errors.New("ffdh: invalid argument")

	// ErrInvalidKeySize indicates that no catalogued group satisfies the
	// requested size, or that a group size falls outside the supported
	// exponent table.
	ErrInvalidKeySize = errors.New("ffdh: invalid key size")

	// ErrNotPrivateKey indicates a private-key operation invoked on a
	// public key.
	ErrNotPrivateKey = errors.New("ffdh: not a private key")

	// ErrTypeMismatch indicates a group mismatch between two keys, or an
	// unrecognized kind tag in a key packet.
	ErrTypeMismatch = errors.New("ffdh: key type mismatch")

	// ErrInvalidPacket indicates a malformed wire encoding, an unsupported
	// hash identifier, or a ciphertext longer than the derived keystream.
	ErrInvalidPacket = errors.New("ffdh: invalid packet")

	// ErrInvalidHash indicates a hash unsuitable for the operation, such as
	// a plaintext longer than the digest used as keystream.
	ErrInvalidHash = errors.New("ffdh: invalid hash")

	// ErrBufferOverflow indicates that the caller-provided output buffer is
	// too small. The concrete error is a *BufferSizeError reporting the
	// required capacity.
	ErrBufferOverflow = errors.New("ffdh: output buffer too small")

	// ErrReadRandomFailed indicates that the randomness source returned an
	// error or fewer bytes than requested.
	ErrReadRandomFailed = errors.New("ffdh: reading from random source failed")
)

// BufferSizeError reports the exact output capacity an operation needs.
// Nothing has been written to the output when it is returned. It matches
// ErrBufferOverflow under errors.Is.
type BufferSizeError struct {
	Required int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("ffdh: output buffer too small, %d bytes required", e.Required)
}

// Is reports whether target is ErrBufferOverflow.
func (e *BufferSizeError) Is(target error) bool {
	return target == ErrBufferOverflow
}
