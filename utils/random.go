package utils

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	ffdh "github.com/primekeys/ffdh-go"
)

// RandReader is the default randomness source, backed by the operating
// system CSPRNG. Operations fall back to it when given a nil reader.
var RandReader io.Reader = rand.Reader

// ReadRandom reads exactly n bytes from r, or from RandReader when r is nil.
// A read error or short read is reported as ErrReadRandomFailed. The
// returned buffer holds key material; callers zeroize it when done.
func ReadRandom(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "non-positive random byte count")
	}
	if r == nil {
		r = RandReader
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		Zeroize(buf)
		return nil, errors.WithMessagef(ffdh.ErrReadRandomFailed, "%v", err)
	}
	return buf, nil
}
