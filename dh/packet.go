package dh

import (
	"bytes"
	"math/big"

	"github.com/pkg/errors"

	ffdh "github.com/primekeys/ffdh-go"
	"github.com/primekeys/ffdh-go/core"
	"github.com/primekeys/ffdh-go/utils"
)

// rawKeyHeader opens every raw key packet: magic bytes, format version,
// packet type.
var rawKeyHeader = []byte{'F', 'D', 0x01, 0x01}

// Export serializes a key as a raw key packet: header, kind tag, then
// length-prefixed big-endian prime, generator, and scalar (the private
// exponent x when kind is Private, the public value y otherwise).
//
// Exporting the private half of a public key fails with ErrNotPrivateKey.
// A private key may always be exported as public.
func Export(key *ffdh.Key, kind ffdh.KeyKind) ([]byte, error) {
	if key == nil || key.Prime == nil || key.Generator == nil || key.Y == nil {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "nil or incomplete key")
	}
	if kind != ffdh.Public && kind != ffdh.Private {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "unknown key kind")
	}
	if kind == ffdh.Private && !key.IsPrivate() {
		return nil, ffdh.ErrNotPrivateKey
	}

	scalar := key.Y
	if kind == ffdh.Private {
		scalar = key.X
	}

	primeBytes := key.Prime.Bytes()
	genBytes := key.Generator.Bytes()
	scalarBytes := scalar.Bytes()
	if kind == ffdh.Private {
		defer utils.Zeroize(scalarBytes)
	}

	out := make([]byte, 0, len(rawKeyHeader)+1+12+len(primeBytes)+len(genBytes)+len(scalarBytes))
	out = append(out, rawKeyHeader...)
	out = append(out, byte(kind))
	out = utils.AppendField(out, primeBytes)
	out = utils.AppendField(out, genBytes)
	out = utils.AppendField(out, scalarBytes)
	return out, nil
}

// Import parses a raw key packet produced by Export. A private packet has
// its public value recomputed from the scalar; every imported public value
// is range-checked. On any failure all partially constructed key material is
// zeroized before the error is returned.
func Import(data []byte) (*ffdh.Key, error) {
	if len(data) < len(rawKeyHeader)+1 {
		return nil, errors.WithMessage(ffdh.ErrInvalidPacket, "packet shorter than header")
	}
	if !bytes.Equal(data[:len(rawKeyHeader)], rawKeyHeader) {
		return nil, errors.WithMessage(ffdh.ErrInvalidPacket, "bad packet header")
	}
	kind := ffdh.KeyKind(data[len(rawKeyHeader)])
	if kind != ffdh.Public && kind != ffdh.Private {
		return nil, errors.WithMessagef(ffdh.ErrTypeMismatch, "unknown kind tag %#x", byte(kind))
	}

	offset := len(rawKeyHeader) + 1
	primeBytes, offset, err := utils.ReadField(data, offset)
	if err != nil {
		return nil, err
	}
	genBytes, offset, err := utils.ReadField(data, offset)
	if err != nil {
		return nil, err
	}
	scalarBytes, offset, err := utils.ReadField(data, offset)
	if err != nil {
		return nil, err
	}
	if offset != len(data) {
		return nil, errors.WithMessage(ffdh.ErrInvalidPacket, "trailing bytes after key packet")
	}

	p := new(big.Int).SetBytes(primeBytes)
	g := new(big.Int).SetBytes(genBytes)
	if err := checkGroupShape(p, g); err != nil {
		return nil, err
	}
	return ImportRaw(scalarBytes, kind, p, g)
}

// checkGroupShape rejects group parameters that cannot describe a valid DH
// group before any modular exponentiation is attempted with them.
func checkGroupShape(p, g *big.Int) error {
	if p.BitLen() < 2 || p.Bit(0) == 0 {
		return errors.WithMessage(ffdh.ErrInvalidPacket, "modulus is not an odd number > 1")
	}
	if g.Cmp(big.NewInt(2)) < 0 || g.Cmp(p) >= 0 {
		return errors.WithMessage(ffdh.ErrInvalidPacket, "generator outside [2, p)")
	}
	return nil
}

// ImportRaw builds a key from a bare big-endian scalar and explicit group
// parameters. For a private scalar the public value is recomputed as
// g^x mod p; for a public scalar the value is range-checked. The key owns
// fresh copies of prime and generator.
func ImportRaw(scalar []byte, kind ffdh.KeyKind, prime, generator *big.Int) (*ffdh.Key, error) {
	if len(scalar) == 0 || prime == nil || generator == nil {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "empty scalar or nil group")
	}
	if kind != ffdh.Public && kind != ffdh.Private {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "unknown key kind")
	}

	key := &ffdh.Key{
		Kind:      kind,
		Prime:     new(big.Int).Set(prime),
		Generator: new(big.Int).Set(generator),
	}
	if kind == ffdh.Private {
		key.X = new(big.Int).SetBytes(scalar)
		key.Y = new(big.Int).Exp(key.Generator, key.X, key.Prime)
	} else {
		key.Y = new(big.Int).SetBytes(scalar)
	}

	if err := core.CheckPublicValue(key.Y, key.Prime); err != nil {
		key.Zeroize()
		return nil, err
	}
	return key, nil
}
