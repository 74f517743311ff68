package dh

import (
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"

	ffdh "github.com/primekeys/ffdh-go"
)

// Params is a decoded DH parameter blob: the group modulus and base without
// any key material. The wire form is the PKCS#3 DHParameter sequence
// (without the optional privateValueLength field).
type Params struct {
	Prime     *big.Int
	Generator *big.Int
}

// MarshalParams encodes group parameters as DER SEQUENCE { prime INTEGER,
// base INTEGER }.
func MarshalParams(params *Params) ([]byte, error) {
	if params == nil || params.Prime == nil || params.Generator == nil {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "nil group parameters")
	}
	if params.Prime.Sign() <= 0 || params.Generator.Sign() <= 0 {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "non-positive group parameter")
	}
	var b cryptobyte.Builder
	b.AddASN1(casn1.SEQUENCE, func(seq *cryptobyte.Builder) {
		seq.AddASN1BigInt(params.Prime)
		seq.AddASN1BigInt(params.Generator)
	})
	out, err := b.Bytes()
	if err != nil {
		return nil, errors.WithMessagef(ffdh.ErrInvalidArgument, "encoding parameters: %v", err)
	}
	return out, nil
}

// ParseParams decodes a DER parameter blob produced by MarshalParams (or by
// any PKCS#3 encoder).
func ParseParams(der []byte) (*Params, error) {
	var (
		input = cryptobyte.String(der)
		seq   cryptobyte.String
		p, g  big.Int
	)
	if !input.ReadASN1(&seq, casn1.SEQUENCE) || !input.Empty() {
		return nil, errors.WithMessage(ffdh.ErrInvalidPacket, "parameters are not a DER sequence")
	}
	if !seq.ReadASN1Integer(&p) || !seq.ReadASN1Integer(&g) {
		return nil, errors.WithMessage(ffdh.ErrInvalidPacket, "parameters sequence missing integers")
	}
	// privateValueLength is tolerated and ignored
	if !seq.Empty() {
		var skip cryptobyte.String
		if !seq.ReadASN1(&skip, casn1.INTEGER) || !seq.Empty() {
			return nil, errors.WithMessage(ffdh.ErrInvalidPacket, "trailing data in parameters sequence")
		}
	}
	if p.Sign() <= 0 || g.Sign() <= 0 {
		return nil, errors.WithMessage(ffdh.ErrInvalidPacket, "non-positive group parameter")
	}
	return &Params{Prime: &p, Generator: &g}, nil
}
