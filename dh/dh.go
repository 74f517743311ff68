// Package dh implements the Diffie-Hellman key lifecycle: key pair
// generation over catalogued or custom groups, raw packet export/import,
// and shared secret derivation.
package dh

import (
	"io"
	"math/big"

	"github.com/pkg/errors"

	ffdh "github.com/primekeys/ffdh-go"
	"github.com/primekeys/ffdh-go/core"
	"github.com/primekeys/ffdh-go/utils"
)

// maxGenerateAttempts bounds the rejection-sampling loop in key generation.
// A well-formed group rejects a candidate only when y falls outside
// (1, p-1), which is astronomically unlikely; hitting the cap means the
// randomness source is broken and is reported as such.
const maxGenerateAttempts = 100

// Generate creates a private key in the smallest catalogued group of at
// least groupOctets octets, drawing entropy from random (RandReader when
// nil).
func Generate(random io.Reader, groupOctets int) (*ffdh.Key, error) {
	desc, err := core.Lookup(groupOctets)
	if err != nil {
		return nil, err
	}
	return GenerateCustom(random, desc.Prime, desc.Generator)
}

// GenerateCustom creates a private key over a caller-supplied group given as
// hexadecimal prime and generator strings. The prime must be a safe prime;
// this is the caller's responsibility and is not verified here.
func GenerateCustom(random io.Reader, primeHex, generatorHex string) (*ffdh.Key, error) {
	p, g, err := parseGroup(primeHex, generatorHex)
	if err != nil {
		return nil, err
	}
	return generate(random, p, g)
}

// GenerateParams creates a private key over a decoded parameter blob.
func GenerateParams(random io.Reader, params *Params) (*ffdh.Key, error) {
	if params == nil || params.Prime == nil || params.Generator == nil {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "nil group parameters")
	}
	return generate(random, params.Prime, params.Generator)
}

// generate draws private exponents until the derived public value passes
// validation. The key owns fresh copies of p and g.
func generate(random io.Reader, p, g *big.Int) (*ffdh.Key, error) {
	size := core.ExponentSize((p.BitLen() + 7) / 8)
	if size == 0 {
		return nil, errors.WithMessage(ffdh.ErrInvalidKeySize, "group size outside supported range")
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		buf, err := utils.ReadRandom(random, size)
		if err != nil {
			return nil, err
		}
		x := new(big.Int).SetBytes(buf)
		utils.Zeroize(buf)

		y := new(big.Int).Exp(g, x, p)
		if core.CheckPublicValue(y, p) != nil {
			utils.ZeroizeBig(x)
			utils.ZeroizeBig(y)
			continue
		}
		return &ffdh.Key{
			Kind:      ffdh.Private,
			Prime:     new(big.Int).Set(p),
			Generator: new(big.Int).Set(g),
			Y:         y,
			X:         x,
		}, nil
	}
	return nil, errors.WithMessage(ffdh.ErrReadRandomFailed, "rejection sampling exceeded attempt limit")
}

func parseGroup(primeHex, generatorHex string) (p, g *big.Int, err error) {
	if primeHex == "" || generatorHex == "" {
		return nil, nil, errors.WithMessage(ffdh.ErrInvalidArgument, "empty group parameter")
	}
	p, ok := new(big.Int).SetString(primeHex, 16)
	if !ok {
		return nil, nil, errors.WithMessage(ffdh.ErrInvalidArgument, "malformed prime hex")
	}
	g, ok = new(big.Int).SetString(generatorHex, 16)
	if !ok {
		return nil, nil, errors.WithMessage(ffdh.ErrInvalidArgument, "malformed generator hex")
	}
	return p, g, nil
}
