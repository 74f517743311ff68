package dh

import (
	"math/big"

	"github.com/pkg/errors"

	ffdh "github.com/primekeys/ffdh-go"
	"github.com/primekeys/ffdh-go/core"
	"github.com/primekeys/ffdh-go/utils"
)

// SharedSecret derives the DH shared value pub.Y^priv.X mod p and returns it
// as a big-endian byte string of minimal length.
func SharedSecret(priv, pub *ffdh.Key) ([]byte, error) {
	z, err := sharedValue(priv, pub)
	if err != nil {
		return nil, err
	}
	out := z.Bytes()
	utils.ZeroizeBig(z)
	return out, nil
}

// SharedSecretInto derives the shared value into out and returns the number
// of bytes written. When out is smaller than the secret it fails with a
// *ffdh.BufferSizeError reporting the required length and writes nothing.
func SharedSecretInto(priv, pub *ffdh.Key, out []byte) (int, error) {
	z, err := sharedValue(priv, pub)
	if err != nil {
		return 0, err
	}
	defer utils.ZeroizeBig(z)

	size := (z.BitLen() + 7) / 8
	if len(out) < size {
		return 0, &ffdh.BufferSizeError{Required: size}
	}
	z.FillBytes(out[:size])
	return size, nil
}

// sharedValue checks both keys and computes the raw shared value. The
// peer's public value is re-validated even if the key object was validated
// before, as defense against mutated or forged key structures.
func sharedValue(priv, pub *ffdh.Key) (*big.Int, error) {
	if priv == nil || pub == nil {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "nil key")
	}
	if !priv.IsPrivate() {
		return nil, ffdh.ErrNotPrivateKey
	}
	if !priv.SameGroup(pub) {
		return nil, errors.WithMessage(ffdh.ErrTypeMismatch, "keys belong to different groups")
	}
	if err := core.CheckPublicValue(pub.Y, priv.Prime); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(pub.Y, priv.X, priv.Prime), nil
}
