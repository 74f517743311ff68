// Package sign implements an ElGamal-style signature over a message digest,
// using the prime-order subgroup of a safe-prime DH group.
//
// With private exponent x, public value y = g^x mod p, and subgroup order
// n = (p-1)/2, a signature over digest m is the pair
//
//	a = g^k mod p
//	b = k^-1 (m - x*a) mod n
//
// for a random nonce k. Verification checks y^a * a^b == g^m (mod p).
package sign

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"

	ffdh "github.com/primekeys/ffdh-go"
	"github.com/primekeys/ffdh-go/core"
	"github.com/primekeys/ffdh-go/utils"
)

// SignHash signs a message digest with a private key and returns the
// encoded signature. The nonce is drawn from random (RandReader when nil).
//
// A nonce that is not invertible modulo the subgroup order surfaces as
// ErrInvalidArgument rather than being retried; with a prime subgroup order
// this happens only when k is a multiple of it.
func SignHash(digest []byte, random io.Reader, priv *ffdh.Key) ([]byte, error) {
	if len(digest) == 0 {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "empty digest")
	}
	if priv == nil || !priv.IsPrivate() {
		return nil, ffdh.ErrNotPrivateKey
	}
	size := core.ExponentSize(priv.GroupSize())
	if size == 0 {
		return nil, errors.WithMessage(ffdh.ErrInvalidKeySize, "group size outside supported range")
	}

	buf, err := utils.ReadRandom(random, size)
	if err != nil {
		return nil, err
	}
	defer utils.Zeroize(buf)

	k := new(big.Int).SetBytes(buf)
	defer utils.ZeroizeBig(k)

	p := priv.Prime
	n := new(big.Int).Sub(p, big.NewInt(1))
	n.Rsh(n, 1) // subgroup order (p-1)/2

	a := new(big.Int).Exp(priv.Generator, k, p)

	kInv := new(big.Int).ModInverse(k, n)
	if kInv == nil {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "nonce not invertible modulo group order")
	}
	defer utils.ZeroizeBig(kInv)

	// b = k^-1 * (m - x*a) mod n
	m := new(big.Int).SetBytes(digest)
	xa := new(big.Int).Mul(priv.X, a)
	xa.Mod(xa, n)
	b := new(big.Int).Sub(m, xa)
	b.Mod(b, n)
	b.Mul(b, kInv)
	b.Mod(b, n)
	utils.ZeroizeBig(xa)

	return Marshal(&ffdh.Signature{A: a, B: b})
}

// VerifyHash checks an encoded signature over a digest against a public
// key. A malformed encoding is the only error path; a signature that
// decodes but does not verify is an ordinary false result.
//
// No constant-time guarantee is made; verification uses only public values.
func VerifyHash(sig, digest []byte, pub *ffdh.Key) (bool, error) {
	if pub == nil || pub.Prime == nil || pub.Generator == nil || pub.Y == nil {
		return false, errors.WithMessage(ffdh.ErrInvalidArgument, "nil or incomplete public key")
	}
	decoded, err := Parse(sig)
	if err != nil {
		return false, err
	}
	a, b := decoded.A, decoded.B
	if a.Sign() <= 0 || b.Sign() < 0 {
		return false, nil
	}

	p := pub.Prime
	m := new(big.Int).SetBytes(digest)
	m.Exp(pub.Generator, m, p) // g^m mod p

	t := new(big.Int).Exp(pub.Y, a, p)
	ab := new(big.Int).Exp(a, b, p)
	t.Mul(t, ab)
	t.Mod(t, p) // y^a * a^b mod p

	return t.Cmp(m) == 0, nil
}

// Marshal encodes a signature as DER SEQUENCE { a INTEGER, b INTEGER }.
func Marshal(sig *ffdh.Signature) ([]byte, error) {
	if sig == nil || sig.A == nil || sig.B == nil {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "nil signature")
	}
	var b cryptobyte.Builder
	b.AddASN1(casn1.SEQUENCE, func(seq *cryptobyte.Builder) {
		seq.AddASN1BigInt(sig.A)
		seq.AddASN1BigInt(sig.B)
	})
	out, err := b.Bytes()
	if err != nil {
		return nil, errors.WithMessagef(ffdh.ErrInvalidArgument, "encoding signature: %v", err)
	}
	return out, nil
}

// Parse decodes a DER signature produced by Marshal.
func Parse(der []byte) (*ffdh.Signature, error) {
	var (
		input = cryptobyte.String(der)
		seq   cryptobyte.String
		a, b  big.Int
	)
	if !input.ReadASN1(&seq, casn1.SEQUENCE) || !input.Empty() {
		return nil, errors.WithMessage(ffdh.ErrInvalidPacket, "signature is not a DER sequence")
	}
	if !seq.ReadASN1Integer(&a) || !seq.ReadASN1Integer(&b) || !seq.Empty() {
		return nil, errors.WithMessage(ffdh.ErrInvalidPacket, "malformed signature sequence")
	}
	return &ffdh.Signature{A: &a, B: &b}, nil
}
