package ffdh

import (
	"math/big"
	"runtime"
)

// KeyKind discriminates public from private keys. The values double as the
// kind tag byte in the raw key packet format.
type KeyKind byte

const (
	// Public identifies a key holding only the public value y.
	Public KeyKind = 0
	// Private identifies a key that also holds the private exponent x.
	Private KeyKind = 1
)

func (k KeyKind) String() string {
	switch k {
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}

// Key is a Diffie-Hellman key over a finite-field group.
//
// Prime is the group modulus p (a safe prime), Generator the base g, and Y
// the public value g^x mod p. X is the private exponent and is nil for
// public keys; its absence is what makes a key public. Each Key exclusively
// owns its integer storage; keys are never shared or cached internally.
type Key struct {
	Kind      KeyKind
	Prime     *big.Int
	Generator *big.Int
	Y         *big.Int
	X         *big.Int
}

// IsPrivate reports whether the key carries a private exponent.
func (k *Key) IsPrivate() bool {
	return k != nil && k.Kind == Private && k.X != nil
}

// GroupSize returns the group size in octets (the byte length of the prime),
// or 0 if the key has no group.
func (k *Key) GroupSize() int {
	if k == nil || k.Prime == nil {
		return 0
	}
	return (k.Prime.BitLen() + 7) / 8
}

// Public returns a copy of the key reduced to its public half. The copy owns
// fresh integer storage and shares nothing with the receiver.
func (k *Key) Public() *Key {
	if k == nil {
		return nil
	}
	return &Key{
		Kind:      Public,
		Prime:     new(big.Int).Set(k.Prime),
		Generator: new(big.Int).Set(k.Generator),
		Y:         new(big.Int).Set(k.Y),
	}
}

// SameGroup reports whether both keys use the same (prime, generator) pair.
func (k *Key) SameGroup(other *Key) bool {
	if k == nil || other == nil || k.Prime == nil || other.Prime == nil ||
		k.Generator == nil || other.Generator == nil {
		return false
	}
	return k.Prime.Cmp(other.Prime) == 0 && k.Generator.Cmp(other.Generator) == 0
}

// Zeroize clears the key's integer storage, the private exponent first, and
// releases it. It is safe to call on a partially constructed key and is
// idempotent.
func (k *Key) Zeroize() {
	if k == nil {
		return
	}
	zeroWords(k.X)
	zeroWords(k.Y)
	zeroWords(k.Prime)
	zeroWords(k.Generator)
	k.X = nil
	k.Y = nil
	k.Prime = nil
	k.Generator = nil
}

// zeroWords overwrites the backing word storage of n with zeros.
// runtime.KeepAlive prevents the stores from being optimized away.
func zeroWords(n *big.Int) {
	if n == nil {
		return
	}
	words := n.Bits()
	for i := range words {
		words[i] = 0
	}
	runtime.KeepAlive(words)
	n.SetInt64(0)
}

// Signature is an ElGamal-style signature pair. Both components are
// interpreted modulo the signing group.
type Signature struct {
	A *big.Int
	B *big.Int
}
