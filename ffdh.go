// Package ffdh implements finite-field Diffie-Hellman key agreement over
// standardized MODP groups (RFC 2409 / RFC 3526) or caller-supplied safe-prime
// groups, together with two schemes layered on top of it: hybrid encryption of
// short symmetric keys (ephemeral DH plus a hash-derived keystream) and an
// ElGamal-style signature over a message digest.
//
// The root package holds the shared data model and the error taxonomy. The
// protocol logic lives in the sub-packages.
package ffdh

// Version of the ffdh Go implementation.
const Version = "1.0.0"

// API summary:
//
// Groups:
//   - core.Lookup(minSize) - Smallest catalogued group of at least minSize octets
//   - core.Bounds() - Smallest and largest catalogued group sizes
//   - core.ExponentSize(groupOctets) - Private exponent size for a group size
//
// Keys (package dh):
//   - dh.Generate(random, groupOctets) - Generate a key pair in a catalogued group
//   - dh.GenerateCustom(random, primeHex, generatorHex) - Custom group key pair
//   - dh.Export(key, kind) / dh.Import(data) - Raw key packet round trip
//   - dh.SharedSecret(priv, pub) - Derive the DH shared value
//
// Hybrid key encryption (package kem):
//   - kem.EncryptKey(plaintext, alg, random, pub) - Encrypt a short key
//   - kem.DecryptKey(packet, priv) - Recover the plaintext key
//
// Signatures (package sign):
//   - sign.SignHash(digest, random, priv) - ElGamal-style signature over a digest
//   - sign.VerifyHash(sig, digest, pub) - Verify, returning a plain boolean
