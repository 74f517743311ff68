// Package kem implements hybrid encryption of short symmetric keys: an
// ephemeral Diffie-Hellman exchange against the recipient's public key
// derives a shared value, whose digest is used once as an XOR keystream
// over the plaintext. The packet is a DER sequence of the hash algorithm
// identifier, the ephemeral public value, and the ciphertext.
package kem

import (
	"encoding/asn1"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"

	ffdh "github.com/primekeys/ffdh-go"
	"github.com/primekeys/ffdh-go/dh"
	"github.com/primekeys/ffdh-go/utils"
)

// EncryptKey encrypts a short plaintext (at most one digest of alg) under
// the recipient's public key. A fresh ephemeral key pair is generated in
// the recipient's group and discarded before returning; no secret material
// outlives the call.
func EncryptKey(plaintext []byte, alg utils.HashAlgorithm, random io.Reader, pub *ffdh.Key) ([]byte, error) {
	if pub == nil || pub.Prime == nil || pub.Generator == nil || pub.Y == nil {
		return nil, errors.WithMessage(ffdh.ErrInvalidArgument, "nil or incomplete recipient key")
	}
	if !alg.Valid() {
		return nil, errors.WithMessage(ffdh.ErrInvalidHash, "unregistered hash algorithm")
	}
	if len(plaintext) > alg.Size {
		return nil, errors.WithMessagef(ffdh.ErrInvalidHash, "plaintext longer than %s digest", alg.Name)
	}

	ephemeral, err := dh.GenerateParams(random, &dh.Params{Prime: pub.Prime, Generator: pub.Generator})
	if err != nil {
		return nil, err
	}
	defer ephemeral.Zeroize()

	ephemeralY := ephemeral.Y.Bytes()

	shared, err := dh.SharedSecret(ephemeral, pub)
	if err != nil {
		return nil, err
	}
	defer utils.Zeroize(shared)

	stream := alg.Sum(shared)
	defer utils.Zeroize(stream)

	ciphertext := make([]byte, len(plaintext))
	for i := range plaintext {
		ciphertext[i] = stream[i] ^ plaintext[i]
	}

	var b cryptobyte.Builder
	b.AddASN1(casn1.SEQUENCE, func(seq *cryptobyte.Builder) {
		seq.AddASN1ObjectIdentifier(alg.OID)
		seq.AddASN1OctetString(ephemeralY)
		seq.AddASN1OctetString(ciphertext)
	})
	out, err := b.Bytes()
	if err != nil {
		return nil, errors.WithMessagef(ffdh.ErrInvalidArgument, "encoding packet: %v", err)
	}
	return out, nil
}

// DecryptKey recovers the plaintext from an encrypted-key packet using the
// recipient's private key.
func DecryptKey(packet []byte, priv *ffdh.Key) ([]byte, error) {
	alg, ephemeralY, ciphertext, err := parsePacket(packet)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ciphertext))
	n, err := decryptInto(alg, ephemeralY, ciphertext, priv, out)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// DecryptKeyInto decrypts into a caller-provided buffer and returns the
// number of bytes written. When out is too small it fails with a
// *ffdh.BufferSizeError reporting the required capacity, writing nothing.
func DecryptKeyInto(packet []byte, priv *ffdh.Key, out []byte) (int, error) {
	alg, ephemeralY, ciphertext, err := parsePacket(packet)
	if err != nil {
		return 0, err
	}
	return decryptInto(alg, ephemeralY, ciphertext, priv, out)
}

// parsePacket decodes the encrypted-key packet. The hash identifier is
// resolved before the remaining fields are touched, so an unsupported
// algorithm is rejected without parsing attacker-chosen payloads.
func parsePacket(packet []byte) (alg utils.HashAlgorithm, ephemeralY, ciphertext []byte, err error) {
	var (
		input = cryptobyte.String(packet)
		seq   cryptobyte.String
		oid   asn1.ObjectIdentifier
	)
	if !input.ReadASN1(&seq, casn1.SEQUENCE) || !input.Empty() {
		return alg, nil, nil, errors.WithMessage(ffdh.ErrInvalidPacket, "packet is not a DER sequence")
	}
	if !seq.ReadASN1ObjectIdentifier(&oid) {
		return alg, nil, nil, errors.WithMessage(ffdh.ErrInvalidPacket, "missing hash identifier")
	}
	alg, ok := utils.ByOID(oid)
	if !ok {
		return alg, nil, nil, errors.WithMessagef(ffdh.ErrInvalidPacket, "unsupported hash %v", oid)
	}
	var yStr, ctStr cryptobyte.String
	if !seq.ReadASN1(&yStr, casn1.OCTET_STRING) || !seq.ReadASN1(&ctStr, casn1.OCTET_STRING) || !seq.Empty() {
		return alg, nil, nil, errors.WithMessage(ffdh.ErrInvalidPacket, "malformed packet body")
	}
	return alg, yStr, ctStr, nil
}

func decryptInto(alg utils.HashAlgorithm, ephemeralY, ciphertext []byte, priv *ffdh.Key, out []byte) (int, error) {
	if priv == nil || !priv.IsPrivate() {
		return 0, ffdh.ErrNotPrivateKey
	}

	// The ephemeral key is rebuilt from the local key's own group so only
	// the scalar is attacker-supplied; group parameters inside a packet are
	// never trusted.
	ephemeral, err := dh.ImportRaw(ephemeralY, ffdh.Public, priv.Prime, priv.Generator)
	if err != nil {
		return 0, err
	}
	defer ephemeral.Zeroize()

	shared, err := dh.SharedSecret(priv, ephemeral)
	if err != nil {
		return 0, err
	}
	defer utils.Zeroize(shared)

	stream := alg.Sum(shared)
	defer utils.Zeroize(stream)

	if len(ciphertext) > len(stream) {
		return 0, errors.WithMessage(ffdh.ErrInvalidPacket, "ciphertext longer than keystream")
	}
	if len(out) < len(ciphertext) {
		return 0, &ffdh.BufferSizeError{Required: len(ciphertext)}
	}
	for i := range ciphertext {
		out[i] = ciphertext[i] ^ stream[i]
	}
	return len(ciphertext), nil
}
