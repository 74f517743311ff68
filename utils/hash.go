package utils

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/asn1"
	"hash"

	"golang.org/x/crypto/sha3"
)

// HashAlgorithm is a named digest algorithm with a fixed output length,
// identified on the wire by its ASN.1 object identifier.
type HashAlgorithm struct {
	Name string
	OID  asn1.ObjectIdentifier
	Size int
	New  func() hash.Hash
}

// Registered algorithms. The OIDs are the NIST hash algorithm identifiers
// from the 2.16.840.1.101.3.4.2 arc.
var (
	SHA256 = HashAlgorithm{
		Name: "sha256",
		OID:  asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1},
		Size: sha256.Size,
		New:  sha256.New,
	}
	SHA384 = HashAlgorithm{
		Name: "sha384",
		OID:  asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2},
		Size: sha512.Size384,
		New:  sha512.New384,
	}
	SHA512 = HashAlgorithm{
		Name: "sha512",
		OID:  asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3},
		Size: sha512.Size,
		New:  sha512.New,
	}
	SHA3_256 = HashAlgorithm{
		Name: "sha3-256",
		OID:  asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 8},
		Size: 32,
		New:  func() hash.Hash { return sha3.New256() },
	}
	SHA3_512 = HashAlgorithm{
		Name: "sha3-512",
		OID:  asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 10},
		Size: 64,
		New:  func() hash.Hash { return sha3.New512() },
	}
)

var algorithms = []HashAlgorithm{SHA256, SHA384, SHA512, SHA3_256, SHA3_512}

// Algorithms returns the registered hash algorithms.
func Algorithms() []HashAlgorithm {
	out := make([]HashAlgorithm, len(algorithms))
	copy(out, algorithms)
	return out
}

// ByOID returns the registered algorithm with the given object identifier.
func ByOID(oid asn1.ObjectIdentifier) (HashAlgorithm, bool) {
	for _, a := range algorithms {
		if a.OID.Equal(oid) {
			return a, true
		}
	}
	return HashAlgorithm{}, false
}

// ByName returns the registered algorithm with the given name.
func ByName(name string) (HashAlgorithm, bool) {
	for _, a := range algorithms {
		if a.Name == name {
			return a, true
		}
	}
	return HashAlgorithm{}, false
}

// Valid reports whether the algorithm is usable.
func (a HashAlgorithm) Valid() bool {
	return a.New != nil && a.Size > 0
}

// Sum computes the digest of data.
func (a HashAlgorithm) Sum(data []byte) []byte {
	h := a.New()
	h.Write(data)
	return h.Sum(nil)
}
