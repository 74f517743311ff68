package utils

import (
	"bytes"
	"encoding/asn1"
	"errors"
	"math/big"
	"testing"

	ffdh "github.com/primekeys/ffdh-go"
)

func TestZeroize(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Zeroize(b)
	if !bytes.Equal(b, []byte{0, 0, 0, 0}) {
		t.Errorf("Zeroize left %v", b)
	}
	Zeroize(nil) // must not panic
}

func TestZeroizeBig(t *testing.T) {
	n := new(big.Int).SetBytes([]byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04, 0x05})
	words := n.Bits()
	ZeroizeBig(n)
	if n.Sign() != 0 {
		t.Error("value not reset to zero")
	}
	for i, w := range words {
		if w != 0 {
			t.Errorf("backing word %d not cleared", i)
		}
	}
	ZeroizeBig(nil) // must not panic
}

func TestConstantTimeEqual(t *testing.T) {
	if !ConstantTimeEqual([]byte("abc"), []byte("abc")) {
		t.Error("equal slices reported unequal")
	}
	if ConstantTimeEqual([]byte("abc"), []byte("abd")) {
		t.Error("unequal slices reported equal")
	}
	if ConstantTimeEqual([]byte("abc"), []byte("ab")) {
		t.Error("different lengths reported equal")
	}
	if !ConstantTimeEqual(nil, nil) {
		t.Error("empty slices reported unequal")
	}
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestReadRandom(t *testing.T) {
	b, err := ReadRandom(nil, 16)
	if err != nil {
		t.Fatalf("ReadRandom from default source: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("got %d bytes, want 16", len(b))
	}

	if _, err := ReadRandom(nil, 0); !errors.Is(err, ffdh.ErrInvalidArgument) {
		t.Errorf("zero count: %v, want ErrInvalidArgument", err)
	}
	if _, err := ReadRandom(failReader{}, 16); !errors.Is(err, ffdh.ErrReadRandomFailed) {
		t.Errorf("failing reader: %v, want ErrReadRandomFailed", err)
	}
	if _, err := ReadRandom(bytes.NewReader([]byte{1, 2, 3}), 16); !errors.Is(err, ffdh.ErrReadRandomFailed) {
		t.Errorf("short reader: %v, want ErrReadRandomFailed", err)
	}
}

func TestHashRegistry(t *testing.T) {
	for _, a := range Algorithms() {
		if !a.Valid() {
			t.Errorf("%s: not valid", a.Name)
		}
		if got := len(a.Sum([]byte("data"))); got != a.Size {
			t.Errorf("%s: digest length %d, want %d", a.Name, got, a.Size)
		}
		byOID, ok := ByOID(a.OID)
		if !ok || byOID.Name != a.Name {
			t.Errorf("%s: ByOID lookup failed", a.Name)
		}
		byName, ok := ByName(a.Name)
		if !ok || !byName.OID.Equal(a.OID) {
			t.Errorf("%s: ByName lookup failed", a.Name)
		}
	}

	if _, ok := ByOID(asn1.ObjectIdentifier{1, 2, 3, 4}); ok {
		t.Error("unknown OID resolved")
	}
	if _, ok := ByName("md5"); ok {
		t.Error("unknown name resolved")
	}
	if (HashAlgorithm{}).Valid() {
		t.Error("zero algorithm reported valid")
	}
}

func TestSumKnownAnswer(t *testing.T) {
	// SHA-256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	got := SHA256.Sum([]byte("abc"))
	if len(got) != 32 {
		t.Fatalf("digest length %d", len(got))
	}
	hex := ""
	for _, b := range got {
		hex += string("0123456789abcdef"[b>>4]) + string("0123456789abcdef"[b&0xf])
	}
	if hex != want {
		t.Errorf("SHA256(abc) = %s, want %s", hex, want)
	}
}
