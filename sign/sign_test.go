package sign

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	ffdh "github.com/primekeys/ffdh-go"
	"github.com/primekeys/ffdh-go/dh"
	"github.com/primekeys/ffdh-go/utils"
)

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func signingKey(t testing.TB) *ffdh.Key {
	t.Helper()
	key, err := dh.Generate(nil, 96)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(key.Zeroize)
	return key
}

func TestSignVerify(t *testing.T) {
	key := signingKey(t)
	digest := utils.SHA256.Sum([]byte("message to be signed"))

	sig, err := SignHash(digest, nil, key)
	if err != nil {
		t.Fatalf("SignHash: %v", err)
	}
	ok, err := VerifyHash(sig, digest, key.Public())
	if err != nil {
		t.Fatalf("VerifyHash: %v", err)
	}
	if !ok {
		t.Error("valid signature rejected")
	}
}

func TestVerify_WithImportedPublicKey(t *testing.T) {
	key := signingKey(t)
	digest := utils.SHA256.Sum([]byte("round trip through the wire"))

	sig, err := SignHash(digest, nil, key)
	if err != nil {
		t.Fatal(err)
	}
	packet, err := dh.Export(key, ffdh.Public)
	if err != nil {
		t.Fatal(err)
	}
	pub, err := dh.Import(packet)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := VerifyHash(sig, digest, pub)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("signature rejected under imported public key")
	}
}

func TestVerify_RejectsTampering(t *testing.T) {
	key := signingKey(t)
	digest := utils.SHA256.Sum([]byte("original"))
	sig, err := SignHash(digest, nil, key)
	if err != nil {
		t.Fatal(err)
	}

	// flipped digest bit
	flipped := bytes.Clone(digest)
	flipped[0] ^= 0x01
	if ok, err := VerifyHash(sig, flipped, key.Public()); err != nil || ok {
		t.Errorf("flipped digest: ok=%v err=%v", ok, err)
	}

	// swapped components decode fine but must not verify
	decoded, err := Parse(sig)
	if err != nil {
		t.Fatal(err)
	}
	swapped, err := Marshal(&ffdh.Signature{A: decoded.B, B: decoded.A})
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := VerifyHash(swapped, digest, key.Public()); err != nil || ok {
		t.Errorf("swapped components: ok=%v err=%v", ok, err)
	}

	// wrong key
	other := signingKey(t)
	if ok, err := VerifyHash(sig, digest, other.Public()); err != nil || ok {
		t.Errorf("foreign key: ok=%v err=%v", ok, err)
	}
}

func TestVerify_MalformedEncoding(t *testing.T) {
	key := signingKey(t)
	digest := utils.SHA256.Sum([]byte("payload"))
	sig, err := SignHash(digest, nil, key)
	if err != nil {
		t.Fatal(err)
	}

	for _, data := range [][]byte{
		nil,
		{0x30},
		sig[:len(sig)-1],
		append(bytes.Clone(sig), 0),
		{0x30, 0x03, 0x02, 0x01, 0x05}, // single INTEGER
	} {
		if _, err := VerifyHash(data, digest, key.Public()); !errors.Is(err, ffdh.ErrInvalidPacket) {
			t.Errorf("malformed %x: %v, want ErrInvalidPacket", data, err)
		}
	}
}

func TestVerify_NonPositiveComponents(t *testing.T) {
	key := signingKey(t)
	digest := utils.SHA256.Sum([]byte("payload"))

	// a = 0 decodes but can never satisfy the verification equation
	zeroA, err := Marshal(&ffdh.Signature{A: big.NewInt(0), B: big.NewInt(5)})
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := VerifyHash(zeroA, digest, key.Public()); err != nil || ok {
		t.Errorf("a = 0: ok=%v err=%v", ok, err)
	}
	negB, err := Marshal(&ffdh.Signature{A: big.NewInt(5), B: big.NewInt(-7)})
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := VerifyHash(negB, digest, key.Public()); err != nil || ok {
		t.Errorf("b < 0: ok=%v err=%v", ok, err)
	}
}

func TestSignHash_Errors(t *testing.T) {
	key := signingKey(t)
	digest := utils.SHA256.Sum([]byte("payload"))

	if _, err := SignHash(nil, nil, key); !errors.Is(err, ffdh.ErrInvalidArgument) {
		t.Errorf("empty digest: %v, want ErrInvalidArgument", err)
	}
	if _, err := SignHash(digest, nil, key.Public()); !errors.Is(err, ffdh.ErrNotPrivateKey) {
		t.Errorf("public key: %v, want ErrNotPrivateKey", err)
	}
	// k = 0 has no inverse modulo the subgroup order
	if _, err := SignHash(digest, zeroReader{}, key); !errors.Is(err, ffdh.ErrInvalidArgument) {
		t.Errorf("zero nonce: %v, want ErrInvalidArgument", err)
	}

	oversized := &ffdh.Key{
		Kind:      ffdh.Private,
		Prime:     new(big.Int).Lsh(big.NewInt(1), 1025*8),
		Generator: big.NewInt(2),
		Y:         big.NewInt(4),
		X:         big.NewInt(2),
	}
	if _, err := SignHash(digest, nil, oversized); !errors.Is(err, ffdh.ErrInvalidKeySize) {
		t.Errorf("oversized group: %v, want ErrInvalidKeySize", err)
	}
}

func TestMarshalParse(t *testing.T) {
	sig := &ffdh.Signature{A: big.NewInt(123456789), B: big.NewInt(987654321)}
	der, err := Marshal(sig)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(der)
	if err != nil {
		t.Fatal(err)
	}
	if back.A.Cmp(sig.A) != 0 || back.B.Cmp(sig.B) != 0 {
		t.Error("components not preserved")
	}

	if _, err := Marshal(nil); !errors.Is(err, ffdh.ErrInvalidArgument) {
		t.Errorf("nil signature: %v", err)
	}
	if _, err := Marshal(&ffdh.Signature{A: big.NewInt(1)}); !errors.Is(err, ffdh.ErrInvalidArgument) {
		t.Errorf("missing component: %v", err)
	}
}

func FuzzParse(f *testing.F) {
	der, err := Marshal(&ffdh.Signature{A: big.NewInt(17), B: big.NewInt(42)})
	if err != nil {
		f.Fatal(err)
	}
	f.Add(der)
	f.Add([]byte{0x30, 0x00})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		sig, err := Parse(data)
		if err == nil && (sig.A == nil || sig.B == nil) {
			t.Error("parsed signature with nil component")
		}
	})
}
