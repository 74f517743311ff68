package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the app with the given arguments and returns captured stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	err := app.Run(append([]string{"ffdh-cli"}, args...))
	return out.String(), err
}

func TestGroups(t *testing.T) {
	out, err := run(t, "groups")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"768", "1024", "2048", "8192"} {
		if !strings.Contains(out, want) {
			t.Errorf("groups output missing %s-bit entry:\n%s", want, out)
		}
	}
}

func TestKeygenPubkeyDerive(t *testing.T) {
	dir := t.TempDir()
	aliceKey := filepath.Join(dir, "alice.key")
	alicePub := filepath.Join(dir, "alice.pub")
	bobKey := filepath.Join(dir, "bob.key")
	bobPub := filepath.Join(dir, "bob.pub")

	for _, args := range [][]string{
		{"keygen", "--bits", "768", "--out", aliceKey},
		{"pubkey", "--key", aliceKey, "--out", alicePub},
		{"keygen", "--bits", "768", "--out", bobKey},
		{"pubkey", "--key", bobKey, "--out", bobPub},
	} {
		if _, err := run(t, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	fromAlice, err := run(t, "derive", "--key", aliceKey, "--peer", bobPub)
	if err != nil {
		t.Fatalf("derive (alice): %v", err)
	}
	fromBob, err := run(t, "derive", "--key", bobKey, "--peer", alicePub)
	if err != nil {
		t.Fatalf("derive (bob): %v", err)
	}
	if fromAlice != fromBob {
		t.Error("derived secrets disagree")
	}
	if _, err := hex.DecodeString(strings.TrimSpace(fromAlice)); err != nil {
		t.Errorf("secret is not hex: %v", err)
	}
}

func TestKeygen_BadBits(t *testing.T) {
	if _, err := run(t, "keygen", "--bits", "1000"); err == nil {
		t.Error("bits not a multiple of 8 accepted")
	}
	if _, err := run(t, "keygen", "--bits", "-8"); err == nil {
		t.Error("negative bits accepted")
	}
}

func TestEncryptDecrypt(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "recipient.key")
	pub := filepath.Join(dir, "recipient.pub")
	packet := filepath.Join(dir, "session.enc")

	mustRun(t, "keygen", "--bits", "768", "--out", key)
	mustRun(t, "pubkey", "--key", key, "--out", pub)

	plaintext := "00112233445566778899aabbccddeeff"
	mustRun(t, "encrypt", "--key", pub, "--hash", "sha3-256", "--out", packet, plaintext)

	out, err := run(t, "decrypt", "--key", key, "--in", packet)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if strings.TrimSpace(out) != plaintext {
		t.Errorf("recovered %q, want %q", strings.TrimSpace(out), plaintext)
	}
}

func TestEncrypt_BadInput(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "r.key")
	pub := filepath.Join(dir, "r.pub")
	mustRun(t, "keygen", "--bits", "768", "--out", key)
	mustRun(t, "pubkey", "--key", key, "--out", pub)

	if _, err := run(t, "encrypt", "--key", pub, "not-hex"); err == nil {
		t.Error("non-hex plaintext accepted")
	}
	if _, err := run(t, "encrypt", "--key", pub, "--hash", "md5", "00ff"); err == nil {
		t.Error("unknown hash accepted")
	}
	if _, err := run(t, "encrypt", "--key", pub); err == nil {
		t.Error("missing plaintext argument accepted")
	}
}

func TestSignVerify(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "signer.key")
	pub := filepath.Join(dir, "signer.pub")
	msg := filepath.Join(dir, "message.txt")
	sig := filepath.Join(dir, "message.sig")

	mustRun(t, "keygen", "--bits", "768", "--out", key)
	mustRun(t, "pubkey", "--key", key, "--out", pub)
	if err := os.WriteFile(msg, []byte("contract terms"), 0600); err != nil {
		t.Fatal(err)
	}

	mustRun(t, "sign", "--key", key, "--out", sig, msg)

	out, err := run(t, "verify", "--key", pub, "--sig", sig, msg)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "valid") {
		t.Errorf("unexpected verify output: %q", out)
	}

	// altered message must fail
	if err := os.WriteFile(msg, []byte("contract terms, amended"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "verify", "--key", pub, "--sig", sig, msg); err == nil {
		t.Error("verification passed for altered message")
	}
}

func TestLoadKey_BadFile(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage")
	if err := os.WriteFile(garbage, []byte("zz not hex"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "pubkey", "--key", garbage); err == nil {
		t.Error("non-hex key file accepted")
	}
	if _, err := run(t, "pubkey", "--key", filepath.Join(dir, "missing")); err == nil {
		t.Error("missing key file accepted")
	}
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if _, err := run(t, args...); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
}
