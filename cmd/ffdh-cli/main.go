// Package main provides the ffdh-cli command line interface: key
// generation, public key export, shared-secret derivation, symmetric key
// encryption, and signing over finite-field Diffie-Hellman groups.
//
// Keys and packets are stored as hex-encoded files so they survive any
// transport that handles text.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	ffdh "github.com/primekeys/ffdh-go"
	"github.com/primekeys/ffdh-go/core"
	"github.com/primekeys/ffdh-go/dh"
	"github.com/primekeys/ffdh-go/kem"
	"github.com/primekeys/ffdh-go/sign"
	"github.com/primekeys/ffdh-go/utils"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ffdh-cli:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ffdh-cli",
		Usage:   "finite-field Diffie-Hellman key exchange, key transport and signatures",
		Version: ffdh.Version,
		Commands: []*cli.Command{
			groupsCommand(),
			keygenCommand(),
			pubkeyCommand(),
			deriveCommand(),
			encryptCommand(),
			decryptCommand(),
			signCommand(),
			verifyCommand(),
		},
	}
}

func groupsCommand() *cli.Command {
	return &cli.Command{
		Name:  "groups",
		Usage: "list the supported prime groups",
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, "bits\toctets")
			for _, d := range core.Groups {
				fmt.Fprintf(c.App.Writer, "%d\t%d\n", d.Size*8, d.Size)
			}
			return nil
		},
	}
}

func keygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "generate a private key and write its packet",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "bits", Aliases: []string{"b"}, Value: 2048, Usage: "minimum group size in bits"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
		},
		Action: func(c *cli.Context) error {
			bits := c.Int("bits")
			if bits <= 0 || bits%8 != 0 {
				return fmt.Errorf("bits must be a positive multiple of 8, got %d", bits)
			}
			key, err := dh.Generate(nil, bits/8)
			if err != nil {
				return err
			}
			defer key.Zeroize()

			packet, err := dh.Export(key, ffdh.Private)
			if err != nil {
				return err
			}
			defer utils.Zeroize(packet)
			return writeHex(c, c.String("out"), packet)
		},
	}
}

func pubkeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "pubkey",
		Usage: "extract the public packet from a private key file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Required: true, Usage: "private key file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
		},
		Action: func(c *cli.Context) error {
			key, err := loadKey(c.String("key"))
			if err != nil {
				return err
			}
			defer key.Zeroize()

			packet, err := dh.Export(key, ffdh.Public)
			if err != nil {
				return err
			}
			return writeHex(c, c.String("out"), packet)
		},
	}
}

func deriveCommand() *cli.Command {
	return &cli.Command{
		Name:  "derive",
		Usage: "derive the shared secret from a private key and a peer public key",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Required: true, Usage: "private key file"},
			&cli.StringFlag{Name: "peer", Aliases: []string{"p"}, Required: true, Usage: "peer public key file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
		},
		Action: func(c *cli.Context) error {
			key, err := loadKey(c.String("key"))
			if err != nil {
				return err
			}
			defer key.Zeroize()
			peer, err := loadKey(c.String("peer"))
			if err != nil {
				return err
			}

			secret, err := dh.SharedSecret(key, peer)
			if err != nil {
				return err
			}
			defer utils.Zeroize(secret)
			return writeHex(c, c.String("out"), secret)
		},
	}
}

func encryptCommand() *cli.Command {
	return &cli.Command{
		Name:      "encrypt",
		Usage:     "encrypt a short symmetric key under a public key",
		ArgsUsage: "HEX_PLAINTEXT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Required: true, Usage: "recipient public key file"},
			&cli.StringFlag{Name: "hash", Value: "sha256", Usage: "hash algorithm (" + hashNames() + ")"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one hex plaintext argument")
			}
			plaintext, err := hex.DecodeString(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("plaintext is not valid hex: %v", err)
			}
			defer utils.Zeroize(plaintext)

			alg, ok := utils.ByName(c.String("hash"))
			if !ok {
				return fmt.Errorf("unknown hash %q, supported: %s", c.String("hash"), hashNames())
			}
			pub, err := loadKey(c.String("key"))
			if err != nil {
				return err
			}

			packet, err := kem.EncryptKey(plaintext, alg, nil, pub)
			if err != nil {
				return err
			}
			return writeHex(c, c.String("out"), packet)
		},
	}
}

func decryptCommand() *cli.Command {
	return &cli.Command{
		Name:  "decrypt",
		Usage: "decrypt an encrypted-key packet with a private key",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Required: true, Usage: "private key file"},
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true, Usage: "packet file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
		},
		Action: func(c *cli.Context) error {
			key, err := loadKey(c.String("key"))
			if err != nil {
				return err
			}
			defer key.Zeroize()
			packet, err := readHexFile(c.String("in"))
			if err != nil {
				return err
			}

			plaintext, err := kem.DecryptKey(packet, key)
			if err != nil {
				return err
			}
			defer utils.Zeroize(plaintext)
			return writeHex(c, c.String("out"), plaintext)
		},
	}
}

func signCommand() *cli.Command {
	return &cli.Command{
		Name:      "sign",
		Usage:     "hash a message file and sign the digest",
		ArgsUsage: "MESSAGE_FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Required: true, Usage: "private key file"},
			&cli.StringFlag{Name: "hash", Value: "sha256", Usage: "hash algorithm (" + hashNames() + ")"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one message file argument")
			}
			digest, err := digestFile(c.Args().Get(0), c.String("hash"))
			if err != nil {
				return err
			}
			key, err := loadKey(c.String("key"))
			if err != nil {
				return err
			}
			defer key.Zeroize()

			sig, err := sign.SignHash(digest, nil, key)
			if err != nil {
				return err
			}
			return writeHex(c, c.String("out"), sig)
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "verify a signature over a message file",
		ArgsUsage: "MESSAGE_FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Required: true, Usage: "signer public key file"},
			&cli.StringFlag{Name: "sig", Aliases: []string{"s"}, Required: true, Usage: "signature file"},
			&cli.StringFlag{Name: "hash", Value: "sha256", Usage: "hash algorithm (" + hashNames() + ")"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one message file argument")
			}
			digest, err := digestFile(c.Args().Get(0), c.String("hash"))
			if err != nil {
				return err
			}
			pub, err := loadKey(c.String("key"))
			if err != nil {
				return err
			}
			sig, err := readHexFile(c.String("sig"))
			if err != nil {
				return err
			}

			ok, err := sign.VerifyHash(sig, digest, pub)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("signature is INVALID")
			}
			fmt.Fprintln(c.App.Writer, "signature is valid")
			return nil
		},
	}
}

func loadKey(path string) (*ffdh.Key, error) {
	packet, err := readHexFile(path)
	if err != nil {
		return nil, err
	}
	defer utils.Zeroize(packet)
	return dh.Import(packet)
}

func readHexFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%s: not valid hex: %v", path, err)
	}
	return data, nil
}

func writeHex(c *cli.Context, path string, data []byte) error {
	encoded := hex.EncodeToString(data)
	if path == "" {
		fmt.Fprintln(c.App.Writer, encoded)
		return nil
	}
	return os.WriteFile(path, []byte(encoded+"\n"), 0600)
}

func digestFile(path, hashName string) ([]byte, error) {
	alg, ok := utils.ByName(hashName)
	if !ok {
		return nil, fmt.Errorf("unknown hash %q, supported: %s", hashName, hashNames())
	}
	message, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return alg.Sum(message), nil
}

func hashNames() string {
	var names []string
	for _, a := range utils.Algorithms() {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
