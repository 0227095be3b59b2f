// Command asconsum is a small checksum/AEAD utility exposing this
// module's hashing and authenticated-encryption primitives from the
// command line: "hash" digests stdin or files with ASCON-XOF, "seal"
// and "open" wrap ASCON-128 encryption around stdin.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/AeonDave/ascon-go/aead"
	"github.com/AeonDave/ascon-go/hash"
	"github.com/AeonDave/ascon-go/internal/runtimecrypto"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: asconsum <command> [flags] [files...]

commands:
  hash    digest stdin or files with ASCON-XOF
  seal    encrypt stdin with ASCON-128, writing hex(ciphertext||tag)
  open    decrypt hex(ciphertext||tag) from stdin with ASCON-128
`)
}

func main() {
	os.Exit(run())
}

// run dispatches to the requested subcommand and returns a process exit
// code, so it can also serve as the registered program in a testscript
// command map (see script_test.go).
func run() int {
	if len(os.Args) < 2 {
		usage()
		return 2
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "hash":
		err = runHash(args, os.Stdin, os.Stdout)
	case "seal":
		err = runSeal(args, os.Stdin, os.Stdout)
	case "open":
		err = runOpen(args, os.Stdin, os.Stdout)
	default:
		usage()
		return 2
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runHash(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	outlen := fs.Int("n", hash.Size, "digest length in bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		return sumReader(hash.NewXOF(), stdin, *outlen, "-", stdout)
	}
	for _, filename := range fs.Args() {
		f, err := os.Open(filename)
		if err != nil {
			return err
		}
		err = sumReader(hash.NewXOF(), f, *outlen, filename, stdout)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func sumReader(x *hash.XOF, r io.Reader, outlen int, name string, stdout io.Writer) error {
	if _, err := io.Copy(x, r); err != nil {
		return fmt.Errorf("asconsum: hash %s: %w", name, err)
	}
	digest := make([]byte, outlen)
	x.Squeeze(digest)
	fmt.Fprintf(stdout, "%s  %s\n", hex.EncodeToString(digest), name)
	return nil
}

func decodeKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("asconsum: invalid -key: %w", err)
	}
	return key, nil
}

func decodeNonce(hexNonce string) ([]byte, error) {
	nonce, err := hex.DecodeString(hexNonce)
	if err != nil {
		return nil, fmt.Errorf("asconsum: invalid -nonce: %w", err)
	}
	return nonce, nil
}

func runSeal(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("seal", flag.ContinueOnError)
	hexKey := fs.String("key", "", "32-char hex ASCON-128 key (required)")
	hexNonce := fs.String("nonce", "", "32-char hex nonce (required)")
	ad := fs.String("ad", "", "associated data")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, err := decodeKey(*hexKey)
	if err != nil {
		return err
	}
	nonce, err := decodeNonce(*hexNonce)
	if err != nil {
		return err
	}
	inner, err := aead.NewAscon128(key)
	if err != nil {
		return err
	}
	a := runtimecrypto.NewAEAD(inner)
	plaintext, err := io.ReadAll(stdin)
	if err != nil {
		return err
	}
	ct := a.Seal(nil, nonce, plaintext, []byte(*ad))
	fmt.Fprintln(stdout, hex.EncodeToString(ct))
	return nil
}

func runOpen(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	hexKey := fs.String("key", "", "32-char hex ASCON-128 key (required)")
	hexNonce := fs.String("nonce", "", "32-char hex nonce (required)")
	ad := fs.String("ad", "", "associated data")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, err := decodeKey(*hexKey)
	if err != nil {
		return err
	}
	nonce, err := decodeNonce(*hexNonce)
	if err != nil {
		return err
	}
	inner, err := aead.NewAscon128(key)
	if err != nil {
		return err
	}
	a := runtimecrypto.NewAEAD(inner)
	line, err := io.ReadAll(stdin)
	if err != nil {
		return err
	}
	ct, err := hex.DecodeString(trimNewline(line))
	if err != nil {
		return fmt.Errorf("asconsum: invalid ciphertext: %w", err)
	}
	pt, err := a.Open(nil, nonce, ct, []byte(*ad))
	if err != nil {
		return err
	}
	_, err = stdout.Write(pt)
	return err
}

func trimNewline(b []byte) string {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return string(b)
}
