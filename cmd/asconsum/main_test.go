package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestRunHashStdin(t *testing.T) {
	var out bytes.Buffer
	err := runHash(nil, strings.NewReader("hello world"), &out)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(strings.HasSuffix(strings.TrimSpace(out.String()), "-"), true))

	fields := strings.Fields(out.String())
	digest, err := hex.DecodeString(fields[0])
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(digest), 32))
}

func TestRunHashCustomLength(t *testing.T) {
	var out bytes.Buffer
	err := runHash([]string{"-n", "64"}, strings.NewReader("data"), &out)
	qt.Assert(t, qt.IsNil(err))

	fields := strings.Fields(out.String())
	digest, err := hex.DecodeString(fields[0])
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(digest), 64))
}

func TestRunHashIsDeterministic(t *testing.T) {
	var out1, out2 bytes.Buffer
	qt.Assert(t, qt.IsNil(runHash(nil, strings.NewReader("same input"), &out1)))
	qt.Assert(t, qt.IsNil(runHash(nil, strings.NewReader("same input"), &out2)))
	qt.Assert(t, qt.Equals(out1.String(), out2.String()))
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := strings.Repeat("00", 16)
	nonce := strings.Repeat("11", 16)

	var sealed bytes.Buffer
	err := runSeal([]string{"-key", key, "-nonce", nonce, "-ad", "context"},
		strings.NewReader("secret message"), &sealed)
	qt.Assert(t, qt.IsNil(err))

	var opened bytes.Buffer
	err = runOpen([]string{"-key", key, "-nonce", nonce, "-ad", "context"},
		strings.NewReader(sealed.String()), &opened)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(opened.String(), "secret message"))
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key := strings.Repeat("00", 16)
	nonce := strings.Repeat("11", 16)

	var sealed bytes.Buffer
	err := runSeal([]string{"-key", key, "-nonce", nonce}, strings.NewReader("secret"), &sealed)
	qt.Assert(t, qt.IsNil(err))

	ct, err := hex.DecodeString(strings.TrimSpace(sealed.String()))
	qt.Assert(t, qt.IsNil(err))
	ct[0] ^= 1
	tampered := hex.EncodeToString(ct)

	var opened bytes.Buffer
	err = runOpen([]string{"-key", key, "-nonce", nonce}, strings.NewReader(tampered), &opened)
	qt.Assert(t, qt.Equals(err != nil, true))
}

func TestOpenRejectsWrongAD(t *testing.T) {
	key := strings.Repeat("00", 16)
	nonce := strings.Repeat("11", 16)

	var sealed bytes.Buffer
	err := runSeal([]string{"-key", key, "-nonce", nonce, "-ad", "first"}, strings.NewReader("secret"), &sealed)
	qt.Assert(t, qt.IsNil(err))

	var opened bytes.Buffer
	err = runOpen([]string{"-key", key, "-nonce", nonce, "-ad", "second"},
		strings.NewReader(sealed.String()), &opened)
	qt.Assert(t, qt.Equals(err != nil, true))
}

func TestDecodeKeyRejectsInvalidHex(t *testing.T) {
	_, err := decodeKey("not-hex")
	qt.Assert(t, qt.Equals(err != nil, true))
}

func TestTrimNewline(t *testing.T) {
	qt.Assert(t, qt.Equals(trimNewline([]byte("abc\n")), "abc"))
	qt.Assert(t, qt.Equals(trimNewline([]byte("abc\r\n")), "abc"))
	qt.Assert(t, qt.Equals(trimNewline([]byte("abc")), "abc"))
}
