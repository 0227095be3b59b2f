package siv

import (
	"bytes"
	"testing"
)

func TestSIV128RoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	for i := range key {
		key[i] = byte(i)
	}
	for i := range nonce {
		nonce[i] = byte(i * 2)
	}
	s, err := New(key)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct{ pt, ad string }{
		{"", ""},
		{"", "ad"},
		{"hello", ""},
		{"a much longer plaintext than a single 8-byte rate block, spanning several", "some context"},
	}
	for _, c := range cases {
		ct := s.Seal(nil, nonce, []byte(c.pt), []byte(c.ad))
		pt, err := s.Open(nil, nonce, ct, []byte(c.ad))
		if err != nil {
			t.Fatalf("Open failed for %q: %v", c.pt, err)
		}
		if !bytes.Equal(pt, []byte(c.pt)) {
			t.Fatalf("round trip mismatch: got %q want %q", pt, c.pt)
		}
	}
}

func TestSIV128IsDeterministic(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	s, _ := New(key)
	a := s.Seal(nil, nonce, []byte("repeat me"), []byte("ad"))
	b := s.Seal(nil, nonce, []byte("repeat me"), []byte("ad"))
	if !bytes.Equal(a, b) {
		t.Fatal("ASCON-128-SIV must be deterministic for identical inputs")
	}
}

func TestSIV128DistinguishesNonceReuse(t *testing.T) {
	// Unlike a nonce-respecting AEAD, SIV's security does not collapse
	// when the nonce repeats across different plaintexts: the synthetic
	// IV still differs because it is derived from the plaintext itself.
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	s, _ := New(key)
	a := s.Seal(nil, nonce, []byte("message one"), nil)
	b := s.Seal(nil, nonce, []byte("message two"), nil)
	if bytes.Equal(a, b) {
		t.Fatal("different plaintexts under a reused nonce produced identical ciphertext")
	}
}

func TestSIV128RejectsTamperedTag(t *testing.T) {
	s, _ := New(make([]byte, KeySize))
	nonce := make([]byte, NonceSize)
	ct := s.Seal(nil, nonce, []byte("payload"), nil)
	ct[len(ct)-1] ^= 1
	if _, err := s.Open(nil, nonce, ct, nil); err == nil {
		t.Fatal("Open accepted a tampered tag")
	}
}

func TestSIV128InvalidKeySize(t *testing.T) {
	if _, err := New(make([]byte, 10)); err == nil {
		t.Fatal("expected error for invalid key size")
	}
}
