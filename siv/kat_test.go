package siv

import (
	"encoding/hex"
	"testing"
)

// Known-answer vector generated from the reference ascon-siv-128.c with
// key 00 01 .. 0f and nonce 64 65 .. 73.
func TestSealKAT(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	for i := range key {
		key[i] = byte(i)
	}
	for i := range nonce {
		nonce[i] = byte(100 + i)
	}
	s, err := New(key)
	if err != nil {
		t.Fatal(err)
	}
	got := s.Seal(nil, nonce, []byte("hello ascon"), []byte("some ad"))
	want := "d21407dc21f7d4b219f3af402a13494b17e662ca2ff218059f8fbd"
	if hex.EncodeToString(got) != want {
		t.Fatalf("SIV Seal KAT mismatch\n got: %x\nwant: %s", got, want)
	}
}
