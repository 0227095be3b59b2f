package isap

import (
	"bytes"
	"testing"
)

func TestISAP128RoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	for i := range key {
		key[i] = byte(i + 1)
	}
	for i := range nonce {
		nonce[i] = byte(200 - i)
	}
	ks, err := NewKeyState(ISAP128, key)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct{ pt, ad string }{
		{"", ""},
		{"", "ad"},
		{"eight byt", ""},
		{"a plaintext spanning several 8-byte ISAP rate blocks for testing", "context string"},
	}
	for _, c := range cases {
		ct, err := ks.Seal(nonce, []byte(c.pt), []byte(c.ad))
		if err != nil {
			t.Fatal(err)
		}
		pt, err := ks.Open(nonce, ct, []byte(c.ad))
		if err != nil {
			t.Fatalf("Open failed for %q: %v", c.pt, err)
		}
		if !bytes.Equal(pt, []byte(c.pt)) {
			t.Fatalf("round trip mismatch: got %q want %q", pt, c.pt)
		}
	}
}

func TestISAP128aRoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	ks, err := NewKeyState(ISAP128a, key)
	if err != nil {
		t.Fatal(err)
	}
	ct, err := ks.Seal(nonce, []byte("isap-128a message"), []byte("ad"))
	if err != nil {
		t.Fatal(err)
	}
	pt, err := ks.Open(nonce, ct, []byte("ad"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if string(pt) != "isap-128a message" {
		t.Fatalf("got %q", pt)
	}
}

func TestISAP128And128aDiffer(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	ks128, _ := NewKeyState(ISAP128, key)
	ks128a, _ := NewKeyState(ISAP128a, key)
	ctA, _ := ks128.Seal(nonce, []byte("same input"), nil)
	ctB, _ := ks128a.Seal(nonce, []byte("same input"), nil)
	if bytes.Equal(ctA, ctB) {
		t.Fatal("ISAP-128 and ISAP-128a produced identical ciphertext")
	}
}

func TestISAP128RejectsTamperedCiphertext(t *testing.T) {
	ks, _ := NewKeyState(ISAP128, make([]byte, KeySize))
	nonce := make([]byte, NonceSize)
	ct, _ := ks.Seal(nonce, []byte("payload"), nil)
	ct[0] ^= 1
	if _, err := ks.Open(nonce, ct, nil); err == nil {
		t.Fatal("Open accepted tampered ciphertext")
	}
}

func TestISAP128InvalidKeySize(t *testing.T) {
	if _, err := NewKeyState(ISAP128, make([]byte, 10)); err == nil {
		t.Fatal("expected error for invalid key size")
	}
}
