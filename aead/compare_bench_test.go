package aead

import (
	"crypto/rand"
	"testing"

	"golang.org/x/crypto/chacha20poly1305"
)

// BenchmarkAscon128aSeal1024 and BenchmarkChaCha20Poly1305Seal1024 exist side by side so
// ASCON's throughput on this machine can be read against a familiar
// reference AEAD rather than in isolation.
func benchmarkSeal(b *testing.B, a interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
}, nonceSize int, size int) {
	nonce := make([]byte, nonceSize)
	pt := make([]byte, size)
	rand.Read(nonce)
	rand.Read(pt)
	b.SetBytes(int64(size))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Seal(nil, nonce, pt, nil)
	}
}

func BenchmarkAscon128aSeal1024(b *testing.B) {
	a, err := NewAscon128a(make([]byte, 16))
	if err != nil {
		b.Fatal(err)
	}
	benchmarkSeal(b, a, 16, 1024)
}

func BenchmarkAscon128Seal1024(b *testing.B) {
	a, err := NewAscon128(make([]byte, 16))
	if err != nil {
		b.Fatal(err)
	}
	benchmarkSeal(b, a, 16, 1024)
}

func BenchmarkChaCha20Poly1305Seal1024(b *testing.B) {
	a, err := chacha20poly1305.New(make([]byte, 32))
	if err != nil {
		b.Fatal(err)
	}
	benchmarkSeal(b, a, chacha20poly1305.NonceSize, 1024)
}
