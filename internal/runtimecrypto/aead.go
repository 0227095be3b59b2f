// Package runtimecrypto provides the thin cipher.AEAD wrapper that
// cmd/asconsum's seal and open paths run through, keeping error messages
// and the AEAD value they pass around uniform regardless of which
// construction in this module (aead.NewAscon128, siv.New,
// masked.NewAEAD128, ...) backs it.
//
// Adapted from internal/runtime_crypto/aead.go: the reference wrapped a
// single hardcoded golang.org/x/crypto/chacha20poly1305 cipher; this
// generalizes it to wrap any cipher.AEAD so it can sit in front of this
// module's own constructions instead.
package runtimecrypto

import (
	"crypto/cipher"
	"fmt"
)

// AEAD wraps an arbitrary cipher.AEAD, adding a consistent error-wrapping
// convention on Open failures.
type AEAD struct {
	aead cipher.AEAD
}

// NewAEAD wraps the given cipher.AEAD implementation.
func NewAEAD(a cipher.AEAD) AEAD {
	return AEAD{aead: a}
}

// NonceSize reports the nonce length required by the underlying construction.
func (a AEAD) NonceSize() int {
	return a.aead.NonceSize()
}

// Overhead reports the authentication tag size added to sealed ciphertexts.
func (a AEAD) Overhead() int {
	return a.aead.Overhead()
}

// Seal encrypts and authenticates plaintext using the supplied nonce and AAD.
func (a AEAD) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	return a.aead.Seal(dst, nonce, plaintext, additionalData)
}

// Open verifies and decrypts ciphertext produced by Seal.
func (a AEAD) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	plaintext, err := a.aead.Open(dst, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, fmt.Errorf("runtimecrypto: aead open: %w", err)
	}
	return plaintext, nil
}
