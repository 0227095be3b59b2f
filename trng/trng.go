// Package trng provides the entropy-source abstraction that the masking
// layer and the SpongePRNG consume. It deliberately does not try to be a
// general-purpose CSPRNG: callers that need one should use random.State,
// which whitens whatever a Source produces.
package trng

import "crypto/rand"

// Source generates raw entropy. Generate fills out completely and
// reports whether the underlying source is currently healthy; a Source
// that always returns false is treated by callers as "no entropy
// available" rather than silently handing back zeroes.
type Source interface {
	Generate(out []byte) bool
}

// OS is the default Source, backed by the operating system's CSPRNG via
// crypto/rand. It is always healthy unless the OS itself refuses to
// return randomness, which crypto/rand surfaces as a panic-worthy
// condition on every supported platform, so Generate only returns false
// if Read itself errors.
type OS struct{}

// Generate implements Source.
func (OS) Generate(out []byte) bool {
	_, err := rand.Read(out)
	return err == nil
}

// Generate64 draws a single 64-bit word from src, matching the original
// library's ascon_trng_generate_64 helper used throughout the masking
// layer. Callers that draw many words should wrap their source in a
// Mixer, which amortizes the underlying draws across a sponge.
func Generate64(src Source) uint64 {
	var buf [8]byte
	src.Generate(buf[:])
	var v uint64
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}
	return v
}

// Generate32 draws a single 32-bit word from src
// (ascon_trng_generate_32).
func Generate32(src Source) uint32 {
	var buf [4]byte
	src.Generate(buf[:])
	var v uint32
	for _, b := range buf {
		v = v<<8 | uint32(b)
	}
	return v
}
