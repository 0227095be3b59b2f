// Package mac implements ASCON-PRF, ASCON-PRF-short and ASCON-MAC,
// grounded on ascon-prf.c. PRF uses a rate-32 absorb phase (two 16-byte
// lane writes per permutation) and a rate-16 squeeze phase, each with
// its own fixed IV family distinct from the AEAD and hash IVs. MAC is
// PRF pinned to a 16-byte output, verified in constant time with
// crypto/subtle.ConstantTimeCompare.
package mac

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/AeonDave/ascon-go/internal/core"
	"github.com/AeonDave/ascon-go/sponge"
)

// ErrInvalidInput is wrapped by PRFShort when a key, input, or output
// length is outside the single-permutation construction's hard limits.
var ErrInvalidInput = errors.New("invalid input")

const (
	keySize     = 16
	absorbRate  = 32
	squeezeRate = 16
	// MACSize is the fixed output length of ASCON-MAC.
	MACSize = 16
	// PRFShortMaxInput is the largest input ASCON-PRF-short accepts.
	PRFShortMaxInput = 16
	// PRFShortMaxOutput is the largest output ASCON-PRF-short can produce.
	PRFShortMaxOutput = 16
)

// PRF computes an outlen-byte pseudorandom output from a 16-byte key and
// an arbitrary-length input, using ASCON-PRF's rate-32/rate-16 sponge.
// The declared output length is baked into the IV (ascon_prf_fixed);
// use PRFStream for the arbitrary-length variant whose output can be
// truncated freely. A key of the wrong length returns an error wrapping
// ErrInvalidInput.
func PRF(key, input []byte, outlen int) ([]byte, error) {
	return prf(key, input, outlen, uint64(outlen)*8)
}

// PRFStream is the arbitrary-output-length PRF variant (ascon_prf): the
// IV declares no output length, so prefixes of a longer output equal a
// shorter output for the same key and input.
func PRFStream(key, input []byte, outlen int) ([]byte, error) {
	return prf(key, input, outlen, 0)
}

func prf(key, input []byte, outlen int, outlenBitsIV uint64) ([]byte, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("mac: PRF key length %d, want %d: %w", len(key), keySize, ErrInvalidInput)
	}
	var s core.State
	ivWord := 0x8080_8c00_0000_0000 | outlenBitsIV
	s.OverwriteLane(0, ivWord)
	s.Overwrite(8, key[0:8])
	s.Overwrite(16, key[8:16])
	s.Permute(0)

	// PRF is the one sponge configuration with asymmetric rates: 32
	// bytes absorbed per permutation, 16 squeezed, with the key/body
	// separator folded into the phase transition (ascon_prf_squeeze).
	sp := sponge.Sponge{
		State:               s,
		AbsorbRate:          absorbRate,
		SqueezeRate:         squeezeRate,
		TransitionSeparator: true,
	}
	sp.Absorb(input)
	out := make([]byte, outlen)
	sp.Squeeze(out)
	sp.Clean()
	return out, nil
}

// MAC computes a fixed 16-byte authentication tag over data using a
// 16-byte key — ASCON-PRF pinned to MACSize output.
func MAC(key, data []byte) ([]byte, error) {
	return PRF(key, data, MACSize)
}

// Verify reports whether tag is the correct ASCON-MAC over data under
// key, comparing in constant time. A malformed key or tag length simply
// fails verification.
func Verify(key, data, tag []byte) bool {
	if len(tag) != MACSize {
		return false
	}
	expected, err := MAC(key, data)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(expected, tag) == 1
}

// PRFShort computes a pseudorandom output of at most PRFShortMaxOutput
// bytes from a single-block input of at most PRFShortMaxInput bytes,
// using a single permutation call. Inputs or output lengths beyond the
// construction's hard limits return an error wrapping ErrInvalidInput,
// the same refusal ascon_prf_short signals with its -1 return.
//
// The input's exact length is encoded into the IV's second byte (rather
// than into a 0x80 padding marker), so a zero-padded 16-byte input block
// is unambiguous: two callers with different input lengths never collide
// on the same padded block, because they start from different IVs.
func PRFShort(key, input []byte, outlen int) ([]byte, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("mac: PRFShort key length %d, want %d: %w", len(key), keySize, ErrInvalidInput)
	}
	if len(input) > PRFShortMaxInput {
		return nil, fmt.Errorf("mac: PRFShort input length %d exceeds %d: %w", len(input), PRFShortMaxInput, ErrInvalidInput)
	}
	if outlen > PRFShortMaxOutput || outlen < 0 {
		return nil, fmt.Errorf("mac: PRFShort output length %d out of range: %w", outlen, ErrInvalidInput)
	}
	var s core.State
	ivWord := uint64(0x8000_4c80_0000_0000) | uint64(len(input)*8)<<48
	s.OverwriteLane(0, ivWord)
	s.Overwrite(8, key[0:8])
	s.Overwrite(16, key[8:16])

	var block [16]byte
	copy(block[:], input)
	s.XORBlock(24, block[0:8])
	s.XORBlock(32, block[8:16])
	s.Permute(0)
	s.XORBlock(24, key[0:8])
	s.XORBlock(32, key[8:16])

	var out [PRFShortMaxOutput]byte
	s.ExtractBlock(24, out[0:8])
	s.ExtractBlock(32, out[8:16])
	return out[:outlen], nil
}
