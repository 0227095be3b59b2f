// Package hash implements the ASCON-HASH/HASHA fixed-output hash
// functions and the ASCON-XOF/XOFA extendable-output functions, including
// the cXOF customization-string layer that KDF, KMAC and PBKDF2 are built
// on top of (see the kdf and pbkdf2 packages).
package hash

import (
	"github.com/AeonDave/ascon-go/internal/core"
	"github.com/AeonDave/ascon-go/sponge"
)

// Size is the output length in bytes of Hash and HashA.
const Size = 32

const rate = 8

// Precomputed initialization vectors, transcribed from the reference
// implementation so that Init doesn't need to run the 12-round
// permutation over the IV block at every call. Each is the result of
// folding the IV word through ascon_permute(0) once, done offline.
var (
	hashIV = core.State{
		0xee9398aadb67f03d, 0x8bb21831c60f1002,
		0xb48a92db98d5da62, 0x43189921b8f8e3e8,
		0x348fa5c9d525e140,
	}
	xofIV = core.State{
		0xb57e273b814cd416, 0x2b51042562ae2420,
		0x66a3a7768ddf2218, 0x5aad0a7a8153650c,
		0x4f3e0e32539493b6,
	}
	xofaIV = core.State{
		0x44906568b77b9832, 0xcd8d6cae53455532,
		0xf7b5212756422129, 0x246885e1de0d225b,
		0xa8cb5ce33449973f,
	}
	hashaFixed32IV = core.State{
		0x01470194fc6528a6, 0x738ec38ac0adffa7,
		0x2ec8e3296c76384c, 0xd6f6a54d7f52377d,
		0xa13c42a223be8d87,
	}

	// The 32-byte-output KMAC/KMACA format blocks come up often enough
	// (every fixed-size MAC call) that the reference precomputes them
	// too (ascon-kmac.c, ascon-kmaca.c).
	kmacIV = core.State{
		0x7a09132495dfa176, 0x1b19e04f31cc4cae,
		0x64ba72afaa61d2b1, 0xd2964e09a5169084,
		0x05bc6c865abe514b,
	}
	kmacaIV = core.State{
		0x47d45e034222e472, 0xed0da2bb5580c30a,
		0xedceed89ce04c765, 0xffe052a5533eaa30,
		0xc8be4956f967f91a,
	}
)

// XOF is an ASCON-XOF instance: absorb arbitrary input, then squeeze an
// arbitrary-length digest. Absorbing more input after a squeeze
// re-enters the absorb phase, exactly like ascon_xof_absorb's mode
// switch. XOF is the IV/customization layer over the sponge engine; the
// mode machine itself lives in the sponge package.
type XOF struct {
	sp sponge.Sponge
}

func newXOF(iv core.State, rounds int) *XOF {
	return &XOF{sp: sponge.Sponge{
		State:       iv,
		AbsorbRate:  rate,
		SqueezeRate: rate,
		Rounds:      rounds,
	}}
}

// NewXOF returns a plain ASCON-XOF instance.
func NewXOF() *XOF {
	return newXOF(xofIV, 0)
}

// NewXOFA returns an ASCON-XOFA instance: 8-round permutes between
// blocks instead of 12, with the full 12 rounds kept for every phase
// transition (init, absorb-to-squeeze, squeeze-to-absorb).
func NewXOFA() *XOF {
	return newXOF(xofaIV, 4)
}

// Reset restores the XOF to its initial (no input absorbed) state,
// keeping its variant. Customized instances do not support Reset;
// construct a fresh cXOF instead.
func (x *XOF) Reset() {
	if x.sp.Rounds != 0 {
		*x = *newXOF(xofaIV, 4)
	} else {
		*x = *newXOF(xofIV, 0)
	}
}

// newFixed builds a plain (non-customized) fixed-output XOF instance —
// the construction ASCON-HASH/HASHA actually use: just the precomputed
// IV and straight absorption, with no cXOF function-name/customization
// format block. rounds is 0 for HASH, 4 for HASHA.
func newFixed(rounds int) *XOF {
	if rounds != 0 {
		return newXOF(hashaFixed32IV, rounds)
	}
	return newXOF(hashIV, rounds)
}

// ivWord returns the first-lane IV word encoding the variant's round
// count and the declared output length in bits (ascon_xof_init_fixed).
func ivWord(rounds int, outlenBits uint64) uint64 {
	if rounds != 0 {
		return 0x00400c0400000000 | outlenBits
	}
	return 0x00400c0000000000 | outlenBits
}

// NewCXOF constructs a customized XOF (cXOF), following
// ascon_xof_init_custom's format block: the first 8 state bytes carry
// the IV word with the declared output length in bits, the remaining 32
// carry the function name (verbatim, zero-padded, if it is 32 bytes or
// fewer; its ASCON-HASH/HASHA digest otherwise), and the whole block is
// run through one full permutation. A non-empty customization string is
// then absorbed, padded, permuted and separated from the caller's own
// input by the domain-separation bit.
//
// rounds selects the XOF variant to build the cXOF on top of: 0 for
// XOF-based (12 rounds/block), 4 for XOFA-based (8 rounds/block).
// outlenBits == 0 declares arbitrary-length output.
func NewCXOF(rounds int, functionName string, custom []byte, outlenBits uint64) *XOF {
	var iv core.State
	switch {
	case functionName == "KMAC" && outlenBits == 256 && rounds == 0:
		iv = kmacIV
	case functionName == "KMAC" && outlenBits == 256 && rounds != 0:
		iv = kmacaIV
	default:
		name := []byte(functionName)
		if len(name) > Size {
			name = sumHash(rounds, name)
		}
		var padded [Size]byte
		copy(padded[:], name)
		iv[0] = ivWord(rounds, outlenBits)
		for i := 0; i < 4; i++ {
			iv[i+1] = core.BELoadN(padded[i*8:(i+1)*8], 8)
		}
		iv.Permute(0)
	}

	x := newXOF(iv, rounds)
	if len(custom) > 0 {
		x.sp.Absorb(custom)
		x.sp.FlushPadded()
		x.sp.Separator()
	}
	return x
}

func sumHash(rounds int, data []byte) []byte {
	x := newFixed(rounds)
	x.sp.Absorb(data)
	out := make([]byte, Size)
	x.Squeeze(out)
	return out
}

// Write implements io.Writer, absorbing p as XOF/cXOF input. Writing
// after a Squeeze re-enters the absorb phase with one full permutation.
func (x *XOF) Write(p []byte) (int, error) {
	x.sp.Absorb(p)
	return len(p), nil
}

// Squeeze emits len(out) bytes of output. The first call after absorbing
// pads the buffered input and permutes once; the variant's inter-block
// round count applies between subsequent output blocks.
func (x *XOF) Squeeze(out []byte) {
	x.sp.Squeeze(out)
}

// Align forces the sponge onto a rate-block boundary without emitting
// output or padding bytes, matching ascon_xof_pad. Exported for
// random.State's rekey step, which must flush pending input before it
// starts zeroing the rate.
func (x *XOF) Align() {
	x.sp.Align()
}

// ZeroRateAndPermute overwrites the rate portion of the state with
// zeroes and runs one full 12-round permutation — the single repeated
// step of the SpongePRNG rekey (ascon_random_rekey).
func (x *XOF) ZeroRateAndPermute() {
	x.sp.ZeroRateAndPermute()
}

// Clone returns an independent copy of x's current state, so callers can
// absorb further input down two different branches without recomputing
// the shared prefix — the role ascon_xof_copy plays in ascon_pbkdf2_f,
// which clones the password-primed cXOF state once per block instead of
// re-absorbing the password every time.
func (x *XOF) Clone() *XOF {
	clone := *x
	return &clone
}

// Sum appends outlen bytes of the XOF's output to b and returns the
// resulting slice, leaving the XOF ready for further squeezing.
func (x *XOF) Sum(b []byte, outlen int) []byte {
	out := make([]byte, outlen)
	x.Squeeze(out)
	return append(b, out...)
}
