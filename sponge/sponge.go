// Package sponge implements the buffered absorb/squeeze engine that the
// hashing, cXOF, KDF, MAC and PRNG constructions thread their state
// through. It models the mode machine of ascon-xof.c (absorb vs squeeze,
// with padding and one full permutation on the absorb-to-squeeze
// transition, and one full permutation without padding on re-entry
// from squeeze to absorb)
// generalized over the rate configurations the constructions need: 8
// bytes for HASH/XOF, and the asymmetric 32-byte-absorb/16-byte-squeeze
// split of ASCON-PRF. The AEAD, SIV and ISAP families have enough
// bespoke finalization logic that they talk to internal/core directly,
// the same split that exists between ascon-aead-common.c's generic block
// loops and ascon-xof.c's state machine in the reference implementation.
package sponge

import "github.com/AeonDave/ascon-go/internal/core"

// Sponge is a buffered absorb/squeeze engine over an Ascon permutation
// state. The zero value of the bookkeeping fields is a fresh absorbing
// sponge; callers set State (usually to a precomputed IV) and the rate
// configuration before first use.
type Sponge struct {
	State core.State

	// AbsorbRate and SqueezeRate are the block sizes in bytes for each
	// phase (8/8 for XOF-style constructions, 32/16 for ASCON-PRF).
	AbsorbRate  int
	SqueezeRate int
	// Rounds is the first-round argument for the permutes between
	// full blocks in either phase (0 for 12-round constructions, 4
	// for the 8-round XOFA family). Phase transitions always use the
	// full 12 rounds.
	Rounds int
	// TransitionSeparator toggles the domain-separation bit as part of
	// the absorb-to-squeeze transition, the key/body boundary
	// discipline of ASCON-PRF. XOF-style constructions leave it unset
	// and place separators explicitly.
	TransitionSeparator bool

	buf [core.RateMax]byte
	// count is the number of buffered-but-unabsorbed input bytes while
	// absorbing, or the number of already-emitted bytes of the current
	// output block while squeezing. While absorbing, count < AbsorbRate
	// at every public boundary; while squeezing it can equal
	// SqueezeRate, the permute for the next block being deferred until
	// more output is requested.
	count     int
	squeezing bool
}

// Absorb feeds data into the sponge, buffering partial blocks and
// permuting on every full block. Absorbing after a squeeze re-enters the
// absorb phase with one full permutation (ascon_xof_absorb's mode
// switch).
func (sp *Sponge) Absorb(data []byte) {
	if sp.squeezing {
		sp.squeezing = false
		sp.count = 0
		sp.State.Permute(0)
	}
	for len(data) > 0 {
		n := copy(sp.buf[sp.count:sp.AbsorbRate], data)
		sp.count += n
		data = data[n:]
		if sp.count == sp.AbsorbRate {
			sp.State.XORBytes(0, sp.buf[:sp.AbsorbRate])
			sp.State.Permute(sp.Rounds)
			sp.count = 0
		}
	}
}

// padBuffered XORs the buffered partial block plus the 0x80 padding byte
// into the state, leaving the buffer empty. The caller decides which
// permutation follows.
func (sp *Sponge) padBuffered() {
	sp.State.XORBytes(0, sp.buf[:sp.count])
	sp.State.Pad(sp.count)
	sp.count = 0
}

// FlushPadded absorbs the buffered partial block with padding and runs
// one full permutation, staying in the absorb phase. This is the cXOF
// customization-string boundary step (ascon_xof_absorb_custom), distinct
// from the absorb-to-squeeze transition that Squeeze performs itself.
func (sp *Sponge) FlushPadded() {
	sp.padBuffered()
	sp.State.Permute(0)
}

// Separator toggles the domain-separation bit in the last state byte.
func (sp *Sponge) Separator() {
	sp.State.Separator()
}

// Squeeze emits len(out) bytes. The first call after absorbing pads the
// buffered input (toggling the separator first if TransitionSeparator is
// set), permutes once with the full 12 rounds, and then emits
// SqueezeRate bytes per inter-block permute.
func (sp *Sponge) Squeeze(out []byte) {
	if !sp.squeezing {
		sp.padBuffered()
		if sp.TransitionSeparator {
			sp.State.Separator()
		}
		sp.State.Permute(0)
		sp.squeezing = true
		sp.State.ExtractBytes(0, sp.buf[:sp.SqueezeRate])
	}
	for len(out) > 0 {
		if sp.count == sp.SqueezeRate {
			sp.State.Permute(sp.Rounds)
			sp.State.ExtractBytes(0, sp.buf[:sp.SqueezeRate])
			sp.count = 0
		}
		n := copy(out, sp.buf[sp.count:sp.SqueezeRate])
		sp.count += n
		out = out[n:]
	}
}

// Align forces the sponge onto a rate-block boundary without emitting
// output or padding bytes (ascon_xof_pad): a squeezing sponge re-enters
// the absorb phase with one full permutation, and an absorbing sponge
// with buffered input flushes it unpadded through the inter-block
// permute.
func (sp *Sponge) Align() {
	if sp.squeezing {
		sp.squeezing = false
		sp.count = 0
		sp.State.Permute(0)
		return
	}
	if sp.count != 0 {
		sp.State.XORBytes(0, sp.buf[:sp.count])
		sp.State.Permute(sp.Rounds)
		sp.count = 0
	}
}

// ZeroRateAndPermute overwrites the absorb-rate portion of the state
// with zeroes and runs one full permutation — the single repeated step
// of the SpongePRNG's forward-security rekey (ascon_random_rekey).
func (sp *Sponge) ZeroRateAndPermute() {
	var zero [core.RateMax]byte
	sp.State.OverwriteBytes(0, zero[:sp.AbsorbRate])
	sp.State.Permute(0)
}

// Clean wipes the permutation state and every buffered byte.
func (sp *Sponge) Clean() {
	sp.State.Clean()
	for i := range sp.buf {
		sp.buf[i] = 0
	}
	sp.count = 0
	sp.squeezing = false
}
