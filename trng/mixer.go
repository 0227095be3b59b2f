package trng

import "github.com/AeonDave/ascon-go/internal/core"

// mixerRate is the number of output bytes taken per 6-round permutation
// while mixing, matching ASCON_TRNG_MIXER_RATE (8 bytes).
const mixerRate = 8

// mixerSeedSize matches ASCON_SYSTEM_SEED_SIZE: the number of raw bytes
// pulled from the underlying source at init and reseed time.
const mixerSeedSize = 32

// Mixer wraps a lower-quality or distrusted entropy source (an embedded
// TRNG peripheral whose vendor you don't necessarily trust, a noisy ADC
// sampler, and so on) and whitens its output by absorbing it into an
// Ascon sponge and squeezing fresh material back out, grounded on
// ascon-trng-mixer.c: the 32-byte seed lands in the capacity, the full
// 12-round permutation mixes it, and output is drawn from the 8-byte
// rate with 6-round permutations between blocks. This destroys any
// structure or watermark the underlying source might carry, per the
// rationale documented in the reference TRNG header.
type Mixer struct {
	Underlying Source
	state      core.State
	posn       int
	seeded     bool
}

func (m *Mixer) init() bool {
	var seed [mixerSeedSize]byte
	ok := m.Underlying.Generate(seed[:])
	m.state.Clean()
	m.state.OverwriteBytes(40-mixerSeedSize, seed[:])
	m.state.Permute(0)
	for i := range seed {
		seed[i] = 0
	}
	m.posn = 0
	m.seeded = true
	return ok
}

// Reseed folds a fresh draw from the underlying source into the running
// state, zeroing the rate first so past output cannot be reconstructed
// from the post-reseed state (ascon_trng_reseed).
func (m *Mixer) Reseed() bool {
	if !m.seeded {
		return m.init()
	}
	var seed [mixerSeedSize]byte
	ok := m.Underlying.Generate(seed[:])
	m.state.XORBytes(40-mixerSeedSize, seed[:])
	var zero [mixerRate]byte
	m.state.OverwriteBytes(0, zero[:])
	m.state.Permute(0)
	for i := range seed {
		seed[i] = 0
	}
	m.posn = 0
	return ok
}

// Generate implements Source, filling out with whitened entropy.
func (m *Mixer) Generate(out []byte) bool {
	ok := true
	if !m.seeded {
		ok = m.init()
	}
	for len(out) > 0 {
		if m.posn >= mixerRate {
			m.state.Permute(6)
			m.posn = 0
		}
		n := mixerRate - m.posn
		if n > len(out) {
			n = len(out)
		}
		m.state.ExtractBytes(m.posn, out[:n])
		m.posn += n
		out = out[n:]
	}
	return ok
}
