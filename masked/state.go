package masked

import (
	"fmt"

	"github.com/AeonDave/ascon-go/internal/core"
	"github.com/AeonDave/ascon-go/trng"
)

// State is the 320-bit Ascon permutation state held as 5 masked words,
// the masked counterpart of core.State (ascon_masked_state_t).
type State struct {
	Lanes    [5]Word
	Shares   int
	preserve [3]uint64
}

// NewState returns a zeroed masked state for the given share count.
func NewState(shares int) (*State, error) {
	if shares < 2 || shares > 4 {
		return nil, fmt.Errorf("masked: invalid share count %d, want 2, 3 or 4", shares)
	}
	return &State{Shares: shares}, nil
}

// Permute runs rounds firstRound..11 of the masked permutation, carrying
// the preserved-randomness register(s) across calls exactly as the
// unmasked core.State.Permute carries none (there is nothing to
// preserve in the unmasked backend; masked backends need the register
// because the S-box's Toffoli-gate expansion produces a cross term that
// outlives a single round).
func (s *State) Permute(firstRound int) {
	switch s.Shares {
	case 2:
		Permute2(&s.Lanes, firstRound, &s.preserve[0])
	case 3:
		var p [2]uint64
		p[0], p[1] = s.preserve[0], s.preserve[1]
		Permute3(&s.Lanes, firstRound, &p)
		s.preserve[0], s.preserve[1] = p[0], p[1]
	case 4:
		Permute4(&s.Lanes, firstRound, &s.preserve)
	}
}

// SeedPreserve draws the preserved-randomness register(s) from src ahead
// of the first Permute call, mirroring how the reference AEAD routines
// draw `preserve[ASCON_MASKED_KEY_SHARES-1]` once per operation before
// the first masked_key_permute call.
func (s *State) SeedPreserve(src func() uint64) {
	for i := 0; i < s.Shares-1; i++ {
		s.preserve[i] = src()
	}
}

// Clean overwrites every lane's shares with zeroes.
func (s *State) Clean() {
	for i := range s.Lanes {
		s.Lanes[i] = Word{}
	}
	s.preserve = [3]uint64{}
}

// Randomize refreshes every lane's shares with fresh randomness while
// preserving every effective lane value (ascon_xN_randomize).
func (s *State) Randomize(src trng.Source) {
	for i := range s.Lanes {
		Randomize(&s.Lanes[i], &s.Lanes[i], s.Shares, src)
	}
}

// CopyFromState masks a plain permutation state into s, drawing fresh
// share randomness for every lane (ascon_xN_copy_from_x1).
func (s *State) CopyFromState(src *core.State, trngSrc trng.Source) {
	for i := range s.Lanes {
		Mask(&s.Lanes[i], s.Shares, src[i], trngSrc)
	}
}

// CopyToState unmasks s into a plain permutation state
// (ascon_xN_copy_to_x1).
func (s *State) CopyToState(dst *core.State) {
	for i := range s.Lanes {
		dst[i] = Unmask(&s.Lanes[i], s.Shares)
	}
}

// CopyFrom converts src (of any share count) into s's share count lane
// by lane, widening with fresh randomness or narrowing by folding the
// extra shares, generalizing the nine ascon_xN_copy_from_xM routines.
func (s *State) CopyFrom(src *State, trngSrc trng.Source) {
	for i := range s.Lanes {
		FromShares(&s.Lanes[i], &src.Lanes[i], src.Shares, s.Shares, trngSrc)
	}
}

// AddWord XORs a masked word into the lane at byte offset off, which
// must be a multiple of 8 (ascon_xN_add_word).
func (s *State) AddWord(off int, w *Word) {
	Xor(&s.Lanes[off/8], w)
}

// OverwriteWord replaces the lane at byte offset off
// (ascon_xN_overwrite_word).
func (s *State) OverwriteWord(off int, w *Word) {
	s.Lanes[off/8] = *w
}

// ExtractWord returns a copy of the lane at byte offset off
// (ascon_xN_extract_word).
func (s *State) ExtractWord(off int) Word {
	return s.Lanes[off/8]
}
