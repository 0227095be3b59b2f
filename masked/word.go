// Package masked implements Ascon-p over Boolean-masked state with 2, 3,
// or 4 shares: the side-channel-countermeasure layer described by
// components J (masked word/state) and K (masked permutation) of the
// design. Grounded on ascon-masked-word.h/ascon-masked-word-c64.c (the
// rotated-share representation) and ascon-x2-c64.c/ascon-x3-c64.c/
// ascon-x4-c64.c (the Toffoli-gate share-wise Chi5 expansion).
package masked

import (
	"github.com/AeonDave/ascon-go/internal/core"
	"github.com/AeonDave/ascon-go/trng"
)

// Word is a Boolean-masked 64-bit word: the XOR of up to 4 shares equals
// the effective value. Share 0 is stored in its canonical (unrotated)
// bit positions; share k (k>=1) is stored rotated right by k*11 bits
// relative to share 0, matching ascon-masked-word.h's 64-bit backend.
// Unused shares (beyond the configured share count) are always zero.
type Word struct {
	S [4]uint64
}

// shareRotate converts a value that is in share `from`'s native rotated
// frame into share `to`'s native rotated frame. Both rotate_shareJ_I and
// unrotate_shareJ_I in ascon-masked-word.h collapse to this single
// relation: share i is rotated right by i*11 bits relative to the
// unrotated (share 0) frame, so moving between any two frames is just
// the difference of their rotation amounts.
func shareRotate(v uint64, from, to int) uint64 {
	diff := ((to - from) * 11) % 64
	if diff == 0 {
		return v
	}
	if diff < 0 {
		diff += 64
	}
	return core.RotateRight(v, uint(diff))
}

func beLoad64(b []byte) uint64 {
	var v uint64
	for _, c := range b[:8] {
		v = v<<8 | uint64(c)
	}
	return v
}

func beLoad32(b []byte) uint64 {
	var v uint64
	for _, c := range b[:4] {
		v = v<<8 | uint64(c)
	}
	return v << 32
}

func beStore64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (56 - 8*i))
	}
}

// Zero sets word to an encoding of zero using nshares shares, with every
// share carrying fresh randomness (ascon_masked_word_xN_zero).
func Zero(word *Word, nshares int, src trng.Source) {
	var randoms [3]uint64
	var acc uint64
	for i := 0; i < nshares-1; i++ {
		randoms[i] = trng.Generate64(src)
		acc ^= randoms[i]
	}
	word.S[0] = acc
	for i := 0; i < nshares-1; i++ {
		word.S[i+1] = shareRotate(randoms[i], 0, i+1)
	}
	for i := nshares; i < 4; i++ {
		word.S[i] = 0
	}
}

// Load freshly randomizes word and XORs the 8-byte big-endian value at
// data into share 0 (ascon_masked_word_xN_load).
func Load(word *Word, nshares int, data []byte, src trng.Source) {
	Zero(word, nshares, src)
	word.S[0] ^= beLoad64(data)
}

// Load32 is ascon_masked_word_xN_load_32: loads two 32-bit big-endian
// halves from separate buffers into one masked word, for ASCON-80pq's
// key/IV interleaving.
func Load32(word *Word, nshares int, hi, lo []byte, src trng.Source) {
	Zero(word, nshares, src)
	word.S[0] ^= beLoad32(hi) | (beLoad32(lo) >> 32)
}

// LoadPartial loads a 1..7-byte big-endian value into the top bytes of
// word (the layout StorePartial reads back), using the partial-block
// rotation trick from ascon_masked_word_xN_load_partial:
// only the first random word (which becomes share 1) and the running
// "masked" accumulator are rotated through the byte-alignment steps;
// every other share's randomness is applied at full rotation with no
// partial-byte adjustment.
func LoadPartial(word *Word, nshares int, data []byte, size int, src trng.Source) {
	var randoms [3]uint64
	for i := 0; i < nshares-1; i++ {
		randoms[i] = trng.Generate64(src)
	}
	masked := randoms[0]
	share1 := shareRotate(randoms[0], 0, 1)
	n := size
	if n >= 4 {
		masked ^= beLoad32(data[n-4:n]) >> 32
		masked = core.RotateRight(masked, 32)
		share1 = core.RotateRight(share1, 32)
		n -= 4
	}
	if n >= 2 {
		v := uint64(data[n-2])<<8 | uint64(data[n-1])
		masked ^= v
		masked = core.RotateRight(masked, 16)
		share1 = core.RotateRight(share1, 16)
		n -= 2
	}
	if n > 0 {
		masked ^= uint64(data[0])
		masked = core.RotateRight(masked, 8)
		share1 = core.RotateRight(share1, 8)
	}
	for i := 1; i < nshares-1; i++ {
		masked ^= randoms[i]
	}
	word.S[0] = masked
	word.S[1] = share1
	for i := 1; i < nshares-1; i++ {
		word.S[i+1] = shareRotate(randoms[i], 0, i+1)
	}
	for i := nshares; i < 4; i++ {
		word.S[i] = 0
	}
}

// unmaskedShares returns every share of word realigned to share 0's
// frame, the common first step of Store/StorePartial/Unmask.
func unmaskedShares(word *Word, nshares int) [4]uint64 {
	var out [4]uint64
	out[0] = word.S[0]
	for i := 1; i < nshares; i++ {
		out[i] = shareRotate(word.S[i], i, 0)
	}
	return out
}

// Unmask returns the effective cleartext value of word
// (ascon_masked_word_xN_unmask).
func Unmask(word *Word, nshares int) uint64 {
	shares := unmaskedShares(word, nshares)
	var v uint64
	for i := 0; i < nshares; i++ {
		v ^= shares[i]
	}
	return v
}

// Store unmasks word and writes the 8-byte big-endian cleartext to data
// (ascon_masked_word_xN_store).
func Store(data []byte, word *Word, nshares int) {
	beStore64(data, Unmask(word, nshares))
}

// leftRotate64 rotates x left by n (0 < n < 64) bits, the counterpart to
// core.RotateRight used by ascon_masked_word_xN_store_partial's
// leftRotateN_64 calls.
func leftRotate64(x uint64, n uint) uint64 {
	return core.RotateRight(x, 64-n)
}

// StorePartial unmasks word and writes the top `size` (1..7) bytes of
// the cleartext to data, via the same left-rotation alignment trick
// used in ascon_masked_word_xN_store_partial.
func StorePartial(data []byte, size int, word *Word, nshares int) {
	shares := unmaskedShares(word, nshares)
	n := size
	if n >= 4 {
		var v uint32
		for i := 0; i < nshares; i++ {
			shares[i] = leftRotate64(shares[i], 32)
			v ^= uint32(shares[i])
		}
		data[0] = byte(v >> 24)
		data[1] = byte(v >> 16)
		data[2] = byte(v >> 8)
		data[3] = byte(v)
		data = data[4:]
		n -= 4
	}
	if n >= 2 {
		var v uint16
		for i := 0; i < nshares; i++ {
			shares[i] = leftRotate64(shares[i], 16)
			v ^= uint16(shares[i])
		}
		data[0] = byte(v >> 8)
		data[1] = byte(v)
		data = data[2:]
		n -= 2
	}
	if n > 0 {
		var v uint8
		for i := 0; i < nshares; i++ {
			shares[i] = leftRotate64(shares[i], 8)
			v ^= uint8(shares[i])
		}
		data[0] = v
	}
}

// Mask is the convenience wrapper ascon_masked_word_xN_mask: freshly
// randomize word and XOR in the given cleartext 64-bit value.
func Mask(word *Word, nshares int, value uint64, src trng.Source) {
	Zero(word, nshares, src)
	word.S[0] ^= value
}

// Randomize refreshes dst's shares with fresh randomness while
// preserving the effective value of src (dst and src may alias),
// mirroring ascon_masked_word_xN_randomize.
func Randomize(dst, src *Word, nshares int, trngSrc trng.Source) {
	var randoms [3]uint64
	var acc uint64
	for i := 0; i < nshares-1; i++ {
		randoms[i] = trng.Generate64(trngSrc)
		acc ^= randoms[i]
	}
	s0 := src.S[0]
	var s [3]uint64
	for i := 0; i < nshares-1; i++ {
		s[i] = src.S[i+1]
	}
	dst.S[0] = s0 ^ acc
	for i := 0; i < nshares-1; i++ {
		dst.S[i+1] = s[i] ^ shareRotate(randoms[i], 0, i+1)
	}
}

// Xor XORs src into dst share-wise. Safe for any share count since
// unused shares are always zero (ascon_masked_word_xN_xor).
func Xor(dst, src *Word) {
	dst.S[0] ^= src.S[0]
	dst.S[1] ^= src.S[1]
	dst.S[2] ^= src.S[2]
	dst.S[3] ^= src.S[3]
}

// Replace copies the top `size` bytes (0..8) of src into dst, share by
// share, each share's replacement mask rotated into that share's own
// frame (ascon_masked_word_xN_replace).
func Replace(dst, src *Word, nshares, size int) {
	var keep uint64
	if size < 8 {
		keep = ^uint64(0) >> uint(size*8)
	}
	repl := ^keep
	for i := 0; i < nshares; i++ {
		keepI := shareRotate(keep, 0, i)
		replI := shareRotate(repl, 0, i)
		dst.S[i] = (dst.S[i] & keepI) | (src.S[i] & replI)
	}
}

// Pad XORs the Ascon padding bit into byte offset `offset` (0..7) of
// word, in share 0 only (ascon_masked_word_pad).
func Pad(word *Word, offset int) {
	word.S[0] ^= uint64(0x80) << uint(56-8*offset)
}

// Separator XORs the domain-separation bit into word, in share 0 only
// (ascon_masked_word_separator).
func Separator(word *Word) {
	word.S[0] ^= 1
}

// FromShares converts src, carrying fromShares shares, into dst with
// toShares shares. The reference implementation hand-specializes all six
// ascon_masked_word_x{2,3,4}_from_x{2,3,4} conversion routines; this
// generalizes their shared structure (widening adds fresh random shares,
// narrowing folds every share beyond toShares into the share at the same
// index modulo toShares) into one parametrized rule instead of
// transcribing each pairing separately. The folding step composes with
// shareRotate's additivity, so the generalized rule preserves the
// unmasked value for every (fromShares, toShares) pair exactly as the
// concrete per-pair routines do, even where it doesn't choose the same
// folding target they do.
func FromShares(dst, src *Word, fromShares, toShares int, trngSrc trng.Source) {
	switch {
	case fromShares == toShares:
		if dst != src {
			*dst = *src
		}
	case toShares > fromShares:
		// Widening: generate toShares-1 fresh randoms, fold them (and
		// the existing shares 1..fromShares-1) into the result; shares
		// fromShares..toShares-1 are pure fresh randomness.
		var randoms [3]uint64
		var acc uint64
		for i := 0; i < toShares-1; i++ {
			randoms[i] = trng.Generate64(trngSrc)
			acc ^= randoms[i]
		}
		dst.S[0] = acc ^ src.S[0]
		for i := 1; i < toShares; i++ {
			v := shareRotate(randoms[i-1], 0, i)
			if i < fromShares {
				v ^= src.S[i]
			}
			dst.S[i] = v
		}
		for i := toShares; i < 4; i++ {
			dst.S[i] = 0
		}
	default:
		// Narrowing: fold every share at index >= toShares into the
		// result by re-aligning it to the frame of share
		// (index-toShares) (for 4 -> 2, share 3 folds into share 1),
		// then refresh all toShares shares with fresh randomness.
		folded := make([]uint64, toShares)
		for i := 0; i < toShares; i++ {
			folded[i] = src.S[i]
		}
		for j := toShares; j < fromShares; j++ {
			target := j - toShares
			folded[target] ^= shareRotate(src.S[j], j, target)
		}
		var randoms [3]uint64
		var acc uint64
		for i := 0; i < toShares-1; i++ {
			randoms[i] = trng.Generate64(trngSrc)
			acc ^= randoms[i]
		}
		dst.S[0] = folded[0] ^ acc
		for i := 1; i < toShares; i++ {
			dst.S[i] = folded[i] ^ shareRotate(randoms[i-1], 0, i)
		}
		for i := toShares; i < 4; i++ {
			dst.S[i] = 0
		}
	}
}
