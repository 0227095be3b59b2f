// Package core implements the Ascon-p permutation, the single primitive
// that every construction in this module (AEAD, hashing, KDF, MAC, SIV,
// ISAP, PBKDF2) is built from.
package core

import "encoding/binary"

// RateMax is the largest absorb/squeeze rate any construction in this
// module uses (ASCON-PRF's 32-byte absorb rate).
const RateMax = 32

// State is the 320-bit Ascon permutation state: five 64-bit lanes.
type State [5]uint64

// Permute applies the Ascon-p permutation, running rounds
// firstRound..11 (12-firstRound rounds total). firstRound is 0 for a full
// 12-round permutation, 4 for an 8-round permutation, 6 for a 6-round
// permutation, and so on, matching the "p^a" notation used throughout the
// Ascon specification.
func (s *State) Permute(firstRound int) {
	permuteC64(s, firstRound)
}

// Clone returns a copy of the state.
func (s *State) Clone() State {
	return *s
}

// Clean overwrites the state with zeroes. Best-effort: like the reference
// implementation, this does not defend against a sufficiently aggressive
// compiler proving the store is dead, but it is the same idiom the
// original C library and its Go ports use.
func (s *State) Clean() {
	for i := range s {
		s[i] = 0
	}
}

// XORByte xors the byte at absolute byte offset off (0..39) into the
// state.
func (s *State) XORByte(off int, b byte) {
	lane := off / 8
	shift := 56 - 8*(off%8)
	s[lane] ^= uint64(b) << shift
}

// XORBlock xors an up-to-8-byte big-endian block into the state at byte
// offset off (which must be a multiple of 8).
func (s *State) XORBlock(off int, data []byte) {
	lane := off / 8
	s[lane] ^= beLoad(data)
}

// Overwrite writes a full 8-byte big-endian lane at byte offset off
// (a multiple of 8), replacing rather than xoring.
func (s *State) Overwrite(off int, data []byte) {
	lane := off / 8
	s[lane] = beLoad(data)
}

// OverwriteLane sets lane i directly.
func (s *State) OverwriteLane(i int, v uint64) {
	s[i] = v
}

// ExtractBlock reads up to 8 bytes big-endian from lane off/8 into dst.
func (s *State) ExtractBlock(off int, dst []byte) {
	lane := off / 8
	beStore(dst, s[lane])
}

// Pad XORs the Ascon padding bit (0x80) into the state at byte offset
// off within the current lane.
func (s *State) Pad(off int) {
	lane := off / 8
	shift := 56 - 8*(off%8)
	s[lane] ^= uint64(0x80) << shift
}

// OverwriteBytes replaces len(data) bytes of the state starting at
// absolute byte offset off (0..39), which need not be lane-aligned. It
// exists for ASCON-80pq's key/nonce layout, where the 20-byte key does
// not fall on an 8-byte boundary.
func (s *State) OverwriteBytes(off int, data []byte) {
	for i, b := range data {
		byteOff := off + i
		lane := byteOff / 8
		shift := 56 - 8*(byteOff%8)
		mask := uint64(0xff) << shift
		s[lane] = (s[lane] &^ mask) | (uint64(b) << shift)
	}
}

// XORBytes xors len(data) bytes into the state starting at absolute byte
// offset off (0..39), which need not be lane-aligned. See OverwriteBytes.
func (s *State) XORBytes(off int, data []byte) {
	for i, b := range data {
		s.XORByte(off+i, b)
	}
}

// ExtractBytes reads len(dst) bytes from the state starting at absolute
// byte offset off (0..39), which need not be lane-aligned.
func (s *State) ExtractBytes(off int, dst []byte) {
	for i := range dst {
		byteOff := off + i
		lane := byteOff / 8
		shift := 56 - 8*(byteOff%8)
		dst[i] = byte(s[lane] >> shift)
	}
}

// Separator XORs the domain-separation bit into lane 4, as required
// between the end of associated data and the start of payload processing
// in every AEAD/ISAP construction in this module.
func (s *State) Separator() {
	s[4] ^= 1
}

func beLoad(b []byte) uint64 {
	var buf [8]byte
	copy(buf[:], b)
	return binary.BigEndian.Uint64(buf[:])
}

func beStore(dst []byte, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	copy(dst, buf[:])
}

// BELoadN loads n (0..8) bytes big-endian, left-justified into a 64-bit
// word (i.e. byte 0 goes into the most significant byte), matching the
// original library's partial-block loads (ascon-aead-common.c).
func BELoadN(b []byte, n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v |= uint64(b[i]) << (56 - 8*i)
	}
	return v
}

// BEStoreN stores the top n (0..8) bytes of v big-endian into dst.
func BEStoreN(dst []byte, v uint64, n int) {
	for i := 0; i < n; i++ {
		dst[i] = byte(v >> (56 - 8*i))
	}
}

// RotateRight right-rotates a 64-bit lane by n bits (0 < n < 64).
func RotateRight(x uint64, n uint) uint64 {
	return (x >> n) | (x << (64 - n))
}
