package core

// PermuteByteSerial is a straightforward, unoptimized reference
// implementation of the Ascon permutation: it performs the explicit NOT
// of x2 required by the Chi5 S-box every round instead of folding it into
// the round constants the way permuteC64 does. It exists purely so the
// test suite has a second, differently-derived implementation to
// cross-check known-answer vectors against; it is not used by any
// production construction in this module.
func PermuteByteSerial(s *State, firstRound int) {
	x0, x1, x2, x3, x4 := s[0], s[1], s[2], s[3], s[4]

	for r := firstRound; r < 12; r++ {
		x2 ^= uint64(byte((0x0f-r)<<4) | byte(r))

		x0 ^= x4
		x4 ^= x3
		x2 ^= x1

		t0, t1, t2, t3, t4 := x0, x1, x2, x3, x4

		x0 = t0 ^ (^t1 & t2)
		x1 = t1 ^ (^t2 & t3)
		x2 = t2 ^ (^t3 & t4)
		x3 = t3 ^ (^t4 & t0)
		x4 = t4 ^ (^t0 & t1)

		x1 ^= x0
		x0 ^= x4
		x3 ^= x2
		x2 = ^x2

		x0 ^= RotateRight(x0, 19) ^ RotateRight(x0, 28)
		x1 ^= RotateRight(x1, 61) ^ RotateRight(x1, 39)
		x2 ^= RotateRight(x2, 1) ^ RotateRight(x2, 6)
		x3 ^= RotateRight(x3, 10) ^ RotateRight(x3, 17)
		x4 ^= RotateRight(x4, 7) ^ RotateRight(x4, 41)
	}

	s[0], s[1], s[2], s[3], s[4] = x0, x1, x2, x3, x4
}
