package core

// roundConstant returns the pre-inverted round constant for round
// (0..11), following the optimization in the original C core
// (ascon-c64.c): inverting x2 once before the round loop and once after
// lets every round's constant already carry the NOT that the Chi5 S-box
// would otherwise apply to x2 each round.
func roundConstant(round int) uint64 {
	return ^(uint64((0x0f-round)<<4) | uint64(round))
}

var roundConstants = [12]uint64{
	roundConstant(0), roundConstant(1), roundConstant(2), roundConstant(3),
	roundConstant(4), roundConstant(5), roundConstant(6), roundConstant(7),
	roundConstant(8), roundConstant(9), roundConstant(10), roundConstant(11),
}

// permuteC64 runs rounds firstRound..11 of the Ascon permutation over s.
func permuteC64(s *State, firstRound int) {
	x0, x1, x2, x3, x4 := s[0], s[1], s[2], s[3], s[4]

	x2 = ^x2

	for r := firstRound; r < 12; r++ {
		x2 ^= roundConstants[r]

		x0 ^= x4
		x4 ^= x3
		x2 ^= x1

		t0 := x0
		t1 := x1
		t2 := x2
		t3 := x3
		t4 := x4

		x0 = t0 ^ (^t1 & t2)
		x1 = t1 ^ (^t2 & t3)
		x2 = t2 ^ (^t3 & t4)
		x3 = t3 ^ (^t4 & t0)
		x4 = t4 ^ (^t0 & t1)

		x1 ^= x0
		x0 ^= x4
		x3 ^= x2
		// x2 = ^x2 is folded into the next round's constant.

		x0 ^= RotateRight(x0, 19) ^ RotateRight(x0, 28)
		x1 ^= RotateRight(x1, 61) ^ RotateRight(x1, 39)
		x2 ^= RotateRight(x2, 1) ^ RotateRight(x2, 6)
		x3 ^= RotateRight(x3, 10) ^ RotateRight(x3, 17)
		x4 ^= RotateRight(x4, 7) ^ RotateRight(x4, 41)
	}

	s[0], s[1], s[2], s[3], s[4] = x0, x1, ^x2, x3, x4
}
