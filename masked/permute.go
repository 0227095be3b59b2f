package masked

// roundConstant mirrors core's pre-inverted round-constant trick: x2's
// share 0 carries the NOT that the S-box would otherwise need to apply
// explicitly every round (ascon-x2-c64.c's ROUND_CONSTANT macro).
func roundConstant(round int) uint64 {
	return ^(uint64((0x0f-round)<<4) | uint64(round))
}

var roundConstants = [12]uint64{
	roundConstant(0), roundConstant(1), roundConstant(2), roundConstant(3),
	roundConstant(4), roundConstant(5), roundConstant(6), roundConstant(7),
	roundConstant(8), roundConstant(9), roundConstant(10), roundConstant(11),
}

func diffuse(w *Word, nshares int, a, b uint) {
	for i := 0; i < nshares; i++ {
		w.S[i] ^= rotr(w.S[i], a) ^ rotr(w.S[i], b)
	}
}

func rotr(x uint64, n uint) uint64 {
	if n == 0 {
		return x
	}
	return (x >> n) | (x << (64 - n))
}

func copyWord(dst, src *Word, nshares int) {
	for i := 0; i < nshares; i++ {
		dst.S[i] = src.S[i]
	}
}

func xorInto(dst, a, b *Word, nshares int) {
	for i := 0; i < nshares; i++ {
		dst.S[i] = a.S[i] ^ b.S[i]
	}
}

// andNotXor2 computes x ^= (~y) & z over a 2-share masked representation
// (ascon-x2-c64.c's and_not_xor). Each cross-share product is computed
// as its own AND term: folding z's shares together before the AND would
// reconstruct the unmasked z in a live register, which is exactly the
// recombination the masking exists to prevent.
func andNotXor2(x, y, z *Word) {
	x.S[0] ^= (^y.S[0]) & shareRotate(z.S[1], 1, 0)
	x.S[0] ^= (^y.S[0]) & z.S[0]
	x.S[1] ^= y.S[1] & z.S[1]
	x.S[1] ^= y.S[1] & shareRotate(z.S[0], 0, 1)
}

// andNotXor3 computes x ^= (~y) & z over a 3-share representation,
// transcribed directly from ascon-x3-c64.c's and_not_xor: the third
// share's term uses an OR (not an AND of a negated operand) to balance
// the NOT across shares, which is why this is not expressed as the
// simpler per-share loop andNotXor4 below uses.
func andNotXor3(x, y, z *Word) {
	x.S[0] ^= (^y.S[0]) & z.S[0]
	x.S[0] ^= y.S[0] & shareRotate(z.S[1], 1, 0)
	x.S[0] ^= y.S[0] & shareRotate(z.S[2], 2, 0)

	x.S[1] ^= y.S[1] & shareRotate(z.S[0], 0, 1)
	x.S[1] ^= (^y.S[1]) & z.S[1]
	x.S[1] ^= y.S[1] & shareRotate(z.S[2], 2, 1)

	x.S[2] ^= y.S[2] & shareRotate(^z.S[0], 0, 2)
	x.S[2] ^= y.S[2] & shareRotate(z.S[1], 1, 2)
	x.S[2] ^= y.S[2] | z.S[2]
}

// andNotXor4 computes x ^= (~y) & z over a 4-share representation
// (ascon-x4-c64.c's and_not_xor): row i ANDs z's share i against each of
// y's shares re-aligned to frame i, one term at a time — only y's share
// 0 is negated, and the diagonal term needs no rotation. As in
// andNotXor2, the terms stay separate so no unmasked intermediate ever
// materializes.
func andNotXor4(x, y, z *Word) {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			yj := y.S[j]
			if j == 0 {
				yj = ^yj
			}
			x.S[i] ^= shareRotate(yj, j, i) & z.S[i]
		}
	}
}

var diffusionConsts = [5][2]uint{{19, 28}, {61, 39}, {1, 6}, {10, 17}, {7, 41}}

// Permute2 runs rounds firstRound..11 of Ascon-p over a 2-share masked
// state, carrying preserved randomness across calls in *preserve
// (ascon_x2_permute).
func Permute2(state *[5]Word, firstRound int, preserve *uint64) {
	x := *state
	t0, t1 := Word{}, Word{}
	t0.S[0] = *preserve

	x[2].S[0] = ^x[2].S[0]

	for r := firstRound; r < 12; r++ {
		x[2].S[0] ^= roundConstants[r]

		xorInto(&x[0], &x[0], &x[4], 2)
		xorInto(&x[4], &x[4], &x[3], 2)
		xorInto(&x[2], &x[2], &x[1], 2)
		copyWord(&t1, &x[0], 2)

		t0.S[1] = shareRotate(t0.S[0], 0, 1)
		andNotXor2(&t0, &x[0], &x[1])
		andNotXor2(&x[0], &x[1], &x[2])
		andNotXor2(&x[1], &x[2], &x[3])
		andNotXor2(&x[2], &x[3], &x[4])
		andNotXor2(&x[3], &x[4], &t1)
		x[4].S[0] ^= t0.S[0]
		x[4].S[1] ^= t0.S[1]

		xorInto(&x[1], &x[1], &x[0], 2)
		xorInto(&x[0], &x[0], &x[4], 2)
		xorInto(&x[3], &x[3], &x[2], 2)

		for lane := 0; lane < 5; lane++ {
			diffuse(&x[lane], 2, diffusionConsts[lane][0], diffusionConsts[lane][1])
		}

		t0.S[0] = rotr(t0.S[0], 13)
	}

	x[2].S[0] = ^x[2].S[0]
	*preserve = t0.S[0]
	*state = x
}

// Permute3 is the 3-share analogue of Permute2, grounded on
// ascon-x3-c64.c.
func Permute3(state *[5]Word, firstRound int, preserve *[2]uint64) {
	x := *state
	t0, t1 := Word{}, Word{}
	t0.S[0], t0.S[1] = preserve[0], preserve[1]

	x[2].S[0] = ^x[2].S[0]

	for r := firstRound; r < 12; r++ {
		x[2].S[0] ^= roundConstants[r]

		xorInto(&x[0], &x[0], &x[4], 3)
		xorInto(&x[4], &x[4], &x[3], 3)
		xorInto(&x[2], &x[2], &x[1], 3)
		copyWord(&t1, &x[0], 3)

		t0.S[2] = shareRotate(t0.S[0], 0, 2) ^ shareRotate(t0.S[1], 1, 2)
		andNotXor3(&t0, &x[0], &x[1])
		andNotXor3(&x[0], &x[1], &x[2])
		andNotXor3(&x[1], &x[2], &x[3])
		andNotXor3(&x[2], &x[3], &x[4])
		andNotXor3(&x[3], &x[4], &t1)
		x[4].S[0] ^= t0.S[0]
		x[4].S[1] ^= t0.S[1]
		x[4].S[2] ^= t0.S[2]

		xorInto(&x[1], &x[1], &x[0], 3)
		xorInto(&x[0], &x[0], &x[4], 3)
		xorInto(&x[3], &x[3], &x[2], 3)

		for lane := 0; lane < 5; lane++ {
			diffuse(&x[lane], 3, diffusionConsts[lane][0], diffusionConsts[lane][1])
		}

		t0.S[0] = rotr(t0.S[0], 13)
		t0.S[1] = rotr(t0.S[1], 29)
	}

	x[2].S[0] = ^x[2].S[0]
	preserve[0], preserve[1] = t0.S[0], t0.S[1]
	*state = x
}

// Permute4 is the 4-share analogue of Permute2/Permute3, grounded on
// ascon-x4-c64.c.
func Permute4(state *[5]Word, firstRound int, preserve *[3]uint64) {
	x := *state
	t0, t1 := Word{}, Word{}
	t0.S[0], t0.S[1], t0.S[2] = preserve[0], preserve[1], preserve[2]

	x[2].S[0] = ^x[2].S[0]

	for r := firstRound; r < 12; r++ {
		x[2].S[0] ^= roundConstants[r]

		xorInto(&x[0], &x[0], &x[4], 4)
		xorInto(&x[4], &x[4], &x[3], 4)
		xorInto(&x[2], &x[2], &x[1], 4)
		copyWord(&t1, &x[0], 4)

		t0.S[3] = shareRotate(t0.S[0], 0, 3) ^ shareRotate(t0.S[1], 1, 3) ^ shareRotate(t0.S[2], 2, 3)
		andNotXor4(&t0, &x[0], &x[1])
		andNotXor4(&x[0], &x[1], &x[2])
		andNotXor4(&x[1], &x[2], &x[3])
		andNotXor4(&x[2], &x[3], &x[4])
		andNotXor4(&x[3], &x[4], &t1)
		x[4].S[0] ^= t0.S[0]
		x[4].S[1] ^= t0.S[1]
		x[4].S[2] ^= t0.S[2]
		x[4].S[3] ^= t0.S[3]

		xorInto(&x[1], &x[1], &x[0], 4)
		xorInto(&x[0], &x[0], &x[4], 4)
		xorInto(&x[3], &x[3], &x[2], 4)

		for lane := 0; lane < 5; lane++ {
			diffuse(&x[lane], 4, diffusionConsts[lane][0], diffusionConsts[lane][1])
		}

		t0.S[0] = rotr(t0.S[0], 13)
		t0.S[1] = rotr(t0.S[1], 29)
		t0.S[2] = rotr(t0.S[2], 59)
	}

	x[2].S[0] = ^x[2].S[0]
	preserve[0], preserve[1], preserve[2] = t0.S[0], t0.S[1], t0.S[2]
	*state = x
}
