package masked

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/AeonDave/ascon-go/internal/core"
	"github.com/AeonDave/ascon-go/trng"
)

// maskState masks a plain core.State into a [5]Word representation with
// the given share count, drawing randomness from src.
func maskState(plain *core.State, shares int, src trng.Source) [5]Word {
	var out [5]Word
	for i := range out {
		Mask(&out[i], shares, plain[i], src)
	}
	return out
}

func unmaskState(w *[5]Word, shares int) core.State {
	var out core.State
	for i := range out {
		out[i] = Unmask(&w[i], shares)
	}
	return out
}

func TestPermute2MatchesUnmasked(t *testing.T) {
	var plain core.State
	for i := range plain {
		plain[i] = 0x0102030405060708 * uint64(i+1)
	}
	want := plain
	want.Permute(0)

	w := maskState(&plain, 2, trng.OS{})
	var preserve uint64
	Permute2(&w, 0, &preserve)
	got := unmaskState(&w, 2)

	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestPermute3MatchesUnmasked(t *testing.T) {
	var plain core.State
	for i := range plain {
		plain[i] = 0xdeadbeefcafef00d ^ uint64(i)*0x1111111111111111
	}
	want := plain
	want.Permute(4)

	w := maskState(&plain, 3, trng.OS{})
	var preserve [2]uint64
	Permute3(&w, 4, &preserve)
	got := unmaskState(&w, 3)

	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestPermute4MatchesUnmasked(t *testing.T) {
	var plain core.State
	for i := range plain {
		plain[i] = 0x1122334455667788 + uint64(i)
	}
	want := plain
	want.Permute(6)

	w := maskState(&plain, 4, trng.OS{})
	var preserve [3]uint64
	Permute4(&w, 6, &preserve)
	got := unmaskState(&w, 4)

	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestPermuteMultiRoundSequence(t *testing.T) {
	var plain core.State
	for i := range plain {
		plain[i] = uint64(i+1) * 0x0f1e2d3c4b5a6978
	}
	want := plain
	want.Permute(0)
	want.Permute(6)

	w := maskState(&plain, 2, trng.OS{})
	var preserve uint64
	Permute2(&w, 0, &preserve)
	Permute2(&w, 6, &preserve)
	got := unmaskState(&w, 2)

	qt.Assert(t, qt.DeepEquals(got, want))
}
