package masked

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/AeonDave/ascon-go/trng"
)

func TestWordLoadUnmaskRoundTrip(t *testing.T) {
	for _, shares := range []int{2, 3, 4} {
		var w Word
		data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
		Load(&w, shares, data, trng.OS{})
		got := Unmask(&w, shares)
		qt.Assert(t, qt.Equals(got, beLoad64(data)))

		var out [8]byte
		Store(out[:], &w, shares)
		qt.Assert(t, qt.DeepEquals(out[:], data))
	}
}

func TestWordLoadPartialRoundTrip(t *testing.T) {
	for _, shares := range []int{2, 3, 4} {
		for n := 0; n < 8; n++ {
			data := make([]byte, n)
			for i := range data {
				data[i] = byte(0x10 + i)
			}
			var w Word
			LoadPartial(&w, shares, data, n, trng.OS{})
			out := make([]byte, n)
			StorePartial(out, n, &w, shares)
			qt.Assert(t, qt.DeepEquals(out, data))
		}
	}
}

func TestWordRandomizePreservesValue(t *testing.T) {
	for _, shares := range []int{2, 3, 4} {
		var w Word
		Mask(&w, shares, 0x0123456789abcdef, trng.OS{})
		before := Unmask(&w, shares)
		Randomize(&w, &w, shares, trng.OS{})
		after := Unmask(&w, shares)
		qt.Assert(t, qt.Equals(after, before))
	}
}

func TestWordXor(t *testing.T) {
	for _, shares := range []int{2, 3, 4} {
		var a, b Word
		Mask(&a, shares, 0xdeadbeefcafef00d, trng.OS{})
		Mask(&b, shares, 0x1122334455667788, trng.OS{})
		va, vb := Unmask(&a, shares), Unmask(&b, shares)
		Xor(&a, &b)
		qt.Assert(t, qt.Equals(Unmask(&a, shares), va^vb))
	}
}

func TestWordReplace(t *testing.T) {
	for _, shares := range []int{2, 3, 4} {
		var dst, src Word
		Mask(&dst, shares, 0x1111111111111111, trng.OS{})
		Mask(&src, shares, 0x2222222222222222, trng.OS{})
		Replace(&dst, &src, shares, 3)
		got := Unmask(&dst, shares)
		want := (uint64(0x222222) << 40) | uint64(0x1111111111)
		qt.Assert(t, qt.Equals(got, want))
	}
}

func TestWordFromSharesEqualCount(t *testing.T) {
	var w Word
	Mask(&w, 3, 42, trng.OS{})
	var out Word
	FromShares(&out, &w, 3, 3, trng.OS{})
	qt.Assert(t, qt.Equals(Unmask(&out, 3), uint64(42)))
}

func TestWordFromSharesWideningNarrowingRoundTrip(t *testing.T) {
	for _, pair := range [][2]int{{2, 3}, {2, 4}, {3, 4}, {3, 2}, {4, 2}, {4, 3}} {
		from, to := pair[0], pair[1]
		var w Word
		Mask(&w, from, 0x0102030405060708, trng.OS{})
		var out Word
		FromShares(&out, &w, from, to, trng.OS{})
		qt.Assert(t, qt.Equals(Unmask(&out, to), uint64(0x0102030405060708)))
	}
}

func TestKey160LayoutsAndExtract(t *testing.T) {
	key := make([]byte, 20)
	for i := range key {
		key[i] = byte(0xa0 + i)
	}
	for _, shares := range []int{2, 3, 4} {
		k, err := NewKey160(shares, key, trng.OS{})
		if err != nil {
			t.Fatal(err)
		}
		var got [20]byte
		k.Extract(got[:])
		qt.Assert(t, qt.DeepEquals(got[:], key))

		// The second arrangement carries the same key shifted by four
		// bytes, so the overlapping words must unmask consistently.
		if v := Unmask(&k.K[3], shares); v != uint64(beLoad32(key[0:4]))>>32 {
			t.Fatalf("shares=%d K[3] = %#x, want low word of key prefix", shares, v)
		}
		if v := Unmask(&k.K[4], shares); v != beLoad64(key[4:12]) {
			t.Fatalf("shares=%d K[4] mismatch: %#x", shares, v)
		}
		if v := Unmask(&k.K[5], shares); v != beLoad64(key[12:20]) {
			t.Fatalf("shares=%d K[5] mismatch: %#x", shares, v)
		}

		k.Randomize(trng.OS{})
		var got2 [20]byte
		k.Extract(got2[:])
		qt.Assert(t, qt.DeepEquals(got2[:], key))
	}
}
