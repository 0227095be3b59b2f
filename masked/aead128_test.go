package masked

import (
	"bytes"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/AeonDave/ascon-go/trng"
)

func zeros(n int) []byte { return make([]byte, n) }

func TestAEAD128RoundTrip(t *testing.T) {
	for _, shares := range []int{2, 3, 4} {
		key := make([]byte, 16)
		nonce := make([]byte, 16)
		for i := range key {
			key[i] = byte(i)
		}
		for i := range nonce {
			nonce[i] = byte(200 + i)
		}
		a, err := NewAEAD128(key, shares, trng.OS{})
		if err != nil {
			t.Fatal(err)
		}
		cases := []struct{ pt, ad string }{
			{"", ""},
			{"", "some ad"},
			{"hello masked ascon", ""},
			{"a message long enough to span more than one eight byte rate block", "associated data too"},
		}
		for _, c := range cases {
			ct := a.Seal(nil, nonce, []byte(c.pt), []byte(c.ad))
			qt.Assert(t, qt.Equals(len(ct), len(c.pt)+a.Overhead()))
			pt, err := a.Open(nil, nonce, ct, []byte(c.ad))
			if err != nil {
				t.Fatalf("shares=%d Open failed: %v", shares, err)
			}
			if !bytes.Equal(pt, []byte(c.pt)) {
				t.Fatalf("shares=%d round trip mismatch: got %q want %q", shares, pt, c.pt)
			}
		}
	}
}

func TestAEAD128RejectsTamperedCiphertext(t *testing.T) {
	for _, shares := range []int{2, 3, 4} {
		a, _ := NewAEAD128(zeros(16), shares, trng.OS{})
		nonce := zeros(16)
		ct := a.Seal(nil, nonce, []byte("payload"), nil)
		ct[0] ^= 1
		if _, err := a.Open(nil, nonce, ct, nil); err == nil {
			t.Fatalf("shares=%d Open accepted tampered ciphertext", shares)
		}
	}
}

func TestAEAD128RejectsWrongAD(t *testing.T) {
	for _, shares := range []int{2, 3, 4} {
		a, _ := NewAEAD128(zeros(16), shares, trng.OS{})
		nonce := zeros(16)
		ct := a.Seal(nil, nonce, []byte("payload"), []byte("ad1"))
		if _, err := a.Open(nil, nonce, ct, []byte("ad2")); err == nil {
			t.Fatalf("shares=%d Open accepted wrong associated data", shares)
		}
	}
}

func TestKey128ExtractRoundTrip(t *testing.T) {
	for _, shares := range []int{2, 3, 4} {
		key := []byte("0123456789abcdef")
		k, err := NewKey128(shares, key, trng.OS{})
		if err != nil {
			t.Fatal(err)
		}
		var got [16]byte
		k.Extract(got[:])
		qt.Assert(t, qt.DeepEquals(got[:], key))

		k.Randomize(trng.OS{})
		var got2 [16]byte
		k.Extract(got2[:])
		qt.Assert(t, qt.DeepEquals(got2[:], key))
	}
}
