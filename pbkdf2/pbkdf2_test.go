package pbkdf2

import (
	"bytes"
	"testing"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key([]byte("password"), []byte("salt"), 4, 32)
	b := Key([]byte("password"), []byte("salt"), 4, 32)
	if !bytes.Equal(a, b) {
		t.Fatal("PBKDF2 output is not deterministic")
	}
}

func TestKeyVariesWithInputs(t *testing.T) {
	base := Key([]byte("password"), []byte("salt"), 4, 32)
	if bytes.Equal(base, Key([]byte("password2"), []byte("salt"), 4, 32)) {
		t.Fatal("PBKDF2 did not change with a different password")
	}
	if bytes.Equal(base, Key([]byte("password"), []byte("salt2"), 4, 32)) {
		t.Fatal("PBKDF2 did not change with a different salt")
	}
	if bytes.Equal(base, Key([]byte("password"), []byte("salt"), 8, 32)) {
		t.Fatal("PBKDF2 did not change with a different iteration count")
	}
}

func TestKeyArbitraryLength(t *testing.T) {
	for _, n := range []int{1, 16, 32, 33, 100} {
		out := Key([]byte("p"), []byte("s"), 2, n)
		if len(out) != n {
			t.Fatalf("Key(outlen=%d) returned %d bytes", n, len(out))
		}
	}
}

func TestKeyMultiBlockPrefixConsistency(t *testing.T) {
	short := Key([]byte("p"), []byte("s"), 2, blockSize)
	long := Key([]byte("p"), []byte("s"), 2, blockSize*2+5)
	if !bytes.Equal(short, long[:blockSize]) {
		t.Fatal("longer output did not extend the shorter output's prefix")
	}
}
