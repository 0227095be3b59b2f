package hash

import gohash "hash"

// Hash is ASCON-HASH: a fixed 32-byte-output hash function built as a
// degenerate XOF (outlen pinned to Size), implementing the standard
// library's hash.Hash interface so it composes with anything that takes
// one (io.Writer-based digests, hmac.New, etc. — though this module's
// own mac package does not use hmac, since ASCON-MAC has its own
// construction; Hash satisfying hash.Hash is for interop with other
// code, not an internal dependency).
type Hash struct {
	xof *XOF
}

var _ gohash.Hash = (*Hash)(nil)

// New returns a fresh ASCON-HASH instance.
func New() *Hash {
	return &Hash{xof: newFixed(0)}
}

// NewA returns a fresh ASCON-HASHA instance (the faster, 8-round-per-block
// sibling of Hash).
func NewA() *Hash {
	return &Hash{xof: newFixed(4)}
}

func (h *Hash) Write(p []byte) (int, error) { return h.xof.Write(p) }
func (h *Hash) Size() int                   { return Size }
func (h *Hash) BlockSize() int              { return rate }

func (h *Hash) Reset() {
	h.xof = newFixed(h.xof.sp.Rounds)
}

// Sum appends the digest to b without mutating the hash's absorbed
// state, by operating on a clone, matching hash.Hash's contract that Sum
// does not reset or advance the hash.
func (h *Hash) Sum(b []byte) []byte {
	clone := *h.xof
	out := make([]byte, Size)
	clone.Squeeze(out)
	return append(b, out...)
}

// Sum256 is a convenience one-shot ASCON-HASH digest.
func Sum256(data []byte) [Size]byte {
	h := New()
	h.Write(data)
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Sum256A is a convenience one-shot ASCON-HASHA digest.
func Sum256A(data []byte) [Size]byte {
	h := NewA()
	h.Write(data)
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
