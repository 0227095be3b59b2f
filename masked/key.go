package masked

import (
	"fmt"

	"github.com/AeonDave/ascon-go/trng"
)

// Key128 holds a 16-byte ASCON-128 key as 2 masked words, grounded on
// ascon_masked_key_128_init/randomize/extract (ascon-masked-key.c).
// Unlike the reference's 80pq key type, it carries a single share count
// throughout rather than distinguishing key shares from data shares;
// masked.AEAD128 is the only consumer, and it never needs to interop
// between two different share counts for the same key.
type Key128 struct {
	Shares int
	K      [2]Word
}

// NewKey128 masks a 16-byte key into a fresh Key128 with the given share
// count (2, 3 or 4), pulling all required randomness from src.
func NewKey128(shares int, key []byte, src trng.Source) (*Key128, error) {
	if shares < 2 || shares > 4 {
		return nil, fmt.Errorf("masked: invalid share count %d, want 2, 3 or 4", shares)
	}
	if len(key) != 16 {
		return nil, fmt.Errorf("masked: invalid key length %d, want 16", len(key))
	}
	k := &Key128{Shares: shares}
	Load(&k.K[0], shares, key[0:8], src)
	Load(&k.K[1], shares, key[8:16], src)
	return k, nil
}

// Randomize refreshes every share of the key in place without changing
// its effective value (ascon_masked_key_128_randomize_with_trng).
func (k *Key128) Randomize(src trng.Source) {
	Randomize(&k.K[0], &k.K[0], k.Shares, src)
	Randomize(&k.K[1], &k.K[1], k.Shares, src)
}

// Extract unmasks the key back to its 16-byte cleartext form
// (ascon_masked_key_128_extract). Intended for tests and KAT
// verification, not for use on a live encryption path.
func (k *Key128) Extract(dst []byte) {
	Store(dst[0:8], &k.K[0], k.Shares)
	Store(dst[8:16], &k.K[1], k.Shares)
}

// Clean overwrites the key's shares with zeroes.
func (k *Key128) Clean() {
	k.K[0] = Word{}
	k.K[1] = Word{}
}

// Key160 holds a 20-byte ASCON-80pq key as 6 masked words in the two
// overlapping arrangements ascon_masked_key_160_init precomputes:
// K[0..2] carry key||0⁴ (lane-aligned, the key lands on state bytes
// 8..28, the tag-finalization layout), and K[3..5] carry 0⁴||key (the
// key lands on bytes 4..24, the initialization layout). Masking both up front means the
// cleartext key never has to be reassembled between the two absorption
// points of an 80pq operation.
type Key160 struct {
	Shares int
	K      [6]Word
}

// NewKey160 masks a 20-byte key into a fresh Key160 with the given share
// count (2, 3 or 4), pulling all required randomness from src.
func NewKey160(shares int, key []byte, src trng.Source) (*Key160, error) {
	if shares < 2 || shares > 4 {
		return nil, fmt.Errorf("masked: invalid share count %d, want 2, 3 or 4", shares)
	}
	if len(key) != 20 {
		return nil, fmt.Errorf("masked: invalid key length %d, want 20", len(key))
	}
	var zeroes [4]byte
	k := &Key160{Shares: shares}
	Load(&k.K[0], shares, key[0:8], src)
	Load(&k.K[1], shares, key[8:16], src)
	Load32(&k.K[2], shares, key[16:20], zeroes[:], src)
	Load32(&k.K[3], shares, zeroes[:], key[0:4], src)
	Load(&k.K[4], shares, key[4:12], src)
	Load(&k.K[5], shares, key[12:20], src)
	return k, nil
}

// Randomize refreshes every share of every word in place without
// changing the effective key. The reference's
// ascon_masked_key_160_randomize_with_trng calls the 2-share refresh
// even in its 3- and 4-share builds, leaving the upper shares' noise
// unrefreshed; that still preserves the masked value, but this refreshes
// all shares, the behavior the 128-bit key path already has.
func (k *Key160) Randomize(src trng.Source) {
	for i := range k.K {
		Randomize(&k.K[i], &k.K[i], k.Shares, src)
	}
}

// Extract unmasks the key back to its 20-byte cleartext form
// (ascon_masked_key_160_extract). Intended for tests and KAT
// verification, not for use on a live encryption path.
func (k *Key160) Extract(dst []byte) {
	Store(dst[0:8], &k.K[0], k.Shares)
	Store(dst[8:16], &k.K[1], k.Shares)
	StorePartial(dst[16:20], 4, &k.K[2], k.Shares)
}

// Clean overwrites the key's shares with zeroes.
func (k *Key160) Clean() {
	for i := range k.K {
		k.K[i] = Word{}
	}
}
