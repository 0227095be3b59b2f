// Package masked implements Ascon-p over Boolean-masked state with 2, 3,
// or 4 shares: the side-channel-countermeasure layer described by
// components J (masked word/state) and K (masked permutation) of the
// design. Grounded on ascon-masked-word.h/ascon-masked-word-c64.c (the
// rotated-share representation) and ascon-x2-c64.c/ascon-x3-c64.c/
// ascon-x4-c64.c (the Toffoli-gate share-wise Chi5 expansion).
package masked

import (
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/AeonDave/ascon-go/trng"
)

const (
	aead128KeySize   = 16
	aead128NonceSize = 16
	aead128TagSize   = 16
	aead128Rate      = 8
	aead128IV        = 0x80400c0600000000
)

// ErrOpen is returned when masked decryption fails authentication.
var ErrOpen = errors.New("masked: message authentication failed")

// AEAD128 is a side-channel-hardened ASCON-128 cipher.AEAD: every
// permutation call runs over Boolean-masked state instead of the plain
// 320-bit state aead.NewAscon128 uses, so an attacker observing the
// power or EM trace of a single call only ever sees shares, never the
// key or state in the clear. Grounded on aead.Ascon128's block structure
// (same IV, rate and round counts) composed with the masked permutation
// and masked word primitives above; simplified relative to the
// reference library's masked-80pq AEAD by using one uniform share count
// throughout instead of distinguishing key shares from data shares.
type AEAD128 struct {
	key    *Key128
	shares int
	src    trng.Source
}

// NewAEAD128 constructs a masked ASCON-128 cipher.AEAD from a 16-byte
// key, using the given share count (2, 3 or 4) and entropy source for
// both the initial key masking and the fresh randomness every Seal/Open
// call consumes.
func NewAEAD128(key []byte, shares int, src trng.Source) (cipher.AEAD, error) {
	k, err := NewKey128(shares, key, src)
	if err != nil {
		return nil, err
	}
	return &AEAD128{key: k, shares: shares, src: src}, nil
}

func (a *AEAD128) NonceSize() int { return aead128NonceSize }
func (a *AEAD128) Overhead() int  { return aead128TagSize }

func (a *AEAD128) seedPreserve(s *State) {
	s.SeedPreserve(func() uint64 { return trng.Generate64(a.src) })
}

func (a *AEAD128) init(nonce []byte) *State {
	s, _ := NewState(a.shares)
	Mask(&s.Lanes[0], a.shares, aead128IV, a.src)
	Xor(&s.Lanes[1], &a.key.K[0])
	Xor(&s.Lanes[2], &a.key.K[1])
	Load(&s.Lanes[3], a.shares, nonce[0:8], a.src)
	Load(&s.Lanes[4], a.shares, nonce[8:16], a.src)

	a.seedPreserve(s)
	s.Permute(0)

	Xor(&s.Lanes[3], &a.key.K[0])
	Xor(&s.Lanes[4], &a.key.K[1])
	return s
}

func (a *AEAD128) absorbAD(s *State, ad []byte) {
	if len(ad) == 0 {
		Separator(&s.Lanes[4])
		return
	}
	var block Word
	for len(ad) >= aead128Rate {
		Load(&block, a.shares, ad[:aead128Rate], a.src)
		Xor(&s.Lanes[0], &block)
		a.seedPreserve(s)
		s.Permute(6)
		ad = ad[aead128Rate:]
	}
	LoadPartial(&block, a.shares, ad, len(ad), a.src)
	Pad(&block, len(ad))
	Xor(&s.Lanes[0], &block)
	a.seedPreserve(s)
	s.Permute(6)
	Separator(&s.Lanes[4])
}

func (a *AEAD128) encrypt(s *State, dst, src []byte) {
	var block Word
	for len(src) >= aead128Rate {
		Load(&block, a.shares, src[:aead128Rate], a.src)
		Xor(&s.Lanes[0], &block)
		Store(dst[:aead128Rate], &s.Lanes[0], a.shares)
		a.seedPreserve(s)
		s.Permute(6)
		src = src[aead128Rate:]
		dst = dst[aead128Rate:]
	}
	n := len(src)
	if n > 0 {
		LoadPartial(&block, a.shares, src, n, a.src)
		Xor(&s.Lanes[0], &block)
		var out [aead128Rate]byte
		StorePartial(out[:n], n, &s.Lanes[0], a.shares)
		copy(dst, out[:n])
	}
	Pad(&s.Lanes[0], n)
}

// decrypt mirrors ascon_masked_aead_decrypt_8: each ciphertext block is
// loaded as a masked word, XORed into the rate lane to expose the
// plaintext, and then becomes the rate lane outright (the masked
// equivalent of overwriting the rate with ciphertext). The final partial
// block splices the ciphertext word into the top bytes of the rate lane
// via Replace and XORs in the padding bit.
func (a *AEAD128) decrypt(s *State, dst, src []byte) {
	var block Word
	for len(src) >= aead128Rate {
		Load(&block, a.shares, src[:aead128Rate], a.src)
		Xor(&s.Lanes[0], &block)
		Store(dst[:aead128Rate], &s.Lanes[0], a.shares)
		s.Lanes[0] = block
		a.seedPreserve(s)
		s.Permute(6)
		src = src[aead128Rate:]
		dst = dst[aead128Rate:]
	}
	n := len(src)
	if n > 0 {
		LoadPartial(&block, a.shares, src, n, a.src)
		Xor(&s.Lanes[0], &block)
		StorePartial(dst[:n], n, &s.Lanes[0], a.shares)
		Replace(&s.Lanes[0], &block, a.shares, n)
	}
	Pad(&s.Lanes[0], n)
}

func (a *AEAD128) finalize(s *State) []byte {
	Xor(&s.Lanes[1], &a.key.K[0])
	Xor(&s.Lanes[2], &a.key.K[1])
	a.seedPreserve(s)
	s.Permute(0)
	Xor(&s.Lanes[3], &a.key.K[0])
	Xor(&s.Lanes[4], &a.key.K[1])
	tag := make([]byte, aead128TagSize)
	Store(tag[0:8], &s.Lanes[3], a.shares)
	Store(tag[8:16], &s.Lanes[4], a.shares)
	return tag
}

// Seal encrypts and authenticates plaintext exactly like aead.Ascon128's
// Seal, but every intermediate permutation call runs over masked state.
func (a *AEAD128) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != aead128NonceSize {
		panic("masked: invalid ASCON-128 nonce length")
	}
	ret, out := sliceForAppend(dst, len(plaintext)+aead128TagSize)

	s := a.init(nonce)
	a.absorbAD(s, additionalData)
	a.encrypt(s, out[:len(plaintext)], plaintext)
	tag := a.finalize(s)
	copy(out[len(plaintext):], tag)
	s.Clean()
	return ret
}

// Open verifies and decrypts ciphertext, returning ErrOpen on
// authentication failure.
func (a *AEAD128) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != aead128NonceSize {
		return nil, fmt.Errorf("masked: invalid ASCON-128 nonce length %d", len(nonce))
	}
	if len(ciphertext) < aead128TagSize {
		return nil, ErrOpen
	}
	ctLen := len(ciphertext) - aead128TagSize
	ct := ciphertext[:ctLen]
	gotTag := ciphertext[ctLen:]

	ret, out := sliceForAppend(dst, ctLen)

	s := a.init(nonce)
	a.absorbAD(s, additionalData)
	a.decrypt(s, out, ct)
	wantTag := a.finalize(s)
	s.Clean()

	if !checkTag(out, wantTag, gotTag) {
		return nil, ErrOpen
	}
	return ret, nil
}

// checkTag mirrors aead.checkTag's constant-time accumulate-and-mask
// idiom.
func checkTag(plaintext, tag1, tag2 []byte) bool {
	accum := 0
	for i := range tag1 {
		accum |= int(tag1[i]) ^ int(tag2[i])
	}
	mask := byte((accum - 1) >> 8)
	for i := range plaintext {
		plaintext[i] &= mask
	}
	return accum == 0
}

// sliceForAppend extends, in length but not capacity, the input slice by
// n bytes, matching aead.sliceForAppend.
func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
