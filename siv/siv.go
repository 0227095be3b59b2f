// Package siv implements ASCON-128-SIV, a nonce-misuse-resistant,
// deterministic authenticated cipher. It runs the permutation twice:
// once to derive a synthetic IV (a tag over the associated data and the
// plaintext), and once more, keyed by that synthetic IV, as an OFB-mode
// stream cipher. Identical (key, AD, plaintext) inputs always produce
// identical ciphertext, which is the point: a caller that accidentally
// reuses a nonce, or has none at all, still gets authenticated
// encryption without a catastrophic keystream-reuse failure.
//
// Grounded on ascon-siv-128.c.
package siv

import (
	"crypto/cipher"
	"fmt"

	"github.com/AeonDave/ascon-go/internal/core"
)

const (
	// KeySize is the required ASCON-128-SIV key length.
	KeySize = 16
	// NonceSize is the nonce length accepted by Seal/Open. A caller
	// that cannot guarantee nonce uniqueness may pass a fixed or
	// all-zero nonce: SIV's synthetic-IV construction still
	// authenticates correctly, though identical (key, AD, plaintext)
	// pairs then produce identical ciphertext, which is by design.
	NonceSize = 16
	// TagSize is the size of the synthetic-IV authentication tag.
	TagSize = 16
	rate     = 8
	rounds   = 6
)

var iv1 = [8]byte{0x81, 0x40, 0x0c, 0x06, 0x00, 0x00, 0x00, 0x00}
var iv2 = [8]byte{0x82, 0x40, 0x0c, 0x06, 0x00, 0x00, 0x00, 0x00}

type siv128 struct {
	key [KeySize]byte
}

// New constructs an ASCON-128-SIV cipher.AEAD from a 16-byte key.
func New(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("siv: invalid key length %d, want %d", len(key), KeySize)
	}
	s := &siv128{}
	copy(s.key[:], key)
	return s, nil
}

func (s *siv128) NonceSize() int { return NonceSize }
func (s *siv128) Overhead() int  { return TagSize }

func (s *siv128) init(phaseIV [8]byte, nonceLike []byte) core.State {
	var st core.State
	st.OverwriteBytes(0, phaseIV[:])
	st.Overwrite(8, s.key[0:8])
	st.Overwrite(16, s.key[8:16])
	st.OverwriteBytes(24, nonceLike)
	st.Permute(0)
	st.XORBlock(24, s.key[0:8])
	st.XORBlock(32, s.key[8:16])
	return st
}

// absorbAD absorbs the associated data with a trailing permute after the
// padded final block (ascon_aead_absorb_8 with last_permute set), then
// sets the separator bit. Empty AD is not absorbed at all, only
// separated, matching the one-shot AEAD family.
func (s *siv128) absorbAD(st *core.State, data []byte) {
	if len(data) > 0 {
		absorbPadded(st, data)
		st.Permute(rounds)
	}
	st.Separator()
}

// absorbPadded absorbs data to a rate boundary with 0x80 padding but no
// trailing permute — the plaintext-absorption shape of the synthetic-IV
// pass (ascon_aead_absorb_8 with last_permute clear).
func absorbPadded(st *core.State, data []byte) {
	for len(data) >= rate {
		st.XORBlock(0, data[:rate])
		st.Permute(rounds)
		data = data[rate:]
	}
	var block [rate]byte
	n := copy(block[:], data)
	block[n] = 0x80
	for i := n + 1; i < rate; i++ {
		block[i] = 0
	}
	st.XORBlock(0, block[:])
}

// authTag computes the synthetic IV over ad and plaintext under the
// authentication-phase key schedule.
func (s *siv128) authTag(nonce, ad, plaintext []byte) []byte {
	st := s.init(iv1, nonce)
	s.absorbAD(&st, ad)
	absorbPadded(&st, plaintext)

	st.XORBlock(8, s.key[0:8])
	st.XORBlock(16, s.key[8:16])
	st.Permute(0)
	st.XORBlock(24, s.key[0:8])
	st.XORBlock(32, s.key[8:16])

	tag := make([]byte, TagSize)
	st.ExtractBlock(24, tag[0:8])
	st.ExtractBlock(32, tag[8:16])
	return tag
}

// ofb runs the permutation as an OFB-mode stream cipher keyed by tag,
// xoring the keystream into src to produce dst. Used identically for
// both encryption and decryption, since OFB keystream generation does
// not depend on the plaintext or ciphertext.
func (s *siv128) ofb(tag []byte, dst, src []byte) {
	st := s.init(iv2, tag)
	for len(src) >= rate {
		st.Permute(rounds)
		var block [rate]byte
		st.ExtractBlock(0, block[:])
		for i := 0; i < rate; i++ {
			dst[i] = block[i] ^ src[i]
		}
		src = src[rate:]
		dst = dst[rate:]
	}
	if len(src) > 0 {
		st.Permute(rounds)
		var block [rate]byte
		st.ExtractBlock(0, block[:])
		for i := range src {
			dst[i] = block[i] ^ src[i]
		}
	}
}

func (s *siv128) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != NonceSize {
		panic("siv: invalid nonce length")
	}
	ret, out := sliceForAppend(dst, len(plaintext)+TagSize)

	tag := s.authTag(nonce, additionalData, plaintext)
	s.ofb(tag, out[:len(plaintext)], plaintext)
	copy(out[len(plaintext):], tag)
	return ret
}

func (s *siv128) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		panic("siv: invalid nonce length")
	}
	if len(ciphertext) < TagSize {
		return nil, errOpen
	}
	ctLen := len(ciphertext) - TagSize
	ct := ciphertext[:ctLen]
	gotTag := ciphertext[ctLen:]

	ret, out := sliceForAppend(dst, ctLen)
	s.ofb(gotTag, out, ct)

	wantTag := s.authTag(nonce, additionalData, out)
	if !checkTag(out, wantTag, gotTag) {
		return nil, errOpen
	}
	return ret, nil
}

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
