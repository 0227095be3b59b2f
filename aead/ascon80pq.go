package aead

import (
	"crypto/cipher"
	"fmt"

	"github.com/AeonDave/ascon-go/internal/core"
)

const (
	ascon80pqKeySize   = 20
	ascon80pqNonceSize = 16
	ascon80pqTagSize   = 16
	ascon80pqRate      = 8
)

var ascon80pqIV = [4]byte{0xa0, 0x40, 0x0c, 0x06}

type ascon80pq struct {
	key [ascon80pqKeySize]byte
}

// NewAscon80pq constructs an ASCON-80pq cipher.AEAD from a 20-byte
// (160-bit) key. The larger key gives post-quantum-adjacent key-search
// margin at the cost of the key no longer fitting in the state's
// capacity alone: the key is absorbed twice, overlapping the nonce and
// the start of the rate, grounded on ascon-aead-80pq.c's
// ascon_absorb_partial calls.
func NewAscon80pq(key []byte) (cipher.AEAD, error) {
	if len(key) != ascon80pqKeySize {
		return nil, fmt.Errorf("aead: invalid ASCON-80pq key length %d: %w", len(key), ErrKeySize)
	}
	a := &ascon80pq{}
	copy(a.key[:], key)
	return a, nil
}

func (a *ascon80pq) NonceSize() int { return ascon80pqNonceSize }
func (a *ascon80pq) Overhead() int  { return ascon80pqTagSize }

func (a *ascon80pq) init(nonce []byte) core.State {
	var s core.State
	s.OverwriteBytes(0, ascon80pqIV[:])
	s.OverwriteBytes(4, a.key[:])
	s.OverwriteBytes(24, nonce[0:ascon80pqNonceSize])
	s.Permute(0)
	s.XORBytes(20, a.key[:])
	return s
}

func (a *ascon80pq) absorbAD(s *core.State, ad []byte) {
	if len(ad) == 0 {
		s.Separator()
		return
	}
	for len(ad) >= ascon80pqRate {
		s.XORBlock(0, ad[:ascon80pqRate])
		s.Permute(6)
		ad = ad[ascon80pqRate:]
	}
	var block [ascon80pqRate]byte
	padBlock(block[:], ad)
	s.XORBlock(0, block[:])
	s.Permute(6)
	s.Separator()
}

func (a *ascon80pq) encrypt(s *core.State, dst, src []byte) {
	for len(src) >= ascon80pqRate {
		s.XORBlock(0, src[:ascon80pqRate])
		s.ExtractBlock(0, dst[:ascon80pqRate])
		s.Permute(6)
		src = src[ascon80pqRate:]
		dst = dst[ascon80pqRate:]
	}
	var block [ascon80pqRate]byte
	padBlock(block[:], src)
	s.XORBlock(0, block[:])
	var out [ascon80pqRate]byte
	s.ExtractBlock(0, out[:])
	copy(dst, out[:len(src)])
}

// decrypt mirrors ascon128.decrypt: ciphertext overwrites the rate, and
// the final partial block keeps the remaining keystream intact with just
// the padding bit XORed in.
func (a *ascon80pq) decrypt(s *core.State, dst, src []byte) {
	for len(src) >= ascon80pqRate {
		var ct, ks [ascon80pqRate]byte
		copy(ct[:], src[:ascon80pqRate])
		s.ExtractBlock(0, ks[:])
		for i := range ks {
			dst[i] = ks[i] ^ ct[i]
		}
		s.Overwrite(0, ct[:])
		s.Permute(6)
		src = src[ascon80pqRate:]
		dst = dst[ascon80pqRate:]
	}
	n := len(src)
	var ct, ks [ascon80pqRate]byte
	copy(ct[:n], src)
	s.ExtractBlock(0, ks[:])
	for i := 0; i < n; i++ {
		dst[i] = ks[i] ^ ct[i]
	}
	s.OverwriteBytes(0, ct[:n])
	s.Pad(n)
}

func (a *ascon80pq) finalize(s *core.State) []byte {
	s.XORBytes(8, a.key[:])
	s.Permute(0)
	s.XORBytes(24, a.key[4:20])
	tag := make([]byte, ascon80pqTagSize)
	s.ExtractBlock(24, tag[0:8])
	s.ExtractBlock(32, tag[8:16])
	return tag
}

func (a *ascon80pq) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != ascon80pqNonceSize {
		panic("aead: invalid ASCON-80pq nonce length")
	}
	ret, out := sliceForAppend(dst, len(plaintext)+ascon80pqTagSize)

	s := a.init(nonce)
	a.absorbAD(&s, additionalData)
	a.encrypt(&s, out[:len(plaintext)], plaintext)
	tag := a.finalize(&s)
	copy(out[len(plaintext):], tag)
	return ret
}

func (a *ascon80pq) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != ascon80pqNonceSize {
		panic("aead: invalid ASCON-80pq nonce length")
	}
	if len(ciphertext) < ascon80pqTagSize {
		return nil, ErrOpen
	}
	ctLen := len(ciphertext) - ascon80pqTagSize
	ct := ciphertext[:ctLen]
	gotTag := ciphertext[ctLen:]

	ret, out := sliceForAppend(dst, ctLen)

	s := a.init(nonce)
	a.absorbAD(&s, additionalData)
	a.decrypt(&s, out, ct)
	wantTag := a.finalize(&s)

	if !checkTag(out, wantTag, gotTag) {
		return nil, ErrOpen
	}
	return ret, nil
}
