package aead

import (
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/AeonDave/ascon-go/internal/core"
)

const (
	ascon128KeySize   = 16
	ascon128NonceSize = 16
	ascon128TagSize   = 16
	ascon128Rate      = 8
	ascon128IV        = 0x80400c0600000000
)

// ErrOpen is returned when decryption fails authentication.
var ErrOpen = errors.New("aead: message authentication failed")

type ascon128 struct {
	key [ascon128KeySize]byte
}

// NewAscon128 constructs an ASCON-128 cipher.AEAD from a 16-byte key.
func NewAscon128(key []byte) (cipher.AEAD, error) {
	if len(key) != ascon128KeySize {
		return nil, fmt.Errorf("aead: invalid ASCON-128 key length %d: %w", len(key), ErrKeySize)
	}
	a := &ascon128{}
	copy(a.key[:], key)
	return a, nil
}

func (a *ascon128) NonceSize() int { return ascon128NonceSize }
func (a *ascon128) Overhead() int  { return ascon128TagSize }

func (a *ascon128) init(nonce []byte) core.State {
	var s core.State
	s.OverwriteLane(0, ascon128IV)
	s.Overwrite(8, a.key[0:8])
	s.Overwrite(16, a.key[8:16])
	s.Overwrite(24, nonce[0:8])
	s.Overwrite(32, nonce[8:16])
	s.Permute(0)
	s.XORBlock(24, a.key[0:8])
	s.XORBlock(32, a.key[8:16])
	return s
}

func (a *ascon128) absorbAD(s *core.State, ad []byte) {
	if len(ad) == 0 {
		s.Separator()
		return
	}
	for len(ad) >= ascon128Rate {
		s.XORBlock(0, ad[:ascon128Rate])
		s.Permute(6)
		ad = ad[ascon128Rate:]
	}
	var block [ascon128Rate]byte
	padBlock(block[:], ad)
	s.XORBlock(0, block[:])
	s.Permute(6)
	s.Separator()
}

func (a *ascon128) encrypt(s *core.State, dst, src []byte) {
	for len(src) >= ascon128Rate {
		s.XORBlock(0, src[:ascon128Rate])
		s.ExtractBlock(0, dst[:ascon128Rate])
		s.Permute(6)
		src = src[ascon128Rate:]
		dst = dst[ascon128Rate:]
	}
	var block [ascon128Rate]byte
	padBlock(block[:], src)
	s.XORBlock(0, block[:])
	var out [ascon128Rate]byte
	s.ExtractBlock(0, out[:])
	copy(dst, out[:len(src)])
}

// decrypt recovers plaintext block by block, overwriting the rate with
// the received ciphertext so the tag computation sees the same state the
// encryptor produced. The final partial block keeps the remaining
// keystream bytes intact and only XORs in the padding bit, per
// ascon_decrypt_partial + ascon_pad. Ciphertext bytes are captured
// before the plaintext store so dst may alias src.
func (a *ascon128) decrypt(s *core.State, dst, src []byte) {
	for len(src) >= ascon128Rate {
		var ct, ks [ascon128Rate]byte
		copy(ct[:], src[:ascon128Rate])
		s.ExtractBlock(0, ks[:])
		for i := range ks {
			dst[i] = ks[i] ^ ct[i]
		}
		s.Overwrite(0, ct[:])
		s.Permute(6)
		src = src[ascon128Rate:]
		dst = dst[ascon128Rate:]
	}
	n := len(src)
	var ct, ks [ascon128Rate]byte
	copy(ct[:n], src)
	s.ExtractBlock(0, ks[:])
	for i := 0; i < n; i++ {
		dst[i] = ks[i] ^ ct[i]
	}
	s.OverwriteBytes(0, ct[:n])
	s.Pad(n)
}

func (a *ascon128) finalize(s *core.State) []byte {
	s.XORBlock(8, a.key[0:8])
	s.XORBlock(16, a.key[8:16])
	s.Permute(0)
	s.XORBlock(24, a.key[0:8])
	s.XORBlock(32, a.key[8:16])
	tag := make([]byte, ascon128TagSize)
	s.ExtractBlock(24, tag[0:8])
	s.ExtractBlock(32, tag[8:16])
	return tag
}

func (a *ascon128) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != ascon128NonceSize {
		panic("aead: invalid ASCON-128 nonce length")
	}
	ret, out := sliceForAppend(dst, len(plaintext)+ascon128TagSize)

	s := a.init(nonce)
	a.absorbAD(&s, additionalData)
	a.encrypt(&s, out[:len(plaintext)], plaintext)
	tag := a.finalize(&s)
	copy(out[len(plaintext):], tag)
	return ret
}

func (a *ascon128) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != ascon128NonceSize {
		panic("aead: invalid ASCON-128 nonce length")
	}
	if len(ciphertext) < ascon128TagSize {
		return nil, ErrOpen
	}
	ctLen := len(ciphertext) - ascon128TagSize
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

// sliceForAppend extends, in length but not capacity, the input slice by
// n bytes. The appendix slice aliases in-place if dst has sufficient
// capacity; otherwise a new array is allocated and returned. This is the
// same helper every reference Go AEAD implementation in the corpus
// defines locally.
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
