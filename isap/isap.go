// Package isap implements the ISAP family of leakage-resilient
// authenticated ciphers: ISAP-128 and ISAP-128a. Unlike the ASCON-128
// family, ISAP derives a fresh session key for each operation through a
// bit-by-bit rekeying schedule: the nonce (for encryption) and the
// 16-byte intermediate hash (for the tag) are absorbed into the key
// state one bit per permutation call. The payload and associated data
// themselves are processed a rate block at a time.
//
// Grounded on ascon-isap-common.h (the shared algorithm, parametrized by
// round counts) and ascon-isap-128.c / ascon-isap-128a.c (the concrete
// instantiations).
package isap

import (
	"fmt"

	"github.com/AeonDave/ascon-go/internal/core"
)

const (
	// KeySize is the required ISAP key length for both variants.
	KeySize = 16
	// NonceSize is the required ISAP nonce length for both variants.
	NonceSize = 16
	// TagSize is the ISAP authentication tag length for both variants.
	TagSize = 16

	rate      = 8
	stateSize = 40
)

// roundSchedule holds the four ISAP round-count parameters (sH, sE, sB,
// sK) that distinguish ISAP-128 from ISAP-128a; everything else about
// the construction is shared.
type roundSchedule struct {
	sH, sE, sB, sK int
}

// ISAP128 uses the full 12-round permutation everywhere, trading
// performance for the largest possible security margin.
var ISAP128 = roundSchedule{sH: 12, sE: 12, sB: 12, sK: 12}

// ISAP128a reduces the per-block encryption and bit-absorption round
// counts for throughput, keeping the full 12 rounds for hashing and for
// the rekeying step that ends each key-derivation pass.
var ISAP128a = roundSchedule{sH: 12, sE: 6, sB: 1, sK: 12}

// KeyState holds the two permutation states ("ke" for encryption, "ka"
// for authentication) pre-expanded from a raw key, exactly as the
// reference library's ascon*_isap_aead_key_t precomputes them once so
// that repeated Seal/Open calls do not redo the key schedule.
type KeyState struct {
	sched  roundSchedule
	ke, ka core.State
}

func ivBytes(tag byte, keyBits, rateBits uint8, sched roundSchedule) [24]byte {
	var iv [24]byte
	iv[0] = tag
	iv[1] = byte(keyBits)
	iv[2] = byte(rateBits)
	iv[3] = 1
	iv[4] = byte(sched.sH)
	iv[5] = byte(sched.sB)
	iv[6] = byte(sched.sE)
	iv[7] = byte(sched.sK)
	return iv
}

// NewKeyState expands a 16-byte key into the ke/ka permutation states
// for the given round schedule (ISAP128 or ISAP128a).
func NewKeyState(sched roundSchedule, key []byte) (*KeyState, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("isap: invalid key length %d, want %d", len(key), KeySize)
	}
	ks := &KeyState{sched: sched}

	ivKE := ivBytes(0x03, KeySize*8, rate*8, sched)
	ks.ke.OverwriteBytes(0, key)
	ks.ke.OverwriteBytes(KeySize, ivKE[:])
	ks.ke.Permute(12 - sched.sK)

	ivKA := ivBytes(0x02, KeySize*8, rate*8, sched)
	ks.ka.OverwriteBytes(0, key)
	ks.ka.OverwriteBytes(KeySize, ivKA[:])
	ks.ka.Permute(12 - sched.sK)

	return ks, nil
}

// addBit XORs bit number `bit` (0 = most significant) of data[bit/8]
// into the top bit of the state's first byte.
func addBit(s *core.State, data []byte, bit int) {
	v := (data[bit/8] << uint(bit%8)) & 0x80
	s.XORByte(0, v)
}

// rekey derives a session state from a pre-expanded key state by
// absorbing data one bit at a time, permuting p^sB between every bit
// except the last, which is followed by the full-strength p^sK. This is
// the core leakage-resilience mechanism: the key material an attacker
// could observe changes on every single permutation call.
func rekey(pk *core.State, sched roundSchedule, data []byte) core.State {
	state := *pk
	numBits := len(data)*8 - 1
	for bit := 0; bit < numBits; bit++ {
		addBit(&state, data, bit)
		state.Permute(12 - sched.sB)
	}
	addBit(&state, data, numBits)
	state.Permute(12 - sched.sK)
	return state
}

func (ks *KeyState) encrypt(nonce, dst, src []byte) {
	state := rekey(&ks.ke, ks.sched, nonce)
	state.OverwriteBytes(stateSize-NonceSize, nonce)

	for len(src) >= rate {
		state.Permute(12 - ks.sched.sE)
		var block [rate]byte
		state.ExtractBytes(0, block[:])
		for i := 0; i < rate; i++ {
			dst[i] = block[i] ^ src[i]
		}
		src = src[rate:]
		dst = dst[rate:]
	}
	if len(src) > 0 {
		state.Permute(12 - ks.sched.sE)
		var block [rate]byte
		state.ExtractBytes(0, block[:])
		for i := range src {
			dst[i] = block[i] ^ src[i]
		}
	}
}

func absorbHash(state *core.State, sched roundSchedule, data []byte, withSeparator bool) {
	for len(data) >= rate {
		state.XORBytes(0, data[:rate])
		state.Permute(12 - sched.sH)
		data = data[rate:]
	}
	temp := len(data)
	if temp > 0 {
		state.XORBytes(0, data)
	}
	state.Pad(temp)
	state.Permute(12 - sched.sH)
	if withSeparator {
		state.Separator()
	}
}

func (ks *KeyState) mac(nonce, ad, ciphertext []byte) []byte {
	var state core.State
	state.OverwriteBytes(0, nonce)
	ivA := ivBytes(0x01, KeySize*8, rate*8, ks.sched)
	state.OverwriteBytes(NonceSize, ivA[:])
	state.Permute(12 - ks.sched.sH)

	absorbHash(&state, ks.sched, ad, true)
	absorbHash(&state, ks.sched, ciphertext, false)

	var tag [TagSize]byte
	state.ExtractBytes(0, tag[:])
	var preserve [stateSize - KeySize]byte
	state.ExtractBytes(KeySize, preserve[:])

	state = rekey(&ks.ka, ks.sched, tag[:])
	state.OverwriteBytes(KeySize, preserve[:])
	state.Permute(12 - ks.sched.sH)

	state.ExtractBytes(0, tag[:])
	return tag[:]
}

// Seal encrypts plaintext and appends a TagSize authentication tag,
// under the given 16-byte nonce and associated data.
func (ks *KeyState) Seal(nonce, plaintext, ad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("isap: invalid nonce length %d, want %d", len(nonce), NonceSize)
	}
	out := make([]byte, len(plaintext)+TagSize)
	ks.encrypt(nonce, out[:len(plaintext)], plaintext)
	tag := ks.mac(nonce, ad, out[:len(plaintext)])
	copy(out[len(plaintext):], tag)
	return out, nil
}

// Open verifies and decrypts ciphertext (encrypted payload followed by a
// TagSize tag) under the given nonce and associated data.
func (ks *KeyState) Open(nonce, ciphertext, ad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("isap: invalid nonce length %d, want %d", len(nonce), NonceSize)
	}
	if len(ciphertext) < TagSize {
		return nil, errOpen
	}
	ctLen := len(ciphertext) - TagSize
	ct := ciphertext[:ctLen]
	gotTag := ciphertext[ctLen:]

	wantTag := ks.mac(nonce, ad, ct)

	out := make([]byte, ctLen)
	ks.encrypt(nonce, out, ct)

	if !checkTag(out, wantTag, gotTag) {
		return nil, errOpen
	}
	return out, nil
}
