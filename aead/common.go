// Package aead implements the ASCON-128, ASCON-128a and ASCON-80pq
// authenticated encryption constructions, each as a standard library
// cipher.AEAD, grounded on internal/literals/ascon.go (the Go idiom) and
// the corresponding ascon-aead-*.c reference sources (the IV constants
// and round counts).
package aead

import "errors"

// ErrKeySize is wrapped by every constructor handed a key of the wrong
// length.
var ErrKeySize = errors.New("invalid key size")

// checkTag compares tag1 against tag2 and, if they match, leaves
// plaintext untouched; if they don't, it wipes plaintext before
// returning false. This mirrors ascon_aead_check_tag's
// accumulate-and-mask idiom: accum accumulates the XOR of every tag byte
// pair, is folded down to an all-ones/all-zeros mask in constant time,
// and that mask is applied to every plaintext byte so a failed
// verification never leaves partially-decrypted data sitting in the
// caller's buffer.
func checkTag(plaintext, tag1, tag2 []byte) bool {
	accum := 0
	for i := range tag1 {
		accum |= int(tag1[i]) ^ int(tag2[i])
	}
	// accum==0 (tags equal): accum-1 == -1, an arithmetic right shift
	// keeps every bit set, so mask == 0xff and plaintext is untouched.
	// accum!=0 (tags differ): accum-1 is in [0,254], the shift zeroes
	// it out, so mask == 0x00 and plaintext is wiped below.
	mask := byte((accum - 1) >> 8)
	for i := range plaintext {
		plaintext[i] &= mask
	}
	return accum == 0
}

// padBlock fills buf with data followed by a single 0x80 padding byte
// and zeroes, matching the padding convention used throughout the AEAD
// family (ascon-aead-common.c's ascon_pad). len(data) must be < len(buf).
func padBlock(buf []byte, data []byte) {
	n := copy(buf, data)
	buf[n] = 0x80
	for i := n + 1; i < len(buf); i++ {
		buf[i] = 0
	}
}
