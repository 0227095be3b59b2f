package siv

import "errors"

// errOpen is returned when decryption fails authentication.
var errOpen = errors.New("siv: message authentication failed")

// checkTag mirrors aead.checkTag's constant-time accumulate-and-mask
// idiom: if tag1 and tag2 differ, plaintext is wiped before this
// returns false.
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
