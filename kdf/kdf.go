// Package kdf implements ASCON-KDF/KDFA (simple key derivation) and
// ASCON-KMAC/KMACA (keyed MAC-as-XOF), both built as cXOF instances with
// the key absorbed as the cXOF's first input. This is the detail that
// distinguishes them from PBKDF2 (see the pbkdf2 package), which instead
// passes its password as the cXOF's customization string.
package kdf

import "github.com/AeonDave/ascon-go/hash"

// KDF derives outlen bytes of key material from key and an optional
// customization string, using the 12-round-per-block cXOF.
func KDF(key, custom []byte, outlen int) []byte {
	return derive(0, "KDF", key, custom, outlen)
}

// KDFA is the KDF sibling built on the faster 8-round-per-block cXOF.
// The function name stays "KDF": the two variants are already separated
// by their distinct IV words, matching ascon-kdfa.c.
func KDFA(key, custom []byte, outlen int) []byte {
	return derive(4, "KDF", key, custom, outlen)
}

// KMAC computes a keyed, variable-output-length MAC over data using the
// 12-round-per-block cXOF.
func KMAC(key, data, custom []byte, outlen int) []byte {
	return derive(0, "KMAC", key, custom, outlen, data)
}

// KMACA is the KMAC sibling built on the faster 8-round-per-block cXOF.
// Like KDFA, it keeps the "KMAC" function name and relies on the IV word
// for variant separation.
func KMACA(key, data, custom []byte, outlen int) []byte {
	return derive(4, "KMAC", key, custom, outlen, data)
}

// derive absorbs key, then each element of extra (in KMAC's case, the
// message being authenticated), into a cXOF seeded with functionName and
// custom, and squeezes outlen bytes. KDF has no extra input beyond the
// key; KMAC's extra is the message.
func derive(rounds int, functionName string, key, custom []byte, outlen int, extra ...[]byte) []byte {
	x := hash.NewCXOF(rounds, functionName, custom, uint64(outlen)*8)
	x.Write(key)
	for _, e := range extra {
		x.Write(e)
	}
	out := make([]byte, outlen)
	x.Squeeze(out)
	return out
}
