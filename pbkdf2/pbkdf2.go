// Package pbkdf2 implements RFC 8018's PBKDF2 key-stretching function
// with ASCON-XOF as its pseudorandom function, grounded on
// ascon-pbkdf2.c. The password is absorbed as the underlying cXOF's
// customization string rather than as a first absorbed input — the
// detail that sets this construction apart from KDF/KMAC (see the kdf
// package), where the key is absorbed as ordinary input instead.
package pbkdf2

import (
	"encoding/binary"

	"github.com/AeonDave/ascon-go/hash"
)

// blockSize is ASCON_PBKDF2_SIZE: the number of bytes each F-function
// invocation produces, before being truncated or concatenated into the
// caller's requested output length.
const blockSize = 32

// Key derives an outlen-byte key from password and salt using count
// iterations of the RFC 8018 §5.2 F-function, built on the ASCON
// cXOF named "PBKDF2".
func Key(password, salt []byte, count, outlen int) []byte {
	out := make([]byte, 0, outlen)
	for blockNum := uint32(1); len(out) < outlen; blockNum++ {
		block := f(password, salt, count, blockNum)
		out = append(out, block...)
	}
	return out[:outlen]
}

// f implements the F-function: U1 = PRF(password, salt || INT(blockNum)),
// T = U1, then for each subsequent iteration Ui = PRF(password, U(i-1))
// and T ^= Ui, for a total of count iterations (count==1 means T==U1).
func f(password, salt []byte, count int, blockNum uint32) []byte {
	base := hash.NewCXOF(0, "PBKDF2", password, blockSize*8)

	var blockNumBytes [4]byte
	binary.BigEndian.PutUint32(blockNumBytes[:], blockNum)

	u := cloneAndSqueeze(base, salt, blockNumBytes[:])
	t := make([]byte, blockSize)
	copy(t, u)

	for i := 1; i < count; i++ {
		u = cloneAndSqueeze(base, u)
		for j := range t {
			t[j] ^= u[j]
		}
	}
	return t
}

// cloneAndSqueeze clones the post-password cXOF state, absorbs the given
// inputs, and squeezes a fresh blockSize-byte output — mirroring
// ascon_xof_copy's role in ascon_pbkdf2_f, which clones the
// password-primed state for every U_i computation instead of
// re-deriving it from scratch.
func cloneAndSqueeze(base *hash.XOF, inputs ...[]byte) []byte {
	clone := base.Clone()
	for _, in := range inputs {
		clone.Write(in)
	}
	out := make([]byte, blockSize)
	clone.Squeeze(out)
	return out
}
