package aead

import (
	"crypto/subtle"
	"fmt"

	"github.com/AeonDave/ascon-go/internal/core"
)

// incCipher is the per-variant surface the incremental wrapper drives:
// the one-shot types already know how to build the initial state, absorb
// associated data and finalize a tag, so the streaming layer only adds
// block bookkeeping on top.
type incCipher interface {
	rate() int
	payloadRounds() int
	init(nonce []byte) core.State
	absorbAD(s *core.State, ad []byte)
	finalize(s *core.State) []byte
}

func (a *ascon128) rate() int           { return ascon128Rate }
func (a *ascon128) payloadRounds() int  { return 6 }
func (a *ascon128a) rate() int          { return ascon128aRate }
func (a *ascon128a) payloadRounds() int { return 12 - ascon128aInnerRnd }
func (a *ascon80pq) rate() int          { return ascon80pqRate }
func (a *ascon80pq) payloadRounds() int { return 6 }

// Incremental is the packet-oriented streaming counterpart of the
// one-shot Seal/Open AEADs, grounded on ascon-aead-inc-128.c and
// friends: Start opens a packet (absorbing its associated data and
// advancing the stored nonce so the next packet automatically gets a
// fresh one), EncryptBlock/DecryptBlock stream the payload in rate-sized
// chunks, and EncryptFinalize/DecryptFinalize settle the tag.
//
// Every block handed to EncryptBlock/DecryptBlock must be a multiple of
// the variant's rate, except the final block before finalize, which may
// be short.
type Incremental struct {
	c       incCipher
	nonce   [16]byte
	state   core.State
	posn    int
	started bool
}

// NewIncremental128 builds an incremental ASCON-128 session from a
// 16-byte key and the first packet's 16-byte nonce.
func NewIncremental128(key, nonce []byte) (*Incremental, error) {
	a, err := NewAscon128(key)
	if err != nil {
		return nil, err
	}
	return newIncremental(a.(*ascon128), nonce)
}

// NewIncremental128a builds an incremental ASCON-128a session.
func NewIncremental128a(key, nonce []byte) (*Incremental, error) {
	a, err := NewAscon128a(key)
	if err != nil {
		return nil, err
	}
	return newIncremental(a.(*ascon128a), nonce)
}

// NewIncremental80pq builds an incremental ASCON-80pq session from a
// 20-byte key.
func NewIncremental80pq(key, nonce []byte) (*Incremental, error) {
	a, err := NewAscon80pq(key)
	if err != nil {
		return nil, err
	}
	return newIncremental(a.(*ascon80pq), nonce)
}

func newIncremental(c incCipher, nonce []byte) (*Incremental, error) {
	if len(nonce) != 16 {
		return nil, fmt.Errorf("aead: invalid nonce length %d, want 16", len(nonce))
	}
	inc := &Incremental{c: c}
	copy(inc.nonce[:], nonce)
	return inc, nil
}

// Start begins a new packet: the state is rebuilt from the stored key
// and nonce, the associated data is absorbed, and the stored nonce is
// incremented (little-endian 128-bit add) so the next Start call uses a
// distinct nonce under the same key.
func (inc *Incremental) Start(ad []byte) {
	inc.state = inc.c.init(inc.nonce[:])
	inc.c.absorbAD(&inc.state, ad)
	inc.posn = 0
	inc.started = true
	incrementNonce(&inc.nonce)
}

// EncryptBlock encrypts src into dst (which must be at least len(src)
// bytes). A short src ends the payload phase: the next call must be a
// finalize.
func (inc *Incremental) EncryptBlock(dst, src []byte) {
	inc.checkBlock()
	r := inc.c.rate()
	for len(src) >= r {
		inc.state.XORBytes(0, src[:r])
		inc.state.ExtractBytes(0, dst[:r])
		inc.state.Permute(inc.c.payloadRounds())
		src = src[r:]
		dst = dst[r:]
	}
	if len(src) > 0 {
		inc.state.XORBytes(0, src)
		inc.state.ExtractBytes(0, dst[:len(src)])
		inc.posn = len(src)
	}
}

// DecryptBlock decrypts src into dst, with the same rate-multiple
// discipline as EncryptBlock.
func (inc *Incremental) DecryptBlock(dst, src []byte) {
	inc.checkBlock()
	r := inc.c.rate()
	ct := make([]byte, r)
	ks := make([]byte, r)
	for len(src) >= r {
		copy(ct, src[:r])
		inc.state.ExtractBytes(0, ks)
		for i := range ks {
			dst[i] = ks[i] ^ ct[i]
		}
		inc.state.OverwriteBytes(0, ct)
		inc.state.Permute(inc.c.payloadRounds())
		src = src[r:]
		dst = dst[r:]
	}
	if len(src) > 0 {
		n := copy(ct, src)
		inc.state.ExtractBytes(0, ks[:n])
		for i := 0; i < n; i++ {
			dst[i] = ks[i] ^ ct[i]
		}
		inc.state.OverwriteBytes(0, ct[:n])
		inc.posn = n
	}
}

// EncryptFinalize pads the final payload block and computes the packet's
// 16-byte tag. The session stays usable: call Start to open the next
// packet.
func (inc *Incremental) EncryptFinalize() []byte {
	if !inc.started {
		panic("aead: finalize before Start")
	}
	inc.state.Pad(inc.posn)
	tag := inc.c.finalize(&inc.state)
	inc.endPacket()
	return tag
}

// DecryptFinalize recomputes the tag over everything streamed through
// DecryptBlock and compares it against the received tag in constant
// time. Unlike the one-shot Open, the plaintext has already been
// streamed to the caller block by block, so on failure the caller must
// discard it; DecryptFinalize can only report the mismatch.
func (inc *Incremental) DecryptFinalize(tag []byte) error {
	if !inc.started {
		panic("aead: finalize before Start")
	}
	inc.state.Pad(inc.posn)
	want := inc.c.finalize(&inc.state)
	inc.endPacket()
	if subtle.ConstantTimeCompare(want, tag) != 1 {
		return ErrOpen
	}
	return nil
}

func (inc *Incremental) checkBlock() {
	if !inc.started {
		panic("aead: block before Start")
	}
	if inc.posn != 0 {
		panic("aead: block after a short (final) block")
	}
}

func (inc *Incremental) endPacket() {
	inc.state.Clean()
	inc.posn = 0
	inc.started = false
}

// incrementNonce adds one to a 16-byte little-endian counter, the
// per-packet nonce schedule (ascon_aead_increment_nonce).
func incrementNonce(n *[16]byte) {
	carry := uint16(1)
	for i := range n {
		carry += uint16(n[i])
		n[i] = byte(carry)
		carry >>= 8
	}
}
