// Package random implements SpongePRNG, a forward-secure pseudorandom
// generator built on the cXOF construction in the hash package: it is
// seeded from a trng.Source, rekeyed after every fetch so the state
// material that produced an output is erased before the next one, and
// supports saving/restoring a persistent seed across restarts.
//
// Grounded on ascon-prng.c: the reseed-at-16384-bytes counter, the
// rekey-after-every-fetch-or-feed forward-security step (align the
// sponge, then zero the rate and permute repeatedly until the whole
// capacity has been replaced), and the Storage read/write contract for
// seed persistence.
package random

import (
	"fmt"

	"github.com/AeonDave/ascon-go/hash"
	"github.com/AeonDave/ascon-go/trng"
)

const (
	rate = 8
	// stateSize is the width of the full Ascon permutation state in
	// bytes (5 64-bit lanes).
	stateSize = 40
	// seedSize is the number of TRNG bytes absorbed at Init/Reseed time.
	seedSize = 32
	// SavedSeedSize is the number of bytes State.SaveSeed/LoadSeed
	// transfer to and from a Storage, matching
	// ASCON_RANDOM_SAVED_SEED_SIZE.
	SavedSeedSize = 40
	// reseedLimit is the number of squeezed bytes after which the next
	// Fetch forces a reseed from the TRNG before returning output.
	reseedLimit = 16384
)

// Storage is the seed-persistence contract a caller can hand to
// SaveSeed/LoadSeed, mirroring ascon_storage_t's read/write callbacks
// (e.g. backed by a file, an EEPROM region, or a Kubernetes secret).
type Storage interface {
	// ReadSeed reads len(p) bytes of previously saved seed material.
	// It returns the number of bytes read; a short read is treated as
	// "no valid seed available".
	ReadSeed(p []byte) (int, error)
	// WriteSeed writes p as the new saved seed.
	WriteSeed(p []byte) error
}

// State is a SpongePRNG instance. The zero value is not ready to use;
// call NewState.
type State struct {
	xof     *hash.XOF
	counter int
	src     trng.Source
}

// NewState constructs and seeds a SpongePRNG from src
// (ascon_random_init).
func NewState(src trng.Source) (*State, error) {
	s := &State{src: src}
	s.xof = hash.NewCXOF(0, "SpongePRNG", nil, 0)
	seed := make([]byte, seedSize)
	if !src.Generate(seed) {
		return nil, fmt.Errorf("random: TRNG seed generation failed")
	}
	s.xof.Write(seed)
	for i := range seed {
		seed[i] = 0
	}
	s.rekey()
	return s, nil
}

// rekey destroys forward-recoverable state by aligning the sponge onto
// a rate-block boundary, then repeatedly zeroing the rate portion of the
// state and running the full permutation, ceil((stateSize-rate)/rate)
// times — enough to cycle every capacity lane at least once.
func (s *State) rekey() {
	s.xof.Align()
	for n := 0; n < stateSize-rate; n += rate {
		s.xof.ZeroRateAndPermute()
	}
}

// Fetch squeezes len(out) bytes of pseudorandom output, force-reseeding
// first if the running counter has reached reseedLimit, and rekeys
// afterwards for forward security (ascon_random_fetch).
func (s *State) Fetch(out []byte) error {
	if s.counter >= reseedLimit {
		if err := s.Reseed(); err != nil {
			return err
		}
	}
	s.xof.Squeeze(out)
	if len(out) < reseedLimit {
		s.counter += len(out)
	} else {
		s.counter = reseedLimit
	}
	s.rekey()
	return nil
}

// Reseed absorbs a fresh TRNG draw into the running state and resets
// the reseed counter (ascon_random_reseed).
func (s *State) Reseed() error {
	seed := make([]byte, seedSize)
	if !s.src.Generate(seed) {
		return fmt.Errorf("random: TRNG reseed failed")
	}
	s.xof.Write(seed)
	for i := range seed {
		seed[i] = 0
	}
	s.counter = 0
	s.rekey()
	return nil
}

// Feed absorbs caller-supplied entropy into the generator, in addition
// to whatever the TRNG has already contributed, then rekeys
// (ascon_random_feed). Useful for mixing in an externally-saved seed or
// other auxiliary entropy (e.g. a hardware ID) the TRNG alone wouldn't
// capture.
func (s *State) Feed(entropy []byte) {
	s.xof.Write(entropy)
	s.rekey()
}

// SaveSeed fetches SavedSeedSize bytes of output and writes them to
// storage, so a future process can resume the generator's forward
// security chain without depending purely on the TRNG at startup
// (ascon_random_save_seed).
func (s *State) SaveSeed(storage Storage) error {
	seed := make([]byte, SavedSeedSize)
	if err := s.Fetch(seed); err != nil {
		return err
	}
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()
	return storage.WriteSeed(seed)
}

// LoadSeed reads a previously saved seed from storage and feeds it into
// the generator, then reseeds from the TRNG and immediately saves a
// fresh seed — so that if power is lost before the next explicit save,
// the generator never restarts in the same state twice
// (ascon_random_load_seed).
func (s *State) LoadSeed(storage Storage) error {
	seed := make([]byte, SavedSeedSize)
	n, err := storage.ReadSeed(seed)
	if err != nil {
		return err
	}
	if n == SavedSeedSize {
		s.Feed(seed)
	}
	for i := range seed {
		seed[i] = 0
	}
	if err := s.Reseed(); err != nil {
		return err
	}
	return s.SaveSeed(storage)
}
