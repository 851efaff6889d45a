package random

import (
	"sync"

	"passgen/internal/errors"

	"golang.org/x/crypto/chacha20"
)

// SeedSize is the length of a seed accepted by NewSeeded.
const SeedSize = chacha20.KeySize

// Seeded is a deterministic cryptographic source: the ChaCha20 keystream for
// a fixed key and an all-zero nonce. Two Seeded sources built from the same
// seed yield the same bytes.
type Seeded struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
}

// NewSeeded returns a Seeded source keyed by seed, which must be SeedSize bytes.
func NewSeeded(seed []byte) (*Seeded, error) {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed, nonce[:])
	if err != nil {
		return nil, errors.NewCryptoError("seed", err)
	}
	return &Seeded{cipher: c}, nil
}

// Read fills p with keystream bytes. It never fails until the 256 GiB
// keystream of a single seed is exhausted, at which point it panics.
func (s *Seeded) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(p)
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}
