// Package random provides unbiased selection and shuffling on top of a
// cryptographic byte source.
//
// A source is any io.Reader that yields cryptographically random bytes and is
// safe for concurrent use. Reader (crypto/rand) is the default; NewSeeded
// returns a reproducible ChaCha20 keystream for tests and audits.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"passgen/internal/errors"
)

// Reader is the system CSPRNG.
var Reader io.Reader = rand.Reader

// Uint32 reads one little-endian uint32 from src.
func Uint32(src io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(src, b[:]); err != nil {
		return 0, errors.NewCryptoError("read", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// Intn returns a uniform integer in [0, n).
//
// Values at or above the largest multiple of n that fits in 2^32 are
// rejected and redrawn, so every result is equally likely.
func Intn(src io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, errors.ErrInvalidPool
	}
	if uint64(n) > 1<<32 {
		return 0, errors.ErrInvalidPool
	}

	limit := (1 << 32) / uint64(n) * uint64(n)
	for {
		v, err := Uint32(src)
		if err != nil {
			return 0, err
		}
		if uint64(v) < limit {
			return int(uint64(v) % uint64(n)), nil
		}
	}
}

// Pick returns one uniformly chosen element of pool.
func Pick(src io.Reader, pool []byte) (byte, error) {
	i, err := Intn(src, len(pool))
	if err != nil {
		return 0, err
	}
	return pool[i], nil
}

// Shuffle permutes b in place with the Fisher-Yates algorithm.
func Shuffle(src io.Reader, b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := Intn(src, i+1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
