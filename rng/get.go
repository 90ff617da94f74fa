package rng

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"
)

// Reader provides a global instance to read from the RNG.
var Reader reader

// ErrNotReady is returned when the RNG has not been seeded yet or was shut down.
var ErrNotReady = errors.New("rng: not ready")

// reader provides an io.Reader interface to the RNG.
type reader struct{}

var (
	bytesServed int
	lastReseed  time.Time
)

// checkEntropy checks if the RNG is ready to serve and if it needs to be reseeded before. The caller must hold rngLock.
func checkEntropy() error {
	if !rngReady {
		return ErrNotReady
	}

	if bytesServed > int(reseedAfterBytes()) ||
		time.Since(lastReseed) > time.Duration(reseedAfterSeconds())*time.Second {
		seed := make([]byte, 32)
		if _, err := rand.Read(seed); err != nil {
			return fmt.Errorf("rng: could not read entropy from os for reseed: %w", err)
		}
		rng.Reseed(seed)
		bytesServed = 0
		lastReseed = time.Now()
	}

	return nil
}

// Read reads random data into the supplied buffer.
func Read(b []byte) (n int, err error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkEntropy(); err != nil {
		return 0, err
	}

	bytesServed += len(b)
	return copy(b, rng.PseudoRandomData(uint(len(b)))), nil
}

// Read implements the io.Reader interface.
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Bytes returns n cryptographically strong random bytes.
func Bytes(n int) ([]byte, error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkEntropy(); err != nil {
		return nil, err
	}

	bytesServed += n
	return rng.PseudoRandomData(uint(n)), nil
}
