package rng

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"time"
)

var rngFeeder = make(chan *entropyData, 16)

type entropyData struct {
	data    []byte
	entropy int // estimated entropy in bits
}

// Feeder supplies entropy from one source to the RNG.
type Feeder struct {
	input chan *entropyData
}

// NewFeeder returns a new entropy feeder attached to the RNG.
func NewFeeder() *Feeder {
	return &Feeder{
		input: rngFeeder,
	}
}

// SupplyEntropy hands raw entropy over to the RNG. The call blocks until the entropy is accepted or the RNG shuts down.
func (f *Feeder) SupplyEntropy(data []byte, entropy int) {
	select {
	case f.input <- &entropyData{
		data:    data,
		entropy: entropy,
	}:
	case <-module.ShuttingDown():
	}
}

// SupplyEntropyAsInt hands entropy in the form of an integer over to the RNG. The call blocks until the entropy is accepted.
func (f *Feeder) SupplyEntropyAsInt(n int64, entropy int) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(n))
	f.SupplyEntropy(b, entropy)
}

// feedInitialEntropy reseeds the generator from the OS before anything is served.
func feedInitialEntropy() error {
	seed := make([]byte, 32)
	n, err := rand.Read(seed)
	if err != nil {
		return errors.New("could not read initial entropy from os: " + err.Error())
	}
	if n != len(seed) {
		return errors.New("could not read enough initial entropy from os")
	}

	rngLock.Lock()
	defer rngLock.Unlock()
	rng.Reseed(seed)
	lastReseed = time.Now()
	return nil
}

// fullFeeder collects entropy from all sources and reseeds the generator whenever enough has accumulated.
func fullFeeder(ctx context.Context) error {
	var pool []byte
	poolEntropy := 0

	for {
		select {
		case data := <-rngFeeder:
			pool = append(pool, data.data...)
			poolEntropy += data.entropy

			if int64(poolEntropy) >= minFeedEntropy() {
				rngLock.Lock()
				rng.Reseed(pool)
				lastReseed = time.Now()
				rngLock.Unlock()

				pool = nil
				poolEntropy = 0
			}

		case <-ctx.Done():
			return nil
		}
	}
}
