package rng

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/randbase/randbase/log"
)

// osFeeder periodically feeds entropy from the OS to the RNG.
func osFeeder(ctx context.Context) error {
	feeder := NewFeeder()

	for {
		// get feed entropy size
		minEntropyBytes := int(minFeedEntropy())/8 + 1
		if minEntropyBytes < 32 {
			minEntropyBytes = 64
		}

		// get entropy
		osEntropy := make([]byte, minEntropyBytes)
		n, err := rand.Read(osEntropy)
		if err != nil {
			log.Errorf("rng: could not read entropy from os: %s", err)
			select {
			case <-time.After(10 * time.Second):
				continue
			case <-ctx.Done():
				return nil
			}
		}
		if n != minEntropyBytes {
			log.Errorf("rng: could not read enough entropy from os: got only %d bytes instead of %d", n, minEntropyBytes)
			select {
			case <-time.After(10 * time.Second):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		// feed
		feeder.SupplyEntropy(osEntropy, minEntropyBytes*8)

		// wait until the next reseed window
		select {
		case <-time.After(time.Duration(reseedAfterSeconds()) * time.Second):
		case <-ctx.Done():
			return nil
		}
	}
}
