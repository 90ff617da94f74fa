package rng

import (
	"context"
	"time"
)

var tickDuration = 10 * time.Millisecond

func getTickDuration() time.Duration {
	// be ready in 1/10 of the time of reseedAfterSeconds
	msecsAvailable := reseedAfterSeconds() * 100

	// one tick contributes 0.125 bits of entropy
	ticksNeeded := minFeedEntropy() * 8

	// msecs between ticks
	tickMsecs := msecsAvailable / ticksNeeded

	// use a minimum of 10 msecs per tick for good entropy
	if tickMsecs < 10 {
		tickMsecs = 10
	}

	return time.Duration(tickMsecs) * time.Millisecond
}

// tickFeeder is a very simple entropy feeder that adds the least significant bit of the current nanosecond unixtime to its pool every time it 'ticks'. The more work the program does, the better the quality, as the internal scheduler cannot immediately run the goroutine when it's ready.
func tickFeeder(ctx context.Context) error {
	var value int64
	var pushes int
	feeder := NewFeeder()

	for {
		select {
		case <-time.After(tickDuration):

			value = (value << 1) | (time.Now().UnixNano() % 2)

			pushes++
			if pushes >= 64 {
				feeder.SupplyEntropyAsInt(value, 8)
				pushes = 0
			}

			tickDuration = getTickDuration()

		case <-ctx.Done():
			return nil
		}
	}
}
