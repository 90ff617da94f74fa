package generate

import (
	"math"
)

// Counts returns the number of zeros and ones in the given bit sequence.
func Counts(bits []uint8) (zeros, ones int) {
	for _, b := range bits {
		if b == 0 {
			zeros++
		} else {
			ones++
		}
	}
	return
}

// ShannonEntropy returns the entropy of a two-symbol distribution with the given counts, in bits per symbol. An empty or single-symbol sequence has zero entropy.
func ShannonEntropy(zeros, ones int) float64 {
	total := zeros + ones
	if total == 0 {
		return 0
	}

	var entropy float64
	for _, count := range []int{zeros, ones} {
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}
