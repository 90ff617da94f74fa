package rng

import (
	"fmt"
)

// Bits returns length cryptographically strong random bits, one bit per element, each either 0 or 1.
func Bits(length int) ([]uint8, error) {
	if length <= 0 {
		return nil, fmt.Errorf("rng: invalid bit sequence length %d", length)
	}

	b, err := Bytes((length + 7) / 8)
	if err != nil {
		return nil, err
	}

	bits := make([]uint8, length)
	for i := range bits {
		bits[i] = (b[i/8] >> (7 - i%8)) & 1
	}
	return bits, nil
}
