package generate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounts(t *testing.T) {
	zeros, ones := Counts([]uint8{0, 1, 1, 0, 1})
	assert.Equal(t, 2, zeros)
	assert.Equal(t, 3, ones)

	zeros, ones = Counts(nil)
	assert.Equal(t, 0, zeros)
	assert.Equal(t, 0, ones)
}

func TestShannonEntropy(t *testing.T) {
	// single-symbol sequences carry no information
	assert.Equal(t, 0.0, ShannonEntropy(8, 0))
	assert.Equal(t, 0.0, ShannonEntropy(0, 8))
	assert.Equal(t, 0.0, ShannonEntropy(0, 0))

	// perfectly balanced
	assert.InDelta(t, 1.0, ShannonEntropy(512, 512), 1e-9)

	// known value: p0=0.25, p1=0.75
	expected := -(0.25*math.Log2(0.25) + 0.75*math.Log2(0.75))
	assert.InDelta(t, expected, ShannonEntropy(25, 75), 1e-9)

	// always within [0,1]
	for zeros := 0; zeros <= 100; zeros += 7 {
		h := ShannonEntropy(zeros, 100-zeros)
		assert.GreaterOrEqual(t, h, 0.0)
		assert.LessOrEqual(t, h, 1.0)
	}
}
