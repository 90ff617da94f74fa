package rng

import (
	"testing"
)

func TestBits(t *testing.T) {
	for _, length := range []int{1, 2, 7, 8, 9, 255, 256, 1000, 100000} {
		bits, err := Bits(length)
		if err != nil {
			t.Fatalf("Bits(%d) failed: %s", length, err)
		}
		if len(bits) != length {
			t.Errorf("Bits(%d) returned %d bits", length, len(bits))
		}
		for i, bit := range bits {
			if bit != 0 && bit != 1 {
				t.Fatalf("Bits(%d) returned invalid bit %d at index %d", length, bit, i)
			}
		}
	}
}

func TestBitsInvalidLength(t *testing.T) {
	for _, length := range []int{0, -1, -100000} {
		if _, err := Bits(length); err == nil {
			t.Errorf("Bits(%d) should fail", length)
		}
	}
}

func TestBitsIndependence(t *testing.T) {
	// two successive sequences being identical is negligibly unlikely
	a, err := Bits(1000)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Bits(1000)
	if err != nil {
		t.Fatal(err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("two successive 1000 bit sequences are identical")
	}
}
