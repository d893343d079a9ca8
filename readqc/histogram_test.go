package readqc

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestHistogramGrow(t *testing.T) {
	var h PositionHistogram
	h.Grow(3)
	expect.EQ(t, len(h), 3)
	h.Incr(1)
	h.Grow(5)
	expect.EQ(t, []float64(h), []float64{0, 1, 0, 0, 0})
	// Grow never shrinks.
	h.Grow(2)
	expect.EQ(t, len(h), 5)
	h.Grow(5)
	expect.EQ(t, len(h), 5)
}

func TestHistogramNormalize(t *testing.T) {
	h := PositionHistogram{1, 0, 2, 4}
	h.Normalize(4)
	expect.EQ(t, []float64(h), []float64{25, 0, 50, 100})
}
