package readqc

// PositionHistogram accumulates one counter per base position across
// all reads observed so far. It grows to cover the longest read seen
// and never shrinks; new positions start at zero. Values are float64 so
// a finalized histogram can hold normalized percentages in place.
type PositionHistogram []float64

// Grow extends the histogram to at least n positions.
func (h *PositionHistogram) Grow(n int) {
	if n > len(*h) {
		*h = append(*h, make([]float64, n-len(*h))...)
	}
}

// Incr increments the counter at position i.
//
// REQUIRES: i < len(*h).
func (h *PositionHistogram) Incr(i int) {
	(*h)[i]++
}

// Normalize converts each raw count into a percentage of total.
//
// REQUIRES: total > 0.
func (h PositionHistogram) Normalize(total int) {
	for i := range h {
		h[i] = h[i] / float64(total) * 100.0
	}
}
