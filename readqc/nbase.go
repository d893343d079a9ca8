package readqc

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/grailbio/postalign/encoding/fastq"
)

// DefaultNThreshold is the fraction of undetermined bases at or above
// which a read is counted as bad.
const DefaultNThreshold = 0.15

// NBase counts undetermined ('N') bases per base position, separately
// for each mate, and flags reads whose N fraction reaches a threshold.
// Finalize reports per-position N percentages for plotting plus the
// bad-read totals.
type NBase struct {
	threshold float64

	dist1, dist2   PositionHistogram
	total1, total2 int
	bad1, bad2     int
	maxLen         int
}

// NewNBase returns an NBase calculator with the given bad-read
// threshold. Pass DefaultNThreshold for the standard cutoff.
func NewNBase(threshold float64) *NBase {
	return &NBase{threshold: threshold}
}

// Observe consumes the next pair. An empty R2 sequence means the
// fragment is single-ended and leaves all mate-2 state untouched.
func (c *NBase) Observe(pair *fastq.Pair) error {
	if pair == nil {
		return errors.New("nbase: missing mate-1 record")
	}
	c.observeMate(pair.R1.Seq, &c.dist1, &c.total1, &c.bad1)
	if !pair.SingleEnded() {
		c.observeMate(pair.R2.Seq, &c.dist2, &c.total2, &c.bad2)
	}
	return nil
}

func (c *NBase) observeMate(seq string, dist *PositionHistogram, total, bad *int) {
	if len(seq) > c.maxLen {
		c.maxLen = len(seq)
	}
	dist.Grow(len(seq))
	*total++
	numN := 0
	for i := 0; i < len(seq); i++ {
		if seq[i] == 'N' || seq[i] == 'n' {
			numN++
			dist.Incr(i)
		}
	}
	// The comparison is inclusive: a read of all Ns is bad at any
	// threshold <= 1, and a zero-length read is always bad.
	if float64(numN) >= c.threshold*float64(len(seq)) {
		*bad++
	}
}

// Finalize normalizes the per-position counts to percentages and
// returns the result. It returns nil if no reads were observed. A mate
// with zero observations contributes no series and no facts.
func (c *NBase) Finalize() *Result {
	if c.total1 <= 0 {
		return nil
	}
	c.dist1.Normalize(c.total1)
	if c.total2 > 0 {
		c.dist2.Normalize(c.total2)
	}
	res := &Result{
		Name:      "DistributionOfN",
		MaxLen:    c.maxLen,
		PlotTitle: "Distribution of N per base position",
		XLabel:    "Base Position",
		YLabel:    "Percentage of N",
		YMin:      0,
		YMax:      100,
	}
	res.Facts = append(res.Facts, Fact{"Bad_Reads_Read1", strconv.Itoa(c.bad1)})
	if c.total2 > 0 {
		res.Facts = append(res.Facts, Fact{"Bad_Reads_Read2", strconv.Itoa(c.bad2)})
	}
	res.Series = append(res.Series, Series{Name: "Read 1", Values: c.dist1})
	if c.total2 > 0 {
		res.Series = append(res.Series, Series{Name: "Read 2", Values: c.dist2})
	}
	return res
}
