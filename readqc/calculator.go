// Package readqc computes per-read quality metrics over a stream of
// FASTQ read pairs. Metrics are implemented as Calculators: each one
// consumes pairs incrementally through Observe and produces its final
// Result exactly once, after the stream is exhausted. The Runner drives
// any number of calculators over a shared stream in a single pass.
package readqc

import "github.com/grailbio/postalign/encoding/fastq"

// Calculator accumulates one metric over a stream of read pairs. The
// Runner never depends on a concrete calculator type.
//
// Observe consumes the next pair. R1 must be present; an absent R2
// denotes single-ended data, not an error. Finalize must be called at
// most once, after the last Observe; it returns nil when the calculator
// observed no reads, and the Result is immutable once returned.
type Calculator interface {
	Observe(pair *fastq.Pair) error
	Finalize() *Result
}

// A Fact is one scalar key/value entry in a Result. Order of facts is
// significant and preserved in reports.
type Fact struct {
	Key, Value string
}

// A Series is a named per-position value sequence for plotting,
// indexed by 0-based base position.
type Series struct {
	Name   string
	Values []float64
}

// A Result is the finalized output of one Calculator.
type Result struct {
	// Name identifies the metric, e.g. "DistributionOfN".
	Name string
	// Facts are scalar key/value results, in report order.
	Facts []Fact
	// Series holds zero or more per-position value sequences.
	Series []Series
	// MaxLen is the maximum read length observed, for axis scaling.
	MaxLen int

	// Plot shaping, consumed by Result.Plot.
	PlotTitle      string
	XLabel, YLabel string
	YMin, YMax     float64
}
