package readqc

import (
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/grailbio/postalign/encoding/fastq"
)

// PairSource yields read pairs one at a time, in source order. It is
// satisfied by fastq.PairScanner.
type PairSource interface {
	Scan(pair *fastq.Pair) bool
	Err() error
}

// Runner drives a set of calculators over a shared pair stream in one
// pass. Every pair is handed to every calculator, always in
// registration order, so results are reproducible run over run.
type Runner struct {
	calcs []Calculator
}

// NewRunner returns a Runner over the given calculators. Registration
// order fixes both observation and finalization order.
func NewRunner(calcs ...Calculator) *Runner {
	return &Runner{calcs: calcs}
}

// Run consumes src until exhaustion, then finalizes each calculator
// and returns the non-absent results, in registration order. A source
// error or a failed Observe aborts the run with no partial results.
func (r *Runner) Run(src PairSource) ([]*Result, error) {
	var (
		pair fastq.Pair
		n    int
	)
	for src.Scan(&pair) {
		for _, c := range r.calcs {
			if err := c.Observe(&pair); err != nil {
				return nil, errors.Wrapf(err, "read pair %d", n+1)
			}
		}
		n++
		if n%(1024*1024) == 0 {
			log.Printf("readqc: %d pairs processed", n)
		}
	}
	if err := src.Err(); err != nil {
		return nil, errors.Wrap(err, "reading pair stream")
	}
	log.Printf("readqc: stream exhausted after %d pairs", n)
	results := make([]*Result, 0, len(r.calcs))
	for _, c := range r.calcs {
		if res := c.Finalize(); res != nil {
			results = append(results, res)
		}
	}
	return results, nil
}
