package fastq

import "io"

// A Pair is one sequencing fragment: R1, which is always present, and
// R2, which is the zero Read when the fragment is single-ended.
type Pair struct {
	R1, R2 Read
}

// SingleEnded reports whether the pair carries no R2 read.
func (p *Pair) SingleEnded() bool {
	return p.R2.Seq == ""
}

// PairScanner scans fragments from an R1 stream and an optional R2
// stream. When the R2 reader is nil the scanner yields single-ended
// pairs. With both streams present, the files must contain the same
// number of records; a length mismatch surfaces as ErrDiscordant from
// Err after Scan returns false.
type PairScanner struct {
	r1, r2 *Scanner
	err    error
}

// NewPairScanner returns a PairScanner over the given R1 and R2
// streams. r2 may be nil for single-ended data.
func NewPairScanner(r1, r2 io.Reader, fields Field) *PairScanner {
	p := &PairScanner{r1: NewScanner(r1, fields)}
	if r2 != nil {
		p.r2 = NewScanner(r2, fields)
	}
	return p
}

// Scan reads the next fragment into pair, reporting whether it
// succeeded. Once Scan returns false it never returns true again;
// check Err to distinguish end of stream from failure.
func (p *PairScanner) Scan(pair *Pair) bool {
	ok := p.r1.Scan(&pair.R1)
	if p.r2 == nil {
		pair.R2 = Read{}
		return ok
	}
	ok2 := p.r2.Scan(&pair.R2)
	if ok != ok2 {
		p.err = ErrDiscordant
	}
	return ok && ok2
}

// Err returns the scanning error, if any. It should be checked after
// Scan returns false.
func (p *PairScanner) Err() error {
	if err := p.r1.Err(); err != nil {
		return err
	}
	if p.r2 != nil {
		if err := p.r2.Err(); err != nil {
			return err
		}
	}
	return p.err
}
