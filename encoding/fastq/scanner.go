// Package fastq provides FASTQ read scanning for the metrics pipeline.
// Reads are consumed one record (four lines) at a time; paired-end data
// is scanned through PairScanner, which tolerates a missing R2 stream
// for single-ended runs.
package fastq

import (
	"bufio"
	"errors"
	"io"
)

var (
	// ErrShort is returned when a FASTQ stream ends in the middle of a record.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when a record violates the FASTQ framing rules.
	ErrInvalid = errors.New("invalid FASTQ file")
	// ErrDiscordant is returned when the R1 and R2 streams of a pair have
	// different numbers of records.
	ErrDiscordant = errors.New("discordant FASTQ pairs")
)

// A Read is one FASTQ record: ID line, sequence, line 3 ("unknown"),
// and quality string.
type Read struct {
	ID, Seq, Unk, Qual string
}

// Field selects which Read fields a Scanner fills in. Unselected fields
// are left untouched, avoiding string allocation for data the caller
// does not need.
type Field uint

const (
	// ID causes Read.ID to be filled.
	ID Field = 1 << iota
	// Seq causes Read.Seq to be filled.
	Seq
	// Unk causes Read.Unk to be filled.
	Unk
	// Qual causes Read.Qual to be filled.
	Qual
	// All equals ID|Seq|Unk|Qual.
	All = ID | Seq | Unk | Qual
)

var errEOF = errors.New("eof")

// Scanner reads FASTQ records from a single stream. The Scan method
// fills in the next read and reports whether it succeeded; once it
// returns false it never returns true again, and Err tells whether the
// stream ended cleanly. Scanners are not threadsafe.
//
// Validation is limited to record framing: the ID line must begin with
// '@' and line 3 with '+'. Sequence and quality contents, including
// their lengths agreeing, are not checked.
type Scanner struct {
	b      *bufio.Scanner
	fields Field
	err    error
}

// NewScanner returns a Scanner reading raw FASTQ data from r, filling
// in the given fields. A typical fields value is All or ID|Seq.
func NewScanner(r io.Reader, fields Field) *Scanner {
	return &Scanner{b: bufio.NewScanner(r), fields: fields}
}

// Scan reads the next record into read, reporting whether it succeeded.
func (s *Scanner) Scan(read *Read) bool {
	line, ok := s.line(errEOF)
	if !ok {
		return false
	}
	if len(line) == 0 || line[0] != '@' {
		s.err = ErrInvalid
		return false
	}
	if s.fields&ID != 0 {
		read.ID = string(line)
	}
	if line, ok = s.line(ErrShort); !ok {
		return false
	}
	if s.fields&Seq != 0 {
		read.Seq = string(line)
	}
	if line, ok = s.line(ErrShort); !ok {
		return false
	}
	if len(line) == 0 || line[0] != '+' {
		s.err = ErrInvalid
		return false
	}
	if s.fields&Unk != 0 {
		read.Unk = string(line)
	}
	if line, ok = s.line(ErrShort); !ok {
		return false
	}
	if s.fields&Qual != 0 {
		read.Qual = string(line)
	}
	return true
}

// line scans the next line, recording atEnd as the scanner error if the
// stream ends first. An underlying read error takes precedence.
func (s *Scanner) line(atEnd error) ([]byte, bool) {
	if s.err != nil {
		return nil, false
	}
	if !s.b.Scan() {
		if s.err = s.b.Err(); s.err == nil {
			s.err = atEnd
		}
		return nil, false
	}
	return s.b.Bytes(), true
}

// Err returns the scanning error, if any. It returns nil if the stream
// ended cleanly at a record boundary.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}
