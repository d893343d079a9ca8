// Package pipeline runs the post-alignment correction sequence for one
// aligned BAM: coordinate sorting, CIGAR/mate-info fixing, duplicate
// marking, and alignment stats. Every stage is an external tool run as
// a child process; the pipeline is strictly sequential and fail-fast,
// because each stage consumes the exact output of the one before it.
package pipeline

import (
	"fmt"
	"time"
)

// Validation stringency values accepted by the Picard-style tools.
const (
	StringencySilent  = "SILENT"
	StringencyLenient = "LENIENT"
	StringencyStrict  = "STRICT"
)

// Opts configures one pipeline run. All stage command parameters come
// from here; nothing is hardcoded in the stage table.
type Opts struct {
	// Java is the JVM executable used to run the Picard-style jars.
	Java string
	// PicardDir is the directory holding the per-tool jars
	// (SortSam.jar, FixCIGAR.jar, FixMateInformation.jar,
	// MarkDuplicates.jar).
	PicardDir string
	// Samtools is the samtools executable, used for alignment stats.
	Samtools string

	// TmpDir is handed to every jar as TMP_DIR.
	TmpDir string
	// MaxRecordsInRAM bounds each tool's in-memory record count.
	MaxRecordsInRAM int
	// ValidationStringency is one of SILENT, LENIENT, STRICT.
	ValidationStringency string
	// MaxHeap is the JVM heap budget, e.g. "8g".
	MaxHeap string

	// LogDir receives per-stage stdout/stderr capture files.
	LogDir string
	// StageTimeout bounds each stage's wall-clock time. Zero means no
	// timeout; a hung tool then blocks the run indefinitely.
	StageTimeout time.Duration

	// RunID identifies the input (flowcell barcode, sample) in logs and
	// escalation messages. Defaults to the input path.
	RunID string
}

// Validate reports a configuration error if a required setting is
// missing or malformed. It is called before any stage runs.
func (o *Opts) Validate() error {
	if o.Java == "" {
		return fmt.Errorf("pipeline config: java executable not set")
	}
	if o.PicardDir == "" {
		return fmt.Errorf("pipeline config: picard jar directory not set")
	}
	if o.Samtools == "" {
		return fmt.Errorf("pipeline config: samtools executable not set")
	}
	if o.TmpDir == "" {
		return fmt.Errorf("pipeline config: tmp dir not set")
	}
	if o.LogDir == "" {
		return fmt.Errorf("pipeline config: log dir not set")
	}
	if o.MaxRecordsInRAM <= 0 {
		return fmt.Errorf("pipeline config: max records in RAM must be positive, got %d", o.MaxRecordsInRAM)
	}
	switch o.ValidationStringency {
	case StringencySilent, StringencyLenient, StringencyStrict:
	default:
		return fmt.Errorf("pipeline config: invalid validation stringency %q", o.ValidationStringency)
	}
	if o.MaxHeap == "" {
		return fmt.Errorf("pipeline config: JVM heap budget not set")
	}
	return nil
}
