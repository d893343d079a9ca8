package pipeline

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Mode selects the stage sequence for a run.
type Mode int

const (
	// Fragment is single-ended sequencing: reads have no mates, so the
	// input needs an explicit coordinate sort and a CIGAR fix before
	// duplicate marking.
	Fragment Mode = iota
	// Paired is paired-end sequencing: mate-info fixing sorts and
	// repairs CIGAR/mapping quality in a single pass.
	Paired
)

func (m Mode) String() string {
	switch m {
	case Fragment:
		return "fragment"
	case Paired:
		return "paired"
	}
	return "unknown"
}

// A Stage is one resolved external step: a name for logs and
// escalation, the full command line, and the data paths involved.
// Stages are immutable once built.
type Stage struct {
	Name string
	Argv []string
	// Input and Output are the stage's primary data paths. They are
	// equal for in-place stages.
	Input, Output string
	// StdoutPath, when set, sends the child's stdout to this file
	// instead of the log-directory capture. Used by stages whose
	// product is their stdout.
	StdoutPath string
}

// stageDef describes one external tool before path resolution.
type stageDef struct {
	name string
	// modes lists the pipeline modes the stage applies to.
	modes []Mode
	// chains reports whether the stage's output replaces the data path
	// consumed by the following stage.
	chains bool
	build  func(in string, opts *Opts) Stage
}

func (d *stageDef) appliesTo(mode Mode) bool {
	for _, m := range d.modes {
		if m == mode {
			return true
		}
	}
	return false
}

// picardArgv builds the command line for one Picard-style jar with the
// shared TMP_DIR / MAX_RECORDS_IN_RAM / VALIDATION_STRINGENCY settings
// appended after the tool-specific arguments.
func picardArgv(opts *Opts, jar string, args ...string) []string {
	argv := []string{opts.Java, "-Xmx" + opts.MaxHeap, "-jar", filepath.Join(opts.PicardDir, jar)}
	argv = append(argv, args...)
	argv = append(argv,
		"TMP_DIR="+opts.TmpDir,
		"MAX_RECORDS_IN_RAM="+strconv.Itoa(opts.MaxRecordsInRAM),
		"VALIDATION_STRINGENCY="+opts.ValidationStringency,
	)
	return argv
}

// replaceSuffix rewrites path's ".bam" suffix (if any) to suffix.
func replaceSuffix(path, suffix string) string {
	return strings.TrimSuffix(path, ".bam") + suffix
}

// Stage order within this table is the execution order; mode dispatch
// only filters it. MarkDuplicates and AlignmentStats run last in every
// mode.
var stageDefs = []stageDef{
	{
		name:   "SortByCoordinate",
		modes:  []Mode{Fragment},
		chains: true,
		build: func(in string, opts *Opts) Stage {
			out := replaceSuffix(in, ".sorted.bam")
			return Stage{
				Name: "SortByCoordinate",
				Argv: picardArgv(opts, "SortSam.jar",
					"INPUT="+in, "OUTPUT="+out, "SORT_ORDER=coordinate"),
				Input:  in,
				Output: out,
			}
		},
	},
	{
		// Resets CIGAR and mapping quality on unmapped reads.
		// Overwrites its input: the sorted file must have no other
		// writer or concurrent reader while this stage runs.
		name:   "FixCIGAR",
		modes:  []Mode{Fragment},
		chains: true,
		build: func(in string, opts *Opts) Stage {
			return Stage{
				Name: "FixCIGAR",
				Argv: picardArgv(opts, "FixCIGAR.jar",
					"INPUT="+in, "OUTPUT="+in),
				Input:  in,
				Output: in,
			}
		},
	},
	{
		// Fixes strand/mate flags and resets CIGAR/mapping quality for
		// unmapped reads in one pass, emitting coordinate-sorted output.
		name:   "FixMateInfo",
		modes:  []Mode{Paired},
		chains: true,
		build: func(in string, opts *Opts) Stage {
			out := replaceSuffix(in, ".fixed.bam")
			return Stage{
				Name: "FixMateInfo",
				Argv: picardArgv(opts, "FixMateInformation.jar",
					"INPUT="+in, "OUTPUT="+out, "SORT_ORDER=coordinate"),
				Input:  in,
				Output: out,
			}
		},
	},
	{
		name:   "MarkDuplicates",
		modes:  []Mode{Fragment, Paired},
		chains: true,
		build: func(in string, opts *Opts) Stage {
			out := replaceSuffix(in, ".dedup.bam")
			return Stage{
				Name: "MarkDuplicates",
				Argv: picardArgv(opts, "MarkDuplicates.jar",
					"INPUT="+in, "OUTPUT="+out,
					"METRICS_FILE="+replaceSuffix(in, ".dedup.metrics")),
				Input:  in,
				Output: out,
			}
		},
	},
	{
		name:   "AlignmentStats",
		modes:  []Mode{Fragment, Paired},
		chains: false,
		build: func(in string, opts *Opts) Stage {
			out := in + ".flagstat"
			return Stage{
				Name:       "AlignmentStats",
				Argv:       []string{opts.Samtools, "flagstat", in},
				Input:      in,
				Output:     out,
				StdoutPath: out,
			}
		},
	},
}

// A Plan is the resolved stage sequence for one run.
type Plan struct {
	Mode   Mode
	Stages []Stage
	// Output is the analysis-ready BAM produced by the last
	// transforming stage.
	Output string
	// Stats is the alignment stats file.
	Stats string
}

// NewPlan resolves the stage sequence for mode over inputPath, chaining
// each stage's output into the next stage's input.
func NewPlan(mode Mode, inputPath string, opts *Opts) Plan {
	plan := Plan{Mode: mode}
	in := inputPath
	for i := range stageDefs {
		def := &stageDefs[i]
		if !def.appliesTo(mode) {
			continue
		}
		st := def.build(in, opts)
		plan.Stages = append(plan.Stages, st)
		if def.chains {
			in = st.Output
		} else {
			plan.Stats = st.Output
		}
	}
	plan.Output = in
	return plan
}

// Names returns the stage names in execution order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Stages))
	for i, st := range p.Stages {
		names[i] = st.Name
	}
	return names
}
