package pipeline

import (
	"context"
	"os"

	"github.com/grailbio/base/log"
)

// Pipeline runs the post-alignment stage sequence for one input file.
// It is fail-fast: the first stage that does not succeed terminates the
// run, and no later stage executes. Intermediate files are left on
// disk; cleanup and path uniqueness across runs belong to the caller.
type Pipeline struct {
	opts   Opts
	runner *Runner
}

// New validates opts and returns a Pipeline. A configuration error
// here is fatal before any stage runs.
func New(opts Opts) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		opts:   opts,
		runner: &Runner{LogDir: opts.LogDir, Timeout: opts.StageTimeout},
	}, nil
}

// RunResult is the product of a completed run. Outcomes are only valid
// for the lifetime of the result; the pipeline keeps no state between
// runs.
type RunResult struct {
	// Output is the analysis-ready BAM.
	Output string
	// Stats is the alignment stats file.
	Stats string
	// Outcomes holds one entry per executed stage, in order.
	Outcomes []Outcome
}

// Execute runs the stage sequence for mode over inputPath. On the
// first failed or unlaunchable stage it stops and returns a
// *StageError carrying the context needed to locate the logs.
func (p *Pipeline) Execute(ctx context.Context, mode Mode, inputPath string) (*RunResult, error) {
	plan := NewPlan(mode, inputPath, &p.opts)
	log.Printf("pipeline: %s mode, input %s, stages %v", mode, inputPath, plan.Names())

	res := &RunResult{Output: plan.Output, Stats: plan.Stats}
	for _, stage := range plan.Stages {
		outcome, err := p.runner.Run(ctx, stage)
		if err != nil {
			return nil, p.stageError(stage, nil, inputPath, err)
		}
		res.Outcomes = append(res.Outcomes, outcome)
		if !outcome.Success {
			return nil, p.stageError(stage, &outcome, inputPath, nil)
		}
	}
	log.Printf("pipeline: done, output %s, stats %s", res.Output, res.Stats)
	return res, nil
}

func (p *Pipeline) stageError(stage Stage, outcome *Outcome, inputPath string, cause error) *StageError {
	id := p.opts.RunID
	if id == "" {
		id = inputPath
	}
	host, _ := os.Hostname()
	wd, _ := os.Getwd()
	return &StageError{
		Stage:   stage.Name,
		Input:   id,
		WorkDir: wd,
		Host:    host,
		Outcome: outcome,
		Cause:   cause,
	}
}
