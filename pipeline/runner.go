package pipeline

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Outcome describes one finished stage execution.
type Outcome struct {
	Stage    string
	ExitCode int
	Success  bool
	// TimedOut is set when the stage was killed by the per-stage
	// timeout. TimedOut implies !Success.
	TimedOut bool
	Duration time.Duration
	// Stdout and Stderr are the capture file paths.
	Stdout, Stderr string
}

// Runner executes stages as child processes, one at a time. The
// child's stdout/stderr go to per-stage capture files under LogDir (or
// the stage's StdoutPath), never to the runner's own log stream.
type Runner struct {
	LogDir string
	// Timeout bounds each stage; zero disables it.
	Timeout time.Duration
}

// Run executes one stage and blocks until it finishes. A non-zero exit
// is not an error: it is reported through Outcome.Success for the
// caller to act on. A non-nil error means the stage could not be
// launched (or its capture files could not be created), which is
// always fatal.
func (r *Runner) Run(ctx context.Context, stage Stage) (Outcome, error) {
	outcome := Outcome{Stage: stage.Name}

	stdoutPath := stage.StdoutPath
	if stdoutPath == "" {
		stdoutPath = filepath.Join(r.LogDir, stage.Name+".out")
	}
	stderrPath := filepath.Join(r.LogDir, stage.Name+".err")
	stdout, err := os.Create(stdoutPath)
	if err != nil {
		return outcome, errors.Wrapf(err, "%s: creating stdout capture", stage.Name)
	}
	defer stdout.Close() // nolint: errcheck
	stderr, err := os.Create(stderrPath)
	if err != nil {
		return outcome, errors.Wrapf(err, "%s: creating stderr capture", stage.Name)
	}
	defer stderr.Close() // nolint: errcheck
	outcome.Stdout, outcome.Stderr = stdoutPath, stderrPath

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, stage.Argv[0], stage.Argv[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	log.Printf("%s: starting: %s", stage.Name, strings.Join(stage.Argv, " "))
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return outcome, errors.Wrapf(err, "%s: launching %s", stage.Name, stage.Argv[0])
	}
	waitErr := cmd.Wait()
	outcome.Duration = time.Since(start)

	if waitErr == nil {
		outcome.Success = true
		log.Printf("%s: finished in %s", stage.Name, outcome.Duration)
		return outcome, nil
	}
	if exitErr, ok := waitErr.(*exec.ExitError); ok {
		outcome.ExitCode = exitErr.ExitCode()
		if ctx.Err() == context.DeadlineExceeded {
			outcome.TimedOut = true
			log.Error.Printf("%s: timed out after %s", stage.Name, outcome.Duration)
		} else {
			log.Error.Printf("%s: exit status %d after %s (stderr: %s)",
				stage.Name, outcome.ExitCode, outcome.Duration, stderrPath)
		}
		return outcome, nil
	}
	return outcome, errors.Wrapf(waitErr, "%s: waiting for %s", stage.Name, stage.Argv[0])
}
