package pipeline

import (
	"fmt"
	"io"
	"strings"
)

// StageError reports a stage that failed or could not be launched. It
// carries enough context for an operator to find the host, working
// directory, and capture files.
type StageError struct {
	Stage   string
	Input   string
	WorkDir string
	Host    string
	// Outcome is nil for launch failures.
	Outcome *Outcome
	// Cause is the underlying launch error, nil for plain stage
	// failures.
	Cause error
}

func (e *StageError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("stage %s failed to launch for %s: %v", e.Stage, e.Input, e.Cause)
	case e.Outcome != nil && e.Outcome.TimedOut:
		return fmt.Sprintf("stage %s timed out for %s after %s", e.Stage, e.Input, e.Outcome.Duration)
	case e.Outcome != nil:
		return fmt.Sprintf("stage %s failed for %s: exit status %d", e.Stage, e.Input, e.Outcome.ExitCode)
	}
	return fmt.Sprintf("stage %s failed for %s", e.Stage, e.Input)
}

// Message is a notification handed to a Notifier.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Notifier delivers escalation messages. Delivery is best effort: a
// delivery failure is logged by the caller, never escalated further.
type Notifier interface {
	Notify(msg Message) error
}

// Scheduler submits a named job to a compute cluster and reports the
// identifier it was assigned. Job completion is not awaited here;
// sequencing of dependent jobs happens outside this package.
type Scheduler interface {
	Submit(jobName string, argv []string) (jobID string, err error)
}

// FormatFailure shapes a StageError into an escalation message with
// the stage name, input identifier, working directory, and host.
func FormatFailure(from string, to []string, err *StageError) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Stage:       %s\n", err.Stage)
	fmt.Fprintf(&b, "Input:       %s\n", err.Input)
	fmt.Fprintf(&b, "Working dir: %s\n", err.WorkDir)
	fmt.Fprintf(&b, "Host:        %s\n", err.Host)
	if err.Outcome != nil {
		if err.Outcome.TimedOut {
			fmt.Fprintf(&b, "Timed out after %s\n", err.Outcome.Duration)
		} else {
			fmt.Fprintf(&b, "Exit status: %d\n", err.Outcome.ExitCode)
		}
		fmt.Fprintf(&b, "Stdout:      %s\nStderr:      %s\n", err.Outcome.Stdout, err.Outcome.Stderr)
	}
	if err.Cause != nil {
		fmt.Fprintf(&b, "Launch error: %v\n", err.Cause)
	}
	return Message{
		From:    from,
		To:      to,
		Subject: fmt.Sprintf("postalign: stage %s failed for %s", err.Stage, err.Input),
		Body:    b.String(),
	}
}

// WriteNotifier logs messages to a writer. It stands in for real
// delivery in development and tests.
type WriteNotifier struct {
	W io.Writer
}

// Notify writes the message to the underlying writer.
func (n WriteNotifier) Notify(msg Message) error {
	_, err := fmt.Fprintf(n.W, "To: %s\nFrom: %s\nSubject: %s\n\n%s",
		strings.Join(msg.To, ", "), msg.From, msg.Subject, msg.Body)
	return err
}
