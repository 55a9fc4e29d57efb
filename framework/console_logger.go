package framework

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// TestLogger receives notifications about the progress of a run.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}

var (
	stepColor    = color.New(color.Bold)
	failedColor  = color.New(color.FgRed, color.Bold)
	skippedColor = color.New(color.FgYellow)
	passedColor  = color.New(color.FgGreen)
	debugColor   = color.New(color.FgHiBlack)
)

// ConsoleTestLogger writes human-readable progress to the console. Color is disabled
// automatically by the color package when the output is not a terminal.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	stepColor.Fprintf(c.out(), "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		failedColor.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		failedColor.Fprintf(c.out(), "  FAILED: %s\n", id)
	} else {
		passedColor.Fprintf(c.out(), "  OK: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		for _, m := range debugOutput {
			debugColor.Fprintf(c.out(), "    DEBUG [%s] %s\n", m.Time.Format(timestampFormat), m.Message)
		}
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		skippedColor.Fprintf(c.out(), "  SKIPPED: %s\n", id)
	} else {
		skippedColor.Fprintf(c.out(), "  SKIPPED: %s (%s)\n", id, reason)
	}
}

// PrintResults writes a summary of the run.
func PrintResults(w io.Writer, results Results) {
	fmt.Fprintf(w, "%d step(s) ran, %d failed, %d skipped\n",
		len(results.Tests), len(results.Failures), len(results.Skipped))
	if results.Halted() {
		failedColor.Fprintf(w, "Run halted after failure in [%s]\n", results.HaltedBy)
	}
	for _, f := range results.Failures {
		if len(f.Errors) == 0 {
			failedColor.Fprintf(w, "  FAILED [%s]\n", f.TestID)
		}
		for _, err := range f.Errors {
			failure := TestFailure{ID: f.TestID, Err: err}
			failedColor.Fprintf(w, "  FAILED %s\n", strings.SplitN(failure.Error(), "\n", 2)[0])
		}
	}
	if results.OK() {
		passedColor.Fprintln(w, "All steps completed!")
	}
}
