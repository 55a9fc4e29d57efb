package framework

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alessio/shellescape"
)

// DefaultGracePeriod is how long Cleanup waits for a process to exit after asking it to
// terminate, before killing it.
const DefaultGracePeriod = time.Second * 10

// ServiceDef describes how to build and run one service under test.
type ServiceDef struct {
	Name         string
	Dir          string
	BuildCommand []string
	RunCommand   []string
}

// StopOutcome describes how a process ended when it was stopped.
type StopOutcome int

const (
	// AlreadyExited means the process had exited on its own before it was stopped.
	AlreadyExited StopOutcome = iota
	// ExitedGracefully means the process exited within the grace period after SIGTERM.
	ExitedGracefully
	// Killed means the process did not exit in time and was killed.
	Killed
)

func (o StopOutcome) String() string {
	switch o {
	case AlreadyExited:
		return "already exited"
	case ExitedGracefully:
		return "exited gracefully"
	case Killed:
		return "killed"
	default:
		return "unknown"
	}
}

// ServiceProcess is a running service subprocess. It is owned by the ProcessGroup that
// launched it, and is released exactly once, by Stop.
type ServiceProcess struct {
	Name     string
	cmd      *exec.Cmd
	output   []*LineWriter
	done     chan struct{}
	exitErr  error
	stopOnce sync.Once
	outcome  StopOutcome
	stopErr  error
}

// PID returns the operating system process ID.
func (p *ServiceProcess) PID() int {
	return p.cmd.Process.Pid
}

// Exited returns true if the process is no longer running.
func (p *ServiceProcess) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed when the process exits.
func (p *ServiceProcess) Done() <-chan struct{} {
	return p.done
}

// ExitError returns the result of waiting for the process, once it has exited.
func (p *ServiceProcess) ExitError() error {
	<-p.done
	return p.exitErr
}

// Stop asks the process to terminate, waits up to gracePeriod for it to exit, and then kills
// it if it is still running. Only the first call has any effect; later calls return the same
// outcome.
func (p *ServiceProcess) Stop(gracePeriod time.Duration) (StopOutcome, error) {
	p.stopOnce.Do(func() {
		p.outcome, p.stopErr = p.stop(gracePeriod)
	})
	return p.outcome, p.stopErr
}

func (p *ServiceProcess) stop(gracePeriod time.Duration) (StopOutcome, error) {
	if p.Exited() {
		return AlreadyExited, nil
	}
	signalled := false
	if err := p.cmd.Process.Signal(syscall.SIGTERM); err == nil {
		signalled = true
		timer := time.NewTimer(gracePeriod)
		defer timer.Stop()
		select {
		case <-p.done:
			return ExitedGracefully, nil
		case <-timer.C:
		}
	} else if errors.Is(err, os.ErrProcessDone) {
		// It exited after the Exited check above.
		<-p.done
		return AlreadyExited, nil
	}
	// Either the signal could not be delivered (e.g. on Windows) or the grace period ran out.
	if err := p.cmd.Process.Kill(); err != nil {
		if !errors.Is(err, os.ErrProcessDone) {
			return Killed, fmt.Errorf("failed to kill %s (PID %d): %w", p.Name, p.PID(), err)
		}
		<-p.done
		if signalled {
			return ExitedGracefully, nil
		}
		return AlreadyExited, nil
	}
	<-p.done
	return Killed, nil
}

// ProcessGroup builds and launches service subprocesses, and keeps track of every process it
// launched so that they can all be stopped by Cleanup.
type ProcessGroup struct {
	output      Logger
	gracePeriod time.Duration
	processes   []*ServiceProcess
	lock        sync.Mutex
}

// NewProcessGroup creates a ProcessGroup. Subprocess output, and the group's own messages,
// are written line by line to output.
func NewProcessGroup(output Logger, gracePeriod time.Duration) *ProcessGroup {
	if output == nil {
		output = NullLogger()
	}
	if gracePeriod <= 0 {
		gracePeriod = DefaultGracePeriod
	}
	return &ProcessGroup{output: output, gracePeriod: gracePeriod}
}

// Build runs the service's build command in its directory and waits for it to finish.
func (g *ProcessGroup) Build(ctx context.Context, def ServiceDef) error {
	if len(def.BuildCommand) == 0 {
		return nil
	}
	g.output.Printf("Building %s: %s", def.Name, FormatCommand(def.BuildCommand))
	cmd := exec.CommandContext(ctx, def.BuildCommand[0], def.BuildCommand[1:]...)
	cmd.Dir = def.Dir
	stdout := NewLineWriter(g.output, "["+def.Name+" build]")
	stderr := NewLineWriter(g.output, "["+def.Name+" build]")
	cmd.Stdout, cmd.Stderr = stdout, stderr
	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("build of %s was cancelled: %w", def.Name, ctx.Err())
		}
		return fmt.Errorf("build of %s failed: %w", def.Name, err)
	}
	return nil
}

// Launch starts the service's run command in its directory without waiting for it to exit.
// The process is not bound to a context; only Cleanup or Stop ends it.
func (g *ProcessGroup) Launch(def ServiceDef) (*ServiceProcess, error) {
	if len(def.RunCommand) == 0 {
		return nil, errors.New("no run command for " + def.Name)
	}
	g.output.Printf("Starting %s: %s", def.Name, FormatCommand(def.RunCommand))
	cmd := exec.Command(def.RunCommand[0], def.RunCommand[1:]...)
	cmd.Dir = def.Dir
	stdout := NewLineWriter(g.output, "["+def.Name+"]")
	stderr := NewLineWriter(g.output, "["+def.Name+"]")
	cmd.Stdout, cmd.Stderr = stdout, stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", def.Name, err)
	}
	p := &ServiceProcess{
		Name:   def.Name,
		cmd:    cmd,
		output: []*LineWriter{stdout, stderr},
		done:   make(chan struct{}),
	}
	go func() {
		p.exitErr = cmd.Wait()
		for _, w := range p.output {
			w.Flush()
		}
		close(p.done)
	}()

	g.lock.Lock()
	g.processes = append(g.processes, p)
	g.lock.Unlock()
	return p, nil
}

// Processes returns every process launched by the group, in launch order.
func (g *ProcessGroup) Processes() []*ServiceProcess {
	g.lock.Lock()
	defer g.lock.Unlock()
	return append([]*ServiceProcess(nil), g.processes...)
}

// Cleanup stops every process launched by the group. It is safe to call more than once, and
// from more than one goroutine.
func (g *ProcessGroup) Cleanup() error {
	var errs []string
	for _, p := range g.Processes() {
		outcome, err := p.Stop(g.gracePeriod)
		if err != nil {
			g.output.Printf("Could not stop %s: %s", p.Name, err)
			errs = append(errs, err.Error())
			continue
		}
		g.output.Printf("Stopped %s (PID %d): %s", p.Name, p.PID(), outcome)
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// FormatCommand renders a command line with each argument shell-quoted where necessary.
func FormatCommand(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, a := range args {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}
