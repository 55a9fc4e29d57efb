package framework

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperModeVar = "SMOKETEST_HELPER_PROCESS"

// TestHelperProcess is not a real test: it is the body of the subprocesses launched by the
// tests below, selected by an environment variable.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv(helperModeVar)
	if mode == "" {
		return
	}
	switch mode {
	case "exit":
		fmt.Println("exiting right away")
		os.Exit(0)
	case "graceful":
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGTERM)
		fmt.Println("ready")
		<-sigs
		fmt.Println("shutting down")
		os.Exit(0)
	case "stubborn":
		signal.Ignore(syscall.SIGTERM)
		fmt.Println("ready")
		time.Sleep(time.Minute)
		os.Exit(0)
	case "fail":
		fmt.Fprintln(os.Stderr, "build broke")
		os.Exit(3)
	}
}

func helperCommand(mode string) []string {
	return []string{"/usr/bin/env", helperModeVar + "=" + mode, os.Args[0], "-test.run=^TestHelperProcess$"}
}

func skipUnlessUnix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("subprocess signal tests require a Unix platform")
	}
}

func waitForLine(t *testing.T, logger *CapturingLogger, line string) {
	require.Eventually(t, func() bool {
		for _, m := range logger.Output() {
			if strings.HasSuffix(m.Message, line) {
				return true
			}
		}
		return false
	}, time.Second*10, time.Millisecond*10, "did not see output line %q", line)
}

func TestStopProcessThatExitsGracefully(t *testing.T) {
	skipUnlessUnix(t)
	var logger CapturingLogger
	g := NewProcessGroup(&logger, time.Second*5)
	p, err := g.Launch(ServiceDef{Name: "svc", RunCommand: helperCommand("graceful")})
	require.NoError(t, err)
	waitForLine(t, &logger, "[svc] ready")

	outcome, err := p.Stop(time.Second * 5)
	require.NoError(t, err)
	assert.Equal(t, ExitedGracefully, outcome)
	assert.True(t, p.Exited())
	waitForLine(t, &logger, "[svc] shutting down")
}

func TestStopProcessThatIgnoresTerminate(t *testing.T) {
	skipUnlessUnix(t)
	var logger CapturingLogger
	g := NewProcessGroup(&logger, time.Millisecond*200)
	p, err := g.Launch(ServiceDef{Name: "svc", RunCommand: helperCommand("stubborn")})
	require.NoError(t, err)
	waitForLine(t, &logger, "[svc] ready")

	start := time.Now()
	require.NoError(t, g.Cleanup())
	assert.GreaterOrEqual(t, int64(time.Since(start)), int64(time.Millisecond*200))
	assert.True(t, p.Exited())

	outcome, err := p.Stop(time.Second)
	require.NoError(t, err)
	assert.Equal(t, Killed, outcome)
	waitForLine(t, &logger, fmt.Sprintf("Stopped svc (PID %d): killed", p.PID()))
}

func TestStopProcessThatAlreadyExited(t *testing.T) {
	skipUnlessUnix(t)
	var logger CapturingLogger
	g := NewProcessGroup(&logger, time.Second)
	p, err := g.Launch(ServiceDef{Name: "svc", RunCommand: helperCommand("exit")})
	require.NoError(t, err)

	select {
	case <-p.Done():
	case <-time.After(time.Second * 10):
		require.Fail(t, "timed out waiting for process to exit")
	}
	assert.NoError(t, p.ExitError())

	require.NoError(t, g.Cleanup())
	outcome, err := p.Stop(time.Second)
	require.NoError(t, err)
	assert.Equal(t, AlreadyExited, outcome)
	require.NoError(t, g.Cleanup())
}

func TestStopProcessThatExitsBeforeSignal(t *testing.T) {
	skipUnlessUnix(t)
	args := helperCommand("exit")
	cmd := exec.Command(args[0], args[1:]...)
	require.NoError(t, cmd.Run())

	// The process has been reaped, but the handle has not noticed yet.
	p := &ServiceProcess{Name: "svc", cmd: cmd, done: make(chan struct{})}
	time.AfterFunc(time.Millisecond*50, func() { close(p.done) })

	outcome, err := p.Stop(time.Second * 5)
	require.NoError(t, err)
	assert.Equal(t, AlreadyExited, outcome)
	assert.True(t, p.Exited())
}

func TestLaunchWithoutRunCommand(t *testing.T) {
	g := NewProcessGroup(nil, 0)
	_, err := g.Launch(ServiceDef{Name: "svc"})
	assert.Error(t, err)
	assert.Len(t, g.Processes(), 0)
}

func TestLaunchNonexistentProgram(t *testing.T) {
	g := NewProcessGroup(nil, 0)
	_, err := g.Launch(ServiceDef{Name: "svc", RunCommand: []string{filepath.Join(t.TempDir(), "no-such-program")}})
	assert.Error(t, err)
	assert.Len(t, g.Processes(), 0)
	assert.NoError(t, g.Cleanup())
}

func TestBuildWithoutCommandDoesNothing(t *testing.T) {
	g := NewProcessGroup(nil, 0)
	assert.NoError(t, g.Build(context.Background(), ServiceDef{Name: "svc"}))
}

func TestBuildSuccess(t *testing.T) {
	skipUnlessUnix(t)
	var logger CapturingLogger
	g := NewProcessGroup(&logger, 0)
	dir := t.TempDir()
	require.NoError(t, g.Build(context.Background(),
		ServiceDef{Name: "svc", Dir: dir, BuildCommand: helperCommand("exit")}))
	waitForLine(t, &logger, "[svc build] exiting right away")
}

func TestBuildFailure(t *testing.T) {
	skipUnlessUnix(t)
	var logger CapturingLogger
	g := NewProcessGroup(&logger, 0)
	err := g.Build(context.Background(), ServiceDef{Name: "svc", BuildCommand: helperCommand("fail")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build of svc failed")
	waitForLine(t, &logger, "[svc build] build broke")
}

func TestBuildCancelled(t *testing.T) {
	skipUnlessUnix(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewProcessGroup(nil, 0)
	err := g.Build(ctx, ServiceDef{Name: "svc", BuildCommand: helperCommand("stubborn")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestFormatCommand(t *testing.T) {
	assert.Equal(t, "mvn clean package -DskipTests",
		FormatCommand([]string{"mvn", "clean", "package", "-DskipTests"}))
	assert.Equal(t, "java -jar 'my dir/app.jar'", FormatCommand([]string{"java", "-jar", "my dir/app.jar"}))
}
