package tactile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/james-lomax/the-last-compiler/internal/logging"
)

// Executor runs commands. The context signals user interruption.
type Executor interface {
	Execute(ctx context.Context, cmd Command) (*ExecutionResult, error)
}

// ErrStartFailed is returned when a command cannot be started.
var ErrStartFailed = errors.New("command failed to start")

// DirectExecutor executes commands directly on the host using os/exec.
type DirectExecutor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewDirectExecutor creates an executor attached to the process's own
// standard streams.
func NewDirectExecutor() *DirectExecutor {
	return NewDirectExecutorWithStreams(os.Stdin, os.Stdout, os.Stderr)
}

// NewDirectExecutorWithStreams creates an executor whose children use the
// given streams unless a Command overrides them.
func NewDirectExecutorWithStreams(stdin io.Reader, stdout, stderr io.Writer) *DirectExecutor {
	return &DirectExecutor{stdin: stdin, stdout: stdout, stderr: stderr}
}

// Validate checks if a command can be executed.
func (e *DirectExecutor) Validate(cmd Command) error {
	if cmd.Binary == "" {
		return fmt.Errorf("binary is required")
	}
	return nil
}

// Execute runs cmd and blocks until the child exits.
//
// Cancelling ctx does not kill the child. The child shares the terminal and
// receives the user's interrupt itself; Execute marks the result as
// Interrupted and keeps waiting so no process is left orphaned.
func (e *DirectExecutor) Execute(ctx context.Context, cmd Command) (*ExecutionResult, error) {
	timer := logging.StartTimer(logging.CategoryTactile, "Command execution")
	defer timer.Stop()

	if err := e.Validate(cmd); err != nil {
		logging.TactileDebug("Command validation failed: %v", err)
		return nil, err
	}

	logging.Tactile("Executing command: %s", cmd.CommandString())

	result := &ExecutionResult{
		ExitCode: -1,
		Command:  &cmd,
	}

	execCmd := exec.Command(cmd.Binary, cmd.Arguments...)
	execCmd.Dir = cmd.WorkingDirectory
	execCmd.Env = append(os.Environ(), cmd.Environment...)
	execCmd.Stdin = firstReader(cmd.Stdin, e.stdin)
	execCmd.Stdout = firstWriter(cmd.Stdout, e.stdout)
	execCmd.Stderr = firstWriter(cmd.Stderr, e.stderr)

	result.StartedAt = time.Now()
	if err := execCmd.Start(); err != nil {
		result.FinishedAt = time.Now()
		result.Error = err.Error()
		logging.Tactile("Command failed to start: %s - %v", cmd.Binary, err)
		return result, fmt.Errorf("%w: %s: %v", ErrStartFailed, cmd.Binary, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- execCmd.Wait()
	}()

	var waitErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		result.Interrupted = true
		logging.TactileWarn("Interrupted while waiting for %s; waiting for it to exit", cmd.Binary)
		waitErr = <-done
	}

	result.FinishedAt = time.Now()
	result.Duration = result.FinishedAt.Sub(result.StartedAt)
	result.Success = true

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		result.ExitCode = 0
	case errors.As(waitErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode < 0 {
			// Terminated by a signal.
			result.ExitCode = 1
		}
		logging.TactileDebug("Command exited non-zero: %s -> %d", cmd.Binary, result.ExitCode)
	default:
		result.Success = false
		result.ExitCode = 1
		result.Error = waitErr.Error()
		logging.Tactile("Command wait failed: %s - %v", cmd.Binary, waitErr)
		return result, fmt.Errorf("waiting for %s: %w", cmd.Binary, waitErr)
	}

	logging.Tactile("Command completed: %s -> exit=%d, duration=%s, interrupted=%v",
		cmd.Binary, result.ExitCode, result.Duration, result.Interrupted)
	return result, nil
}

func firstReader(rs ...io.Reader) io.Reader {
	for _, r := range rs {
		if r != nil {
			return r
		}
	}
	return nil
}

func firstWriter(ws ...io.Writer) io.Writer {
	for _, w := range ws {
		if w != nil {
			return w
		}
	}
	return nil
}

// ShellCommand wraps a single command line in the platform shell.
func ShellCommand(line string) Command {
	if runtime.GOOS == "windows" {
		return Command{Binary: "cmd", Arguments: []string{"/C", line}}
	}
	return Command{Binary: "sh", Arguments: []string{"-c", line}}
}
