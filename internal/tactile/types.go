// Package tactile is tlc's process layer: it runs the external agent, the
// test runner and compiled modules as child processes attached to the
// caller's terminal.
//
// Design Principles:
//   - Interactive passthrough: children inherit (or are handed) the
//     caller's stdin/stdout/stderr so a human can drive them
//   - No timeouts: a child runs until it exits on its own
//   - Interruption ends the wait, never the child
//   - Non-zero exit codes are values, not errors
package tactile

import (
	"io"
	"strings"
	"time"
)

// Command represents a command to be executed.
type Command struct {
	// Binary is the executable to run (e.g., "sh", "uv").
	Binary string

	// Arguments are the command-line arguments.
	Arguments []string

	// WorkingDirectory is the directory to execute in.
	// If empty, uses the current working directory.
	WorkingDirectory string

	// Environment variables to add (in KEY=VALUE format) on top of the
	// inherited environment.
	Environment []string

	// Stdin, Stdout and Stderr override the streams handed to the child.
	// Nil means the executor's default (the process's own streams).
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandString returns the full command as a string (for display/logging).
func (c Command) CommandString() string {
	if len(c.Arguments) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Arguments, " ")
}

// ExecutionResult is the outcome of running a command.
type ExecutionResult struct {
	// Success indicates the command was started and waited for.
	// A command that returns a non-zero exit code has Success=true.
	Success bool

	// ExitCode is the command's exit code (-1 if not available).
	ExitCode int

	// Interrupted indicates the caller's context was cancelled while
	// the child was running.
	Interrupted bool

	// Duration is how long the command ran.
	Duration time.Duration

	// StartedAt is when execution began.
	StartedAt time.Time

	// FinishedAt is when execution completed.
	FinishedAt time.Time

	// Error contains any infrastructure-level error message.
	Error string

	// Command is a copy of the command that was executed.
	Command *Command
}

// IsNonZeroExit returns true if the command ran but returned non-zero.
func (r *ExecutionResult) IsNonZeroExit() bool {
	return r.Success && r.ExitCode != 0
}
