package compiler

import (
	"errors"
	"fmt"

	"github.com/james-lomax/the-last-compiler/internal/naming"
)

var (
	// ErrAlreadyExists is returned by New when the spec file exists.
	ErrAlreadyExists = errors.New("spec file already exists")

	// ErrNoTests is returned by Test when a module has no test file.
	ErrNoTests = errors.New("no tests")
)

// AgentFailureError reports a non-zero exit from the agent. The pipeline
// stops before the manifest is touched.
type AgentFailureError struct {
	Module naming.ModuleID
	Code   int
}

func (e *AgentFailureError) Error() string {
	return fmt.Sprintf("agent exited with code %d while compiling %s", e.Code, e.Module)
}

// ExitCode returns the agent's exit code so the CLI can propagate it.
func (e *AgentFailureError) ExitCode() int {
	return e.Code
}
