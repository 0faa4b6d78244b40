// Package agent invokes the external code-generation agent.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/james-lomax/the-last-compiler/internal/logging"
	"github.com/james-lomax/the-last-compiler/internal/tactile"
)

// InterruptedExitCode is reported when the user interrupts the agent.
const InterruptedExitCode = 1

// Agent turns a prompt file into source files. A non-zero exit code is
// returned as a value; the error is reserved for failures to run at all.
type Agent interface {
	Invoke(ctx context.Context, promptPath string) (int, error)
}

// ShellAgent runs a CLI agent (claude by default) through the platform
// shell with the terminal attached, so its interactive session is visible.
type ShellAgent struct {
	binary      string
	instruction string
	executor    tactile.Executor
}

// NewShellAgent creates an agent that runs binary with a single quoted
// instruction argument.
func NewShellAgent(binary, instruction string, executor tactile.Executor) *ShellAgent {
	return &ShellAgent{binary: binary, instruction: instruction, executor: executor}
}

// CommandLine returns the shell command line used to invoke the agent:
// binary "instruction promptPath", with embedded double quotes escaped.
func (a *ShellAgent) CommandLine(promptPath string) string {
	message := fmt.Sprintf("%s %s", a.instruction, promptPath)
	escaped := strings.ReplaceAll(message, `"`, `\"`)
	return fmt.Sprintf(`%s "%s"`, a.binary, escaped)
}

// Invoke runs the agent against promptPath and returns its exit code.
func (a *ShellAgent) Invoke(ctx context.Context, promptPath string) (int, error) {
	line := a.CommandLine(promptPath)
	logging.Agent("Invoking agent: %s", line)

	result, err := a.executor.Execute(ctx, tactile.ShellCommand(line))
	if err != nil {
		return 1, fmt.Errorf("failed to run agent %s: %w", a.binary, err)
	}

	if result.Interrupted {
		logging.AgentWarn("Agent interrupted by user (child exit=%d)", result.ExitCode)
		return InterruptedExitCode, nil
	}

	logging.AgentDebug("Agent exited with code %d after %s", result.ExitCode, result.Duration)
	return result.ExitCode, nil
}
