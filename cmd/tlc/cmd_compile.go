package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/james-lomax/the-last-compiler/internal/compiler"
)

var newCmd = &cobra.Command{
	Use:   "new <spec-file>",
	Short: "Create a placeholder spec file",
	Long: `Creates a placeholder markdown spec for a new module.

An existing file is never overwritten.

Example:
  tlc new foo-bar.md   # module foo_bar, command foo-bar`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := newCompiler(cmd.OutOrStdout()).New(args[0])
		return err
	},
}

var compileCmd = &cobra.Command{
	Use:   "compile <spec-file>",
	Short: "Compile a spec into a module",
	Long: `Renders the instruction prompt for a spec, runs the code-generation
agent and, when the agent succeeds, registers the module's command in the
project manifest.

The agent's exit code is propagated when it fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newCompiler(cmd.OutOrStdout()).Compile(cmd.Context(), args[0])
		if res != nil {
			logger.Debug("Compile finished",
				zap.String("run_id", res.RunID),
				zap.String("state", string(res.State)),
				zap.Int("agent_exit_code", res.AgentExitCode))
		}
		return err
	},
}

var testCmd = &cobra.Command{
	Use:   "test <spec-file>",
	Short: "Run a module's tests, compiling it first if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := newCompiler(cmd.OutOrStdout()).Test(cmd.Context(), args[0])
		if errors.Is(err, compiler.ErrNoTests) {
			// Already reported to the user.
			return exitWith(1)
		}
		if err != nil {
			return withCode(code, err)
		}
		return exitWith(code)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <spec-file> [args...]",
	Short: "Run a module, compiling it first if needed",
	Long: `Runs the module's command with the given arguments and exits with its
exit code. Arguments after the spec file are passed through untouched.

Example:
  tlc run foo-bar.md --name world`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := newCompiler(cmd.OutOrStdout()).Run(cmd.Context(), args[0], args[1:])
		if err != nil {
			return withCode(code, err)
		}
		return exitWith(code)
	},
}

func init() {
	// Everything after the spec file belongs to the module.
	runCmd.Flags().SetInterspersed(false)
}
