// Command tlc compiles markdown specifications into code modules by handing
// them to an external code-generation agent.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/james-lomax/the-last-compiler/internal/agent"
	"github.com/james-lomax/the-last-compiler/internal/compiler"
	"github.com/james-lomax/the-last-compiler/internal/config"
	"github.com/james-lomax/the-last-compiler/internal/logging"
	"github.com/james-lomax/the-last-compiler/internal/tactile"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	logger *zap.Logger
	cfg    *config.Config

	// Swapped out by tests.
	newExecutor = func() tactile.Executor { return tactile.NewDirectExecutor() }
	newAgent    = func(c *config.Config, ex tactile.Executor) agent.Agent {
		return agent.NewShellAgent(c.Agent.Binary, c.Agent.Instruction, ex)
	}
)

// exitError carries a process exit code. An empty message means the
// failure has already been reported.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) ExitCode() int { return e.code }

func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &exitError{code: code}
}

// withCode reports err but exits with code, overriding any code carried
// inside err.
func withCode(code int, err error) error {
	return &exitError{code: code, msg: err.Error()}
}

var rootCmd = &cobra.Command{
	Use:   "tlc",
	Short: "The Last Compiler - compile markdown specs into modules",
	Long: `tlc turns a markdown specification into a code module.

Each spec file (foo-bar.md) maps to one module (tlc/foo_bar.py) and one
command (foo-bar). Compiling renders an instruction prompt, hands it to the
code-generation agent and registers the module in pyproject.toml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if workspace != "" {
			if err := os.Chdir(workspace); err != nil {
				return fmt.Errorf("failed to enter workspace: %w", err)
			}
		}

		zc := zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Usage()
		return exitWith(1)
	},
}

// setup loads the configuration and wires component logging to logger.
func setup() error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath
	}
	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if err := logging.Initialize(".", cfg.Logging.Options(), logger); err != nil {
		return err
	}
	logging.Boot("tlc %s using config %s", config.Version, path)
	logger.Debug("Configuration loaded",
		zap.String("path", path),
		zap.String("agent", cfg.Agent.Binary),
		zap.String("manifest", cfg.Layout.Manifest))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .tlc/config.yaml)")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// newCompiler builds the orchestrator from the loaded configuration.
func newCompiler(out io.Writer) *compiler.Compiler {
	ex := newExecutor()
	return compiler.NewCompiler(cfg, newAgent(cfg, ex), ex, compiler.WithOutput(out))
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return 1
}

func execute(ctx context.Context, args []string, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	logging.CloseAll()
	if err != nil && err.Error() != "" {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

func main() {
	// The agent shares the terminal and receives interrupts directly; the
	// cancelled context only stops tlc from treating the wait as a success.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
