// Package compiler sequences the spec-to-module pipeline: render the
// prompt, run the agent, register the entry point, and delegate test and
// run requests to external runners.
package compiler

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/james-lomax/the-last-compiler/internal/agent"
	"github.com/james-lomax/the-last-compiler/internal/config"
	"github.com/james-lomax/the-last-compiler/internal/logging"
	"github.com/james-lomax/the-last-compiler/internal/manifest"
	"github.com/james-lomax/the-last-compiler/internal/naming"
	"github.com/james-lomax/the-last-compiler/internal/prompt"
	"github.com/james-lomax/the-last-compiler/internal/tactile"
)

// Compiler runs compile, test and run requests against one project layout.
type Compiler struct {
	layout   config.LayoutConfig
	runner   config.RunnerConfig
	renderer *prompt.Renderer
	patcher  *manifest.Patcher
	agent    agent.Agent
	executor tactile.Executor
	out      io.Writer
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithOutput sets where progress messages are written (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(c *Compiler) { c.out = w }
}

// NewCompiler creates a compiler. The agent produces modules; the executor
// runs the test runner and compiled modules.
func NewCompiler(cfg *config.Config, a agent.Agent, executor tactile.Executor, opts ...Option) *Compiler {
	c := &Compiler{
		layout:   cfg.Layout,
		runner:   cfg.Runner,
		renderer: prompt.NewRenderer(cfg.Layout),
		patcher:  manifest.NewPatcher(cfg.Layout.ManifestFile(), cfg.Layout.ScriptsSection),
		agent:    a,
		executor: executor,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Entry returns the manifest entry registered for a module.
func (c *Compiler) Entry(id naming.ModuleID) manifest.Entry {
	return manifest.Entry{Command: id.CommandName(), Target: c.layout.EntryTarget(id)}
}

// Compile renders the prompt for specPath, runs the agent and, if the agent
// succeeds, registers the module in the manifest.
func (c *Compiler) Compile(ctx context.Context, specPath string) (*Result, error) {
	res := &Result{
		RunID:    uuid.NewString(),
		SpecPath: specPath,
		State:    StateStart,
		History:  []State{StateStart},
	}
	log := logging.Get(logging.CategoryPipeline).With("run_id", res.RunID, "spec", specPath)
	timer := logging.StartTimer(logging.CategoryPipeline, "Compile "+specPath)
	defer timer.Stop()

	p, err := c.renderer.Render(specPath)
	if err != nil {
		log.Info("Prompt render failed: %v", err)
		return res, err
	}
	res.Prompt = p
	res.Module = p.Module
	res.advance(StateRendered)
	log.Info("Prompt for %s written to %s", p.Module, p.Path)
	c.printf("Generated prompt for %s", p.Module)

	if cl, ok := c.agent.(interface{ CommandLine(string) string }); ok {
		c.printf("Running command: %s", cl.CommandLine(p.Path))
	}
	code, err := c.agent.Invoke(ctx, p.Path)
	res.AgentExitCode = code
	res.advance(StateInvoked)
	if err != nil {
		res.advance(StateFailed)
		log.Info("Agent could not be run: %v", err)
		return res, err
	}
	if code != 0 {
		res.advance(StateFailed)
		log.Info("Agent exited with code %d; manifest left untouched", code)
		return res, &AgentFailureError{Module: p.Module, Code: code}
	}

	entry := c.Entry(p.Module)
	changed, err := c.patcher.Register(entry)
	if err != nil {
		res.advance(StateFailed)
		log.Info("Module %s compiled but not registered: %v", p.Module, err)
		return res, fmt.Errorf("module %s was generated but could not be registered: %w", p.Module, err)
	}
	res.ManifestChanged = changed
	res.advance(StateRegistered)

	if changed {
		c.printf("Updated %s with %s script entry", c.patcher.Path(), entry.Command)
	} else {
		c.printf("Script entry for %s already exists in %s", entry.Command, c.patcher.Path())
	}
	c.printf("Successfully compiled %s to %s", specPath, c.layout.ModuleFile(p.Module))
	c.printf("You can now run the module with: %s", tactile.Command{
		Binary:    c.runner.Run[0],
		Arguments: append(append([]string{}, c.runner.Run[1:]...), entry.Command),
	}.CommandString())

	log.Info("Compile finished: %v", res.History)
	return res, nil
}

// IsCompiled reports whether the module file for specPath exists. Content
// and age are not considered.
func (c *Compiler) IsCompiled(specPath string) (naming.ModuleID, bool, error) {
	id, err := naming.ToModuleID(specPath)
	if err != nil {
		return "", false, err
	}
	return id, fileExists(c.layout.ModulePath(id)), nil
}

// EnsureCompiled compiles specPath unless its module file already exists.
func (c *Compiler) EnsureCompiled(ctx context.Context, specPath string) (naming.ModuleID, error) {
	id, compiled, err := c.IsCompiled(specPath)
	if err != nil {
		return "", err
	}
	if compiled {
		logging.PipelineDebug("%s already compiled at %s", id, c.layout.ModulePath(id))
		return id, nil
	}

	logging.Pipeline("%s is not compiled yet; compiling %s", id, specPath)
	if _, err := c.Compile(ctx, specPath); err != nil {
		return id, err
	}
	return id, nil
}

// Test ensures specPath is compiled and runs its companion tests, returning
// the test runner's exit code.
func (c *Compiler) Test(ctx context.Context, specPath string) (int, error) {
	id, err := c.EnsureCompiled(ctx, specPath)
	if err != nil {
		return 1, err
	}

	testPath := c.layout.TestPath(id)
	if !fileExists(testPath) {
		c.printf("No tests found for %s (expected %s)", id, c.layout.TestFile(id))
		return 1, fmt.Errorf("%w: %s", ErrNoTests, c.layout.TestFile(id))
	}

	return c.delegate(ctx, c.runner.Test, c.layout.TestFile(id))
}

// Run ensures specPath is compiled and runs the module's command with args.
func (c *Compiler) Run(ctx context.Context, specPath string, args []string) (int, error) {
	id, err := c.EnsureCompiled(ctx, specPath)
	if err != nil {
		return 1, err
	}
	return c.delegate(ctx, c.runner.Run, append([]string{id.CommandName()}, args...)...)
}

func (c *Compiler) delegate(ctx context.Context, prefix []string, args ...string) (int, error) {
	cmd := tactile.Command{
		Binary:    prefix[0],
		Arguments: append(append([]string{}, prefix[1:]...), args...),
	}
	logging.Pipeline("Delegating: %s", cmd.CommandString())

	result, err := c.executor.Execute(ctx, cmd)
	if err != nil {
		return 1, err
	}
	if result.IsNonZeroExit() {
		logging.PipelineDebug("%s exited with code %d", cmd.Binary, result.ExitCode)
	}
	if result.Interrupted && result.ExitCode == 0 {
		return 1, nil
	}
	return result.ExitCode, nil
}

// New writes a placeholder spec file. An existing file is left unchanged.
func (c *Compiler) New(specFile string) (naming.ModuleID, error) {
	id, err := naming.ToModuleID(specFile)
	if err != nil {
		return "", err
	}

	body, err := renderPlaceholder(id)
	if err != nil {
		return id, err
	}

	f, err := os.OpenFile(specFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return id, fmt.Errorf("%w: %s", ErrAlreadyExists, specFile)
		}
		return id, fmt.Errorf("failed to create %s: %w", specFile, err)
	}
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		return id, fmt.Errorf("failed to write %s: %w", specFile, err)
	}
	if err := f.Close(); err != nil {
		return id, fmt.Errorf("failed to close %s: %w", specFile, err)
	}

	logging.Pipeline("Created spec %s for module %s", specFile, id)
	c.printf("Created %s for module %s", specFile, id)
	return id, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
