// Package config loads tlc's optional .tlc/config.yaml.
//
// Every field has a default that reproduces the fixed file-system contract
// (prompt at bin/prompt/the_last_compiler.md, modules under tlc/, entry
// points in pyproject.toml), so a project without a config file behaves
// exactly like one with an empty config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Version is the fixed version string reported by `tlc version`.
const Version = "0.1.0"

// DefaultConfigPath is where the config file lives, relative to the
// invocation root.
var DefaultConfigPath = filepath.Join(".tlc", "config.yaml")

// Config holds all tlc configuration.
type Config struct {
	// Layout controls where prompts, modules, tests and the manifest live.
	Layout LayoutConfig `yaml:"layout"`

	// Agent configures the external code-generation agent.
	Agent AgentConfig `yaml:"agent"`

	// Runner configures test and module delegation.
	Runner RunnerConfig `yaml:"runner"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// AgentConfig configures the external agent subprocess.
type AgentConfig struct {
	// Binary is the agent executable, invoked through the shell.
	Binary string `yaml:"binary"`

	// Instruction prefixes the prompt path in the agent's command line.
	Instruction string `yaml:"instruction"`
}

// RunnerConfig configures the external test runner and module runner.
type RunnerConfig struct {
	// Test is the command prefix for running a module's tests; the test
	// file path is appended.
	Test []string `yaml:"test"`

	// Run is the command prefix for running a module; the command name and
	// passthrough arguments are appended.
	Run []string `yaml:"run"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Layout: DefaultLayout(),
		Agent: AgentConfig{
			Binary:      "claude",
			Instruction: "Follow the instructions in",
		},
		Runner: RunnerConfig{
			Test: []string{"uv", "run", "pytest"},
			Run:  []string{"uv", "run"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if bin := os.Getenv("TLC_AGENT"); bin != "" {
		c.Agent.Binary = bin
	}
	if path := os.Getenv("TLC_MANIFEST"); path != "" {
		c.Layout.Manifest = path
	}
	switch strings.ToLower(os.Getenv("TLC_DEBUG")) {
	case "1", "true", "yes", "on":
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// Validate checks that the configuration can drive a compile.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Agent.Binary) == "" {
		return fmt.Errorf("agent binary not configured (set agent.binary or TLC_AGENT)")
	}
	if len(c.Runner.Test) == 0 {
		return fmt.Errorf("runner.test must name a command")
	}
	if len(c.Runner.Run) == 0 {
		return fmt.Errorf("runner.run must name a command")
	}
	return c.Layout.Validate()
}
