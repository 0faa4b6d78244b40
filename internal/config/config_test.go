package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/james-lomax/the-last-compiler/internal/naming"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TLC_AGENT", "")
	t.Setenv("TLC_MANIFEST", "")
	t.Setenv("TLC_DEBUG", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "claude", cfg.Agent.Binary)
	assert.Equal(t, "bin/prompt/the_last_compiler.md", cfg.Layout.PromptPath)
	assert.Equal(t, "pyproject.toml", cfg.Layout.Manifest)
	assert.Equal(t, "project.scripts", cfg.Layout.ScriptsSection)
	assert.Equal(t, []string{"uv", "run", "pytest"}, cfg.Runner.Test)
	assert.Equal(t, []string{"uv", "run"}, cfg.Runner.Run)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverridesSections(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "agent:\n  binary: my-agent\nrunner:\n  test: [pytest, -q]\nlogging:\n  debug_mode: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "my-agent", loaded.Agent.Binary)
	assert.Equal(t, "Follow the instructions in", loaded.Agent.Instruction)
	assert.Equal(t, []string{"pytest", "-q"}, loaded.Runner.Test)
	assert.Equal(t, []string{"uv", "run"}, loaded.Runner.Run)
	assert.True(t, loaded.Logging.DebugMode)
	assert.Equal(t, DefaultLayout(), loaded.Layout)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  module_dir: src/gen\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "src/gen", cfg.Layout.ModuleDir)
	assert.Equal(t, "pyproject.toml", cfg.Layout.Manifest)
	assert.Equal(t, "claude", cfg.Agent.Binary)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agent: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidLayout(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  scripts_section: \"[project.scripts]\"\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "scripts_section")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("TLC_AGENT replaces the binary", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TLC_AGENT", "codex")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "codex", cfg.Agent.Binary)
	})

	t.Run("TLC_MANIFEST replaces the manifest path", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TLC_MANIFEST", "sub/pyproject.toml")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "sub/pyproject.toml", cfg.Layout.Manifest)
	})

	t.Run("TLC_DEBUG enables debug mode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TLC_DEBUG", "true")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Logging.DebugMode)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("unrecognised TLC_DEBUG is ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TLC_DEBUG", "maybe")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Logging.DebugMode)
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Agent.Binary = "  "
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Runner.Run = nil
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Layout.Manifest = ""
	assert.ErrorContains(t, cfg.Validate(), "layout.manifest")
}

func TestLayoutPaths(t *testing.T) {
	l := DefaultLayout()
	id := naming.ModuleID("foo_bar")

	assert.Equal(t, "tlc/foo_bar.py", l.ModuleFile(id))
	assert.Equal(t, "tlc/tests/test_foo_bar.py", l.TestFile(id))
	assert.Equal(t, filepath.Join("tlc", "foo_bar.py"), l.ModulePath(id))
	assert.Equal(t, filepath.Join("tlc", "tests", "test_foo_bar.py"), l.TestPath(id))
	assert.Equal(t, filepath.Join("bin", "prompt", "the_last_compiler.md"), l.PromptFile())
	assert.Equal(t, "tlc.foo_bar:main", l.EntryTarget(id))
}

func TestLoggingConfig_Options(t *testing.T) {
	c := LoggingConfig{DebugMode: true, Categories: map[string]bool{"manifest": false}}

	opts := c.Options()
	assert.True(t, opts.DebugMode)
	assert.Equal(t, c.Categories, opts.Categories)
}
