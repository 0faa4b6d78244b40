package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/james-lomax/the-last-compiler/internal/naming"
)

// LayoutConfig describes the project's file-system contract. All paths are
// relative to the invocation root and use forward slashes.
type LayoutConfig struct {
	// PromptPath is the single well-known file the agent reads.
	PromptPath string `yaml:"prompt_path"`

	// ModuleDir holds compiled modules (<ModuleDir>/<module><ModuleExt>).
	ModuleDir string `yaml:"module_dir"`

	// TestsDir holds companion tests (<TestsDir>/test_<module><ModuleExt>).
	TestsDir string `yaml:"tests_dir"`

	// ModuleExt is the compiled module's file extension.
	ModuleExt string `yaml:"module_ext"`

	// Package is the import path prefix used in manifest entry targets.
	Package string `yaml:"package"`

	// EntryFunction is the callable every module exposes.
	EntryFunction string `yaml:"entry_function"`

	// Manifest is the project manifest patched after a successful compile.
	Manifest string `yaml:"manifest"`

	// ScriptsSection is the manifest section holding entry points.
	ScriptsSection string `yaml:"scripts_section"`
}

// DefaultLayout returns the layout of a uv-managed Python project.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		PromptPath:     "bin/prompt/the_last_compiler.md",
		ModuleDir:      "tlc",
		TestsDir:       "tlc/tests",
		ModuleExt:      ".py",
		Package:        "tlc",
		EntryFunction:  "main",
		Manifest:       "pyproject.toml",
		ScriptsSection: "project.scripts",
	}
}

// Validate checks that every layout field is set.
func (l LayoutConfig) Validate() error {
	fields := []struct{ name, value string }{
		{"prompt_path", l.PromptPath},
		{"module_dir", l.ModuleDir},
		{"tests_dir", l.TestsDir},
		{"package", l.Package},
		{"entry_function", l.EntryFunction},
		{"manifest", l.Manifest},
		{"scripts_section", l.ScriptsSection},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("layout.%s must not be empty", f.name)
		}
	}
	if strings.ContainsAny(l.ScriptsSection, "[]") {
		return fmt.Errorf("layout.scripts_section %q must not include brackets", l.ScriptsSection)
	}
	return nil
}

// ModuleFile returns the slash-separated module path, as shown to the agent.
func (l LayoutConfig) ModuleFile(id naming.ModuleID) string {
	return strings.TrimSuffix(l.ModuleDir, "/") + "/" + string(id) + l.ModuleExt
}

// TestFile returns the slash-separated companion test path.
func (l LayoutConfig) TestFile(id naming.ModuleID) string {
	return strings.TrimSuffix(l.TestsDir, "/") + "/test_" + string(id) + l.ModuleExt
}

// ModulePath returns ModuleFile in the platform's path syntax.
func (l LayoutConfig) ModulePath(id naming.ModuleID) string {
	return filepath.FromSlash(l.ModuleFile(id))
}

// TestPath returns TestFile in the platform's path syntax.
func (l LayoutConfig) TestPath(id naming.ModuleID) string {
	return filepath.FromSlash(l.TestFile(id))
}

// PromptFile returns the prompt path in the platform's path syntax.
func (l LayoutConfig) PromptFile() string {
	return filepath.FromSlash(l.PromptPath)
}

// ManifestFile returns the manifest path in the platform's path syntax.
func (l LayoutConfig) ManifestFile() string {
	return filepath.FromSlash(l.Manifest)
}

// EntryTarget returns the callable a manifest entry points at,
// e.g. "tlc.foo_bar:main".
func (l LayoutConfig) EntryTarget(id naming.ModuleID) string {
	return l.Package + "." + string(id) + ":" + l.EntryFunction
}
