// Package prompt renders the instruction prompt handed to the external
// agent and writes it to the single well-known prompt file.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-lomax/the-last-compiler/internal/config"
	"github.com/james-lomax/the-last-compiler/internal/logging"
	"github.com/james-lomax/the-last-compiler/internal/manifest"
	"github.com/james-lomax/the-last-compiler/internal/naming"
)

// ErrSpecNotFound is returned when the spec file does not exist.
var ErrSpecNotFound = errors.New("specification file not found")

// Prompt is a rendered agent prompt.
type Prompt struct {
	// Text is the full prompt: instructions followed by the verbatim spec.
	Text string

	// Module is the identifier derived from the spec file name.
	Module naming.ModuleID

	// TestStrategy records whether the spec asked for tests.
	TestStrategy bool

	// SpecPath is the spec the prompt was rendered from.
	SpecPath string

	// Path is where the prompt was written; empty until written.
	Path string
}

// HasTestStrategy reports whether spec content mentions tests. It is a
// case-insensitive substring check for "test", so words such as "latest"
// also match.
func HasTestStrategy(content string) bool {
	return strings.Contains(strings.ToLower(content), "test")
}

// Renderer builds prompts for a project layout.
type Renderer struct {
	layout config.LayoutConfig
}

// NewRenderer creates a renderer for the given layout.
func NewRenderer(layout config.LayoutConfig) *Renderer {
	return &Renderer{layout: layout}
}

// Build reads the spec and renders the prompt without writing it.
func (r *Renderer) Build(specPath string) (*Prompt, error) {
	data, err := os.ReadFile(specPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSpecNotFound, specPath)
		}
		return nil, fmt.Errorf("failed to read spec %s: %w", specPath, err)
	}
	content := string(data)

	id, err := naming.ToModuleID(specPath)
	if err != nil {
		return nil, err
	}

	testStrategy := HasTestStrategy(content)
	logging.PromptDebug("Spec %s -> module %s (test_strategy=%v)", specPath, id, testStrategy)

	entry := manifest.Entry{Command: id.CommandName(), Target: r.layout.EntryTarget(id)}
	bindings := templateData{
		ModuleName:    id.String(),
		CommandName:   id.CommandName(),
		ModuleFile:    r.layout.ModuleFile(id),
		TestFile:      r.layout.TestFile(id),
		TestStrategy:  testStrategy,
		Manifest:      r.layout.Manifest,
		Section:       r.layout.ScriptsSection,
		EntryLine:     entry.Line(),
		EntryFunction: r.layout.EntryFunction,
	}

	var buf bytes.Buffer
	if err := instructions.Execute(&buf, bindings); err != nil {
		return nil, fmt.Errorf("failed to render prompt for %s: %w", id, err)
	}
	buf.WriteString(specTrailer)
	buf.WriteString(content)

	return &Prompt{
		Text:         buf.String(),
		Module:       id,
		TestStrategy: testStrategy,
		SpecPath:     specPath,
	}, nil
}

// Render builds the prompt and writes it to the layout's prompt path,
// replacing any previous prompt. The file is synced and closed before
// Render returns.
func (r *Renderer) Render(specPath string) (*Prompt, error) {
	timer := logging.StartTimer(logging.CategoryPrompt, "Prompt render")
	defer timer.Stop()

	p, err := r.Build(specPath)
	if err != nil {
		return nil, err
	}

	path := r.layout.PromptFile()
	if err := writeFile(path, p.Text); err != nil {
		return nil, err
	}
	p.Path = path

	logging.Prompt("Wrote prompt for %s to %s (%d bytes)", p.Module, path, len(p.Text))
	return p, nil
}

func writeFile(path, text string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create prompt directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create prompt file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close prompt file: %w", cerr)
		}
	}()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("failed to write prompt file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync prompt file: %w", err)
	}
	return nil
}
