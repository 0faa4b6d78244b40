// Package manifest registers entry points in a TOML-style project manifest.
//
// The manifest is patched as text, never parsed: everything outside the
// inserted line stays byte-for-byte identical, including comments, ordering,
// spacing and line endings.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-lomax/the-last-compiler/internal/logging"
)

// ErrManifestNotFound is returned when the manifest file does not exist.
var ErrManifestNotFound = errors.New("manifest not found")

// Entry maps a command name to a module's entry function.
type Entry struct {
	Command string // e.g. "foo-bar"
	Target  string // e.g. "tlc.foo_bar:main"
}

// Line renders the entry as it appears in the manifest.
func (e Entry) Line() string {
	return fmt.Sprintf("%s = \"%s\"", e.Command, e.Target)
}

// Patcher inserts entries into one section of one manifest file.
type Patcher struct {
	path    string
	section string
}

// NewPatcher creates a patcher for the section (e.g. "project.scripts") of
// the manifest at path.
func NewPatcher(path, section string) *Patcher {
	return &Patcher{path: path, section: section}
}

// Path returns the manifest path.
func (p *Patcher) Path() string {
	return p.path
}

// Header returns the bracketed section header.
func (p *Patcher) Header() string {
	return "[" + p.section + "]"
}

// Has reports whether the exact entry line is already in the manifest.
func (p *Patcher) Has(e Entry) (bool, error) {
	content, _, err := p.read()
	if err != nil {
		return false, err
	}
	return strings.Contains(content, e.Line()), nil
}

// Register adds the entry to the manifest. It reports whether the file was
// changed; registering an entry that is already present is a no-op.
func (p *Patcher) Register(e Entry) (bool, error) {
	content, mode, err := p.read()
	if err != nil {
		return false, err
	}

	updated, changed := Patch(content, p.Header(), e.Line())
	if !changed {
		logging.Manifest("Entry for %s already present in %s", e.Command, p.path)
		return false, nil
	}

	if err := writeAtomic(p.path, updated, mode); err != nil {
		logging.Manifest("Failed to update %s: %v", p.path, err)
		return false, err
	}

	logging.Manifest("Registered %s in %s %s", e.Line(), p.path, p.Header())
	logging.ManifestDebug("Manifest diff for %s:\n%s", p.path, Diff(content, updated))
	return true, nil
}

func (p *Patcher) read() (string, os.FileMode, error) {
	info, err := os.Stat(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", 0, fmt.Errorf("%w: %s", ErrManifestNotFound, p.path)
		}
		return "", 0, fmt.Errorf("failed to stat manifest: %w", err)
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read manifest: %w", err)
	}
	return string(data), info.Mode().Perm(), nil
}

// Patch inserts line into the section opened by header and returns the new
// content. It returns the content unchanged and false when line already
// occurs anywhere in content.
//
// With the header present, line becomes the section's last line: it goes
// immediately before the next header, or at the end of the file. Without
// it, one blank line, the header and line are appended.
func Patch(content, header, line string) (string, bool) {
	if strings.Contains(content, line) {
		return content, false
	}

	nl := "\n"
	if strings.Contains(content, "\r\n") {
		nl = "\r\n"
	}

	lines := strings.Split(content, "\n")
	start := -1
	for i, l := range lines {
		if isHeader(l, header) {
			start = i
			break
		}
	}

	if start < 0 {
		var b strings.Builder
		b.WriteString(content)
		if content != "" && !strings.HasSuffix(content, "\n") {
			b.WriteString(nl)
		}
		b.WriteString(nl + header + nl + line + nl)
		return b.String(), true
	}

	end := -1
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "[") {
			end = i
			break
		}
	}

	if end < 0 {
		if strings.HasSuffix(content, "\n") {
			return content + line + nl, true
		}
		return content + nl + line, true
	}

	cr := strings.TrimSuffix(nl, "\n")
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:end]...)
	out = append(out, line+cr)
	out = append(out, lines[end:]...)
	return strings.Join(out, "\n"), true
}

// isHeader matches a section header line, allowing trailing whitespace,
// a carriage return or a comment.
func isHeader(l, header string) bool {
	t := strings.TrimSpace(l)
	if !strings.HasPrefix(t, header) {
		return false
	}
	rest := strings.TrimSpace(t[len(header):])
	return rest == "" || strings.HasPrefix(rest, "#")
}

func writeAtomic(path, content string, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tlc-*")
	if err != nil {
		return fmt.Errorf("failed to create temp manifest: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp manifest: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp manifest: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set manifest mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace manifest: %w", err)
	}
	return nil
}
