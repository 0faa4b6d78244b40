package compiler

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/james-lomax/the-last-compiler/internal/manifest"
	"github.com/james-lomax/the-last-compiler/internal/naming"
)

// ModuleStatus summarizes what exists on disk for one spec file.
type ModuleStatus struct {
	Spec       string
	Module     naming.ModuleID
	Compiled   bool
	HasTests   bool
	Registered bool
}

// Status reports the state of every spec file matched by patterns. Files
// whose names yield no module identifier are skipped, as is the rendered
// prompt file.
func (c *Compiler) Status(patterns []string) ([]ModuleStatus, error) {
	seen := make(map[string]bool)
	var specs []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			if seen[m] || m == filepath.Clean(c.layout.PromptFile()) {
				continue
			}
			seen[m] = true
			specs = append(specs, m)
		}
	}
	sort.Strings(specs)

	manifestMissing := false
	statuses := make([]ModuleStatus, 0, len(specs))
	for _, spec := range specs {
		id, err := naming.ToModuleID(spec)
		if err != nil {
			continue
		}
		if !fileExists(spec) {
			continue
		}

		st := ModuleStatus{
			Spec:     spec,
			Module:   id,
			Compiled: fileExists(c.layout.ModulePath(id)),
			HasTests: fileExists(c.layout.TestPath(id)),
		}
		if !manifestMissing {
			st.Registered, err = c.patcher.Has(c.Entry(id))
			if errors.Is(err, manifest.ErrManifestNotFound) {
				manifestMissing = true
			} else if err != nil {
				return nil, err
			}
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
