// Package naming converts between spec file names and module identifiers.
//
// A spec file "foo-bar.md" compiles to the module "foo_bar" (the on-disk
// file name) which is exposed as the command "foo-bar". The mapping is a
// mechanical character substitution, so the three forms can always be
// derived from one another.
package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// SpecExtension is the file extension every spec file carries.
const SpecExtension = ".md"

var (
	// ErrInvalidName is returned when a file name lacks the spec extension.
	ErrInvalidName = errors.New("invalid spec file name")

	// ErrInvalidSpecFormat is returned when no module identifier can be
	// derived from a spec file name.
	ErrInvalidSpecFormat = errors.New("invalid spec format")
)

// ModuleID is the underscore-joined module identifier, e.g. "foo_bar".
type ModuleID string

// String returns the underscore form.
func (m ModuleID) String() string {
	return string(m)
}

// CommandName returns the hyphen-joined form used as the command name.
func (m ModuleID) CommandName() string {
	return ToCommandName(m)
}

// SpecFileName returns the spec file name the identifier was derived from.
func (m ModuleID) SpecFileName() string {
	return ToSpecFileName(m)
}

// ToModuleID derives the module identifier from a spec file name or path.
// Only the base name is considered.
func ToModuleID(fileName string) (ModuleID, error) {
	base := filepath.Base(fileName)
	if !strings.HasSuffix(base, SpecExtension) {
		return "", fmt.Errorf("%w: %q does not end in %s", ErrInvalidName, fileName, SpecExtension)
	}

	stem := strings.TrimSuffix(base, SpecExtension)
	if stem == "" {
		return "", fmt.Errorf("%w: %q has an empty name", ErrInvalidSpecFormat, fileName)
	}
	for _, r := range stem {
		if !isIdentRune(r) {
			return "", fmt.Errorf("%w: %q contains %q (allowed: letters, digits, '_' and '-')",
				ErrInvalidSpecFormat, fileName, r)
		}
	}

	return ModuleID(strings.ReplaceAll(stem, "-", "_")), nil
}

// ToCommandName maps a module identifier to its command name.
func ToCommandName(id ModuleID) string {
	return strings.ReplaceAll(string(id), "_", "-")
}

// ToSpecFileName maps a module identifier back to its spec file name.
func ToSpecFileName(id ModuleID) string {
	return ToCommandName(id) + SpecExtension
}

func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}
