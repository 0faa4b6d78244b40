package naming

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModuleID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ModuleID
	}{
		{"hyphenated", "foo-bar.md", "foo_bar"},
		{"no separators", "widget.md", "widget"},
		{"already underscored", "foo_bar.md", "foo_bar"},
		{"mixed separators", "a-b_c.md", "a_b_c"},
		{"digits", "v2-parser.md", "v2_parser"},
		{"path is reduced to base name", filepath.Join("specs", "deep", "foo-bar.md"), "foo_bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToModuleID(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToModuleID_Errors(t *testing.T) {
	t.Run("missing extension", func(t *testing.T) {
		_, err := ToModuleID("foo-bar.txt")
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("no extension at all", func(t *testing.T) {
		_, err := ToModuleID("foo-bar")
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("empty stem", func(t *testing.T) {
		_, err := ToModuleID(".md")
		assert.ErrorIs(t, err, ErrInvalidSpecFormat)
	})

	t.Run("disallowed characters", func(t *testing.T) {
		for _, name := range []string{"foo bar.md", "foo.bar.md", "föö.md"} {
			_, err := ToModuleID(name)
			assert.ErrorIs(t, err, ErrInvalidSpecFormat, name)
		}
	})
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "foo-bar", ToCommandName("foo_bar"))
	assert.Equal(t, "widget", ModuleID("widget").CommandName())
	assert.Equal(t, "a-b-c", ModuleID("a_b_c").CommandName())
}

func TestRoundTrip(t *testing.T) {
	// Base names here use only hyphens, so the trip back is exact.
	for _, name := range []string{"foo-bar", "widget", "a-b-c", "x1-y2", "CamelCase-thing"} {
		t.Run(name, func(t *testing.T) {
			id, err := ToModuleID(name + SpecExtension)
			require.NoError(t, err)

			assert.Equal(t, strings.ReplaceAll(name, "_", "-"), id.CommandName())
			assert.Equal(t, name+SpecExtension, ToSpecFileName(id))
			assert.Equal(t, name+SpecExtension, id.SpecFileName())
		})
	}
}

func TestRoundTrip_UnderscoreInput(t *testing.T) {
	id, err := ToModuleID("foo_bar.md")
	require.NoError(t, err)
	assert.Equal(t, "foo-bar", id.CommandName())
	assert.Equal(t, "foo-bar.md", id.SpecFileName())
}
