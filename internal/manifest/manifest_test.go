package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "[project.scripts]"

var fooBar = Entry{Command: "foo-bar", Target: "tlc.foo_bar:main"}

func TestEntryLine(t *testing.T) {
	assert.Equal(t, `foo-bar = "tlc.foo_bar:main"`, fooBar.Line())
}

func TestPatch(t *testing.T) {
	line := fooBar.Line()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "appends to the end of an existing final section",
			content: "[project]\nname = \"tlc\"\n\n[project.scripts]\ntlc = \"tlc.the_last_compiler:main\"\n",
			want:    "[project]\nname = \"tlc\"\n\n[project.scripts]\ntlc = \"tlc.the_last_compiler:main\"\n" + line + "\n",
		},
		{
			name:    "inserts immediately before the following header",
			content: "[project.scripts]\na = \"tlc.a:main\"\n\n[tool.uv]\ndev = true\n",
			want:    "[project.scripts]\na = \"tlc.a:main\"\n\n" + line + "\n[tool.uv]\ndev = true\n",
		},
		{
			name:    "inserts directly before an adjacent header",
			content: "[project.scripts]\na = \"tlc.a:main\"\n[tool.uv]\n",
			want:    "[project.scripts]\na = \"tlc.a:main\"\n" + line + "\n[tool.uv]\n",
		},
		{
			name:    "empty section",
			content: "[project.scripts]\n\n[tool.uv]\n",
			want:    "[project.scripts]\n\n" + line + "\n[tool.uv]\n",
		},
		{
			name:    "header at end of file without newline",
			content: "[project]\n[project.scripts]",
			want:    "[project]\n[project.scripts]\n" + line,
		},
		{
			name:    "last entry without trailing newline",
			content: "[project.scripts]\na = \"tlc.a:main\"",
			want:    "[project.scripts]\na = \"tlc.a:main\"\n" + line,
		},
		{
			name:    "trailing blank lines at end of file stay before the entry",
			content: "[project.scripts]\na = \"tlc.a:main\"\n\n",
			want:    "[project.scripts]\na = \"tlc.a:main\"\n\n" + line + "\n",
		},
		{
			name:    "missing section is appended after one blank line",
			content: "[project]\nname = \"tlc\"\n",
			want:    "[project]\nname = \"tlc\"\n\n" + header + "\n" + line + "\n",
		},
		{
			name:    "missing section with unterminated last line",
			content: "[project]\nname = \"tlc\"",
			want:    "[project]\nname = \"tlc\"\n\n" + header + "\n" + line + "\n",
		},
		{
			name:    "empty manifest",
			content: "",
			want:    "\n" + header + "\n" + line + "\n",
		},
		{
			name:    "nested section name is not the scripts section",
			content: "[project.scripts.extra]\nx = 1\n",
			want:    "[project.scripts.extra]\nx = 1\n\n" + header + "\n" + line + "\n",
		},
		{
			name:    "header with trailing comment",
			content: "[project.scripts] # entry points\na = \"tlc.a:main\"\n",
			want:    "[project.scripts] # entry points\na = \"tlc.a:main\"\n" + line + "\n",
		},
		{
			name:    "CRLF line endings are preserved",
			content: "[project.scripts]\r\na = \"tlc.a:main\"\r\n\r\n[tool.uv]\r\n",
			want:    "[project.scripts]\r\na = \"tlc.a:main\"\r\n\r\n" + line + "\r\n[tool.uv]\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Patch(tt.content, header, line)
			assert.True(t, changed)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Patch() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatch_AlreadyPresentIsNoop(t *testing.T) {
	content := "[project.scripts]\n" + fooBar.Line() + "\n"
	got, changed := Patch(content, header, fooBar.Line())
	assert.False(t, changed)
	assert.Equal(t, content, got)
}

func TestPatch_PreservesBytesOutsideSection(t *testing.T) {
	before := "# top comment\n[project]\nname   =   \"tlc\"   # odd spacing\n\n[project.scripts]\nb = \"tlc.b:main\"\na = \"tlc.a:main\"\n\n[tool.other]\nkey = [\n  1,\n]\n"
	after, changed := Patch(before, header, fooBar.Line())
	require.True(t, changed)

	beforeLines := strings.Split(before, "\n")
	afterLines := strings.Split(after, "\n")
	require.Len(t, afterLines, len(beforeLines)+1)

	// Only one line is added, directly before the next header (index 8).
	insertAt := 8
	assert.Equal(t, beforeLines[:insertAt], afterLines[:insertAt])
	assert.Equal(t, fooBar.Line(), afterLines[insertAt])
	assert.Equal(t, beforeLines[insertAt:], afterLines[insertAt+1:])
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func TestRegister_Idempotent(t *testing.T) {
	path := writeManifest(t, "[project]\nname = \"tlc\"\n")
	p := NewPatcher(path, "project.scripts")

	changed, err := p.Register(fooBar)
	require.NoError(t, err)
	assert.True(t, changed)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err = p.Register(fooBar)
	require.NoError(t, err)
	assert.False(t, changed)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("second Register changed the manifest (-first +second):\n%s", diff)
	}
	assert.Equal(t, 1, strings.Count(string(second), fooBar.Line()))
}

func TestRegister_KeepsFileMode(t *testing.T) {
	path := writeManifest(t, "")
	_, err := NewPatcher(path, "project.scripts").Register(fooBar)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestRegister_MissingManifest(t *testing.T) {
	p := NewPatcher(filepath.Join(t.TempDir(), "pyproject.toml"), "project.scripts")

	_, err := p.Register(fooBar)
	assert.ErrorIs(t, err, ErrManifestNotFound)

	_, err = p.Has(fooBar)
	assert.ErrorIs(t, err, ErrManifestNotFound)
}

func TestHas(t *testing.T) {
	path := writeManifest(t, "[project.scripts]\n")
	p := NewPatcher(path, "project.scripts")

	has, err := p.Has(fooBar)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = p.Register(fooBar)
	require.NoError(t, err)

	has, err = p.Has(fooBar)
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "[project.scripts]", p.Header())
	assert.Equal(t, path, p.Path())
}

func TestDiff(t *testing.T) {
	before := "[project.scripts]\na = \"tlc.a:main\"\n\n[tool.uv]\n"
	after, changed := Patch(before, header, fooBar.Line())
	require.True(t, changed)

	assert.Equal(t, "+"+fooBar.Line()+"\n", Diff(before, after))
	assert.Empty(t, Diff(before, before))
}
