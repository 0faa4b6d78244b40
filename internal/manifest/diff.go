package manifest

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders the line-level changes between two manifest versions as
// "+"/"-" prefixed lines. Unchanged lines are omitted.
func Diff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix + strings.TrimRight(line, "\r\n") + "\n")
		}
	}
	return out.String()
}
