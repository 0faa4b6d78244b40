// Package ui holds the terminal styling used by the tlc CLI.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Semantic colors
var (
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Destructive = lipgloss.Color("#e53935")
	Muted       = lipgloss.Color("#6b7280")
	Info        = lipgloss.Color("#2196F3")
)

// Styles groups the styles used across commands.
type Styles struct {
	Header lipgloss.Style
	Module lipgloss.Style
	Yes    lipgloss.Style
	No     lipgloss.Style
	Hint   lipgloss.Style
	Error  lipgloss.Style
}

// DefaultStyles returns the standard CLI styles. With NO_COLOR set every
// style renders plain text.
func DefaultStyles() Styles {
	if os.Getenv("NO_COLOR") != "" {
		plain := lipgloss.NewStyle()
		return Styles{Header: plain, Module: plain, Yes: plain, No: plain, Hint: plain, Error: plain}
	}
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(Info),
		Module: lipgloss.NewStyle().Bold(true),
		Yes:    lipgloss.NewStyle().Foreground(Success),
		No:     lipgloss.NewStyle().Foreground(Muted),
		Hint:   lipgloss.NewStyle().Foreground(Muted).Italic(true),
		Error:  lipgloss.NewStyle().Foreground(Destructive).Bold(true),
	}
}

// Row is one line of the status table.
type Row struct {
	Spec       string
	Module     string
	Compiled   bool
	Tests      bool
	Registered bool
}

var statusColumns = []string{"SPEC", "MODULE", "COMPILED", "TESTS", "REGISTERED"}

// StatusTable renders rows as an aligned table. Widths are computed on the
// unstyled text so colors never break alignment.
func (s Styles) StatusTable(rows []Row) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Spec, r.Module, yesNo(r.Compiled), yesNo(r.Tests), yesNo(r.Registered)})
	}

	widths := make([]int, len(statusColumns))
	for i, col := range statusColumns {
		widths[i] = lipgloss.Width(col)
	}
	for _, row := range cells {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(s.line(statusColumns, widths, func(int, string) lipgloss.Style { return s.Header }))
	for _, row := range cells {
		b.WriteString(s.line(row, widths, func(i int, cell string) lipgloss.Style {
			switch {
			case i == 1:
				return s.Module
			case i < 2:
				return lipgloss.NewStyle()
			case cell == "yes":
				return s.Yes
			default:
				return s.No
			}
		}))
	}
	return b.String()
}

func (s Styles) line(cells []string, widths []int, style func(int, string) lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		parts[i] = style(i, cell).Render(cell) + pad
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ") + "\n"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// RenderMarkdown renders markdown for the terminal, falling back to the raw
// text when no renderer can be built.
func RenderMarkdown(md string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md, fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
