package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/james-lomax/the-last-compiler/cmd/tlc/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status [pattern...]",
	Short: "Show which specs are compiled, tested and registered",
	Long: `Lists spec files and what exists for each of them on disk.

Patterns are doublestar globs and default to *.md.

Example:
  tlc status
  tlc status 'specs/**/*.md'`,
	RunE: showStatus,
}

func showStatus(cmd *cobra.Command, args []string) error {
	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"*.md"}
	}

	statuses, err := newCompiler(cmd.OutOrStdout()).Status(patterns)
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	if len(statuses) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), styles.Hint.Render("No spec files found."))
		return nil
	}

	rows := make([]ui.Row, 0, len(statuses))
	for _, st := range statuses {
		rows = append(rows, ui.Row{
			Spec:       st.Spec,
			Module:     st.Module.String(),
			Compiled:   st.Compiled,
			Tests:      st.HasTests,
			Registered: st.Registered,
		})
	}
	fmt.Fprint(cmd.OutOrStdout(), styles.StatusTable(rows))
	return nil
}
