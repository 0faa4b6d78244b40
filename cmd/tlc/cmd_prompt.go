package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/james-lomax/the-last-compiler/cmd/tlc/ui"
	"github.com/james-lomax/the-last-compiler/internal/prompt"
)

var (
	promptWrite  bool
	promptPretty bool
)

var promptCmd = &cobra.Command{
	Use:   "prompt <spec-file>",
	Short: "Show the prompt a spec would be compiled with",
	Long: `Renders the agent prompt for a spec without running the agent.

With --write the prompt is also written to the prompt file, exactly as
compile would before invoking the agent.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().BoolVar(&promptWrite, "write", false, "Also write the prompt file")
	promptCmd.Flags().BoolVar(&promptPretty, "pretty", false, "Render the prompt as formatted markdown")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	r := prompt.NewRenderer(cfg.Layout)

	var (
		p   *prompt.Prompt
		err error
	)
	if promptWrite {
		p, err = r.Render(args[0])
	} else {
		p, err = r.Build(args[0])
	}
	if err != nil {
		return err
	}

	out := p.Text
	if promptPretty {
		rendered, rerr := ui.RenderMarkdown(p.Text, 100)
		if rerr != nil {
			logger.Sugar().Warnf("Falling back to raw prompt: %v", rerr)
		}
		out = rendered
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if p.Path != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote prompt for %s to %s\n", p.Module, p.Path)
	}
	return nil
}
