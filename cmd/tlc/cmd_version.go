package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/james-lomax/the-last-compiler/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tlc version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tlc version %s\n", config.Version)
	},
}
