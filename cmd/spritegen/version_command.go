package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// buildVersion is stamped at build time via -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the spritegen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "spritegen %s\n", buildVersion)
		},
	}
}
