package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spritegen/internal/services/ffmpeg"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported export formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			formats := ffmpeg.Formats()
			rows := make([][]string, 0, len(formats))
			for _, format := range formats {
				rows = append(rows, []string{format, ffmpeg.Describe(format)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]tableColumn{{Title: "Format"}, {Title: "Notes"}}, rows))
			fmt.Fprintln(out, "caf is derived automatically from aiff exports when afconvert is available.")
		},
	}
}
