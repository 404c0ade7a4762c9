package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spritegen/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check availability of the external tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.load()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Runtime(
				cfg.Tools.FFmpeg, cfg.Tools.FFprobe, cfg.Tools.Afconvert))

			colorize := shouldColorize(cmd.OutOrStdout())
			rows := make([][]string, 0, len(statuses))
			var missing []string
			for _, status := range statuses {
				state := paint("ok", ansiGreen, colorize)
				note := status.Description
				if !status.Available {
					color := ansiYellow
					if !status.Optional {
						color = ansiRed
						missing = append(missing, status.Name)
					}
					state = paint("missing", color, colorize)
					note = status.Detail
				}
				requirement := "required"
				if status.Optional {
					requirement = "optional"
				}
				rows = append(rows, []string{status.Name, state, requirement, status.Command, note})
			}

			columns := []tableColumn{
				{Title: "Tool"},
				{Title: "Status"},
				{Title: "Requirement"},
				{Title: "Command"},
				{Title: "Notes"},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(columns, rows))

			if len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
