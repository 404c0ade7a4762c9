package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"spritegen/internal/ffprobe"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "inspect <files...>",
		Short: "Probe input files and report their audio layout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.load()
			if err != nil {
				return err
			}

			results := make([]ffprobe.Result, 0, len(args))
			for _, path := range args {
				result, err := ffprobe.Inspect(cmd.Context(), cfg.Tools.FFprobe, path)
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			if jsonOut {
				docs := make([]json.RawMessage, 0, len(results))
				for _, result := range results {
					docs = append(docs, json.RawMessage(result.RawJSON()))
				}
				return writeJSON(cmd, docs)
			}

			rows := make([][]string, 0, len(results))
			for i, result := range results {
				rows = append(rows, inspectRow(args[i], result))
			}
			columns := []tableColumn{
				{Title: "File"},
				{Title: "Codec"},
				{Title: "Duration (s)", Right: true},
				{Title: "Sample rate", Right: true},
				{Title: "Channels", Right: true},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(columns, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit raw ffprobe JSON")
	return cmd
}

func inspectRow(path string, result ffprobe.Result) []string {
	duration := fmt.Sprintf("%.3f", result.DurationSeconds())
	codec, rate, channels := "-", "-", "-"
	if stream, ok := result.FirstAudioStream(); ok {
		if stream.CodecName != "" {
			codec = stream.CodecName
		}
		if hz := stream.SampleRateHz(); hz > 0 {
			rate = strconv.Itoa(hz)
		}
		if stream.Channels > 0 {
			channels = strconv.Itoa(stream.Channels)
		}
	}
	return []string{filepath.Base(path), codec, duration, rate, channels}
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
