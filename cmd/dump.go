package cmd

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/audiolibrelab/samplelog/internal/csvtable"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Print selected channels of a recorded CSV file",
	Long: `Load a CSV written by the recorder and print its channels as CSV or YAML.
Use --channel to keep only some channels, in the order given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channels, _ := cmd.Flags().GetString("channel")
		format, _ := cmd.Flags().GetString("format")

		tbl, err := csvtable.ReadFile(inputPath(args))
		if err != nil {
			return fmt.Errorf("failed to load recording: %w", err)
		}

		if channels != "" {
			names := strings.Split(channels, ",")
			for i := range names {
				names[i] = strings.TrimSpace(names[i])
				if !tbl.Has(names[i]) {
					return fmt.Errorf("channel %q not found (available: %s)", names[i], strings.Join(tbl.Names(), ", "))
				}
			}
			tbl = tbl.Select(names...)
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(format) {
		case "csv":
			return csvtable.Write(out, tbl)
		case "yaml":
			data, err := yaml.Marshal(tbl.Columns())
			if err != nil {
				return fmt.Errorf("error marshaling channels: %w", err)
			}
			fmt.Fprint(out, string(data))
			return nil
		default:
			return fmt.Errorf("unknown format: '%s' (valid: csv, yaml)", format)
		}
	},
}

func init() {
	dumpCmd.Flags().StringP("channel", "c", "", "comma-separated channels to keep (default: all)")
	dumpCmd.Flags().StringP("format", "f", "csv", "output format: csv or yaml")
}
