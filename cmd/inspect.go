package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/audiolibrelab/samplelog/internal/analysis"
	"github.com/audiolibrelab/samplelog/internal/csvtable"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Summarize every channel of a recorded CSV file",
	Long: `Load a CSV written by the recorder and print count, mean, standard deviation,
min, max, RMS and peak for each channel, in recording order. Without an
argument the configured output file is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := inputPath(args)

		tbl, err := csvtable.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load recording: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "=== %s ===\n", path)
		fmt.Fprintf(out, "channels: %d, rows: %d\n\n", tbl.Len(), tbl.Rows())

		return printSummaries(out, analysis.Summarize(tbl), cfg.Inspect.Precision)
	},
}

// inputPath returns the file argument or the configured output file
func inputPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return cfg.Output.File
}

func printSummaries(w io.Writer, summaries []analysis.ChannelSummary, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHANNEL\tCOUNT\tMEAN\tSTDDEV\tMIN\tMAX\tRMS\tPEAK")

	f := func(v float64) string {
		return strconv.FormatFloat(v, 'g', precision, 64)
	}
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Name, s.Count, f(s.Mean), f(s.StdDev), f(s.Min), f(s.Max), f(s.RMS), f(s.Peak))
	}
	return tw.Flush()
}
