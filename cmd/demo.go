package cmd

import (
	"fmt"
	"log/slog"

	"github.com/audiolibrelab/samplelog/internal/dsp"
	"github.com/audiolibrelab/samplelog/internal/recorder"

	"github.com/spf13/cobra"
)

// demoBlockSize mimics the host buffer size a plugin would be called with
const demoBlockSize = 512

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Record a demo compressor run to CSV",
	Long: `Run a feed-forward compressor over a synthetic sine burst, recording the
input sample, envelope, gain and output for every sample the way an
instrumented plugin would, then flush the recording to the output file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		samples, _ := cmd.Flags().GetInt("samples")
		stopAfter, _ := cmd.Flags().GetInt64("stop-after")

		if output != "" {
			cfg.Output.File = output
		}
		if samples <= 0 {
			samples = cfg.Demo.SampleRate / 10
		}

		rec := recorder.FromConfig(cfg)
		rec.SetLogger(slog.Default())
		if stopAfter >= 0 {
			rec.SetStopAfter(uint64(stopAfter))
		}

		if !recorder.Enabled {
			slog.Warn("Recording is compiled out (samplelog_disabled), no file will be written")
		}

		comp, err := dsp.NewCompressor(dsp.Settings{
			SampleRate: cfg.Demo.SampleRate,
			Threshold:  cfg.Demo.Threshold,
			Ratio:      cfg.Demo.Ratio,
			AttackMs:   cfg.Demo.AttackMs,
			ReleaseMs:  cfg.Demo.ReleaseMs,
		})
		if err != nil {
			return fmt.Errorf("failed to create compressor: %w", err)
		}
		comp.SetProbe(rec)

		signal := dsp.SineBurst(cfg.Demo.SampleRate, cfg.Demo.Frequency, samples, 0.2, 1.0)
		slog.Info("Demo started", "samples", samples, "output", rec.OutputFile())

		for start := 0; start < len(signal); start += demoBlockSize {
			end := min(start+demoBlockSize, len(signal))
			if err := comp.Process(signal[start:end]); err != nil {
				return fmt.Errorf("processing failed: %w", err)
			}
		}

		if err := rec.Flush(); err != nil {
			return fmt.Errorf("failed to flush recording: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d samples to %s\n", rec.SamplesSeen(), rec.OutputFile())
		return nil
	},
}

func init() {
	demoCmd.Flags().StringP("output", "o", "", "output file (overrides config)")
	demoCmd.Flags().IntP("samples", "n", 0, "number of samples to process (default: 100ms at the configured sample rate)")
	demoCmd.Flags().Int64("stop-after", -1, "stop recording after this many samples (overrides config)")
}
