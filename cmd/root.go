package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/audiolibrelab/samplelog/internal/config"

	"github.com/spf13/cobra"
)

var (
	cfg          *config.Config
	cfgFile      string
	verboseLevel int
)

var rootCmd = &cobra.Command{
	Use:   "samplelog",
	Short: "Inspect per-sample diagnostics recorded from audio plugins",
	Long: `samplelog works with the CSV files written by the samplelog recorder.

A plugin records named values (input sample, envelope, gain, ...) for every
processed sample and flushes them to CSV on shutdown. This tool summarizes and
extracts those channels, and runs a demo compressor to produce an example file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Configure slog based on verbose level
		setupLogging(verboseLevel)

		var err error
		if cfgFile != "" {
			// An explicit config file must exist
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadOrDefault(config.DefaultPath())
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		slog.Debug("Configuration loaded", "output_file", cfg.Output.File)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/samplelog.yaml)")
	rootCmd.PersistentFlags().IntVarP(&verboseLevel, "verbose", "v", 0, "verbose level: 0=info, 1=debug")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging configures slog based on the verbose level
func setupLogging(level int) {
	slogLevel := slog.LevelInfo
	if level >= 1 {
		slogLevel = slog.LevelDebug
	}

	// Configure text handler for clean terminal output
	opts := &slog.HandlerOptions{
		Level: slogLevel,
	}
	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
}
