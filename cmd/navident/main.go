package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"navident/internal/app"
)

func newRootCmd(config *app.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "navident",
		Short: "Navigation aid Morse identifier keyer",
		Long: `Navigation aid Morse identifier keyer.

Decodes the packed station identifier of each navigation receiver (VOR, ADF,
ILS), keys it as Morse at 7 words per minute frame by frame, and publishes the
gated on/off signal as ACP_BEEP_IDENT_<RADIO> variables. Every change of a
published signal is written to a daily keying trace.

Example usage:
  navident --scenario scenario.yaml --frame-rate 30 --duration 2m
  navident --realtime --verbose`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}

			application := app.NewApplication(*config)
			return application.Start()
		},
	}

	rootCmd.Flags().StringVarP(&config.ScenarioFile, "scenario", "c", "", "YAML scenario file (built-in scenario if empty)")
	rootCmd.Flags().IntVarP(&config.FrameRate, "frame-rate", "r", app.DefaultFrameRate, "Simulation frames per second")
	rootCmd.Flags().DurationVarP(&config.Duration, "duration", "t", app.DefaultDuration, "Simulated time to run (0 runs until interrupted in real time)")
	rootCmd.Flags().BoolVar(&config.RealTime, "realtime", false, "Step frames with wall-clock time instead of as fast as possible")
	rootCmd.Flags().Float64Var(&config.WPM, "wpm", app.DefaultWPM, "Keying speed in words per minute")
	rootCmd.Flags().BoolVar(&config.Calibrate, "calibrate", false, "Key the PARIS reference word instead of station identifiers")
	rootCmd.Flags().StringVarP(&config.LogDir, "log-dir", "l", "./logs", "Keying trace directory")
	rootCmd.Flags().BoolVarP(&config.LogRotateUTC, "utc", "u", true, "Use UTC for trace rotation")
	rootCmd.Flags().IntVar(&config.MaxLogDays, "max-log-days", app.DefaultMaxDays, "Remove keying traces older than this many days (0 keeps all)")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	return rootCmd
}

func main() {
	var config app.Config

	if err := newRootCmd(&config).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
