package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appName = "mtcorr"
	version = "v0.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "On-the-fly multi-tau correlation of recorded timeseries",
		Version: version,
		Long: `mtcorr computes time correlation functions <a(t)b(t+t')> from recorded
timeseries tables using a bounded-memory multi-tau correlator. Lag times
grow exponentially across a block hierarchy, so arbitrarily long streams
fit in fixed memory with no O(T^2) pass.`,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newSummaryCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// applyLogLevel sets the global log level; an empty level keeps the default.
func applyLogLevel(level string) error {
	if level == "" {
		return nil
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}
