package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mtcorr/mtcorr/internal/config"
	"github.com/mtcorr/mtcorr/internal/series"
	"github.com/mtcorr/mtcorr/internal/session"
	"github.com/mtcorr/mtcorr/internal/telemetry"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay a stats table through the configured correlations",
		Long: `Replay every row of a recorded stats table through the correlations
described in the run configuration, then write the lag/value report as YAML.`,
		RunE: runReplay,
	}

	cmd.Flags().String("config", "cor.yml", "Run configuration file")
	cmd.Flags().String("input", "", "Input table path (overrides config)")
	cmd.Flags().String("output", "", "Report path (overrides config)")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address during the replay")
	cmd.Flags().String("log-level", "", "Log level (trace|debug|info|warn|error)")

	return cmd
}

func runReplay(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("input"); v != "" {
		cfg.Input = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output = v
	}
	if v, _ := cmd.Flags().GetString("metrics-addr"); v != "" {
		cfg.MetricsAddr = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := applyLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	if cfg.Input == "" {
		return fmt.Errorf("no input table: set input in %s or pass --input", configPath)
	}
	if len(cfg.Correlation) == 0 {
		return fmt.Errorf("no correlations configured in %s", configPath)
	}
	output := cfg.Output
	if output == "" {
		output = defaultReportPath(cfg.Input)
	}

	metrics := telemetry.NewMetrics()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	table, err := series.ReadFile(cfg.Input)
	if err != nil {
		return err
	}
	log.Info().
		Str("input", cfg.Input).
		Int("rows", table.Rows()).
		Int("columns", table.Columns()).
		Msg("loaded table")

	sess, err := session.New(cfg.Correlation, metrics)
	if err != nil {
		return err
	}
	if err := sess.Run(table); err != nil {
		return err
	}

	rep, err := sess.Report()
	if err != nil {
		return err
	}
	if err := rep.WriteFile(output); err != nil {
		return err
	}
	log.Info().Str("output", output).Int("correlations", rep.Len()).Msg("report written")
	return nil
}

// defaultReportPath derives the report name from the input table,
// e.g. md-stats.dat -> md-cor.dat.
func defaultReportPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	base = strings.TrimSuffix(base, "-stats")
	return base + "-cor.dat"
}
