package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mtcorr/mtcorr/internal/config"
	"github.com/mtcorr/mtcorr/internal/correlator"
	"github.com/mtcorr/mtcorr/internal/report"
	"github.com/mtcorr/mtcorr/internal/series"
	"github.com/mtcorr/mtcorr/internal/telemetry"
)

// progressEvery controls how often the replay loop emits a progress log.
const progressEvery = 10000

// Session owns one replay of a recorded table through a set of configured
// correlations. Correlations are independent; the session drives each at
// its own update frequency and collects the results at the end.
type Session struct {
	id           string
	configs      []config.CorrelationConfig
	correlations []*correlator.Correlation
	metrics      *telemetry.Metrics
}

// New builds a session from validated correlation configs.
func New(cfgs []config.CorrelationConfig, metrics *telemetry.Metrics) (*Session, error) {
	s := &Session{
		id:      uuid.NewString(),
		configs: cfgs,
		metrics: metrics,
	}
	for _, cfg := range cfgs {
		cor, err := correlator.NewCorrelation(
			cfg.Name,
			correlator.Columns(cfg.A.Columns...),
			correlator.Columns(cfg.B.Columns...),
			cfg.Blocks, cfg.Points, cfg.Averaging, cfg.UpdateFrequency,
		)
		if err != nil {
			return nil, err
		}
		s.correlations = append(s.correlations, cor)
	}
	if metrics != nil {
		metrics.ActiveCorrelations.Set(float64(len(s.correlations)))
	}
	return s, nil
}

// ID returns the unique run identifier of this session.
func (s *Session) ID() string { return s.id }

// Run replays every row of the table, updating each correlation at its
// configured cadence. Row index stands in for the driver step counter.
func (s *Session) Run(table *series.Table) error {
	if err := s.checkColumns(table); err != nil {
		return err
	}

	log.Info().
		Str("run_id", s.id).
		Int("rows", table.Rows()).
		Int("correlations", len(s.correlations)).
		Msg("starting replay")

	for step := 0; step < table.Rows(); step++ {
		frame := table.Frame(step)
		if s.metrics != nil {
			s.metrics.FramesTotal.Inc()
		}
		for _, cor := range s.correlations {
			if step%cor.UpdateFrequency() != 0 {
				continue
			}
			start := time.Now()
			if err := cor.Update(frame); err != nil {
				return fmt.Errorf("session %s: step %d: %w", s.id, step, err)
			}
			if s.metrics != nil {
				s.metrics.ObserveUpdate(start)
				s.metrics.SamplesTotal.WithLabelValues(cor.Name()).Add(float64(cor.Components()))
			}
		}
		if step > 0 && step%progressEvery == 0 {
			log.Debug().Str("run_id", s.id).Int("step", step).Msg("replay progress")
		}
	}

	log.Info().Str("run_id", s.id).Msg("replay complete")
	return nil
}

// checkColumns rejects correlations referencing channels the table does not
// carry, before any samples flow.
func (s *Session) checkColumns(table *series.Table) error {
	for _, cfg := range s.configs {
		for _, col := range append(append([]string{}, cfg.A.Columns...), cfg.B.Columns...) {
			if !table.HasColumn(col) {
				return fmt.Errorf("correlation %q: input has no column %q (columns: %v)",
					cfg.Name, col, table.Labels)
			}
		}
	}
	return nil
}

// Report collects the current lag and value arrays of every correlation.
func (s *Session) Report() (*report.Correlations, error) {
	var out report.Correlations
	for _, cor := range s.correlations {
		lags, values, err := cor.Get()
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", s.id, err)
		}
		out.Add(cor.Name(), lags, values)
	}
	return &out, nil
}
