package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	m := NewMetrics()

	m.FramesTotal.Add(3)
	m.SamplesTotal.WithLabelValues("vaf").Add(9)
	m.ActiveCorrelations.Set(2)
	m.ObserveUpdate(time.Now())

	assert.InDelta(t, 3.0, testutil.ToFloat64(m.FramesTotal), 1e-12)
	assert.InDelta(t, 9.0, testutil.ToFloat64(m.SamplesTotal.WithLabelValues("vaf")), 1e-12)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.ActiveCorrelations), 1e-12)

	families, err := m.registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"mtcorr_frames_total",
		"mtcorr_samples_total",
		"mtcorr_update_duration_seconds",
		"mtcorr_active_correlations",
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}
}
