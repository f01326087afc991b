package telemetry

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Metrics holds the Prometheus instruments for one replay session.
type Metrics struct {
	registry *prometheus.Registry

	// FramesTotal counts frames consumed from the input table.
	FramesTotal prometheus.Counter

	// SamplesTotal counts scalar pairs forwarded into correlators, per
	// correlation name.
	SamplesTotal *prometheus.CounterVec

	// UpdateDuration observes the cost of one correlation update pass.
	UpdateDuration prometheus.Histogram

	// ActiveCorrelations tracks how many correlations the session drives.
	ActiveCorrelations prometheus.Gauge
}

// NewMetrics creates and registers the session instruments on a private
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		FramesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mtcorr_frames_total",
			Help: "Total input frames consumed",
		}),

		SamplesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mtcorr_samples_total",
				Help: "Total sample pairs forwarded to correlators",
			},
			[]string{"correlation"},
		),

		UpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mtcorr_update_duration_seconds",
			Help:    "Duration of one correlation update pass",
			Buckets: []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 0.1},
		}),

		ActiveCorrelations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mtcorr_active_correlations",
			Help: "Number of correlations driven by the session",
		}),
	}

	m.registry.MustRegister(
		m.FramesTotal,
		m.SamplesTotal,
		m.UpdateDuration,
		m.ActiveCorrelations,
	)
	return m
}

// ObserveUpdate records the elapsed time of one update pass.
func (m *Metrics) ObserveUpdate(start time.Time) {
	m.UpdateDuration.Observe(time.Since(start).Seconds())
}

// Serve exposes /metrics and /healthz on addr. Intended for long replays;
// runs until the listener fails.
func (m *Metrics) Serve(addr string) error {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.Info().Str("addr", addr).Msg("serving metrics")
	return http.ListenAndServe(addr, router)
}
