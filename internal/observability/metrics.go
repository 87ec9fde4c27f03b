package observability

import (
	"bytes"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the Prometheus counters and histograms for one build run.
// The run is batch with no listener, so metrics are flushed to a textfile
// (node_exporter textfile-collector format) instead of being scraped.
type Metrics struct {
	RowsLoaded    *prometheus.CounterVec // labels: source={ridership,weather,air_quality}
	RowsJoined    *prometheus.CounterVec // labels: join={weather,air_quality}
	RowsDropped   *prometheus.CounterVec // labels: reason={weather_join,air_quality_join,missing_density_fields}
	ChartsEmitted prometheus.Counter
	BuildDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates and registers all build metrics on a private registry,
// so repeated construction (tests, reruns) never collides.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transit_charts",
			Name:      "rows_loaded_total",
			Help:      "Rows read per source table.",
		}, []string{"source"}),
		RowsJoined: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transit_charts",
			Name:      "rows_joined_total",
			Help:      "Rows surviving each inner join.",
		}, []string{"join"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transit_charts",
			Name:      "rows_dropped_total",
			Help:      "Rows silently dropped, by reason.",
		}, []string{"reason"}),
		ChartsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "transit_charts",
			Name:      "charts_emitted_total",
			Help:      "Chart artifact sets written.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "transit_charts",
			Name:      "build_duration_seconds",
			Help:      "Duration of the complete load-transform-emit run.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RowsLoaded,
		m.RowsJoined,
		m.RowsDropped,
		m.ChartsEmitted,
		m.BuildDuration,
	)
	return m
}

// WriteTextfile flushes the registry to a .prom textfile at path.
func (m *Metrics) WriteTextfile(path string) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
