package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/transit-weather-charts/internal/adapter/csvfile"
	"github.com/couchcryptid/transit-weather-charts/internal/aggregate"
	"github.com/couchcryptid/transit-weather-charts/internal/chart"
	"github.com/couchcryptid/transit-weather-charts/internal/config"
	"github.com/couchcryptid/transit-weather-charts/internal/observability"
	"github.com/couchcryptid/transit-weather-charts/internal/pipeline"
)

const (
	ridershipCSV = `date,subways_total_estimated_ridership,subways_pct_of_comparable_pre_pandemic_day,buses_total_estimated_ridership,buses_pct_of_comparable_pre_pandemic_day,bridges_and_tunnels_total_traffic,bridges_and_tunnels_pct_of_comparable_pre_pandemic_day
2020-03-01,5000000,1.0,2000000,1.0,900000,1.0
2020-04-01,500000,0.1,400000,0.2,500000,0.5
2021-08-01,2500000,0.5,1200000,0.6,850000,0.9
2023-02-01,3500000,0.7,1500000,0.75,950000,1.05
`
	weatherCSV = `date,precipitation_sum,temperature_2m_mean
2020-03-01,0,8
2020-04-01,12,-3
2021-08-01,0.4,24
2023-02-01,,5
`
	airQualityCSV = `date,daily_aqi
2020-03-01,35
2020-04-01,22
2021-08-01,58
`
)

// chartRecorder captures emitted charts in order.
type chartRecorder struct {
	charts []chart.Chart
	fail   string // chart name to fail on, empty for none
}

func (r *chartRecorder) EmitChart(_ context.Context, c chart.Chart) error {
	if r.fail != "" && c.Name == r.fail {
		return errors.New("sink unavailable")
	}
	r.charts = append(r.charts, c)
	return nil
}

// summaryRecorder captures the aggregated tables handed to the workbook sink.
type summaryRecorder struct {
	cells   []aggregate.HeatmapCell
	usage   []aggregate.UsageRow
	periods []aggregate.PeriodStat
	called  bool
}

func (s *summaryRecorder) Write(cells []aggregate.HeatmapCell, usage []aggregate.UsageRow, periods []aggregate.PeriodStat) error {
	s.cells, s.usage, s.periods = cells, usage, periods
	s.called = true
	return nil
}

func writeFixtures(t *testing.T, weather string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	for name, body := range map[string]string{
		"mta_ridership.csv":  ridershipCSV,
		"weather_daily.csv":  weather,
		"ny_air_quality.csv": airQualityCSV,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	return &config.Config{
		DataDir:          dir,
		RidershipFile:    "mta_ridership.csv",
		WeatherFile:      "weather_daily.csv",
		AirQualityFile:   "ny_air_quality.csv",
		ChartDir:         filepath.Join(dir, "charts"),
		KeepNoDataBucket: true,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunEmitsAllCharts(t *testing.T) {
	cfg := writeFixtures(t, weatherCSV)
	recorder := &chartRecorder{}
	summary := &summaryRecorder{}

	reader := csvfile.NewReader(testLogger())
	p := pipeline.New(reader, recorder, summary, nil, testLogger(), observability.NewMetrics(), cfg)
	require.NoError(t, p.Run(context.Background()))

	var names []string
	for _, c := range recorder.charts {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"heatmap", "weather_density", "aqi_periods", "aqi_periods_v2", "mta_usage"}, names)

	require.True(t, summary.called)
	assert.Len(t, summary.cells, 35, "full day by level grid when empty groups are kept")
	assert.Len(t, summary.usage, 12, "four days melted across three modes")
	assert.Len(t, summary.periods, 4)
}

func TestRunWritesMetricsTextfile(t *testing.T) {
	cfg := writeFixtures(t, weatherCSV)
	cfg.MetricsFile = "metrics.prom"

	reader := csvfile.NewReader(testLogger())
	p := pipeline.New(reader, &chartRecorder{}, nil, nil, testLogger(), observability.NewMetrics(), cfg)

	// The emitter writes nothing, so the chart dir must exist for the textfile.
	require.NoError(t, os.MkdirAll(cfg.ChartDir, 0o755))
	require.NoError(t, p.Run(context.Background()))

	raw, err := os.ReadFile(filepath.Join(cfg.ChartDir, "metrics.prom"))
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, `transit_charts_rows_loaded_total{source="ridership"} 4`)
	assert.Contains(t, out, "transit_charts_charts_emitted_total 5")
	assert.Contains(t, out, `transit_charts_rows_joined_total{join="weather"} 4`)
	assert.Contains(t, out, `transit_charts_rows_joined_total{join="air_quality"} 3`)
	assert.Contains(t, out, `transit_charts_rows_dropped_total{reason="air_quality_join"} 1`)
}

func TestRunFailsOnMalformedNumber(t *testing.T) {
	bad := `date,precipitation_sum,temperature_2m_mean
2020-03-01,plenty,8
`
	cfg := writeFixtures(t, bad)
	reader := csvfile.NewReader(testLogger())
	p := pipeline.New(reader, &chartRecorder{}, nil, nil, testLogger(), observability.NewMetrics(), cfg)

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precipitation_sum")
}

func TestRunFailsOnMissingSource(t *testing.T) {
	cfg := writeFixtures(t, weatherCSV)
	cfg.WeatherFile = "nope.csv"

	reader := csvfile.NewReader(testLogger())
	p := pipeline.New(reader, &chartRecorder{}, nil, nil, testLogger(), observability.NewMetrics(), cfg)

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load weather")
}

func TestRunStopsOnEmitterError(t *testing.T) {
	cfg := writeFixtures(t, weatherCSV)
	recorder := &chartRecorder{fail: "aqi_periods"}

	reader := csvfile.NewReader(testLogger())
	p := pipeline.New(reader, recorder, nil, nil, testLogger(), observability.NewMetrics(), cfg)

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emit aqi_periods")
	assert.Len(t, recorder.charts, 2, "charts before the failing one were emitted")
}

func TestRunHonorsCanceledContext(t *testing.T) {
	cfg := writeFixtures(t, weatherCSV)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := csvfile.NewReader(testLogger())
	p := pipeline.New(reader, &chartRecorder{}, nil, nil, testLogger(), observability.NewMetrics(), cfg)
	assert.ErrorIs(t, p.Run(ctx), context.Canceled)
}
