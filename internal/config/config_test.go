package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "mta_ridership.csv", cfg.RidershipFile)
	assert.Equal(t, "weather_daily.csv", cfg.WeatherFile)
	assert.Equal(t, "ny_air_quality.csv", cfg.AirQualityFile)
	assert.Equal(t, "charts", cfg.ChartDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.DropEmptyGroups)
	assert.True(t, cfg.KeepNoDataBucket)
	assert.Equal(t, "summary.xlsx", cfg.SummaryWorkbook)
	assert.Equal(t, "heatmap.png", cfg.HeatmapPNG)
	assert.Equal(t, "metrics.prom", cfg.MetricsFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("RIDERSHIP_FILE", "rides.csv")
	t.Setenv("DROP_EMPTY_GROUPS", "true")
	t.Setenv("KEEP_NO_DATA_BUCKET", "false")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/data", cfg.DataDir)
	assert.True(t, cfg.DropEmptyGroups)
	assert.False(t, cfg.KeepNoDataBucket)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, filepath.Join("/srv/data", "rides.csv"), cfg.RidershipPath())
}

func TestLoadEmptyDisablesOptionalArtifacts(t *testing.T) {
	t.Setenv("SUMMARY_WORKBOOK", "")
	t.Setenv("HEATMAP_PNG", "")
	t.Setenv("METRICS_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.SummaryWorkbook)
	assert.Empty(t, cfg.HeatmapPNG)
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoadFallbacks(t *testing.T) {
	t.Run("empty required setting falls back to default", func(t *testing.T) {
		t.Setenv("CHART_DIR", "")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "charts", cfg.ChartDir)
	})

	t.Run("unrecognized bool falls back", func(t *testing.T) {
		t.Setenv("DROP_EMPTY_GROUPS", "maybe")
		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.DropEmptyGroups)
	})
}
