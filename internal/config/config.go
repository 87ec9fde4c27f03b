// Package config loads build settings from environment variables with
// defaults for every setting, so a bare invocation works. A repo-local .env
// is applied first when present.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all build settings.
type Config struct {
	DataDir        string
	RidershipFile  string
	WeatherFile    string
	AirQualityFile string

	ChartDir string

	LogLevel  string
	LogFormat string

	// Aggregation policies (both behaviors appear across dataset revisions).
	DropEmptyGroups  bool
	KeepNoDataBucket bool

	// Optional extra artifacts; empty file names disable them.
	SummaryWorkbook string
	HeatmapPNG      string
	HeatmapFont     string // TTF path for PNG labels; empty draws no labels
	MetricsFile     string
}

// Load reads configuration, applying defaults where unset. A missing .env is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:        envOrDefault("DATA_DIR", "data"),
		RidershipFile:  envOrDefault("RIDERSHIP_FILE", "mta_ridership.csv"),
		WeatherFile:    envOrDefault("WEATHER_FILE", "weather_daily.csv"),
		AirQualityFile: envOrDefault("AIR_QUALITY_FILE", "ny_air_quality.csv"),

		ChartDir: envOrDefault("CHART_DIR", "charts"),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		DropEmptyGroups:  envBool("DROP_EMPTY_GROUPS", false),
		KeepNoDataBucket: envBool("KEEP_NO_DATA_BUCKET", true),

		SummaryWorkbook: envAllowEmpty("SUMMARY_WORKBOOK", "summary.xlsx"),
		HeatmapPNG:      envAllowEmpty("HEATMAP_PNG", "heatmap.png"),
		HeatmapFont:     os.Getenv("HEATMAP_FONT"),
		MetricsFile:     envAllowEmpty("METRICS_FILE", "metrics.prom"),
	}

	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR must not be empty")
	}
	if cfg.ChartDir == "" {
		return nil, errors.New("CHART_DIR must not be empty")
	}
	if cfg.RidershipFile == "" || cfg.WeatherFile == "" || cfg.AirQualityFile == "" {
		return nil, errors.New("source file names must not be empty")
	}

	return cfg, nil
}

// RidershipPath is the resolved path of the ridership CSV.
func (c *Config) RidershipPath() string { return filepath.Join(c.DataDir, c.RidershipFile) }

// WeatherPath is the resolved path of the daily weather CSV.
func (c *Config) WeatherPath() string { return filepath.Join(c.DataDir, c.WeatherFile) }

// AirQualityPath is the resolved path of the air-quality CSV.
func (c *Config) AirQualityPath() string { return filepath.Join(c.DataDir, c.AirQualityFile) }

// LoggingLevel implements observability.LoggerConfig.
func (c *Config) LoggingLevel() string { return c.LogLevel }

// LoggingFormat implements observability.LoggerConfig.
func (c *Config) LoggingFormat() string { return c.LogFormat }

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envAllowEmpty distinguishes "unset" from "set to empty": optional artifacts
// are disabled by setting their variable to the empty string.
func envAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fallback
	}
}
