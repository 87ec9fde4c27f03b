// Command charts runs the batch chart build: it reads the ridership, weather,
// and air-quality CSVs, derives categorical labels, aggregates, and writes the
// chart artifacts to the output directory, then exits.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/couchcryptid/transit-weather-charts/internal/adapter/csvfile"
	"github.com/couchcryptid/transit-weather-charts/internal/adapter/excel"
	"github.com/couchcryptid/transit-weather-charts/internal/adapter/render"
	"github.com/couchcryptid/transit-weather-charts/internal/adapter/vega"
	"github.com/couchcryptid/transit-weather-charts/internal/config"
	"github.com/couchcryptid/transit-weather-charts/internal/observability"
	"github.com/couchcryptid/transit-weather-charts/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	reader := csvfile.NewReader(logger)
	emitter := vega.NewWriter(cfg.ChartDir, logger)

	var summary pipeline.SummaryWriter
	if cfg.SummaryWorkbook != "" {
		summary = excel.NewWriter(filepath.Join(cfg.ChartDir, cfg.SummaryWorkbook), logger)
	}
	var preview pipeline.HeatmapRenderer
	if cfg.HeatmapPNG != "" {
		preview = render.NewRenderer(filepath.Join(cfg.ChartDir, cfg.HeatmapPNG), cfg.HeatmapFont, logger)
	}

	p := pipeline.New(reader, emitter, summary, preview, logger, metrics, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		logger.Error("build failed", "error", err)
		os.Exit(1)
	}
}
