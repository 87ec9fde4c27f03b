// Package pipeline orchestrates one build run: load the three source tables,
// join, categorize, aggregate, and emit the chart artifacts.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/transit-weather-charts/internal/aggregate"
	"github.com/couchcryptid/transit-weather-charts/internal/chart"
	"github.com/couchcryptid/transit-weather-charts/internal/config"
	"github.com/couchcryptid/transit-weather-charts/internal/dataset"
	"github.com/couchcryptid/transit-weather-charts/internal/domain"
	"github.com/couchcryptid/transit-weather-charts/internal/observability"
)

// SourceReader loads one CSV into a date-normalized frame.
type SourceReader interface {
	Load(path string) (dataframe.DataFrame, error)
}

// ChartEmitter writes one chart's artifact set.
type ChartEmitter interface {
	EmitChart(ctx context.Context, c chart.Chart) error
}

// SummaryWriter persists the aggregated tables. Optional sink.
type SummaryWriter interface {
	Write(cells []aggregate.HeatmapCell, usage []aggregate.UsageRow, periods []aggregate.PeriodStat) error
}

// HeatmapRenderer draws the heatmap preview image. Optional sink.
type HeatmapRenderer interface {
	Render(cells []aggregate.HeatmapCell) error
}

// Pipeline wires the source, the transforms, and the sinks for one run.
type Pipeline struct {
	reader  SourceReader
	emitter ChartEmitter
	summary SummaryWriter   // nil disables the workbook
	preview HeatmapRenderer // nil disables the PNG
	logger  *slog.Logger
	metrics *observability.Metrics
	cfg     *config.Config
}

// New creates a Pipeline. summary and preview may be nil.
func New(reader SourceReader, emitter ChartEmitter, summary SummaryWriter, preview HeatmapRenderer,
	logger *slog.Logger, metrics *observability.Metrics, cfg *config.Config) *Pipeline {
	return &Pipeline{
		reader:  reader,
		emitter: emitter,
		summary: summary,
		preview: preview,
		logger:  logger,
		metrics: metrics,
		cfg:     cfg,
	}
}

// Run executes the single-pass build. Unparseable dates or numbers abort the
// run; missing values and join losses only degrade and are counted.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("build started",
		"data_dir", p.cfg.DataDir,
		"chart_dir", p.cfg.ChartDir,
	)

	tables, err := p.loadTables()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	weatherRecords, err := p.mergeWeather(tables)
	if err != nil {
		return err
	}
	aqiRecords, err := p.mergeAirQuality(tables)
	if err != nil {
		return err
	}
	usageRecords, err := dataset.ToRecords(tables.Ridership)
	if err != nil {
		return fmt.Errorf("convert ridership table: %w", err)
	}

	opts := aggregate.Options{
		DropEmptyGroups:  p.cfg.DropEmptyGroups,
		KeepNoDataBucket: p.cfg.KeepNoDataBucket,
	}
	cells := aggregate.GroupedMean(weatherRecords, opts)
	usage := aggregate.MeltUsage(usageRecords)
	density := p.densityRows(weatherRecords)

	charts := []chart.Chart{
		chart.BuildHeatmap(cells),
		chart.BuildWeatherDensity(density),
		chart.BuildAQIPeriods("aqi_periods", aqiRecords, domain.SchemeCOVID, "COVID period bands"),
		chart.BuildAQIPeriods("aqi_periods_v2", aqiRecords, domain.SchemeTimeline, "Pandemic timeline"),
		chart.BuildUsage(usage),
	}

	for _, c := range charts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.emitter.EmitChart(ctx, c); err != nil {
			return fmt.Errorf("emit %s: %w", c.Name, err)
		}
		p.metrics.ChartsEmitted.Inc()
	}

	if p.summary != nil {
		periods := aggregate.PeriodAQIStats(aqiRecords, domain.SchemeCOVID)
		if err := p.summary.Write(cells, usage, periods); err != nil {
			return fmt.Errorf("write summary workbook: %w", err)
		}
	}
	if p.preview != nil {
		if err := p.preview.Render(cells); err != nil {
			return fmt.Errorf("render heatmap preview: %w", err)
		}
	}

	elapsed := time.Since(start)
	p.metrics.BuildDuration.Observe(elapsed.Seconds())
	if p.cfg.MetricsFile != "" {
		path := filepath.Join(p.cfg.ChartDir, p.cfg.MetricsFile)
		if err := p.metrics.WriteTextfile(path); err != nil {
			return err
		}
	}

	p.logger.Info("build complete", "charts", len(charts), "elapsed", elapsed)
	return nil
}

func (p *Pipeline) loadTables() (dataset.Tables, error) {
	var t dataset.Tables
	var err error

	if t.Ridership, err = p.reader.Load(p.cfg.RidershipPath()); err != nil {
		return t, fmt.Errorf("load ridership: %w", err)
	}
	p.metrics.RowsLoaded.WithLabelValues("ridership").Add(float64(t.Ridership.Nrow()))

	if t.Weather, err = p.reader.Load(p.cfg.WeatherPath()); err != nil {
		return t, fmt.Errorf("load weather: %w", err)
	}
	p.metrics.RowsLoaded.WithLabelValues("weather").Add(float64(t.Weather.Nrow()))

	if t.AirQuality, err = p.reader.Load(p.cfg.AirQualityPath()); err != nil {
		return t, fmt.Errorf("load air quality: %w", err)
	}
	p.metrics.RowsLoaded.WithLabelValues("air_quality").Add(float64(t.AirQuality.Nrow()))

	return t, nil
}

func (p *Pipeline) mergeWeather(t dataset.Tables) ([]domain.DailyRecord, error) {
	joined, err := dataset.MergeWeather(t)
	if err != nil {
		return nil, err
	}
	p.recordJoin("weather", t.Ridership.Nrow(), joined.Nrow())

	records, err := dataset.ToRecords(joined)
	if err != nil {
		return nil, fmt.Errorf("convert weather merge: %w", err)
	}
	return records, nil
}

func (p *Pipeline) mergeAirQuality(t dataset.Tables) ([]domain.DailyRecord, error) {
	joined, err := dataset.MergeAirQuality(t)
	if err != nil {
		return nil, err
	}
	p.recordJoin("air_quality", t.Ridership.Nrow(), joined.Nrow())

	records, err := dataset.ToRecords(joined)
	if err != nil {
		return nil, fmt.Errorf("convert air quality merge: %w", err)
	}
	return records, nil
}

// recordJoin counts join survivors and the rows the inner join silently
// dropped from the left side.
func (p *Pipeline) recordJoin(name string, before, after int) {
	p.metrics.RowsJoined.WithLabelValues(name).Add(float64(after))
	if dropped := before - after; dropped > 0 {
		p.metrics.RowsDropped.WithLabelValues(name + "_join").Add(float64(dropped))
		p.logger.Debug("inner join dropped rows", "join", name, "dropped", dropped)
	}
}

// densityRows projects the weather merge into ridgeline observations,
// dropping days with missing ridership or an unknown condition.
func (p *Pipeline) densityRows(records []domain.DailyRecord) []chart.DensityRow {
	rows := make([]chart.DensityRow, 0, len(records))
	dropped := 0
	for _, r := range records {
		category := domain.CategorizeWeather(r.PrecipitationSum, r.MeanTemperature)
		if r.SubwayRidership == nil || category == nil {
			dropped++
			continue
		}
		rows = append(rows, chart.DensityRow{
			Ridership: *r.SubwayRidership,
			Category:  *category,
			Period:    domain.SchemeTimeline.Classify(r.Date),
		})
	}
	if dropped > 0 {
		p.metrics.RowsDropped.WithLabelValues("missing_density_fields").Add(float64(dropped))
	}
	return rows
}
