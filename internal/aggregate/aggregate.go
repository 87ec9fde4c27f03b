// Package aggregate reduces labeled daily records into the tables the chart
// builders consume: a grouped-mean matrix for the heatmap and a tidy long
// table for the multi-mode usage chart.
package aggregate

import (
	"time"

	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

// Options control bucket-retention policies that vary across revisions of
// the source dataset. Both are deliberate configuration rather than a baked-in
// choice: one revision drops rows without a precipitation bucket, another
// keeps them as a No Data level, and the two disagree on whether empty
// day×level cells appear in the output.
type Options struct {
	// DropEmptyGroups omits day×level combinations with no contributing
	// records instead of emitting them as empty cells.
	DropEmptyGroups bool
	// KeepNoDataBucket retains records with missing precipitation under the
	// No Data level. When false those records are dropped before grouping.
	KeepNoDataBucket bool
}

// HeatmapCell is one (day-of-week, precipitation level) group. MeanRidership
// is nil for cells with no contributing records.
type HeatmapCell struct {
	Day           string
	Level         domain.PrecipitationLevel
	MeanRidership *float64
	Count         int
}

// GroupedMean groups records by (day-of-week, precipitation level) and
// computes the arithmetic mean of subway ridership per group. Records with
// nil ridership are dropped before grouping. Output cells are ordered
// day-major, level-minor, following the canonical category orders.
func GroupedMean(records []domain.DailyRecord, opts Options) []HeatmapCell {
	type key struct {
		day   string
		level domain.PrecipitationLevel
	}

	sums := make(map[key]float64)
	counts := make(map[key]int)
	for _, r := range records {
		if r.SubwayRidership == nil {
			continue
		}
		level := domain.BinPrecipitation(r.PrecipitationSum)
		if level == domain.PrecipNoData && !opts.KeepNoDataBucket {
			continue
		}
		k := key{day: r.DayOfWeek(), level: level}
		sums[k] += *r.SubwayRidership
		counts[k]++
	}

	var cells []HeatmapCell
	for _, day := range domain.DayOrder {
		for _, level := range domain.PrecipitationOrder {
			if level == domain.PrecipNoData && !opts.KeepNoDataBucket {
				continue
			}
			k := key{day: day, level: level}
			n := counts[k]
			if n == 0 {
				if opts.DropEmptyGroups {
					continue
				}
				cells = append(cells, HeatmapCell{Day: day, Level: level})
				continue
			}
			mean := sums[k] / float64(n)
			cells = append(cells, HeatmapCell{Day: day, Level: level, MeanRidership: &mean, Count: n})
		}
	}
	return cells
}

// UsageRow is one observation of the tidy (long-format) usage table: one
// transit mode on one date. Pct is the source ratio (0.55 = 55%), untouched
// by the reshape; sinks that display percent rescale it themselves. Keeping
// the raw ratio here is what makes melt followed by pivot exact.
type UsageRow struct {
	Date  time.Time
	Mode  domain.Mode
	Total *float64
	Pct   *float64
}

// MeltUsage reshapes the wide per-mode columns into long form: one row per
// (date, mode).
func MeltUsage(records []domain.DailyRecord) []UsageRow {
	rows := make([]UsageRow, 0, len(records)*len(domain.Modes))
	for _, r := range records {
		rows = append(rows,
			UsageRow{Date: r.Date, Mode: domain.ModeSubway, Total: r.SubwayRidership, Pct: r.SubwayPct},
			UsageRow{Date: r.Date, Mode: domain.ModeBus, Total: r.BusRidership, Pct: r.BusPct},
			UsageRow{Date: r.Date, Mode: domain.ModeBridge, Total: r.BridgeTraffic, Pct: r.BridgePct},
		)
	}
	return rows
}

// PivotUsage reverses MeltUsage, rebuilding wide records keyed by date. Rows
// are expected in melt output order; dates are emitted in first-seen order.
func PivotUsage(rows []UsageRow) []domain.DailyRecord {
	byDate := make(map[time.Time]*domain.DailyRecord)
	var order []time.Time

	for _, row := range rows {
		rec, ok := byDate[row.Date]
		if !ok {
			rec = &domain.DailyRecord{Date: row.Date}
			byDate[row.Date] = rec
			order = append(order, row.Date)
		}
		switch row.Mode {
		case domain.ModeSubway:
			rec.SubwayRidership = row.Total
			rec.SubwayPct = row.Pct
		case domain.ModeBus:
			rec.BusRidership = row.Total
			rec.BusPct = row.Pct
		case domain.ModeBridge:
			rec.BridgeTraffic = row.Total
			rec.BridgePct = row.Pct
		}
	}

	records := make([]domain.DailyRecord, len(order))
	for i, d := range order {
		records[i] = *byDate[d]
	}
	return records
}

// PeriodStat summarizes one period of a scheme over the ridership/air-quality
// table: how many days it covers and the mean AQI across days that have one.
type PeriodStat struct {
	Period  string
	Days    int
	MeanAQI *float64
}

// PeriodAQIStats groups records by the scheme's period label, in scheme order.
// Periods with no records are still reported with zero days.
func PeriodAQIStats(records []domain.DailyRecord, scheme domain.PeriodScheme) []PeriodStat {
	days := make(map[string]int)
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		label := scheme.Classify(r.Date)
		days[label]++
		if r.DailyAQI != nil {
			sums[label] += *r.DailyAQI
			counts[label]++
		}
	}

	stats := make([]PeriodStat, 0, len(scheme.Order))
	for _, label := range scheme.Order {
		s := PeriodStat{Period: label, Days: days[label]}
		if n := counts[label]; n > 0 {
			mean := sums[label] / float64(n)
			s.MeanAQI = &mean
		}
		stats = append(stats, s)
	}
	return stats
}
