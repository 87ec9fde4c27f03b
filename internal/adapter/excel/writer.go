// Package excel writes the aggregated tables to a summary workbook so the
// numbers behind the charts can be inspected without a Vega renderer.
package excel

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/transit-weather-charts/internal/aggregate"
	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

const (
	sheetHeatmap = "Heatmap"
	sheetUsage   = "Usage"
	sheetPeriods = "AQI Periods"
)

// Writer produces the XLSX summary workbook.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting the given file path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Write builds the workbook: the heatmap mean matrix, the tidy usage table,
// and per-period AQI statistics.
func (w *Writer) Write(cells []aggregate.HeatmapCell, usage []aggregate.UsageRow, periods []aggregate.PeriodStat) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetHeatmap); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeHeatmap(f, cells); err != nil {
		return err
	}
	if err := writeUsage(f, usage); err != nil {
		return err
	}
	if err := writePeriods(f, periods); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	w.logger.Info("summary workbook written", "path", w.path)
	return nil
}

// writeHeatmap lays the cells out as a day × level matrix, empty groups as
// blank cells.
func writeHeatmap(f *excelize.File, cells []aggregate.HeatmapCell) error {
	levelCol := make(map[domain.PrecipitationLevel]int)
	for i, level := range domain.PrecipitationOrder {
		levelCol[level] = i + 2
		if err := setCell(f, sheetHeatmap, i+2, 1, string(level)); err != nil {
			return err
		}
	}
	dayRow := make(map[string]int)
	for i, day := range domain.DayOrder {
		dayRow[day] = i + 2
		if err := setCell(f, sheetHeatmap, 1, i+2, day); err != nil {
			return err
		}
	}

	for _, c := range cells {
		if c.MeanRidership == nil {
			continue
		}
		if err := setCell(f, sheetHeatmap, levelCol[c.Level], dayRow[c.Day], *c.MeanRidership); err != nil {
			return err
		}
	}
	return nil
}

func writeUsage(f *excelize.File, usage []aggregate.UsageRow) error {
	if _, err := f.NewSheet(sheetUsage); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheetUsage, err)
	}
	for i, h := range []string{"date", "mode", "value_total", "value_pct"} {
		if err := setCell(f, sheetUsage, i+1, 1, h); err != nil {
			return err
		}
	}
	for i, row := range usage {
		r := i + 2
		if err := setCell(f, sheetUsage, 1, r, row.Date.Format("2006-01-02")); err != nil {
			return err
		}
		if err := setCell(f, sheetUsage, 2, r, string(row.Mode)); err != nil {
			return err
		}
		if row.Total != nil {
			if err := setCell(f, sheetUsage, 3, r, *row.Total); err != nil {
				return err
			}
		}
		if row.Pct != nil {
			// Stored as a ratio; the workbook column shows percent.
			if err := setCell(f, sheetUsage, 4, r, *row.Pct*100); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePeriods(f *excelize.File, periods []aggregate.PeriodStat) error {
	if _, err := f.NewSheet(sheetPeriods); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheetPeriods, err)
	}
	for i, h := range []string{"period", "days", "mean_aqi"} {
		if err := setCell(f, sheetPeriods, i+1, 1, h); err != nil {
			return err
		}
	}
	for i, p := range periods {
		r := i + 2
		if err := setCell(f, sheetPeriods, 1, r, p.Period); err != nil {
			return err
		}
		if err := setCell(f, sheetPeriods, 2, r, p.Days); err != nil {
			return err
		}
		if p.MeanAQI != nil {
			if err := setCell(f, sheetPeriods, 3, r, *p.MeanAQI); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
