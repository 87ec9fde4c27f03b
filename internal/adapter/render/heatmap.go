// Package render draws a static PNG preview of the ridership heatmap for
// contexts with no Vega renderer (dashboards, READMEs, e-ink displays).
package render

import (
	"fmt"
	"log/slog"

	"github.com/fogleman/gg"

	"github.com/couchcryptid/transit-weather-charts/internal/aggregate"
	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

const (
	cellW   = 96
	cellH   = 52
	marginL = 120
	marginT = 48
	marginR = 16
	marginB = 72
)

// Blues ramp endpoints, matching the Vega "blues" scheme extremes.
var (
	rampLow  = [3]float64{247, 251, 255}
	rampHigh = [3]float64{8, 48, 107}
)

// Renderer draws the heatmap preview. When fontPath names a TTF file, row,
// column, and title labels are drawn; with no font configured the grid is
// drawn unlabeled.
type Renderer struct {
	path     string
	fontPath string
	logger   *slog.Logger
}

// NewRenderer creates a Renderer targeting the given PNG path.
func NewRenderer(path, fontPath string, logger *slog.Logger) *Renderer {
	return &Renderer{path: path, fontPath: fontPath, logger: logger}
}

// Render draws the cells on a white canvas, colored by mean ridership
// normalized over the observed range. Empty cells are light gray.
func (r *Renderer) Render(cells []aggregate.HeatmapCell) error {
	levels := levelsPresent(cells)
	width := marginL + cellW*len(levels) + marginR
	height := marginT + cellH*len(domain.DayOrder) + marginB

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	minVal, maxVal, ok := meanRange(cells)

	colIdx := make(map[domain.PrecipitationLevel]int, len(levels))
	for i, level := range levels {
		colIdx[level] = i
	}
	rowIdx := make(map[string]int, len(domain.DayOrder))
	for i, day := range domain.DayOrder {
		rowIdx[day] = i
	}

	for _, c := range cells {
		x := float64(marginL + colIdx[c.Level]*cellW)
		y := float64(marginT + rowIdx[c.Day]*cellH)

		if c.MeanRidership == nil || !ok {
			dc.SetHexColor("#eeeeee")
		} else {
			t := 0.0
			if maxVal > minVal {
				t = (*c.MeanRidership - minVal) / (maxVal - minVal)
			}
			dc.SetRGB255(ramp(t))
		}
		dc.DrawRectangle(x+1, y+1, cellW-2, cellH-2)
		dc.Fill()
	}

	if r.fontPath != "" {
		if err := r.drawLabels(dc, levels); err != nil {
			return err
		}
	}

	if err := dc.SavePNG(r.path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	r.logger.Info("heatmap preview rendered", "path", r.path, "labeled", r.fontPath != "")
	return nil
}

func (r *Renderer) drawLabels(dc *gg.Context, levels []domain.PrecipitationLevel) error {
	if err := dc.LoadFontFace(r.fontPath, 13); err != nil {
		return fmt.Errorf("load font %s: %w", r.fontPath, err)
	}
	dc.SetHexColor("#000000")

	for i, day := range domain.DayOrder {
		y := float64(marginT + i*cellH + cellH/2)
		dc.DrawStringAnchored(day, marginL-8, y, 1, 0.5)
	}
	for i, level := range levels {
		x := float64(marginL + i*cellW + cellW/2)
		y := float64(marginT + len(domain.DayOrder)*cellH + 18)
		dc.DrawStringAnchored(string(level), x, y, 0.5, 0.5)
	}

	if err := dc.LoadFontFace(r.fontPath, 16); err != nil {
		return fmt.Errorf("load font %s: %w", r.fontPath, err)
	}
	dc.DrawStringAnchored("Average Subway Ridership by Day & Precipitation",
		float64(dc.Width())/2, marginT/2, 0.5, 0.5)
	return nil
}

// levelsPresent returns the precipitation levels the cells actually carry,
// in canonical order, so a run with No Data dropped doesn't leave an empty
// column.
func levelsPresent(cells []aggregate.HeatmapCell) []domain.PrecipitationLevel {
	present := make(map[domain.PrecipitationLevel]bool, len(cells))
	for _, c := range cells {
		present[c.Level] = true
	}
	var levels []domain.PrecipitationLevel
	for _, level := range domain.PrecipitationOrder {
		if present[level] {
			levels = append(levels, level)
		}
	}
	return levels
}

func meanRange(cells []aggregate.HeatmapCell) (minVal, maxVal float64, ok bool) {
	for _, c := range cells {
		if c.MeanRidership == nil {
			continue
		}
		v := *c.MeanRidership
		if !ok {
			minVal, maxVal, ok = v, v, true
			continue
		}
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal, ok
}

func ramp(t float64) (int, int, int) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(a, b float64) int { return int(a + (b-a)*t) }
	return lerp(rampLow[0], rampHigh[0]), lerp(rampLow[1], rampHigh[1]), lerp(rampLow[2], rampHigh[2])
}
