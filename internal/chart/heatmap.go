package chart

import (
	"fmt"

	"github.com/couchcryptid/transit-weather-charts/internal/aggregate"
	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

// BuildHeatmap builds the day-of-week × precipitation-level heatmap of mean
// subway ridership: a rect layer colored by the mean, with a text layer whose
// label color flips to white above the midpoint of the observed value range.
func BuildHeatmap(cells []aggregate.HeatmapCell) Chart {
	values := make([]map[string]any, 0, len(cells))
	for _, c := range cells {
		values = append(values, map[string]any{
			"day_of_week":         c.Day,
			"precipitation_level": string(c.Level),
			"avg_ridership":       floatOrNil(c.MeanRidership),
		})
	}

	precipOrder := labels(domain.PrecipitationOrder)

	x := map[string]any{
		"field": "precipitation_level",
		"type":  "ordinal",
		"title": "Precipitation Level",
		"sort":  precipOrder,
		"axis": map[string]any{
			"labelAngle": -45,
			"labelFont":  fontStack,
			"titleFont":  fontStack,
		},
	}
	y := map[string]any{
		"field": "day_of_week",
		"type":  "ordinal",
		"title": "Day of Week",
		"sort":  domain.DayOrder,
		"axis":  fontAxis(),
	}

	rect := map[string]any{
		"mark": "rect",
		"encoding": map[string]any{
			"x": x,
			"y": y,
			"color": map[string]any{
				"field": "avg_ridership",
				"type":  "quantitative",
				"title": "Avg Daily Ridership",
				"scale": map[string]any{"scheme": "blues"},
			},
			"tooltip": []map[string]any{
				{"field": "day_of_week", "type": "ordinal", "title": "Day"},
				{"field": "precipitation_level", "type": "ordinal", "title": "Precipitation"},
				{"field": "avg_ridership", "type": "quantitative", "title": "Avg Ridership", "format": ",.0f"},
			},
		},
	}

	text := map[string]any{
		"mark": map[string]any{"type": "text", "baseline": "middle"},
		"encoding": map[string]any{
			"x":    x,
			"y":    y,
			"text": map[string]any{"field": "avg_ridership", "type": "quantitative", "format": ",.0f"},
			"color": map[string]any{
				"condition": map[string]any{
					"test":  fmt.Sprintf("datum.avg_ridership > %g", labelFlipThreshold(cells)),
					"value": "white",
				},
				"value": "black",
			},
		},
	}

	spec := newSpec()
	spec["data"] = map[string]any{"values": values}
	spec["layer"] = []map[string]any{rect, text}
	spec["width"] = 400
	spec["height"] = 300
	spec["title"] = map[string]any{
		"text":     "Average Subway Ridership by Day & Precipitation",
		"font":     fontStack,
		"fontSize": 18,
	}
	spec["config"] = map[string]any{"axis": fontAxis()}

	return Chart{Name: "heatmap", Spec: spec}
}

// labelFlipThreshold returns the midpoint of the observed mean range. Cells
// darker than this get white labels.
func labelFlipThreshold(cells []aggregate.HeatmapCell) float64 {
	var minVal, maxVal float64
	seen := false
	for _, c := range cells {
		if c.MeanRidership == nil {
			continue
		}
		v := *c.MeanRidership
		if !seen {
			minVal, maxVal = v, v
			seen = true
			continue
		}
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if !seen {
		return 0
	}
	return minVal + (maxVal-minVal)*0.5
}
