package chart

import (
	"github.com/couchcryptid/transit-weather-charts/internal/aggregate"
	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

var modeColors = []string{"#1f77b4", "#ff7f0e", "#2ca02c"}

// BuildUsage builds the multi-mode usage time series from the tidy table:
// a small overview strip carrying a date brush, over the main series with a
// legend-driven mode filter and a checkbox toggling the y axis between total
// riders and percent of the comparable pre-pandemic day.
func BuildUsage(rows []aggregate.UsageRow) Chart {
	values := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, map[string]any{
			"date":        r.Date.Format(dateLayout),
			"mode":        string(r.Mode),
			"value_total": floatOrNil(r.Total),
			"value_pct":   pctDisplay(r.Pct),
		})
	}

	data := map[string]any{"values": values}
	modeColor := map[string]any{
		"field": "mode",
		"type":  "nominal",
		"scale": map[string]any{"domain": labels(domain.Modes), "range": modeColors},
		"legend": map[string]any{
			"title":     "Mode",
			"titleFont": fontStack,
			"labelFont": fontStack,
		},
	}

	overview := map[string]any{
		"data": data,
		"mark": "line",
		"params": []map[string]any{{
			"name":   "DateBrush",
			"select": map[string]any{"type": "interval", "encodings": []string{"x"}},
		}},
		"encoding": map[string]any{
			"x": map[string]any{
				"field": "date",
				"type":  "temporal",
				"axis": map[string]any{
					"format":    "%b %Y",
					"title":     nil,
					"labelFont": fontStack,
				},
			},
			"y": map[string]any{
				"field": "value_total",
				"type":  "quantitative",
				"title": nil,
				"axis":  map[string]any{"labels": false, "ticks": false},
			},
			"color": modeColor,
		},
		"width":  800,
		"height": 60,
		"title":  "Brush to zoom the series below",
	}

	main := map[string]any{
		"data": data,
		"params": []map[string]any{
			{
				"name":  "ShowPct",
				"value": false,
				"bind": map[string]any{
					"input": "checkbox",
					"name":  "Show % of comparable pre-pandemic day: ",
				},
			},
			{
				"name":   "ModeFilter",
				"select": map[string]any{"type": "point", "fields": []string{"mode"}},
				"bind":   "legend",
			},
		},
		"transform": []map[string]any{
			{"filter": map[string]any{"param": "DateBrush"}},
			{"calculate": "ShowPct ? datum.value_pct : datum.value_total", "as": "value"},
		},
		"mark": "line",
		"encoding": map[string]any{
			"x": map[string]any{
				"field": "date",
				"type":  "temporal",
				"title": "Date",
				"axis": map[string]any{
					"format":    "%b %Y",
					"labelFont": fontStack,
					"titleFont": fontStack,
				},
			},
			"y": map[string]any{
				"field": "value",
				"type":  "quantitative",
				"title": "Ridership",
				"axis": map[string]any{
					"format":    "~s",
					"labelFont": fontStack,
					"titleFont": fontStack,
				},
			},
			"color": modeColor,
			"opacity": map[string]any{
				"condition": map[string]any{"param": "ModeFilter", "value": 1},
				"value":     0.2,
			},
			"tooltip": []map[string]any{
				{"field": "date", "type": "temporal"},
				{"field": "mode", "type": "nominal", "title": "Mode"},
				{"field": "value_total", "type": "quantitative", "title": "Total", "format": ",.0f"},
				{"field": "value_pct", "type": "quantitative", "title": "% of Pre-Pandemic", "format": ".1f"},
			},
		},
		"width":  800,
		"height": 360,
		"title":  "MTA Daily Usage by Mode",
	}

	spec := newSpec()
	spec["vconcat"] = []map[string]any{overview, main}
	spec["resolve"] = map[string]any{"scale": map[string]any{"color": "shared"}}
	spec["config"] = map[string]any{
		"title": map[string]any{"font": fontStack},
		"axis":  fontAxis(),
	}

	return Chart{Name: "mta_usage", Spec: spec}
}

// pctDisplay rescales a stored ratio to display percent (0.55 → 55).
func pctDisplay(ratio *float64) any {
	if ratio == nil {
		return nil
	}
	return *ratio * 100
}
