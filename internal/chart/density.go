package chart

import (
	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

// DensityRow is one observation for the weather density ridgelines: a day's
// subway ridership with its derived weather condition and timeline period.
// Rows with missing ridership or an unknown condition are excluded upstream.
type DensityRow struct {
	Ridership float64
	Category  domain.WeatherCategory
	Period    string
}

// BuildWeatherDensity builds the ridgeline chart: ridership density per
// weather condition, faceted into columns by pandemic-timeline period.
func BuildWeatherDensity(rows []DensityRow) Chart {
	values := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, map[string]any{
			"Ridership":        r.Ridership,
			"weather_category": string(r.Category),
			"period":           r.Period,
		})
	}

	spec := newSpec()
	spec["data"] = map[string]any{"values": values}
	spec["transform"] = []map[string]any{{
		"density":   "Ridership",
		"bandwidth": 150000,
		"groupby":   []string{"weather_category", "period"},
		"extent":    []int{0, 6000000},
		"counts":    true,
		"steps":     200,
	}}
	spec["mark"] = map[string]any{
		"type":        "area",
		"orient":      "horizontal",
		"opacity":     0.8,
		"interpolate": "monotone",
	}
	spec["encoding"] = map[string]any{
		"x": map[string]any{
			"field": "density",
			"type":  "quantitative",
			"stack": "center",
			"title": nil,
			"axis": map[string]any{
				"labels": false,
				"values": []int{0},
				"grid":   false,
				"ticks":  false,
			},
		},
		"y": map[string]any{
			"field": "value",
			"type":  "quantitative",
			"title": "Daily Subway Ridership",
			"scale": map[string]any{"zero": false},
			"axis": map[string]any{
				"format":    "~s",
				"labelFont": fontStack,
				"titleFont": fontStack,
			},
		},
		"color": map[string]any{
			"field": "weather_category",
			"type":  "nominal",
			"scale": map[string]any{
				"domain": labels(domain.WeatherOrder),
				"range":  domain.WeatherColors,
			},
			"legend": map[string]any{
				"title":      "Weather Condition",
				"orient":     "right",
				"titleFont":  fontStack,
				"labelFont":  fontStack,
				"symbolSize": 150,
			},
		},
		"column": map[string]any{
			"field": "period",
			"type":  "nominal",
			"title": "Time Period",
			"sort":  domain.SchemeTimeline.Order,
			"header": map[string]any{
				"labelAngle": 0,
				"labelAlign": "center",
				"titleFont":  fontStack,
				"labelFont":  fontStack,
			},
		},
		"tooltip": []map[string]any{
			{"field": "weather_category", "type": "nominal", "title": "Weather"},
			{"field": "period", "type": "nominal", "title": "Period"},
			{"field": "value", "type": "quantitative", "title": "Ridership", "format": ",.0f"},
		},
	}
	spec["width"] = 140
	spec["height"] = 550
	spec["title"] = map[string]any{
		"text":             "NYC Subway Ridership: Weather Impact Across Pandemic Timeline",
		"subtitle":         "Distribution across different weather conditions (2020-2024)",
		"font":             fontStack,
		"subtitleFont":     fontStack,
		"fontSize":         18,
		"subtitleFontSize": 13,
	}
	spec["config"] = map[string]any{"axis": fontAxis()}

	return Chart{Name: "weather_density", Spec: spec}
}
