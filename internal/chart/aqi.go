package chart

import (
	"fmt"
	"time"

	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

// aqiDomainStart pins the left edge of the time axis to the first COVID band.
var aqiDomainStart = time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)

// BuildAQIPeriods builds one ridership-vs-air-quality chart variant: a small
// AQI time series on top carrying an interval brush and a "Max AQI" range
// slider, over a ridership scatter filtered by both, with a dashed per-period
// regression overlay. The two variants differ only in name, period scheme,
// and title suffix.
func BuildAQIPeriods(name string, records []domain.DailyRecord, scheme domain.PeriodScheme, titleSuffix string) Chart {
	values := make([]map[string]any, 0, len(records))
	aqiMin, aqiMax := 0.0, 0.0
	seenAQI := false
	maxDate := aqiDomainStart
	for _, r := range records {
		values = append(values, map[string]any{
			"date":      r.Date.Format(dateLayout),
			"ridership": floatOrNil(r.SubwayRidership),
			"daily_aqi": floatOrNil(r.DailyAQI),
			"period":    scheme.Classify(r.Date),
		})
		if r.DailyAQI != nil {
			if !seenAQI {
				aqiMin, aqiMax = *r.DailyAQI, *r.DailyAQI
				seenAQI = true
			}
			if *r.DailyAQI < aqiMin {
				aqiMin = *r.DailyAQI
			}
			if *r.DailyAQI > aqiMax {
				aqiMax = *r.DailyAQI
			}
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}

	sliderDefault := aqiMax
	if sliderDefault > 120 {
		sliderDefault = 120
	}

	data := map[string]any{"values": values}
	xDomain := []string{aqiDomainStart.Format(dateLayout), maxDate.Format(dateLayout)}
	periodColor := map[string]any{
		"field": "period",
		"type":  "nominal",
		"title": "Period",
		"scale": map[string]any{"domain": scheme.Order, "range": scheme.Colors},
	}
	filters := []map[string]any{
		{"filter": map[string]any{"param": "DateRange"}},
		{"filter": "datum.daily_aqi <= AQIMax"},
	}

	top := map[string]any{
		"data": data,
		"mark": "line",
		"params": []map[string]any{
			{
				"name":   "DateRange",
				"select": map[string]any{"type": "interval", "encodings": []string{"x"}},
			},
			{
				"name":  "AQIMax",
				"value": sliderDefault,
				"bind": map[string]any{
					"input": "range",
					"min":   aqiMin,
					"max":   aqiMax,
					"step":  1,
					"name":  "Max AQI: ",
				},
			},
		},
		"encoding": map[string]any{
			"x": map[string]any{
				"field": "date",
				"type":  "temporal",
				"scale": map[string]any{"domain": xDomain},
				"axis": map[string]any{
					"format":    "%b %Y",
					"tickCount": "month",
					"title":     "Date",
					"labelFont": fontStack,
					"titleFont": fontStack,
				},
			},
			"y": map[string]any{
				"field": "daily_aqi",
				"type":  "quantitative",
				"title": "Daily AQI",
				"axis":  fontAxis(),
			},
			"color": periodColor,
			"tooltip": []map[string]any{
				{"field": "date", "type": "temporal"},
				{"field": "daily_aqi", "type": "quantitative"},
				{"field": "period", "type": "nominal"},
			},
		},
		"width":  800,
		"height": 140,
		"title":  "Brush to filter the scatter below",
	}

	scatter := map[string]any{
		"data":      data,
		"transform": filters,
		"mark":      map[string]any{"type": "point", "opacity": 0.6, "size": 35},
		"encoding": map[string]any{
			"x": map[string]any{
				"field": "date",
				"type":  "temporal",
				"scale": map[string]any{"domain": xDomain},
				"axis": map[string]any{
					"format":    "%Y-%m",
					"title":     "Date",
					"labelFont": fontStack,
					"titleFont": fontStack,
				},
			},
			"y": map[string]any{
				"field": "ridership",
				"type":  "quantitative",
				"title": "Ridership",
				"axis":  fontAxis(),
			},
			"color": periodColor,
			"tooltip": []map[string]any{
				{"field": "date", "type": "temporal"},
				{"field": "ridership", "type": "quantitative", "title": "Ridership"},
				{"field": "daily_aqi", "type": "quantitative"},
				{"field": "period", "type": "nominal"},
			},
		},
		"width":  800,
		"height": 360,
		"title":  fmt.Sprintf("Subway Ridership over Time under AQI Threshold (%s)", titleSuffix),
	}

	regression := map[string]any{
		"data": data,
		"transform": append(append([]map[string]any{}, filters...), map[string]any{
			"regression": "ridership",
			"on":         "date",
			"groupby":    []string{"period"},
		}),
		"mark": map[string]any{"type": "line", "strokeDash": []int{4, 2}},
		"encoding": map[string]any{
			"x": map[string]any{
				"field": "date",
				"type":  "temporal",
				"scale": map[string]any{"domain": xDomain},
			},
			"y":     map[string]any{"field": "ridership", "type": "quantitative"},
			"color": periodColor,
		},
	}

	spec := newSpec()
	spec["vconcat"] = []map[string]any{
		top,
		{"layer": []map[string]any{scatter, regression}},
	}
	spec["resolve"] = map[string]any{"scale": map[string]any{"color": "shared"}}
	spec["config"] = map[string]any{
		"title": map[string]any{"font": fontStack},
		"axis":  fontAxis(),
	}

	return Chart{Name: name, Spec: spec}
}
