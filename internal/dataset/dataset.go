// Package dataset joins the loaded source tables and converts joined rows
// into typed daily records.
package dataset

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/transit-weather-charts/internal/adapter/csvfile"
	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

// Source column names, snake_cased as exported.
const (
	ColSubwayTotal = "subways_total_estimated_ridership"
	ColSubwayPct   = "subways_pct_of_comparable_pre_pandemic_day"
	ColBusTotal    = "buses_total_estimated_ridership"
	ColBusPct      = "buses_pct_of_comparable_pre_pandemic_day"
	ColBridgeTotal = "bridges_and_tunnels_total_traffic"
	ColBridgePct   = "bridges_and_tunnels_pct_of_comparable_pre_pandemic_day"
	ColPrecip      = "precipitation_sum"
	ColTemp        = "temperature_2m_mean"
	ColAQI         = "daily_aqi"
)

// Tables holds the three loaded source frames with normalized date keys.
type Tables struct {
	Ridership  dataframe.DataFrame
	Weather    dataframe.DataFrame
	AirQuality dataframe.DataFrame
}

// MergeWeather inner-joins ridership with daily weather on the date key.
// Dates present on only one side are dropped; that loss is the contract,
// callers wanting to observe it compare row counts before and after.
func MergeWeather(t Tables) (dataframe.DataFrame, error) {
	df := t.Ridership.InnerJoin(t.Weather, csvfile.DateColumn)
	if df.Error() != nil {
		return df, fmt.Errorf("join ridership with weather: %w", df.Error())
	}
	return df, nil
}

// MergeAirQuality inner-joins ridership with the air-quality table on the
// date key.
func MergeAirQuality(t Tables) (dataframe.DataFrame, error) {
	df := t.Ridership.InnerJoin(t.AirQuality, csvfile.DateColumn)
	if df.Error() != nil {
		return df, fmt.Errorf("join ridership with air quality: %w", df.Error())
	}
	return df, nil
}

// ToRecords converts a (possibly joined) frame into typed daily records.
// Columns the frame doesn't carry stay nil on every record. Empty cells
// become nil; a non-empty cell that fails to parse as a number is an error,
// so malformed source data stops the run instead of corrupting aggregates.
func ToRecords(df dataframe.DataFrame) ([]domain.DailyRecord, error) {
	rows := df.Records()
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty frame")
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[name] = i
	}
	dateIdx, ok := idx[csvfile.DateColumn]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", csvfile.DateColumn)
	}

	records := make([]domain.DailyRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		date, err := time.Parse("2006-01-02", row[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date key %q", n+1, row[dateIdx])
		}

		rec := domain.DailyRecord{Date: date}
		for _, f := range []struct {
			col  string
			dest **float64
		}{
			{ColSubwayTotal, &rec.SubwayRidership},
			{ColSubwayPct, &rec.SubwayPct},
			{ColBusTotal, &rec.BusRidership},
			{ColBusPct, &rec.BusPct},
			{ColBridgeTotal, &rec.BridgeTraffic},
			{ColBridgePct, &rec.BridgePct},
			{ColPrecip, &rec.PrecipitationSum},
			{ColTemp, &rec.MeanTemperature},
			{ColAQI, &rec.DailyAQI},
		} {
			i, ok := idx[f.col]
			if !ok {
				continue
			}
			v, err := parseCell(row[i])
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", n+1, f.col, err)
			}
			*f.dest = v
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseCell parses a numeric cell: empty (or NaN sentinel) → nil, anything
// else must be a valid float.
func parseCell(s string) (*float64, error) {
	if s == "" || s == "NaN" || s == "NA" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("unparseable number %q", s)
	}
	return &v, nil
}
