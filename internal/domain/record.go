package domain

import "time"

// Mode identifies a transit mode column family in the ridership dataset.
type Mode string

const (
	ModeSubway Mode = "subway"
	ModeBus    Mode = "bus"
	ModeBridge Mode = "bridge"
)

// Modes lists the transit modes in display order.
var Modes = []Mode{ModeSubway, ModeBus, ModeBridge}

// DailyRecord is one calendar day after joining ridership with weather and/or
// air quality. Date is the join key; every other field is nil when the source
// cell was empty or the column was absent from the joined table.
//
// Percent fields are stored as ratios of the comparable pre-pandemic day,
// exactly as they appear in the source data (0.55 = 55%).
type DailyRecord struct {
	Date time.Time

	SubwayRidership *float64
	SubwayPct       *float64
	BusRidership    *float64
	BusPct          *float64
	BridgeTraffic   *float64
	BridgePct       *float64

	PrecipitationSum *float64 // mm
	MeanTemperature  *float64 // °C
	DailyAQI         *float64
}

// DayOfWeek returns the English day name for the record's date.
func (r DailyRecord) DayOfWeek() string {
	return r.Date.Weekday().String()
}

// DayOrder is the canonical day-of-week ordering used by every chart.
var DayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}
