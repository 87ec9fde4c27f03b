package domain

import "time"

// periodBand is one interval of a scheme: dates strictly before End carry Label.
type periodBand struct {
	label string
	end   time.Time // exclusive upper bound
}

// PeriodScheme assigns pandemic-era period labels to dates. Two schemes exist
// in this dataset with different cut dates and label strings; they are kept as
// separate named configurations and callers must pick one explicitly. Keeping
// the boundaries in a table (rather than branching at each call site) is what
// stops the two taxonomies drifting apart silently.
type PeriodScheme struct {
	// Name identifies the scheme in logs and artifacts.
	Name string
	// Order lists the labels oldest-first; it doubles as the color domain.
	Order []string
	// Colors is the color range parallel to Order.
	Colors []string

	bands []periodBand
	final string
}

// Classify returns the period label for a date. The bands partition the date
// line: each boundary instant belongs to the later bucket, and any date past
// the last boundary gets the final label. Exactly one label applies.
func (s PeriodScheme) Classify(date time.Time) string {
	for _, b := range s.bands {
		if date.Before(b.end) {
			return b.label
		}
	}
	return s.final
}

var periodColors = []string{"#2ca02c", "#1f77b4", "#d62728", "#ff7f0e"}

// SchemeTimeline is the pandemic-timeline taxonomy: cuts at 2020-03-15,
// 2021-07-01 and 2023-01-01, each cut date starting the later period.
var SchemeTimeline = PeriodScheme{
	Name:   "pandemic_timeline",
	Order:  []string{"Pre-Pandemic", "During Pandemic", "Recovery Phase", "Post-Pandemic"},
	Colors: periodColors,
	bands: []periodBand{
		{label: "Pre-Pandemic", end: day(2020, time.March, 15)},
		{label: "During Pandemic", end: day(2021, time.July, 1)},
		{label: "Recovery Phase", end: day(2023, time.January, 1)},
	},
	final: "Post-Pandemic",
}

// SchemeCOVID is the COVID-band taxonomy. Its source definition uses inclusive
// day ends (During through 2021-06-30, Recovery through 2022-12-31); at day
// resolution that is equivalent to the exclusive cuts stored here.
var SchemeCOVID = PeriodScheme{
	Name:   "covid_bands",
	Order:  []string{"Pre-COVID", "During-COVID", "Recovery", "Post-COVID"},
	Colors: periodColors,
	bands: []periodBand{
		{label: "Pre-COVID", end: day(2020, time.March, 1)},
		{label: "During-COVID", end: day(2021, time.July, 1)},
		{label: "Recovery", end: day(2023, time.January, 1)},
	},
	final: "Post-COVID",
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
