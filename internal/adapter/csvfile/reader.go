// Package csvfile loads the source CSV tables into dataframes with
// normalized date keys.
package csvfile

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DateColumn is the join key column present in every source table.
const DateColumn = "date"

// dateLayout is the normalized key format all joins run on.
const dateLayout = "2006-01-02"

// dateLayouts are the accepted input formats, tried in order. The ridership
// export uses US-style dates; the weather and air-quality exports use ISO.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// Reader loads CSV files into string-typed dataframes. Numeric parsing is
// deferred to the dataset conversion so that empty cells and malformed
// values can be told apart.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// Load reads one CSV file and rewrites its date column to the normalized
// ISO key format. A missing file or an unparseable date is an error.
func (r *Reader) Load(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return df, fmt.Errorf("read csv %s: %w", path, df.Error())
	}

	df, err = NormalizeDates(df, DateColumn)
	if err != nil {
		return df, fmt.Errorf("%s: %w", path, err)
	}

	r.logger.Debug("source loaded", "path", path, "rows", df.Nrow())
	return df, nil
}

// NormalizeDates parses every value of the named column with the accepted
// layouts and rewrites it as an ISO date string, so tables exported with
// different date formats join on identical keys.
func NormalizeDates(df dataframe.DataFrame, col string) (dataframe.DataFrame, error) {
	if !hasColumn(df, col) {
		return df, fmt.Errorf("missing required column %q", col)
	}

	raw := df.Col(col).Records()
	norm := make([]string, len(raw))
	for i, v := range raw {
		t, err := ParseDate(v)
		if err != nil {
			return df, fmt.Errorf("row %d: %w", i+1, err)
		}
		norm[i] = t.Format(dateLayout)
	}

	out := df.Mutate(series.New(norm, series.String, col))
	if out.Error() != nil {
		return df, fmt.Errorf("normalize %q: %w", col, out.Error())
	}
	return out, nil
}

// ParseDate parses a date cell, trying each accepted layout.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func hasColumn(df dataframe.DataFrame, col string) bool {
	for _, name := range df.Names() {
		if name == col {
			return true
		}
	}
	return false
}
