package excel

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/transit-weather-charts/internal/aggregate"
	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	w := NewWriter(path, slog.New(slog.NewTextHandler(io.Discard, nil)))

	cells := []aggregate.HeatmapCell{
		{Day: "Monday", Level: domain.PrecipNoRain, MeanRidership: fptr(1500000), Count: 3},
		{Day: "Tuesday", Level: domain.PrecipHeavy, MeanRidership: nil, Count: 0},
	}
	usage := []aggregate.UsageRow{
		{Date: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), Mode: domain.ModeSubway, Total: fptr(1000000), Pct: fptr(0.5)},
		{Date: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), Mode: domain.ModeBus, Total: nil, Pct: nil},
	}
	periods := []aggregate.PeriodStat{
		{Period: "Pre-COVID", Days: 10, MeanAQI: fptr(32.5)},
		{Period: "During-COVID", Days: 0, MeanAQI: nil},
	}

	require.NoError(t, w.Write(cells, usage, periods))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Heatmap", "Usage", "AQI Periods"}, f.GetSheetList())

	// Heatmap matrix: levels across the top, days down the side.
	v, err := f.GetCellValue("Heatmap", "B1")
	require.NoError(t, err)
	assert.Equal(t, "No Rain", v)
	v, err = f.GetCellValue("Heatmap", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Monday", v)
	v, err = f.GetCellValue("Heatmap", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1500000", v)

	// Empty groups stay blank rather than writing a zero.
	v, err = f.GetCellValue("Heatmap", "E3")
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = f.GetCellValue("Usage", "B2")
	require.NoError(t, err)
	assert.Equal(t, "subway", v)
	v, err = f.GetCellValue("Usage", "D2")
	require.NoError(t, err)
	assert.Equal(t, "50", v, "stored ratio written as display percent")
	v, err = f.GetCellValue("Usage", "C3")
	require.NoError(t, err)
	assert.Empty(t, v, "nil totals stay blank")

	v, err = f.GetCellValue("AQI Periods", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Pre-COVID", v)
	v, err = f.GetCellValue("AQI Periods", "C3")
	require.NoError(t, err)
	assert.Empty(t, v, "nil mean stays blank")
}
