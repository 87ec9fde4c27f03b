package render

import (
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/transit-weather-charts/internal/aggregate"
	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heatmap.png")
	r := NewRenderer(path, "", slog.New(slog.NewTextHandler(io.Discard, nil)))

	cells := []aggregate.HeatmapCell{
		{Day: "Monday", Level: domain.PrecipNoRain, MeanRidership: fptr(1000000), Count: 4},
		{Day: "Friday", Level: domain.PrecipHeavy, MeanRidership: fptr(3000000), Count: 2},
		{Day: "Sunday", Level: domain.PrecipNoData, MeanRidership: nil, Count: 0},
	}
	require.NoError(t, r.Render(cells))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)

	// Three distinct levels present, seven day rows.
	wantW := marginL + cellW*3 + marginR
	wantH := marginT + cellH*len(domain.DayOrder) + marginB
	assert.Equal(t, wantW, img.Bounds().Dx())
	assert.Equal(t, wantH, img.Bounds().Dy())
}

func TestRenderMissingFontFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heatmap.png")
	r := NewRenderer(path, "/nonexistent/font.ttf", slog.New(slog.NewTextHandler(io.Discard, nil)))

	cells := []aggregate.HeatmapCell{
		{Day: "Monday", Level: domain.PrecipNoRain, MeanRidership: fptr(1), Count: 1},
	}
	assert.Error(t, r.Render(cells))
}

func TestRamp(t *testing.T) {
	r, g, b := ramp(0)
	assert.Equal(t, [3]int{247, 251, 255}, [3]int{r, g, b})

	r, g, b = ramp(1)
	assert.Equal(t, [3]int{8, 48, 107}, [3]int{r, g, b})

	// Out-of-range inputs clamp to the endpoints.
	r1, g1, b1 := ramp(-3)
	r2, g2, b2 := ramp(0)
	assert.Equal(t, [3]int{r2, g2, b2}, [3]int{r1, g1, b1})
}

func TestLevelsPresentKeepsCanonicalOrder(t *testing.T) {
	cells := []aggregate.HeatmapCell{
		{Day: "Monday", Level: domain.PrecipHeavy},
		{Day: "Monday", Level: domain.PrecipNoRain},
		{Day: "Tuesday", Level: domain.PrecipHeavy},
	}
	got := levelsPresent(cells)
	assert.Equal(t, []domain.PrecipitationLevel{domain.PrecipNoRain, domain.PrecipHeavy}, got)
}
