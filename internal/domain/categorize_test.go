package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestBinPrecipitation(t *testing.T) {
	tests := []struct {
		name     string
		value    *float64
		expected PrecipitationLevel
	}{
		{"missing value", nil, PrecipNoData},
		{"zero", fptr(0), PrecipNoRain},
		{"trace", fptr(0.05), PrecipLight},
		{"light upper edge inclusive", fptr(0.1), PrecipLight},
		{"moderate", fptr(0.3), PrecipModerate},
		{"moderate upper edge inclusive", fptr(0.5), PrecipModerate},
		{"just past moderate", fptr(0.51), PrecipHeavy},
		{"downpour", fptr(12), PrecipHeavy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BinPrecipitation(tt.value))
		})
	}
}

func TestCategorizeWeather(t *testing.T) {
	tests := []struct {
		name     string
		precip   *float64
		temp     *float64
		expected WeatherCategory
	}{
		{"zero precip warm", fptr(0), fptr(10), WeatherSunny},
		{"zero precip freezing", fptr(0), fptr(-10), WeatherSunny},
		{"zero precip no temp", fptr(0), nil, WeatherSunny},
		{"light snow", fptr(4), fptr(-1), WeatherLightSnow},
		{"moderate snow", fptr(10), fptr(-5), WeatherModerateSnow},
		{"heavy snow at tier edge", fptr(15), fptr(-5), WeatherHeavySnow},
		{"drizzle", fptr(2), fptr(5), WeatherDrizzle},
		{"light rain", fptr(5), fptr(5), WeatherLightRain},
		{"light rain upper edge", fptr(8), fptr(5), WeatherLightRain},
		{"moderate rain", fptr(10), fptr(5), WeatherModerateRain},
		{"moderate rain upper edge", fptr(20), fptr(5), WeatherModerateRain},
		{"heavy rain upper edge", fptr(35), fptr(5), WeatherHeavyRain},
		{"storm", fptr(35.5), fptr(5), WeatherStorm},
		// A missing temperature never reaches the snow branch.
		{"no temp takes rain path", fptr(10), nil, WeatherModerateRain},
		{"no temp drizzle", fptr(1), nil, WeatherDrizzle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategorizeWeather(tt.precip, tt.temp)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, *got)
		})
	}

	t.Run("missing precipitation is undefined", func(t *testing.T) {
		assert.Nil(t, CategorizeWeather(nil, fptr(5)))
		assert.Nil(t, CategorizeWeather(nil, nil))
	})
}

func TestZeroPrecipBeatsFreezing(t *testing.T) {
	// Sunny wins over the snow branch whenever precipitation is exactly zero.
	for _, temp := range []float64{-30, -0.1, 0, 25} {
		got := CategorizeWeather(fptr(0), fptr(temp))
		require.NotNil(t, got)
		assert.Equal(t, WeatherSunny, *got, "temp=%v", temp)
	}
}
