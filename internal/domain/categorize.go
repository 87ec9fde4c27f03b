package domain

// PrecipitationLevel is the ordinal bucket over daily precipitation totals
// used by the ridership heatmap.
type PrecipitationLevel string

const (
	PrecipNoRain   PrecipitationLevel = "No Rain"
	PrecipLight    PrecipitationLevel = "Light Rain"
	PrecipModerate PrecipitationLevel = "Moderate Rain"
	PrecipHeavy    PrecipitationLevel = "Heavy Rain"
	PrecipNoData   PrecipitationLevel = "No Data"
)

// PrecipitationOrder is the axis ordering for precipitation levels.
var PrecipitationOrder = []PrecipitationLevel{
	PrecipNoRain, PrecipLight, PrecipModerate, PrecipHeavy, PrecipNoData,
}

// BinPrecipitation maps a daily precipitation total (mm) to its ordinal level.
// Upper bucket edges are inclusive: 0.1 is Light, 0.5 is Moderate. A nil value
// (missing cell) maps to No Data rather than an error. Negative values are not
// expected and pass through the same thresholds unvalidated.
func BinPrecipitation(v *float64) PrecipitationLevel {
	if v == nil {
		return PrecipNoData
	}
	switch {
	case *v == 0:
		return PrecipNoRain
	case *v <= 0.1:
		return PrecipLight
	case *v <= 0.5:
		return PrecipModerate
	default:
		return PrecipHeavy
	}
}

// WeatherCategory is the nominal weather condition derived jointly from
// precipitation and mean temperature.
type WeatherCategory string

const (
	WeatherSunny        WeatherCategory = "Sunny"
	WeatherDrizzle      WeatherCategory = "Drizzle"
	WeatherLightRain    WeatherCategory = "Light Rain"
	WeatherModerateRain WeatherCategory = "Moderate Rain"
	WeatherHeavyRain    WeatherCategory = "Heavy Rain"
	WeatherStorm        WeatherCategory = "Storm"
	WeatherLightSnow    WeatherCategory = "Light Snow"
	WeatherModerateSnow WeatherCategory = "Moderate Snow"
	WeatherHeavySnow    WeatherCategory = "Heavy Snow"
)

// WeatherOrder is the legend/color ordering for weather categories.
var WeatherOrder = []WeatherCategory{
	WeatherSunny, WeatherDrizzle, WeatherLightRain, WeatherModerateRain,
	WeatherHeavyRain, WeatherStorm, WeatherLightSnow, WeatherModerateSnow,
	WeatherHeavySnow,
}

// WeatherColors maps WeatherOrder positions to CSS color names, domain→range.
var WeatherColors = []string{
	"gold", "cyan", "deepskyblue", "dodgerblue", "blue", "navy",
	"lightcyan", "skyblue", "purple",
}

// CategorizeWeather derives a weather condition from precipitation (mm) and
// mean temperature (°C). Nil precipitation yields nil (condition unknown).
// Zero precipitation is Sunny regardless of temperature. Sub-freezing days
// with precipitation take the snow tiers; everything else takes the rain tiers.
//
// A nil temperature with positive precipitation skips the snow branch and
// falls through to the rain tiers. That mirrors how the source data has always
// been categorized; a missing temperature is treated as non-freezing, not as
// an unknown condition.
func CategorizeWeather(precip, temp *float64) *WeatherCategory {
	if precip == nil {
		return nil
	}
	p := *precip

	var c WeatherCategory
	switch {
	case p == 0:
		c = WeatherSunny
	case temp != nil && *temp < 0:
		switch {
		case p < 5:
			c = WeatherLightSnow
		case p < 15:
			c = WeatherModerateSnow
		default:
			c = WeatherHeavySnow
		}
	case p <= 2:
		c = WeatherDrizzle
	case p <= 8:
		c = WeatherLightRain
	case p <= 20:
		c = WeatherModerateRain
	case p <= 35:
		c = WeatherHeavyRain
	default:
		c = WeatherStorm
	}
	return &c
}
