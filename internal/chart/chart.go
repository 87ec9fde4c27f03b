// Package chart builds the Vega-Lite v5 specifications for the five emitted
// charts. Builders are pure functions from aggregated tables to a Chart; all
// category orderings and color domain→range mappings are written into the
// spec explicitly so rendering is deterministic.
package chart

import (
	"time"

	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

// Chart is one named chart specification ready for emission.
type Chart struct {
	Name string
	Spec map[string]any
}

const (
	schemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

	// fontStack matches the typography the charts have always shipped with.
	fontStack = "SF Pro Display, SF Pro Icons, Helvetica Neue, Helvetica, Arial, sans-serif"

	dateLayout = "2006-01-02"
)

// newSpec starts a spec with the schema reference and reproducibility
// metadata stamped from the domain clock.
func newSpec() map[string]any {
	return map[string]any{
		"$schema": schemaURL,
		"usermeta": map[string]any{
			"generatedAt": domain.Now().UTC().Format(time.RFC3339),
		},
	}
}

// fontAxis is the axis config block shared by every chart.
func fontAxis() map[string]any {
	return map[string]any{"labelFont": fontStack, "titleFont": fontStack}
}

// floatOrNil unwraps an optional measure for JSON encoding (nil → null).
func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// labels widens a typed label slice for JSON encoding.
func labels[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
