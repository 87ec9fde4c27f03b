// Package domain models one calendar day of New York transit, weather, and
// air-quality data and the categorical labels derived from it.
//
// # Data Sources
//
// Three daily CSV tables joined on the "date" column:
//
//	mta_ridership.csv   — estimated riders and percent-of-comparable-pre-pandemic-day
//	                      per mode (subways, buses, bridges & tunnels)
//	weather_daily.csv   — precipitation_sum (mm) and temperature_2m_mean (°C)
//	ny_air_quality.csv  — daily_aqi
//
// Joins are inner: a date missing from either side of a join is dropped
// silently. Empty cells become nil fields, never zeros.
//
// # Precipitation Levels
//
// Daily precipitation totals bucket into an ordinal scale with inclusive
// upper edges:
//
//	nil → No Data | 0 → No Rain | ≤0.1 → Light | ≤0.5 → Moderate | else Heavy
//
// # Weather Categories
//
// Conditions derive jointly from precipitation and mean temperature. Zero
// precipitation is Sunny at any temperature. Sub-freezing days with
// precipitation split into snow tiers (<5 Light, <15 Moderate, else Heavy
// Snow); non-freezing days split into rain tiers (≤2 Drizzle, ≤8 Light Rain,
// ≤20 Moderate Rain, ≤35 Heavy Rain, else Storm). A day with precipitation
// but no recorded temperature takes the rain tiers — the snow branch requires
// a known sub-freezing temperature. Nil precipitation leaves the condition
// unknown (nil).
//
// # Period Schemes
//
// Two independent pandemic-era taxonomies label each date. They answer the
// same question with different boundaries and different label strings, so
// they are kept as separate named [PeriodScheme] configurations:
//
//	pandemic_timeline: Pre-Pandemic | During Pandemic (from 2020-03-15)
//	                   | Recovery Phase (from 2021-07-01) | Post-Pandemic (from 2023-01-01)
//	covid_bands:       Pre-COVID | During-COVID (from 2020-03-01)
//	                   | Recovery (from 2021-07-01) | Post-COVID (from 2023-01-01)
//
// Boundary dates always belong to the later period. Callers choose a scheme
// explicitly; nothing infers one.
package domain
