// Command gendata writes synthetic ridership, weather, and air-quality CSVs
// that are schema-compatible with the real exports, so the chart build can be
// exercised without the production datasets. It uses the domain period scheme
// to shape the ridership collapse and recovery, and a seeded generator so the
// output is reproducible.
//
// Usage:
//
//	go run ./cmd/gendata -out-dir data -days 1500 -seed 1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/transit-weather-charts/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data", "directory to write the CSV files into")
	days := flag.Int("days", 1500, "number of consecutive days to generate")
	seed := flag.Int64("seed", 1, "PRNG seed")
	start := flag.String("start", "2020-01-01", "first date (ISO)")
	flag.Parse()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("bad -start: %w", err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))

	if err := writeRidership(filepath.Join(*outDir, "mta_ridership.csv"), startDate, *days, rng); err != nil {
		return err
	}
	if err := writeWeather(filepath.Join(*outDir, "weather_daily.csv"), startDate, *days, rng); err != nil {
		return err
	}
	if err := writeAirQuality(filepath.Join(*outDir, "ny_air_quality.csv"), startDate, *days, rng); err != nil {
		return err
	}

	log.Printf("wrote %d days of synthetic data to %s", *days, *outDir)
	return nil
}

// periodFactor shapes ridership by pandemic-timeline phase.
func periodFactor(date time.Time) float64 {
	switch domain.SchemeTimeline.Classify(date) {
	case "Pre-Pandemic":
		return 1.0
	case "During Pandemic":
		return 0.18
	case "Recovery Phase":
		return 0.55
	default:
		return 0.72
	}
}

func weekendFactor(date time.Time) float64 {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return 0.6
	default:
		return 1.0
	}
}

func writeRidership(path string, start time.Time, days int, rng *rand.Rand) error {
	header := []string{
		"date",
		"subways_total_estimated_ridership", "subways_pct_of_comparable_pre_pandemic_day",
		"buses_total_estimated_ridership", "buses_pct_of_comparable_pre_pandemic_day",
		"bridges_and_tunnels_total_traffic", "bridges_and_tunnels_pct_of_comparable_pre_pandemic_day",
	}

	rows := make([][]string, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		pf := periodFactor(date)
		wf := weekendFactor(date)

		subwayBase := 5_500_000 * wf
		busBase := 2_200_000 * wf
		bridgeBase := 900_000 * wf

		// Bridges dipped far less than transit.
		bridgePF := pf + (1-pf)*0.6

		subway := subwayBase * pf * jitter(rng, 0.08)
		bus := busBase * pf * jitter(rng, 0.08)
		bridge := bridgeBase * bridgePF * jitter(rng, 0.05)

		rows = append(rows, []string{
			date.Format("2006-01-02"),
			strconv.FormatFloat(math.Round(subway), 'f', -1, 64),
			strconv.FormatFloat(subway/subwayBase, 'f', 4, 64),
			strconv.FormatFloat(math.Round(bus), 'f', -1, 64),
			strconv.FormatFloat(bus/busBase, 'f', 4, 64),
			strconv.FormatFloat(math.Round(bridge), 'f', -1, 64),
			strconv.FormatFloat(bridge/bridgeBase, 'f', 4, 64),
		})
	}
	return writeCSV(path, header, rows)
}

func writeWeather(path string, start time.Time, days int, rng *rand.Rand) error {
	header := []string{"date", "precipitation_sum", "temperature_2m_mean"}

	rows := make([][]string, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)

		// Seasonal temperature: coldest late January, warmest late July.
		phase := 2 * math.Pi * float64(date.YearDay()-25) / 365
		temp := 12 - 15*math.Cos(phase) + rng.NormFloat64()*3

		precip := ""
		switch {
		case rng.Float64() < 0.02:
			// occasional missing gauge reading
		case rng.Float64() < 0.6:
			precip = "0"
		default:
			p := math.Pow(rng.Float64(), 3) * 40
			precip = strconv.FormatFloat(p, 'f', 2, 64)
		}

		tempStr := strconv.FormatFloat(temp, 'f', 1, 64)
		if rng.Float64() < 0.01 {
			tempStr = ""
		}

		rows = append(rows, []string{date.Format("2006-01-02"), precip, tempStr})
	}
	return writeCSV(path, header, rows)
}

func writeAirQuality(path string, start time.Time, days int, rng *rand.Rand) error {
	header := []string{"date", "daily_aqi"}

	rows := make([][]string, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)

		// Summer ozone pushes AQI up.
		phase := 2 * math.Pi * float64(date.YearDay()-205) / 365
		aqi := 45 - 12*math.Cos(phase) + rng.NormFloat64()*10
		if aqi < 5 {
			aqi = 5
		}

		aqiStr := strconv.Itoa(int(math.Round(aqi)))
		if rng.Float64() < 0.03 {
			aqiStr = ""
		}

		rows = append(rows, []string{date.Format("2006-01-02"), aqiStr})
	}
	return writeCSV(path, header, rows)
}

func jitter(rng *rand.Rand, scale float64) float64 {
	return 1 + rng.NormFloat64()*scale
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	return w.Error()
}
