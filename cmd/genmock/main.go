// Command genmock generates a synthetic day of hourly weather observations and
// the matching comfort reports for test fixtures. It runs the actual domain
// transformation with a fixed clock so the transformed output matches real
// pipeline behavior and stays reproducible.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -raw-out data/mock/observations_240621_raw.json \
//	  -report-out data/mock/observations_240621_reports.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/parth025sharma/ladybug-comfort/internal/domain"
)

var baseDate = time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

// stationDef shapes one station's diurnal cycle: temperature swings
// sinusoidally around meanTempC with the given amplitude, peaking at 15:00.
type stationDef struct {
	station   string
	meanTempC float64
	swingC    float64
	meanRH    float64
	windMS    float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rawOut := flag.String("raw-out", "", "output path for raw observation JSON fixture")
	reportOut := flag.String("report-out", "", "output path for comfort report JSON fixture")
	flag.Parse()

	if *rawOut == "" || *reportOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -raw-out, -report-out")
	}

	defs := []stationDef{
		{station: "KBDU", meanTempC: 22, swingC: 9, meanRH: 40, windMS: 2.5},
		{station: "KPHX", meanTempC: 36, swingC: 7, meanRH: 15, windMS: 1.5},
		{station: "PAFA", meanTempC: 12, swingC: 5, meanRH: 55, windMS: 3.0},
	}

	// Fix the clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.June, 22, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	records := make([]domain.RawHourlyRecord, 0, len(defs)*24)
	reports := make([]domain.ComfortReport, 0, len(defs)*24)

	for _, d := range defs {
		for hour := 0; hour < 24; hour++ {
			rec := hourlyRecord(d, hour)
			records = append(records, rec)

			report, err := transformRecord(rec)
			if err != nil {
				return fmt.Errorf("transforming %s hour %d: %w", d.station, hour, err)
			}
			reports = append(reports, report)
		}
		log.Printf("%s: 24 records", d.station)
	}

	if err := writeJSON(*rawOut, records); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*reportOut, reports); err != nil {
		return fmt.Errorf("writing report fixture: %w", err)
	}
	log.Printf("wrote report fixture: %s", *reportOut)

	printStats(reports)
	return nil
}

func hourlyRecord(d stationDef, hour int) domain.RawHourlyRecord {
	// Peak at 15:00 local, trough at 03:00.
	phase := 2 * math.Pi * float64(hour-15) / 24
	temp := d.meanTempC + d.swingC*math.Cos(phase)
	// Humidity runs inverse to temperature over the day.
	rh := d.meanRH - 0.6*d.swingC*math.Cos(phase)

	return domain.RawHourlyRecord{
		Station:     d.station,
		Time:        baseDate.Add(time.Duration(hour) * time.Hour).Format(time.RFC3339),
		AirTemp:     formatFloat(temp),
		RelHumidity: formatFloat(rh),
		WindSpeed:   formatFloat(d.windMS),
	}
}

// transformRecord runs the actual ETL transformation.
func transformRecord(rec domain.RawHourlyRecord) (domain.ComfortReport, error) {
	rawJSON, err := json.Marshal(rec)
	if err != nil {
		return domain.ComfortReport{}, err
	}
	obs, err := domain.ParseRawObservation(domain.RawEvent{
		Value:     rawJSON,
		Timestamp: baseDate,
	})
	if err != nil {
		return domain.ComfortReport{}, err
	}
	return domain.EnrichObservation(obs, nil), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(reports []domain.ComfortReport) {
	categoryCounts := map[string]int{}
	comfortable := 0
	var minUTCI, maxUTCI float64
	for i := range reports {
		r := &reports[i]
		categoryCounts[r.CategoryName]++
		if r.Comfortable {
			comfortable++
		}
		if i == 0 || r.UTCIC < minUTCI {
			minUTCI = r.UTCIC
		}
		if i == 0 || r.UTCIC > maxUTCI {
			maxUTCI = r.UTCIC
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(reports))
	fmt.Printf("Comfortable: %d\n", comfortable)
	fmt.Printf("UTCI range: %.1f to %.1f C\n", minUTCI, maxUTCI)
	fmt.Println("By category:")
	for name, count := range categoryCounts {
		fmt.Printf("  %s: %d\n", name, count)
	}
}
