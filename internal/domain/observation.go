package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawHourlyRecord represents the flat JSON structure produced by the weather
// collector: one hourly surface observation per message. Numeric fields
// arrive as strings because upstream sources mix formats; optional fields may
// be empty.
type RawHourlyRecord struct {
	Station     string `json:"Station"`
	Time        string `json:"Time"`        // RFC 3339 observation hour
	AirTemp     string `json:"AirTemp"`     // dry bulb in C
	RelHumidity string `json:"RelHumidity"` // %
	WindSpeed   string `json:"WindSpeed"`   // m/s at 10 m; empty means calm
	RadTemp     string `json:"RadTemp"`     // mean radiant temp in C; empty means same as AirTemp
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Observation is the typed hourly observation after parsing.
type Observation struct {
	ID             string    `json:"id"`
	Station        string    `json:"station"`
	Time           time.Time `json:"time"`
	AirTempC       float64   `json:"air_temp_c"`
	RadTempC       float64   `json:"rad_temp_c"`
	WindSpeedMS    float64   `json:"wind_speed_ms"`
	RelHumidityPct float64   `json:"rel_humidity_pct"`

	RawPayload []byte `json:"-"`
}

// ComfortReport is the enriched, serialized form destined for the sink topic:
// the observation plus its UTCI value and stress classification.
type ComfortReport struct {
	Observation

	UTCIC        float64 `json:"utci_c"`
	Category     int     `json:"category"` // eleven-point scale, -5..+5
	CategoryName string  `json:"category_name"`
	Comfortable  bool    `json:"comfortable"`

	ProcessedAt time.Time `json:"processed_at"`
}

// ParseRawObservation deserializes a RawEvent's value into an Observation.
// Station, Time, AirTemp, and RelHumidity are required; WindSpeed defaults
// to still air (0.1 m/s) and RadTemp to the air temperature, matching the
// calculator defaults.
func ParseRawObservation(raw RawEvent) (Observation, error) {
	var rec RawHourlyRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Observation{}, fmt.Errorf("parse raw observation: %w", err)
	}

	if strings.TrimSpace(rec.Station) == "" {
		return Observation{}, fmt.Errorf("parse raw observation: missing station")
	}
	obsTime, err := time.Parse(time.RFC3339, strings.TrimSpace(rec.Time))
	if err != nil {
		return Observation{}, fmt.Errorf("parse raw observation: bad time %q: %w", rec.Time, err)
	}
	airTemp, err := parseFloat(rec.AirTemp)
	if err != nil {
		return Observation{}, fmt.Errorf("parse raw observation: bad air temp %q", rec.AirTemp)
	}
	relHum, err := parseFloat(rec.RelHumidity)
	if err != nil {
		return Observation{}, fmt.Errorf("parse raw observation: bad humidity %q", rec.RelHumidity)
	}

	windSpeed := 0.1
	if strings.TrimSpace(rec.WindSpeed) != "" {
		if windSpeed, err = parseFloat(rec.WindSpeed); err != nil {
			return Observation{}, fmt.Errorf("parse raw observation: bad wind speed %q", rec.WindSpeed)
		}
	}
	radTemp := airTemp
	if strings.TrimSpace(rec.RadTemp) != "" {
		if radTemp, err = parseFloat(rec.RadTemp); err != nil {
			return Observation{}, fmt.Errorf("parse raw observation: bad radiant temp %q", rec.RadTemp)
		}
	}

	return Observation{
		ID:             generateID(rec.Station, obsTime),
		Station:        rec.Station,
		Time:           obsTime,
		AirTempC:       airTemp,
		RadTempC:       radTemp,
		WindSpeedMS:    windSpeed,
		RelHumidityPct: relHum,

		RawPayload: raw.Value,
	}, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// generateID produces a deterministic ID from the station and observation
// hour. Reprocessing the same raw observation produces the same ID.
func generateID(station string, t time.Time) string {
	input := fmt.Sprintf("%s|%s", station, t.UTC().Format(time.RFC3339))
	hash := sha256.Sum256([]byte(input))
	return station + "-" + hex.EncodeToString(hash[:8])
}
