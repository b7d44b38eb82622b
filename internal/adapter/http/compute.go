package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/parth025sharma/ladybug-comfort/internal/comfort"
	"github.com/parth025sharma/ladybug-comfort/internal/series"
	"github.com/parth025sharma/ladybug-comfort/internal/utci"
	"github.com/parth025sharma/ladybug-comfort/internal/validate"
)

// scalarOrSeries accepts either a single JSON number, applied to every
// timestep, or an array with one value per timestep.
type scalarOrSeries struct {
	scalar *float64
	values []float64
}

func (s *scalarOrSeries) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		s.scalar = &n
		return nil
	}
	return json.Unmarshal(data, &s.values)
}

func (s *scalarOrSeries) input(base *series.Collection, dataType series.DataType, unit string) validate.Input {
	if s.scalar != nil {
		return validate.FromScalar(*s.scalar)
	}
	header := series.Header{DataType: dataType, Unit: unit, Timestep: base.Header().Timestep}
	return validate.FromCollection(series.MustNew(header, s.values, s.datetimes(base)))
}

// datetimes returns timestamps for the payload values. Deliberately sized to
// the payload, not the base, so a length mismatch surfaces as a
// misaligned-collections error instead of a panic.
func (s *scalarOrSeries) datetimes(base *series.Collection) []time.Time {
	if len(s.values) == base.Len() {
		return base.Datetimes()
	}
	return series.HourlyDatetimes(base.Datetimes()[0], len(s.values))
}

type computeUTCIRequest struct {
	// StartTime labels the first timestep. Optional, the computation itself
	// depends only on value order.
	StartTime   *time.Time      `json:"start_time"`
	AirTemp     []float64       `json:"air_temp"`
	RelHumidity *scalarOrSeries `json:"rel_humidity"`
	RadTemp     *scalarOrSeries `json:"rad_temp"`
	WindSpeed   *scalarOrSeries `json:"wind_speed"`
}

type computeUTCIResponse struct {
	UTCIC       []float64          `json:"utci_c"`
	Categories  []int              `json:"categories"`
	Percentages computePercentages `json:"percentages"`
}

type computePercentages struct {
	Comfortable   float64            `json:"comfortable"`
	Uncomfortable float64            `json:"uncomfortable"`
	Cold          float64            `json:"cold"`
	Hot           float64            `json:"hot"`
	ByCategory    map[string]float64 `json:"by_category"`
}

func (s *Server) handleComputeUTCI(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	outcome := "error"
	defer func() {
		s.metrics.ComputeRequests.WithLabelValues("utci", outcome).Inc()
		s.metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	}()

	var req computeUTCIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeComputeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if len(req.AirTemp) == 0 {
		writeComputeError(w, http.StatusBadRequest, errors.New("air_temp must be a non-empty array"))
		return
	}
	if req.RelHumidity == nil {
		writeComputeError(w, http.StatusBadRequest, errors.New("rel_humidity is required"))
		return
	}

	startTime := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	airTemp := series.MustNew(
		series.Header{DataType: series.AirTemperature, Unit: "C", Timestep: 1},
		req.AirTemp,
		series.HourlyDatetimes(startTime, len(req.AirTemp)),
	)

	opts := &utci.Options{}
	if req.RadTemp != nil {
		in := req.RadTemp.input(airTemp, series.MeanRadiantTemperature, "C")
		opts.RadTemperature = &in
	}
	if req.WindSpeed != nil {
		in := req.WindSpeed.input(airTemp, series.WindSpeed, "m/s")
		opts.WindSpeed = &in
	}

	calc, err := utci.New(airTemp, req.RelHumidity.input(airTemp, series.RelativeHumidity, "%"), opts)
	if err != nil {
		writeComputeError(w, http.StatusBadRequest, err)
		return
	}

	outcome = "success"
	writeJSON(w, http.StatusOK, computeUTCIResponse{
		UTCIC:      calc.Index().Values(),
		Categories: intValues(calc.ThermalConditionElevenPoint()),
		Percentages: computePercentages{
			Comfortable:   calc.PercentComfortable(),
			Uncomfortable: calc.PercentUncomfortable(),
			Cold:          calc.PercentCold(),
			Hot:           calc.PercentHot(),
			ByCategory:    percentagesByCategory(calc),
		},
	})
}

func percentagesByCategory(calc *utci.UTCI) map[string]float64 {
	return map[string]float64{
		comfort.CategoryName(-5): calc.PercentExtremeColdStress(),
		comfort.CategoryName(-4): calc.PercentVeryStrongColdStress(),
		comfort.CategoryName(-3): calc.PercentStrongColdStress(),
		comfort.CategoryName(-2): calc.PercentModerateColdStress(),
		comfort.CategoryName(-1): calc.PercentSlightColdStress(),
		comfort.CategoryName(0):  calc.PercentComfortable(),
		comfort.CategoryName(1):  calc.PercentSlightHeatStress(),
		comfort.CategoryName(2):  calc.PercentModerateHeatStress(),
		comfort.CategoryName(3):  calc.PercentStrongHeatStress(),
		comfort.CategoryName(4):  calc.PercentVeryStrongHeatStress(),
		comfort.CategoryName(5):  calc.PercentExtremeHeatStress(),
	}
}

func intValues(coll *series.Collection) []int {
	vals := coll.Values()
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}
	return out
}

func writeComputeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
