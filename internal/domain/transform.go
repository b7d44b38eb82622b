package domain

import (
	"github.com/parth025sharma/ladybug-comfort/internal/comfort"
	"github.com/parth025sharma/ladybug-comfort/internal/utci"
)

// EnrichObservation computes the UTCI for a parsed observation and classifies
// it on the eleven-point stress scale, producing the report published to the
// sink topic. A nil parameter uses the standard assessment thresholds.
func EnrichObservation(obs Observation, par *comfort.UTCIParameter) ComfortReport {
	if par == nil {
		par = comfort.DefaultUTCIParameter()
	}

	value := utci.UniversalThermalClimateIndex(obs.AirTempC, obs.RadTempC, obs.WindSpeedMS, obs.RelHumidityPct)
	category := par.ThermalConditionElevenPoint(value)

	return ComfortReport{
		Observation:  obs,
		UTCIC:        value,
		Category:     category,
		CategoryName: comfort.CategoryName(category),
		Comfortable:  par.IsComfortable(value) == 1,
		ProcessedAt:  clock.Now(),
	}
}
