// Package utci computes the Universal Thermal Climate Index over aligned
// time-series inputs and classifies each timestep into ordinal stress
// categories with percentage-of-time statistics.
package utci

// Valid input ranges of the UTCI model. Inputs outside these bounds are
// clamped rather than rejected: extrapolation policy belongs to the formula,
// and the operational model itself is only defined over these ranges.
const (
	minAirTemp   = -50.0
	maxAirTemp   = 50.0
	minWindSpeed = 0.5 // m/s at 10 m; lower values behave like still air
	maxWindSpeed = 17.0
)

// UniversalThermalClimateIndex returns the UTCI in degrees C equivalent
// temperature for air temperature (C), mean radiant temperature (C),
// meteorological wind speed at 10 m (m/s), and relative humidity (%).
//
// This is the linear regression approximation of the operational UTCI model
// (Blazejczyk et al. 2012), monotonic in each driver over the valid ranges.
func UniversalThermalClimateIndex(airTemp, radTemp, windSpeed, relHumidity float64) float64 {
	ta := clamp(airTemp, minAirTemp, maxAirTemp)
	va := clamp(windSpeed, minWindSpeed, maxWindSpeed)
	rh := clamp(relHumidity, 0, 100)

	return 3.21 + 0.872*ta + 0.2459*radTemp - 2.5078*va - 0.0176*rh
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
