// Package solarcal computes the shortwave and longwave radiant heat exchange
// between a human body and the outdoor sky, and the resulting adjustment to
// mean radiant temperature (MRT). The per-timestep formulas here are pure;
// OutdoorSolarCal composes them over aligned time-series inputs.
package solarcal

import (
	"math"

	"github.com/parth025sharma/ladybug-comfort/internal/comfort"
)

// stefanBoltzmann is the Stefan-Boltzmann constant in W/(m2*K4).
const stefanBoltzmann = 5.6697e-8

// SkyExchangeResult holds the per-timestep outputs of the outdoor sky heat
// exchange: shortwave and longwave effective radiant field (ERF, W/m2), the
// corresponding MRT deltas (C), and the sky-adjusted mean radiant temperature.
type SkyExchangeResult struct {
	ShortwaveERF      float64
	ShortwaveMRTDelta float64
	LongwaveERF       float64
	LongwaveMRTDelta  float64
	MRT               float64
}

// OutdoorSkyHeatExchange performs the full outdoor radiant heat exchange for
// a single timestep.
//
// surfaceTemp is the temperature of surfaces around the person in C,
// horizIR the horizontal infrared radiation intensity from the sky in W/m2,
// diffuseSolar and directSolar the diffuse horizontal and direct normal solar
// irradiance in W/m2, altitude the solar altitude in degrees, skyExposure and
// fractExposed fractions of sky vault in view and of body exposed to direct
// sun, floorReflectance the reflectance of the ground. Body geometry and
// optics come from the SHARP angle, posture, absorptivity, and emissivity.
func OutdoorSkyHeatExchange(surfaceTemp, horizIR, diffuseSolar, directSolar, altitude,
	skyExposure, fractExposed, floorReflectance float64, posture comfort.Posture,
	sharp, absorptivity, emissivity float64) SkyExchangeResult {

	fractEff := fractionEfficiency(posture)

	var sERF, sDMRT float64
	if altitude >= 0 {
		flux := BodySolarFluxFromParts(diffuseSolar, directSolar, altitude, sharp,
			skyExposure, fractExposed, floorReflectance, posture)
		sERF = ERFFromBodySolarFlux(flux, absorptivity, emissivity)
		sDMRT = MRTDeltaFromERF(sERF, fractEff)
	}

	lDMRT := LongwaveMRTDeltaFromHorizIR(horizIR, surfaceTemp, skyExposure, emissivity)
	lERF := ERFFromMRTDelta(lDMRT, fractEff)

	return SkyExchangeResult{
		ShortwaveERF:      sERF,
		ShortwaveMRTDelta: sDMRT,
		LongwaveERF:       lERF,
		LongwaveMRTDelta:  lDMRT,
		MRT:               surfaceTemp + sDMRT + lDMRT,
	}
}

// IndoorSkyHeatExchange computes the shortwave MRT adjustment for a person
// indoors with sun coming through glazing, over a known longwave MRT. Window
// transmittance should already be folded into fractExposed by the caller.
// Returns the shortwave ERF, the shortwave MRT delta, and the adjusted MRT.
func IndoorSkyHeatExchange(longwaveMRT, diffuseSolar, directSolar, altitude,
	skyExposure, fractExposed, floorReflectance float64, posture comfort.Posture,
	sharp, absorptivity, emissivity float64) (erf, mrtDelta, mrt float64) {

	if altitude >= 0 {
		flux := BodySolarFluxFromParts(diffuseSolar, directSolar, altitude, sharp,
			skyExposure, fractExposed, floorReflectance, posture)
		erf = ERFFromBodySolarFlux(flux, absorptivity, emissivity)
		mrtDelta = MRTDeltaFromERF(erf, fractionEfficiency(posture))
	}
	return erf, mrtDelta, longwaveMRT + mrtDelta
}

// SharpFromSolarAndBodyAzimuth derives the solar horizontal angle relative to
// the front of the person from the solar and body azimuths, folded into
// [0, 180] since the body is assumed bilaterally symmetric.
func SharpFromSolarAndBodyAzimuth(solarAzimuth, bodyAzimuth float64) float64 {
	angle := math.Mod(math.Abs(solarAzimuth-bodyAzimuth), 360)
	if angle > 180 {
		angle = 360 - angle
	}
	return angle
}

// BodySolarFluxFromParts sums the direct, diffuse, and ground-reflected solar
// flux absorbed by the body, in W/m2.
func BodySolarFluxFromParts(diffuseSolar, directSolar, altitude, sharp,
	skyExposure, fractExposed, floorReflectance float64, posture comfort.Posture) float64 {

	globalHoriz := diffuseSolar + directSolar*math.Sin(altitude*degToRad)

	direct := projectionFactor(altitude, sharp, posture) * fractExposed * directSolar
	diffuse := 0.5 * skyExposure * fractExposed * fractionEfficiency(posture) * diffuseSolar
	reflected := 0.5 * skyExposure * fractExposed * fractionEfficiency(posture) *
		floorReflectance * globalHoriz

	return direct + diffuse + reflected
}

// ERFFromBodySolarFlux converts absorbed solar flux to an effective radiant
// field, scaling by the ratio of shortwave absorptivity to longwave
// emissivity.
func ERFFromBodySolarFlux(flux, absorptivity, emissivity float64) float64 {
	return flux * (absorptivity / emissivity)
}

// MRTDeltaFromERF converts an effective radiant field to an MRT delta using
// the standard linearized radiative heat transfer coefficient.
func MRTDeltaFromERF(erf, fractEfficiency float64) float64 {
	return erf / (fractEfficiency * radiativeCoefficient)
}

// ERFFromMRTDelta is the inverse of MRTDeltaFromERF.
func ERFFromMRTDelta(mrtDelta, fractEfficiency float64) float64 {
	return mrtDelta * fractEfficiency * radiativeCoefficient
}

// radiativeCoefficient is the linearized radiative heat transfer coefficient
// in W/(m2*K) for typical indoor-clothing surface temperatures.
const radiativeCoefficient = 6.012

// LongwaveMRTDeltaFromHorizIR computes the MRT adjustment from longwave
// exchange with the sky, given the horizontal infrared intensity and the
// temperature of surrounding surfaces. The sky occupies half the spherical
// view of an exposed person, scaled by the sky exposure fraction.
func LongwaveMRTDeltaFromHorizIR(horizIR, surfaceTemp, skyExposure, emissivity float64) float64 {
	skyTemp := SkyTemperatureFromHorizIR(horizIR, emissivity)
	return 0.5 * skyExposure * (skyTemp - surfaceTemp)
}

// SkyTemperatureFromHorizIR inverts the Stefan-Boltzmann law to obtain an
// effective sky temperature in C from horizontal infrared intensity in W/m2.
func SkyTemperatureFromHorizIR(horizIR, sourceEmissivity float64) float64 {
	return math.Pow(horizIR/(sourceEmissivity*stefanBoltzmann), 0.25) - 273.15
}

const degToRad = math.Pi / 180

// fractionEfficiency is the fraction of the body surface that participates in
// radiant exchange, by posture.
func fractionEfficiency(posture comfort.Posture) float64 {
	if posture == comfort.Seated {
		return 0.696
	}
	return 0.725
}

// Projected area factors by posture, tabulated over solar altitude (rows,
// 0-90 in 15 degree steps) and SHARP angle (columns, 0-180 in 30 degree
// steps), linearly interpolated between grid points. A lying person's
// projection is taken as the standing table with altitude and SHARP roles
// exchanged, per the SolarCal model.
var (
	standingProjection = [7][7]float64{
		{0.35, 0.34, 0.30, 0.25, 0.27, 0.29, 0.30},
		{0.33, 0.32, 0.29, 0.24, 0.26, 0.28, 0.29},
		{0.29, 0.28, 0.26, 0.22, 0.23, 0.25, 0.26},
		{0.24, 0.23, 0.22, 0.19, 0.20, 0.21, 0.22},
		{0.18, 0.18, 0.17, 0.16, 0.16, 0.17, 0.17},
		{0.12, 0.12, 0.12, 0.12, 0.12, 0.12, 0.12},
		{0.08, 0.08, 0.08, 0.08, 0.08, 0.08, 0.08},
	}
	seatedProjection = [7][7]float64{
		{0.29, 0.28, 0.25, 0.22, 0.23, 0.25, 0.26},
		{0.28, 0.27, 0.25, 0.22, 0.23, 0.24, 0.25},
		{0.26, 0.25, 0.23, 0.21, 0.21, 0.22, 0.23},
		{0.22, 0.22, 0.21, 0.19, 0.19, 0.20, 0.21},
		{0.18, 0.18, 0.17, 0.17, 0.17, 0.17, 0.18},
		{0.14, 0.14, 0.14, 0.14, 0.14, 0.14, 0.14},
		{0.10, 0.10, 0.10, 0.10, 0.10, 0.10, 0.10},
	}
)

// projectionFactor returns the fraction of the body surface projected toward
// the solar beam for the given altitude, SHARP angle, and posture.
func projectionFactor(altitude, sharp float64, posture comfort.Posture) float64 {
	altitude = clamp(altitude, 0, 90)
	sharp = clamp(sharp, 0, 180)

	if posture == comfort.Lying {
		// Rotate the frame: what matters for a lying body is the beam's angle
		// along its long axis.
		altitude, sharp = sharp/2, altitude*2
		altitude = clamp(altitude, 0, 90)
		sharp = clamp(sharp, 0, 180)
	}

	table := &standingProjection
	if posture == comfort.Seated {
		table = &seatedProjection
	}

	return bilinear(table, altitude/15, sharp/30)
}

// bilinear interpolates a 7x7 table at fractional row/column coordinates.
func bilinear(table *[7][7]float64, row, col float64) float64 {
	r0 := int(math.Floor(row))
	c0 := int(math.Floor(col))
	if r0 > 5 {
		r0 = 5
	}
	if c0 > 5 {
		c0 = 5
	}
	fr := row - float64(r0)
	fc := col - float64(c0)

	top := table[r0][c0]*(1-fc) + table[r0][c0+1]*fc
	bottom := table[r0+1][c0]*(1-fc) + table[r0+1][c0+1]*fc
	return top*(1-fr) + bottom*fr
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
