package solarcal

import (
	"github.com/parth025sharma/ladybug-comfort/internal/comfort"
	"github.com/parth025sharma/ladybug-comfort/internal/series"
	"github.com/parth025sharma/ladybug-comfort/internal/sunpath"
	"github.com/parth025sharma/ladybug-comfort/internal/validate"
)

// OutdoorOptions carries the optional inputs of NewOutdoorSolarCal. A nil
// field takes its documented default.
type OutdoorOptions struct {
	// FractionBodyExposed is the fraction of the body exposed to direct sun,
	// shading from surroundings only. Default 1.
	FractionBodyExposed *validate.Input
	// SkyExposure is the fraction of the sky vault in the occupant's view.
	// Default 1.
	SkyExposure *validate.Input
	// FloorReflectance is the ground reflectance. Default 0.25, typical of
	// grass or dry bare soil.
	FloorReflectance *validate.Input
	// BodyParameter describes the human geometry. Default standing posture.
	BodyParameter *comfort.SolarCalParameter
	// Sun overrides the solar positioner seeded from the location, e.g. to
	// wrap it in a sunpath.Cached.
	Sun sunpath.SolarPositioner
}

// OutdoorSolarCal performs a full outdoor sky radiant heat exchange over
// aligned hourly collections. All derived arrays are computed eagerly during
// construction; accessors return fresh labeled copies, so instances are safe
// for concurrent reads.
type OutdoorSolarCal struct {
	location   sunpath.Location
	calcLength int

	dirNorm   *series.Collection
	diffHoriz *series.Collection
	horizIR   *series.Collection
	srfTemp   *series.Collection
	fractExp  *series.Collection
	skyExp    *series.Collection
	flrRef    *series.Collection
	bodyPar   *comfort.SolarCalParameter

	sERF  []float64
	sDMRT []float64
	lERF  []float64
	lDMRT []float64
	dMRT  []float64
	mrt   []float64
}

// NewOutdoorSolarCal validates and aligns the inputs, then runs the sky heat
// exchange once per timestep of the direct normal collection, which acts as
// the alignment base. Construction either fully succeeds or fails with one of
// the validate error kinds before any computation.
func NewOutdoorSolarCal(location sunpath.Location, directNormalSolar, diffuseHorizontalSolar,
	horizontalInfrared, surfaceTemperatures *series.Collection, opts *OutdoorOptions) (*OutdoorSolarCal, error) {

	if opts == nil {
		opts = &OutdoorOptions{}
	}

	c := &OutdoorSolarCal{location: location}

	reg := validate.NewRegistry(directNormalSolar)
	c.calcLength = reg.CalcLength()

	var err error
	if c.dirNorm, err = reg.RadiationCheck(directNormalSolar, "direct_normal_solar"); err != nil {
		return nil, err
	}
	if c.diffHoriz, err = reg.RadiationCheck(diffuseHorizontalSolar, "diffuse_horizontal_solar"); err != nil {
		return nil, err
	}
	if c.horizIR, err = reg.CheckInput(validate.FromCollection(horizontalInfrared),
		series.HorizontalInfrared, "W/m2", "horizontal_infrared"); err != nil {
		return nil, err
	}
	if c.srfTemp, err = reg.CheckInput(validate.FromCollection(surfaceTemperatures),
		series.Temperature, "C", "surface_temperatures"); err != nil {
		return nil, err
	}

	if c.fractExp, err = reg.CheckInput(orScalar(opts.FractionBodyExposed, 1),
		series.Fraction, "fraction", "fraction_body_exposed"); err != nil {
		return nil, err
	}
	if c.skyExp, err = reg.CheckInput(orScalar(opts.SkyExposure, 1),
		series.Fraction, "fraction", "sky_exposure"); err != nil {
		return nil, err
	}
	if c.flrRef, err = reg.CheckInput(orScalar(opts.FloorReflectance, 0.25),
		series.Fraction, "fraction", "floor_reflectance"); err != nil {
		return nil, err
	}

	if err = reg.AlignCheck(); err != nil {
		return nil, err
	}

	if opts.BodyParameter != nil {
		c.bodyPar = opts.BodyParameter.Duplicate()
	} else {
		c.bodyPar = comfort.DefaultSolarCalParameter()
	}

	sun := opts.Sun
	if sun == nil {
		sun = sunpath.FromLocation(location)
	}

	c.calculate(sun)
	return c, nil
}

// orScalar resolves an optional input to its default scalar when unset.
func orScalar(in *validate.Input, def float64) validate.Input {
	if in == nil {
		return validate.FromScalar(def)
	}
	return *in
}

// calculate runs the single eager pass, in timestamp order.
func (c *OutdoorSolarCal) calculate(sun sunpath.SolarPositioner) {
	c.sERF = make([]float64, c.calcLength)
	c.sDMRT = make([]float64, c.calcLength)
	c.lERF = make([]float64, c.calcLength)
	c.lDMRT = make([]float64, c.calcLength)
	c.dMRT = make([]float64, c.calcLength)
	c.mrt = make([]float64, c.calcLength)

	altitudes := make([]float64, c.calcLength)
	sharps := make([]float64, c.calcLength)
	fixedAzimuth, hasAzimuth := c.bodyPar.BodyAzimuth()
	for i, dt := range c.dirNorm.Datetimes() {
		alt, az := sun.SolarPosition(dt)
		altitudes[i] = alt
		if hasAzimuth {
			sharps[i] = SharpFromSolarAndBodyAzimuth(az, fixedAzimuth)
		} else {
			sharps[i] = c.bodyPar.Sharp()
		}
	}

	srfTemp := c.srfTemp.Values()
	horizIR := c.horizIR.Values()
	diff := c.diffHoriz.Values()
	dir := c.dirNorm.Values()
	skyExp := c.skyExp.Values()
	fractExp := c.fractExp.Values()
	flrRef := c.flrRef.Values()

	for i := 0; i < c.calcLength; i++ {
		res := OutdoorSkyHeatExchange(srfTemp[i], horizIR[i], diff[i], dir[i],
			altitudes[i], skyExp[i], fractExp[i], flrRef[i],
			c.bodyPar.Posture(), sharps[i],
			c.bodyPar.BodyAbsorptivity(), c.bodyPar.BodyEmissivity())
		c.sERF[i] = res.ShortwaveERF
		c.sDMRT[i] = res.ShortwaveMRTDelta
		c.lERF[i] = res.LongwaveERF
		c.lDMRT[i] = res.LongwaveMRTDelta
		c.dMRT[i] = res.ShortwaveMRTDelta + res.LongwaveMRTDelta
		c.mrt[i] = res.MRT
	}
}

// CalcLength returns the number of timesteps in the computation.
func (c *OutdoorSolarCal) CalcLength() int { return c.calcLength }

// Location returns the location of the computation.
func (c *OutdoorSolarCal) Location() sunpath.Location { return c.location }

// BodyParameter returns a copy of the assigned body parameters.
func (c *OutdoorSolarCal) BodyParameter() *comfort.SolarCalParameter { return c.bodyPar.Duplicate() }

// DirectNormalSolar returns a copy of the direct normal input collection.
func (c *OutdoorSolarCal) DirectNormalSolar() *series.Collection { return c.dirNorm.Duplicate() }

// DiffuseHorizontalSolar returns a copy of the diffuse horizontal input collection.
func (c *OutdoorSolarCal) DiffuseHorizontalSolar() *series.Collection { return c.diffHoriz.Duplicate() }

// HorizontalInfrared returns a copy of the horizontal infrared input collection.
func (c *OutdoorSolarCal) HorizontalInfrared() *series.Collection { return c.horizIR.Duplicate() }

// SurfaceTemperatures returns a copy of the surface temperature input collection.
func (c *OutdoorSolarCal) SurfaceTemperatures() *series.Collection { return c.srfTemp.Duplicate() }

// FractionBodyExposed returns a copy of the resolved body exposure collection.
func (c *OutdoorSolarCal) FractionBodyExposed() *series.Collection { return c.fractExp.Duplicate() }

// SkyExposure returns a copy of the resolved sky exposure collection.
func (c *OutdoorSolarCal) SkyExposure() *series.Collection { return c.skyExp.Duplicate() }

// FloorReflectance returns a copy of the resolved floor reflectance collection.
func (c *OutdoorSolarCal) FloorReflectance() *series.Collection { return c.flrRef.Duplicate() }

// ShortwaveEffectiveRadiantField returns the shortwave ERF in W/m2.
func (c *OutdoorSolarCal) ShortwaveEffectiveRadiantField() *series.Collection {
	return c.derived(c.sERF, series.EffectiveRadiantField, "W/m2")
}

// LongwaveEffectiveRadiantField returns the longwave ERF in W/m2.
func (c *OutdoorSolarCal) LongwaveEffectiveRadiantField() *series.Collection {
	return c.derived(c.lERF, series.EffectiveRadiantField, "W/m2")
}

// ShortwaveMRTDelta returns the shortwave MRT delta in C.
func (c *OutdoorSolarCal) ShortwaveMRTDelta() *series.Collection {
	return c.derived(c.sDMRT, series.RadiantTemperatureDelta, "C")
}

// LongwaveMRTDelta returns the longwave MRT delta in C.
func (c *OutdoorSolarCal) LongwaveMRTDelta() *series.Collection {
	return c.derived(c.lDMRT, series.RadiantTemperatureDelta, "C")
}

// MRTDelta returns the total MRT delta in C.
func (c *OutdoorSolarCal) MRTDelta() *series.Collection {
	return c.derived(c.dMRT, series.RadiantTemperatureDelta, "C")
}

// MeanRadiantTemperature returns the sky-adjusted MRT in C.
func (c *OutdoorSolarCal) MeanRadiantTemperature() *series.Collection {
	return c.derived(c.mrt, series.MeanRadiantTemperature, "C")
}

// derived wraps an internal array in a fresh labeled collection sharing the
// base timestamps.
func (c *OutdoorSolarCal) derived(vals []float64, dt series.DataType, unit string) *series.Collection {
	return series.MustNew(series.Header{
		DataType: dt,
		Unit:     unit,
		Timestep: c.dirNorm.Header().Timestep,
	}, vals, c.dirNorm.Datetimes())
}
