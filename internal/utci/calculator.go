package utci

import (
	"github.com/parth025sharma/ladybug-comfort/internal/comfort"
	"github.com/parth025sharma/ladybug-comfort/internal/series"
	"github.com/parth025sharma/ladybug-comfort/internal/validate"
)

// Options carries the optional inputs of New. A nil field takes its
// documented default.
type Options struct {
	// RadTemperature is the mean radiant temperature in C. Default: the air
	// temperature, i.e. no radiant augmentation.
	RadTemperature *validate.Input
	// WindSpeed is the meteorological wind speed in m/s measured 10 m above
	// ground. Default 0.1, representing still air.
	WindSpeed *validate.Input
	// ComfortParameter sets the classification thresholds. Default: the
	// standard UTCI assessment thresholds.
	ComfortParameter *comfort.UTCIParameter
}

// UTCI computes the Universal Thermal Climate Index for each step of aligned
// collections and classifies every value on the eleven-point stress scale.
// The index and category arrays are computed eagerly during construction; the
// coarser scales and statistics derive from the same values on access.
// Accessors return fresh labeled copies, so instances are safe for concurrent
// reads.
type UTCI struct {
	calcLength int

	airTemp *series.Collection
	radTemp *series.Collection
	wind    *series.Collection
	relHum  *series.Collection
	par     *comfort.UTCIParameter

	values     []float64
	categories []int // eleven-point scale, cached for the statistics
}

// New validates and aligns the inputs, using air temperature as the base
// collection, then computes the index once per timestep. Construction either
// fully succeeds or fails with one of the validate error kinds before any
// computation.
func New(airTemperature *series.Collection, relHumidity validate.Input, opts *Options) (*UTCI, error) {
	if opts == nil {
		opts = &Options{}
	}

	c := &UTCI{}

	reg := validate.NewRegistry(airTemperature)
	c.calcLength = reg.CalcLength()

	var err error
	if c.airTemp, err = reg.CheckInput(validate.FromCollection(airTemperature),
		series.AirTemperature, "C", "air_temperature"); err != nil {
		return nil, err
	}
	if c.relHum, err = reg.CheckInput(relHumidity,
		series.RelativeHumidity, "%", "rel_humidity"); err != nil {
		return nil, err
	}

	if opts.RadTemperature != nil {
		if c.radTemp, err = reg.CheckInput(*opts.RadTemperature,
			series.Temperature, "C", "rad_temperature"); err != nil {
			return nil, err
		}
	} else {
		c.radTemp = c.airTemp
	}

	wind := validate.FromScalar(0.1)
	if opts.WindSpeed != nil {
		wind = *opts.WindSpeed
	}
	if c.wind, err = reg.CheckInput(wind, series.WindSpeed, "m/s", "air_speed"); err != nil {
		return nil, err
	}

	if err = reg.AlignCheck(); err != nil {
		return nil, err
	}

	if opts.ComfortParameter != nil {
		c.par = opts.ComfortParameter.Duplicate()
	} else {
		c.par = comfort.DefaultUTCIParameter()
	}

	c.calculate()
	return c, nil
}

// calculate runs the single eager pass, in timestamp order.
func (c *UTCI) calculate() {
	c.values = make([]float64, c.calcLength)
	c.categories = make([]int, c.calcLength)

	ta := c.airTemp.Values()
	tr := c.radTemp.Values()
	vel := c.wind.Values()
	rh := c.relHum.Values()

	for i := 0; i < c.calcLength; i++ {
		v := UniversalThermalClimateIndex(ta[i], tr[i], vel[i], rh[i])
		c.values[i] = v
		c.categories[i] = c.par.ThermalConditionElevenPoint(v)
	}
}

// CalcLength returns the number of timesteps in the computation.
func (c *UTCI) CalcLength() int { return c.calcLength }

// ComfortParameter returns a copy of the assigned comfort parameters.
func (c *UTCI) ComfortParameter() *comfort.UTCIParameter { return c.par.Duplicate() }

// AirTemperature returns a copy of the air temperature input collection.
func (c *UTCI) AirTemperature() *series.Collection { return c.airTemp.Duplicate() }

// RadTemperature returns a copy of the resolved mean radiant temperature collection.
func (c *UTCI) RadTemperature() *series.Collection { return c.radTemp.Duplicate() }

// WindSpeed returns a copy of the resolved wind speed collection.
func (c *UTCI) WindSpeed() *series.Collection { return c.wind.Duplicate() }

// RelHumidity returns a copy of the relative humidity collection.
func (c *UTCI) RelHumidity() *series.Collection { return c.relHum.Duplicate() }

// Index returns the UTCI values in C.
func (c *UTCI) Index() *series.Collection {
	return c.derivedFloats(c.values, series.UTCIIndex, "C")
}

// ThermalConditionElevenPoint returns the cached eleven-point categories,
// from extreme cold stress (-5) to extreme heat stress (+5).
func (c *UTCI) ThermalConditionElevenPoint() *series.Collection {
	return c.derivedInts(c.categories)
}

// IsComfortable returns 1 for steps inside the comfortable band, 0 otherwise.
func (c *UTCI) IsComfortable() *series.Collection {
	return c.classified(c.par.IsComfortable)
}

// ThermalCondition returns cold (-1), neutral (0), or hot (+1) per step.
func (c *UTCI) ThermalCondition() *series.Collection {
	return c.classified(c.par.ThermalCondition)
}

// ThermalConditionFivePoint returns the five-point categories per step.
func (c *UTCI) ThermalConditionFivePoint() *series.Collection {
	return c.classified(c.par.ThermalConditionFivePoint)
}

// ThermalConditionSevenPoint returns the seven-point categories per step.
func (c *UTCI) ThermalConditionSevenPoint() *series.Collection {
	return c.classified(c.par.ThermalConditionSevenPoint)
}

// ThermalConditionNinePoint returns the nine-point categories per step.
func (c *UTCI) ThermalConditionNinePoint() *series.Collection {
	return c.classified(c.par.ThermalConditionNinePoint)
}

// OriginalUTCICategory returns the legacy ten-bucket categories per step.
func (c *UTCI) OriginalUTCICategory() *series.Collection {
	return c.classified(c.par.OriginalUTCICategory)
}

// classified derives a coarser scale from the cached index values.
func (c *UTCI) classified(classify func(float64) int) *series.Collection {
	cats := make([]int, c.calcLength)
	for i, v := range c.values {
		cats[i] = classify(v)
	}
	return c.derivedInts(cats)
}

func (c *UTCI) derivedFloats(vals []float64, dt series.DataType, unit string) *series.Collection {
	return series.MustNew(series.Header{
		DataType: dt,
		Unit:     unit,
		Timestep: c.airTemp.Header().Timestep,
	}, vals, c.airTemp.Datetimes())
}

func (c *UTCI) derivedInts(cats []int) *series.Collection {
	vals := make([]float64, len(cats))
	for i, v := range cats {
		vals[i] = float64(v)
	}
	return c.derivedFloats(vals, series.ThermalCondition, "condition")
}

// percent returns the share of steps whose eleven-point category satisfies
// the predicate, as a percentage. An empty series yields 0: the zero-length
// policy applied uniformly across every percentage accessor.
func (c *UTCI) percent(pred func(int) bool) float64 {
	if c.calcLength == 0 {
		return 0
	}
	count := 0
	for _, cat := range c.categories {
		if pred(cat) {
			count++
		}
	}
	return 100 * float64(count) / float64(c.calcLength)
}

// PercentComfortable is the percent of time in the comfortable band.
func (c *UTCI) PercentComfortable() float64 {
	return c.percent(func(cat int) bool { return cat == 0 })
}

// PercentUncomfortable is the percent of time outside the comfortable band.
func (c *UTCI) PercentUncomfortable() float64 {
	if c.calcLength == 0 {
		return 0
	}
	return 100 - c.PercentComfortable()
}

// PercentNeutral is the percent of time with no thermal stress.
func (c *UTCI) PercentNeutral() float64 { return c.PercentComfortable() }

// PercentCold is the percent of time in any cold stress category.
func (c *UTCI) PercentCold() float64 {
	return c.percent(func(cat int) bool { return cat < 0 })
}

// PercentHot is the percent of time in any heat stress category.
func (c *UTCI) PercentHot() float64 {
	return c.percent(func(cat int) bool { return cat > 0 })
}

// PercentExtremeColdStress is the percent of time with extreme cold stress.
func (c *UTCI) PercentExtremeColdStress() float64 { return c.percentExactly(-5) }

// PercentVeryStrongColdStress is the percent of time with very strong cold stress.
func (c *UTCI) PercentVeryStrongColdStress() float64 { return c.percentExactly(-4) }

// PercentStrongColdStress is the percent of time with strong cold stress.
func (c *UTCI) PercentStrongColdStress() float64 { return c.percentExactly(-3) }

// PercentModerateColdStress is the percent of time with moderate cold stress.
func (c *UTCI) PercentModerateColdStress() float64 { return c.percentExactly(-2) }

// PercentSlightColdStress is the percent of time with slight cold stress.
func (c *UTCI) PercentSlightColdStress() float64 { return c.percentExactly(-1) }

// PercentSlightHeatStress is the percent of time with slight heat stress.
func (c *UTCI) PercentSlightHeatStress() float64 { return c.percentExactly(1) }

// PercentModerateHeatStress is the percent of time with moderate heat stress.
func (c *UTCI) PercentModerateHeatStress() float64 { return c.percentExactly(2) }

// PercentStrongHeatStress is the percent of time with strong heat stress.
func (c *UTCI) PercentStrongHeatStress() float64 { return c.percentExactly(3) }

// PercentVeryStrongHeatStress is the percent of time with very strong heat stress.
func (c *UTCI) PercentVeryStrongHeatStress() float64 { return c.percentExactly(4) }

// PercentExtremeHeatStress is the percent of time with extreme heat stress.
func (c *UTCI) PercentExtremeHeatStress() float64 { return c.percentExactly(5) }

func (c *UTCI) percentExactly(category int) float64 {
	return c.percent(func(cat int) bool { return cat == category })
}
