package utci

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parth025sharma/ladybug-comfort/internal/series"
	"github.com/parth025sharma/ladybug-comfort/internal/validate"
)

var start = time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

func airTemp(vals ...float64) *series.Collection {
	return series.MustNew(series.Header{DataType: series.AirTemperature, Unit: "C", Timestep: 1},
		vals, series.HourlyDatetimes(start, len(vals)))
}

func TestFormulaMonotonicInAirTemperature(t *testing.T) {
	prev := UniversalThermalClimateIndex(-50, 20, 1, 50)
	for ta := -49.0; ta <= 50; ta++ {
		cur := UniversalThermalClimateIndex(ta, 20, 1, 50)
		assert.Greater(t, cur, prev, "ta=%g", ta)
		prev = cur
	}
}

func TestFormulaWindCools(t *testing.T) {
	calm := UniversalThermalClimateIndex(20, 20, 0.5, 50)
	windy := UniversalThermalClimateIndex(20, 20, 10, 50)
	assert.Less(t, windy, calm)
}

func TestFormulaClampsStillAir(t *testing.T) {
	// Below 0.5 m/s the model behaves like still air.
	assert.Equal(t,
		UniversalThermalClimateIndex(20, 20, 0.1, 50),
		UniversalThermalClimateIndex(20, 20, 0.5, 50))
}

// Mild constant conditions with the defaults: still air and no radiant
// augmentation. Every step should land in the comfortable band.
func TestMildConstantConditionsAreComfortable(t *testing.T) {
	c, err := New(airTemp(20, 20, 20), validate.FromScalar(50), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, c.CalcLength())
	for _, v := range c.Index().Values() {
		assert.InDelta(t, 23.4, v, 0.5)
	}
	for _, cat := range c.ThermalConditionElevenPoint().Values() {
		assert.Zero(t, cat)
	}
	assert.Equal(t, 100.0, c.PercentComfortable())
	assert.Equal(t, 0.0, c.PercentUncomfortable())
	assert.Equal(t, 100.0, c.PercentNeutral())
}

func TestDefaultsMatchExplicitInputs(t *testing.T) {
	base := airTemp(15, 20, 25, 30)
	mrt := validate.FromCollection(base.GetAlignedCollection(0, series.MeanRadiantTemperature, "C"))
	wind := validate.FromScalar(0.1)

	withDefaults, err := New(base, validate.FromScalar(50), nil)
	require.NoError(t, err)

	// MRT defaults to the air temperature itself, not a constant.
	mrtAir := validate.FromCollection(series.MustNew(
		series.Header{DataType: series.MeanRadiantTemperature, Unit: "C", Timestep: 1},
		base.Values(), base.Datetimes()))
	explicit, err := New(base, validate.FromScalar(50), &Options{RadTemperature: &mrtAir, WindSpeed: &wind})
	require.NoError(t, err)

	assert.Equal(t, withDefaults.Index().Values(), explicit.Index().Values())

	zeroMRT, err := New(base, validate.FromScalar(50), &Options{RadTemperature: &mrt})
	require.NoError(t, err)
	assert.NotEqual(t, withDefaults.Index().Values(), zeroMRT.Index().Values())
}

func TestScalarHumidityMatchesExplicitCollection(t *testing.T) {
	base := airTemp(10, 20, 30)
	coll := validate.FromCollection(base.GetAlignedCollection(60, series.RelativeHumidity, "%"))

	a, err := New(base, validate.FromScalar(60), nil)
	require.NoError(t, err)
	b, err := New(base, coll, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Index().Values(), b.Index().Values())
}

func TestMisalignedHumidityFailsBeforeComputation(t *testing.T) {
	short := series.MustNew(series.Header{DataType: series.RelativeHumidity, Unit: "%", Timestep: 1},
		[]float64{50, 50}, series.HourlyDatetimes(start, 2))

	_, err := New(airTemp(20, 21, 22), validate.FromCollection(short), nil)
	assert.ErrorIs(t, err, validate.ErrMisalignedCollections)
}

func TestWrongHumidityTypeRejected(t *testing.T) {
	wind := series.MustNew(series.Header{DataType: series.WindSpeed, Unit: "m/s", Timestep: 1},
		[]float64{1, 2, 3}, series.HourlyDatetimes(start, 3))

	_, err := New(airTemp(20, 21, 22), validate.FromCollection(wind), nil)
	assert.ErrorIs(t, err, validate.ErrTypeMismatch)
}

func TestDerivedCollectionsShareBaseAlignment(t *testing.T) {
	c, err := New(airTemp(-45, -20, -5, 5, 20, 35, 45), validate.FromScalar(50), nil)
	require.NoError(t, err)

	base := c.AirTemperature()
	for name, coll := range map[string]*series.Collection{
		"index":        c.Index(),
		"comfortable":  c.IsComfortable(),
		"condition":    c.ThermalCondition(),
		"five point":   c.ThermalConditionFivePoint(),
		"seven point":  c.ThermalConditionSevenPoint(),
		"nine point":   c.ThermalConditionNinePoint(),
		"eleven point": c.ThermalConditionElevenPoint(),
		"original":     c.OriginalUTCICategory(),
	} {
		assert.Equal(t, base.Len(), coll.Len(), name)
		assert.True(t, base.IsAlignedWith(coll), name)
	}
}

func TestCategoriesStayInScaleRanges(t *testing.T) {
	c, err := New(airTemp(-50, -40, -30, -20, -10, 0, 10, 20, 30, 40, 50), validate.FromScalar(50), nil)
	require.NoError(t, err)

	for _, v := range c.ThermalConditionElevenPoint().Values() {
		assert.GreaterOrEqual(t, v, -5.0)
		assert.LessOrEqual(t, v, 5.0)
	}
	for _, v := range c.OriginalUTCICategory().Values() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 9.0)
	}
	for _, v := range c.IsComfortable().Values() {
		assert.Contains(t, []float64{0, 1}, v)
	}
}

func TestPercentageClosure(t *testing.T) {
	c, err := New(airTemp(-45, -20, -5, 5, 20, 35, 45, 18, 22, 30), validate.FromScalar(50), nil)
	require.NoError(t, err)

	assert.InDelta(t, 100, c.PercentComfortable()+c.PercentUncomfortable(), 1e-9)
	assert.InDelta(t, 100, c.PercentCold()+c.PercentComfortable()+c.PercentHot(), 1e-9)

	sum := c.PercentExtremeColdStress() + c.PercentVeryStrongColdStress() +
		c.PercentStrongColdStress() + c.PercentModerateColdStress() +
		c.PercentSlightColdStress() + c.PercentComfortable() +
		c.PercentSlightHeatStress() + c.PercentModerateHeatStress() +
		c.PercentStrongHeatStress() + c.PercentVeryStrongHeatStress() +
		c.PercentExtremeHeatStress()
	assert.InDelta(t, 100, sum, 1e-9)
}

// Zero-length series: every percentage accessor returns 0 rather than
// dividing by zero.
func TestZeroLengthPercentagesAreZero(t *testing.T) {
	c, err := New(airTemp(), validate.FromScalar(50), nil)
	require.NoError(t, err)

	assert.Zero(t, c.CalcLength())
	assert.Zero(t, c.Index().Len())
	for name, pct := range map[string]float64{
		"comfortable":      c.PercentComfortable(),
		"uncomfortable":    c.PercentUncomfortable(),
		"neutral":          c.PercentNeutral(),
		"cold":             c.PercentCold(),
		"hot":              c.PercentHot(),
		"extreme cold":     c.PercentExtremeColdStress(),
		"very strong cold": c.PercentVeryStrongColdStress(),
		"strong cold":      c.PercentStrongColdStress(),
		"moderate cold":    c.PercentModerateColdStress(),
		"slight cold":      c.PercentSlightColdStress(),
		"slight heat":      c.PercentSlightHeatStress(),
		"moderate heat":    c.PercentModerateHeatStress(),
		"strong heat":      c.PercentStrongHeatStress(),
		"very strong heat": c.PercentVeryStrongHeatStress(),
		"extreme heat":     c.PercentExtremeHeatStress(),
	} {
		assert.Zero(t, pct, name)
	}
}

func TestDeterminism(t *testing.T) {
	build := func() *UTCI {
		c, err := New(airTemp(-10, 0, 10, 20, 30), validate.FromScalar(65),
			&Options{WindSpeed: ptr(validate.FromScalar(3))})
		require.NoError(t, err)
		return c
	}
	a, b := build(), build()
	assert.Equal(t, a.Index().Values(), b.Index().Values())
	assert.Equal(t, a.ThermalConditionElevenPoint().Values(), b.ThermalConditionElevenPoint().Values())
}

func ptr[T any](v T) *T { return &v }
