package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

func TestNewRejectsMismatchedLengths(t *testing.T) {
	_, err := New(Header{DataType: Temperature, Unit: "C"}, []float64{1, 2, 3}, HourlyDatetimes(testStart, 2))
	require.Error(t, err)
}

func TestValuesAndDatetimesAreCopies(t *testing.T) {
	c := MustNew(Header{DataType: Temperature, Unit: "C"}, []float64{10, 20}, HourlyDatetimes(testStart, 2))

	vals := c.Values()
	vals[0] = 999
	assert.Equal(t, []float64{10, 20}, c.Values())

	dts := c.Datetimes()
	dts[0] = dts[0].Add(time.Hour)
	assert.True(t, c.Datetimes()[0].Equal(testStart))
}

func TestDuplicateIsIndependent(t *testing.T) {
	c := MustNew(Header{DataType: Irradiance, Unit: "W/m2"}, []float64{100, 200}, HourlyDatetimes(testStart, 2))
	d := c.Duplicate()

	assert.Equal(t, c.Values(), d.Values())
	assert.Equal(t, c.Header(), d.Header())
	assert.True(t, c.IsAlignedWith(d))
}

func TestGetAlignedCollectionBroadcastsConstant(t *testing.T) {
	base := MustNew(Header{DataType: Irradiance, Unit: "W/m2", Timestep: 1}, []float64{0, 50, 100}, HourlyDatetimes(testStart, 3))

	b := base.GetAlignedCollection(0.25, Fraction, "fraction")

	assert.Equal(t, []float64{0.25, 0.25, 0.25}, b.Values())
	assert.Equal(t, Fraction, b.Header().DataType)
	assert.Equal(t, "fraction", b.Header().Unit)
	assert.True(t, base.IsAlignedWith(b))
}

func TestAreCollectionsAligned(t *testing.T) {
	a := MustNew(Header{DataType: Temperature, Unit: "C"}, []float64{1, 2, 3}, HourlyDatetimes(testStart, 3))
	b := MustNew(Header{DataType: Speed, Unit: "m/s"}, []float64{4, 5, 6}, HourlyDatetimes(testStart, 3))
	short := MustNew(Header{DataType: Speed, Unit: "m/s"}, []float64{4, 5}, HourlyDatetimes(testStart, 2))
	shifted := MustNew(Header{DataType: Speed, Unit: "m/s"}, []float64{4, 5, 6}, HourlyDatetimes(testStart.Add(time.Hour), 3))

	assert.True(t, AreCollectionsAligned([]*Collection{a, b}))
	assert.True(t, AreCollectionsAligned([]*Collection{a}))
	assert.True(t, AreCollectionsAligned(nil))
	assert.False(t, AreCollectionsAligned([]*Collection{a, short}))
	assert.False(t, AreCollectionsAligned([]*Collection{a, shifted}))
}

func TestIsSubtypeOf(t *testing.T) {
	assert.True(t, AirTemperature.IsSubtypeOf(Temperature))
	assert.True(t, Temperature.IsSubtypeOf(Temperature))
	assert.True(t, RelativeHumidity.IsSubtypeOf(Fraction))
	assert.False(t, WindSpeed.IsSubtypeOf(Temperature))
	assert.False(t, Temperature.IsSubtypeOf(AirTemperature))
}
