package series

import (
	"fmt"
	"time"
)

// DataType tags a collection with the physical quantity it measures.
// Subtypes (e.g. AirTemperature) satisfy checks against their base type
// (Temperature) so calculators can require a quantity family rather than
// an exact tag.
type DataType string

const (
	Temperature             DataType = "Temperature"
	AirTemperature          DataType = "Air Temperature"
	MeanRadiantTemperature  DataType = "Mean Radiant Temperature"
	SurfaceTemperature      DataType = "Surface Temperature"
	RadiantTemperatureDelta DataType = "Radiant Temperature Delta"
	UTCIIndex               DataType = "Universal Thermal Climate Index"

	Irradiance            DataType = "Irradiance"
	Radiation             DataType = "Radiation"
	HorizontalInfrared    DataType = "Horizontal Infrared Radiation Intensity"
	EffectiveRadiantField DataType = "Effective Radiant Field"

	Speed     DataType = "Speed"
	WindSpeed DataType = "Wind Speed"

	Fraction         DataType = "Fraction"
	RelativeHumidity DataType = "Relative Humidity"

	ThermalCondition DataType = "Thermal Condition"
)

// baseTypes maps each subtype to its quantity family.
var baseTypes = map[DataType]DataType{
	AirTemperature:         Temperature,
	MeanRadiantTemperature: Temperature,
	SurfaceTemperature:     Temperature,
	UTCIIndex:              Temperature,
	HorizontalInfrared:     Irradiance,
	EffectiveRadiantField:  Irradiance,
	WindSpeed:              Speed,
	RelativeHumidity:       Fraction,
}

// IsSubtypeOf reports whether dt matches base exactly or belongs to its family.
func (dt DataType) IsSubtypeOf(base DataType) bool {
	if dt == base {
		return true
	}
	return baseTypes[dt] == base
}

// Header carries the metadata of a Collection: quantity tag, unit, and the
// number of values per hour in the underlying analysis period.
type Header struct {
	DataType DataType
	Unit     string
	Timestep int // values per hour; 1 for hourly data
}

// Collection is an ordered, finite sequence of values with one timestamp per
// value. It is the aligned time-series container consumed by the comfort
// calculators. Collections are treated as immutable once constructed; use
// Duplicate to obtain an independent copy.
type Collection struct {
	header    Header
	values    []float64
	datetimes []time.Time
}

// New constructs a Collection from a header and matched value/timestamp slices.
// The slices are copied so callers cannot mutate the collection afterward.
func New(header Header, values []float64, datetimes []time.Time) (*Collection, error) {
	if len(values) != len(datetimes) {
		return nil, fmt.Errorf("series: %d values but %d datetimes", len(values), len(datetimes))
	}
	if header.Timestep == 0 {
		header.Timestep = 1
	}
	c := &Collection{header: header}
	c.values = append(c.values, values...)
	c.datetimes = append(c.datetimes, datetimes...)
	return c, nil
}

// MustNew is New for static inputs known to be well formed, such as fixtures.
func MustNew(header Header, values []float64, datetimes []time.Time) *Collection {
	c, err := New(header, values, datetimes)
	if err != nil {
		panic(err)
	}
	return c
}

// Header returns the collection metadata.
func (c *Collection) Header() Header { return c.header }

// Len returns the number of values in the collection.
func (c *Collection) Len() int { return len(c.values) }

// Values returns a copy of the ordered value sequence.
func (c *Collection) Values() []float64 {
	return append([]float64(nil), c.values...)
}

// Datetimes returns a copy of the ordered timestamp sequence.
func (c *Collection) Datetimes() []time.Time {
	return append([]time.Time(nil), c.datetimes...)
}

// Duplicate returns an independent deep copy of the collection.
func (c *Collection) Duplicate() *Collection {
	return MustNew(c.header, c.values, c.datetimes)
}

// GetAlignedCollection returns a new collection sharing this collection's
// timestamps and timestep, filled with a constant value and tagged with the
// given quantity and unit. This is how scalar inputs are broadcast.
func (c *Collection) GetAlignedCollection(value float64, dataType DataType, unit string) *Collection {
	values := make([]float64, len(c.values))
	for i := range values {
		values[i] = value
	}
	return MustNew(Header{DataType: dataType, Unit: unit, Timestep: c.header.Timestep}, values, c.datetimes)
}

// IsAlignedWith reports whether two collections share identical length and
// identical timestamps, position for position.
func (c *Collection) IsAlignedWith(other *Collection) bool {
	if len(c.datetimes) != len(other.datetimes) {
		return false
	}
	for i, dt := range c.datetimes {
		if !dt.Equal(other.datetimes[i]) {
			return false
		}
	}
	return true
}

// AreCollectionsAligned reports whether every collection in the slice is
// aligned with the first one. An empty or single-element slice is aligned.
func AreCollectionsAligned(colls []*Collection) bool {
	if len(colls) < 2 {
		return true
	}
	base := colls[0]
	for _, c := range colls[1:] {
		if !base.IsAlignedWith(c) {
			return false
		}
	}
	return true
}

// HourlyDatetimes generates n consecutive hourly timestamps starting at start,
// a convenience for building test and fixture collections.
func HourlyDatetimes(start time.Time, n int) []time.Time {
	dts := make([]time.Time, n)
	for i := range dts {
		dts[i] = start.Add(time.Duration(i) * time.Hour)
	}
	return dts
}
