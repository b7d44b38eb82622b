// Package sunpath computes solar altitude and azimuth for a location and
// timestamp. The comfort calculators treat it as a stateless pure function of
// (location, time); Cached adds optional memoization keyed by timestamp.
package sunpath

import (
	"math"
	"time"
)

// Location identifies a point on the globe for solar geometry. TimeZone is
// the UTC offset in hours (fractional offsets allowed); Elevation is meters
// above sea level and is carried for callers that need it, the solar position
// itself does not use it.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
	TimeZone  float64
	Elevation float64
}

// SolarPositioner produces the solar altitude and azimuth, both in degrees,
// for a single timestamp. Altitude is negative when the sun is below the
// horizon; azimuth is measured clockwise from north.
type SolarPositioner interface {
	SolarPosition(t time.Time) (altitude, azimuth float64)
}

// Sunpath is an astronomical SolarPositioner: solar declination from the day
// of year, equation of time for the clock-to-solar time correction, and the
// hour angle for the daily rotation.
type Sunpath struct {
	loc Location
}

// FromLocation creates a Sunpath seeded with the given location.
func FromLocation(loc Location) *Sunpath {
	return &Sunpath{loc: loc}
}

const degToRad = math.Pi / 180

// SolarPosition computes the solar altitude and azimuth in degrees at t,
// interpreted as local clock time in the location's time zone.
func (s *Sunpath) SolarPosition(t time.Time) (float64, float64) {
	doy := float64(t.YearDay())
	clockHour := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600

	decl := declination(doy)

	// Clock time to solar time: equation of time plus the longitude offset
	// from the time-zone meridian (15 degrees per hour).
	meridian := s.loc.TimeZone * 15
	solarHour := clockHour + equationOfTime(doy)/60 + (s.loc.Longitude-meridian)/15
	hourAngle := (solarHour - 12) * 15

	lat := s.loc.Latitude * degToRad
	dec := decl * degToRad
	ha := hourAngle * degToRad

	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(ha)
	altitude := math.Asin(sinAlt) / degToRad

	// Azimuth clockwise from north via atan2 of the horizontal sun vector.
	azimuth := math.Atan2(
		math.Sin(ha),
		math.Cos(ha)*math.Sin(lat)-math.Tan(dec)*math.Cos(lat),
	)/degToRad + 180

	return altitude, azimuth
}

// declination returns the solar declination in degrees for a day of year,
// using the Cooper approximation.
func declination(doy float64) float64 {
	return 23.45 * math.Sin(2*math.Pi*(284+doy)/365)
}

// equationOfTime returns the clock correction in minutes for a day of year.
func equationOfTime(doy float64) float64 {
	b := 2 * math.Pi * (doy - 81) / 364
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}
