package sunpath

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Equator on an equinox at solar noon: the sun should be nearly overhead.
func TestSolarPositionEquinoxNoon(t *testing.T) {
	sp := FromLocation(Location{Latitude: 0, Longitude: 0, TimeZone: 0})

	alt, _ := sp.SolarPosition(time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC))
	assert.InDelta(t, 90, alt, 3)
}

func TestSolarPositionNightIsBelowHorizon(t *testing.T) {
	sp := FromLocation(Location{Latitude: 40, Longitude: -105, TimeZone: -7})

	alt, _ := sp.SolarPosition(time.Date(2024, time.June, 21, 0, 30, 0, 0, time.UTC))
	assert.Negative(t, alt)
}

func TestSolarPositionSummerNoonNorthernHemisphere(t *testing.T) {
	// Boulder, CO at local solar noon on the summer solstice:
	// altitude near 90 - |lat - 23.45| = 73.4, sun roughly due south.
	sp := FromLocation(Location{Latitude: 40, Longitude: -105, TimeZone: -7})

	alt, az := sp.SolarPosition(time.Date(2024, time.June, 21, 12, 0, 0, 0, time.FixedZone("MST", -7*3600)))
	assert.InDelta(t, 73.4, alt, 3)
	assert.InDelta(t, 180, az, 20)
}

func TestSolarPositionIsDeterministic(t *testing.T) {
	sp := FromLocation(Location{Latitude: 51.5, Longitude: -0.1, TimeZone: 0})
	ts := time.Date(2024, time.September, 1, 15, 0, 0, 0, time.UTC)

	alt1, az1 := sp.SolarPosition(ts)
	alt2, az2 := sp.SolarPosition(ts)
	assert.Equal(t, alt1, alt2)
	assert.Equal(t, az1, az2)
}

// countingPositioner counts delegated calls so cache hits are observable.
type countingPositioner struct {
	inner SolarPositioner
	calls atomic.Int64
}

func (c *countingPositioner) SolarPosition(t time.Time) (float64, float64) {
	c.calls.Add(1)
	return c.inner.SolarPosition(t)
}

func TestCachedMemoizesByTimestamp(t *testing.T) {
	counting := &countingPositioner{inner: FromLocation(Location{Latitude: 40, Longitude: -105, TimeZone: -7})}
	cached := NewCached(counting, 10)
	ts := time.Date(2024, time.June, 21, 9, 0, 0, 0, time.UTC)

	alt1, az1 := cached.SolarPosition(ts)
	alt2, az2 := cached.SolarPosition(ts)

	require.Equal(t, int64(1), counting.calls.Load())
	assert.Equal(t, alt1, alt2)
	assert.Equal(t, az1, az2)
}

func TestCachedEvictsLeastRecentlyUsed(t *testing.T) {
	counting := &countingPositioner{inner: FromLocation(Location{Latitude: 40, Longitude: -105, TimeZone: -7})}
	cached := NewCached(counting, 2)

	t0 := time.Date(2024, time.June, 21, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)

	cached.SolarPosition(t0)
	cached.SolarPosition(t1)
	cached.SolarPosition(t2) // evicts t0
	cached.SolarPosition(t0) // miss again

	assert.Equal(t, int64(4), counting.calls.Load())
}
