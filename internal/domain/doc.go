// Package domain models the hourly weather observations flowing through the
// comfort pipeline and their enrichment into thermal stress reports.
//
// # Data Source
//
// Observations originate from an upstream collector that polls surface
// weather stations hourly and publishes one flat JSON record per station-hour
// to the Kafka source topic. Numeric fields arrive as strings because the
// collector passes source values through untouched.
//
// # Conventions
//
// Time is the observation hour in RFC 3339. Air and radiant temperatures are
// degrees C; wind speed is the meteorological value measured 10 m above
// ground in m/s; humidity is a percentage. An empty WindSpeed means calm air
// and an empty RadTemp means no radiant measurement, in which case the
// defaults of the UTCI model apply (0.1 m/s and the air temperature).
//
// # ID Generation
//
// Report IDs are deterministic SHA-256 hashes of station|hour, so replaying
// the source topic regenerates identical IDs and downstream upserts stay
// idempotent. See generateID.
package domain
