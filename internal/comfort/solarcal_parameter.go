// Package comfort defines the immutable parameter objects consumed by the
// solar and UTCI calculators: body geometry assumptions for radiant exchange
// and the cut-point thresholds that classify index values into stress
// categories.
package comfort

import "github.com/parth025sharma/ladybug-comfort/internal/validate"

// Posture is the fixed enumeration of body postures for solar exposure.
type Posture string

const (
	Standing Posture = "standing"
	Seated   Posture = "seated"
	Lying    Posture = "lying"
)

// SolarCalParameter holds the human-geometry assumptions of the solar radiant
// exchange model. Immutable once constructed.
type SolarCalParameter struct {
	posture          Posture
	sharp            float64
	bodyAzimuth      *float64
	bodyAbsorptivity float64
	bodyEmissivity   float64
}

// NewSolarCalParameter validates and constructs a parameter set.
//
// sharp is the solar horizontal angle relative to the front of the person, in
// degrees between 0 and 180 (0 is sun in front, 180 behind). It is ignored
// when bodyAzimuth is non-nil, in which case SHARP is derived per timestep
// from the solar azimuth instead.
func NewSolarCalParameter(posture Posture, sharp float64, bodyAzimuth *float64, absorptivity, emissivity float64) (*SolarCalParameter, error) {
	switch posture {
	case Standing, Seated, Lying:
	default:
		return nil, validate.Errorf(validate.ErrInvalidParameter,
			"posture must be standing, seated or lying, got %q", posture)
	}
	if sharp < 0 || sharp > 180 {
		return nil, validate.Errorf(validate.ErrInvalidParameter,
			"sharp must be between 0 and 180, got %g", sharp)
	}
	if bodyAzimuth != nil && (*bodyAzimuth < 0 || *bodyAzimuth >= 360) {
		return nil, validate.Errorf(validate.ErrInvalidParameter,
			"body azimuth must be between 0 and 360, got %g", *bodyAzimuth)
	}
	if absorptivity <= 0 || absorptivity > 1 {
		return nil, validate.Errorf(validate.ErrInvalidParameter,
			"body absorptivity must be between 0 and 1, got %g", absorptivity)
	}
	if emissivity <= 0 || emissivity > 1 {
		return nil, validate.Errorf(validate.ErrInvalidParameter,
			"body emissivity must be between 0 and 1, got %g", emissivity)
	}
	p := &SolarCalParameter{
		posture:          posture,
		sharp:            sharp,
		bodyAbsorptivity: absorptivity,
		bodyEmissivity:   emissivity,
	}
	if bodyAzimuth != nil {
		az := *bodyAzimuth
		p.bodyAzimuth = &az
	}
	return p, nil
}

// DefaultSolarCalParameter returns a fresh parameter set for a standing person
// with a 135 degree SHARP angle, 0.7 shortwave absorptivity, and 0.95
// longwave emissivity. Each call returns an independent value.
func DefaultSolarCalParameter() *SolarCalParameter {
	p, err := NewSolarCalParameter(Standing, 135, nil, 0.7, 0.95)
	if err != nil {
		panic(err)
	}
	return p
}

// Posture returns the body posture.
func (p *SolarCalParameter) Posture() Posture { return p.posture }

// Sharp returns the fixed solar-to-body horizontal angle in degrees.
func (p *SolarCalParameter) Sharp() float64 { return p.sharp }

// BodyAzimuth returns the fixed body azimuth in degrees and whether one is
// set. When set, SHARP is derived from the solar azimuth at each timestep.
func (p *SolarCalParameter) BodyAzimuth() (float64, bool) {
	if p.bodyAzimuth == nil {
		return 0, false
	}
	return *p.bodyAzimuth, true
}

// BodyAbsorptivity returns the shortwave absorptivity of the body.
func (p *SolarCalParameter) BodyAbsorptivity() float64 { return p.bodyAbsorptivity }

// BodyEmissivity returns the longwave emissivity of the body.
func (p *SolarCalParameter) BodyEmissivity() float64 { return p.bodyEmissivity }

// Duplicate returns an independent copy.
func (p *SolarCalParameter) Duplicate() *SolarCalParameter {
	d := *p
	if p.bodyAzimuth != nil {
		az := *p.bodyAzimuth
		d.bodyAzimuth = &az
	}
	return &d
}
