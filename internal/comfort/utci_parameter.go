package comfort

import "github.com/parth025sharma/ladybug-comfort/internal/validate"

// UTCIParameter holds the ordered cut-point thresholds (degrees C of UTCI)
// that partition index values into stress categories, and which band counts
// as comfortable. The defaults follow the thresholds meteorologists use to
// categorize outdoor conditions. Immutable once constructed.
type UTCIParameter struct {
	extremeCold    float64 // below: extreme cold stress
	veryStrongCold float64
	strongCold     float64
	moderateCold   float64
	cold           float64 // comfortable band lower bound
	heat           float64 // comfortable band upper bound
	moderateHeat   float64
	strongHeat     float64
	veryStrongHeat float64
	extremeHeat    float64 // above: extreme heat stress
}

// NewUTCIParameter validates that the ten thresholds are strictly ascending
// and constructs a parameter set. Thresholds are, in order: extreme cold,
// very strong cold, strong cold, moderate cold, cold (comfort lower bound),
// heat (comfort upper bound), moderate heat, strong heat, very strong heat,
// extreme heat.
func NewUTCIParameter(thresholds [10]float64) (*UTCIParameter, error) {
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return nil, validate.Errorf(validate.ErrInvalidParameter,
				"UTCI thresholds must be strictly ascending, got %g before %g",
				thresholds[i-1], thresholds[i])
		}
	}
	return &UTCIParameter{
		extremeCold:    thresholds[0],
		veryStrongCold: thresholds[1],
		strongCold:     thresholds[2],
		moderateCold:   thresholds[3],
		cold:           thresholds[4],
		heat:           thresholds[5],
		moderateHeat:   thresholds[6],
		strongHeat:     thresholds[7],
		veryStrongHeat: thresholds[8],
		extremeHeat:    thresholds[9],
	}, nil
}

// DefaultUTCIParameter returns a fresh parameter set with the standard UTCI
// assessment thresholds. Each call returns an independent value.
func DefaultUTCIParameter() *UTCIParameter {
	p, err := NewUTCIParameter([10]float64{-40, -27, -13, 0, 9, 26, 28, 32, 38, 46})
	if err != nil {
		panic(err)
	}
	return p
}

// Duplicate returns an independent copy.
func (p *UTCIParameter) Duplicate() *UTCIParameter {
	d := *p
	return &d
}

// ColdThreshold returns the lower bound of the comfortable band.
func (p *UTCIParameter) ColdThreshold() float64 { return p.cold }

// HeatThreshold returns the upper bound of the comfortable band.
func (p *UTCIParameter) HeatThreshold() float64 { return p.heat }

// IsComfortable returns 1 when the UTCI value falls inside the comfortable
// band and 0 otherwise.
func (p *UTCIParameter) IsComfortable(utci float64) int {
	if utci >= p.cold && utci <= p.heat {
		return 1
	}
	return 0
}

// ThermalCondition classifies a UTCI value as cold (-1), neutral (0), or
// hot (+1).
func (p *UTCIParameter) ThermalCondition(utci float64) int {
	switch {
	case utci < p.cold:
		return -1
	case utci <= p.heat:
		return 0
	default:
		return 1
	}
}

// ThermalConditionFivePoint classifies a UTCI value on a five-point scale:
// -2 strong/extreme cold, -1 moderate cold, 0 no thermal stress, +1 moderate
// heat, +2 strong/extreme heat.
func (p *UTCIParameter) ThermalConditionFivePoint(utci float64) int {
	switch {
	case utci < p.strongCold:
		return -2
	case utci < p.moderateCold:
		return -1
	case utci <= p.moderateHeat:
		return 0
	case utci <= p.strongHeat:
		return 1
	default:
		return 2
	}
}

// ThermalConditionSevenPoint classifies a UTCI value on a seven-point scale
// from very strong/extreme cold stress (-3) to very strong/extreme heat
// stress (+3).
func (p *UTCIParameter) ThermalConditionSevenPoint(utci float64) int {
	switch {
	case utci < p.veryStrongCold:
		return -3
	case utci < p.strongCold:
		return -2
	case utci < p.moderateCold:
		return -1
	case utci <= p.heat:
		return 0
	case utci <= p.strongHeat:
		return 1
	case utci <= p.veryStrongHeat:
		return 2
	default:
		return 3
	}
}

// ThermalConditionNinePoint classifies a UTCI value on a nine-point scale
// from very strong/extreme cold stress (-4) to very strong/extreme heat
// stress (+4), with slight stress bands on either side of comfort.
func (p *UTCIParameter) ThermalConditionNinePoint(utci float64) int {
	switch {
	case utci < p.veryStrongCold:
		return -4
	case utci < p.strongCold:
		return -3
	case utci < p.moderateCold:
		return -2
	case utci < p.cold:
		return -1
	case utci <= p.heat:
		return 0
	case utci <= p.moderateHeat:
		return 1
	case utci <= p.strongHeat:
		return 2
	case utci <= p.veryStrongHeat:
		return 3
	default:
		return 4
	}
}

// ThermalConditionElevenPoint classifies a UTCI value on the full eleven-point
// scale from extreme cold stress (-5) to extreme heat stress (+5).
func (p *UTCIParameter) ThermalConditionElevenPoint(utci float64) int {
	switch {
	case utci < p.extremeCold:
		return -5
	case utci < p.veryStrongCold:
		return -4
	case utci < p.strongCold:
		return -3
	case utci < p.moderateCold:
		return -2
	case utci < p.cold:
		return -1
	case utci <= p.heat:
		return 0
	case utci <= p.moderateHeat:
		return 1
	case utci <= p.strongHeat:
		return 2
	case utci <= p.veryStrongHeat:
		return 3
	case utci <= p.extremeHeat:
		return 4
	default:
		return 5
	}
}

// OriginalUTCICategory classifies a UTCI value on the original ten-bucket
// assessment scale of the Glossary of Terms for Thermal Physiology (2003),
// from 0 (extreme cold stress) to 9 (extreme heat stress). The original scale
// has no slight-heat band, so the moderate-heat cut is not used here.
func (p *UTCIParameter) OriginalUTCICategory(utci float64) int {
	switch {
	case utci < p.extremeCold:
		return 0
	case utci < p.veryStrongCold:
		return 1
	case utci < p.strongCold:
		return 2
	case utci < p.moderateCold:
		return 3
	case utci < p.cold:
		return 4
	case utci <= p.heat:
		return 5
	case utci <= p.strongHeat:
		return 6
	case utci <= p.veryStrongHeat:
		return 7
	case utci <= p.extremeHeat:
		return 8
	default:
		return 9
	}
}

// CategoryName returns the human-readable label for an eleven-point category.
func CategoryName(category int) string {
	switch category {
	case -5:
		return "extreme cold stress"
	case -4:
		return "very strong cold stress"
	case -3:
		return "strong cold stress"
	case -2:
		return "moderate cold stress"
	case -1:
		return "slight cold stress"
	case 0:
		return "no thermal stress"
	case 1:
		return "slight heat stress"
	case 2:
		return "moderate heat stress"
	case 3:
		return "strong heat stress"
	case 4:
		return "very strong heat stress"
	case 5:
		return "extreme heat stress"
	default:
		return "unknown"
	}
}
