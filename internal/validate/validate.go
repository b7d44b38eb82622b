// Package validate enforces the input contract shared by the comfort
// calculators: quantity tags, unit strings, and temporal alignment across
// every collection participating in one computation. The functions are pure;
// the only side effect of a violation is the returned error.
package validate

import "github.com/parth025sharma/ladybug-comfort/internal/series"

// Input is a tagged union over the two forms an optional calculator input can
// take: an aligned collection or a single scalar broadcast over the base
// collection's timestamps. The union is resolved once by CheckInput; nothing
// downstream distinguishes the two forms.
type Input struct {
	coll   *series.Collection
	scalar float64
}

// FromCollection wraps a collection as a calculator input.
func FromCollection(c *series.Collection) Input { return Input{coll: c} }

// FromScalar wraps a constant as a calculator input.
func FromScalar(v float64) Input { return Input{scalar: v} }

// IsScalar reports whether the input carries a scalar rather than a collection.
func (in Input) IsScalar() bool { return in.coll == nil }

// Registry accumulates the collections participating in one computation so
// their alignment can be checked once, after all inputs are registered and
// before any computation begins.
type Registry struct {
	base  *series.Collection
	colls []*series.Collection
}

// NewRegistry creates a registry anchored on the base collection. The base's
// timestamps are the alignment reference and its length bounds every other
// input.
func NewRegistry(base *series.Collection) *Registry {
	return &Registry{base: base, colls: []*series.Collection{base}}
}

// CalcLength returns the length of the base collection.
func (r *Registry) CalcLength() int { return r.base.Len() }

// CheckInput validates an input against the expected quantity and unit and
// resolves it to an aligned collection. A collection input must carry the
// expected quantity tag (or a subtype of it) and the exact expected unit, and
// is registered for the later alignment check. A scalar input is broadcast
// over the base timestamps and needs no registration: it is aligned by
// construction.
func (r *Registry) CheckInput(in Input, expected series.DataType, unit, name string) (*series.Collection, error) {
	if in.IsScalar() {
		return r.base.GetAlignedCollection(in.scalar, expected, unit), nil
	}
	if err := checkHeader(in.coll, expected, unit, name); err != nil {
		return nil, err
	}
	r.colls = append(r.colls, in.coll)
	return in.coll, nil
}

// RadiationCheck is the CheckInput variant for radiation-like inputs. It
// accepts either an irradiance collection (W/m2) or a cumulative radiation
// collection (Wh/m2); the latter only when the collection's native timestep is
// one value per hour, where the two are numerically interchangeable.
func (r *Registry) RadiationCheck(c *series.Collection, name string) (*series.Collection, error) {
	h := c.Header()
	if h.DataType.IsSubtypeOf(series.Radiation) {
		if h.Unit != "Wh/m2" {
			return nil, Errorf(ErrUnitMismatch, "%s must be in Wh/m2, got %q", name, h.Unit)
		}
		if h.Timestep != 1 {
			return nil, Errorf(ErrInvalidTimestep,
				"%s timestep must be 1 when using Radiation as the data type, got %d", name, h.Timestep)
		}
		r.colls = append(r.colls, c)
		return c, nil
	}
	if err := checkHeader(c, series.Irradiance, "W/m2", name); err != nil {
		return nil, err
	}
	r.colls = append(r.colls, c)
	return c, nil
}

// AlignCheck fails if any two registered collections differ in length or in
// any timestamp. Call it once, after all inputs are registered.
func (r *Registry) AlignCheck() error {
	if !series.AreCollectionsAligned(r.colls) {
		return Errorf(ErrMisalignedCollections,
			"%d input collections do not share identical timestamps", len(r.colls))
	}
	return nil
}

func checkHeader(c *series.Collection, expected series.DataType, unit, name string) error {
	h := c.Header()
	if !h.DataType.IsSubtypeOf(expected) {
		return Errorf(ErrTypeMismatch, "%s must be %s, got %s", name, expected, h.DataType)
	}
	if h.Unit != unit {
		return Errorf(ErrUnitMismatch, "%s must be in %s, got %q", name, unit, h.Unit)
	}
	return nil
}
