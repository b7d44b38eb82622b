package validate

import "fmt"

// The validation error kinds. Every failure is raised synchronously during
// calculator construction and is caller-correctable; none are retried.
var (
	ErrTypeMismatch          = &kindError{"type mismatch"}
	ErrUnitMismatch          = &kindError{"unit mismatch"}
	ErrInvalidTimestep       = &kindError{"invalid timestep"}
	ErrMisalignedCollections = &kindError{"misaligned collections"}
	ErrInvalidParameter      = &kindError{"invalid parameter"}
)

type kindError struct{ kind string }

func (e *kindError) Error() string { return e.kind }

// Errorf wraps a kind sentinel with detail so callers can match with
// errors.Is while logs carry the specifics.
func Errorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
