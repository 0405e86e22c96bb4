package biochar

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Typed errors below unwrap to these so callers can use
// errors.Is without knowing the concrete type.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedScenario = errors.New("unsupported scenario")
)

// InvalidInputError reports a violated numeric or structural invariant.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// UnsupportedScenarioError reports a (temperature, horizon) pair with no
// tabulated coefficients.
type UnsupportedScenarioError struct {
	SoilTemp float64
	Horizon  Horizon
}

func (e *UnsupportedScenarioError) Error() string {
	return fmt.Sprintf("unsupported scenario: no permanence coefficients for soil temperature %g°C at %d years",
		e.SoilTemp, e.Horizon)
}

func (e *UnsupportedScenarioError) Unwrap() error { return ErrUnsupportedScenario }

func invalid(field string, value any, reason string) error {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}
