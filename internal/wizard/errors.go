package wizard

import (
	"errors"
	"strings"
)

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrBusy is returned while another operation on the same wizard is in flight.
	ErrBusy = errors.New("Please wait for the current action to finish.")
	// ErrConfiguration is returned when reference data needed by a step is missing.
	ErrConfiguration = errors.New("Character creation data is unavailable. Returning to the previous step.")
	// ErrDice is returned when attribute dice cannot be rolled.
	ErrDice = errors.New("Error rolling attributes. Please try again.")
	// ErrCreateFailed is returned when the character sheet cannot be created.
	ErrCreateFailed = errors.New("Error creating character sheet. Please try again.")
	// ErrUnexpected is returned when an operation panicked.
	ErrUnexpected = errors.New("An error occurred. Your progress has been saved.")
	// ErrWrongStep is returned when an input or action does not belong to the current step.
	ErrWrongStep = errors.New("not available at this step")
)

// ValidationError carries every problem found by a step's rules.
type ValidationError struct {
	Step     Step
	Problems []string
}

func (e *ValidationError) Error() string {
	return e.Step.String() + ": " + strings.Join(e.Problems, "; ")
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(step Step, problems ...string) error {
	return &ValidationError{Step: step, Problems: problems}
}
