package reservation

import (
	"errors"
	"strings"
)

var (
	ErrInvalidTimeOfDay   = errors.New("invalid time of day")
	ErrInvalidTimeSlot    = errors.New("invalid time slot")
	ErrInvalidStatus      = errors.New("invalid reservation status")
	ErrInvalidTransition  = errors.New("reservation status transition not allowed")
	ErrAlreadyCancelled   = errors.New("reservation is already cancelled")
	ErrCancelWindowClosed = errors.New("reservation has already started")
	ErrSessionNotStarted  = errors.New("session has not started yet")

	// ErrValidation matches any *ValidationErrors through errors.Is.
	ErrValidation = errors.New("reservation validation failed")
)

const (
	CodePastDate    = "past_date"
	CodeStartPassed = "start_passed"
	CodeClosedDay   = "closed_day"
	CodeOutOfHours  = "out_of_hours"
	CodeOverlap     = "overlap"
	CodeCapacity    = "capacity"
)

type Violation struct {
	Field   string
	Code    string
	Message string
}

// ValidationErrors carries every broken booking rule, not only the first one.
type ValidationErrors struct {
	Violations []Violation
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationErrors) Add(field, code, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, Code: code, Message: message})
}

func (e *ValidationErrors) HasCode(code string) bool {
	for _, v := range e.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func (e *ValidationErrors) OrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}
