package membership

import (
	"errors"
	"time"
)

var (
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidWindow   = errors.New("membership window must end after it starts")
	ErrInvalidDuration = errors.New("plan duration must be at least one day")
	ErrEmptyPlanName   = errors.New("plan name is required")
)

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

// Window is the closed interval [start, end] during which an assignment grants access.
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

// WindowFor starts at start and lasts durationDays calendar days.
func WindowFor(start time.Time, durationDays int) (Window, error) {
	if durationDays < 1 {
		return Window{}, ErrInvalidDuration
	}
	return NewWindow(start, start.AddDate(0, 0, durationDays))
}

func (w Window) Start() time.Time { return w.start }
func (w Window) End() time.Time   { return w.end }

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.start) && !t.After(w.end)
}

func (w Window) EndedBefore(t time.Time) bool {
	return w.end.Before(t)
}

type Feature string

const (
	FeatureRoutine Feature = "routine"
	FeatureDiet    Feature = "diet"
)

func (f Feature) IsValid() bool {
	return f == FeatureRoutine || f == FeatureDiet
}

type Entitlements struct {
	AllowsRoutine bool
	AllowsDiet    bool
}

func NoEntitlements() Entitlements {
	return Entitlements{}
}

func (e Entitlements) Allows(f Feature) bool {
	switch f {
	case FeatureRoutine:
		return e.AllowsRoutine
	case FeatureDiet:
		return e.AllowsDiet
	default:
		return false
	}
}
