package reservation

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time expressed as minutes after local midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay accepts "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Hour() int    { return int(t) / 60 }
func (t TimeOfDay) Minute() int  { return int(t) % 60 }
func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On places the wall-clock time on the calendar date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location())
}

// Slot is the half-open interval [start, end) on a calendar date.
type Slot struct {
	date  time.Time
	start TimeOfDay
	end   TimeOfDay
}

// NewSlot truncates date to midnight of its own location.
func NewSlot(date time.Time, start, end TimeOfDay) (Slot, error) {
	if end <= start || end > minutesPerDay {
		return Slot{}, ErrInvalidTimeSlot
	}
	y, m, d := date.Date()
	return Slot{
		date:  time.Date(y, m, d, 0, 0, 0, 0, date.Location()),
		start: start,
		end:   end,
	}, nil
}

func (s Slot) Date() time.Time    { return s.date }
func (s Slot) Start() TimeOfDay   { return s.start }
func (s Slot) End() TimeOfDay     { return s.end }
func (s Slot) StartAt() time.Time { return s.start.On(s.date) }
func (s Slot) EndAt() time.Time   { return s.end.On(s.date) }

func (s Slot) SameDate(other Slot) bool {
	return sameDay(s.date, other.date)
}

// Overlaps uses a0 < b1 && b0 < a1 on the same date.
func (s Slot) Overlaps(other Slot) bool {
	return s.SameDate(other) && s.start < other.end && other.start < s.end
}

func (s Slot) Label() string {
	return s.start.String() + " - " + s.end.String()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
