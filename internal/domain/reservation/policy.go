package reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const DefaultCapacity = 20

// Policy holds the club's booking rules.
type Policy struct {
	Opening    TimeOfDay
	Closing    TimeOfDay
	SlotLength time.Duration
	Capacity   int
	ClosedDays []time.Weekday
}

func DefaultPolicy() Policy {
	return Policy{
		Opening:    TimeOfDay(8 * 60),
		Closing:    TimeOfDay(23 * 60),
		SlotLength: time.Hour,
		Capacity:   DefaultCapacity,
		ClosedDays: []time.Weekday{time.Sunday},
	}
}

func (p Policy) WithCapacity(capacity int) Policy {
	p.Capacity = capacity
	return p
}

func (p Policy) IsClosedOn(date time.Time) bool {
	for _, d := range p.ClosedDays {
		if date.Weekday() == d {
			return true
		}
	}
	return false
}

// HourSlots lists the bookable slots of a date, from opening up to closing.
func (p Policy) HourSlots(date time.Time) []Slot {
	var slots []Slot
	for start := p.Opening; start < p.Closing; start = start.Add(p.SlotLength) {
		end := start.Add(p.SlotLength)
		if end > p.Closing {
			end = p.Closing
		}
		slot, err := NewSlot(date, start, end)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}
	return slots
}

type Booking struct {
	UserID uuid.UUID
	Date   time.Time
	Start  TimeOfDay
}

// Check evaluates all booking rules for b. sameDate must contain the reservations
// already stored for b.Date; cancelled ones are ignored. The returned slot is only
// meaningful when err is nil.
func (p Policy) Check(b Booking, now time.Time, sameDate []*Reservation) (Slot, error) {
	ve := &ValidationErrors{}
	loc := b.Date.Location()
	today := startOfDay(now.In(loc))
	date := startOfDay(b.Date)
	start := b.Start
	end := start.Add(p.SlotLength)

	if date.Before(today) {
		ve.Add("date", CodePastDate, "date must be today or later")
	} else if sameDay(date, today) && start.On(date).Before(now) {
		ve.Add("start_time", CodeStartPassed, "start time has already passed")
	}
	if p.IsClosedOn(date) {
		ve.Add("date", CodeClosedDay, fmt.Sprintf("the club is closed on %s", date.Weekday()))
	}

	hoursOK := true
	if start < p.Opening || start >= p.Closing {
		ve.Add("start_time", CodeOutOfHours,
			fmt.Sprintf("start time must be between %s and %s", p.Opening, p.Closing))
		hoursOK = false
	} else if end > p.Closing {
		ve.Add("end_time", CodeOutOfHours,
			fmt.Sprintf("session must end by %s", p.Closing))
		hoursOK = false
	}
	if !hoursOK {
		return Slot{}, ve
	}

	slot, err := NewSlot(date, start, end)
	if err != nil {
		return Slot{}, err
	}

	for _, r := range sameDate {
		if r.UserID() == b.UserID && r.Status().Occupies() && r.Slot().Overlaps(slot) {
			ve.Add("start_time", CodeOverlap,
				fmt.Sprintf("overlaps your reservation at %s", r.Slot().Label()))
			break
		}
	}

	if p.isFull(slot, sameDate) {
		ve.Add("start_time", CodeCapacity, "the requested session is full")
	}

	if err := ve.OrNil(); err != nil {
		return Slot{}, err
	}
	return slot, nil
}

// isFull rejects when the requested interval already overlaps capacity reservations,
// or when any hour slot it touches is already at capacity.
func (p Policy) isFull(slot Slot, sameDate []*Reservation) bool {
	if Occupancy(slot, sameDate) >= p.Capacity {
		return true
	}
	for _, hour := range p.HourSlots(slot.Date()) {
		if hour.Overlaps(slot) && Occupancy(hour, sameDate) >= p.Capacity {
			return true
		}
	}
	return false
}

// Occupancy counts non-cancelled reservations intersecting slot.
func Occupancy(slot Slot, reservations []*Reservation) int {
	n := 0
	for _, r := range reservations {
		if r.Status().Occupies() && r.Slot().Overlaps(slot) {
			n++
		}
	}
	return n
}

type SlotAvailability struct {
	Hour      int
	Start     TimeOfDay
	End       TimeOfDay
	Label     string
	Occupied  int
	Capacity  int
	Available bool
}

// Availability reports occupancy for every hour slot of date. Closed days are
// still computed.
func (p Policy) Availability(date time.Time, reservations []*Reservation) []SlotAvailability {
	hours := p.HourSlots(date)
	out := make([]SlotAvailability, 0, len(hours))
	for _, h := range hours {
		occupied := Occupancy(h, reservations)
		out = append(out, SlotAvailability{
			Hour:      h.Start().Hour(),
			Start:     h.Start(),
			End:       h.End(),
			Label:     h.Label(),
			Occupied:  occupied,
			Capacity:  p.Capacity,
			Available: occupied < p.Capacity,
		})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
