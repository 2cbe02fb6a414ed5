package membership

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPlanRetired = errors.New("plan is no longer offered")
	ErrNotExpired  = errors.New("assignment has not expired")
)

// Assignment grants a plan to a user for a bounded window. Records are never
// removed; superseded or lapsed ones are flagged inactive.
type Assignment struct {
	id        uuid.UUID
	userID    uuid.UUID
	planID    uuid.UUID
	price     Money
	window    Window
	isActive  bool
	createdAt time.Time
}

// NewAssignment snapshots the plan price so later price changes leave history untouched.
func NewAssignment(userID uuid.UUID, plan *Plan, start time.Time) (*Assignment, error) {
	if !plan.IsOffered() {
		return nil, ErrPlanRetired
	}
	window, err := WindowFor(start, plan.DurationDays())
	if err != nil {
		return nil, err
	}
	return &Assignment{
		id:        uuid.New(),
		userID:    userID,
		planID:    plan.ID(),
		price:     plan.Price(),
		window:    window,
		isActive:  true,
		createdAt: start,
	}, nil
}

func ReconstructAssignment(
	id, userID, planID uuid.UUID,
	price Money,
	window Window,
	isActive bool,
	createdAt time.Time,
) *Assignment {
	return &Assignment{
		id:        id,
		userID:    userID,
		planID:    planID,
		price:     price,
		window:    window,
		isActive:  isActive,
		createdAt: createdAt,
	}
}

// IsValidAt is the single predicate for "currently grants access": active && start <= now <= end.
func (a *Assignment) IsValidAt(now time.Time) bool {
	return a.isActive && a.window.Contains(now)
}

func (a *Assignment) IsExpiredAt(now time.Time) bool {
	return a.isActive && a.window.EndedBefore(now)
}

func (a *Assignment) Expire(now time.Time) error {
	if !a.IsExpiredAt(now) {
		return ErrNotExpired
	}
	a.isActive = false
	return nil
}

func (a *Assignment) Deactivate() { a.isActive = false }

func (a *Assignment) ID() uuid.UUID        { return a.id }
func (a *Assignment) UserID() uuid.UUID    { return a.userID }
func (a *Assignment) PlanID() uuid.UUID    { return a.planID }
func (a *Assignment) Price() Money         { return a.price }
func (a *Assignment) Window() Window       { return a.window }
func (a *Assignment) Start() time.Time     { return a.window.start }
func (a *Assignment) End() time.Time       { return a.window.end }
func (a *Assignment) IsActive() bool       { return a.isActive }
func (a *Assignment) CreatedAt() time.Time { return a.createdAt }

// SelectCurrent picks the valid assignment with the latest start. Creation keeps
// at most one valid assignment per user, but history may still hold several.
func SelectCurrent(assignments []*Assignment, now time.Time) (*Assignment, bool) {
	var current *Assignment
	for _, a := range assignments {
		if a == nil || !a.IsValidAt(now) {
			continue
		}
		if current == nil || a.Start().After(current.Start()) ||
			(a.Start().Equal(current.Start()) && a.CreatedAt().After(current.CreatedAt())) {
			current = a
		}
	}
	return current, current != nil
}

func HasValid(assignments []*Assignment, now time.Time) bool {
	_, ok := SelectCurrent(assignments, now)
	return ok
}
