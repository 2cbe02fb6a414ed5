//go:build unit || e2e

package builder

import (
	"time"

	"fitclub-core/internal/domain/membership"

	"github.com/google/uuid"
)

type PlanBuilder struct {
	ID            uuid.UUID
	Name          string
	PriceCents    int64
	DurationDays  int
	AllowsRoutine bool
	AllowsDiet    bool
	Offered       bool
}

func NewPlanBuilder() *PlanBuilder {
	return &PlanBuilder{
		ID:            uuid.New(),
		Name:          "Basic",
		PriceCents:    2999,
		DurationDays:  30,
		AllowsRoutine: true,
		AllowsDiet:    false,
		Offered:       true,
	}
}

func (p *PlanBuilder) With(mutate func(*PlanBuilder)) *PlanBuilder {
	mutate(p)
	return p
}

func (p *PlanBuilder) BuildDomain() *membership.Plan {
	now := time.Now()
	price, err := membership.NewMoney(p.PriceCents)
	if err != nil {
		panic(err)
	}
	return membership.ReconstructPlan(p.ID, p.Name, price, p.DurationDays,
		p.AllowsRoutine, p.AllowsDiet, p.Offered, now, now)
}

func (p *PlanBuilder) WithName(name string) *PlanBuilder {
	p.Name = name
	return p
}

func (p *PlanBuilder) WithEntitlements(routine, diet bool) *PlanBuilder {
	p.AllowsRoutine, p.AllowsDiet = routine, diet
	return p
}

func (p *PlanBuilder) Retired() *PlanBuilder {
	p.Offered = false
	return p
}

type AssignmentBuilder struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	PlanID     uuid.UUID
	PriceCents int64
	Start      time.Time
	End        time.Time
	IsActive   bool
	CreatedAt  time.Time
}

// NewAssignmentBuilder defaults to a 30 day window that is valid at now.
func NewAssignmentBuilder(userID, planID uuid.UUID, now time.Time) *AssignmentBuilder {
	return &AssignmentBuilder{
		ID:         uuid.New(),
		UserID:     userID,
		PlanID:     planID,
		PriceCents: 2999,
		Start:      now.AddDate(0, 0, -1),
		End:        now.AddDate(0, 0, 29),
		IsActive:   true,
		CreatedAt:  now.AddDate(0, 0, -1),
	}
}

func (a *AssignmentBuilder) With(mutate func(*AssignmentBuilder)) *AssignmentBuilder {
	mutate(a)
	return a
}

func (a *AssignmentBuilder) BuildDomain() *membership.Assignment {
	price, err := membership.NewMoney(a.PriceCents)
	if err != nil {
		panic(err)
	}
	window, err := membership.NewWindow(a.Start, a.End)
	if err != nil {
		panic(err)
	}
	return membership.ReconstructAssignment(a.ID, a.UserID, a.PlanID, price, window, a.IsActive, a.CreatedAt)
}

func (a *AssignmentBuilder) WithWindow(start, end time.Time) *AssignmentBuilder {
	a.Start, a.End = start, end
	a.CreatedAt = start
	return a
}

func (a *AssignmentBuilder) AsInactive() *AssignmentBuilder {
	a.IsActive = false
	return a
}
