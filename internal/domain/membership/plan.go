package membership

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Plan is immutable once referenced by an assignment, except for its offered flag.
type Plan struct {
	id            uuid.UUID
	name          string
	price         Money
	durationDays  int
	allowsRoutine bool
	allowsDiet    bool
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPlan(name string, price Money, durationDays int, allowsRoutine, allowsDiet bool) (*Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyPlanName
	}
	if durationDays < 1 {
		return nil, ErrInvalidDuration
	}
	return &Plan{
		id:            uuid.New(),
		name:          name,
		price:         price,
		durationDays:  durationDays,
		allowsRoutine: allowsRoutine,
		allowsDiet:    allowsDiet,
		isActive:      true,
	}, nil
}

func ReconstructPlan(
	id uuid.UUID,
	name string,
	price Money,
	durationDays int,
	allowsRoutine, allowsDiet, isActive bool,
	createdAt, updatedAt time.Time,
) *Plan {
	return &Plan{
		id:            id,
		name:          name,
		price:         price,
		durationDays:  durationDays,
		allowsRoutine: allowsRoutine,
		allowsDiet:    allowsDiet,
		isActive:      isActive,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Plan) Entitlements() Entitlements {
	return Entitlements{AllowsRoutine: p.allowsRoutine, AllowsDiet: p.allowsDiet}
}

func (p *Plan) Retire() { p.isActive = false }

func (p *Plan) ID() uuid.UUID        { return p.id }
func (p *Plan) Name() string         { return p.name }
func (p *Plan) Price() Money         { return p.price }
func (p *Plan) DurationDays() int    { return p.durationDays }
func (p *Plan) AllowsRoutine() bool  { return p.allowsRoutine }
func (p *Plan) AllowsDiet() bool     { return p.allowsDiet }
func (p *Plan) IsOffered() bool      { return p.isActive }
func (p *Plan) CreatedAt() time.Time { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time { return p.updatedAt }
