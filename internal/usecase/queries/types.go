package queries

import (
	"time"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/domain/reservation"

	"github.com/google/uuid"
)

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type EntitlementView struct {
	AllowsRoutine      bool       `json:"allows_routine"`
	AllowsDiet         bool       `json:"allows_diet"`
	HasValidMembership bool       `json:"has_valid_membership"`
	PlanID             *uuid.UUID `json:"plan_id,omitempty"`
	PlanName           string     `json:"plan_name,omitempty"`
	ValidUntil         *time.Time `json:"valid_until,omitempty"`
}

type PlanView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	PriceCents    int64     `json:"price_cents"`
	DurationDays  int       `json:"duration_days"`
	AllowsRoutine bool      `json:"allows_routine"`
	AllowsDiet    bool      `json:"allows_diet"`
}

type SlotView struct {
	Hour      int    `json:"hour"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
	Occupied  int    `json:"occupied"`
	Capacity  int    `json:"capacity"`
}

type AvailabilityView struct {
	Date   string     `json:"date"`
	Closed bool       `json:"closed"`
	Slots  []SlotView `json:"slots"`
}

type ReservationView struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Date      string     `json:"date"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Status    string     `json:"status"`
	Attended  *bool      `json:"attended,omitempty"`
	MarkedBy  *uuid.UUID `json:"marked_by,omitempty"`
	MarkedAt  *time.Time `json:"marked_at,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewReservationView(r *reservation.Reservation) *ReservationView {
	v := &ReservationView{
		ID:        r.ID(),
		UserID:    r.UserID(),
		Date:      r.Date().Format(time.DateOnly),
		StartTime: r.Slot().Start().String(),
		EndTime:   r.Slot().End().String(),
		Status:    r.Status().String(),
		CreatedAt: r.CreatedAt(),
	}
	if a := r.Attendance(); a != nil {
		attended, markedBy, markedAt := a.Attended, a.MarkedBy, a.MarkedAt
		v.Attended = &attended
		v.MarkedBy = &markedBy
		v.MarkedAt = &markedAt
		v.Notes = a.Notes
	}
	return v
}

func NewPlanView(p *membership.Plan) *PlanView {
	return &PlanView{
		ID:            p.ID(),
		Name:          p.Name(),
		PriceCents:    p.Price().Cents(),
		DurationDays:  p.DurationDays(),
		AllowsRoutine: p.AllowsRoutine(),
		AllowsDiet:    p.AllowsDiet(),
	}
}

func newAvailabilityView(date time.Time, closed bool, slots []reservation.SlotAvailability) *AvailabilityView {
	v := &AvailabilityView{
		Date:   date.Format(time.DateOnly),
		Closed: closed,
		Slots:  make([]SlotView, 0, len(slots)),
	}
	for _, s := range slots {
		v.Slots = append(v.Slots, SlotView{
			Hour:      s.Hour,
			Label:     s.Label,
			Available: s.Available,
			Occupied:  s.Occupied,
			Capacity:  s.Capacity,
		})
	}
	return v
}
