package response

import (
	"time"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/usecase/commands"

	"github.com/google/uuid"
)

type AssignmentResponse struct {
	ID         uuid.UUID `json:"id"`
	PlanID     uuid.UUID `json:"plan_id"`
	PriceCents int64     `json:"price_cents"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Active     bool      `json:"active"`
}

func FromAssignment(a *membership.Assignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:         a.ID(),
		PlanID:     a.PlanID(),
		PriceCents: a.Price().Cents(),
		StartsAt:   a.Start(),
		EndsAt:     a.End(),
		Active:     a.IsActive(),
	}
}

type SweepResponse struct {
	ExpiredAssignments int   `json:"expired_assignments"`
	DeactivatedUsers   int   `json:"deactivated_users"`
	ElapsedMs          int64 `json:"elapsed_ms"`
}

func FromSweepResult(r *commands.SweepResult) *SweepResponse {
	return &SweepResponse{
		ExpiredAssignments: r.ExpiredAssignments,
		DeactivatedUsers:   r.DeactivatedUsers,
		ElapsedMs:          r.Elapsed.Milliseconds(),
	}
}
