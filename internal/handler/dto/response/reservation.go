package response

import (
	"time"

	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Date      string     `json:"date"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Slot      string     `json:"slot"`
	Status    string     `json:"status"`
	Attended  *bool      `json:"attended,omitempty"`
	MarkedBy  *uuid.UUID `json:"marked_by,omitempty"`
	MarkedAt  *time.Time `json:"marked_at,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:        v.ID,
		Date:      v.Date,
		StartTime: v.StartTime,
		EndTime:   v.EndTime,
		Slot:      v.StartTime + " - " + v.EndTime,
		Status:    v.Status,
		Attended:  v.Attended,
		MarkedBy:  v.MarkedBy,
		MarkedAt:  v.MarkedAt,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
	}
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	return FromReservationView(queries.NewReservationView(r))
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	res := make([]*ReservationResponse, len(views))
	for i, v := range views {
		res[i] = FromReservationView(v)
	}
	return res
}

type ViolationResponse struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func FromViolations(ve *reservation.ValidationErrors) []ViolationResponse {
	res := make([]ViolationResponse, len(ve.Violations))
	for i, v := range ve.Violations {
		res[i] = ViolationResponse{Field: v.Field, Code: v.Code, Message: v.Message}
	}
	return res
}
