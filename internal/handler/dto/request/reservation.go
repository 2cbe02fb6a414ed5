package request

import (
	"time"

	"fitclub-core/internal/domain/reservation"
)

type CreateReservationRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
}

// ToBooking resolves the calendar date in the club's time zone.
func (r CreateReservationRequest) ToBooking(loc *time.Location) (time.Time, reservation.TimeOfDay, error) {
	date, err := time.ParseInLocation(time.DateOnly, r.Date, loc)
	if err != nil {
		return time.Time{}, 0, err
	}
	start, err := reservation.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return time.Time{}, 0, err
	}
	return date, start, nil
}

type AttendanceRequest struct {
	Attended *bool  `json:"attended" binding:"required"`
	Notes    string `json:"notes" binding:"max=500"`
}
