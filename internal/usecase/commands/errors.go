package commands

import (
	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/pkg/errs"
)

var (
	ErrMembershipRequired = errs.ErrMembershipRequired
	ErrUserNotFound       = errs.ErrUserNotFound
	ErrPlanNotFound       = errs.ErrPlanNotFound
	ErrPlanNotOffered     = errs.ErrPlanNotOffered
	ErrForbidden          = errs.ErrForbidden
	ErrReservationMissing = errs.ErrReservationNotFound

	// Cancel outcomes, all marked with ErrNotFoundOrPast
	ErrNotFoundOrPast     = errs.ErrNotFoundOrPast
	ErrNothingToCancel    = errs.New("nothing to cancel")
	ErrCancelWindowClosed = reservation.ErrCancelWindowClosed
	ErrAlreadyCancelled   = reservation.ErrAlreadyCancelled

	ErrDatabaseOperationFailed = errs.ErrDatabaseOperationFailed
)
