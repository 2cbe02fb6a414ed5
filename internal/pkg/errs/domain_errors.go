package errs

import "errors"

// Sentinels shared by the usecase layers
var (
	// Membership errors
	ErrPlanNotFound       = errors.New("membership plan not found")
	ErrPlanNotOffered     = errors.New("membership plan is not offered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrMembershipRequired = errors.New("valid membership required")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotFoundOrPast      = errors.New("reservation not found or already elapsed")
	ErrForbidden           = errors.New("operation not permitted for this role")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
