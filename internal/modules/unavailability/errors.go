package unavailability

import "diligencias/internal/pkg/apperr"

var (
	ErrInvalidDate     = apperr.Validation("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	ErrPastDate        = apperr.Validation("PAST_DATE", "A past date cannot be marked as unavailable")
	ErrHasAppointments = apperr.Conflict("DAY_HAS_APPOINTMENTS", "There are scheduled appointments on this date")
	ErrAlreadyBlocked  = apperr.Conflict("ALREADY_UNAVAILABLE", "This date is already marked as unavailable")
	ErrNotFound        = apperr.NotFound("UNAVAILABILITY_NOT_FOUND", "Unavailability not found")
)
