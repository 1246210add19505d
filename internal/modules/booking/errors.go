package booking

import "diligencias/internal/pkg/apperr"

var (
	ErrMissingFields = apperr.Validation("REQUIRED_FIELDS", "Requester name, date, slot and full address are required")
	ErrInvalidDate   = apperr.Validation("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	ErrInvalidSlot   = apperr.Validation("INVALID_SLOT", "Slot is not one of the available times")
	ErrInvalidCEP    = apperr.Validation("INVALID_CEP", "CEP must have 8 digits")
	ErrInvalidState  = apperr.Validation("INVALID_STATE", "State must be a 2-letter code")
	ErrInvalidStatus = apperr.Validation("INVALID_STATUS", "Status must be scheduled, completed or cancelled")
	ErrWeekend       = apperr.Validation("WEEKEND_NOT_ALLOWED", "Visits can only be booked on weekdays")
	ErrPastDate      = apperr.Validation("PAST_DATE", "Visits cannot be booked on a past date")
	ErrSlotElapsed   = apperr.Validation("SLOT_ELAPSED", "This time has already passed today")
	ErrInvalidAmount = apperr.Validation("INVALID_AMOUNT", "Amount must be greater than zero")

	ErrDayUnavailable     = apperr.Conflict("DAY_UNAVAILABLE", "The driver is unavailable on this date")
	ErrHoliday            = apperr.Conflict("HOLIDAY", "Visits cannot be booked on holidays")
	ErrSlotTaken          = apperr.Conflict("SLOT_TAKEN", "This slot is already occupied")
	ErrAlreadyCancelled   = apperr.Conflict("ALREADY_CANCELLED", "Appointment is already cancelled")
	ErrAlreadyCompleted   = apperr.Conflict("ALREADY_COMPLETED", "Appointment is already completed")
	ErrCancellationClosed = apperr.Conflict("CANCELLATION_WINDOW_EXPIRED", "Cancellation window has expired (30 minutes before the visit)")
	ErrReceiptExists      = apperr.Conflict("RECEIPT_EXISTS", "A receipt already exists for this appointment")
	ErrStatusChanged      = apperr.Conflict("STATUS_CHANGED", "Appointment is no longer scheduled")

	ErrNotFound = apperr.NotFound("APPOINTMENT_NOT_FOUND", "Appointment not found")
)
