package calendar

import "diligencias/internal/pkg/apperr"

var ErrInvalidMonth = apperr.Validation("INVALID_MONTH", "Year and month must describe a valid calendar month")
