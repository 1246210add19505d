package receipt

import "diligencias/internal/pkg/apperr"

var (
	ErrNotFound     = apperr.NotFound("RECEIPT_NOT_FOUND", "Receipt not found")
	ErrInvalidMonth = apperr.Validation("INVALID_MONTH", "Year and month must describe a valid calendar month")
)
