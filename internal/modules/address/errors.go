package address

import "diligencias/internal/pkg/apperr"

var (
	ErrInvalidCEP  = apperr.Validation("INVALID_CEP", "CEP must have 8 digits")
	ErrCEPNotFound = apperr.NotFound("CEP_NOT_FOUND", "CEP not found")
	ErrUpstream    = apperr.Upstream("CEP_LOOKUP_FAILED", "Address lookup is unavailable, fill the address manually")
)
