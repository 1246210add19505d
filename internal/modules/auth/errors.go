package auth

import "diligencias/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "INVALID_CREDENTIALS", "Password is incorrect")
	ErrInvalidRole        = apperr.Validation("INVALID_ROLE", "Role must be staff or driver")
	ErrNotConfigured      = apperr.New(apperr.KindUnauthorized, "AUTH_NOT_CONFIGURED", "Login is not configured on this server")
)
