package pushtoken

import "diligencias/internal/pkg/apperr"

var (
	ErrInvalidToken    = apperr.Validation("INVALID_PUSH_TOKEN", "Token must be an Expo push token")
	ErrInvalidPlatform = apperr.Validation("INVALID_PLATFORM", "Platform must be ios, android or web")
)
