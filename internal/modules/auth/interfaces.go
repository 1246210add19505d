package auth

import "time"

type TokenIssuer interface {
	GenerateToken(role string) (string, time.Time, error)
}
