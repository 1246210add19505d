package auth

import "time"

const (
	RoleStaff  = "staff"
	RoleDriver = "driver"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type Session struct {
	Role      string    `json:"role"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}
