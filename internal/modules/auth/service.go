package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service checks the shared office password and opens sessions.
type Service struct {
	passwordHash []byte
	tokens       TokenIssuer
	log          *zap.Logger
}

func NewService(passwordHash string, tokens TokenIssuer, log *zap.Logger) *Service {
	return &Service{
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		tokens:       tokens,
		log:          log,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = RoleStaff
	}
	if role != RoleStaff && role != RoleDriver {
		return nil, ErrInvalidRole
	}

	if len(s.passwordHash) == 0 {
		s.log.Warn("login attempted but AUTH_PASSWORD_HASH is empty")
		return nil, ErrNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.GenerateToken(role)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	s.log.Info("session opened", zap.String("role", role))
	return &Session{Role: role, Token: token, ExpiresAt: expires}, nil
}
