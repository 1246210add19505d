package pushtoken

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type Repository interface {
	Upsert(ctx context.Context, token, platform string) error
	Delete(ctx context.Context, tokens ...string) error
}

var platforms = map[string]bool{"ios": true, "android": true, "web": true}

// Service keeps the set of devices that receive visit push notifications.
type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	token := strings.TrimSpace(req.Token)
	if !isExpoToken(token) {
		return ErrInvalidToken
	}
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if platform == "" {
		platform = "android"
	}
	if !platforms[platform] {
		return ErrInvalidPlatform
	}

	if err := s.repo.Upsert(ctx, token, platform); err != nil {
		return fmt.Errorf("save push token: %w", err)
	}
	s.log.Info("push token registered", zap.String("platform", platform))
	return nil
}

// Unregister is idempotent: removing an unknown token succeeds.
func (s *Service) Unregister(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}
	if err := s.repo.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete push token: %w", err)
	}
	return nil
}

func isExpoToken(t string) bool {
	if !strings.HasSuffix(t, "]") {
		return false
	}
	return (strings.HasPrefix(t, "ExponentPushToken[") || strings.HasPrefix(t, "ExpoPushToken[")) &&
		len(t) > len("ExpoPushToken[]")
}
