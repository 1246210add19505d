package history

import (
	"context"
	"fmt"

	"diligencias/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Repository interface {
	List(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

// Service reads the audit trail of appointment changes, newest first.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Recent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	logs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
