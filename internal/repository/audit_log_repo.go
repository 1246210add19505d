package repository

import (
	"context"

	"diligencias/internal/domain"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, l *domain.AuditLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// List returns the most recent entries with their appointment.
func (r *AuditLogRepository) List(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	out := make([]domain.AuditLog, 0)
	err := r.db.WithContext(ctx).Preload("Appointment").
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
