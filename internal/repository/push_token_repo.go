package repository

import (
	"context"
	"time"

	"diligencias/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PushTokenRepository struct {
	db *gorm.DB
}

func NewPushTokenRepository(db *gorm.DB) *PushTokenRepository {
	return &PushTokenRepository{db: db}
}

// Upsert registers a token, refreshing the platform if it is already known.
func (r *PushTokenRepository) Upsert(ctx context.Context, token, platform string) error {
	now := time.Now()
	t := domain.PushToken{Token: token, Platform: platform, CreatedAt: now, UpdatedAt: now}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform", "updated_at"}),
	}).Create(&t).Error
}

func (r *PushTokenRepository) ListTokens(ctx context.Context) ([]string, error) {
	out := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&domain.PushToken{}).
		Order("created_at ASC").
		Pluck("token", &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PushTokenRepository) Delete(ctx context.Context, tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("token IN ?", tokens).Delete(&domain.PushToken{}).Error
}
