package repository

import (
	"context"

	"diligencias/internal/domain"

	"gorm.io/gorm"
)

type UnavailabilityRepository struct {
	db *gorm.DB
}

func NewUnavailabilityRepository(db *gorm.DB) *UnavailabilityRepository {
	return &UnavailabilityRepository{db: db}
}

// Create blocks a day unless a scheduled appointment already exists on it.
// It holds the day lock shared with AppointmentRepository.Create, so a
// booking and a block for the same date cannot both commit.
func (r *UnavailabilityRepository) Create(ctx context.Context, u *domain.Unavailability) error {
	q := `
INSERT INTO unavailabilities (id, date, reason, created_at)
SELECT ?, ?, ?, CURRENT_TIMESTAMP
WHERE NOT EXISTS (SELECT 1 FROM appointments WHERE date = ? AND status = 'scheduled')
`
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDay(tx, u.Date); err != nil {
			return err
		}
		res := tx.Exec(q, u.ID, u.Date, u.Reason, u.Date)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return ErrDuplicate
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDayHasAppointments
		}
		return nil
	})
	if err != nil {
		return err
	}

	var saved domain.Unavailability
	if err := r.db.WithContext(ctx).First(&saved, "id = ?", u.ID).Error; err != nil {
		return notFound(err)
	}
	*u = saved
	return nil
}

// GetByDate returns nil when the day is not blocked.
func (r *UnavailabilityRepository) GetByDate(ctx context.Context, date string) (*domain.Unavailability, error) {
	var u domain.Unavailability
	tx := r.db.WithContext(ctx).Where("date = ?", date).Limit(1).Find(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &u, nil
}

func (r *UnavailabilityRepository) List(ctx context.Context, from, to string) ([]domain.Unavailability, error) {
	q := r.db.WithContext(ctx).Model(&domain.Unavailability{})
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	out := make([]domain.Unavailability, 0)
	if err := q.Order("date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UnavailabilityRepository) Delete(ctx context.Context, id string) (*domain.Unavailability, error) {
	var u domain.Unavailability
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	tx := r.db.WithContext(ctx).Delete(&domain.Unavailability{}, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &u, nil
}
