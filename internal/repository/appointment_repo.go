package repository

import (
	"context"
	"time"

	"diligencias/internal/domain"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts a scheduled appointment in one statement that also refuses
// unavailable days. The partial unique index on (date, slot) rejects a
// second scheduled visit for the same slot with ErrDuplicate. The day lock
// orders it against UnavailabilityRepository.Create for the same date.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	q := `
INSERT INTO appointments
  (id, requester_name, date, slot, cep, street, number, complement, district, city, state, notes, status, created_at, updated_at)
SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'scheduled', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
WHERE NOT EXISTS (SELECT 1 FROM unavailabilities WHERE date = ?)
`
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDay(tx, a.Date); err != nil {
			return err
		}
		res := tx.Exec(q,
			a.ID, a.RequesterName, a.Date, a.Slot,
			a.CEP, a.Street, a.Number, a.Complement, a.District, a.City, a.State,
			a.Notes, a.Date,
		)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return ErrDuplicate
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDayBlocked
		}
		return nil
	})
	if err != nil {
		return err
	}

	saved, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *saved
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *AppointmentRepository) List(ctx context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	q := r.db.WithContext(ctx).Model(&domain.Appointment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date <= ?", f.To)
	}

	out := make([]domain.Appointment, 0)
	if err := q.Order("date DESC").Order("slot ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListScheduled returns scheduled visits between from and to inclusive,
// earliest first. An empty to means no upper bound.
func (r *AppointmentRepository) ListScheduled(ctx context.Context, from, to string) ([]domain.Appointment, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", domain.AppointmentScheduled).
		Where("date >= ?", from)
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	out := make([]domain.Appointment, 0)
	if err := q.Order("date ASC").Order("slot ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentRepository) IsSlotTaken(ctx context.Context, date, slot string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Appointment{}).
		Where("date = ? AND slot = ? AND status = ?", date, slot, domain.AppointmentScheduled).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *AppointmentRepository) HasScheduledOn(ctx context.Context, date string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Appointment{}).
		Where("date = ? AND status = ?", date, domain.AppointmentScheduled).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// Cancel moves a scheduled appointment to cancelled. ErrStatusChanged means
// another request already moved it.
func (r *AppointmentRepository) Cancel(ctx context.Context, id, actor string, at time.Time) (*domain.Appointment, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Appointment{}).
		Where("id = ? AND status = ?", id, domain.AppointmentScheduled).
		Updates(map[string]any{
			"status":       domain.AppointmentCancelled,
			"cancelled_at": at,
			"cancelled_by": actor,
			"updated_at":   at,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrStatusChanged
	}
	return r.GetByID(ctx, id)
}

// Complete marks the appointment completed and stores its receipt in one
// transaction. A second receipt for the same appointment yields ErrDuplicate.
func (r *AppointmentRepository) Complete(ctx context.Context, id string, receipt *domain.Receipt, at time.Time) (*domain.Appointment, error) {
	var out domain.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Appointment{}).
			Where("id = ? AND status = ?", id, domain.AppointmentScheduled).
			Updates(map[string]any{
				"status":       domain.AppointmentCompleted,
				"completed_at": at,
				"updated_at":   at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusChanged
		}

		receipt.AppointmentID = id
		receipt.CreatedAt = at
		if err := tx.Create(receipt).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}

		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCompletedWithoutReceipt finds completed visits that never got a receipt.
func (r *AppointmentRepository) ListCompletedWithoutReceipt(ctx context.Context) ([]domain.Appointment, error) {
	out := make([]domain.Appointment, 0)
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.AppointmentCompleted).
		Where("id NOT IN (?)", r.db.Model(&domain.Receipt{}).Select("appointment_id")).
		Order("date DESC").Order("slot ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
