package repository

import (
	"context"

	"diligencias/internal/domain"

	"gorm.io/gorm"
)

type ReceiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

func (r *ReceiptRepository) GetByID(ctx context.Context, id string) (*domain.Receipt, error) {
	var rec domain.Receipt
	if err := r.db.WithContext(ctx).Preload("Appointment").First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

func (r *ReceiptRepository) ExistsForAppointment(ctx context.Context, appointmentID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Receipt{}).
		Where("appointment_id = ?", appointmentID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// List returns receipts with their appointment, newest first.
func (r *ReceiptRepository) List(ctx context.Context) ([]domain.Receipt, error) {
	out := make([]domain.Receipt, 0)
	err := r.db.WithContext(ctx).Preload("Appointment").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByAppointmentDate returns receipts whose visit date lies in from..to.
func (r *ReceiptRepository) ListByAppointmentDate(ctx context.Context, from, to string) ([]domain.Receipt, error) {
	visits := r.db.Model(&domain.Appointment{}).
		Select("id").
		Where("date >= ? AND date <= ?", from, to)

	out := make([]domain.Receipt, 0)
	err := r.db.WithContext(ctx).Preload("Appointment").
		Where("appointment_id IN (?)", visits).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
