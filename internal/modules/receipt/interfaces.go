package receipt

import (
	"context"

	"diligencias/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Receipt, error)
	List(ctx context.Context) ([]domain.Receipt, error)
	ListByAppointmentDate(ctx context.Context, from, to string) ([]domain.Receipt, error)
}

type CompletedLister interface {
	ListCompletedWithoutReceipt(ctx context.Context) ([]domain.Appointment, error)
}
