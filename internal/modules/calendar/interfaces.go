package calendar

import (
	"context"

	"diligencias/internal/domain"
)

type AppointmentLister interface {
	ListScheduled(ctx context.Context, from, to string) ([]domain.Appointment, error)
}

type UnavailabilityLister interface {
	List(ctx context.Context, from, to string) ([]domain.Unavailability, error)
}

type HolidayProvider interface {
	Between(ctx context.Context, from, to string) ([]domain.Holiday, error)
}
