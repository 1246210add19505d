package booking

import (
	"context"
	"time"

	"diligencias/internal/domain"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error)
	ListScheduled(ctx context.Context, from, to string) ([]domain.Appointment, error)
	IsSlotTaken(ctx context.Context, date, slot string) (bool, error)
	Cancel(ctx context.Context, id, actor string, at time.Time) (*domain.Appointment, error)
	Complete(ctx context.Context, id string, receipt *domain.Receipt, at time.Time) (*domain.Appointment, error)
}

type UnavailabilityReader interface {
	GetByDate(ctx context.Context, date string) (*domain.Unavailability, error)
}

type ReceiptChecker interface {
	ExistsForAppointment(ctx context.Context, appointmentID string) (bool, error)
}

type AuditLogWriter interface {
	Create(ctx context.Context, l *domain.AuditLog) error
}

type HolidayChecker interface {
	On(ctx context.Context, date string) (*domain.Holiday, error)
}

// EventPublisher hands committed changes to the notification queue.
type EventPublisher interface {
	AppointmentCreated(ctx context.Context, a *domain.Appointment)
	AppointmentCancelled(ctx context.Context, a *domain.Appointment)
	AppointmentCompleted(ctx context.Context, a *domain.Appointment, amount float64)
}
