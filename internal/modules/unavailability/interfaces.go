package unavailability

import (
	"context"

	"diligencias/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u *domain.Unavailability) error
	List(ctx context.Context, from, to string) ([]domain.Unavailability, error)
	Delete(ctx context.Context, id string) (*domain.Unavailability, error)
}

type EventPublisher interface {
	UnavailabilityChanged(ctx context.Context, u *domain.Unavailability, removed bool)
}
