package unavailability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"diligencias/internal/domain"
	"diligencias/internal/repository"
	"diligencias/internal/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo   Repository
	events EventPublisher
	clock  *schedule.Clock
	log    *zap.Logger
}

func NewService(repo Repository, events EventPublisher, clock *schedule.Clock, log *zap.Logger) *Service {
	return &Service{repo: repo, events: events, clock: clock, log: log}
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Unavailability, error) {
	from, to := strings.TrimSpace(q.From), strings.TrimSpace(q.To)
	if (from != "" && !schedule.ValidDate(from)) || (to != "" && !schedule.ValidDate(to)) {
		return nil, ErrInvalidDate
	}
	return s.repo.List(ctx, from, to)
}

// Create blocks a day. It is refused while the day still has scheduled
// visits, mirroring the booking rule that refuses visits on blocked days.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Unavailability, error) {
	date := strings.TrimSpace(req.Date)
	if !schedule.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	if s.clock.IsPast(date) {
		return nil, ErrPastDate
	}

	u := &domain.Unavailability{
		ID:     uuid.NewString(),
		Date:   date,
		Reason: strings.TrimSpace(req.Reason),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDayHasAppointments):
			return nil, ErrHasAppointments
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadyBlocked
		}
		return nil, fmt.Errorf("create unavailability: %w", err)
	}

	s.log.Info("day marked unavailable", zap.String("date", u.Date))
	if s.events != nil {
		s.events.UnavailabilityChanged(ctx, u, false)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete unavailability: %w", err)
	}

	s.log.Info("day unblocked", zap.String("date", u.Date))
	if s.events != nil {
		s.events.UnavailabilityChanged(ctx, u, true)
	}
	return nil
}
