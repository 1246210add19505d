package receipt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"diligencias/internal/domain"
	"diligencias/internal/repository"
	"diligencias/internal/schedule"
)

type Service struct {
	receipts  Repository
	completed CompletedLister
	issuer    Issuer
	clock     *schedule.Clock
}

func NewService(receipts Repository, completed CompletedLister, issuer Issuer, clock *schedule.Clock) *Service {
	return &Service{receipts: receipts, completed: completed, issuer: issuer, clock: clock}
}

// List returns every receipt plus completed visits that never got one.
func (s *Service) List(ctx context.Context) (*ListResult, error) {
	receipts, err := s.receipts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	missing, err := s.completed.ListCompletedWithoutReceipt(ctx)
	if err != nil {
		return nil, fmt.Errorf("list completed without receipt: %w", err)
	}
	return &ListResult{Receipts: receipts, CompletedWithoutReceipt: missing}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Receipt, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	r, err := s.receipts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return r, nil
}

// Document renders the printable HTML receipt.
func (s *Service) Document(ctx context.Context, id string) (*domain.Receipt, []byte, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if r.Appointment == nil {
		return nil, nil, ErrNotFound
	}
	doc, err := renderDocument(s.issuer, r, s.clock.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("render receipt: %w", err)
	}
	return r, doc, nil
}

func (s *Service) Summary(ctx context.Context, year, month int) (*Summary, error) {
	if month < 1 || month > 12 || year < 1970 || year > 9999 {
		return nil, ErrInvalidMonth
	}

	yearly, err := s.receipts.ListByAppointmentDate(ctx, fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}

	first, last := schedule.MonthBounds(year, time.Month(month))
	out := &Summary{Year: year, Month: month, Receipts: make([]domain.Receipt, 0)}
	for _, r := range yearly {
		out.YearTotal += r.Amount
		if r.Appointment == nil || r.Appointment.Date < first || r.Appointment.Date > last {
			continue
		}
		out.MonthTotal += r.Amount
		out.MonthCount++
		out.Receipts = append(out.Receipts, r)
		if schedule.PeriodOf(schedule.Slot(r.Appointment.Slot)) == schedule.PeriodMorning {
			out.MorningTotal += r.Amount
		} else {
			out.AfternoonTotal += r.Amount
		}
	}

	out.YearTotal = roundCents(out.YearTotal)
	out.MonthTotal = roundCents(out.MonthTotal)
	out.MorningTotal = roundCents(out.MorningTotal)
	out.AfternoonTotal = roundCents(out.AfternoonTotal)
	return out, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
