package calendar

import (
	"context"
	"fmt"
	"time"

	"diligencias/internal/domain"
	"diligencias/internal/schedule"

	"go.uber.org/zap"
)

type Service struct {
	appointments AppointmentLister
	days         UnavailabilityLister
	holidays     HolidayProvider
	catalog      *schedule.Catalog
	clock        *schedule.Clock
	log          *zap.Logger
}

func NewService(appointments AppointmentLister, days UnavailabilityLister, holidays HolidayProvider, catalog *schedule.Catalog, clock *schedule.Clock, log *zap.Logger) *Service {
	return &Service{
		appointments: appointments,
		days:         days,
		holidays:     holidays,
		catalog:      catalog,
		clock:        clock,
		log:          log,
	}
}

// ComputeMonth derives availability for every cell of the month grid.
// Store failures fail the request; a failing holiday source only drops
// holidays.
func (s *Service) ComputeMonth(ctx context.Context, year, month int) (*Month, error) {
	if month < 1 || month > 12 || year < 1970 || year > 9999 {
		return nil, ErrInvalidMonth
	}
	start, end := schedule.CalendarGridBounds(year, time.Month(month))

	appointments, err := s.appointments.ListScheduled(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	blocked, err := s.days.List(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list unavailabilities: %w", err)
	}
	holidays := s.loadHolidays(ctx, start, end)

	dates, err := schedule.DatesBetween(start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]domain.Appointment)
	for _, a := range appointments {
		byDate[a.Date] = append(byDate[a.Date], a)
	}
	blockedByDate := make(map[string]*domain.Unavailability, len(blocked))
	for i := range blocked {
		blockedByDate[blocked[i].Date] = &blocked[i]
	}
	holidayByDate := make(map[string]*domain.Holiday, len(holidays))
	for i := range holidays {
		if _, ok := holidayByDate[holidays[i].Date]; !ok {
			holidayByDate[holidays[i].Date] = &holidays[i]
		}
	}

	days := make([]domain.CalendarDay, 0, len(dates))
	for _, date := range dates {
		days = append(days, s.day(date, month, byDate[date], blockedByDate[date], holidayByDate[date]))
	}

	return &Month{
		Year:             year,
		Month:            month,
		Start:            start,
		End:              end,
		Slots:            s.catalog.Strings(),
		Days:             days,
		Holidays:         holidays,
		Unavailabilities: blocked,
	}, nil
}

func (s *Service) day(date string, month int, appointments []domain.Appointment, blocked *domain.Unavailability, holiday *domain.Holiday) domain.CalendarDay {
	t, _ := time.Parse(schedule.DateLayout, date)

	d := domain.CalendarDay{
		Date:           date,
		Day:            t.Day(),
		Weekday:        int(t.Weekday()),
		InMonth:        int(t.Month()) == month,
		IsToday:        s.clock.IsToday(date),
		IsPast:         s.clock.IsPast(date),
		IsWeekend:      schedule.IsWeekend(date),
		Holiday:        holiday,
		Unavailability: blocked,
		Appointments:   appointments,
		OccupiedSlots:  make([]string, 0),
		ElapsedSlots:   make([]string, 0),
		AvailableSlots: make([]string, 0),
		TotalSlots:     s.catalog.Len(),
	}
	if d.Appointments == nil {
		d.Appointments = make([]domain.Appointment, 0)
	}

	occupied := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		occupied[a.Slot] = true
	}

	for _, slot := range s.catalog.All() {
		switch {
		case occupied[slot.String()]:
			d.OccupiedSlots = append(d.OccupiedSlots, slot.String())
		case d.IsToday && s.clock.HasSlotElapsed(date, slot):
			d.ElapsedSlots = append(d.ElapsedSlots, slot.String())
		default:
			d.AvailableSlots = append(d.AvailableSlots, slot.String())
		}
	}

	switch {
	case d.IsWeekend:
		d.Status = domain.DayWeekend
	case holiday != nil:
		d.Status = domain.DayHoliday
	case blocked != nil:
		d.Status = domain.DayUnavailable
	case d.IsPast:
		d.Status = domain.DayPast
	default:
		d.AvailableCount = len(d.AvailableSlots)
		for _, slot := range d.AvailableSlots {
			if schedule.PeriodOf(schedule.Slot(slot)) == schedule.PeriodMorning {
				d.MorningAvailable++
			} else {
				d.AfternoonAvailable++
			}
		}
		switch {
		case d.AvailableCount == d.TotalSlots:
			d.Status = domain.DayAvailable
		case d.AvailableCount == 0:
			d.Status = domain.DayBooked
		default:
			d.Status = domain.DayPartial
		}
	}

	if d.Status != domain.DayAvailable && d.Status != domain.DayPartial && d.Status != domain.DayBooked {
		d.AvailableSlots = make([]string, 0)
	}
	return d
}

func (s *Service) loadHolidays(ctx context.Context, start, end string) []domain.Holiday {
	if s.holidays == nil {
		return make([]domain.Holiday, 0)
	}
	list, err := s.holidays.Between(ctx, start, end)
	if err != nil {
		s.log.Warn("holidays unavailable for calendar", zap.String("start", start), zap.String("end", end), zap.Error(err))
		return make([]domain.Holiday, 0)
	}
	return list
}
