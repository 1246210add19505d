package notification

import (
	"context"
	"time"

	"diligencias/internal/domain"
	"diligencias/internal/schedule"

	"go.uber.org/zap"
)

// Reminder is a push sent ahead of a visit.
type Reminder struct {
	Kind ReminderKind
	At   time.Time
}

// ReminderTimes lists 18:00 and 21:00 on the day before and 08:00 on the
// day of the visit.
func ReminderTimes(date string, loc *time.Location) ([]Reminder, error) {
	day, err := schedule.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}
	prev := day.AddDate(0, 0, -1)
	at := func(d time.Time, hour int) time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, loc)
	}
	return []Reminder{
		{Kind: ReminderEveningBefore, At: at(prev, 18)},
		{Kind: ReminderNightBefore, At: at(prev, 21)},
		{Kind: ReminderMorningOf, At: at(day, 8)},
	}, nil
}

// Publisher enqueues side effects after a state change has been committed.
// It never fails the caller; queue errors are logged.
type Publisher struct {
	queue Queue
	clock *schedule.Clock
	log   *zap.Logger
}

func NewPublisher(queue Queue, clock *schedule.Clock, log *zap.Logger) *Publisher {
	return &Publisher{queue: queue, clock: clock, log: log}
}

func (p *Publisher) AppointmentCreated(ctx context.Context, a *domain.Appointment) {
	snapshot := *a
	p.enqueue(ctx, Event{Type: TypeAppointmentCreated, Appointment: &snapshot})
	p.scheduleReminders(ctx, &snapshot)
}

func (p *Publisher) AppointmentCancelled(ctx context.Context, a *domain.Appointment) {
	snapshot := *a
	p.enqueue(ctx, Event{Type: TypeAppointmentCancelled, Appointment: &snapshot})
}

func (p *Publisher) AppointmentCompleted(ctx context.Context, a *domain.Appointment, amount float64) {
	snapshot := *a
	p.enqueue(ctx, Event{Type: TypeAppointmentCompleted, Appointment: &snapshot, Amount: amount})
}

func (p *Publisher) UnavailabilityChanged(ctx context.Context, u *domain.Unavailability, removed bool) {
	snapshot := *u
	p.enqueue(ctx, Event{Type: TypeUnavailabilityChanged, Unavailability: &snapshot, Removed: removed})
}

func (p *Publisher) enqueue(ctx context.Context, ev Event) {
	ev.OccurredAt = p.clock.Now()
	if err := p.queue.Enqueue(ctx, ev); err != nil {
		p.log.Error("enqueue notification failed", zap.String("type", ev.Type), zap.Error(err))
	}
}

func (p *Publisher) scheduleReminders(ctx context.Context, a *domain.Appointment) {
	reminders, err := ReminderTimes(a.Date, p.clock.Location())
	if err != nil {
		p.log.Error("reminder times failed", zap.String("appointment_id", a.ID), zap.Error(err))
		return
	}

	now := p.clock.Now()
	for _, r := range reminders {
		if !r.At.After(now) {
			continue
		}
		ev := Event{Type: TypeVisitReminder, Appointment: a, Reminder: r.Kind, OccurredAt: now}
		if err := p.queue.Schedule(ctx, ev, r.At); err != nil {
			p.log.Error("schedule reminder failed",
				zap.String("appointment_id", a.ID),
				zap.String("reminder", string(r.Kind)),
				zap.Error(err))
		}
	}
}
