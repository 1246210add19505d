package notification

import (
	"context"
	"fmt"

	"diligencias/internal/domain"

	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

type Pusher interface {
	Push(ctx context.Context, msg Push) error
}

type Broadcaster interface {
	Broadcast(msgType string, payload any)
}

type AppointmentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
}

// Dispatcher turns queued events into email, push and realtime messages.
// Every channel is best effort: failures are logged and never retried, so
// one broken channel cannot duplicate messages on the others.
type Dispatcher struct {
	mailer       Mailer
	pusher       Pusher
	broadcaster  Broadcaster
	appointments AppointmentReader
	recipients   []string
	log          *zap.Logger
}

// NewDispatcher accepts nil mailer, pusher or broadcaster to disable that channel.
func NewDispatcher(mailer Mailer, pusher Pusher, broadcaster Broadcaster, appointments AppointmentReader, recipients []string, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		mailer:       mailer,
		pusher:       pusher,
		broadcaster:  broadcaster,
		appointments: appointments,
		recipients:   recipients,
		log:          log,
	}
}

func (d *Dispatcher) Handle(ctx context.Context, ev Event) error {
	switch ev.Type {
	case TypeAppointmentCreated, TypeAppointmentCancelled:
		if ev.Appointment == nil {
			return fmt.Errorf("%s without appointment", ev.Type)
		}
		d.broadcast(ev)
		d.email(ctx, ev)
		d.push(ctx, ev.Type, appointmentPush(ev))
	case TypeAppointmentCompleted:
		if ev.Appointment == nil {
			return fmt.Errorf("%s without appointment", ev.Type)
		}
		d.broadcast(ev)
	case TypeUnavailabilityChanged:
		d.broadcast(ev)
	case TypeVisitReminder:
		return d.remind(ctx, ev)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

func (d *Dispatcher) remind(ctx context.Context, ev Event) error {
	if ev.Appointment == nil {
		return fmt.Errorf("%s without appointment", ev.Type)
	}

	// the visit may have been cancelled or completed since scheduling
	current, err := d.appointments.GetByID(ctx, ev.Appointment.ID)
	if err != nil {
		d.log.Warn("reminder skipped, appointment lookup failed",
			zap.String("appointment_id", ev.Appointment.ID), zap.Error(err))
		return nil
	}
	if !current.IsScheduled() {
		d.log.Debug("reminder skipped, appointment no longer scheduled",
			zap.String("appointment_id", current.ID), zap.String("status", string(current.Status)))
		return nil
	}

	d.push(ctx, ev.Type, reminderPush(current, ev.Reminder))
	return nil
}

func (d *Dispatcher) broadcast(ev Event) {
	if d.broadcaster == nil {
		return
	}
	switch ev.Type {
	case TypeAppointmentCreated:
		d.broadcaster.Broadcast(RealtimeAppointmentCreated, ev.Appointment)
	case TypeAppointmentCancelled:
		d.broadcaster.Broadcast(RealtimeAppointmentCancelled, ev.Appointment)
	case TypeAppointmentCompleted:
		d.broadcaster.Broadcast(RealtimeAppointmentCompleted, map[string]any{
			"appointment": ev.Appointment,
			"amount":      ev.Amount,
		})
	case TypeUnavailabilityChanged:
		d.broadcaster.Broadcast(RealtimeUnavailabilityChanged, map[string]any{
			"unavailability": ev.Unavailability,
			"removed":        ev.Removed,
		})
	}
}

func (d *Dispatcher) email(ctx context.Context, ev Event) {
	if d.mailer == nil || len(d.recipients) == 0 {
		return
	}
	msg, err := buildAppointmentEmail(ev.Type, ev.Appointment)
	if err != nil {
		d.log.Error("build email failed", zap.String("type", ev.Type), zap.Error(err))
		return
	}
	msg.To = d.recipients
	if err := d.mailer.Send(ctx, msg); err != nil {
		d.log.Error("send email failed",
			zap.String("type", ev.Type),
			zap.String("appointment_id", ev.Appointment.ID),
			zap.Error(err))
	}
}

func (d *Dispatcher) push(ctx context.Context, evType string, msg Push) {
	if d.pusher == nil {
		return
	}
	if err := d.pusher.Push(ctx, msg); err != nil {
		d.log.Error("send push failed", zap.String("type", evType), zap.Error(err))
	}
}

func appointmentPush(ev Event) Push {
	a := ev.Appointment
	data := map[string]any{"appointment_id": a.ID, "type": ev.Type}
	when := fmt.Sprintf("%s às %s", BrazilianDate(a.Date), a.Slot)

	if ev.Type == TypeAppointmentCancelled {
		return Push{
			Title: "Diligência cancelada",
			Body:  fmt.Sprintf("%s - %s", a.RequesterName, when),
			Data:  data,
		}
	}
	return Push{
		Title: "Nova diligência",
		Body:  fmt.Sprintf("%s - %s, %s", a.RequesterName, when, a.District),
		Data:  data,
	}
}

func reminderPush(a *domain.Appointment, kind ReminderKind) Push {
	title := "Diligência amanhã"
	if kind == ReminderMorningOf {
		title = "Diligência hoje"
	}
	return Push{
		Title: title,
		Body:  fmt.Sprintf("%s às %s - %s, %s", a.RequesterName, a.Slot, a.Street, a.Number),
		Data:  map[string]any{"appointment_id": a.ID, "type": TypeVisitReminder, "reminder": string(kind)},
	}
}
