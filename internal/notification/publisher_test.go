package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"diligencias/internal/domain"
	"diligencias/internal/schedule"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scheduledEvent struct {
	ev Event
	at time.Time
}

type fakeQueue struct {
	enqueued  []Event
	scheduled []scheduledEvent
	err       error
}

func (q *fakeQueue) Enqueue(_ context.Context, ev Event) error {
	q.enqueued = append(q.enqueued, ev)
	return q.err
}

func (q *fakeQueue) Schedule(_ context.Context, ev Event, at time.Time) error {
	q.scheduled = append(q.scheduled, scheduledEvent{ev: ev, at: at})
	return q.err
}

func (q *fakeQueue) Close() error { return nil }

var brt = time.FixedZone("BRT", -3*60*60)

func TestReminderTimes(t *testing.T) {
	rs, err := ReminderTimes("2024-06-11", brt)
	require.NoError(t, err)
	require.Len(t, rs, 3)
	assert.Equal(t, time.Date(2024, 6, 10, 18, 0, 0, 0, brt), rs[0].At)
	assert.Equal(t, time.Date(2024, 6, 10, 21, 0, 0, 0, brt), rs[1].At)
	assert.Equal(t, time.Date(2024, 6, 11, 8, 0, 0, 0, brt), rs[2].At)
	assert.Equal(t, ReminderMorningOf, rs[2].Kind)
}

func TestPublisher_CreatedSchedulesFutureReminders(t *testing.T) {
	q := &fakeQueue{}
	clock := schedule.NewFixedClock(brt, time.Date(2024, 6, 10, 19, 30, 0, 0, brt))
	p := NewPublisher(q, clock, zap.NewNop())

	a := sampleAppointment()
	p.AppointmentCreated(context.Background(), a)

	require.Len(t, q.enqueued, 1)
	assert.Equal(t, TypeAppointmentCreated, q.enqueued[0].Type)
	assert.Equal(t, clock.Now(), q.enqueued[0].OccurredAt)

	// 18:00 already passed
	require.Len(t, q.scheduled, 2)
	assert.Equal(t, ReminderNightBefore, q.scheduled[0].ev.Reminder)
	assert.Equal(t, ReminderMorningOf, q.scheduled[1].ev.Reminder)

	// the queued payload is a snapshot
	a.Status = domain.AppointmentCancelled
	assert.Equal(t, domain.AppointmentScheduled, q.enqueued[0].Appointment.Status)
}

func TestPublisher_SwallowsQueueErrors(t *testing.T) {
	q := &fakeQueue{err: errors.New("redis down")}
	p := NewPublisher(q, schedule.NewFixedClock(brt, time.Date(2024, 6, 1, 9, 0, 0, 0, brt)), zap.NewNop())

	assert.NotPanics(t, func() {
		p.AppointmentCancelled(context.Background(), sampleAppointment())
		p.AppointmentCompleted(context.Background(), sampleAppointment(), 120)
		p.UnavailabilityChanged(context.Background(), &domain.Unavailability{ID: "u1", Date: "2024-06-12"}, true)
	})
	assert.Len(t, q.enqueued, 3)
	assert.Equal(t, 120.0, q.enqueued[1].Amount)
	assert.True(t, q.enqueued[2].Removed)
}

func TestTaskHandler(t *testing.T) {
	var got Event
	h := taskHandler(func(ctx context.Context, ev Event) error {
		got = ev
		return nil
	})

	task, err := newTask(Event{Type: TypeAppointmentCompleted, Amount: 99.9})
	require.NoError(t, err)
	require.NoError(t, h(context.Background(), task))
	assert.Equal(t, TypeAppointmentCompleted, got.Type)
	assert.Equal(t, 99.9, got.Amount)

	err = h(context.Background(), asynq.NewTask(TypeAppointmentCreated, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
