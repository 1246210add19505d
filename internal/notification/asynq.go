package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const taskTimeout = 30 * time.Second

var taskTypes = []string{
	TypeAppointmentCreated,
	TypeAppointmentCancelled,
	TypeAppointmentCompleted,
	TypeUnavailabilityChanged,
	TypeVisitReminder,
}

// AsynqQueue persists events in Redis so scheduled reminders survive restarts.
type AsynqQueue struct {
	client *asynq.Client
}

func NewAsynqQueue(opt asynq.RedisClientOpt) *AsynqQueue {
	return &AsynqQueue{client: asynq.NewClient(opt)}
}

func (q *AsynqQueue) Enqueue(ctx context.Context, ev Event) error {
	task, err := newTask(ev)
	if err != nil {
		return err
	}
	_, err = q.client.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Timeout(taskTimeout))
	return err
}

func (q *AsynqQueue) Schedule(ctx context.Context, ev Event, at time.Time) error {
	task, err := newTask(ev)
	if err != nil {
		return err
	}

	opts := []asynq.Option{asynq.ProcessAt(at), asynq.MaxRetry(3), asynq.Timeout(taskTimeout)}
	if ev.Appointment != nil && ev.Reminder != "" {
		opts = append(opts, asynq.TaskID(fmt.Sprintf("reminder:%s:%s", ev.Appointment.ID, ev.Reminder)))
	}

	_, err = q.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func (q *AsynqQueue) Close() error {
	return q.client.Close()
}

func newTask(ev Event) (*asynq.Task, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(ev.Type, payload), nil
}

// AsynqWorker consumes events enqueued by AsynqQueue.
type AsynqWorker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

func NewAsynqWorker(opt asynq.RedisClientOpt, concurrency int, handler Handler, log *zap.Logger) *AsynqWorker {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{"default": 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Error("notification task failed", zap.String("type", task.Type()), zap.Error(err))
		}),
	})

	mux := asynq.NewServeMux()
	h := taskHandler(handler)
	for _, t := range taskTypes {
		mux.HandleFunc(t, h)
	}
	return &AsynqWorker{srv: srv, mux: mux}
}

func (w *AsynqWorker) Start() error { return w.srv.Start(w.mux) }

func (w *AsynqWorker) Shutdown() { w.srv.Shutdown() }

func taskHandler(handler Handler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var ev Event
		if err := json.Unmarshal(task.Payload(), &ev); err != nil {
			return fmt.Errorf("decode %s: %v: %w", task.Type(), err, asynq.SkipRetry)
		}
		return handler(ctx, ev)
	}
}
