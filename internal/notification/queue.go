package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrQueueClosed = errors.New("notification queue closed")
	ErrQueueFull   = errors.New("notification queue full")
)

// Handler processes one event. Errors are logged by the queue.
type Handler func(ctx context.Context, ev Event) error

// Queue decouples side effects from the request that caused them.
type Queue interface {
	Enqueue(ctx context.Context, ev Event) error
	Schedule(ctx context.Context, ev Event, at time.Time) error
	Close() error
}

// LocalQueue runs events on in-process workers. Scheduled events live in
// timers and do not survive a restart; AsynqQueue is the durable option.
type LocalQueue struct {
	handler Handler
	log     *zap.Logger
	timeout time.Duration

	jobs chan Event
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
	timers map[*time.Timer]struct{}
}

func NewLocalQueue(handler Handler, workers, buffer int, timeout time.Duration, log *zap.Logger) *LocalQueue {
	q := &LocalQueue{
		handler: handler,
		log:     log,
		timeout: timeout,
		jobs:    make(chan Event, buffer),
		timers:  make(map[*time.Timer]struct{}),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

func (q *LocalQueue) Enqueue(_ context.Context, ev Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *LocalQueue) Schedule(ctx context.Context, ev Event, at time.Time) error {
	delay := time.Until(at)
	if delay <= 0 {
		return q.Enqueue(ctx, ev)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		q.mu.Lock()
		delete(q.timers, timer)
		q.mu.Unlock()

		if err := q.Enqueue(context.Background(), ev); err != nil {
			q.log.Warn("scheduled notification dropped", zap.String("type", ev.Type), zap.Error(err))
		}
	})
	q.timers[timer] = struct{}{}
	return nil
}

// Pending reports how many scheduled events are still waiting.
func (q *LocalQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

// Close stops pending timers and waits for in-flight events.
func (q *LocalQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	for t := range q.timers {
		t.Stop()
		delete(q.timers, t)
	}
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}

func (q *LocalQueue) worker() {
	defer q.wg.Done()
	for ev := range q.jobs {
		if err := q.run(ev); err != nil {
			q.log.Error("notification failed", zap.String("type", ev.Type), zap.Error(err))
		}
	}
}

func (q *LocalQueue) run(ev Event) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return q.handler(ctx, ev)
}
