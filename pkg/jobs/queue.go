package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrQueueStopped is returned by futures whose queue is not accepting work.
var ErrQueueStopped = errors.New("queue stopped")

// ErrCancelled is returned by futures cancelled before their task started.
var ErrCancelled = errors.New("task cancelled")

// Task is a unit of work executed by a queue worker.
type Task func(context.Context) (interface{}, error)

// Job represents a queued task.
type Job struct {
	ID       string
	Kind     string
	Enqueued time.Time

	ctx    context.Context
	task   Task
	future *Future
}

// QueueConfig configures worker behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	Logger     *zap.Logger
}

// Queue is an in-memory task dispatcher backed by a fixed set of goroutines.
// With one worker it guarantees tasks run strictly one at a time in
// submission order.
type Queue struct {
	name       string
	workers    int
	bufferSize int
	logger     *zap.Logger

	jobs chan Job

	stateMu sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool

	// submissions hold sendMu for reading while they may block on the channel
	sendMu sync.RWMutex
	wg     sync.WaitGroup
}

// NewQueue builds a new queue. Workers defaults to one.
func NewQueue(name string, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:       name,
		workers:    cfg.Workers,
		bufferSize: cfg.BufferSize,
		logger:     cfg.Logger,
		jobs:       make(chan Job, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
func (q *Queue) Start(ctx context.Context) {
	q.stateMu.Lock()
	defer q.stateMu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i + 1)
	}
	q.started = true
	q.logger.Sugar().Infow("queue started", "queue", q.name, "workers", q.workers)
}

// Stop cancels workers, waits for them to exit and fails every task still
// waiting in the buffer with ErrQueueStopped.
func (q *Queue) Stop() {
	q.stateMu.Lock()
	if !q.started || q.stopped {
		q.stateMu.Unlock()
		return
	}
	q.stopped = true
	q.cancel()
	q.stateMu.Unlock()

	// wait out submissions still blocked on a full buffer
	q.sendMu.Lock()
	q.sendMu.Unlock() //nolint:staticcheck

	q.wg.Wait()

	drained := 0
	for {
		select {
		case job := <-q.jobs:
			job.future.complete(nil, ErrQueueStopped)
			drained++
		default:
			q.logger.Sugar().Infow("queue stopped", "queue", q.name, "drained", drained)
			return
		}
	}
}

// Submit schedules task and returns its future. Submit blocks while the
// buffer is full until ctx ends or the queue stops.
func (q *Queue) Submit(ctx context.Context, kind string, task Task) *Future {
	future := newFuture(uuid.NewString())

	q.sendMu.RLock()
	defer q.sendMu.RUnlock()

	q.stateMu.Lock()
	qctx := q.ctx
	accepting := q.started && !q.stopped
	q.stateMu.Unlock()

	if !accepting {
		future.complete(nil, fmt.Errorf("queue %s: %w", q.name, ErrQueueStopped))
		return future
	}

	job := Job{
		ID:       future.id,
		Kind:     kind,
		Enqueued: time.Now().UTC(),
		ctx:      ctx,
		task:     task,
		future:   future,
	}

	select {
	case <-ctx.Done():
		future.complete(nil, ctx.Err())
	case <-qctx.Done():
		future.complete(nil, fmt.Errorf("queue %s: %w", q.name, ErrQueueStopped))
	case q.jobs <- job:
	}

	return future
}

func (q *Queue) worker(workerID int) {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			q.run(workerID, job)
		}
	}
}

func (q *Queue) run(workerID int, job Job) {
	if q.ctx.Err() != nil {
		job.future.complete(nil, ErrQueueStopped)
		return
	}
	if err := job.ctx.Err(); err != nil {
		job.future.complete(nil, err)
		return
	}
	if !job.future.start() {
		q.logger.Sugar().Debugw("task skipped", "queue", q.name, "job_id", job.ID, "kind", job.Kind)
		return
	}

	started := time.Now()
	value, err := job.task(job.ctx)
	job.future.complete(value, err)

	if err != nil {
		q.logger.Sugar().Debugw("task failed", "queue", q.name, "worker", workerID, "job_id", job.ID, "kind", job.Kind, "waited", started.Sub(job.Enqueued), "error", err)
		return
	}
	q.logger.Sugar().Debugw("task done", "queue", q.name, "worker", workerID, "job_id", job.ID, "kind", job.Kind, "took", time.Since(started))
}

const (
	futurePending int32 = iota
	futureRunning
	futureCancelled
	futureDone
)

// Future is the handle of a submitted task.
type Future struct {
	id    string
	state atomic.Int32
	done  chan struct{}
	once  sync.Once
	value interface{}
	err   error
}

func newFuture(id string) *Future {
	return &Future{id: id, done: make(chan struct{})}
}

// ID returns the job identifier.
func (f *Future) ID() string { return f.id }

// Done is closed once the task has a result.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the task finishes or ctx ends. A waiter that gives up
// does not stop a task that is already running.
func (f *Future) Wait(ctx context.Context) (interface{}, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel prevents the task from running if it has not started yet. It
// reports whether the cancellation took effect.
func (f *Future) Cancel() bool {
	if !f.state.CompareAndSwap(futurePending, futureCancelled) {
		return false
	}
	f.finish(nil, ErrCancelled)
	return true
}

func (f *Future) start() bool {
	return f.state.CompareAndSwap(futurePending, futureRunning)
}

func (f *Future) complete(value interface{}, err error) {
	if f.state.Load() == futureCancelled {
		return
	}
	f.state.Store(futureDone)
	f.finish(value, err)
}

func (f *Future) finish(value interface{}, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Await waits for f and asserts its value to T.
func Await[T any](ctx context.Context, f *Future) (T, error) {
	var zero T
	value, err := f.Wait(ctx)
	if err != nil {
		return zero, err
	}
	if value == nil {
		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("job %s: unexpected result %T", f.id, value)
	}
	return typed, nil
}
