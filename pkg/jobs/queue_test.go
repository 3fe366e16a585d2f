package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedQueue(t *testing.T) *Queue {
	t.Helper()
	q := NewQueue("test", QueueConfig{BufferSize: 8})
	q.Start(context.Background())
	t.Cleanup(q.Stop)
	return q
}

func TestQueueRunsTasksOneAtATimeInOrder(t *testing.T) {
	q := startedQueue(t)

	var (
		active  atomic.Int32
		overlap atomic.Bool
		mu      sync.Mutex
		order   []int
	)

	futures := make([]*Future, 0, 5)
	for i := 0; i < 5; i++ {
		i := i
		futures = append(futures, q.Submit(context.Background(), "exchange", func(ctx context.Context) (interface{}, error) {
			if active.Add(1) > 1 {
				overlap.Store(true)
			}
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			active.Add(-1)
			return i, nil
		}))
	}

	for i, f := range futures {
		v, err := Await[int](context.Background(), f)
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.False(t, overlap.Load())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFutureCancelBeforeStart(t *testing.T) {
	q := startedQueue(t)

	release := make(chan struct{})
	blocker := q.Submit(context.Background(), "block", func(ctx context.Context) (interface{}, error) {
		<-release
		return nil, nil
	})

	var ran atomic.Bool
	pending := q.Submit(context.Background(), "skipped", func(ctx context.Context) (interface{}, error) {
		ran.Store(true)
		return nil, nil
	})

	assert.True(t, pending.Cancel())
	close(release)

	_, err := blocker.Wait(context.Background())
	require.NoError(t, err)

	_, err = pending.Wait(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)

	follow := q.Submit(context.Background(), "after", func(ctx context.Context) (interface{}, error) { return "ok", nil })
	_, err = follow.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, ran.Load())
}

func TestFutureCancelAfterStartHasNoEffect(t *testing.T) {
	q := startedQueue(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f := q.Submit(context.Background(), "running", func(ctx context.Context) (interface{}, error) {
		close(started)
		<-release
		return "done", nil
	})

	<-started
	assert.False(t, f.Cancel())
	close(release)

	v, err := Await[string](context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}

func TestWaitHonoursContext(t *testing.T) {
	q := startedQueue(t)

	release := make(chan struct{})
	defer close(release)
	f := q.Submit(context.Background(), "slow", func(ctx context.Context) (interface{}, error) {
		<-release
		return nil, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmitOnStoppedQueue(t *testing.T) {
	q := NewQueue("idle", QueueConfig{})
	f := q.Submit(context.Background(), "never", func(ctx context.Context) (interface{}, error) { return nil, nil })
	_, err := f.Wait(context.Background())
	assert.ErrorIs(t, err, ErrQueueStopped)

	q.Start(context.Background())
	q.Stop()
	q.Stop()

	f = q.Submit(context.Background(), "late", func(ctx context.Context) (interface{}, error) { return nil, nil })
	_, err = f.Wait(context.Background())
	assert.ErrorIs(t, err, ErrQueueStopped)
}

func TestTaskErrorIsReturned(t *testing.T) {
	q := startedQueue(t)
	boom := errors.New("boom")

	f := q.Submit(context.Background(), "fail", func(ctx context.Context) (interface{}, error) { return nil, boom })
	_, err := Await[string](context.Background(), f)
	assert.ErrorIs(t, err, boom)
}
