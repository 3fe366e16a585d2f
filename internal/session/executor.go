package session

import (
	"context"

	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/pkg/jobs"
)

// QueuedExecutor runs every exchange of the wrapped client on a single
// worker queue, so callers on many goroutines never share the socket.
type QueuedExecutor struct {
	client *Client
	queue  *jobs.Queue
}

// NewQueuedExecutor wraps client. queue must have been started and should
// have exactly one worker.
func NewQueuedExecutor(client *Client, queue *jobs.Queue) *QueuedExecutor {
	return &QueuedExecutor{client: client, queue: queue}
}

// Submit schedules req and returns its future. The future can be cancelled
// until the exchange starts.
func (e *QueuedExecutor) Submit(ctx context.Context, req *protocol.Request) *jobs.Future {
	return e.queue.Submit(ctx, req.Action.String(), func(ctx context.Context) (interface{}, error) {
		return e.client.Execute(ctx, req)
	})
}

// Execute submits req and waits for its response.
func (e *QueuedExecutor) Execute(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	return jobs.Await[*protocol.Response](ctx, e.Submit(ctx, req))
}

// IsConnected reports the wrapped client's state.
func (e *QueuedExecutor) IsConnected() bool {
	return e.client.IsConnected()
}

// Connect opens the connection through the queue so it cannot interleave
// with a running exchange.
func (e *QueuedExecutor) Connect(ctx context.Context) error {
	_, err := e.queue.Submit(ctx, "CONNECT", func(ctx context.Context) (interface{}, error) {
		return nil, e.client.Connect(ctx)
	}).Wait(ctx)
	return err
}

// Disconnect closes the connection immediately, unblocking any exchange in
// progress.
func (e *QueuedExecutor) Disconnect() {
	e.client.Disconnect()
}
