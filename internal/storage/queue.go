package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"discshelf/internal/logging"
)

const queueCapacity = 64

type saveRequest struct {
	ctx    context.Context
	data   []byte
	result chan error
}

// SaveQueue serializes saves to a Store. A single worker runs requests one
// at a time in the order they were enqueued.
type SaveQueue struct {
	store   Store
	timeout time.Duration
	logger  *slog.Logger

	mu       sync.RWMutex
	closed   bool
	requests chan saveRequest
	done     chan struct{}
}

// QueueOption configures a SaveQueue.
type QueueOption func(*SaveQueue)

// WithSaveTimeout bounds each save, lock wait included.
func WithSaveTimeout(d time.Duration) QueueOption {
	return func(q *SaveQueue) { q.timeout = d }
}

// WithQueueLogger sets the logger for failed saves.
func WithQueueLogger(logger *slog.Logger) QueueOption {
	return func(q *SaveQueue) { q.logger = logging.NewComponentLogger(logger, "save-queue") }
}

// NewSaveQueue starts the worker. Call Close to stop it.
func NewSaveQueue(store Store, opts ...QueueOption) *SaveQueue {
	q := &SaveQueue{
		store:    store,
		logger:   logging.NewComponentLogger(nil, "save-queue"),
		requests: make(chan saveRequest, queueCapacity),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	go q.run()
	return q
}

// Enqueue appends a save and returns a channel that receives its result.
// Requests enqueued earlier always run first.
func (q *SaveQueue) Enqueue(ctx context.Context, data []byte) (<-chan error, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return nil, ErrQueueClosed
	}
	req := saveRequest{ctx: ctx, data: data, result: make(chan error, 1)}
	select {
	case q.requests <- req:
		return req.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Submit enqueues a save and waits until it settles or ctx ends.
func (q *SaveQueue) Submit(ctx context.Context, data []byte) error {
	result, err := q.Enqueue(ctx, data)
	if err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting requests, waits for queued saves to finish, and
// stops the worker. It is safe to call more than once.
func (q *SaveQueue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.requests)
	}
	q.mu.Unlock()
	<-q.done
	return nil
}

func (q *SaveQueue) run() {
	defer close(q.done)
	for req := range q.requests {
		req.result <- q.save(req)
	}
}

func (q *SaveQueue) save(req saveRequest) error {
	if err := req.ctx.Err(); err != nil {
		return err
	}
	ctx := req.ctx
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}
	err := q.store.Save(ctx, req.data)
	if err != nil {
		logging.WarnWithContext(q.logger, "save failed", "save_failed",
			logging.Error(err),
			logging.Int("bytes", len(req.data)),
			logging.String(logging.FieldErrorHint, "fix the cause and edit again; the next save writes the full catalogue"),
			logging.String(logging.FieldImpact, "changes kept in memory only"),
		)
	}
	return err
}
