// Package queue holds pending optimization jobs between the API and the
// worker pool.
//
// The queue is bounded: a full queue rejects new jobs instead of blocking
// the caller, so overload surfaces as backpressure.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/okian/teamfit/internal/domain/optimizer"
	"github.com/okian/teamfit/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
)

// Outcome is what a worker sends back for a job.
type Outcome struct {
	Result optimizer.Result
	Err    error
}

// Job is one optimization waiting for a worker.
type Job struct {
	ID       string
	Ctx      context.Context //nolint:containedctx // carries the caller's deadline to the worker
	Input    optimizer.Input
	Enqueued time.Time
	// Done is buffered so a worker never blocks on a caller that gave up.
	Done chan Outcome
}

// NewJob creates a job with a one-slot result channel.
func NewJob(ctx context.Context, id string, in optimizer.Input) *Job {
	return &Job{
		ID:       id,
		Ctx:      ctx,
		Input:    in,
		Enqueued: time.Now(),
		Done:     make(chan Outcome, 1),
	}
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job to the queue.
	// Returns ErrFull if the queue is at capacity and ErrClosed after Close.
	Enqueue(ctx context.Context, j *Job) error

	// Dequeue returns a channel that will receive jobs as they become available.
	// The channel will be closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan *Job

	// Len returns the current number of queued jobs.
	Len(ctx context.Context) int

	// Capacity returns the maximum number of pending jobs.
	Capacity() int

	// Close gracefully shuts down the queue.
	// After closing, no new jobs can be enqueued and the dequeue channel will be closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan *Job
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.jobs = make(chan *Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds a job to the queue without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j *Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordErrorByType("queue_closed", "error")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		q.observe()
		return nil
	default:
		metrics.RecordQueueRejected()
		return ErrFull
	}
}

// Dequeue returns a channel that will receive jobs as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan *Job {
	out := make(chan *Job)
	go func() {
		defer close(out)
		for j := range q.jobs {
			select {
			case out <- j:
				metrics.RecordQueueDequeue()
				q.observe()
			case <-ctx.Done():
				// The job already left the buffer; report it to its caller.
				j.Done <- Outcome{Err: ctx.Err()}
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return q.observe()
}

// Capacity returns the maximum number of pending jobs.
func (q *InMemoryQueue) Capacity() int {
	return q.capacity
}

func (q *InMemoryQueue) observe() int {
	size := len(q.jobs)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.jobs)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
