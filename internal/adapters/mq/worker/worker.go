// Package worker runs optimization jobs pulled from the queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/teamfit/internal/adapters/mq/queue"
	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/optimizer"
	"github.com/okian/teamfit/pkg/logger"
	"github.com/okian/teamfit/pkg/metrics"
)

// Default worker configuration constants.
const (
	poolShutdownTimeout = 30 * time.Second
)

// Optimizer computes formations for a job.
type Optimizer interface {
	Optimize(in optimizer.Input) optimizer.Result
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan *queue.Job
}

// Worker processes jobs using the provided optimizer.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing optimization jobs.
type InMemoryWorker struct {
	queue     Queue
	optimizer Optimizer
	name      string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, o Optimizer, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		optimizer: o,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.With(logger.String("worker", w.name))
	}

	return w
}

// Run starts the worker loop. It returns once the queue is closed and
// drained, ctx is canceled, or Shutdown is called.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			w.process(job)
		}
	}
}

// Shutdown stops the worker and waits for its loop to exit.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process runs one job. Jobs whose caller already gave up are skipped.
func (w *InMemoryWorker) process(job *queue.Job) {
	if err := job.Ctx.Err(); err != nil {
		metrics.RecordJobAbandoned()
		w.logger.Debug(job.Ctx, "skipping abandoned job", logger.String("job_id", job.ID), logger.Error(err))
		job.Done <- queue.Outcome{Err: err}
		return
	}

	metrics.AddWorkerBusy(1)
	defer metrics.AddWorkerBusy(-1)

	start := time.Now()
	res := w.optimizer.Optimize(job.Input)
	elapsed := time.Since(start)

	metrics.RecordOptimizationLatency(float64(elapsed.Microseconds()) / 1000)
	metrics.RecordSampling(res.Sampled, res.Draws, res.Exhausted)
	if len(res.Formations) > 0 {
		best := res.Formations[0]
		metrics.RecordBestScore(best.Score)
		for i, v := range best.Dimensions.Values() {
			metrics.RecordDimensionScore(model.DimensionNames[i], v)
		}
	}
	if res.Exhausted {
		w.logger.Warn(job.Ctx, "sampler hit retry ceiling",
			logger.String("job_id", job.ID),
			logger.Int("sampled", res.Sampled),
			logger.Int("draws", res.Draws),
		)
	}

	job.Done <- queue.Outcome{Result: res}
	metrics.RecordJobLatency(float64(time.Since(job.Enqueued).Microseconds()) / 1000)

	w.logger.Debug(job.Ctx, "job done",
		logger.String("job_id", job.ID),
		logger.Int("candidates", len(job.Input.Candidates)),
		logger.Int("sampled", res.Sampled),
		logger.Duration("elapsed", elapsed),
	)
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, o Optimizer) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(q, o, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Shutdown closes the queue and lets workers drain it. Workers still busy
// when ctx (or the pool timeout) expires are stopped.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut bool
	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			timedOut = true
			p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
			_ = worker.Shutdown(context.Background())
		}
	}
	if timedOut {
		return fmt.Errorf("worker pool drain: %w", shutdownCtx.Err())
	}
	return nil
}
