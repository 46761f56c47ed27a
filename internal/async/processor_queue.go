package async

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Defaults for NewProcessorQueue.
const (
	DefaultWorkers     = 4
	DefaultQueueSize   = 256
	DefaultFileTimeout = 3 * time.Minute
)

// ProcessorQueue runs jobs on a fixed pool of workers, each under its own
// timeout, and keeps outcomes in submission order.
type ProcessorQueue struct {
	proc    Processor
	logger  *slog.Logger
	base    context.Context
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex // guards closed, next and sends on ch
	closed bool
	next   int

	resMu    sync.Mutex
	outcomes []Outcome
}

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// NewProcessorQueue starts the workers. Cancelling ctx aborts in-flight jobs.
func NewProcessorQueue(ctx context.Context, proc Processor, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ProcessorQueue{
		proc:    proc,
		logger:  logger,
		base:    ctx,
		workers: DefaultWorkers,
		timeout: DefaultFileTimeout,
		ch:      make(chan Job, DefaultQueueSize),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Debug("async.worker.started", "worker_id", workerID)
				for job := range q.ch {
					q.record(q.run(workerID, job))
				}
				q.logger.Debug("async.worker.stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ProcessorQueue) run(workerID int, job Job) Outcome {
	ctx, cancel := context.WithTimeout(q.base, q.timeout)
	defer cancel()

	start := time.Now()
	out := q.proc.Process(ctx, job)
	out.Job = job
	out.Elapsed = time.Since(start)
	if out.Err == nil && ctx.Err() != nil {
		out.Err = ctx.Err()
	}

	if out.Succeeded() {
		q.logger.Info("async.job.ok", "worker_id", workerID, "file_id", job.FileID, "path", job.Path, "elapsed_ms", out.Elapsed.Milliseconds())
	} else {
		q.logger.Warn("async.job.failed", "worker_id", workerID, "file_id", job.FileID, "path", job.Path, "error", out.Err)
	}
	return out
}

func (q *ProcessorQueue) record(o Outcome) {
	q.resMu.Lock()
	q.outcomes = append(q.outcomes, o)
	q.resMu.Unlock()
}

// Enqueue submits a job, blocking while the buffer is full. A job refused
// because ctx is done still gets an Outcome carrying ctx's error.
func (q *ProcessorQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("async.enqueue.closed", "file_id", job.FileID)
		return ErrQueueClosed
	}
	job.seq = q.next
	q.next++
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}
	if err := ctx.Err(); err != nil {
		q.record(Outcome{Job: job, Err: err})
		return err
	}

	select {
	case q.ch <- job:
		q.logger.Debug("async.enqueue.ok", "file_id", job.FileID, "kind", job.Kind)
		return nil
	default:
	}
	q.logger.Debug("async.enqueue.backpressure", "file_id", job.FileID)
	select {
	case q.ch <- job:
		return nil
	case <-ctx.Done():
		q.record(Outcome{Job: job, Err: ctx.Err()})
		return ctx.Err()
	}
}

// Shutdown stops accepting jobs and waits for the workers to drain.
func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("async.shutdown.interrupted")
	case <-done:
		q.logger.Debug("async.shutdown.drained")
	}
}

// Outcomes returns a snapshot of finished jobs in submission order.
func (q *ProcessorQueue) Outcomes() []Outcome {
	q.resMu.Lock()
	out := make([]Outcome, len(q.outcomes))
	copy(out, q.outcomes)
	q.resMu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Job.seq < out[j].Job.seq })
	return out
}

// RunBatch parses jobs on a temporary queue and returns one outcome per job,
// in the order given.
func RunBatch(ctx context.Context, proc Processor, logger *slog.Logger, jobs []Job, opts ...Option) []Outcome {
	q := NewProcessorQueue(ctx, proc, logger, opts...)
	for _, j := range jobs {
		_ = q.Enqueue(ctx, j)
	}
	q.Shutdown(context.Background())
	return q.Outcomes()
}
