package workers

import (
	"context"
	"sync"
	"time"

	"fitforge_backend/internal/logger"
)

// Job is a side effect that runs after a transaction has committed:
// mail, broker events. Failures are logged and never reach the caller.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher runs jobs on a background goroutine so requests do not wait
// on SMTP or the broker.
type Dispatcher struct {
	jobs       chan Job
	jobTimeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(buffer int, jobTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		jobs:       make(chan Job, buffer),
		jobTimeout: jobTimeout,
	}
}

// Start consumes jobs until Stop closes the queue. Cancelling ctx does not
// stop the worker; jobs already queued still run, each bounded by the job
// timeout.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for job := range d.jobs {
			d.run(ctx, job)
		}
		logger.Info("dispatcher drained")
	}()
}

// Submit queues a job. It never blocks: when the queue is full or the
// dispatcher is stopped the job is dropped with a warning.
func (d *Dispatcher) Submit(job Job) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		logger.Warn("dispatcher closed, job dropped", "job", job.Name)
		return
	}
	select {
	case d.jobs <- job:
	default:
		logger.Warn("dispatcher queue full, job dropped", "job", job.Name)
	}
}

// Stop lets queued jobs finish and waits for the worker to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) run(parent context.Context, job Job) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), d.jobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", job.Name, "panic", r)
		}
	}()

	if err := job.Run(ctx); err != nil {
		logger.Error("job failed", "job", job.Name, "error", err.Error())
		return
	}
	logger.Debug("job done", "job", job.Name)
}

// Inline runs jobs synchronously on the caller's goroutine. Tests use it
// to observe side effects deterministically.
type Inline struct{}

func (Inline) Submit(job Job) {
	if err := job.Run(context.Background()); err != nil {
		logger.Error("job failed", "job", job.Name, "error", err.Error())
	}
}
