// Package outbox queues durable writes and applies them in order on a
// background worker, retrying failures with exponential backoff.
package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultQueueSize   = 256
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 50 * time.Millisecond
)

// Command is one durable write
type Command struct {
	// Name describes the write for logs, e.g. "add" or "mark done"
	Name string
	// Key identifies the record the write targets
	Key string
	// Apply performs the write. A nil Apply marks a barrier.
	Apply func(ctx context.Context) error
}

// FailureHandler is called once for every command that exhausted its attempts
type FailureHandler func(cmd Command, err error)

type entry struct {
	cmd    Command
	ticket *Ticket
}

// Outbox is a FIFO queue of commands drained by a single worker, so writes
// reach storage in the order they were enqueued.
type Outbox struct {
	queue chan entry

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup

	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
	onFailure   FailureHandler
	metrics     *Metrics
}

// Option configures an Outbox
type Option func(*Outbox)

// WithMaxAttempts sets how many times a command is tried before it fails
func WithMaxAttempts(n int) Option {
	return func(o *Outbox) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the first retry delay; later retries double it
func WithBaseDelay(d time.Duration) Option {
	return func(o *Outbox) {
		if d > 0 {
			o.baseDelay = d
		}
	}
}

// WithLogger sets the logger used for retries and failures
func WithLogger(logger *slog.Logger) Option {
	return func(o *Outbox) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFailureHandler registers a callback for commands that could not be applied
func WithFailureHandler(fn FailureHandler) Option {
	return func(o *Outbox) {
		o.onFailure = fn
	}
}

// New creates an outbox with room for queueSize pending commands
func New(queueSize int, opts ...Option) *Outbox {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	o := &Outbox{
		queue:       make(chan entry, queueSize),
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		logger:      slog.Default(),
		metrics:     NewMetrics(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Metrics returns the live counters
func (o *Outbox) Metrics() *Metrics {
	return o.metrics
}

// Start launches the worker. ctx bounds every write and retry wait; cancelling
// it makes remaining commands fail fast instead of retrying.
func (o *Outbox) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started || o.closed {
		return
	}
	o.started = true

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for e := range o.queue {
			o.process(ctx, e)
		}
	}()
}

// Enqueue queues cmd without blocking. It returns ErrQueueFull when the
// buffer is full and ErrClosed after Shutdown.
func (o *Outbox) Enqueue(cmd Command) (*Ticket, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		return nil, ErrClosed
	}

	e := entry{cmd: cmd, ticket: newTicket()}
	select {
	case o.queue <- e:
		o.metrics.Enqueued.Add(1)
		return e.ticket, nil
	default:
		o.metrics.Dropped.Add(1)
		return nil, ErrQueueFull
	}
}

// Flush waits until every command enqueued before the call has been processed
func (o *Outbox) Flush(ctx context.Context) error {
	ticket, err := o.enqueueBarrier(ctx)
	if err != nil {
		return err
	}
	return ticket.Wait(ctx)
}

func (o *Outbox) enqueueBarrier(ctx context.Context) (*Ticket, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		return nil, ErrClosed
	}

	e := entry{cmd: Command{Name: "flush"}, ticket: newTicket()}
	select {
	case o.queue <- e:
		return e.ticket, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Shutdown stops accepting commands and waits for queued work to drain.
// If the worker was never started, queued commands fail with ErrClosed.
func (o *Outbox) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	close(o.queue)
	started := o.started
	o.mu.Unlock()

	if !started {
		for e := range o.queue {
			o.fail(e, ErrClosed)
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Outbox) process(ctx context.Context, e entry) {
	if e.cmd.Apply == nil {
		e.ticket.resolve(nil)
		return
	}

	var lastErr error
	for attempt := 0; attempt < o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		err := e.cmd.Apply(ctx)
		if err == nil {
			if attempt > 0 {
				o.logger.Debug("durable write applied after retry",
					"attempt", attempt+1,
					"command", e.cmd.Name,
					"key", e.cmd.Key)
			}
			o.metrics.Succeeded.Add(1)
			e.ticket.resolve(nil)
			return
		}
		lastErr = err

		// Don't sleep after the last attempt
		if attempt < o.maxAttempts-1 {
			delay := o.baseDelay * (1 << attempt)
			o.metrics.Retries.Add(1)
			o.logger.Debug("durable write failed, retrying",
				"attempt", attempt+1,
				"max_attempts", o.maxAttempts,
				"retry_delay", delay,
				"command", e.cmd.Name,
				"key", e.cmd.Key,
				"error", err)

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
			}
		}
	}

	o.logger.Warn("durable write failed after all attempts",
		"attempts", o.maxAttempts,
		"command", e.cmd.Name,
		"key", e.cmd.Key,
		"error", lastErr)
	o.fail(e, lastErr)
}

func (o *Outbox) fail(e entry, err error) {
	if e.cmd.Apply == nil {
		e.ticket.resolve(err)
		return
	}
	o.metrics.Failed.Add(1)
	if o.onFailure != nil {
		o.onFailure(e.cmd, err)
	}
	e.ticket.resolve(err)
}
