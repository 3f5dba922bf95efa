package uiloop

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Task is a unit of work executed on the UI loop.
type Task func(ctx context.Context)

type loopKey struct{}

// Loop runs tasks one at a time, in FIFO order, on a single goroutine.
type Loop struct {
	queueSize  int
	strict     bool
	log        zerolog.Logger
	registerer prometheus.Registerer
	metrics    *loopMetrics

	mu       sync.Mutex // guards stopped and sends on queue
	queue    chan Task
	stopped  bool
	stopCh   chan struct{}
	stopOnce sync.Once
	finished chan struct{}

	running atomic.Bool

	executed atomic.Uint64
	panicked atomic.Uint64
	dropped  atomic.Uint64
}

// New creates a loop. Call Run to start executing tasks.
func New(opts ...Option) *Loop {
	l := &Loop{
		queueSize: 1024,
		strict:    true,
		log:       zerolog.Nop(),
		stopCh:    make(chan struct{}),
		finished:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.queue = make(chan Task, l.queueSize)
	if l.registerer != nil {
		l.metrics = newLoopMetrics(l.registerer, l)
	}
	return l
}

// Run executes tasks until ctx is cancelled or Stop is called. Tasks still
// queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(l.finished)

	loopCtx := context.WithValue(ctx, loopKey{}, l)
	l.log.Debug().Int("queue_size", l.queueSize).Msg("ui loop started")

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			l.drain()
			return ctx.Err()
		case <-l.stopCh:
			l.drain()
			return nil
		case task := <-l.queue:
			l.execute(loopCtx, task)
		}
	}
}

// Post schedules task to run later on the loop. It is safe to call from any
// goroutine and never blocks.
func (l *Loop) Post(task Task) error {
	if task == nil {
		return ErrNilTask
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return ErrLoopStopped
	}

	select {
	case l.queue <- task:
		l.metrics.onPost()
		return nil
	default:
		l.dropped.Add(1)
		return ErrQueueFull
	}
}

// Invoke runs task on the loop and waits for it to finish. Called from a task
// already on the loop, it runs task inline.
func (l *Loop) Invoke(ctx context.Context, task Task) error {
	if task == nil {
		return ErrNilTask
	}
	if l.OnLoop(ctx) {
		task(ctx)
		return nil
	}

	done := make(chan struct{})
	err := l.Post(func(loopCtx context.Context) {
		defer close(done)
		task(loopCtx)
	})
	if err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.finished:
		// The task may have run just before the loop exited.
		select {
		case <-done:
			return nil
		default:
			return ErrLoopStopped
		}
	}
}

// Stop asks the loop to exit. Later posts fail with ErrLoopStopped.
// Stop is idempotent and does not wait; use Done for that.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.mu.Unlock()
		close(l.stopCh)
	})
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.finished
}

// OnLoop reports whether ctx was handed out by this loop to a running task.
func (l *Loop) OnLoop(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	owner, _ := ctx.Value(loopKey{}).(*Loop)
	return owner == l
}

// MustBeOnLoop checks the UI-thread precondition for op. A violation panics
// in strict mode and is logged otherwise.
func (l *Loop) MustBeOnLoop(ctx context.Context, op string) {
	if l.OnLoop(ctx) {
		return
	}
	if l.strict {
		panic(fmt.Errorf("%s: %w", op, ErrNotOnLoop))
	}
	l.log.Warn().Str("op", op).Msg("UI state touched off the UI loop")
}

// Strict reports whether precondition violations panic.
func (l *Loop) Strict() bool {
	return l.strict
}

// Stats returns task counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Executed:   l.executed.Load(),
		Panicked:   l.panicked.Load(),
		Dropped:    l.dropped.Load(),
		QueueDepth: len(l.queue),
	}
}

// Stats contains UI loop statistics.
type Stats struct {
	Executed   uint64
	Panicked   uint64
	Dropped    uint64
	QueueDepth int
}

func (l *Loop) execute(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			l.panicked.Add(1)
			l.metrics.onPanic()
			l.log.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("ui task panicked")
		}
	}()

	l.executed.Add(1)
	l.metrics.onExecute()
	task(ctx)
}

func (l *Loop) drain() {
	n := 0
	for {
		select {
		case <-l.queue:
			n++
		default:
			if n > 0 {
				l.dropped.Add(uint64(n))
				l.log.Debug().Int("dropped", n).Msg("ui loop stopped with pending tasks")
			}
			l.log.Debug().Msg("ui loop stopped")
			return
		}
	}
}
