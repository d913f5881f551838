// Package worker runs background tasks on a bounded in-process queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"resume-tailor/internal/logger"

	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("worker pool closed")

type Task func(ctx context.Context) error

// Pool executes submitted tasks on a fixed number of workers. Submission never
// blocks: when the queue is full the task is dropped. Task errors and panics
// are logged by the pool and never reach the submitter.
type Pool struct {
	workers int
	tasks   chan namedTask
	wg      sync.WaitGroup
	logger  *zap.Logger

	mu      sync.RWMutex
	closed  bool
	started bool
	rate    <-chan time.Time
	ticker  *time.Ticker
}

type namedTask struct {
	name string
	run  Task
}

func NewPool(workers, queueSize int, log *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan namedTask, queueSize),
		logger:  logger.OrNop(log).Named("worker"),
	}
}

// SetRateLimit caps task starts across all workers to rps per second. Zero
// disables the limit.
func (p *Pool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	if rps <= 0 {
		return
	}
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.C
}

// Start launches the workers. Tasks run with ctx, which should outlive any
// single request.
func (p *Pool) Start(ctx context.Context) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.loop(ctx)
	}
}

// TrySubmit enqueues t without blocking. It reports false when the queue is
// full or the pool is closed.
func (p *Pool) TrySubmit(name string, t Task) bool {
	if p == nil || t == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.Warn("task rejected, pool closed", zap.String("task", name))
		return false
	}
	select {
	case p.tasks <- namedTask{name: name, run: t}:
		return true
	default:
		p.logger.Warn("task dropped, queue full", zap.String("task", name), zap.Int("queue_size", cap(p.tasks)))
		return false
	}
}

// Close stops accepting tasks and waits for queued ones to finish, or for ctx
// to expire.
func (p *Pool) Close(ctx context.Context) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.closed = true
	close(p.tasks)
	started := p.started
	p.mu.Unlock()
	defer p.stopTicker()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain worker pool: %w", ctx.Err())
	}
}

// stopTicker runs after draining so rate-limited workers still get ticks.
func (p *Pool) stopTicker() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
}

func (p *Pool) loop(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-p.tasks:
			if !ok {
				return
			}
			p.mu.RLock()
			rate := p.rate
			p.mu.RUnlock()
			if rate != nil {
				select {
				case <-ctx.Done():
					return
				case <-rate:
				}
			}
			p.supervise(ctx, t)
		}
	}
}

func (p *Pool) supervise(ctx context.Context, t namedTask) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", zap.String("task", t.name), zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	if err := t.run(ctx); err != nil {
		p.logger.Warn("task failed", zap.String("task", t.name), zap.Duration("duration", time.Since(start)), zap.Error(err))
		return
	}
	p.logger.Debug("task finished", zap.String("task", t.name), zap.Duration("duration", time.Since(start)))
}
