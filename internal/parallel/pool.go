package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Result is the outcome of one submitted task.
type Result[T any] struct {
	ID       string
	Value    T
	Error    error
	Duration time.Duration
}

// WorkerPool runs tasks with bounded concurrency.
type WorkerPool[T any] struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	results    []Result[T]
	errors     []error
	failFast   bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a worker pool.
// If maxWorkers is 0, every submitted task runs at once.
// If failFast is true, the pool context is cancelled on the first error.
func NewWorkerPool[T any](ctx context.Context, maxWorkers int, failFast bool) *WorkerPool[T] {
	if maxWorkers < 0 {
		maxWorkers = 0
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool[T]{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		failFast:   failFast,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit schedules fn. Tasks submitted after cancellation are dropped.
// fn receives the pool context and should stop early when it is done.
func (p *WorkerPool[T]) Submit(id string, fn func(ctx context.Context) (T, error)) {
	if p.ctx.Err() != nil {
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if p.maxWorkers > 0 {
			select {
			case p.semaphore <- struct{}{}:
				defer func() { <-p.semaphore }()
			case <-p.ctx.Done():
				return
			}
		}

		// Cancelled while waiting for a slot.
		if p.ctx.Err() != nil {
			return
		}

		start := time.Now()
		value, err := fn(p.ctx)
		result := Result[T]{
			ID:       id,
			Value:    value,
			Error:    err,
			Duration: time.Since(start),
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		p.results = append(p.results, result)
		if err != nil {
			p.errors = append(p.errors, fmt.Errorf("%s: %w", id, err))
			if p.failFast {
				p.cancel()
			}
		}
	}()
}

// Wait blocks until every submitted task has finished and returns the
// results in completion order. With failFast, tasks that never started are
// missing from the results.
func (p *WorkerPool[T]) Wait() ([]Result[T], []error) {
	p.wg.Wait()
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Result[T](nil), p.results...), append([]error(nil), p.errors...)
}

// Cancel stops pending work.
func (p *WorkerPool[T]) Cancel() {
	p.cancel()
}
