package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewWorkerPool(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pool with max workers", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 4, false)
		if pool.maxWorkers != 4 {
			t.Errorf("expected maxWorkers=4, got %d", pool.maxWorkers)
		}
		if pool.failFast {
			t.Error("expected failFast=false")
		}
	})

	t.Run("negative workers means unlimited", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, -3, true)
		if pool.maxWorkers != 0 {
			t.Errorf("expected maxWorkers=0, got %d", pool.maxWorkers)
		}
		if !pool.failFast {
			t.Error("expected failFast=true")
		}
	})
}

func TestWorkerPool_SubmitAndWait(t *testing.T) {
	ctx := context.Background()

	t.Run("single task execution", func(t *testing.T) {
		pool := NewWorkerPool[string](ctx, 2, false)
		pool.Submit("a.hca", func(context.Context) (string, error) {
			return "ok", nil
		})

		results, errs := pool.Wait()
		if len(errs) != 0 {
			t.Errorf("expected no errors, got %v", errs)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if results[0].ID != "a.hca" || results[0].Value != "ok" {
			t.Errorf("unexpected result %+v", results[0])
		}
	})

	t.Run("respects max workers limit", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 2, false)

		var mu sync.Mutex
		current, peak := 0, 0
		for i := 0; i < 6; i++ {
			pool.Submit(fmt.Sprint(i), func(context.Context) (int, error) {
				mu.Lock()
				current++
				peak = max(peak, current)
				mu.Unlock()

				time.Sleep(20 * time.Millisecond)

				mu.Lock()
				current--
				mu.Unlock()
				return i, nil
			})
		}

		results, _ := pool.Wait()
		if len(results) != 6 {
			t.Errorf("expected 6 results, got %d", len(results))
		}
		if peak > 2 {
			t.Errorf("expected at most 2 concurrent tasks, got %d", peak)
		}
	})

	t.Run("unlimited workers", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 0, false)
		for i := 0; i < 10; i++ {
			pool.Submit(fmt.Sprint(i), func(context.Context) (int, error) {
				time.Sleep(5 * time.Millisecond)
				return i, nil
			})
		}

		results, _ := pool.Wait()
		if len(results) != 10 {
			t.Errorf("expected 10 results, got %d", len(results))
		}
	})
}

func TestWorkerPool_Errors(t *testing.T) {
	ctx := context.Background()
	errBroken := errors.New("broken")

	t.Run("errors are wrapped with the task id", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 2, false)
		pool.Submit("good", func(context.Context) (int, error) { return 1, nil })
		pool.Submit("bad", func(context.Context) (int, error) { return 0, errBroken })

		results, errs := pool.Wait()
		if len(results) != 2 {
			t.Errorf("expected 2 results, got %d", len(results))
		}
		if len(errs) != 1 {
			t.Fatalf("expected 1 error, got %d", len(errs))
		}
		if !errors.Is(errs[0], errBroken) {
			t.Errorf("error %v does not wrap the task error", errs[0])
		}
		if got := errs[0].Error(); got != "bad: broken" {
			t.Errorf("error text %q", got)
		}
	})

	t.Run("failFast stops pending tasks", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 1, true)
		var ran atomic.Int32

		pool.Submit("first", func(context.Context) (int, error) {
			ran.Add(1)
			return 0, errBroken
		})
		// Let the failing task claim the only slot and cancel.
		time.Sleep(20 * time.Millisecond)
		for i := 0; i < 5; i++ {
			pool.Submit(fmt.Sprint(i), func(context.Context) (int, error) {
				ran.Add(1)
				return i, nil
			})
		}

		_, errs := pool.Wait()
		if len(errs) != 1 {
			t.Errorf("expected 1 error, got %d", len(errs))
		}
		if ran.Load() != 1 {
			t.Errorf("expected only the failing task to run, ran %d", ran.Load())
		}
	})

	t.Run("continue on error without failFast", func(t *testing.T) {
		pool := NewWorkerPool[int](ctx, 1, false)
		for i := 0; i < 4; i++ {
			pool.Submit(fmt.Sprint(i), func(context.Context) (int, error) {
				if i%2 == 0 {
					return 0, errBroken
				}
				return i, nil
			})
		}

		results, errs := pool.Wait()
		if len(results) != 4 || len(errs) != 2 {
			t.Errorf("expected 4 results and 2 errors, got %d and %d", len(results), len(errs))
		}
	})
}

func TestWorkerPool_Cancel(t *testing.T) {
	t.Run("cancel before submit drops tasks", func(t *testing.T) {
		pool := NewWorkerPool[int](context.Background(), 2, false)
		pool.Cancel()
		pool.Submit("late", func(context.Context) (int, error) { return 1, nil })

		results, _ := pool.Wait()
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})

	t.Run("tasks see the pool context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		pool := NewWorkerPool[int](ctx, 1, false)
		started := make(chan struct{})

		pool.Submit("slow", func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		})
		<-started
		cancel()

		_, errs := pool.Wait()
		if len(errs) != 1 || !errors.Is(errs[0], context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", errs)
		}
	})
}

func TestWorkerPool_Duration(t *testing.T) {
	pool := NewWorkerPool[int](context.Background(), 1, false)
	pool.Submit("sleep", func(context.Context) (int, error) {
		time.Sleep(15 * time.Millisecond)
		return 0, nil
	})

	results, _ := pool.Wait()
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Duration < 15*time.Millisecond {
		t.Errorf("expected duration >= 15ms, got %v", results[0].Duration)
	}
}
