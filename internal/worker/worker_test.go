package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWorkerPool_StartStop(t *testing.T) {
	var processed atomic.Int64
	processor := func(ctx context.Context, job int) error {
		processed.Add(1)
		return nil
	}

	pool := NewWorkerPool("test", 2, 10, processor)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

		for i := 0; i < 5; i++ {
		pool.Submit(i)
	}

	time.Sleep(50 * time.Millisecond)

	cancel()
	pool.Stop()

	if processed.Load() != 5 {
		t.Errorf("expected 5 jobs processed, got %d", processed.Load())
	}
}

func TestWorkerPool_ConcurrentSubmit(t *testing.T) {
	var processed atomic.Int64
	processor := func(ctx context.Context, job int) error {
		processed.Add(1)
		return nil
	}

	pool := NewWorkerPool("test", 4, 100, processor)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

		for i := 0; i < 100; i++ {
		go func(n int) {
			pool.Submit(n)
		}(i)
	}

	time.Sleep(100 * time.Millisecond)

	cancel()
	pool.Stop()

	if processed.Load() != 100 {
		t.Errorf("expected 100 jobs processed, got %d", processed.Load())
	}
}

func TestWorkerPool_GracefulShutdown(t *testing.T) {
	var processed atomic.Int64
	processor := func(ctx context.Context, job int) error {
		time.Sleep(10 * time.Millisecond) // Simulate work
		processed.Add(1)
		return nil
	}

	pool := NewWorkerPool("test", 2, 50, processor)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	for i := 0; i < 20; i++ {
		pool.Submit(i)
	}

	// Cancel immediately
	cancel()

	// Stop waits for in-flight jobs
	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool.Stop() timed out")
	}

	t.Logf("processed %d jobs before shutdown", processed.Load())
}

func TestWorkerPool_ContextCancellation(t *testing.T) {
	var started atomic.Int64
	var completed atomic.Int64

	processor := func(ctx context.Context, job int) error {
		started.Add(1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
			completed.Add(1)
			return nil
		}
	}

	pool := NewWorkerPool("test", 2, 10, processor)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	for i := 0; i < 5; i++ {
		pool.Submit(i)
	}

	// Wait a bit then cancel
	time.Sleep(50 * time.Millisecond)
	cancel()
	pool.Stop()

	t.Logf("started: %d, completed: %d", started.Load(), completed.Load())
}

func TestRun_ProcessesAllJobs(t *testing.T) {
	var sum atomic.Int64
	jobs := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	Run(context.Background(), "sum", 3, jobs, func(ctx context.Context, n int) error {
		sum.Add(int64(n))
		return nil
	})

	if sum.Load() != 55 {
		t.Errorf("expected sum 55, got %d", sum.Load())
	}
}

func TestRun_ErrorsDoNotStopPool(t *testing.T) {
	var processed atomic.Int64
	jobs := []string{"a", "fail", "b", "fail", "c"}

	Run(context.Background(), "errors", 2, jobs, func(ctx context.Context, s string) error {
		processed.Add(1)
		if s == "fail" {
			return errors.New("boom")
		}
		return nil
	})

	if processed.Load() != int64(len(jobs)) {
		t.Errorf("expected %d jobs processed, got %d", len(jobs), processed.Load())
	}
}

func TestRun_EmptyJobs(t *testing.T) {
	Run(context.Background(), "empty", 4, nil, func(ctx context.Context, n int) error {
		t.Error("processor should not be called")
		return nil
	})
}
