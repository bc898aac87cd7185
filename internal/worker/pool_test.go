package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// mockResult implements Result
type mockResult struct {
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

// mockJob implements Job
type mockJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32 // atomic counter
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{err: errors.New("job error")}
	}
	return &mockResult{err: nil}
}

func TestNewPool(t *testing.T) {
	ctx := context.Background()

	p1 := NewPool(ctx, 5)
	if p1.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p1.workers)
	}

	p2 := NewPool(ctx, 0)
	if p2.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p2.workers)
	}

	p3 := NewPool(ctx, -1)
	if p3.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p3.workers)
	}
}

func TestPool_AllJobsExecute(t *testing.T) {
	pool := NewPool(context.Background(), 4)
	pool.Start()

	var executed int32
	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(&mockJob{executed: &executed})
	}

	results := pool.Wait()
	if len(results) != jobs {
		t.Errorf("expected %d results, got %d", jobs, len(results))
	}
	if atomic.LoadInt32(&executed) != jobs {
		t.Errorf("expected %d executions, got %d", jobs, executed)
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	pool.Submit(&mockJob{shouldErr: true})
	pool.Submit(&mockJob{})
	pool.Submit(&mockJob{shouldErr: true})

	results := pool.Wait()
	failures := 0
	for _, result := range results {
		if result.GetError() != nil {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("expected 2 failures, got %d", failures)
	}
}

func TestPool_Shutdown_CancelsInFlightWork(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	pool.Submit(&mockJob{duration: 5 * time.Second})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not cancel the running job")
	}
}

func TestPool_SubmitAfterShutdown_Dropped(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()
	pool.Shutdown()

	// Must not block or panic.
	pool.Submit(&mockJob{})
}

func TestPool_ParentContextCancel_StopsInFlightWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 1)
	pool.Start()

	pool.Submit(&mockJob{duration: 5 * time.Second})
	cancel()

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cancelling the parent context did not stop the running job")
	}
}
