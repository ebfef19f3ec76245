package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// countingSweeper records calls and returns a fixed drop count
type countingSweeper struct {
	calls   atomic.Int32
	dropped int
}

func (s *countingSweeper) Sweep() int {
	s.calls.Add(1)
	return s.dropped
}

func TestNewIntervalScheduler(t *testing.T) {
	sweeper := &countingSweeper{}

	config := Config{Interval: 1 * time.Second}

	scheduler, err := NewIntervalScheduler(config, sweeper)
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}

	if scheduler == nil {
		t.Fatal("Scheduler is nil")
	}
}

func TestNewIntervalScheduler_InvalidInterval(t *testing.T) {
	_, err := NewIntervalScheduler(Config{Interval: 0}, &countingSweeper{})
	if err == nil {
		t.Error("Expected error for zero interval, got nil")
	}
}

func TestNewIntervalScheduler_NilSweeper(t *testing.T) {
	_, err := NewIntervalScheduler(Config{Interval: 1 * time.Second}, nil)
	if err == nil {
		t.Error("Expected error for nil sweeper, got nil")
	}
}

func TestIntervalScheduler_Start(t *testing.T) {
	sweeper := &countingSweeper{dropped: 2}
	config := Config{Interval: 50 * time.Millisecond}

	scheduler, err := NewIntervalScheduler(config, sweeper)
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Failed to start scheduler: %v", err)
	}

	status := scheduler.Status()
	if !status.Running {
		t.Error("Scheduler should be running")
	}

	// Wait for at least 2 runs
	time.Sleep(150 * time.Millisecond)

	status = scheduler.Status()
	if status.TotalRuns < 2 {
		t.Errorf("Expected at least 2 runs, got %d", status.TotalRuns)
	}
	if status.TotalDropped < 4 {
		t.Errorf("Expected at least 4 dropped entries, got %d", status.TotalDropped)
	}

	cancel()
	time.Sleep(50 * time.Millisecond)
}

func TestIntervalScheduler_Stop(t *testing.T) {
	sweeper := &countingSweeper{}
	config := Config{Interval: 50 * time.Millisecond}

	scheduler, err := NewIntervalScheduler(config, sweeper)
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}

	if err := scheduler.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start scheduler: %v", err)
	}

	time.Sleep(120 * time.Millisecond)

	if err := scheduler.Stop(); err != nil {
		t.Fatalf("Failed to stop scheduler: %v", err)
	}

	status := scheduler.Status()
	if status.Running {
		t.Error("Scheduler should not be running after stop")
	}
}

func TestIntervalScheduler_DoubleStart(t *testing.T) {
	scheduler, err := NewIntervalScheduler(Config{Interval: 1 * time.Second}, &countingSweeper{})
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}

	ctx := context.Background()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	if err := scheduler.Start(ctx); err == nil {
		t.Error("Expected error when starting already running scheduler")
	}
}

func TestIntervalScheduler_StopNotRunning(t *testing.T) {
	scheduler, err := NewIntervalScheduler(Config{Interval: 1 * time.Second}, &countingSweeper{})
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}

	if err := scheduler.Stop(); err == nil {
		t.Error("Expected error when stopping non-running scheduler")
	}
}

func TestIntervalScheduler_ContextCancellation(t *testing.T) {
	scheduler, err := NewIntervalScheduler(Config{Interval: 50 * time.Millisecond}, &countingSweeper{})
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Failed to start scheduler: %v", err)
	}

	time.Sleep(120 * time.Millisecond)
	cancel()

	// Wait for scheduler to notice
	time.Sleep(100 * time.Millisecond)

	status := scheduler.Status()
	if status.Running {
		t.Error("Scheduler should stop when context is cancelled")
	}
}

func TestIntervalScheduler_SweepFunc(t *testing.T) {
	var calls atomic.Int32
	scheduler, err := NewIntervalScheduler(
		Config{Interval: 30 * time.Millisecond},
		SweepFunc(func() int {
			calls.Add(1)
			return 0
		}),
	)
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Failed to start scheduler: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if calls.Load() == 0 {
		t.Error("Expected the sweep function to be invoked")
	}
}
