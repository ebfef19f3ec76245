package scheduler

import (
	"context"
	"time"
)

// Scheduler defines the interface for background schedulers
type Scheduler interface {
	// Start begins the scheduling loop
	Start(ctx context.Context) error

	// Stop gracefully stops the scheduler
	Stop() error

	// Status returns the current scheduler status
	Status() *Status
}

// Status represents the current state of a scheduler
type Status struct {
	Running      bool
	LastRunTime  time.Time
	NextRunTime  time.Time
	TotalRuns    int
	TotalDropped int
}

// Config contains scheduler configuration
type Config struct {
	// Interval specifies the duration between sweep runs
	Interval time.Duration
}

// Sweeper is the interface the scheduler drives on every tick. It returns
// how many entries were dropped.
type Sweeper interface {
	Sweep() int
}

// SweepFunc adapts a plain function to the Sweeper interface.
type SweepFunc func() int

func (f SweepFunc) Sweep() int { return f() }
