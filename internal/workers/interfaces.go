// Package workers provides the one-shot delayed task scheduler used for
// fallback refetches.
//
// A task is any [Worker]; [WorkerFunc] adapts a plain function. Scheduled
// tasks run at most once, on their own goroutine, and can be cancelled
// individually or all at once with Stop.
package workers

import "time"

// Worker is the interface that must be implemented by any scheduled task.
//
// Example implementation:
//
//	type refetch struct{ gen uint64 }
//
//	func (r *refetch) Run() {
//	    // re-list the collection
//	}
type Worker interface {
	Run()
}

// WorkerFunc adapts an ordinary function to [Worker].
type WorkerFunc func()

// Run calls f.
func (f WorkerFunc) Run() {
	f()
}

// Scheduler runs workers once after a delay.
type Scheduler interface {
	// After schedules w to run once after delay. The returned cancel func
	// prevents the run if it has not started yet; calling it more than once
	// is safe.
	After(delay time.Duration, w Worker) (cancel func())

	// Pending reports how many scheduled workers have neither started nor
	// been cancelled.
	Pending() int

	// Stop cancels every pending worker, waits for running ones to return,
	// and makes later After calls no-ops.
	Stop()
}
