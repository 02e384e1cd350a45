package workers

import (
	"sync"
	"time"
)

type timerScheduler struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	nextID  uint64
	timers  map[uint64]*time.Timer
	stopped bool
}

// NewScheduler returns a [Scheduler] backed by time.AfterFunc.
func NewScheduler() Scheduler {
	return &timerScheduler{timers: make(map[uint64]*time.Timer)}
}

func (s *timerScheduler) After(delay time.Duration, w Worker) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return func() {}
	}

	id := s.nextID
	s.nextID++

	s.timers[id] = time.AfterFunc(delay, func() {
		if !s.begin(id) {
			return
		}
		defer s.wg.Done()
		w.Run()
	})

	return func() { s.cancel(id) }
}

// begin claims the timer for running. It returns false if the worker was
// cancelled or the scheduler stopped in the meantime.
func (s *timerScheduler) begin(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[id]; !ok || s.stopped {
		return false
	}
	delete(s.timers, id)
	s.wg.Add(1)
	return true
}

func (s *timerScheduler) cancel(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *timerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *timerScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
