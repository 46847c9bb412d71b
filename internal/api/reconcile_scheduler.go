package api

import (
	"sync"
	"time"

	"github.com/example/stagepatch/internal/core/sequence"
)

// reconcileScheduler debounces reconcile runs per event. Every toggle resets
// the event's quiet period; only the last toggle in a burst triggers the
// prune-and-renumber pass.
type reconcileScheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*sequence.Debouncer
	run     func(eventID string)
}

func newReconcileScheduler(delay time.Duration, run func(eventID string)) *reconcileScheduler {
	return &reconcileScheduler{
		delay:   delay,
		pending: make(map[string]*sequence.Debouncer),
		run:     run,
	}
}

func (s *reconcileScheduler) debouncer(eventID string) *sequence.Debouncer {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.pending[eventID]
	if !ok {
		d = sequence.NewDebouncer(s.delay)
		s.pending[eventID] = d
	}
	return d
}

// Schedule arms (or re-arms) the event's debounced reconcile.
func (s *reconcileScheduler) Schedule(eventID string) {
	s.debouncer(eventID).Trigger(func() { s.run(eventID) })
}

// Flush runs a pending reconcile immediately, if one is armed.
func (s *reconcileScheduler) Flush(eventID string) {
	s.debouncer(eventID).Flush(func() { s.run(eventID) })
}

// Cancel drops any pending reconcile for the event.
func (s *reconcileScheduler) Cancel(eventID string) {
	s.debouncer(eventID).Stop()
}
