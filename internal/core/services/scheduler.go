package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure TriggerScheduler implements the interface.
var _ driving.QuizScheduler = (*TriggerScheduler)(nil)

// recordRetention is how many trigger records are kept per store.
const recordRetention = 100

// TriggerScheduler owns the interval timer for quiz triggers.
// Invariant: at most one timer is live at any instant. Every Arm stops
// the previous timer before scheduling; a generation counter makes a
// cancelled callback a no-op even if it was already in flight.
type TriggerScheduler struct {
	sink  driven.QuizInvoker
	store driven.TriggerStore // optional

	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64
	delay    time.Duration
	repeat   bool
	shutdown bool
}

// NewTriggerScheduler creates a scheduler. The store is optional; when
// nil, fired triggers are not recorded.
func NewTriggerScheduler(sink driven.QuizInvoker, store driven.TriggerStore) *TriggerScheduler {
	return &TriggerScheduler{
		sink:  sink,
		store: store,
	}
}

// SetRepeat controls whether the scheduler rearms itself after firing.
// When false, rearming is the caller's responsibility.
func (s *TriggerScheduler) SetRepeat(repeat bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = repeat
}

// Arm schedules a one-shot trigger after delay, superseding any pending
// schedule. Non-positive delays are ignored.
func (s *TriggerScheduler) Arm(delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown {
		return
	}
	if delay <= 0 {
		logger.Warn("scheduler: ignoring non-positive delay %v", delay)
		return
	}

	s.stopLocked()
	s.gen++
	gen := s.gen
	s.delay = delay
	s.timer = time.AfterFunc(delay, func() { s.fire(gen) })
	logger.Debug("scheduler: armed for %v", delay)
}

// Cancel stops the pending timer, if any. Idempotent. Bumping the
// generation guarantees an already-expired callback cannot reach the
// sink after Cancel returns.
func (s *TriggerScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.gen++
}

// Shutdown cancels the timer and rejects further arming.
func (s *TriggerScheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.gen++
	s.shutdown = true
}

// stopLocked stops and clears the timer. Caller must hold mu.
func (s *TriggerScheduler) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// fire runs on timer expiry. A stale generation means the schedule was
// cancelled or superseded after the callback was queued.
func (s *TriggerScheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.shutdown || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil

	if s.repeat {
		s.gen++
		next := s.gen
		s.timer = time.AfterFunc(s.delay, func() { s.fire(next) })
		logger.Debug("scheduler: rearmed for %v", s.delay)
	}
	s.mu.Unlock()

	logger.Info("scheduler: interval elapsed, firing quiz trigger")
	s.sink.InvokeQuiz()

	recordTrigger(s.store, &domain.TriggerRecord{
		ID:      uuid.New().String(),
		Reason:  domain.TriggerReasonInterval,
		FiredAt: time.Now(),
	})
}

// recordTrigger persists a fired trigger and prunes old history.
// Store failures are non-fatal warnings; the trigger already fired.
func recordTrigger(store driven.TriggerStore, record *domain.TriggerRecord) {
	if store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.Record(ctx, record); err != nil {
		logger.Warn("failed to record trigger: %v", err)
		return
	}
	if err := store.Prune(ctx, recordRetention); err != nil {
		logger.Warn("failed to prune trigger history: %v", err)
	}
}
