package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure Monitor implements the interface.
var _ driving.ActivityMonitor = (*Monitor)(nil)

// Monitor subscribes to note changes and fires a quiz trigger when
// edited-word volume crosses the configured threshold. Each event is
// evaluated synchronously; content is read on demand so a stale event
// never evaluates stale text.
type Monitor struct {
	notes     driven.NoteStore
	scheduler driving.QuizScheduler
	sink      driven.QuizInvoker
	store     driven.TriggerStore // optional
	settings  domain.RecallSettings

	// cooldown limits how often word-count triggers may fire.
	// In document mode a note over threshold would otherwise refire
	// on every subsequent change.
	cooldown *rate.Limiter

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}

	// baselines holds, per note, the word count at the last trigger
	// (or first sighting). Used only in delta mode.
	baselines map[string]int
}

// NewMonitor creates a monitor with a settings snapshot taken at
// construction. The store is optional.
func NewMonitor(
	notes driven.NoteStore,
	scheduler driving.QuizScheduler,
	sink driven.QuizInvoker,
	store driven.TriggerStore,
	settings domain.RecallSettings,
) *Monitor {
	var cooldown *rate.Limiter
	if d := settings.CooldownDuration(); d > 0 {
		cooldown = rate.NewLimiter(rate.Every(d), 1)
	}

	return &Monitor{
		notes:     notes,
		scheduler: scheduler,
		sink:      sink,
		store:     store,
		settings:  settings,
		cooldown:  cooldown,
		baselines: make(map[string]int),
	}
}

// Start arms the interval timer, subscribes to note changes and
// evaluates them until Stop is called or ctx is cancelled. This method
// blocks for the duration of the watch session.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return domain.ErrMonitorRunning
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.mu.Unlock()

	changes, err := m.notes.Watch(ctx)
	if err != nil {
		m.markStopped()
		return err
	}

	m.scheduler.Arm(m.settings.IntervalDuration())
	logger.Info("monitor: watching for changes (threshold %d words, interval %v)",
		m.settings.WordThreshold, m.settings.IntervalDuration())

	for {
		select {
		case <-ctx.Done():
			m.scheduler.Cancel()
			m.markStopped()
			return ctx.Err()
		case <-m.stopCh:
			m.scheduler.Cancel()
			return nil
		case change, ok := <-changes:
			if !ok {
				m.scheduler.Cancel()
				m.markStopped()
				return domain.ErrWatchClosed
			}
			m.evaluate(ctx, change)
		}
	}
}

// Stop ends the subscription. Safe to call when not started.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return nil
	}
	m.running = false
	close(m.stopCh)
	return nil
}

// markStopped clears the running flag after the loop exits on its own.
func (m *Monitor) markStopped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
}

// evaluate decides whether a single change event warrants a trigger.
// Read failures abandon the evaluation silently: no trigger, no error.
func (m *Monitor) evaluate(ctx context.Context, change domain.NoteChange) {
	if change.Type == domain.ChangeDeleted {
		delete(m.baselines, change.NoteID)
		logger.Debug("monitor: %s deleted, dropping baseline", change.NoteID)
		return
	}

	content, err := m.notes.Read(ctx, change.NoteID)
	if err != nil {
		logger.Debug("monitor: dropping event for %s: %v", change.NoteID, err)
		return
	}

	words := domain.WordCount(content)
	volume := m.measure(change, words)
	if volume < m.settings.WordThreshold {
		logger.Debug("monitor: %s at %d words, below threshold %d",
			change.NoteID, volume, m.settings.WordThreshold)
		return
	}

	if m.cooldown != nil && !m.cooldown.Allow() {
		logger.Debug("monitor: %s over threshold but within cooldown", change.NoteID)
		return
	}

	logger.Info("monitor: %s crossed threshold (%d >= %d), firing quiz trigger",
		change.NoteID, volume, m.settings.WordThreshold)
	m.sink.InvokeQuiz()

	if m.settings.CountMode == domain.CountModeDelta {
		m.baselines[change.NoteID] = words
	}

	// Restart the interval clock: a quiz just happened, timed or not.
	m.scheduler.Arm(m.settings.IntervalDuration())

	recordTrigger(m.store, &domain.TriggerRecord{
		ID:        uuid.New().String(),
		Reason:    domain.TriggerReasonWordCount,
		NoteID:    change.NoteID,
		WordCount: volume,
		FiredAt:   time.Now(),
	})
}

// measure converts a note's current word count into the volume compared
// against the threshold, according to the configured count mode.
func (m *Monitor) measure(change domain.NoteChange, words int) int {
	if m.settings.CountMode != domain.CountModeDelta {
		// Document mode: the note's full word count, per event.
		return words
	}

	base, seen := m.baselines[change.NoteID]
	switch {
	case change.Type == domain.ChangeCreated:
		// A new note counts from zero.
		m.baselines[change.NoteID] = 0
		return words
	case !seen:
		// Watch started mid-life: pre-existing content is not edit
		// volume. Baseline at the current count.
		m.baselines[change.NoteID] = words
		return 0
	case words < base:
		// The note shrank below its baseline; re-baseline.
		m.baselines[change.NoteID] = words
		return 0
	default:
		return words - base
	}
}
