package driving

import "time"

// QuizScheduler owns the rearmable delay timer for interval-based quiz
// triggers. At most one timer is pending at any instant.
type QuizScheduler interface {
	// Arm schedules a one-shot trigger after delay, superseding any
	// pending schedule. Debounce semantics: only the most recent Arm
	// takes effect.
	Arm(delay time.Duration)

	// Cancel stops the pending timer, if any. Idempotent. After a
	// Cancel returns, the cancelled schedule can no longer fire.
	Cancel()

	// Shutdown cancels the timer and rejects further arming. Called
	// once at teardown.
	Shutdown()
}
