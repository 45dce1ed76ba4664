package driving

import "context"

// ActivityMonitor watches note changes and fires a quiz trigger when
// edited-word volume crosses the configured threshold.
type ActivityMonitor interface {
	// Start subscribes to note changes and evaluates them until Stop
	// is called or ctx is cancelled. Blocks for the duration.
	Start(ctx context.Context) error

	// Stop ends the subscription and releases resources. Safe to call
	// when not started.
	Stop() error
}
