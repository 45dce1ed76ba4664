package driven

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// TriggerStore persists fired quiz triggers.
// Backed by SQLite for history queries.
type TriggerStore interface {
	// Record stores a fired trigger.
	Record(ctx context.Context, record *domain.TriggerRecord) error

	// History returns recent triggers, most recent first.
	History(ctx context.Context, limit int) ([]domain.TriggerRecord, error)

	// Prune removes old records beyond the retention limit, keeping
	// the most recent 'keep' records.
	Prune(ctx context.Context, keep int) error
}
