package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// triggerStore implements driven.TriggerStore.
type triggerStore struct {
	store *Store
}

var _ driven.TriggerStore = (*triggerStore)(nil)

// Record stores a fired trigger.
func (s *triggerStore) Record(ctx context.Context, record *domain.TriggerRecord) error {
	if record == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO trigger_history (id, reason, note_id, word_count, fired_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID,
		record.Reason.String(),
		nullString(record.NoteID),
		record.WordCount,
		record.FiredAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("recording trigger: %w", err)
	}
	return nil
}

// History returns recent triggers ordered by fire time descending
// (most recent first).
func (s *triggerStore) History(ctx context.Context, limit int) ([]domain.TriggerRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, reason, note_id, word_count, fired_at
		FROM trigger_history
		ORDER BY fired_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying trigger history: %w", err)
	}
	defer rows.Close()

	var records []domain.TriggerRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanTriggerRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trigger history: %w", err)
	}

	return records, nil
}

// Prune removes old triggers beyond the retention limit.
// Keeps the most recent 'keep' records.
func (s *triggerStore) Prune(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM trigger_history
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (ORDER BY fired_at DESC, id DESC) as rn
				FROM trigger_history
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning trigger history: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanTriggerRecord scans a trigger record from *sql.Rows.
func scanTriggerRecord(rows *sql.Rows) (*domain.TriggerRecord, error) {
	var record domain.TriggerRecord
	var reason string
	var noteID sql.NullString
	var firedAt string

	if err := rows.Scan(&record.ID, &reason, &noteID,
		&record.WordCount, &firedAt); err != nil {
		return nil, fmt.Errorf("scanning trigger record: %w", err)
	}

	record.Reason = domain.TriggerReason(reason)
	if noteID.Valid {
		record.NoteID = noteID.String
	}
	if t, err := time.Parse(time.RFC3339, firedAt); err == nil {
		record.FiredAt = t
	}

	return &record, nil
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
