package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// runHistoryCommand executes the history command against an injected
// in-memory trigger store.
func runHistoryCommand(t *testing.T, store *memory.TriggerStore, args ...string) (string, error) {
	t.Helper()

	original := historyStore
	historyStore = store
	historyLimit = 20
	t.Cleanup(func() { historyStore = original })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"history"}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestHistory_Empty(t *testing.T) {
	output, err := runHistoryCommand(t, memory.NewTriggerStore())

	require.NoError(t, err)
	assert.Contains(t, output, "No quiz triggers recorded yet.")
}

func TestHistory_ListsTriggers(t *testing.T) {
	store := memory.NewTriggerStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, &domain.TriggerRecord{
		ID:      uuid.New().String(),
		Reason:  domain.TriggerReasonInterval,
		FiredAt: time.Now(),
	}))
	require.NoError(t, store.Record(ctx, &domain.TriggerRecord{
		ID:        uuid.New().String(),
		Reason:    domain.TriggerReasonWordCount,
		NoteID:    "inbox.md",
		WordCount: 640,
		FiredAt:   time.Now(),
	}))

	output, err := runHistoryCommand(t, store)

	require.NoError(t, err)
	assert.Contains(t, output, "interval")
	assert.Contains(t, output, "word_count")
	assert.Contains(t, output, "inbox.md (640 words)")
}

func TestHistory_RespectsLimit(t *testing.T) {
	store := memory.NewTriggerStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, &domain.TriggerRecord{
			ID:      uuid.New().String(),
			Reason:  domain.TriggerReasonInterval,
			FiredAt: time.Now(),
		}))
	}

	output, err := runHistoryCommand(t, store, "--limit", "2")

	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(output), []byte("interval")))
}
