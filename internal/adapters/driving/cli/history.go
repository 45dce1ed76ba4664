package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

var historyLimit int

// historyStore is injected by tests; nil means open the default store.
var historyStore driven.TriggerStore

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent quiz triggers",
	Long:  `List recent quiz triggers, most recent first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"maximum number of triggers to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	triggers := historyStore
	if triggers == nil {
		store, err := sqlite.NewStore("")
		if err != nil {
			return fmt.Errorf("opening trigger history: %w", err)
		}
		defer store.Close()
		triggers = store.TriggerStore()
	}

	records, err := triggers.History(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading trigger history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No quiz triggers recorded yet.")
		return nil
	}

	for _, record := range records {
		when := record.FiredAt.Local().Format("2006-01-02 15:04:05")
		switch record.Reason {
		case domain.TriggerReasonWordCount:
			cmd.Printf("%s  %-10s  %s (%d words)\n",
				when, record.Reason, record.NoteID, record.WordCount)
		default:
			cmd.Printf("%s  %-10s\n", when, record.Reason)
		}
	}

	return nil
}
