package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/adapters/driven/quiz"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/vault"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/services"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [vault-path]",
	Short: "Watch a note vault and trigger quizzes",
	Long: `Start monitoring a note vault. Quizzes trigger on two signals:

  - The configured interval elapses without a quiz.
  - Edits to a note cross the word threshold, which also restarts
    the interval clock.

Monitoring runs until interrupted. Defaults to the current directory
when no vault path is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	vaultPath := "."
	if len(args) > 0 {
		vaultPath = args[0]
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("settings are invalid, fix them with 'recall settings': %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notes := vault.New(vaultPath)
	if err := notes.Validate(ctx); err != nil {
		return err
	}
	defer notes.Close()

	// Trigger history is best effort: monitoring works without it.
	var triggers driven.TriggerStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("Trigger history unavailable: %v", err)
	} else {
		triggers = store.TriggerStore()
		defer store.Close()
	}

	var invoker driven.QuizInvoker
	if settings.QuizCommand != "" {
		invoker = quiz.NewCommandInvoker(settings.QuizCommand)
	} else {
		invoker = quiz.NewPromptInvoker(cmd.OutOrStdout())
	}

	scheduler := services.NewTriggerScheduler(invoker, triggers)
	scheduler.SetRepeat(settings.Repeat)
	defer scheduler.Shutdown()

	monitor := services.NewMonitor(notes, scheduler, invoker, triggers, *settings)

	cmd.Printf("Watching %s\n", vaultPath)
	cmd.Printf("Quiz interval: %s minutes, word threshold: %d (%s mode)\n",
		formatMinutes(settings.QuizInterval), settings.WordThreshold, settings.CountMode)
	cmd.Println("Press Ctrl-C to stop.")

	if err := monitor.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("monitoring stopped: %w", err)
	}

	cmd.Println("\nStopped.")
	return nil
}
