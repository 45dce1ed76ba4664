// Package cli implements the command-line interface for recall.
// Commands are thin adapters over the driving ports; construction of
// services and driven adapters happens once in initServices.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/recall-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/core/services"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Package-level services, injected by initServices or by tests.
var settingsService driving.SettingsService

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Spaced-recall quiz triggers for your notes",
	Long: `Recall watches a note vault and prompts you to quiz yourself on
what you wrote. Quizzes trigger on two signals: a wall-clock interval,
and a burst of writing that crosses a word threshold.

Run 'recall watch' to start monitoring, and 'recall settings' to tune
the trigger behaviour.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging")
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices constructs the settings service over the default config
// store. Commands that need services call this lazily; already-injected
// services (e.g. test doubles) are kept.
func initServices() error {
	if settingsService != nil {
		return nil
	}

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config store: %w", err)
	}

	settingsService = services.NewSettingsService(configStore)
	return nil
}
