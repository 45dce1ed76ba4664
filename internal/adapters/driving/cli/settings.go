package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage quiz trigger settings",
	Long: `View and configure when recall quizzes trigger.

Use subcommands to change individual settings. All values persist to
the config file immediately.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsIntervalCmd = &cobra.Command{
	Use:   "interval <minutes>",
	Short: "Set the quiz interval in minutes",
	Long: `Set the wall-clock interval between quizzes, in minutes.
Fractional values are allowed, e.g. 2.5 for two and a half minutes.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsInterval,
}

var settingsThresholdCmd = &cobra.Command{
	Use:   "threshold <words>",
	Short: "Set the word-count threshold",
	Long: `Set the edited-word volume that fires an immediate quiz.
Must be a positive whole number.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsThreshold,
}

var settingsRepeatCmd = &cobra.Command{
	Use:   "repeat <on|off>",
	Short: "Set whether the interval timer repeats",
	Long: `Control whether the interval timer rearms itself after firing.
When off, a quiz fires at most once per monitoring session unless a
word-count trigger restarts the clock.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsRepeat,
}

var settingsModeCmd = &cobra.Command{
	Use:   "mode <document|delta>",
	Short: "Set how edited words are counted",
	Long: `Set how edited-word volume is measured against the threshold.

Available modes:
  document - The changed note's full word count on every change
  delta    - Words added per note since the last quiz`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsMode,
}

var settingsCooldownCmd = &cobra.Command{
	Use:   "cooldown <minutes>",
	Short: "Set the word-count trigger cooldown in minutes",
	Long: `Set the minimum gap between word-count triggers, in minutes.
Zero disables the cooldown. Fractional values are allowed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsCooldown,
}

var settingsCommandCmd = &cobra.Command{
	Use:   "command [quiz-command]",
	Short: "Set the external quiz command",
	Long: `Set an external command to run when a quiz triggers. The command
string is split on whitespace. With no argument the command is cleared
and quizzes print a prompt instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsCommand,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsIntervalCmd)
	settingsCmd.AddCommand(settingsThresholdCmd)
	settingsCmd.AddCommand(settingsRepeatCmd)
	settingsCmd.AddCommand(settingsModeCmd)
	settingsCmd.AddCommand(settingsCooldownCmd)
	settingsCmd.AddCommand(settingsCommandCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Interval Trigger]")
	cmd.Printf("  Interval: %s minutes\n", formatMinutes(settings.QuizInterval))
	repeat := "on"
	if !settings.Repeat {
		repeat = "off"
	}
	cmd.Printf("  Repeat: %s\n", repeat)
	cmd.Println()

	cmd.Println("[Word-Count Trigger]")
	cmd.Printf("  Threshold: %d words\n", settings.WordThreshold)
	cmd.Printf("  Mode: %s\n", settings.CountMode.Description())
	cmd.Printf("  Cooldown: %s minutes\n", formatMinutes(settings.Cooldown))
	cmd.Println()

	cmd.Println("[Quiz]")
	if settings.QuizCommand != "" {
		cmd.Printf("  Command: %s\n", settings.QuizCommand)
	} else {
		cmd.Printf("  Command: (not set, prints a prompt)\n")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsInterval(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	minutes, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid interval %q: must be a number of minutes", args[0])
	}

	if err := settingsService.SetInterval(minutes); err != nil {
		return fmt.Errorf("failed to set interval: %w", err)
	}

	cmd.Printf("Quiz interval set to %s minutes.\n", formatMinutes(minutes))
	return nil
}

func runSettingsThreshold(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	words, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid threshold %q: must be a whole number of words", args[0])
	}

	if err := settingsService.SetWordThreshold(words); err != nil {
		return fmt.Errorf("failed to set threshold: %w", err)
	}

	cmd.Printf("Word threshold set to %d words.\n", words)
	return nil
}

func runSettingsRepeat(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	var repeat bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		repeat = true
	case "off", "false", "no":
		repeat = false
	default:
		return fmt.Errorf("invalid value %q: use 'on' or 'off'", args[0])
	}

	if err := settingsService.SetRepeat(repeat); err != nil {
		return fmt.Errorf("failed to set repeat: %w", err)
	}

	if repeat {
		cmd.Println("Interval timer will repeat after each quiz.")
	} else {
		cmd.Println("Interval timer will fire once per session.")
	}
	return nil
}

func runSettingsMode(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	mode := domain.CountMode(strings.ToLower(args[0]))
	if !mode.IsValid() {
		return errors.New("invalid mode: use 'document' or 'delta'")
	}

	if err := settingsService.SetCountMode(mode); err != nil {
		return fmt.Errorf("failed to set count mode: %w", err)
	}

	cmd.Printf("Count mode set to: %s\n", mode.Description())
	return nil
}

func runSettingsCooldown(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	minutes, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid cooldown %q: must be a number of minutes", args[0])
	}

	if err := settingsService.SetCooldown(minutes); err != nil {
		return fmt.Errorf("failed to set cooldown: %w", err)
	}

	if minutes == 0 {
		cmd.Println("Word-count cooldown disabled.")
	} else {
		cmd.Printf("Word-count cooldown set to %s minutes.\n", formatMinutes(minutes))
	}
	return nil
}

func runSettingsCommand(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	command := ""
	if len(args) > 0 {
		command = args[0]
	}

	if err := settingsService.SetQuizCommand(command); err != nil {
		return fmt.Errorf("failed to set quiz command: %w", err)
	}

	if command == "" {
		cmd.Println("Quiz command cleared; quizzes will print a prompt.")
	} else {
		cmd.Printf("Quiz command set to: %s\n", command)
	}
	return nil
}

// formatMinutes renders fractional minutes without trailing zeros.
func formatMinutes(minutes float64) string {
	return strconv.FormatFloat(minutes, 'f', -1, 64)
}
