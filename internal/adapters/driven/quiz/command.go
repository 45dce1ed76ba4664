package quiz

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure invokers implement the interface.
var (
	_ driven.QuizInvoker = (*CommandInvoker)(nil)
	_ driven.QuizInvoker = (*PromptInvoker)(nil)
)

// CommandInvoker launches a configured external program for each quiz.
// The command string is split on whitespace; quoting is not supported.
type CommandInvoker struct {
	command string
}

// NewCommandInvoker creates an invoker for the given command string.
func NewCommandInvoker(command string) *CommandInvoker {
	return &CommandInvoker{command: command}
}

// InvokeQuiz starts the configured command. Failures are logged and
// swallowed; a broken quiz command must not take down the monitor.
func (i *CommandInvoker) InvokeQuiz() {
	fields := strings.Fields(i.command)
	if len(fields) == 0 {
		logger.Warn("Quiz command is empty, skipping invocation")
		return
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		logger.Warn("Starting quiz command %q: %v", i.command, err)
		return
	}

	logger.Debug("Started quiz command %q (pid %d)", i.command, cmd.Process.Pid)

	// Reap the process so it does not linger as a zombie.
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Warn("Quiz command %q exited with error: %v", i.command, err)
		}
	}()
}

// PromptInvoker prints a quiz prompt to the terminal. Used when no
// external quiz command is configured.
type PromptInvoker struct {
	out io.Writer
}

// NewPromptInvoker creates a prompt invoker writing to out.
// If out is nil, os.Stdout is used.
func NewPromptInvoker(out io.Writer) *PromptInvoker {
	if out == nil {
		out = os.Stdout
	}
	return &PromptInvoker{out: out}
}

// InvokeQuiz prints the quiz prompt.
func (i *PromptInvoker) InvokeQuiz() {
	io.WriteString(i.out, "Time to review! Run a recall quiz over your recent notes.\n")
}
