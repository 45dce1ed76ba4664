package quiz

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/logger"
)

func TestCommandInvoker_RunsCommand(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")

	invoker := NewCommandInvoker("touch " + marker)
	invoker.InvokeQuiz()

	require.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond, "quiz command did not run")
}

func TestCommandInvoker_EmptyCommandIsNoop(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	invoker := NewCommandInvoker("")
	invoker.InvokeQuiz()

	assert.Contains(t, buf.String(), "empty")
}

func TestCommandInvoker_MissingBinaryIsNonFatal(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	invoker := NewCommandInvoker("recall-no-such-binary-12345")

	// Must not panic or propagate the failure.
	invoker.InvokeQuiz()

	assert.Contains(t, buf.String(), "quiz command")
}

func TestPromptInvoker_PrintsPrompt(t *testing.T) {
	var buf bytes.Buffer

	invoker := NewPromptInvoker(&buf)
	invoker.InvokeQuiz()

	assert.Contains(t, buf.String(), "recall quiz")
}

func TestPromptInvoker_NilWriterDefaultsToStdout(t *testing.T) {
	invoker := NewPromptInvoker(nil)

	require.NotNil(t, invoker)
	assert.Equal(t, os.Stdout, invoker.out)
}
