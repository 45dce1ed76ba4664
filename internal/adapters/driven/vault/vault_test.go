package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// waitForChange blocks until a change arrives or the timeout elapses.
func waitForChange(t *testing.T, changes <-chan domain.NoteChange) domain.NoteChange {
	t.Helper()

	select {
	case change, ok := <-changes:
		require.True(t, ok, "watch channel closed unexpectedly")
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for note change")
		return domain.NoteChange{}
	}
}

func TestVault_Validate(t *testing.T) {
	t.Run("valid directory succeeds", func(t *testing.T) {
		v := New(t.TempDir())

		err := v.Validate(context.Background())

		assert.NoError(t, err)
	})

	t.Run("non-existent path returns error", func(t *testing.T) {
		v := New("/non/existent/path/12345")

		err := v.Validate(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		dir := t.TempDir()
		filePath := filepath.Join(dir, "file.txt")
		require.NoError(t, os.WriteFile(filePath, []byte("content"), 0644))

		v := New(filePath)

		err := v.Validate(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("cancelled context returns error", func(t *testing.T) {
		v := New(t.TempDir())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := v.Validate(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestVault_Read(t *testing.T) {
	t.Run("returns note content", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte("# Title\n\nbody"), 0644))

		v := New(dir)

		content, err := v.Read(context.Background(), "note.md")

		require.NoError(t, err)
		assert.Equal(t, "# Title\n\nbody", content)
	})

	t.Run("reads nested notes", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "projects"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "projects", "plan.md"), []byte("plan"), 0644))

		v := New(dir)

		content, err := v.Read(context.Background(), filepath.Join("projects", "plan.md"))

		require.NoError(t, err)
		assert.Equal(t, "plan", content)
	})

	t.Run("missing note returns ErrContentRead", func(t *testing.T) {
		v := New(t.TempDir())

		_, err := v.Read(context.Background(), "gone.md")

		assert.ErrorIs(t, err, domain.ErrContentRead)
	})

	t.Run("cancelled context returns error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte("x"), 0644))

		v := New(dir)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := v.Read(ctx, "note.md")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestVault_Watch(t *testing.T) {
	t.Run("delivers create for new note", func(t *testing.T) {
		dir := t.TempDir()
		v := New(dir)
		defer v.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := v.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "new.md"), []byte("hello"), 0644))

		change := waitForChange(t, changes)
		assert.Equal(t, domain.ChangeCreated, change.Type)
		assert.Equal(t, "new.md", change.NoteID)
	})

	t.Run("delivers update for modified note", func(t *testing.T) {
		dir := t.TempDir()
		notePath := filepath.Join(dir, "note.md")
		require.NoError(t, os.WriteFile(notePath, []byte("initial"), 0644))

		v := New(dir)
		defer v.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := v.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(notePath, []byte("modified"), 0644))

		change := waitForChange(t, changes)
		assert.Equal(t, domain.ChangeUpdated, change.Type)
		assert.Equal(t, "note.md", change.NoteID)
	})

	t.Run("delivers delete for removed note", func(t *testing.T) {
		dir := t.TempDir()
		notePath := filepath.Join(dir, "doomed.md")
		require.NoError(t, os.WriteFile(notePath, []byte("delete me"), 0644))

		v := New(dir)
		defer v.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := v.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.Remove(notePath))

		change := waitForChange(t, changes)
		assert.Equal(t, domain.ChangeDeleted, change.Type)
		assert.Equal(t, "doomed.md", change.NoteID)
	})

	t.Run("debounces write bursts into one change", func(t *testing.T) {
		dir := t.TempDir()
		notePath := filepath.Join(dir, "burst.md")
		require.NoError(t, os.WriteFile(notePath, []byte("v0"), 0644))

		v := New(dir)
		v.debounce = 100 * time.Millisecond
		defer v.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := v.Watch(ctx)
		require.NoError(t, err)

		// A burst of writes well inside the debounce window.
		for i := 0; i < 5; i++ {
			require.NoError(t, os.WriteFile(notePath, []byte("vN"), 0644))
			time.Sleep(10 * time.Millisecond)
		}

		change := waitForChange(t, changes)
		assert.Equal(t, "burst.md", change.NoteID)

		// No second change should follow from the same burst.
		select {
		case extra := <-changes:
			t.Fatalf("unexpected extra change: %+v", extra)
		case <-time.After(300 * time.Millisecond):
		}
	})

	t.Run("ignores hidden files", func(t *testing.T) {
		dir := t.TempDir()
		v := New(dir)
		v.debounce = 50 * time.Millisecond
		defer v.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := v.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.md"), []byte("secret"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "visible.md"), []byte("visible"), 0644))

		change := waitForChange(t, changes)
		assert.Equal(t, "visible.md", change.NoteID)
	})

	t.Run("ignores non-note files", func(t *testing.T) {
		dir := t.TempDir()
		v := New(dir)
		v.debounce = 50 * time.Millisecond
		defer v.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := v.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89}, 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte("note"), 0644))

		change := waitForChange(t, changes)
		assert.Equal(t, "note.md", change.NoteID)
	})

	t.Run("watches directories created after start", func(t *testing.T) {
		dir := t.TempDir()
		v := New(dir)
		defer v.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := v.Watch(ctx)
		require.NoError(t, err)

		subdir := filepath.Join(dir, "journal")
		require.NoError(t, os.Mkdir(subdir, 0755))

		// Give the watcher a moment to pick up the new directory.
		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(subdir, "today.md"), []byte("entry"), 0644))

		change := waitForChange(t, changes)
		assert.Equal(t, filepath.Join("journal", "today.md"), change.NoteID)
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		v := New(t.TempDir())
		defer v.Close()

		ctx, cancel := context.WithCancel(context.Background())

		changes, err := v.Watch(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-changes:
			assert.False(t, ok, "channel should be closed")
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
	})

	t.Run("closes channel when vault is closed", func(t *testing.T) {
		v := New(t.TempDir())

		changes, err := v.Watch(context.Background())
		require.NoError(t, err)

		require.NoError(t, v.Close())

		select {
		case _, ok := <-changes:
			assert.False(t, ok, "channel should be closed")
		case <-time.After(time.Second):
			t.Fatal("channel did not close after vault close")
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		v := New("/non/existent/path")

		changes, err := v.Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, changes)
	})

	t.Run("returns error after close", func(t *testing.T) {
		v := New(t.TempDir())
		require.NoError(t, v.Close())

		changes, err := v.Watch(context.Background())

		assert.ErrorIs(t, err, domain.ErrWatchClosed)
		assert.Nil(t, changes)
	})
}

func TestVault_Close(t *testing.T) {
	t.Run("close without watch succeeds", func(t *testing.T) {
		v := New(t.TempDir())

		assert.NoError(t, v.Close())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		v := New(t.TempDir())

		assert.NoError(t, v.Close())
		assert.NoError(t, v.Close())
		assert.NoError(t, v.Close())
	})
}

func TestIsNote(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"note.md", true},
		{"note.markdown", true},
		{"note.txt", true},
		{"NOTE.MD", true},
		{"nested/dir/note.md", true},
		{"image.png", false},
		{"data.json", false},
		{"noext", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isNote(tt.path))
		})
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{".hidden", true},
		{"path/to/.hidden", true},
		{"dir/.git/config", true},
		{"file.txt", false},
		{"path/to/file.txt", false},
		{".", false},
		{"..", false},
		{"path/./file", false},
		{"file.hidden", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isHidden(tt.path))
		})
	}
}
