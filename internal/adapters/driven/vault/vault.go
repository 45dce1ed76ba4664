package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// defaultDebounce is the quiet window after a filesystem event before a
// change is delivered. Editors emit several writes per save.
const defaultDebounce = 200 * time.Millisecond

// Ensure Vault implements the interface.
var _ driven.NoteStore = (*Vault)(nil)

// Vault is a filesystem-backed NoteStore. Note IDs are paths relative
// to the vault root.
type Vault struct {
	rootPath string
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a vault over the given root directory.
func New(rootPath string) *Vault {
	return &Vault{
		rootPath: rootPath,
		debounce: defaultDebounce,
	}
}

// Validate checks that the vault root exists and is a directory.
func (v *Vault) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(v.rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("vault root does not exist: %s", v.rootPath)
		}
		return fmt.Errorf("vault root error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault root is not a directory: %s", v.rootPath)
	}
	return nil
}

// Read returns the current content of a note.
func (v *Vault) Read(ctx context.Context, noteID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(v.rootPath, noteID))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrContentRead, noteID, err)
	}
	return string(data), nil
}

// Watch starts watching the vault and delivers debounced note changes.
// The returned channel is closed when ctx is cancelled or the vault is
// closed.
func (v *Vault) Watch(ctx context.Context) (<-chan domain.NoteChange, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, fmt.Errorf("vault closed: %w", domain.ErrWatchClosed)
	}
	if v.watcher != nil {
		return nil, fmt.Errorf("vault already watching")
	}

	if err := v.Validate(ctx); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the root and every existing subdirectory. fsnotify does not
	// recurse on its own.
	if err := addRecursive(watcher, v.rootPath); err != nil {
		watcher.Close()
		return nil, err
	}

	v.watcher = watcher

	out := make(chan domain.NoteChange)
	go v.watchLoop(ctx, watcher, out)

	return out, nil
}

// Close stops watching and releases resources. Safe to call multiple
// times.
func (v *Vault) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil
	}
	v.closed = true

	if v.watcher != nil {
		return v.watcher.Close()
	}
	return nil
}

// watchLoop translates fsnotify events into note changes. Only this
// goroutine sends on or closes out.
func (v *Vault) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- domain.NoteChange) {
	defer close(out)

	// Debounce timers deliver into pending rather than out directly so
	// the loop remains the sole sender on out. The buffer absorbs
	// timers that fire during shutdown.
	pending := make(chan domain.NoteChange, 64)

	timers := make(map[string]*pendingChange)
	var timersMu sync.Mutex

	stopTimers := func() {
		timersMu.Lock()
		defer timersMu.Unlock()
		for _, p := range timers {
			p.timer.Stop()
		}
	}
	defer stopTimers()

	for {
		select {
		case <-ctx.Done():
			return

		case change := <-pending:
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			v.handleEvent(watcher, event, pending, timers, &timersMu)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Vault watch error: %v", err)
		}
	}
}

// pendingChange is a debounced change awaiting delivery.
type pendingChange struct {
	timer      *time.Timer
	changeType domain.ChangeType
}

// handleEvent processes a single filesystem event.
func (v *Vault) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event,
	pending chan<- domain.NoteChange, timers map[string]*pendingChange, timersMu *sync.Mutex) {

	if isHidden(event.Name) {
		return
	}

	// New directories must be added to the watch set for recursion.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addRecursive(watcher, event.Name); err != nil {
				logger.Warn("Vault: watching new directory %s: %v", event.Name, err)
			}
			return
		}
	}

	if !isNote(event.Name) {
		return
	}

	noteID, err := filepath.Rel(v.rootPath, event.Name)
	if err != nil {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		// Deletions are delivered immediately so stale baselines are
		// dropped; any pending write for the file is superseded.
		timersMu.Lock()
		if p, ok := timers[noteID]; ok {
			p.timer.Stop()
			delete(timers, noteID)
		}
		timersMu.Unlock()
		select {
		case pending <- domain.NoteChange{NoteID: noteID, Type: domain.ChangeDeleted}:
		default:
		}

	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		changeType := domain.ChangeUpdated
		if event.Op.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		v.scheduleChange(noteID, changeType, pending, timers, timersMu)
	}
}

// scheduleChange (re)starts the debounce timer for a note. A create
// followed by writes within the window is still delivered as a create.
func (v *Vault) scheduleChange(noteID string, changeType domain.ChangeType,
	pending chan<- domain.NoteChange, timers map[string]*pendingChange, timersMu *sync.Mutex) {

	timersMu.Lock()
	defer timersMu.Unlock()

	if p, ok := timers[noteID]; ok {
		p.timer.Stop()
		if p.changeType == domain.ChangeCreated {
			changeType = domain.ChangeCreated
		}
	}

	finalType := changeType
	p := &pendingChange{changeType: changeType}
	p.timer = time.AfterFunc(v.debounce, func() {
		timersMu.Lock()
		delete(timers, noteID)
		timersMu.Unlock()
		select {
		case pending <- domain.NoteChange{NoteID: noteID, Type: finalType}:
		default:
		}
	})
	timers[noteID] = p
}

// addRecursive adds path and all its subdirectories to the watcher.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// noteExtensions are the file extensions treated as notes.
var noteExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// isNote returns true if the path has a recognised note extension.
func isNote(path string) bool {
	return noteExtensions[strings.ToLower(filepath.Ext(path))]
}

// isHidden returns true if any component of the path starts with a dot.
// The special entries "." and ".." are not considered hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
