package script

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of script file event.
type EventType int

const (
	// Changed indicates the script was written or recreated.
	Changed EventType = iota
	// Removed indicates the script was deleted or renamed away.
	Removed
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event represents a change to the watched script.
type Event struct {
	Type EventType
	Path string
}

// Watcher monitors a single script file for changes.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a new file and renaming it over the old one
// are still seen.
type Watcher struct {
	path    string
	dir     string
	watcher *fsnotify.Watcher
	events  chan Event
	errors  chan error

	// Debouncing
	debounceDelay time.Duration
	timer         *time.Timer
	pending       fsnotify.Op
	timerMu       sync.Mutex

	// Lifecycle
	stopCh    chan struct{}
	stoppedCh chan struct{}
	running   bool
	runningMu sync.Mutex
}

// NewWatcher creates a watcher for the script at path. Bursts of file events
// closer together than debounce collapse into one Event.
func NewWatcher(path string, debounce time.Duration) *Watcher {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return &Watcher{
		path:          abs,
		dir:           filepath.Dir(abs),
		events:        make(chan Event, 16),
		errors:        make(chan error, 1),
		debounceDelay: debounce,
		stopCh:        make(chan struct{}),
		stoppedCh:     make(chan struct{}),
	}
}

// Start begins watching. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start() error {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()

	if w.running {
		return nil
	}

	if _, err := os.Stat(w.dir); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher

	w.running = true
	go w.watchLoop()

	return nil
}

// Stop terminates the watcher and closes the events channel.
func (w *Watcher) Stop() {
	w.runningMu.Lock()
	if !w.running {
		w.runningMu.Unlock()
		return
	}
	w.running = false
	w.runningMu.Unlock()

	close(w.stopCh)
	<-w.stoppedCh

	if w.watcher != nil {
		w.watcher.Close()
	}

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	// Hold timerMu so an in-flight emit cannot send on a closed channel.
	close(w.events)
	w.timerMu.Unlock()
}

// Events returns the channel for receiving script events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns watcher errors. The channel keeps only the latest
// undelivered error.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) watchLoop() {
	defer close(w.stoppedCh)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			w.debounce(event.Op)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// debounce restarts the quiet-period timer and accumulates the operations
// seen during it.
func (w *Watcher) debounce(op fsnotify.Op) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	w.pending |= op
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.emit)
}

func (w *Watcher) emit() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer == nil {
		return
	}
	op := w.pending
	w.pending = 0
	w.timer = nil
	if op == 0 {
		return
	}

	// The final state of the file decides the event type.
	eventType := Changed
	if _, err := os.Stat(w.path); err != nil {
		eventType = Removed
	}

	select {
	case w.events <- Event{Type: eventType, Path: w.path}:
	default:
		// Channel full, drop event
	}
}
