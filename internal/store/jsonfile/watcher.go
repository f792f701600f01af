package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 16
)

// ChangeEvent signals that the snapshot file was modified on disk.
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}

// SnapshotWatcher watches the snapshot file for external modification using
// fsnotify. Rapid successive writes are debounced into a single event.
type SnapshotWatcher struct {
	path    string
	watcher *fsnotify.Watcher

	mu          sync.Mutex
	subscribers []chan<- ChangeEvent
	debounce    *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSnapshotWatcher creates a watcher for the given snapshot file. The
// parent directory is watched (and created if missing) so that atomic
// tmp+rename writes are observed.
func NewSnapshotWatcher(path string) (*SnapshotWatcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sw := &SnapshotWatcher{
		path:    path,
		watcher: watcher,
		ctx:     ctx,
		cancel:  cancel,
	}

	sw.wg.Add(1)
	go sw.run()

	return sw, nil
}

// Watch returns a channel receiving change events until ctx is done or the
// watcher is closed.
func (sw *SnapshotWatcher) Watch(ctx context.Context) <-chan ChangeEvent {
	ch := make(chan ChangeEvent, eventBufferSize)

	sw.mu.Lock()
	sw.subscribers = append(sw.subscribers, ch)
	sw.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			sw.unsubscribe(ch)
		case <-sw.ctx.Done():
			// Watcher is closing; Close() closes the channel.
		}
	}()

	return ch
}

// Close stops watching and closes all subscriber channels.
func (sw *SnapshotWatcher) Close() error {
	sw.cancel()

	sw.mu.Lock()
	if sw.debounce != nil {
		sw.debounce.Stop()
	}
	for _, ch := range sw.subscribers {
		close(ch)
	}
	sw.subscribers = nil
	sw.mu.Unlock()

	err := sw.watcher.Close()
	sw.wg.Wait()
	return err
}

func (sw *SnapshotWatcher) unsubscribe(ch chan<- ChangeEvent) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	for i, sub := range sw.subscribers {
		if sub == ch {
			sw.subscribers = append(sw.subscribers[:i], sw.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

func (sw *SnapshotWatcher) run() {
	defer sw.wg.Done()

	for {
		select {
		case <-sw.ctx.Done():
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			sw.handleEvent(event)
		case _, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (sw *SnapshotWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	// Only the snapshot file itself counts; tmp and lock siblings are noise.
	name := filepath.Base(event.Name)
	if name != filepath.Base(sw.path) ||
		strings.HasSuffix(name, ".tmp") ||
		strings.HasSuffix(name, ".lock") {
		return
	}

	sw.mu.Lock()
	if sw.debounce != nil {
		sw.debounce.Stop()
	}
	sw.debounce = time.AfterFunc(debounceDelay, sw.notifySubscribers)
	sw.mu.Unlock()
}

func (sw *SnapshotWatcher) notifySubscribers() {
	event := ChangeEvent{
		Path:      sw.path,
		Timestamp: time.Now(),
	}

	sw.mu.Lock()
	defer sw.mu.Unlock()

	for _, ch := range sw.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full; drop rather than block the event loop.
		}
	}

	sw.debounce = nil
}
