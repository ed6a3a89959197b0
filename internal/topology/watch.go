package topology

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/topograph/internal/vis/schedule"
)

// Watcher reloads a Store when its backing file changes on disk. Bursts of
// events are collapsed into one reload after a quiet period. Writes made
// by the store itself are recognised by content and ignored.
type Watcher struct {
	store   *Store
	logger  *zap.Logger
	fs      *fsnotify.Watcher
	reload  *schedule.Debounce[string]
	target  string
	stopCh  chan struct{}
	wg      sync.WaitGroup
	closeMu sync.Once
}

// NewWatcher starts watching the store's file. The directory is watched
// rather than the file so that atomic renames are seen.
func NewWatcher(store *Store, sched *schedule.Scheduler, delay time.Duration, logger *zap.Logger) (*Watcher, error) {
	if store.Path() == "" {
		return nil, fmt.Errorf("watch topology: store has no backing file")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	target, err := filepath.Abs(store.Path())
	if err != nil {
		return nil, fmt.Errorf("watch topology: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	w := &Watcher{
		store:  store,
		logger: logger,
		fs:     fsw,
		target: target,
		stopCh: make(chan struct{}),
	}
	w.reload = schedule.NewDebounce(sched, delay, w.doReload)

	w.wg.Add(1)
	go w.watchLoop()

	logger.Info("watching topology", zap.String("path", target))
	return w, nil
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("topology file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()),
			)
			w.reload.Call(event.Op.String())

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))

		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) doReload(op string) {
	changed, err := w.store.Reload()
	if err != nil {
		// A half-written file is common mid-save; the next event retries.
		w.logger.Warn("topology reload failed", zap.String("trigger", op), zap.Error(err))
		return
	}
	if !changed {
		w.logger.Debug("topology unchanged", zap.String("trigger", op))
	}
}

// Close stops watching and cancels any pending reload.
func (w *Watcher) Close() error {
	var err error
	w.closeMu.Do(func() {
		close(w.stopCh)
		err = w.fs.Close()
		w.wg.Wait()
		w.reload.Stop()
	})
	return err
}
