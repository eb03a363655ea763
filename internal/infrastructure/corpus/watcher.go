package corpus

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalLens/pkg/errors"
)

const defaultDebounce = 500 * time.Millisecond

// Reloader is satisfied by *Store.
type Reloader interface {
	Reload(ctx context.Context) (*Snapshot, error)
}

// Watcher reloads the corpus when a JSON file in the laws directory is
// written, created, removed or renamed. Bursts of events within the
// debounce window cause one reload.
type Watcher struct {
	dir      string
	target   Reloader
	logger   logging.Logger
	debounce time.Duration
	fs       *fsnotify.Watcher

	// reloaded receives the result of every reload; used by tests.
	reloaded chan error
}

// NewWatcher starts watching dir. Call Run to process events.
func NewWatcher(dir string, target Reloader, log logging.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create file watcher")
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "failed to watch laws directory").WithDetail(dir)
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Watcher{
		dir:      dir,
		target:   target,
		logger:   log.Named("corpus.watch"),
		debounce: defaultDebounce,
		fs:       fw,
	}, nil
}

func relevant(ev fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), ".json") {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// Run blocks until ctx is done, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			w.logger.Debug("laws changed", logging.String("file", ev.Name), logging.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.Err(err))
		case <-fire:
			fire = nil
			_, err := w.target.Reload(ctx)
			if err != nil {
				w.logger.Error("corpus reload failed; keeping previous snapshot", logging.Err(err))
			}
			if w.reloaded != nil {
				w.reloaded <- err
			}
		}
	}
}
