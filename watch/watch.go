// Package watch re-runs generation when its inputs change.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/rsbind/errors"
	"github.com/teranos/rsbind/logger"
)

// DefaultDebounce is used when a non-positive debounce is given
const DefaultDebounce = 500 * time.Millisecond

// RunFunc performs one complete generation run
type RunFunc func(ctx context.Context) error

// Watcher watches input files and triggers debounced runs.
// Parent directories are watched, so editors that save by rename are seen.
type Watcher struct {
	files    map[string]struct{}
	run      RunFunc
	debounce time.Duration
	log      *zap.SugaredLogger
	fsw      *fsnotify.Watcher

	// runMu serialises runs
	runMu sync.Mutex
}

// New watches paths. Every path must be in an existing directory.
func New(paths []string, debounce time.Duration, run RunFunc, log *zap.SugaredLogger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("nothing to watch")
	}
	if run == nil {
		return nil, errors.New("watch: run function is nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		run:      run,
		debounce: debounce,
		log:      log,
		fsw:      fsw,
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, seen := dirs[dir]; seen {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.WithHint(
				errors.Wrapf(err, "failed to watch %s", dir),
				"watch only supports local files; remote sources cannot be watched",
			)
		}
		dirs[dir] = struct{}{}
	}

	return w, nil
}

// Files returns the watched files
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	return files
}

// Trigger runs immediately, waiting for any run in progress
func (w *Watcher) Trigger(ctx context.Context) error {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := w.run(ctx)
	w.log.Debugw("Watch run finished",
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return err
}

// Run processes events until ctx is cancelled. Run errors are logged and
// watching continues. The fsnotify watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Infow("Input changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String(),
			)
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

		case <-fire:
			fire = nil
			if err := w.Trigger(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.log.Errorw("Regeneration failed",
					logger.FieldError, err.Error(),
				)
				if hints := errors.GetAllHints(err); len(hints) > 0 {
					w.log.Infow("Hint", logger.FieldHint, hints[0])
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err.Error())
		}
	}
}

// relevant reports whether event is a write or create of a watched file
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}
