package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/filesystem"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher follows a directory tree and calls OnChange once the tree has
// been quiet for Debounce after a change.
type Watcher struct {
	Root     string
	Debounce time.Duration
	Clock    clockwork.Clock
	OnChange func(context.Context)

	// Ignore filters paths before they count as changes. Temporary files
	// from atomic writes are always ignored.
	Ignore func(path string) bool

	// ready is closed once the initial directories are being watched
	ready chan struct{}
}

// NewWatcher returns a Watcher for root.
func NewWatcher(root string, debounce time.Duration, onChange func(context.Context)) *Watcher {
	return &Watcher{Root: root, Debounce: debounce, OnChange: onChange, ready: make(chan struct{})}
}

// Ready is closed when Run has registered the initial tree.
func (w *Watcher) Ready() <-chan struct{} {
	if w.ready == nil {
		w.ready = make(chan struct{})
	}
	return w.ready
}

// Run watches until ctx is done. It returns an error only when the watch
// cannot be established.
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.GetLogger("watch").With().Str("root", w.Root).Logger()
	_ = w.Ready()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "creating filesystem watcher")
	}
	defer func() { _ = fw.Close() }()

	if err := w.addTree(fw, w.Root, logger); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "watching profile directory").
			WithDetail("root", w.Root)
	}
	close(w.ready)

	debouncer := NewDebouncer(w.Clock, w.Debounce, func() {
		logger.Info().Msg("profile changed")
		w.OnChange(ctx)
	})
	defer debouncer.Stop()

	logger.Info().Msg("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			if event.Has(fsnotify.Create) {
				if err := w.addTree(fw, event.Name, logger); err != nil {
					logger.Debug().Err(err).Str("path", event.Name).Msg("could not watch new entry")
				}
			}
			debouncer.Trigger()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&relevantOps == 0 {
		return false
	}
	if filesystem.IsTempFile(filepath.Base(event.Name)) {
		return false
	}
	if w.Ignore != nil && w.Ignore(event.Name) {
		return false
	}
	return true
}

// addTree registers dir and its subdirectories, skipping VCS metadata.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string, logger zerolog.Logger) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return err
		}
		logger.Trace().Str("dir", path).Msg("watching")
		return nil
	})
}
