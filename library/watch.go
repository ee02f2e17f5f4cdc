package library

import (
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reports template file changes in watched directories so
// callers can re-render live.
type Watcher struct {
	watcher *fsnotify.Watcher
	changed chan string
	logger  zerolog.Logger
	done    chan struct{}
}

// NewWatcher starts watching the given directories for template file
// changes. Directories that do not exist are skipped with a debug log.
func NewWatcher(dirs []string, logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		changed: make(chan string),
		logger:  logger,
		done:    make(chan struct{}),
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			logger.Debug().Err(err).Str("dir", dir).Msg("skipping watch dir")
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if !templateFile(event.Name) {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("template changed")
			select {
			case w.changed <- event.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// Changed returns the channel of changed template file paths.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Close stops the watcher. Pending notifications are dropped.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
