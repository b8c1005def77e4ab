package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/cellframe/pkg/errors"
)

// Watch reloads the file at path each time it is written or replaced and
// hands the result to fn, until ctx is done. A failed reload passes a nil
// config and the error. The directory is watched so that editors that
// save by renaming are seen.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "resolve config path")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "create config watcher")
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "watch config directory").
			WithContext("path", abs)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			fn(LoadFromPath(abs))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "watch config"))
		}
	}
}
