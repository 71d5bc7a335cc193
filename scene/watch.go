package scene

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/sr"
)

// Watch calls onChange with the reloaded config every time the file at path
// is written or replaced, until ctx is done. Load errors are passed to
// onChange with a nil config; watching continues.
//
// The parent directory is watched rather than the file, so editors that
// save by renaming a temporary file are seen too.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scene: watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("scene: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("scene: watch %s: %w", path, err)
	}
	sr.Logger().Debug("scene: watching", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != abs {
				continue
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			c, err := Load(abs)
			if err != nil {
				sr.Logger().Warn("scene: reload failed", "path", abs, "error", err)
			} else {
				sr.Logger().Info("scene: reloaded", "path", abs, "models", len(c.Models))
			}
			onChange(c, err)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			sr.Logger().Warn("scene: watch error", "error", err)
		}
	}
}
