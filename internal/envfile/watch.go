package envfile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/GhostWriters/dotenv/internal/dotenv"
	"github.com/GhostWriters/dotenv/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Watch parses file once, then again every time it is written or replaced,
// passing each result to fn. It blocks until ctx is done. A panic in fn is
// logged and watching continues.
//
// The parent directory is watched so editors that save by renaming a
// temporary file are still seen.
func Watch(ctx context.Context, p *dotenv.Parser, file string, fn func(dotenv.Document, error)) error {
	if p == nil {
		p = &dotenv.Parser{}
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", file, err)
	}

	notify := func() {
		defer logger.Recover(ctx)
		fn(parseFile(p, file))
	}
	notify()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debug(ctx, "Change detected in %s (%s)", file, ev.Op)
			notify()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "Watcher error on %s: %v", file, err)
		}
	}
}
