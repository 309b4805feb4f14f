package settings

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the new hotkey whenever the settings file is
// rewritten with a different usable value. It blocks until ctx is done.
//
// The directory is watched rather than the file because Save replaces the
// file by rename, which drops file-level watches on most platforms.
func (s *Store) Watch(ctx context.Context, onChange func(string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("settings watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	last, _ := s.Load()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !s.isOwnFile(ev.Name) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			current, err := s.Load()
			if err != nil {
				log.Printf("settings: ignoring change: %v", err)
				continue
			}
			if current == last {
				continue
			}
			last = current
			onChange(current)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("settings: watcher error: %v", err)
		}
	}
}
