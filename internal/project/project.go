// Package project maps a directory holding index.html, style.css and
// script.js onto the three buffers.
package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	fsnotify "github.com/fsnotify/fsnotify"

	"jsbin/internal/buffer"
	"jsbin/internal/system"
)

// Load reads the buffers from dir. Missing files are empty buffers; dir
// itself must exist.
func Load(dir string) (buffer.Buffers, error) {
	var b buffer.Buffers
	st, err := os.Stat(dir)
	if err != nil {
		return b, err
	}
	if !st.IsDir() {
		return b, fmt.Errorf("%s is not a directory", dir)
	}
	for _, r := range buffer.Roles {
		text, err := readRole(dir, r)
		if err != nil {
			return b, err
		}
		b.Set(r, text)
	}
	return b, nil
}

func readRole(dir string, r buffer.Role) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, r.FileName()))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", r.FileName(), err)
	}
	return string(data), nil
}

// Save writes the buffers into dir, creating it when needed.
func Save(dir string, b buffer.Buffers) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, r := range buffer.Roles {
		if err := os.WriteFile(filepath.Join(dir, r.FileName()), []byte(b.Get(r)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", r.FileName(), err)
		}
	}
	return nil
}

// settle lets an editor finish a burst of writes before the file is read.
const settle = 50 * time.Millisecond

// Watch calls onChange with the new text whenever one of the buffer files
// in dir is written, created or removed. It returns when ctx is done.
// onChange runs on the watcher goroutine.
func Watch(ctx context.Context, dir string, onChange func(buffer.Role, string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// editors that save by rename replace the inode, so watch the directory
	if err := w.Add(dir); err != nil {
		return err
	}
	byName := map[string]buffer.Role{}
	for _, r := range buffer.Roles {
		byName[r.FileName()] = r
	}

	dirty := map[buffer.Role]bool{}
	var flush <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			r, known := byName[filepath.Base(ev.Name)]
			if !known || ev.Op == fsnotify.Chmod {
				continue
			}
			dirty[r] = true
			flush = time.After(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			system.Logger.Warn("watch error", "dir", dir, "err", err)
		case <-flush:
			flush = nil
			for _, r := range buffer.Roles {
				if !dirty[r] {
					continue
				}
				delete(dirty, r)
				text, err := readRole(dir, r)
				if err != nil {
					system.Logger.Warn("reload failed", "file", r.FileName(), "err", err)
					continue
				}
				onChange(r, text)
			}
		}
	}
}
