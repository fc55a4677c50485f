package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	toml "github.com/pelletier/go-toml/v2"
)

// FileStore keeps values in a TOML file of string keys. Every write rewrites
// the file through a temp file and rename. Values must be UTF-8 text.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// OpenFile loads path, starting empty when the file is missing or unreadable.
// path must already be resolved; config.ExpandPath handles a leading ~.
func OpenFile(path string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		return nil, errors.New("settings path is empty")
	}

	fs := &FileStore{path: resolved, values: make(map[string]string)}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("settings file unreadable, starting empty", "path", resolved, "error", err)
		}
		return fs, nil
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		logger.Warn("settings file unreadable, starting empty", "path", resolved, "error", err)
		return fs, nil
	}
	if err := toml.Unmarshal(bytes, &fs.values); err != nil {
		logger.Warn("settings file corrupt, starting empty", "path", resolved, "error", err)
		fs.values = make(map[string]string)
	}
	return fs, nil
}

// Path returns the resolved file path.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (f *FileStore) SetMany(_ context.Context, entries map[string][]byte) error {
	for k, v := range entries {
		if !utf8.Valid(v) {
			return fmt.Errorf("value for %q is not utf-8 text", k)
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	next := make(map[string]string, len(f.values)+len(entries))
	for k, v := range f.values {
		next[k] = v
	}
	for k, v := range entries {
		next[k] = string(v)
	}
	if err := f.write(next); err != nil {
		return err
	}
	f.values = next
	return nil
}

func (f *FileStore) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := make(map[string]string, len(f.values))
	for k, v := range f.values {
		next[k] = v
	}
	for _, k := range keys {
		delete(next, k)
	}
	if err := f.write(next); err != nil {
		return err
	}
	f.values = next
	return nil
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) write(values map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	bytes, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}
