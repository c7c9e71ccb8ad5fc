package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

var errCorruptFile = errors.New("session: corrupt session file")

// FileStorage persists entries as a single JSON object on disk, mode 0600.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage returns a store backed by path. The parent directory is created on first write.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the backing file.
func (f *FileStorage) Path() string {
	return f.path
}

// Get returns the value for key. A file that cannot be decoded is reported as an error; the
// next Set or Delete replaces it.
func (f *FileStorage) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

// Set stores value under key.
func (f *FileStorage) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if errors.Is(err, errCorruptFile) {
		entries = make(map[string]string)
	} else if err != nil {
		return err
	}
	entries[key] = value
	return f.write(entries)
}

// Delete removes keys. The file is removed once empty, or when it cannot be decoded.
func (f *FileStorage) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if errors.Is(err, errCorruptFile) {
		entries = nil
	} else if err != nil {
		return err
	}
	for _, k := range keys {
		delete(entries, k)
	}
	if len(entries) == 0 {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("session: remove %s: %w", f.path, err)
		}
		return nil
	}
	return f.write(entries)
}

func (f *FileStorage) read() (map[string]string, error) {
	entries := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w %s: %w", errCorruptFile, f.path, err)
	}
	return entries, nil
}

// write replaces the file atomically via rename.
func (f *FileStorage) write(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("session: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("session: write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
