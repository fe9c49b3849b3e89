package kv

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileExt = ".kv"

// FileStore keeps one file per key in a directory.
// Writes go through a temp file and a rename so a reader never sees a
// partially written value.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a FileStore on it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the storage directory path.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// keyPath returns the file path for key.
func (fs *FileStore) keyPath(key string) string {
	return filepath.Join(fs.dir, encodeKey(key)+fileExt)
}

// Get reads the value stored under key.
func (fs *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(fs.keyPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading key %s: %w", key, err)
	}
	return data, nil
}

// Set writes value under key atomically.
func (fs *FileStore) Set(_ context.Context, key string, value []byte) error {
	if err := atomicWrite(fs.keyPath(key), value); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (fs *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(fs.keyPath(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in sorted order.
func (fs *FileStore) Keys(_ context.Context) ([]string, error) {
	dirEntries, err := os.ReadDir(fs.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading store directory: %w", err)
	}

	keys := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		key, ok := decodeKey(strings.TrimSuffix(name, fileExt))
		if !ok {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op.
func (fs *FileStore) Close() error { return nil }

// encodeKey maps a key to a file name. Keys made only of letters, digits,
// '-', '_' and '.' are used as-is; anything else is hex encoded behind '~'.
func encodeKey(key string) string {
	if isPlainKey(key) {
		return key
	}
	return "~" + hex.EncodeToString([]byte(key))
}

// decodeKey reverses encodeKey.
func decodeKey(name string) (string, bool) {
	if rest, ok := strings.CutPrefix(name, "~"); ok {
		raw, err := hex.DecodeString(rest)
		if err != nil {
			return "", false
		}
		return string(raw), true
	}
	return name, isPlainKey(name)
}

func isPlainKey(key string) bool {
	if key == "" || key[0] == '.' {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
