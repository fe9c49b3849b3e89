// Package kv provides the flat key-value persistence behind the template store.
//
// Values are opaque bytes. There are no transactions: the last Set for a key
// wins. Backends are selected by name with Open.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-json"
)

var (
	// ErrNotFound is returned by Get when a key has never been set or was deleted.
	ErrNotFound = errors.New("key not found")

	// ErrCorrupt is returned by GetJSON when a stored value cannot be decoded.
	ErrCorrupt = errors.New("stored value is not valid JSON")
)

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Drivers lists every driver name Open accepts.
var Drivers = []string{DriverFile, DriverSQLite, DriverRedis, DriverMemory}

// Store is a key-value persistence service.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Options configures Open.
type Options struct {
	Driver string // file, sqlite, redis or memory
	Path   string // directory for file, database file for sqlite
	URL    string // redis URL, e.g. redis://localhost:6379/0
	Prefix string // key prefix for redis
}

// Open returns the backend named by opts.Driver. An empty driver means file.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverFile:
		if opts.Path == "" {
			return nil, errors.New("file store requires a path")
		}
		return NewFileStore(filepath.Join(opts.Path, "kv"))
	case DriverSQLite:
		if opts.Path == "" {
			return nil, errors.New("sqlite store requires a path")
		}
		path := opts.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "docgen.db")
		}
		return OpenSQLite(ctx, path)
	case DriverRedis:
		return OpenRedis(ctx, opts.URL, opts.Prefix)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

// GetJSON reads key and decodes it into v. It returns ErrNotFound unchanged
// so callers can fall back to a default.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// SetJSON encodes v and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
