package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvBackend stores each key as a file under a base directory.
type DiskvBackend struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskvBackend creates the base directory and returns a backend over it.
// Writes go through a temp file and rename so readers never see a partial
// value. There is no read cache: other processes may rewrite the files.
func NewDiskvBackend(basePath string) (*DiskvBackend, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &DiskvBackend{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			TempDir:      filepath.Join(basePath, ".tmp"),
			FilePerm:     0o644,
			PathPerm:     0o755,
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

func (b *DiskvBackend) Read(key string) ([]byte, error) {
	val, err := b.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return val, nil
}

func (b *DiskvBackend) Write(key string, value []byte) error {
	if err := b.d.Write(key, value); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (b *DiskvBackend) Close() error { return nil }

func (b *DiskvBackend) WatchDir() string { return b.basePath }

func (b *DiskvBackend) Match(name string) bool {
	return filepath.Base(name) == Key
}
