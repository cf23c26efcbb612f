package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Backend.Read when the key has never been
// written.
var ErrNotFound = errors.New("store: key not found")

// Backend is a key-value blob store. Writes replace the whole value.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Close() error
}

// Watchable is implemented by backends that live on the filesystem. Dir is
// the directory to watch and Match reports whether a changed file belongs
// to the backend.
type Watchable interface {
	WatchDir() string
	Match(name string) bool
}

// Backend kinds accepted by OpenBackend.
const (
	KindDiskv  = "diskv"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Kinds lists the backend kinds.
var Kinds = []string{KindDiskv, KindSQLite, KindMemory}

// OpenBackend opens the backend of the given kind rooted at dataDir.
func OpenBackend(kind, dataDir string) (Backend, error) {
	switch strings.ToLower(kind) {
	case "", KindDiskv:
		return NewDiskvBackend(filepath.Join(dataDir, "goals"))
	case KindSQLite:
		return OpenSQLiteBackend(filepath.Join(dataDir, "focusone.db"))
	case KindMemory:
		return NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("unknown backend %q (want one of %s)", kind, strings.Join(Kinds, ", "))
}
