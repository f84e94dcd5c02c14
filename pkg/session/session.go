// Package session persists the session token between runs.
//
// A Storage holds a single key, the token. An absent key means the user is
// anonymous. Three backends are provided: a CBOR-encoded file, a SQLite table
// managed through gorm, and an in-memory map for tests.
package session

import (
	"fmt"

	"github.com/docsync/userdocs/pkg/constants"
)

// Storage is durable key-value storage for the session token.
type Storage interface {
	// Load returns the persisted token. ok is false when nothing is stored.
	Load() (token string, ok bool, err error)
	// Save replaces the persisted token.
	Save(token string) error
	// Clear removes the persisted token. Clearing empty storage is not an error.
	Clear() error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the storage named by backend at path.
func Open(backend, path string) (Storage, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStorage(path), nil
	case BackendSQLite:
		return OpenSQLStorage(path)
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", constants.ErrUnknownBackend, backend)
	}
}
