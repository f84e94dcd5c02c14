package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"

	"github.com/docsync/userdocs/pkg/models"
)

// FileStorage keeps the session as a CBOR document in a single file.
type FileStorage struct {
	path string
}

// NewFileStorage returns storage backed by the file at path. The file and its
// directory are created on the first Save.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the location of the session file.
func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) Load() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess models.Session
	if err := cbor.Unmarshal(data, &sess); err != nil {
		return "", false, fmt.Errorf("failed to decode session file %s: %w", s.path, err)
	}
	return sess.Token, sess.Authenticated(), nil
}

// Save writes the session to a temporary file and renames it into place.
func (s *FileStorage) Save(token string) error {
	data, err := cbor.Marshal(models.Session{Token: token})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStorage) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *FileStorage) Close() error {
	return nil
}
