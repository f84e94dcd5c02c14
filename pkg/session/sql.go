package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/docsync/userdocs/pkg/constants"
)

// Entry is a row of the key-value table backing SQLStorage.
type Entry struct {
	Name  string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// TableName overrides the gorm default.
func (Entry) TableName() string {
	return "session_entries"
}

// SQLStorage keeps the session in a SQLite database.
type SQLStorage struct {
	db *gorm.DB
}

// OpenSQLStorage opens (and migrates) the SQLite database at path.
// Use ":memory:" for a throwaway database.
func OpenSQLStorage(path string) (*SQLStorage, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	// An in-memory database exists per connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Entry{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate session table: %w", err)
	}

	return &SQLStorage{db: db}, nil
}

func (s *SQLStorage) Load() (string, bool, error) {
	var entry Entry
	err := s.db.First(&entry, "name = ?", constants.SessionTokenKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load session: %w", err)
	}
	return entry.Value, entry.Value != "", nil
}

func (s *SQLStorage) Save(token string) error {
	entry := Entry{Name: constants.SessionTokenKey, Value: token}
	if err := s.db.Save(&entry).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SQLStorage) Clear() error {
	if err := s.db.Delete(&Entry{}, "name = ?", constants.SessionTokenKey).Error; err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SQLStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
