package database

import (
	"errors"
	"fmt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"roster/internal/config"
	"roster/internal/model"
)

var (
	// ErrReadFailure marks stored data that exists but could not be read or decoded.
	ErrReadFailure = errors.New("read failure")
	// ErrWriteFailure marks a save that did not reach storage.
	ErrWriteFailure = errors.New("write failure")
)

// Repository persists the whole student collection at once.
//
// Load returns an empty collection and no error when nothing has been stored
// yet. On any other failure it returns whatever records it could recover with
// an error wrapping ErrReadFailure. Save replaces the stored collection; its
// errors wrap ErrWriteFailure.
type Repository interface {
	Load() ([]model.Student, error)
	Save(students []model.Student) error
	Close() error
}

// Open returns the repository selected by cfg.Storage.
func Open(cfg *config.Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Storage {
	case config.StorageSQLite:
		return NewGormRepository(sqlite.Open(cfg.DataFile))
	case config.StoragePostgres:
		return NewGormRepository(postgres.Open(cfg.PostgresDSN()))
	case config.StorageFile:
		return NewFileRepository(cfg.DataFile), nil
	}
	return nil, fmt.Errorf("unsupported storage %q", cfg.Storage)
}
