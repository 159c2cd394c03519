package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okhv/focal/internal/models"
)

// Open opens (or creates) the SQLite database at path and runs migrations.
// An empty path resolves to the default location under the user's home dir.
func Open(path string) (*gorm.DB, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create focal directory: %w", err)
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(gdb); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return gdb, nil
}

// OpenInMemory opens a throwaway in-memory database, used by tests.
func OpenInMemory() (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	if err := migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// DefaultPath returns the path to the SQLite database file
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".focal", "focal.db"), nil
}

// migrate creates/updates the database schema
func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.Project{},
		&models.Session{},
		&models.Event{},
		&models.DriftEntry{},
		&models.Distraction{},
	)
}

// Close closes the underlying database connection.
func Close(gdb *gorm.DB) error {
	if gdb != nil {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
