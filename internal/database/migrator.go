package database

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"time"

	"go.uber.org/zap"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationsFS embed.FS

type Migrator struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger
}

func NewMigrator(db *sql.DB, dialect Dialect, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, dialect: dialect, logger: logger}
}

func (m *Migrator) Run() error {
	// Create migrations table if it doesn't exist
	if err := m.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dir := path.Join("migrations", string(m.dialect))
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		migrationName := entry.Name()

		applied, err := m.isMigrationApplied(migrationName)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}

		if applied {
			m.logger.Debug("migration already applied", zap.String("name", migrationName))
			continue
		}

		migrationSQL, err := migrationsFS.ReadFile(path.Join(dir, migrationName))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", migrationName, err)
		}

		m.logger.Info("applying migration", zap.String("name", migrationName))

		tx, err := m.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if _, err := tx.Exec(string(migrationSQL)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", migrationName, err)
		}

		if _, err := tx.Exec(
			m.dialect.Rebind("INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)"),
			migrationName, time.Now().UTC(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", migrationName, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", migrationName, err)
		}
	}

	return nil
}

func (m *Migrator) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		)
	`
	_, err := m.db.Exec(query)
	return err
}

func (m *Migrator) isMigrationApplied(name string) (bool, error) {
	var count int
	err := m.db.QueryRow(
		m.dialect.Rebind("SELECT COUNT(*) FROM schema_migrations WHERE name = ?"),
		name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
