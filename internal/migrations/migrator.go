package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Migrator applies the SQL files in MigrationsDir in version order,
// tracking what has already run in a migrations table.
type Migrator struct {
	DB            *sql.DB
	MigrationsDir string
}

type Migration struct {
	Version   string
	Name      string
	FilePath  string
	AppliedAt *time.Time
}

func NewMigrator(db *sql.DB, migrationsDir string) *Migrator {
	return &Migrator{
		DB:            db,
		MigrationsDir: migrationsDir,
	}
}

func (m *Migrator) ensureMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`
	if _, err := m.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %v", err)
	}
	return nil
}

func (m *Migrator) appliedMigrations() (map[string]Migration, error) {
	rows, err := m.DB.Query(`SELECT version, name, applied_at FROM migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %v", err)
	}
	defer rows.Close()

	applied := make(map[string]Migration)
	for rows.Next() {
		var migration Migration
		if err := rows.Scan(&migration.Version, &migration.Name, &migration.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %v", err)
		}
		applied[migration.Version] = migration
	}
	return applied, rows.Err()
}

func (m *Migrator) pendingMigrations() ([]Migration, error) {
	applied, err := m.appliedMigrations()
	if err != nil {
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(m.MigrationsDir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read migration files: %v", err)
	}

	var pending []Migration
	for _, file := range files {
		version, name := parseMigrationFilename(filepath.Base(file))
		if _, exists := applied[version]; !exists {
			pending = append(pending, Migration{
				Version:  version,
				Name:     name,
				FilePath: file,
			})
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Version < pending[j].Version
	})

	return pending, nil
}

// RunMigrations applies all pending migrations in version order
func (m *Migrator) RunMigrations() error {
	if err := m.ensureMigrationsTable(); err != nil {
		return err
	}

	pending, err := m.pendingMigrations()
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		log.Println("No pending migrations to apply")
		return nil
	}

	log.Printf("Applying %d migrations...", len(pending))
	for _, migration := range pending {
		if err := m.applyMigration(migration); err != nil {
			return fmt.Errorf("failed to apply migration %s: %v", migration.Version, err)
		}
		log.Printf("Applied migration: %s - %s", migration.Version, migration.Name)
	}

	return nil
}

// applyMigration runs one migration file and records it, in a single
// transaction.
func (m *Migrator) applyMigration(migration Migration) error {
	content, err := os.ReadFile(migration.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %v", err)
	}

	tx, err := m.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %v", err)
	}

	if _, err := tx.Exec(`INSERT INTO migrations (version, name) VALUES ($1, $2)`,
		migration.Version, migration.Name); err != nil {
		return fmt.Errorf("failed to record migration: %v", err)
	}

	return tx.Commit()
}

// Status prints applied and pending migrations
func (m *Migrator) Status() error {
	if err := m.ensureMigrationsTable(); err != nil {
		return err
	}

	applied, err := m.appliedMigrations()
	if err != nil {
		return err
	}
	pending, err := m.pendingMigrations()
	if err != nil {
		return err
	}

	fmt.Printf("Applied migrations: %d\n", len(applied))
	for _, migration := range applied {
		fmt.Printf("  %s - %s (applied: %s)\n",
			migration.Version, migration.Name, migration.AppliedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Pending migrations: %d\n", len(pending))
	for _, migration := range pending {
		fmt.Printf("  %s - %s\n", migration.Version, migration.Name)
	}

	return nil
}

// parseMigrationFilename splits "001_create_query_history.sql" into its
// version and name parts.
func parseMigrationFilename(filename string) (version, name string) {
	trimmed := strings.TrimSuffix(filename, ".sql")
	parts := strings.SplitN(trimmed, "_", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return trimmed, trimmed
}
