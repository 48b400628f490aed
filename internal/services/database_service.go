package services

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq" // PostgreSQL driver

	"ms-showtimes/internal/config"
	"ms-showtimes/internal/migrations"
)

// migrationsDir holds the query-history schema files, relative to the
// working directory.
const migrationsDir = "migrations"

// DatabaseService owns the query-history database connection and its
// schema migrations. It is only constructed when DATABASE_HOST is set;
// the rest of the service runs without it.
type DatabaseService struct {
	DB       *sql.DB
	migrator *migrations.Migrator
}

// NewDatabaseService opens the query-history database described by the
// DATABASE_* settings and verifies the connection.
func NewDatabaseService(cfg config.Config) (*DatabaseService, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUser, cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open query-history database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping query-history database: %v", err)
	}

	log.Printf("Connected to query-history database: %s", cfg.DatabaseName)

	return &DatabaseService{
		DB:       db,
		migrator: migrations.NewMigrator(db, migrationsDir),
	}, nil
}

func (d *DatabaseService) Close() error {
	return d.DB.Close()
}

// CheckConnection verifies the database is reachable, for readiness probes
func (d *DatabaseService) CheckConnection() error {
	return d.DB.Ping()
}

// RunMigrations applies all pending query-history migrations
func (d *DatabaseService) RunMigrations() error {
	return d.migrator.RunMigrations()
}

// MigrationStatus shows current migration status
func (d *DatabaseService) MigrationStatus() error {
	return d.migrator.Status()
}
