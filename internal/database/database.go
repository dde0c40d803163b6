package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"brawl-tracker/internal/config"
	"brawl-tracker/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

const busyTimeoutMillis = 5000

//go:embed migrations/*.sql
var embedMigrations embed.FS

// pragmas applied once the pool is open. journal_mode persists in the file.
var pragmas = []string{
	"journal_mode = WAL",
	"synchronous = NORMAL",
	"cache_size = -64000",
	"temp_store = MEMORY",
}

func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	return Open(cfg.DBPath, logger)
}

// Open connects to the sqlite file at path and migrates it.
func Open(path string, logger zerolog.Logger) (*sql.DB, error) {
	logger = logger.With().Str("path", path).Logger()

	// Every pooled connection waits on a locked database instead of failing.
	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_txlock=immediate", path, busyTimeoutMillis)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	for _, pragma := range pragmas {
		if _, err := db.Exec("PRAGMA " + pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set PRAGMA %s: %w", pragma, err)
		}
	}

	version, err := migrate(db)
	if err != nil {
		logger.Error().Err(err).Msg("failed to run migrations")
		db.Close()
		return nil, err
	}

	logger.Info().Int64("schema_version", version).Msg("database ready")
	return db, nil
}

func migrate(db *sql.DB) (int64, error) {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return 0, fmt.Errorf("failed to run goose migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Ping reports whether the database still answers within DatabaseTimeout.
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return db.PingContext(ctx)
}
