package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/articles-api/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

//go:embed sqlite_schema.sql
var sqliteSchema string

// Migrate brings the schema of the configured database up to date.
//
// Postgres uses tern with the embedded migrations/ directory, tracking the
// version in schema_version. SQLite applies the idempotent embedded schema.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return migratePostgres(ctx, logger, cfg)
	case config.DriverSQLite:
		db, err := NewSQLite(ctx, cfg.Database.Path, logger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.MigrateSQLite(ctx)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func migratePostgres(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	// A single connection is enough for a one-time action.
	conn, err := pgx.Connect(ctx, DSN(cfg.Database))
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

// MigrateSQLite applies the SQLite schema on an open handle.
// Tests and in-memory databases call it directly since the schema lives on the connection.
func (db *Database) MigrateSQLite(ctx context.Context) error {
	if db.SQL == nil {
		return fmt.Errorf("MigrateSQLite called on %s database", db.Driver)
	}
	if _, err := db.SQL.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("applying sqlite schema: %w", err)
	}
	db.log.Info().Msg("sqlite schema applied")
	return nil
}
