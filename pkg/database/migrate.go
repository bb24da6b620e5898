package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"yamdb/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/tern/v2/migrate"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const versionTable = "schema_version"

// Migrations returns the embedded migration files rooted at their directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(migrations, "migrations")
}

// Migrate brings the schema to the latest version over a dedicated connection.
func Migrate(ctx context.Context, config utils.DatabaseConfig, log *zap.Logger) error {
	return MigrateURL(ctx, ConnString(config), log)
}

// MigrateURL is Migrate for a ready connection string.
func MigrateURL(ctx context.Context, connString string, log *zap.Logger) error {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("connect for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := migrate.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("construct migrator: %w", err)
	}

	subtree, err := Migrations()
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	m.OnStart = func(sequence int32, name, direction, _ string) {
		log.Info("Applying migration",
			zap.Int32("sequence", sequence),
			zap.String("name", name),
			zap.String("direction", direction),
		)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	to := int32(len(m.Migrations))
	if from == to {
		log.Info("Database schema up to date", zap.Int32("version", to))
	} else {
		log.Info("Database schema migrated", zap.Int32("from", from), zap.Int32("to", to))
	}

	return nil
}
