// Package migrations embeds the schema and applies it with golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"log/slog"

	"order-core/internal/pkg/errs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

func newMigrator(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, errs.Wrap(err, "open embedded migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, errs.Wrap(err, "create migrator")
	}
	return m, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func Up(databaseURL string, logger *slog.Logger) error {
	return run(databaseURL, logger, "up", func(m *migrate.Migrate) error { return m.Up() })
}

// Down rolls back steps migrations.
func Down(databaseURL string, steps int, logger *slog.Logger) error {
	if steps <= 0 {
		return errs.Newf("down needs a positive step count, got %d", steps)
	}
	return run(databaseURL, logger, "down", func(m *migrate.Migrate) error { return m.Steps(-steps) })
}

// Version reports the applied version and whether the last run left it dirty.
func Version(databaseURL string) (uint, bool, error) {
	m, err := newMigrator(databaseURL)
	if err != nil {
		return 0, false, err
	}
	defer closeMigrator(m, slog.Default())

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errs.Wrap(err, "read schema version")
	}
	return v, dirty, nil
}

func run(databaseURL string, logger *slog.Logger, direction string, fn func(m *migrate.Migrate) error) error {
	m, err := newMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer closeMigrator(m, logger)

	if err := fn(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Schema already current", slog.String("direction", direction))
			return nil
		}
		return errs.Wrapf(err, "migrate %s", direction)
	}

	v, _, _ := m.Version()
	logger.Info("Schema migrated", slog.String("direction", direction), slog.Uint64("version", uint64(v)))
	return nil
}

func closeMigrator(m *migrate.Migrate, logger *slog.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil || dbErr != nil {
		logger.Warn("Failed to close migrator", slog.Any("source_error", srcErr), slog.Any("db_error", dbErr))
	}
}
