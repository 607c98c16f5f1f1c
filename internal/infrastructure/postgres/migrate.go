package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fastygo/todo/assets"
	"github.com/fastygo/todo/internal/config"
)

// RunMigrations brings the schema up to date when enabled in configuration.
// The scripts compiled into the binary are used unless MIGRATIONS_PATH points elsewhere.
func RunMigrations(cfg *config.Config, logger *zap.Logger) error {
	if cfg == nil || !cfg.Migrations.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sqlDB, err := sql.Open("postgres", ConnString(cfg.Database))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := newMigrator(cfg, driver)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("database migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func newMigrator(cfg *config.Config, driver database.Driver) (*migrate.Migrate, error) {
	if cfg.Migrations.Path != "" {
		sourceURL := fmt.Sprintf("file://%s", filepath.ToSlash(cfg.Migrations.Path))
		return migrate.NewWithDatabaseInstance(sourceURL, cfg.Database.Name, driver)
	}

	src, err := embeddedSource()
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", src, cfg.Database.Name, driver)
}

// embeddedSource reads the migration scripts compiled into the binary.
func embeddedSource() (source.Driver, error) {
	return iofs.New(assets.PostgresMigrations, assets.PostgresMigrationsDir)
}
