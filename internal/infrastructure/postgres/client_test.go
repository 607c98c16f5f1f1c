package postgres

import (
	"io"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/todo/assets"
	"github.com/fastygo/todo/internal/config"
)

func TestConnString(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db",
		Port:     "5433",
		Name:     "todo",
		User:     "app",
		Password: "secret",
		SSLMode:  "require",
	}
	want := "postgres://app:secret@db:5433/todo?sslmode=require"
	if got := ConnString(cfg); got != want {
		t.Errorf("ConnString() = %q, want %q", got, want)
	}

	cfg.URL = "postgres://override/db"
	if got := ConnString(cfg); got != cfg.URL {
		t.Errorf("expected explicit URL to win, got %q", got)
	}
}

func TestApplyPoolLimits(t *testing.T) {
	pgxCfg, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/todo")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	applyPoolLimits(pgxCfg, config.DatabaseConfig{
		MaxOpenConns:    4,
		MaxIdleConns:    8,
		MaxConnLifetime: time.Minute,
	})

	if pgxCfg.MaxConns != 4 {
		t.Errorf("MaxConns = %d, want 4", pgxCfg.MaxConns)
	}
	if pgxCfg.MinConns != 4 {
		t.Errorf("MinConns = %d, want it capped at 4", pgxCfg.MinConns)
	}
	if pgxCfg.MaxConnLifetime != time.Minute {
		t.Errorf("MaxConnLifetime = %v", pgxCfg.MaxConnLifetime)
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(assets.PostgresMigrations, assets.PostgresMigrationsDir+"/*.up.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	downs, err := fs.Glob(assets.PostgresMigrations, assets.PostgresMigrationsDir+"/*.down.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(ups) == 0 {
		t.Fatal("expected embedded up migrations")
	}
	if len(ups) != len(downs) {
		t.Errorf("got %d up and %d down migrations", len(ups), len(downs))
	}
}

func TestRunMigrationsDisabled(t *testing.T) {
	cfg := &config.Config{Migrations: config.MigrationsConfig{Enabled: false}}
	if err := RunMigrations(cfg, nil); err != nil {
		t.Errorf("expected no-op when disabled, got %v", err)
	}
	if err := RunMigrations(nil, nil); err != nil {
		t.Errorf("expected no-op for nil config, got %v", err)
	}
}

func TestEmbeddedSourceStartsAtInitialSchema(t *testing.T) {
	src, err := embeddedSource()
	if err != nil {
		t.Fatalf("embeddedSource() error = %v", err)
	}
	defer src.Close()

	first, err := src.First()
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if first != 1 {
		t.Fatalf("first version = %d, want 1", first)
	}

	r, _, err := src.ReadUp(first)
	if err != nil {
		t.Fatalf("ReadUp() error = %v", err)
	}
	defer r.Close()
	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	for _, table := range []string{"CREATE TABLE IF NOT EXISTS users", "CREATE TABLE IF NOT EXISTS tasks"} {
		if !strings.Contains(string(body), table) {
			t.Errorf("initial migration missing %q", table)
		}
	}
}
