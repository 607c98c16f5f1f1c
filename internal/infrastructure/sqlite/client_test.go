package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fastygo/todo/internal/config"
)

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance", "nested", "tasks.db")

	db, err := Open(context.Background(), config.DatabaseConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer Close(db)

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("expected db directory to exist: %v", err)
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "tasks.db", want: "tasks.db?_foreign_keys=1&_busy_timeout=5000"},
		{path: "file:tasks.db?cache=shared", want: "file:tasks.db?cache=shared"},
	}
	for _, tt := range tests {
		if got := dsn(tt.path); got != tt.want {
			t.Errorf("dsn(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
