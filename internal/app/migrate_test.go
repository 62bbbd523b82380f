package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestSQLFilesSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_videos.sql", "README.md", "0001_users.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive.sql"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := sqlFiles(dir)
	if err != nil {
		t.Fatalf("sqlFiles() error = %v", err)
	}
	want := []string{"0001_users.sql", "0002_videos.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sqlFiles() = %v, want %v", got, want)
	}

	if _, err := sqlFiles(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestPendingMigrations(t *testing.T) {
	files := []string{"0001.sql", "0002.sql", "0003.sql"}
	applied := map[string]struct{}{"0001.sql": {}, "0003.sql": {}}
	if got := pendingMigrations(files, applied); !reflect.DeepEqual(got, []string{"0002.sql"}) {
		t.Fatalf("pendingMigrations() = %v", got)
	}
	if got := pendingMigrations(files[:1], applied); len(got) != 0 {
		t.Fatalf("expected nothing pending, got %v", got)
	}
}

func TestSeedFileName(t *testing.T) {
	if got := seedFileName("dev"); got != "dev_seed.sql" {
		t.Fatalf("seedFileName(dev) = %q", got)
	}
	if got := seedFileName("custom.sql"); got != "custom.sql" {
		t.Fatalf("seedFileName(custom.sql) = %q", got)
	}
}

func TestResolveDir(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "migrations")
	if got, err := resolveDir(abs); err != nil || got != abs {
		t.Fatalf("resolveDir(abs) = %q, %v", got, err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if got, err := resolveDir("migrations"); err != nil || got != filepath.Join(wd, "migrations") {
		t.Fatalf("resolveDir(rel) = %q, %v", got, err)
	}
}

func TestMigrationBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 0},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{10, migrationMaxBackoff},
		{80, migrationMaxBackoff},
	}
	for _, tt := range tests {
		if got := migrationBackoff(tt.attempt); got != tt.want {
			t.Errorf("migrationBackoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestShouldRetryMigration(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", fmt.Errorf("exec: %w", context.DeadlineExceeded), true},
		{"tx closed", pgx.ErrTxClosed, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"wrapped deadlock", fmt.Errorf("apply: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldRetryMigration(tt.err); got != tt.want {
				t.Fatalf("shouldRetryMigration() = %v, want %v", got, tt.want)
			}
		})
	}
}
