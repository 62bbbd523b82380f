package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("VIDTUBE_ACCESS_TOKEN_SECRET", "access")
	t.Setenv("VIDTUBE_REFRESH_TOKEN_SECRET", "refresh")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.AppPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.AppPort)
	}
	if cfg.Store != StoreMongo {
		t.Fatalf("expected default store %q, got %q", StoreMongo, cfg.Store)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("unexpected access ttl %s", cfg.AccessTokenTTL)
	}
	if cfg.WriteTimeout != 60*time.Second {
		t.Fatalf("unexpected write timeout %s", cfg.WriteTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	chdir(t, t.TempDir())
	t.Setenv("VIDTUBE_PORT", "9090")
	t.Setenv("VIDTUBE_STORE", "Postgres")
	t.Setenv("VIDTUBE_FFPROBE_TIMEOUT", "5s")
	t.Setenv("VIDTUBE_S3_BUCKET", "media")
	t.Setenv("VIDTUBE_AUTH_RATE_LIMIT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.AppPort != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.AppPort)
	}
	if cfg.Store != StorePostgres {
		t.Fatalf("expected store to be normalised, got %q", cfg.Store)
	}
	if cfg.FFProbeTimeout != 5*time.Second {
		t.Fatalf("unexpected ffprobe timeout %s", cfg.FFProbeTimeout)
	}
	if cfg.ObjectStore.Bucket != "media" {
		t.Fatalf("unexpected bucket %q", cfg.ObjectStore.Bucket)
	}
	if cfg.AuthRateLimit != 10 {
		t.Fatalf("expected fallback rate limit, got %d", cfg.AuthRateLimit)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("missing secrets", func(t *testing.T) {
		t.Setenv("VIDTUBE_ACCESS_TOKEN_SECRET", "")
		t.Setenv("VIDTUBE_REFRESH_TOKEN_SECRET", "")
		if _, err := Load(); !errors.Is(err, ErrMissingSecret) {
			t.Fatalf("expected ErrMissingSecret, got %v", err)
		}
	})

	t.Run("unknown store", func(t *testing.T) {
		setRequired(t)
		t.Setenv("VIDTUBE_STORE", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for unknown store")
		}
	})
}
