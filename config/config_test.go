package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"campus-intranet-go/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.RedisDB != 8 || !cfg.SeedData {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.UseRedis() {
		t.Fatal("expected in-memory preferences by default")
	}
	if cfg.Language() != models.LanguageFrench {
		t.Fatalf("expected fr, got %q", cfg.Language())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("DEFAULT_LANGUAGE", "de")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.UseRedis() || cfg.Language() != models.LanguageGerman {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if level, _ := cfg.SlogLevel(); level != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", level)
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("UNIVERSITY_NAME=\"Université Test\"\nSEED_DATA=false\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("UNIVERSITY_NAME")
		os.Unsetenv("SEED_DATA")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UniversityName != "Université Test" || cfg.SeedData {
		t.Fatalf("expected dotenv values, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"REDIS_DB", "not-an-int", "parse env:"},
		{"DEFAULT_LANGUAGE", "it", "DEFAULT_LANGUAGE"},
		{"LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"GIN_MODE", "verbose", "GIN_MODE"},
		{"REDIS_DB", "-1", "REDIS_DB"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}
