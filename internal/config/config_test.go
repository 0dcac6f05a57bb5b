package config

import (
	"errors"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "jobboard")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SEARCH_BUFFER_METERS", "")
	t.Setenv("SEARCH_REGION_MATCH", "")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "")
	t.Setenv("HIERARCHY_CRON", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Search.BufferMeters != 3000 {
		t.Fatalf("expected buffer 3000, got %v", cfg.Search.BufferMeters)
	}
	if cfg.Search.RegionMatch != RegionMatchAny {
		t.Fatalf("expected region match any, got %q", cfg.Search.RegionMatch)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("expected 15m access expiry, got %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Hierarchy.CronSpec != "@daily" {
		t.Fatalf("expected @daily, got %q", cfg.Hierarchy.CronSpec)
	}
}

func TestLoad_SearchOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SEARCH_BUFFER_METERS", "1500.5")
	t.Setenv("SEARCH_REGION_MATCH", "ALL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Search.BufferMeters != 1500.5 {
		t.Fatalf("expected buffer 1500.5, got %v", cfg.Search.BufferMeters)
	}
	if cfg.Search.RegionMatch != RegionMatchAll {
		t.Fatalf("expected region match all, got %q", cfg.Search.RegionMatch)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("SEARCH_BUFFER_METERS", "far")
	t.Setenv("SEARCH_REGION_MATCH", "some")

	_, err := Load()
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}
