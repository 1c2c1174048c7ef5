package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"TOPMART_API_URL", "TOPMART_API_TIMEOUT", "TOPMART_RATE_LIMIT", "WORKFLOW_POLLING_INTERVAL", "WORKFLOW_REFRESH_AFTER_MUTATION", "JOURNAL_PATH"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.API.RequestsPerSecond != 10 {
		t.Errorf("RequestsPerSecond = %v", cfg.API.RequestsPerSecond)
	}
	if cfg.Workflow.PollingInterval != 30*time.Second || !cfg.Workflow.RefreshAfterMutation {
		t.Errorf("Unexpected workflow config: %+v", cfg.Workflow)
	}
	if cfg.Database.Path != "reviews.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOPMART_API_URL", "https://api.topmart.io/api")
	t.Setenv("TOPMART_RATE_LIMIT", "2.5")
	t.Setenv("WORKFLOW_POLLING_INTERVAL", "10s")
	t.Setenv("WORKFLOW_REFRESH_AFTER_MUTATION", "false")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "https://api.topmart.io/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestsPerSecond != 2.5 {
		t.Errorf("RequestsPerSecond = %v", cfg.API.RequestsPerSecond)
	}
	if cfg.Workflow.PollingInterval != 10*time.Second {
		t.Errorf("PollingInterval = %v", cfg.Workflow.PollingInterval)
	}
	if cfg.Workflow.RefreshAfterMutation {
		t.Error("RefreshAfterMutation should be false")
	}
	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("TOPMART_API_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid duration")
	}

	t.Setenv("TOPMART_API_TIMEOUT", "")
	t.Setenv("TOPMART_RATE_LIMIT", "fast")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid rate limit")
	}

	t.Setenv("TOPMART_RATE_LIMIT", "")
	t.Setenv("WORKFLOW_POLLING_INTERVAL", "-1s")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-positive polling interval")
	}
}
