package cfg

import (
	"os"
	"testing"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestParse_Defaults(t *testing.T) {
	unsetEnv(t, "DB_PATH", "CRAWLER_CONFIG", "SLACK_WEBHOOK_URL", "HTTP_TIMEOUT", "USER_AGENT", "DRY_RUN", "DEBUG")

	cfg, err := parse([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.DBPath != "posted_stories.db" {
		t.Errorf("Expected DB path 'posted_stories.db', got '%s'", cfg.DBPath)
	}
	if cfg.ConfigFile != "./crawler.yml" {
		t.Errorf("Expected config file './crawler.yml', got '%s'", cfg.ConfigFile)
	}
	if cfg.WebhookURL != "" {
		t.Errorf("Expected empty webhook URL, got '%s'", cfg.WebhookURL)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Expected timeout 0 (use config file), got %d", cfg.Timeout)
	}
	if cfg.DryRun || cfg.Debug {
		t.Error("Expected dry run and debug to be disabled")
	}
	if cfg.Version == "" {
		t.Error("Expected version to be set")
	}
}

func TestParse_Flags(t *testing.T) {
	unsetEnv(t, "HTTP_TIMEOUT", "DRY_RUN", "DEBUG")

	cfg, err := parse([]string{
		"--db-path", "/var/lib/crawler/stories.db",
		"--config", "/etc/crawler.yml",
		"--webhook-url", "https://hooks.slack.com/services/T/B/X",
		"--timeout", "5",
		"--user-agent", "News Crawler/1.0",
		"--dry-run",
		"--debug",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.DBPath != "/var/lib/crawler/stories.db" {
		t.Errorf("Unexpected DB path: %s", cfg.DBPath)
	}
	if cfg.ConfigFile != "/etc/crawler.yml" {
		t.Errorf("Unexpected config file: %s", cfg.ConfigFile)
	}
	if cfg.WebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("Unexpected webhook URL: %s", cfg.WebhookURL)
	}
	if cfg.Timeout != 5 {
		t.Errorf("Expected timeout 5, got %d", cfg.Timeout)
	}
	if cfg.UserAgent != "News Crawler/1.0" {
		t.Errorf("Unexpected user agent: %s", cfg.UserAgent)
	}
	if !cfg.DryRun {
		t.Error("Expected dry run to be enabled")
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestParse_Environment(t *testing.T) {
	unsetEnv(t, "HTTP_TIMEOUT", "DRY_RUN", "DEBUG")
	t.Setenv("DB_PATH", "/tmp/env.db")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/env")

	cfg, err := parse([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.DBPath != "/tmp/env.db" {
		t.Errorf("Expected DB path from environment, got '%s'", cfg.DBPath)
	}
	if cfg.WebhookURL != "https://hooks.slack.com/services/env" {
		t.Errorf("Expected webhook URL from environment, got '%s'", cfg.WebhookURL)
	}
}

func TestParse_Invalid(t *testing.T) {
	unsetEnv(t, "HTTP_TIMEOUT")

	if _, err := parse([]string{"--timeout", "-3"}); err == nil {
		t.Error("Expected error for negative timeout")
	}
	if _, err := parse([]string{"--timeout", "soon"}); err == nil {
		t.Error("Expected error for non-numeric timeout")
	}
	if _, err := parse([]string{"--unknown-flag"}); err == nil {
		t.Error("Expected error for unknown flag")
	}
}
