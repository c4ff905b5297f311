package config

import (
	"strings"
	"testing"
)

// setRequiredEnv sets the minimum environment for a valid config
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PLANE_API_KEY", "plane-key")
	t.Setenv("PLANE_WORKSPACE_SLUG", "acme")
	t.Setenv("PLANE_BASE_URL", "")
	t.Setenv("PLANE_PROJECT_ID", "")
	t.Setenv("TICKET_PREFIX", "")
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("SLACK_USER_ID", "")
}

func TestFromEnvAndFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := FromEnvAndFlags(false, false, false, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.PlaneBaseURL != "https://api.plane.so/api/v1" {
		t.Errorf("expected default base URL, got %q", cfg.PlaneBaseURL)
	}
	if cfg.TicketPrefix != "DATA" {
		t.Errorf("expected default ticket prefix, got %q", cfg.TicketPrefix)
	}
}

func TestFromEnvAndFlags_MissingPlaneKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PLANE_API_KEY", "")

	_, err := FromEnvAndFlags(false, false, false, false, false)
	if err == nil || !strings.Contains(err.Error(), "PLANE_API_KEY") {
		t.Errorf("expected PLANE_API_KEY error, got %v", err)
	}
}

func TestFromEnvAndFlags_MissingWorkspace(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PLANE_WORKSPACE_SLUG", "")

	_, err := FromEnvAndFlags(false, false, false, false, false)
	if err == nil || !strings.Contains(err.Error(), "PLANE_WORKSPACE_SLUG") {
		t.Errorf("expected PLANE_WORKSPACE_SLUG error, got %v", err)
	}
}

func TestFromEnvAndFlags_SlackRequiresCredentials(t *testing.T) {
	setRequiredEnv(t)

	_, err := FromEnvAndFlags(false, true, false, false, false)
	if err == nil || !strings.Contains(err.Error(), "SLACK_BOT_TOKEN") {
		t.Errorf("expected SLACK_BOT_TOKEN error, got %v", err)
	}

	t.Setenv("SLACK_BOT_TOKEN", "xoxb-token")
	_, err = FromEnvAndFlags(false, true, false, false, false)
	if err == nil || !strings.Contains(err.Error(), "SLACK_USER_ID") {
		t.Errorf("expected SLACK_USER_ID error, got %v", err)
	}

	t.Setenv("SLACK_USER_ID", "U123")
	cfg, err := FromEnvAndFlags(false, true, false, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Slack {
		t.Error("expected Slack flag carried into config")
	}
}

func TestFromEnvAndFlags_QuietDisablesVerbose(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := FromEnvAndFlags(false, false, false, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Verbose {
		t.Error("expected verbose disabled when quiet is set")
	}
	if !cfg.Quiet {
		t.Error("expected quiet set")
	}
}

func TestFromEnvAndFlags_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PLANE_BASE_URL", "https://plane.internal/api/v1")
	t.Setenv("TICKET_PREFIX", "OPS")

	cfg, err := FromEnvAndFlags(true, false, true, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.PlaneBaseURL != "https://plane.internal/api/v1" {
		t.Errorf("expected overridden base URL, got %q", cfg.PlaneBaseURL)
	}
	if cfg.TicketPrefix != "OPS" {
		t.Errorf("expected overridden ticket prefix, got %q", cfg.TicketPrefix)
	}
	if !cfg.AddLinks || !cfg.NoClipboard {
		t.Error("expected flags carried into config")
	}
}
