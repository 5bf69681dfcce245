package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:       "./test.db",
		SourcesDir:   "./sources",
		Port:         "8080",
		APIAccessKey: "test-key",
		WorkerCount:  5,
		ItemLimit:    5,
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUsername: "digest@example.com",
		SMTPPassword: "test-password",
		SenderEmail:  "digest@example.com",
		SendAt:       "11:00",
		SendTimeout:  30,
		UserAgent:    "Test Agent",
		Timezone:     "UTC",
		Debug:        true,
		Version:      "test-version",
	}

	if cfg.DBPath != "./test.db" {
		t.Errorf("Expected DB path './test.db', got '%s'", cfg.DBPath)
	}
	if cfg.SourcesDir != "./sources" {
		t.Errorf("Expected sources dir './sources', got '%s'", cfg.SourcesDir)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("Expected worker count 5, got %d", cfg.WorkerCount)
	}
	if cfg.ItemLimit != 5 {
		t.Errorf("Expected item limit 5, got %d", cfg.ItemLimit)
	}
	if cfg.SMTPHost != "smtp.example.com" {
		t.Errorf("Expected SMTP host 'smtp.example.com', got '%s'", cfg.SMTPHost)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("Expected SMTP port 587, got %d", cfg.SMTPPort)
	}
	if cfg.SenderEmail != "digest@example.com" {
		t.Errorf("Expected sender 'digest@example.com', got '%s'", cfg.SenderEmail)
	}
	if cfg.SendAt != "11:00" {
		t.Errorf("Expected send time '11:00', got '%s'", cfg.SendAt)
	}
	if cfg.SendTimeout != 30 {
		t.Errorf("Expected send timeout 30, got %d", cfg.SendTimeout)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}
