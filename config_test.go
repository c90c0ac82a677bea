package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// =============================================================================
// Loading Tests
// =============================================================================

func TestLoadDefaultConfig(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("embedded config is invalid: %v", err)
	}
	if config.Defaults != DefaultParams() {
		t.Errorf("expected %+v, got %+v", DefaultParams(), config.Defaults)
	}
	if config.Window.Width != 1200 || config.Window.Height != 800 {
		t.Errorf("unexpected window %dx%d", config.Window.Width, config.Window.Height)
	}
	if config.Server.Addr != "localhost:0" {
		t.Errorf("unexpected server addr %q", config.Server.Addr)
	}
}

func TestLoadConfigOrDefault_MissingFile(t *testing.T) {
	config, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Defaults != DefaultParams() {
		t.Errorf("expected defaults, got %+v", config.Defaults)
	}
}

func TestLoadConfigOrDefault_Overlay(t *testing.T) {
	path := writeConfigFile(t, `
defaults:
  annual_return: 5%
scenarios:
  - initial_investment: 1000
    yearly_investment: 100
    annual_return: 0.06
    age_started: 30
    max_age: 65
  - initial_investment: 20000
    annual_return: 7.5%
    age_started: 40
    max_age: 70
`)
	config, err := LoadConfigOrDefault(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Defaults.AnnualReturn != 0.05 {
		t.Errorf("expected overridden return 0.05, got %v", config.Defaults.AnnualReturn)
	}
	if config.Defaults.AgeStarted != 22 || config.Window.Width != 1200 {
		t.Errorf("unset values should keep defaults: %+v %+v", config.Defaults, config.Window)
	}
	scenarios := config.StartupScenarios()
	if len(scenarios) != 2 {
		t.Fatalf("expected 2 start-up scenarios, got %d", len(scenarios))
	}
	if scenarios[1].AnnualReturn != 0.075 {
		t.Errorf("expected 0.075, got %v", scenarios[1].AnnualReturn)
	}
}

func TestLoadConfig_ParseError(t *testing.T) {
	path := writeConfigFile(t, "window: [unclosed")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
	if _, err := LoadConfigOrDefault(path); err == nil {
		t.Error("expected parse error from overlay")
	}
}

func TestStartupScenarios_DefaultsWhenEmpty(t *testing.T) {
	config, _ := LoadDefaultConfig()
	scenarios := config.StartupScenarios()
	if len(scenarios) != 1 || scenarios[0] != config.Defaults {
		t.Errorf("expected the defaults once, got %+v", scenarios)
	}
}

func TestPreprocessPercentages(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"annual_return: 8%", "annual_return: 0.08"},
		{"annual_return: 7.5%", "annual_return: 0.075"},
		{"annual_return: 0.08", "annual_return: 0.08"},
		{"title: 100", "title: 100"},
	}

	for _, tc := range tests {
		if got := preprocessPercentages(tc.input); got != tc.expected {
			t.Errorf("preprocessPercentages(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

// =============================================================================
// Validation Tests
// =============================================================================

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		mutate      func(*Config)
		message     string
		description string
	}{
		{func(c *Config) { c.Window.Width = 100 }, "window size", "tiny window"},
		{func(c *Config) { c.Chart.Height = 10 }, "chart size", "tiny chart"},
		{func(c *Config) { c.Logging.Level = "loud" }, "logging.level", "unknown level"},
		{func(c *Config) { c.Logging.Format = "xml" }, "logging.format", "unknown format"},
		{func(c *Config) { c.Defaults.AnnualReturn = 8 }, "defaults", "percent as whole number"},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			config, _ := LoadDefaultConfig()
			tc.mutate(config)
			err := config.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.message) {
				t.Errorf("expected error mentioning %q, got %v", tc.message, err)
			}
		})
	}
}

// =============================================================================
// Logger Tests
// =============================================================================

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggingConfig{Level: "debug", Format: "json"}, &buf)
	logger.WithField("scenario", "abc").Debug("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" || entry["scenario"] != "abc" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	if got := NewLogger(LoggingConfig{Level: "warn"}, nil).GetLevel(); got != logrus.WarnLevel {
		t.Errorf("expected warn, got %v", got)
	}
	if got := NewLogger(LoggingConfig{Level: "bogus"}, nil).GetLevel(); got != logrus.InfoLevel {
		t.Errorf("expected info fallback, got %v", got)
	}

	t.Setenv("LOG_LEVEL", "error")
	if got := NewLogger(LoggingConfig{Level: "debug"}, nil).GetLevel(); got != logrus.ErrorLevel {
		t.Errorf("LOG_LEVEL should override config, got %v", got)
	}
}
