package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// WindowConfig sizes the desktop window
type WindowConfig struct {
	Width  int  `yaml:"width" json:"width"`
	Height int  `yaml:"height" json:"height"`
	Debug  bool `yaml:"debug" json:"debug"` // webview developer tools
}

// ServerConfig configures the external-browser web mode
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// ChartConfig sizes the rendered chart image in pixels
type ChartConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// LoggingConfig selects log level and output format
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // "text" or "json"
}

// Config holds the complete configuration
type Config struct {
	Window    WindowConfig  `yaml:"window" json:"window"`
	Server    ServerConfig  `yaml:"server" json:"server"`
	Chart     ChartConfig   `yaml:"chart" json:"chart"`
	Logging   LoggingConfig `yaml:"logging" json:"logging"`
	Defaults  Params        `yaml:"defaults" json:"defaults"`
	Scenarios []Params      `yaml:"scenarios" json:"scenarios"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal([]byte(preprocessPercentages(string(data))), &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return &config, nil
}

// LoadDefaultConfig loads the configuration embedded in the binary
func LoadDefaultConfig() (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(preprocessPercentages(defaultConfigYAML)), &config); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}
	return &config, nil
}

// LoadConfigOrDefault overlays filename on the embedded defaults.
// A missing file is not an error; the defaults are used as they are.
func LoadConfigOrDefault(filename string) (*Config, error) {
	config, err := LoadDefaultConfig()
	if err != nil {
		return nil, err
	}
	if filename == "" {
		return config, nil
	}
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal([]byte(preprocessPercentages(string(data))), config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return config, nil
}

// Validate checks sizes, logging settings and the default scenario
func (c *Config) Validate() error {
	if c.Window.Width < 400 || c.Window.Height < 300 {
		return fmt.Errorf("window size %dx%d is too small (minimum 400x300)", c.Window.Width, c.Window.Height)
	}
	if c.Chart.Width < 200 || c.Chart.Height < 150 {
		return fmt.Errorf("chart size %dx%d is too small (minimum 200x150)", c.Chart.Width, c.Chart.Height)
	}
	if c.Logging.Level != "" {
		if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json (got %q)", c.Logging.Format)
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	return nil
}

// StartupScenarios returns the scenarios to show at launch: the configured list, or the defaults once
func (c *Config) StartupScenarios() []Params {
	if len(c.Scenarios) == 0 {
		return []Params{c.Defaults}
	}
	return c.Scenarios
}

var percentValue = regexp.MustCompile(`(:\s*)(\d+\.?\d*)%`)

// preprocessPercentages converts percentage values like "8%" to decimal "0.08"
func preprocessPercentages(content string) string {
	return percentValue.ReplaceAllStringFunc(content, func(match string) string {
		parts := percentValue.FindStringSubmatch(match)
		if len(parts) >= 3 {
			num, err := strconv.ParseFloat(parts[2], 64)
			if err == nil {
				return parts[1] + strconv.FormatFloat(num/100.0, 'f', -1, 64)
			}
		}
		return match
	})
}
