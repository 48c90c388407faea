// internal/common/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	Report   ReportConfig   `mapstructure:"report"`
	GenAI    GenAIConfig    `mapstructure:"genai"`
	Mail     MailConfig     `mapstructure:"mail"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ReportConfig holds what is generated and when.
type ReportConfig struct {
	City         string `mapstructure:"city"`
	ScheduleTime string `mapstructure:"schedule_time"` // HH:MM
	Timezone     string `mapstructure:"timezone"`
	OutputDir    string `mapstructure:"output_dir"`
}

// Location resolves Timezone, falling back to time.Local.
func (r ReportConfig) Location() (*time.Location, error) {
	if r.Timezone == "" || strings.EqualFold(r.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}

// GenAIConfig selects and configures the generation service.
type GenAIConfig struct {
	Provider     string `mapstructure:"provider"` // "openai" or "gemini"
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	Model        string `mapstructure:"model"`
	Timeout      int    `mapstructure:"timeout"` // milliseconds, 0 = transport default
}

// MailConfig holds the mail service settings. The four SMTP settings may be
// empty at load time; the notifier reports that as a failed send.
type MailConfig struct {
	Transport string `mapstructure:"transport"` // "smtp" or "ses"
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	To        string `mapstructure:"to"` // comma-separated
	AWSRegion string `mapstructure:"aws_region"`
}

// Recipients splits To on commas, dropping blanks.
func (m MailConfig) Recipients() []string {
	var out []string
	for _, addr := range strings.Split(m.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"` // "console", "file" or "" (per command)
	Dir    string `mapstructure:"dir"`
}

// MetricsConfig holds the optional /metrics listener.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
