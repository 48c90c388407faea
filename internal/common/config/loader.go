// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultCity         = "杭州市"
	DefaultScheduleTime = "08:00"
	DefaultSMTPPort     = 465
	DefaultModel        = "gemini-3-pro-preview"
	DefaultBaseURL      = "https://api.openai.com/v1"
	DefaultOutputDir    = "generated_images"
	DefaultLogDir       = "logs"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	TransportSMTP = "smtp"
	TransportSES  = "ses"
)

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"report.city":             "CITY",
	"report.schedule_time":    "SCHEDULE_TIME",
	"report.timezone":         "SCHEDULE_TIMEZONE",
	"report.output_dir":       "OUTPUT_DIR",
	"genai.provider":          "GENAI_PROVIDER",
	"genai.base_url":          "OPENAI_BASE_URL",
	"genai.api_key":           "OPENAI_API_KEY",
	"genai.gemini_api_key":    "GEMINI_API_KEY",
	"genai.model":             "GENAI_MODEL",
	"genai.timeout":           "GENAI_TIMEOUT_MS",
	"mail.transport":          "MAIL_TRANSPORT",
	"mail.host":               "SMTP_HOST",
	"mail.port":               "SMTP_PORT",
	"mail.user":               "SMTP_USER",
	"mail.password":           "SMTP_PASSWORD",
	"mail.to":                 "EMAIL_TO",
	"mail.aws_region":         "AWS_REGION",
	"logging.level":           "LOG_LEVEL",
	"logging.format":          "LOG_FORMAT",
	"logging.output":          "LOG_OUTPUT",
	"logging.dir":             "LOG_DIR",
	"metrics.addr":            "METRICS_ADDR",
	"database.redis.address":  "REDIS_ADDR",
	"database.redis.password": "REDIS_PASSWORD",
	"database.redis.db":       "REDIS_DB",
}

var scheduleTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Load reads .env, an optional configs/config.yaml and the environment.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	v.SetDefault("report.city", DefaultCity)
	v.SetDefault("report.schedule_time", DefaultScheduleTime)
	v.SetDefault("report.output_dir", DefaultOutputDir)
	v.SetDefault("genai.provider", ProviderOpenAI)
	v.SetDefault("genai.base_url", DefaultBaseURL)
	v.SetDefault("genai.model", DefaultModel)
	v.SetDefault("mail.transport", TransportSMTP)
	v.SetDefault("mail.port", DefaultSMTPPort)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.dir", DefaultLogDir)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads .env from the working directory, its parents or the project root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// applyDefaults fills values that may have been set to empty strings explicitly.
func applyDefaults(cfg *Config) {
	cfg.Report.City = strings.TrimSpace(cfg.Report.City)
	if cfg.Report.City == "" {
		cfg.Report.City = DefaultCity
	}
	cfg.Report.ScheduleTime = strings.TrimSpace(cfg.Report.ScheduleTime)
	if cfg.Report.ScheduleTime == "" {
		cfg.Report.ScheduleTime = DefaultScheduleTime
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = DefaultOutputDir
	}

	cfg.GenAI.Provider = strings.ToLower(strings.TrimSpace(cfg.GenAI.Provider))
	if cfg.GenAI.Provider == "" {
		cfg.GenAI.Provider = ProviderOpenAI
	}
	if cfg.GenAI.BaseURL == "" {
		cfg.GenAI.BaseURL = DefaultBaseURL
	}
	cfg.GenAI.BaseURL = strings.TrimRight(cfg.GenAI.BaseURL, "/")
	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = DefaultModel
	}

	cfg.Mail.Transport = strings.ToLower(strings.TrimSpace(cfg.Mail.Transport))
	if cfg.Mail.Transport == "" {
		cfg.Mail.Transport = TransportSMTP
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = DefaultSMTPPort
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = DefaultLogDir
	}
}

// validateConfig validates fields that would make the service unable to start.
// Missing mail settings are deliberately not checked here.
func validateConfig(cfg *Config) error {
	if !scheduleTimePattern.MatchString(cfg.Report.ScheduleTime) {
		return fmt.Errorf("report.schedule_time must be HH:MM, got %q", cfg.Report.ScheduleTime)
	}
	if _, err := cfg.Report.Location(); err != nil {
		return err
	}

	switch cfg.GenAI.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("genai.provider must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, cfg.GenAI.Provider)
	}
	if cfg.GenAI.Timeout < 0 {
		return fmt.Errorf("genai.timeout must be non-negative")
	}

	switch cfg.Mail.Transport {
	case TransportSMTP, TransportSES:
	default:
		return fmt.Errorf("mail.transport must be %q or %q, got %q", TransportSMTP, TransportSES, cfg.Mail.Transport)
	}
	if cfg.Mail.Port <= 0 || cfg.Mail.Port > 65535 {
		return fmt.Errorf("mail.port must be between 1 and 65535")
	}

	switch cfg.Logging.Output {
	case "", "console", "file":
	default:
		return fmt.Errorf("logging.output must be console or file, got %q", cfg.Logging.Output)
	}

	return nil
}
