package config

import (
	"net"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	ServiceName string         `json:"service_name" yaml:"service_name" mapstructure:"service_name" validate:"required"`
	Environment string         `json:"environment" yaml:"environment" mapstructure:"environment" validate:"required"`
	Server      ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
	Upstream    UpstreamConfig `json:"upstream" yaml:"upstream" mapstructure:"upstream"`
	Registry    RegistryConfig `json:"registry" yaml:"registry" mapstructure:"registry"`
	Prompts     PromptsConfig  `json:"prompts" yaml:"prompts" mapstructure:"prompts"`
	Logging     LoggingConfig  `json:"logging" yaml:"logging" mapstructure:"logging"`
	Database    DatabaseConfig `json:"database" yaml:"database" mapstructure:"database"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host            string        `json:"host" yaml:"host" mapstructure:"host"`
	Port            int           `json:"port" yaml:"port" mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `json:"idle_timeout" yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" validate:"gt=0"`
	EnablePprof     bool          `json:"enable_pprof" yaml:"enable_pprof" mapstructure:"enable_pprof"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// UpstreamConfig describes the chat completion endpoint
type UpstreamConfig struct {
	BaseURL string        `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	APIKey  string        `json:"-" yaml:"api_key" mapstructure:"api_key"`
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	Referer string        `json:"referer" yaml:"referer" mapstructure:"referer"`
	Title   string        `json:"title" yaml:"title" mapstructure:"title"`
}

// RegistryConfig locates the active model registry file
type RegistryConfig struct {
	ModelsFile string `json:"models_file" yaml:"models_file" mapstructure:"models_file" validate:"required"`
}

// PromptsConfig controls prompt template lookup and request defaults
type PromptsConfig struct {
	Dir         string `json:"dir" yaml:"dir" mapstructure:"dir"`
	DefaultType string `json:"default_type" yaml:"default_type" mapstructure:"default_type" validate:"required"`
	DefaultLang string `json:"default_lang" yaml:"default_lang" mapstructure:"default_lang" validate:"required"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	Format     string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=json text"`
	Output     string `json:"output" yaml:"output" mapstructure:"output" validate:"required"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb" mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days" mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `json:"compress" yaml:"compress" mapstructure:"compress"`
}

// DatabaseConfig holds the optional MongoDB audit store settings.
// An empty URI disables the audit log.
type DatabaseConfig struct {
	URI     string        `json:"-" yaml:"uri" mapstructure:"uri"`
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
}

// Enabled reports whether a MongoDB URI was configured
func (d DatabaseConfig) Enabled() bool {
	return d.URI != ""
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		ServiceName: "ai-extractor",
		Environment: "development",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Upstream: UpstreamConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Timeout: 30 * time.Second,
			Title:   "AI Extractor",
		},
		Registry: RegistryConfig{
			ModelsFile: "models.json",
		},
		Prompts: PromptsConfig{
			Dir:         "prompts",
			DefaultType: "calendar_event",
			DefaultLang: "en-US",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
		Database: DatabaseConfig{
			Timeout: 10 * time.Second,
		},
	}
}
