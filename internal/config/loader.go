package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key read from the environment
const EnvPrefix = "RELAY"

// envAliases binds the bare variable names deployments already use
var envAliases = map[string]string{
	"server.port":          "PORT",
	"upstream.api_key":     "OPENROUTER_API_KEY",
	"upstream.base_url":    "OPENROUTER_BASE_URL",
	"registry.models_file": "MODELS_FILE",
	"prompts.dir":          "PROMPTS_DIR",
	"database.uri":         "MONGODB_URI",
	"logging.level":        "LOG_LEVEL",
	"logging.format":       "LOG_FORMAT",
	"logging.output":       "LOG_OUTPUT",
	"environment":          "ENVIRONMENT",
	"service_name":         "SERVICE_NAME",
}

// Loader handles loading configuration from multiple sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range envAliases {
		// Explicit names are not prefixed, so the prefixed form is listed first
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, prefixed, alias)
	}

	return &Loader{v: v}
}

// LoadConfig loads configuration from multiple sources in priority order:
// 1. Environment variables (highest priority)
// 2. Configuration file (config.yaml in the given paths)
// 3. Default values (lowest priority)
func (l *Loader) LoadConfig(configPaths ...string) (*Config, error) {
	if len(configPaths) == 0 {
		configPaths = []string{".", "./config"}
	}
	for _, path := range configPaths {
		l.v.AddConfigPath(path)
	}
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ConfigFileUsed returns the path of the config file that was read, or ""
// when only defaults and the environment were used
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// setDefaults seeds viper from DefaultConfig so every key is known to
// AutomaticEnv during Unmarshal
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("service_name", d.ServiceName)
	v.SetDefault("environment", d.Environment)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.enable_pprof", d.Server.EnablePprof)

	v.SetDefault("upstream.base_url", d.Upstream.BaseURL)
	v.SetDefault("upstream.api_key", d.Upstream.APIKey)
	v.SetDefault("upstream.timeout", d.Upstream.Timeout)
	v.SetDefault("upstream.referer", d.Upstream.Referer)
	v.SetDefault("upstream.title", d.Upstream.Title)

	v.SetDefault("registry.models_file", d.Registry.ModelsFile)

	v.SetDefault("prompts.dir", d.Prompts.Dir)
	v.SetDefault("prompts.default_type", d.Prompts.DefaultType)
	v.SetDefault("prompts.default_lang", d.Prompts.DefaultLang)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", d.Logging.Compress)

	v.SetDefault("database.uri", d.Database.URI)
	v.SetDefault("database.timeout", d.Database.Timeout)
}

// GetConfigExample returns an example configuration file content
func GetConfigExample() string {
	return `# AI Extractor configuration
service_name: "ai-extractor"
environment: "development"

server:
  host: "0.0.0.0"
  port: 8000
  read_timeout: "30s"
  write_timeout: "60s"
  idle_timeout: "120s"
  shutdown_timeout: "15s"
  enable_pprof: false

upstream:
  base_url: "https://openrouter.ai/api/v1"
  timeout: "30s"
  title: "AI Extractor"

registry:
  models_file: "models.json"

prompts:
  dir: "prompts"
  default_type: "calendar_event"
  default_lang: "en-US"

logging:
  level: "info"
  format: "json"
  output: "stdout"

database:
  timeout: "10s"
`
}
