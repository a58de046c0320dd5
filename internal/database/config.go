package database

import (
	"fmt"
	"strings"
	"time"
)

// DatabaseConfig holds MongoDB connection configuration
type DatabaseConfig struct {
	// URI includes every connection detail, credentials included
	URI string
	// Environment is normalized to local, development, production or test
	Environment string
	// DatabaseName is derived from the environment and service name
	DatabaseName string
	// AppName is reported to MongoDB for connection tracking
	AppName string
	Timeout time.Duration
}

// NewDatabaseConfig builds the connection settings. The database name is
// {env-prefix}-{service-name}, e.g. "prod-ai-extractor".
func NewDatabaseConfig(uri, environment, serviceName string, timeout time.Duration) *DatabaseConfig {
	environment = strings.ToLower(environment)
	if serviceName == "" {
		serviceName = "ai-extractor"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var envPrefix string
	switch environment {
	case "production", "prod":
		envPrefix = "prod"
		environment = "production"
	case "local":
		envPrefix = "loc"
	case "test":
		envPrefix = "test"
	default:
		// staging and anything unrecognized share the development database
		envPrefix = "dev"
		environment = "development"
	}

	dbServiceName := strings.ReplaceAll(serviceName, "_", "-")
	dbServiceName = strings.TrimPrefix(dbServiceName, "go-")

	return &DatabaseConfig{
		URI:          uri,
		Environment:  environment,
		DatabaseName: fmt.Sprintf("%s-%s", envPrefix, dbServiceName),
		AppName:      serviceName,
		Timeout:      timeout,
	}
}

// MaskSensitiveData returns a copy of the config with credentials masked for logging
func (c *DatabaseConfig) MaskSensitiveData() *DatabaseConfig {
	masked := *c
	at := strings.LastIndex(masked.URI, "@")
	scheme := strings.Index(masked.URI, "//")
	if at > 0 && scheme >= 0 && scheme < at {
		masked.URI = masked.URI[:scheme+2] + "***:***" + masked.URI[at:]
	}
	return &masked
}
