package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gateixeira/walletmon/pkg/metrics"
)

type Vars struct {
	LogLevel                      string
	Environment                   string
	MetricsAddr                   string
	MetricsCatalogPath            string
	SlateInboxDir                 string
	SlatePollIntervalSeconds      int
	RuntimeMetricsIntervalSeconds int
}

type Config struct {
	Vars    Vars
	Catalog *MetricCatalog
}

// NewConfig reads the environment and the metric catalog
func NewConfig() *Config {
	vars := Vars{
		LogLevel:                      getEnvOrDefault("LOG_LEVEL", "info"),
		Environment:                   getEnvOrDefault("ENVIRONMENT", "development"),
		MetricsAddr:                   getEnvOrDefault("METRICS_ADDR", metrics.DefaultAddr),
		MetricsCatalogPath:            getEnvOrDefault("METRICS_CATALOG_PATH", "config/metrics.yaml"),
		SlateInboxDir:                 getEnvOrDefault("SLATE_INBOX_DIR", "./data/inbox"),
		SlatePollIntervalSeconds:      getEnvOrDefaultInt("SLATE_POLL_INTERVAL_SECONDS", 5),
		RuntimeMetricsIntervalSeconds: getEnvOrDefaultInt("RUNTIME_METRICS_INTERVAL_SECONDS", 10),
	}

	config := &Config{Vars: vars}

	catalog, err := LoadMetricCatalog(vars.MetricsCatalogPath)
	if err != nil {
		panic(fmt.Errorf("failed to load metric catalog: %w", err))
	}
	config.Catalog = catalog

	return config
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt gets an environment variable as a positive integer or returns the default value
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Vars.Environment == "production"
}

// GetSlatePollInterval returns how often the inbox directory is scanned
func (c *Config) GetSlatePollInterval() time.Duration {
	return time.Duration(c.Vars.SlatePollIntervalSeconds) * time.Second
}

// GetRuntimeMetricsInterval returns how often process gauges are refreshed
func (c *Config) GetRuntimeMetricsInterval() time.Duration {
	return time.Duration(c.Vars.RuntimeMetricsIntervalSeconds) * time.Second
}

// MetricsOptions converts the catalog into registry build options
func (c *Config) MetricsOptions() metrics.Options {
	if c.Catalog == nil {
		return metrics.Options{}
	}
	return c.Catalog.Options()
}
