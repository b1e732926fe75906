package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	// Clear environment variables before test
	os.Clearenv()

	t.Run("with default values", func(t *testing.T) {
		config := NewConfig()

		if config.Vars.MetricsAddr != "127.0.0.1:3000" {
			t.Errorf("Expected MetricsAddr to be 127.0.0.1:3000, got %s", config.Vars.MetricsAddr)
		}
		if config.Vars.LogLevel != "info" {
			t.Errorf("Expected LogLevel to be info, got %s", config.Vars.LogLevel)
		}
		if config.Vars.SlateInboxDir != "./data/inbox" {
			t.Errorf("Expected SlateInboxDir to be ./data/inbox, got %s", config.Vars.SlateInboxDir)
		}
		if config.Catalog == nil {
			t.Error("Expected an empty catalog when the file is missing")
		}
	})

	t.Run("with custom environment values", func(t *testing.T) {
		os.Setenv("METRICS_ADDR", "127.0.0.1:9100")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("ENVIRONMENT", "production")
		os.Setenv("SLATE_INBOX_DIR", "/tmp/inbox")
		defer os.Clearenv()

		config := NewConfig()

		if config.Vars.MetricsAddr != "127.0.0.1:9100" {
			t.Errorf("Expected MetricsAddr to be 127.0.0.1:9100, got %s", config.Vars.MetricsAddr)
		}
		if config.Vars.LogLevel != "debug" {
			t.Errorf("Expected LogLevel to be debug, got %s", config.Vars.LogLevel)
		}
		if !config.IsProduction() {
			t.Error("Expected production environment")
		}
		if config.Vars.SlateInboxDir != "/tmp/inbox" {
			t.Errorf("Expected SlateInboxDir to be /tmp/inbox, got %s", config.Vars.SlateInboxDir)
		}
	})
}

func TestIntervals(t *testing.T) {
	os.Clearenv()

	t.Run("with default values", func(t *testing.T) {
		config := NewConfig()
		assert.Equal(t, 5*time.Second, config.GetSlatePollInterval())
		assert.Equal(t, 10*time.Second, config.GetRuntimeMetricsInterval())
	})

	t.Run("with custom values", func(t *testing.T) {
		os.Setenv("SLATE_POLL_INTERVAL_SECONDS", "30")
		os.Setenv("RUNTIME_METRICS_INTERVAL_SECONDS", "2")
		defer os.Clearenv()

		config := NewConfig()
		assert.Equal(t, 30*time.Second, config.GetSlatePollInterval())
		assert.Equal(t, 2*time.Second, config.GetRuntimeMetricsInterval())
	})
}

func TestGetEnvOrDefault(t *testing.T) {
	os.Clearenv()

	tests := []struct {
		name         string
		key          string
		defaultVal   string
		envVal       string
		expected     string
		shouldSetEnv bool
	}{
		{
			name:         "returns default when env not set",
			key:          "TEST_KEY",
			defaultVal:   "default",
			expected:     "default",
			shouldSetEnv: false,
		},
		{
			name:         "returns env value when set",
			key:          "TEST_KEY",
			defaultVal:   "default",
			envVal:       "custom",
			expected:     "custom",
			shouldSetEnv: true,
		},
		{
			name:         "handles empty default",
			key:          "TEST_KEY",
			defaultVal:   "",
			expected:     "",
			shouldSetEnv: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSetEnv {
				os.Setenv(tt.key, tt.envVal)
				defer os.Unsetenv(tt.key)
			}

			result := getEnvOrDefault(tt.key, tt.defaultVal)
			if result != tt.expected {
				t.Errorf("getEnvOrDefault() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetEnvOrDefaultInt(t *testing.T) {
	os.Clearenv()

	tests := []struct {
		name     string
		envVal   string
		expected int
	}{
		{name: "unset", envVal: "", expected: 7},
		{name: "valid", envVal: "12", expected: 12},
		{name: "not a number", envVal: "abc", expected: 7},
		{name: "zero", envVal: "0", expected: 7},
		{name: "negative", envVal: "-3", expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv("TEST_INT", tt.envVal)
				defer os.Unsetenv("TEST_INT")
			}
			assert.Equal(t, tt.expected, getEnvOrDefaultInt("TEST_INT", 7))
		})
	}
}

func TestLoadMetricCatalog(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file yields empty catalog", func(t *testing.T) {
		catalog, err := LoadMetricCatalog(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Empty(t, catalog.Metrics)
		assert.Empty(t, catalog.DefaultBuckets)
	})

	t.Run("parses help and buckets", func(t *testing.T) {
		path := filepath.Join(dir, "metrics.yaml")
		content := `
default_buckets: [0.1, 1, 10]
metrics:
  slates_sent_total:
    help: Slates written
  slate_bytes:
    help: Slate sizes
    buckets: [256, 1024]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		catalog, err := LoadMetricCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, 1, 10}, catalog.DefaultBuckets)
		assert.Equal(t, "Slates written", catalog.Metrics["slates_sent_total"].Help)

		opts := catalog.Options()
		assert.Equal(t, "Slate sizes", opts.Help["slate_bytes"])
		assert.Equal(t, []float64{256, 1024}, opts.Buckets["slate_bytes"])
		_, hasBuckets := opts.Buckets["slates_sent_total"]
		assert.False(t, hasBuckets)
	})

	t.Run("rejects invalid YAML", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("metrics: [unterminated"), 0o644))

		_, err := LoadMetricCatalog(path)
		assert.Error(t, err)
	})

	t.Run("rejects unsorted buckets", func(t *testing.T) {
		path := filepath.Join(dir, "unsorted.yaml")
		content := "metrics:\n  h:\n    buckets: [5, 1]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := LoadMetricCatalog(path)
		assert.ErrorContains(t, err, "buckets for h")
	})

	t.Run("rejects duplicate default buckets", func(t *testing.T) {
		path := filepath.Join(dir, "dup.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default_buckets: [1, 1]\n"), 0o644))

		_, err := LoadMetricCatalog(path)
		assert.ErrorContains(t, err, "default_buckets")
	})
}

func TestMetricsOptions_NilCatalog(t *testing.T) {
	config := &Config{}
	opts := config.MetricsOptions()
	assert.Empty(t, opts.Help)
	assert.Empty(t, opts.Buckets)
}
