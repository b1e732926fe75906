package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/gateixeira/walletmon/pkg/metrics"
	"gopkg.in/yaml.v3"
)

// MetricCatalog describes metrics ahead of their first use. Every entry is
// optional; unknown metrics still register with their name as help text.
type MetricCatalog struct {
	DefaultBuckets []float64                `yaml:"default_buckets"`
	Metrics        map[string]MetricDetails `yaml:"metrics"`
}

// MetricDetails holds the help text and, for histograms, the bucket bounds
type MetricDetails struct {
	Help    string    `yaml:"help"`
	Buckets []float64 `yaml:"buckets"`
}

// LoadMetricCatalog parses the YAML catalog at path. A missing file yields an
// empty catalog.
func LoadMetricCatalog(path string) (*MetricCatalog, error) {
	catalog := &MetricCatalog{Metrics: map[string]MetricDetails{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return catalog, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metric catalog file: %w", err)
	}

	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("failed to parse metric catalog YAML: %w", err)
	}
	if catalog.Metrics == nil {
		catalog.Metrics = map[string]MetricDetails{}
	}

	if err := catalog.validate(); err != nil {
		return nil, err
	}

	return catalog, nil
}

func (c *MetricCatalog) validate() error {
	if !sort.Float64sAreSorted(c.DefaultBuckets) || hasDuplicates(c.DefaultBuckets) {
		return errors.New("default_buckets must be strictly increasing")
	}
	for name, details := range c.Metrics {
		if !sort.Float64sAreSorted(details.Buckets) || hasDuplicates(details.Buckets) {
			return fmt.Errorf("buckets for %s must be strictly increasing", name)
		}
	}
	return nil
}

func hasDuplicates(sorted []float64) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}

// Options converts the catalog into metrics.Options
func (c *MetricCatalog) Options() metrics.Options {
	opts := metrics.Options{
		DefaultBuckets: c.DefaultBuckets,
		Help:           make(map[string]string, len(c.Metrics)),
		Buckets:        make(map[string][]float64),
	}
	for name, details := range c.Metrics {
		if details.Help != "" {
			opts.Help[name] = details.Help
		}
		if len(details.Buckets) > 0 {
			opts.Buckets[name] = details.Buckets
		}
	}
	return opts
}
