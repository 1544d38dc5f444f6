// Package store provides functionality for storing and retrieving
// application data, such as the preferred statement metrics that are
// pre-selected in a fresh report.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"jwyoo/krx-report/internal/config"
)

var log = config.Logger

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// DefaultPreferredMetrics are the statement accounts drawn by default when
// no metrics file exists: total assets, liabilities, equity, revenue,
// operating profit and net income.
var DefaultPreferredMetrics = []string{
	"자산총계", "부채총계", "자본총계", "매출액", "영업이익", "당기순이익",
}

// metricsConfig is the on-disk YAML shape.
type metricsConfig struct {
	PreferredMetrics []string `yaml:"preferred_metrics"`
}

// MetricsStore manages loading and saving of the preferred-metrics list.
type MetricsStore struct {
	MetricsFile string
}

// NewMetricsStore creates a store for metric preferences. An empty filename
// falls back to "metrics.yaml".
func NewMetricsStore(metricsFile string) *MetricsStore {
	if metricsFile == "" {
		metricsFile = "metrics.yaml"
	}
	return &MetricsStore{MetricsFile: metricsFile}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *MetricsStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "krx-report", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadPreferredMetrics loads the preferred-metrics list from the YAML file.
// A missing file is not an error; the built-in defaults apply.
func (s *MetricsStore) LoadPreferredMetrics() ([]string, error) {
	filePath, err := s.FindConfigFile(s.MetricsFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Metrics file not found: %s, using defaults", s.MetricsFile)
			return append([]string(nil), DefaultPreferredMetrics...), nil
		}
		return nil, fmt.Errorf("error resolving metrics file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading metrics file: %w", err)
	}

	var cfg metricsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing metrics file: %w", err)
	}
	if len(cfg.PreferredMetrics) == 0 {
		return append([]string(nil), DefaultPreferredMetrics...), nil
	}

	log.Debugf("Loaded %d preferred metrics from %s", len(cfg.PreferredMetrics), filePath)
	return cfg.PreferredMetrics, nil
}

// SavePreferredMetrics writes the preferred-metrics list back to the YAML
// file, creating it in the current directory when it does not exist yet.
func (s *MetricsStore) SavePreferredMetrics(metrics []string) error {
	filePath, err := s.FindConfigFile(s.MetricsFile)
	if err != nil {
		filePath = s.MetricsFile
	}

	data, err := yaml.Marshal(metricsConfig{PreferredMetrics: metrics})
	if err != nil {
		return fmt.Errorf("error marshaling metrics: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing metrics file: %w", err)
	}

	log.Debugf("Saved %d preferred metrics to %s", len(metrics), filePath)
	return nil
}
