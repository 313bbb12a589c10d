package crawler

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultTimeout = 10 // seconds

type ConfigLoader struct {
	configFile string
}

func NewConfigLoader(configFile string) *ConfigLoader {
	return &ConfigLoader{configFile: configFile}
}

func (l *ConfigLoader) Run() (*Config, error) {
	data, err := os.ReadFile(l.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return l.parse(data)
}

func (l *ConfigLoader) parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&config)

	if err := l.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.configFile, err)
	}

	return &config, nil
}

func (l *ConfigLoader) setDefaults(config *Config) {
	if config.Settings.Timeout == 0 {
		config.Settings.Timeout = DefaultTimeout
	}

	config.Keywords = compact(config.Keywords)
	config.Resources = compact(config.Resources)
	config.WebhookURL = strings.TrimSpace(config.WebhookURL)
}

func (l *ConfigLoader) validate(config *Config) error {
	if len(config.Resources) == 0 {
		return fmt.Errorf("at least one resource is required")
	}

	for i, resource := range config.Resources {
		u, err := url.Parse(resource)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid resource URL at index %d: %s", i, resource)
		}
	}

	if config.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	return nil
}

// compact trims entries and drops blank ones
func compact(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
