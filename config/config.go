// Package config holds the daemon configuration: defaults, an optional YAML file and BTAUDIO_*
// environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ugparu/btaudio/leaudio/catalog"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable pointing to the YAML configuration file.
const EnvConfigFile = "BTAUDIO_CONFIG"

// Config holds all daemon configuration.
type Config struct {
	// HTTP server
	HTTPAddr    string `yaml:"http_addr"`
	EnablePprof bool   `yaml:"enable_pprof"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // "text" or "json"

	// A2DP codec factory, codecs in priority order
	FactoryName string   `yaml:"factory_name"`
	Codecs      []string `yaml:"codecs"`

	// LE audio catalog, empty paths select the built-in catalog
	CatalogConfigurations string `yaml:"catalog_configurations"`
	CatalogScenarios      string `yaml:"catalog_scenarios"`
	CodecLocation         string `yaml:"codec_location"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTTPAddr:      ":8080",
		LogLevel:      "info",
		LogFormat:     "text",
		FactoryName:   "Offload",
		Codecs:        []string{"aac", "sbc"},
		CodecLocation: string(catalog.LocationHost),
	}
}

// Load returns the defaults, overridden by the file named in BTAUDIO_CONFIG when set, then by
// BTAUDIO_* environment variables.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit configuration file. An empty path falls back to
// BTAUDIO_CONFIG.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadFile returns the defaults overridden by a YAML file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = getEnv("BTAUDIO_HTTP_ADDR", c.HTTPAddr)
	c.EnablePprof = getBoolEnv("BTAUDIO_ENABLE_PPROF", c.EnablePprof)
	c.LogLevel = getEnv("BTAUDIO_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("BTAUDIO_LOG_FORMAT", c.LogFormat)
	c.FactoryName = getEnv("BTAUDIO_FACTORY_NAME", c.FactoryName)
	c.Codecs = getListEnv("BTAUDIO_CODECS", c.Codecs)
	c.CatalogConfigurations = getEnv("BTAUDIO_CATALOG_CONFIGURATIONS", c.CatalogConfigurations)
	c.CatalogScenarios = getEnv("BTAUDIO_CATALOG_SCENARIOS", c.CatalogScenarios)
	c.CodecLocation = getEnv("BTAUDIO_CODEC_LOCATION", c.CodecLocation)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("http_addr is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log_format %q (supported: text, json)", c.LogFormat)
	}
	if len(c.Codecs) == 0 {
		return errors.New("at least one codec is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// Location returns the parsed codec location.
func (c *Config) Location() (catalog.Location, error) {
	return catalog.ParseLocation(c.CodecLocation)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
