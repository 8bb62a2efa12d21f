package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the blog image crawler
type Config struct {
	// Blogger API settings
	Blogger BloggerConfig `yaml:"blogger" json:"blogger"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// BloggerConfig holds Blogger API configuration
type BloggerConfig struct {
	APIBase string        `yaml:"api_base" json:"api_base"`
	APIKey  string        `yaml:"api_key" json:"api_key"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig holds download destination configuration
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Blogger: BloggerConfig{
			APIBase: "https://www.googleapis.com/blogger/v3",
			Timeout: 30 * time.Second,
		},
		Output: OutputConfig{
			Directory: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() {
	if apiKey := os.Getenv("BLOGLINKS_API_KEY"); apiKey != "" {
		c.Blogger.APIKey = apiKey
	}
	if apiBase := os.Getenv("BLOGLINKS_API_BASE"); apiBase != "" {
		c.Blogger.APIBase = apiBase
	}
	if timeout := os.Getenv("BLOGLINKS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			c.Blogger.Timeout = d
		}
	}
	if outputDir := os.Getenv("BLOGLINKS_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}
	if logLevel := os.Getenv("BLOGLINKS_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".bloglinks.yaml",
		".bloglinks.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "bloglinks", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "bloglinks", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".bloglinks.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// MergeCommandLineFlags merges command line values into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if apiKey, ok := flags["api-key"].(string); ok && apiKey != "" {
		c.Blogger.APIKey = apiKey
	}
	if apiBase, ok := flags["api-base"].(string); ok && apiBase != "" {
		c.Blogger.APIBase = apiBase
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Blogger.APIBase == "" {
		errs = append(errs, errors.New("Blogger API base URL is required"))
	}
	if c.Blogger.APIKey == "" {
		errs = append(errs, errors.New("Blogger API key is required"))
	}
	if c.Blogger.Timeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Load loads configuration from all sources with proper precedence:
// defaults < config file < environment < command line flags.
func Load(configFile string, flags map[string]interface{}) (*Config, error) {
	// Load .env files if present; missing files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".bloglinks.env"))

	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(configFile); err != nil {
		return nil, err
	}

	cfg.LoadFromEnv()
	cfg.MergeCommandLineFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
