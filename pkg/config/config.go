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

// Config holds all configuration options for flickrget
type Config struct {
	// Flickr API access
	Flickr FlickrConfig `yaml:"flickr" json:"flickr"`

	// Search parameters sent with every query
	Search SearchConfig `yaml:"search" json:"search"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// HTTP transport settings
	HTTP HTTPConfig `yaml:"http" json:"http"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// FlickrConfig holds API access configuration
type FlickrConfig struct {
	// APIKey is usually resolved at run time from the key file, the
	// environment or the credential store rather than written here.
	APIKey    string `yaml:"api_key" json:"api_key"`
	KeyFile   string `yaml:"key_file" json:"key_file"`
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
}

// SearchConfig holds the query parameters for photo searches
type SearchConfig struct {
	License      int  `yaml:"license" json:"license"`
	PerPage      int  `yaml:"per_page" json:"per_page"`
	StartPage    int  `yaml:"start_page" json:"start_page"`
	MaxPage      int  `yaml:"max_page" json:"max_page"`
	OriginalSize bool `yaml:"original_size" json:"original_size"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
	WordSubdirs   bool   `yaml:"word_subdirs" json:"word_subdirs"`
}

// HTTPConfig holds HTTP transport configuration
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultEndpoint is the Flickr REST API endpoint
const DefaultEndpoint = "https://api.flickr.com/services/rest"

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Flickr: FlickrConfig{
			KeyFile:   "key.txt",
			Endpoint:  DefaultEndpoint,
			UserAgent: "flickrget/1.0",
		},
		Search: SearchConfig{
			License:      4,
			PerPage:      500,
			StartPage:    1,
			MaxPage:      8,
			OriginalSize: false,
		},
		Output: OutputConfig{
			BaseDirectory: "./download",
			WordSubdirs:   true,
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if apiKey := os.Getenv("FLICKRGET_API_KEY"); apiKey != "" {
		c.Flickr.APIKey = apiKey
	}
	if keyFile := os.Getenv("FLICKRGET_KEY_FILE"); keyFile != "" {
		c.Flickr.KeyFile = keyFile
	}
	if endpoint := os.Getenv("FLICKRGET_ENDPOINT"); endpoint != "" {
		c.Flickr.Endpoint = endpoint
	}

	if perPage := os.Getenv("FLICKRGET_PER_PAGE"); perPage != "" {
		var val int
		fmt.Sscanf(perPage, "%d", &val)
		if val > 0 {
			c.Search.PerPage = val
		}
	}
	if license := os.Getenv("FLICKRGET_LICENSE"); license != "" {
		var val int
		if n, _ := fmt.Sscanf(license, "%d", &val); n == 1 && val >= 0 {
			c.Search.License = val
		}
	}

	if outputDir := os.Getenv("FLICKRGET_OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}

	if logLevel := os.Getenv("FLICKRGET_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
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
	// Check in order of precedence
	locations := []string{
		".flickrget.yaml",
		".flickrget.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "flickrget", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "flickrget", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".flickrget.yaml"),
		filepath.Join(os.Getenv("HOME"), ".flickrget.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Flickr.Endpoint == "" {
		errs = append(errs, errors.New("API endpoint is required"))
	}

	// Validate search parameters
	if c.Search.License < 0 {
		errs = append(errs, errors.New("license id cannot be negative"))
	}
	if c.Search.PerPage <= 0 {
		errs = append(errs, errors.New("per page must be positive"))
	}
	if c.Search.PerPage > 500 {
		errs = append(errs, errors.New("per page cannot exceed 500"))
	}
	if c.Search.StartPage < 1 {
		errs = append(errs, errors.New("start page must be at least 1"))
	}
	if c.Search.MaxPage < 1 {
		errs = append(errs, errors.New("max page must be at least 1"))
	}

	// Validate output settings
	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	// Validate transport settings
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("HTTP timeout must be positive"))
	}

	// Validate logging
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

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if apiKey, ok := flags["api-key"].(string); ok && apiKey != "" {
		c.Flickr.APIKey = apiKey
	}
	if keyFile, ok := flags["key-file"].(string); ok && keyFile != "" {
		c.Flickr.KeyFile = keyFile
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if license, ok := flags["license"].(int); ok && license >= 0 {
		c.Search.License = license
	}
	if perPage, ok := flags["per-page"].(int); ok && perPage > 0 {
		c.Search.PerPage = perPage
	}
	if startPage, ok := flags["start-page"].(int); ok && startPage > 0 {
		c.Search.StartPage = startPage
	}
	if maxPage, ok := flags["max-page"].(int); ok && maxPage > 0 {
		c.Search.MaxPage = maxPage
	}
	if original, ok := flags["original"].(bool); ok && original {
		c.Search.OriginalSize = true
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout > 0 {
		c.HTTP.Timeout = timeout
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile, ok := flags["log-file"].(string); ok && logFile != "" {
		c.Logging.File = logFile
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".env"))
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".flickrget.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
