package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	// Test default values
	if config.Flickr.KeyFile != "key.txt" {
		t.Errorf("Expected default key file to be key.txt, got %s", config.Flickr.KeyFile)
	}

	if config.Flickr.Endpoint != DefaultEndpoint {
		t.Errorf("Expected default endpoint to be %s, got %s", DefaultEndpoint, config.Flickr.Endpoint)
	}

	if config.Search.License != 4 {
		t.Errorf("Expected default license to be 4, got %d", config.Search.License)
	}

	if config.Search.PerPage != 500 {
		t.Errorf("Expected default per page to be 500, got %d", config.Search.PerPage)
	}

	if config.Search.StartPage != 1 {
		t.Errorf("Expected default start page to be 1, got %d", config.Search.StartPage)
	}

	if config.Search.MaxPage != 8 {
		t.Errorf("Expected default max page to be 8, got %d", config.Search.MaxPage)
	}

	if config.Search.OriginalSize {
		t.Error("Expected original size to default to false")
	}

	if config.Output.BaseDirectory != "./download" {
		t.Errorf("Expected default output directory to be ./download, got %s", config.Output.BaseDirectory)
	}

	if config.HTTP.Timeout != 30*time.Second {
		t.Errorf("Expected default timeout to be 30s, got %v", config.HTTP.Timeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	// Set test environment variables
	os.Setenv("FLICKRGET_API_KEY", "test-api-key")
	os.Setenv("FLICKRGET_KEY_FILE", "/tmp/test-key.txt")
	os.Setenv("FLICKRGET_ENDPOINT", "http://localhost:9999/rest")
	os.Setenv("FLICKRGET_PER_PAGE", "100")
	os.Setenv("FLICKRGET_LICENSE", "7")
	os.Setenv("FLICKRGET_OUTPUT_DIR", "/tmp/test-download")
	os.Setenv("FLICKRGET_LOG_LEVEL", "debug")

	defer func() {
		// Clean up environment variables
		os.Unsetenv("FLICKRGET_API_KEY")
		os.Unsetenv("FLICKRGET_KEY_FILE")
		os.Unsetenv("FLICKRGET_ENDPOINT")
		os.Unsetenv("FLICKRGET_PER_PAGE")
		os.Unsetenv("FLICKRGET_LICENSE")
		os.Unsetenv("FLICKRGET_OUTPUT_DIR")
		os.Unsetenv("FLICKRGET_LOG_LEVEL")
	}()

	config := DefaultConfig()
	err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	// Test loaded values
	if config.Flickr.APIKey != "test-api-key" {
		t.Errorf("Expected API key to be test-api-key, got %s", config.Flickr.APIKey)
	}

	if config.Flickr.KeyFile != "/tmp/test-key.txt" {
		t.Errorf("Expected key file to be /tmp/test-key.txt, got %s", config.Flickr.KeyFile)
	}

	if config.Flickr.Endpoint != "http://localhost:9999/rest" {
		t.Errorf("Expected endpoint override, got %s", config.Flickr.Endpoint)
	}

	if config.Search.PerPage != 100 {
		t.Errorf("Expected per page to be 100, got %d", config.Search.PerPage)
	}

	if config.Search.License != 7 {
		t.Errorf("Expected license to be 7, got %d", config.Search.License)
	}

	if config.Output.BaseDirectory != "/tmp/test-download" {
		t.Errorf("Expected output directory to be /tmp/test-download, got %s", config.Output.BaseDirectory)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level to be debug, got %s", config.Logging.Level)
	}
}

func TestLoadFromEnvIgnoresInvalidNumbers(t *testing.T) {
	os.Setenv("FLICKRGET_PER_PAGE", "not-a-number")
	defer os.Unsetenv("FLICKRGET_PER_PAGE")

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	if config.Search.PerPage != 500 {
		t.Errorf("Expected per page to keep default 500, got %d", config.Search.PerPage)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return DefaultConfig() }

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "negative license",
			mutate:    func(c *Config) { c.Search.License = -1 },
			wantError: true,
		},
		{
			name:      "zero per page",
			mutate:    func(c *Config) { c.Search.PerPage = 0 },
			wantError: true,
		},
		{
			name:      "per page over API maximum",
			mutate:    func(c *Config) { c.Search.PerPage = 501 },
			wantError: true,
		},
		{
			name:      "zero start page",
			mutate:    func(c *Config) { c.Search.StartPage = 0 },
			wantError: true,
		},
		{
			name:      "zero max page",
			mutate:    func(c *Config) { c.Search.MaxPage = 0 },
			wantError: true,
		},
		{
			name:      "empty output directory",
			mutate:    func(c *Config) { c.Output.BaseDirectory = "" },
			wantError: true,
		},
		{
			name:      "empty endpoint",
			mutate:    func(c *Config) { c.Flickr.Endpoint = "" },
			wantError: true,
		},
		{
			name:      "zero timeout",
			mutate:    func(c *Config) { c.HTTP.Timeout = 0 },
			wantError: true,
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.Level = "chatty" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no validation error, got: %v", err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `flickr:
  key_file: /etc/flickrget/key.txt
search:
  license: 0
  per_page: 50
  start_page: 2
  max_page: 4
output:
  base_directory: /data/photos
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(path); err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if config.Flickr.KeyFile != "/etc/flickrget/key.txt" {
		t.Errorf("Expected key file from config, got %s", config.Flickr.KeyFile)
	}
	if config.Search.License != 0 {
		t.Errorf("Expected license 0, got %d", config.Search.License)
	}
	if config.Search.PerPage != 50 {
		t.Errorf("Expected per page 50, got %d", config.Search.PerPage)
	}
	if config.Search.StartPage != 2 {
		t.Errorf("Expected start page 2, got %d", config.Search.StartPage)
	}
	if config.Output.BaseDirectory != "/data/photos" {
		t.Errorf("Expected output directory /data/photos, got %s", config.Output.BaseDirectory)
	}
	if config.Logging.Level != "warn" {
		t.Errorf("Expected log level warn, got %s", config.Logging.Level)
	}

	// Fields missing from the file keep their defaults
	if config.Flickr.Endpoint != DefaultEndpoint {
		t.Errorf("Expected default endpoint to survive file load, got %s", config.Flickr.Endpoint)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	config := DefaultConfig()
	err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("search: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	config.MergeCommandLineFlags(map[string]interface{}{
		"output":     "/tmp/flags-out",
		"key-file":   "alt-key.txt",
		"license":    0,
		"per-page":   25,
		"start-page": 3,
		"max-page":   5,
		"original":   true,
		"timeout":    45 * time.Second,
		"log-level":  "error",
	})

	if config.Output.BaseDirectory != "/tmp/flags-out" {
		t.Errorf("Expected output directory from flags, got %s", config.Output.BaseDirectory)
	}
	if config.Flickr.KeyFile != "alt-key.txt" {
		t.Errorf("Expected key file from flags, got %s", config.Flickr.KeyFile)
	}
	if config.Search.License != 0 {
		t.Errorf("Expected license 0 from flags, got %d", config.Search.License)
	}
	if config.Search.PerPage != 25 {
		t.Errorf("Expected per page 25 from flags, got %d", config.Search.PerPage)
	}
	if config.Search.StartPage != 3 {
		t.Errorf("Expected start page 3 from flags, got %d", config.Search.StartPage)
	}
	if config.Search.MaxPage != 5 {
		t.Errorf("Expected max page 5 from flags, got %d", config.Search.MaxPage)
	}
	if !config.Search.OriginalSize {
		t.Error("Expected original size true from flags")
	}
	if config.HTTP.Timeout != 45*time.Second {
		t.Errorf("Expected timeout 45s from flags, got %v", config.HTTP.Timeout)
	}
	if config.Logging.Level != "error" {
		t.Errorf("Expected log level error from flags, got %s", config.Logging.Level)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `search:
  per_page: 200
output:
  base_directory: /from/file
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Setenv("FLICKRGET_OUTPUT_DIR", "/from/env")
	defer os.Unsetenv("FLICKRGET_OUTPUT_DIR")

	// Flags beat env, env beats file, file beats defaults.
	config, err := Load(path, map[string]interface{}{
		"start-page": 2,
	})
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Search.PerPage != 200 {
		t.Errorf("Expected per page 200 from file, got %d", config.Search.PerPage)
	}
	if config.Output.BaseDirectory != "/from/env" {
		t.Errorf("Expected output directory from env, got %s", config.Output.BaseDirectory)
	}
	if config.Search.StartPage != 2 {
		t.Errorf("Expected start page 2 from flags, got %d", config.Search.StartPage)
	}
	if config.Search.MaxPage != 8 {
		t.Errorf("Expected default max page 8, got %d", config.Search.MaxPage)
	}
}

func TestLoadRejectsInvalidResult(t *testing.T) {
	_, err := Load("", map[string]interface{}{
		"per-page": 501,
	})
	if err == nil {
		t.Error("Expected validation failure for per page over maximum")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	config := DefaultConfig()
	config.Search.PerPage = 42

	if err := config.Save(path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded := DefaultConfig()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}

	if loaded.Search.PerPage != 42 {
		t.Errorf("Expected per page 42 after round trip, got %d", loaded.Search.PerPage)
	}
}
