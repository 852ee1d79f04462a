package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"flickrget/pkg/config"
	"flickrget/pkg/logger"
)

// TestHelper provides common test utilities
type TestHelper struct {
	t            *testing.T
	mockServer   *MockFlickrServer
	tempDir      string
	cleanupFuncs []func()
}

// NewTestHelper creates a new test helper
func NewTestHelper(t *testing.T) *TestHelper {
	tempDir, err := os.MkdirTemp("", "flickrget_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	return &TestHelper{
		t:            t,
		tempDir:      tempDir,
		cleanupFuncs: []func(){},
	}
}

// SetupMockServer initializes the mock Flickr server
func (h *TestHelper) SetupMockServer() *MockFlickrServer {
	h.mockServer = NewMockFlickrServer()
	h.AddCleanup(h.mockServer.Close)
	return h.mockServer
}

// GetTempDir returns the temporary directory for test files
func (h *TestHelper) GetTempDir() string {
	return h.tempDir
}

// CreateTempSubDir creates a subdirectory in the temp directory
func (h *TestHelper) CreateTempSubDir(name string) string {
	dir := filepath.Join(h.tempDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		h.t.Fatalf("Failed to create temp subdir: %v", err)
	}
	return dir
}

// AddCleanup adds a cleanup function to be called when the test ends
func (h *TestHelper) AddCleanup(fn func()) {
	h.cleanupFuncs = append(h.cleanupFuncs, fn)
}

// Cleanup runs all cleanup functions
func (h *TestHelper) Cleanup() {
	for i := len(h.cleanupFuncs) - 1; i >= 0; i-- {
		h.cleanupFuncs[i]()
	}
	os.RemoveAll(h.tempDir)
}

// CreateTestLogger creates a test logger
func (h *TestHelper) CreateTestLogger() *logger.TestLogger {
	return logger.NewTestLogger()
}

// CreateTestConfig creates a configuration pointed at the mock server
func (h *TestHelper) CreateTestConfig() *config.Config {
	cfg := config.DefaultConfig()

	// Override for testing
	cfg.Flickr.APIKey = "integration-test-key"
	if h.mockServer != nil {
		cfg.Flickr.Endpoint = h.mockServer.Endpoint()
	}

	cfg.Search.PerPage = 3
	cfg.Output.BaseDirectory = h.CreateTempSubDir("download")
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.Logging.Level = "error"

	// The fetcher logs through the global logger; keep test output quiet
	if err := logger.Initialize(&cfg.Logging); err != nil {
		h.t.Fatalf("Failed to initialize logger: %v", err)
	}

	return cfg
}

// WriteWordList writes a word list file into the temp directory
func (h *TestHelper) WriteWordList(name string, words ...string) string {
	path := filepath.Join(h.tempDir, name)
	content := strings.Join(words, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("Failed to write word list: %v", err)
	}
	return path
}

// AssertFileExists checks if a file exists
func (h *TestHelper) AssertFileExists(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		h.t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func (h *TestHelper) AssertFileNotExists(path string) {
	if _, err := os.Stat(path); err == nil {
		h.t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file holds the expected content
func (h *TestHelper) AssertFileContains(path string, expected []byte) {
	content, err := os.ReadFile(path)
	if err != nil {
		h.t.Errorf("Failed to read file %s: %v", path, err)
		return
	}

	if string(content) != string(expected) {
		h.t.Errorf("File content mismatch for %s: got %d bytes, want %d bytes", path, len(content), len(expected))
	}
}

// AssertDirContainsFiles checks if a directory contains the expected number of files
func (h *TestHelper) AssertDirContainsFiles(dir string, expectedCount int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		h.t.Errorf("Failed to read directory %s: %v", dir, err)
		return
	}

	actualCount := 0
	for _, e := range entries {
		if !e.IsDir() {
			actualCount++
		}
	}

	if actualCount != expectedCount {
		h.t.Errorf("Directory %s contains %d files, expected %d", dir, actualCount, expectedCount)
	}
}

// ReadJSONFile decodes a JSON artifact into the given value
func (h *TestHelper) ReadJSONFile(path string, v interface{}) {
	content, err := os.ReadFile(path)
	if err != nil {
		h.t.Fatalf("Failed to read JSON file %s: %v", path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		h.t.Fatalf("Failed to decode JSON file %s: %v", path, err)
	}
}

// AssertNoError fails the test if err is not nil
func (h *TestHelper) AssertNoError(err error) {
	if err != nil {
		h.t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func (h *TestHelper) AssertError(err error) {
	if err == nil {
		h.t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks if the error message holds the expected substring
func (h *TestHelper) AssertErrorContains(err error, substr string) {
	if err == nil {
		h.t.Fatal("Expected error but got nil")
	}
	if !strings.Contains(err.Error(), substr) {
		h.t.Errorf("Error message '%s' does not contain '%s'", err.Error(), substr)
	}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(expected, actual interface{}) {
	if expected != actual {
		h.t.Errorf("Expected %v, got %v", expected, actual)
	}
}
