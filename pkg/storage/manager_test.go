package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()

	// NewManager creates missing directories
	outputDir := filepath.Join(tempDir, "download")
	manager, err := NewManager(outputDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	if _, err := os.Stat(outputDir); err != nil {
		t.Fatalf("Expected output directory to exist: %v", err)
	}
	if manager.GetOutputDir() != outputDir {
		t.Errorf("Expected output dir %q, got %q", outputDir, manager.GetOutputDir())
	}

	// Test SaveImage
	testData := []byte("test image data")
	if err := manager.SaveImage(bytes.NewReader(testData), "101_abc_m.jpg"); err != nil {
		t.Fatalf("Failed to save image: %v", err)
	}

	// Verify file was created with the right content
	content, err := os.ReadFile(filepath.Join(outputDir, "101_abc_m.jpg"))
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(content, testData) {
		t.Error("File content does not match expected data")
	}

	// No temp file left behind
	if _, err := os.Stat(filepath.Join(outputDir, "101_abc_m.jpg.tmp")); !os.IsNotExist(err) {
		t.Error("Expected temporary file to be gone after save")
	}

	// Saving again overwrites
	newData := []byte("newer image data")
	if err := manager.SaveImage(bytes.NewReader(newData), "101_abc_m.jpg"); err != nil {
		t.Fatalf("Failed to overwrite image: %v", err)
	}
	content, _ = os.ReadFile(filepath.Join(outputDir, "101_abc_m.jpg"))
	if !bytes.Equal(content, newData) {
		t.Error("Expected second save to overwrite the file")
	}
}

func TestWriteJSON(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	data := []byte(`{"stat": "ok"}`)
	if err := manager.WriteJSON("cat_1.json", data); err != nil {
		t.Fatalf("Failed to write JSON: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(manager.GetOutputDir(), "cat_1.json"))
	if err != nil {
		t.Fatalf("Failed to read JSON artifact: %v", err)
	}
	if !bytes.Equal(content, data) {
		t.Error("JSON artifact content does not match")
	}

	// Re-writing the same name replaces the file
	updated := []byte(`{"stat": "fail"}`)
	if err := manager.WriteJSON("cat_1.json", updated); err != nil {
		t.Fatalf("Failed to rewrite JSON: %v", err)
	}
	content, _ = os.ReadFile(filepath.Join(manager.GetOutputDir(), "cat_1.json"))
	if !bytes.Equal(content, updated) {
		t.Error("Expected rewrite to replace the artifact")
	}
}

func TestWordDir(t *testing.T) {
	tempDir := t.TempDir()
	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	sub, err := manager.WordDir(" mountain lake ")
	if err != nil {
		t.Fatalf("Failed to create word dir: %v", err)
	}

	expected := filepath.Join(tempDir, "mountain_lake")
	if sub.GetOutputDir() != expected {
		t.Errorf("Expected word dir %q, got %q", expected, sub.GetOutputDir())
	}
	info, err := os.Stat(expected)
	if err != nil || !info.IsDir() {
		t.Errorf("Expected %q to be a directory", expected)
	}

	// A second call for the same word reuses the directory
	if _, err := manager.WordDir("mountain lake"); err != nil {
		t.Errorf("Expected existing word dir to be reusable: %v", err)
	}
}

func TestSanitizeWord(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"cat", "cat"},
		{" dog", "dog"},
		{"dog ", "dog"},
		{"mountain lake", "mountain_lake"},
		{"mountain  lake", "mountain_lake"},
		{"a\tb\nc", "a_b_c"},
		{"  spaced  out  ", "spaced_out"},
	}

	for _, tt := range tests {
		if got := SanitizeWord(tt.input); got != tt.expected {
			t.Errorf("SanitizeWord(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestFileNameFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
		wantErr  bool
	}{
		{"https://live.staticflickr.com/65535/101_abc_m.jpg", "101_abc_m.jpg", false},
		{"https://live.staticflickr.com/65535/101_abc_o.png?extra=1", "101_abc_o.png", false},
		{"https://example.com/", "", true},
		{"https://example.com", "", true},
	}

	for _, tt := range tests {
		got, err := FileNameFromURL(tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("FileNameFromURL(%q) expected an error, got %q", tt.url, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("FileNameFromURL(%q) unexpected error: %v", tt.url, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("FileNameFromURL(%q) = %q, expected %q", tt.url, got, tt.expected)
		}
	}
}
