package storage

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// whitespaceRun matches one or more whitespace characters inside a word.
// Words arrive from user input and word-list files, so embedded spaces,
// tabs and stray newlines all collapse the same way.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Manager handles file output for one directory: JSON artifacts and
// downloaded images. It only ever appends to the tree; nothing is
// tracked across runs.
type Manager struct {
	outputDir string
}

// NewManager creates a storage manager rooted at outputDir, creating the
// directory if it does not exist.
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{outputDir: outputDir}, nil
}

// WordDir creates (if absent) the per-word subdirectory for a word-list
// run and returns a manager rooted there. The directory name is the
// sanitized word.
func (m *Manager) WordDir(word string) (*Manager, error) {
	return NewManager(filepath.Join(m.outputDir, SanitizeWord(word)))
}

// WriteJSON writes a JSON artifact under the managed directory,
// overwriting any previous file of that name.
func (m *Manager) WriteJSON(name string, data []byte) error {
	filename := filepath.Join(m.outputDir, name)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// SaveImage saves image data from the given reader under filename.
// The data goes to a temporary file first and is renamed into place, so
// a failed download never leaves a truncated image behind.
func (m *Manager) SaveImage(r io.Reader, filename string) error {
	target := filepath.Join(m.outputDir, filename)

	tempFile := target + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to save image data: %w", err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, target); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// GetOutputDir returns the managed directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// SanitizeWord turns a search word into a safe file name component:
// surrounding whitespace is dropped and interior whitespace runs become
// a single underscore.
func SanitizeWord(word string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(word), "_")
}

// FileNameFromURL extracts the final path segment of an image URL, the
// name the file is saved under.
func FileNameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL %q: %w", rawURL, err)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("no file name in URL %q", rawURL)
	}

	return name, nil
}
