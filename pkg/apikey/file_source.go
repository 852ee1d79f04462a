package apikey

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FileSource reads the API key from the first line of a key file. This is
// the primary source; the default path is key.txt next to the binary.
type FileSource struct {
	path string
}

// NewFileSource creates a key source backed by the given file path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name identifies the source
func (f *FileSource) Name() string {
	return fmt.Sprintf("key file %s", f.path)
}

// Resolve reads the first line of the key file, trimmed of surrounding
// whitespace. A missing file means the source has no key; an existing
// file that is unreadable or has an empty first line is an error.
func (f *FileSource) Resolve() (string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to open key file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read key file: %w", err)
		}
		return "", fmt.Errorf("key file %s is empty", f.path)
	}

	key := strings.TrimSpace(scanner.Text())
	if key == "" {
		return "", fmt.Errorf("key file %s has an empty first line", f.path)
	}

	return key, nil
}

// Store is not supported; the key file is owned by the user
func (f *FileSource) Store(key string) error {
	return ErrSourceReadOnly
}

// Delete is not supported; the key file is owned by the user
func (f *FileSource) Delete() error {
	return ErrSourceReadOnly
}
