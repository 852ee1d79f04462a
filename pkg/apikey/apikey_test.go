package apikey

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolverChain(t *testing.T) {
	first := NewMockSource("first")
	second := NewMockSource("second")
	second.SetKey("key_from_second_source")

	resolver := NewMockResolver(first, second)

	// First source is empty, so the second one supplies the key
	key, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve key: %v", err)
	}
	if key != "key_from_second_source" {
		t.Errorf("Key mismatch: got %s, want key_from_second_source", key)
	}

	// An earlier source wins once it has a key
	first.SetKey("key_from_first_source")
	key, err = resolver.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve key: %v", err)
	}
	if key != "key_from_first_source" {
		t.Errorf("Key mismatch: got %s, want key_from_first_source", key)
	}
}

func TestResolverChainExhausted(t *testing.T) {
	resolver := NewMockResolver(NewMockSource("a"), NewMockSource("b"))

	_, err := resolver.Resolve()
	if err == nil {
		t.Fatal("Expected error when no source has a key")
	}
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestResolverChainStopsOnFatalError(t *testing.T) {
	broken := NewMockSource("broken")
	broken.SetResolveError(fmt.Errorf("permission denied"))

	fallback := NewMockSource("fallback")
	fallback.SetKey("should_not_be_reached")

	resolver := NewMockResolver(broken, fallback)

	// A source that fails for any reason other than a missing key stops
	// the chain; falling through could mask a misconfigured key file.
	_, err := resolver.Resolve()
	if err == nil {
		t.Fatal("Expected error from broken source")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("Error should name the failing source, got %v", err)
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("Error should carry the cause, got %v", err)
	}
}

func TestResolverStore(t *testing.T) {
	readonly := NewMockSource("readonly")
	readonly.SetStoreError(ErrSourceReadOnly)
	writable := NewMockSource("writable")

	resolver := NewMockResolver(readonly, writable)

	err := resolver.Store("stored_key_1234")
	if err != nil {
		t.Fatalf("Failed to store key: %v", err)
	}

	// The read-only source is skipped, the writable one holds the key
	key, err := writable.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve stored key: %v", err)
	}
	if key != "stored_key_1234" {
		t.Errorf("Key mismatch: got %s, want stored_key_1234", key)
	}
}

func TestResolverStoreRejectsInvalidKey(t *testing.T) {
	writable := NewMockSource("writable")
	resolver := NewMockResolver(writable)

	for _, key := range []string{"", "short", "has space_in_it"} {
		if err := resolver.Store(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Store(%q) = %v, want ErrInvalidKey", key, err)
		}
	}

	if _, err := writable.Resolve(); !errors.Is(err, ErrKeyNotFound) {
		t.Error("No key should have been stored")
	}
}

func TestResolverStoreNoWritableSource(t *testing.T) {
	readonly := NewMockSource("readonly")
	readonly.SetStoreError(ErrSourceReadOnly)

	resolver := NewMockResolver(readonly)

	if err := resolver.Store("valid_key_1234"); err == nil {
		t.Error("Expected error when no source is writable")
	}
}

func TestResolverDelete(t *testing.T) {
	readonly := NewMockSource("readonly")
	readonly.SetDeleteError(ErrSourceReadOnly)

	first := NewMockSource("first")
	first.SetKey("key_in_first_9999")
	second := NewMockSource("second")
	second.SetKey("key_in_second_9999")

	resolver := NewMockResolver(readonly, first, second)

	// Delete clears every writable source that holds the key
	if err := resolver.Delete(); err != nil {
		t.Fatalf("Failed to delete key: %v", err)
	}
	if _, err := first.Resolve(); !errors.Is(err, ErrKeyNotFound) {
		t.Error("First source should be empty after delete")
	}
	if _, err := second.Resolve(); !errors.Is(err, ErrKeyNotFound) {
		t.Error("Second source should be empty after delete")
	}

	// Nothing left to delete
	if err := resolver.Delete(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound on second delete, got %v", err)
	}
}

func TestResolverSources(t *testing.T) {
	resolver := NewMockResolver(NewMockSource("alpha"), NewMockSource("beta"))

	names := resolver.Sources()
	if len(names) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(names))
	}
	if names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("Sources out of order: %v", names)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	// The key is the first line, trimmed; anything after it is ignored
	path := filepath.Join(dir, "key.txt")
	content := "  abcdef1234567890  \nsecond line is a comment\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource(path)
	key, err := source.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve key from file: %v", err)
	}
	if key != "abcdef1234567890" {
		t.Errorf("Key mismatch: got %q, want abcdef1234567890", key)
	}

	// The file belongs to the user; the source never writes it
	if err := source.Store("new_key_1234"); !errors.Is(err, ErrSourceReadOnly) {
		t.Errorf("Store = %v, want ErrSourceReadOnly", err)
	}
	if err := source.Delete(); !errors.Is(err, ErrSourceReadOnly) {
		t.Errorf("Delete = %v, want ErrSourceReadOnly", err)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "absent.txt"))

	// A missing key file just means this source has nothing; the
	// resolver moves on to the next source.
	if _, err := source.Resolve(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound for missing file, got %v", err)
	}
}

func TestFileSourceEmptyFile(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"empty.txt":      "",
		"blank_line.txt": "   \nreal_key_after_blank\n",
	}

	for name, content := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		// An existing but useless key file is a configuration error,
		// not a missing key
		_, err := NewFileSource(path).Resolve()
		if err == nil {
			t.Errorf("%s: expected error for empty key", name)
			continue
		}
		if errors.Is(err, ErrKeyNotFound) {
			t.Errorf("%s: empty key file should not report ErrKeyNotFound", name)
		}
	}
}

func TestEnvSource(t *testing.T) {
	t.Setenv(EnvKeyVariable, "  env_key_1234567890  ")

	source := NewEnvSource()
	key, err := source.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve key from environment: %v", err)
	}
	if key != "env_key_1234567890" {
		t.Errorf("Key mismatch: got %q, want env_key_1234567890", key)
	}

	if err := source.Store("x"); !errors.Is(err, ErrSourceReadOnly) {
		t.Errorf("Store = %v, want ErrSourceReadOnly", err)
	}
	if err := source.Delete(); !errors.Is(err, ErrSourceReadOnly) {
		t.Errorf("Delete = %v, want ErrSourceReadOnly", err)
	}
}

func TestEnvSourceUnset(t *testing.T) {
	t.Setenv(EnvKeyVariable, "")

	if _, err := NewEnvSource().Resolve(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound for unset variable, got %v", err)
	}
}

func TestEncryptedFileSource(t *testing.T) {
	t.Setenv("FLICKRGET_PASSPHRASE", "test_passphrase_123")

	path := filepath.Join(t.TempDir(), "apikey.enc")
	source, err := NewEncryptedFileSource(path)
	if err != nil {
		t.Fatalf("Failed to create encrypted source: %v", err)
	}

	// Nothing stored yet
	if _, err := source.Resolve(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound before store, got %v", err)
	}

	// Store and read back
	if err := source.Store("secret_api_key_0001"); err != nil {
		t.Fatalf("Failed to store key: %v", err)
	}
	key, err := source.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve stored key: %v", err)
	}
	if key != "secret_api_key_0001" {
		t.Errorf("Key mismatch: got %s, want secret_api_key_0001", key)
	}

	// Verify the file is actually encrypted
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "secret_api_key_0001") {
		t.Error("File contains the plaintext key")
	}

	// Delete removes the file
	if err := source.Delete(); err != nil {
		t.Fatalf("Failed to delete key: %v", err)
	}
	if _, err := source.Resolve(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound after delete, got %v", err)
	}
	if err := source.Delete(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound on second delete, got %v", err)
	}
}

func TestEncryptedFileSourceWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apikey.enc")

	t.Setenv("FLICKRGET_PASSPHRASE", "first_passphrase")
	source, err := NewEncryptedFileSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := source.Store("secret_api_key_0002"); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FLICKRGET_PASSPHRASE", "different_passphrase")
	other, err := NewEncryptedFileSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Resolve(); err == nil {
		t.Error("Expected decryption failure with the wrong passphrase")
	}
}

func TestIsValidKey(t *testing.T) {
	cases := []struct {
		key   string
		valid bool
	}{
		{"9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d", true},
		{"abcd1234", true},
		{"", false},
		{"short", false},
		{"has space1234", false},
		{"has\ttab1234", false},
		{"has\nnewline1234", false},
	}

	for _, c := range cases {
		if got := IsValidKey(c.key); got != c.valid {
			t.Errorf("IsValidKey(%q) = %v, want %v", c.key, got, c.valid)
		}
	}
}

func TestMask(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d", "9a8b...5c4d"},
		{"abcdefghij", "abcd...ghij"},
		{"short", "********"},
		{"", "********"},
	}

	for _, c := range cases {
		if got := Mask(c.key); got != c.want {
			t.Errorf("Mask(%q) = %q, want %q", c.key, got, c.want)
		}
	}
}
