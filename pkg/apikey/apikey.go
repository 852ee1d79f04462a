package apikey

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"flickrget/pkg/config"
	"flickrget/pkg/logger"
)

// Source is one place the Flickr API key can come from
type Source interface {
	// Name identifies the source in logs and command output
	Name() string

	// Resolve returns the key held by this source
	Resolve() (string, error)

	// Store saves the key where the source supports writing
	Store(key string) error

	// Delete removes the key where the source supports writing
	Delete() error
}

// Resolver walks a chain of key sources in priority order
type Resolver struct {
	sources []Source
	logger  logger.Logger
}

// NewResolver builds the standard source chain: key file, environment,
// system keyring, encrypted file. Sources that cannot initialize on this
// system are left out of the chain.
func NewResolver(cfg *config.Config) *Resolver {
	log := logger.GetLogger()

	sources := []Source{
		NewFileSource(cfg.Flickr.KeyFile),
		NewEnvSource(),
	}

	if keyringSource, err := NewKeyringSource(); err == nil {
		sources = append(sources, keyringSource)
	} else {
		log.DebugWithFields("keyring source unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if configDir, err := getConfigDir(); err == nil {
		if encryptedSource, err := NewEncryptedFileSource(filepath.Join(configDir, "apikey.enc")); err == nil {
			sources = append(sources, encryptedSource)
		}
	}

	return &Resolver{sources: sources, logger: log}
}

// Resolve returns the first key found along the chain. A source that has
// no key passes the turn to the next one; a source that exists but cannot
// be read stops the chain with its error.
func (r *Resolver) Resolve() (string, error) {
	for _, source := range r.sources {
		key, err := source.Resolve()
		if err == nil && key != "" {
			r.logger.DebugWithFields("API key resolved", map[string]interface{}{
				"source": source.Name(),
			})
			return key, nil
		}
		if err != nil && !errors.Is(err, ErrKeyNotFound) {
			return "", fmt.Errorf("%s: %w", source.Name(), err)
		}
	}

	return "", fmt.Errorf("no API key found: %w", ErrKeyNotFound)
}

// Store saves the key in the first writable source
func (r *Resolver) Store(key string) error {
	if !IsValidKey(key) {
		return ErrInvalidKey
	}

	var lastErr error
	for _, source := range r.sources {
		err := source.Store(key)
		if err == nil {
			r.logger.InfoWithFields("API key stored", map[string]interface{}{
				"source": source.Name(),
			})
			return nil
		}
		if !errors.Is(err, ErrSourceReadOnly) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store API key: %w", lastErr)
	}
	return errors.New("no writable key source available")
}

// Delete removes the key from every writable source that has it
func (r *Resolver) Delete() error {
	var deleted bool
	var lastErr error

	for _, source := range r.sources {
		err := source.Delete()
		if err == nil {
			deleted = true
			continue
		}
		if !errors.Is(err, ErrSourceReadOnly) && !errors.Is(err, ErrKeyNotFound) {
			lastErr = err
		}
	}

	if deleted {
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("failed to delete API key: %w", lastErr)
	}
	return ErrKeyNotFound
}

// Sources lists the names of the chain's active sources, in order
func (r *Resolver) Sources() []string {
	names := make([]string, 0, len(r.sources))
	for _, source := range r.sources {
		names = append(names, source.Name())
	}
	return names
}

// IsValidKey checks the basic shape of an API key: a single non-empty
// token of printable characters.
func IsValidKey(key string) bool {
	if len(key) < 8 {
		return false
	}
	return !strings.ContainsAny(key, " \t\r\n")
}

// Mask hides the middle of a key for display
func Mask(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// getConfigDir returns the configuration directory path
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "flickrget")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "flickrget")
	default: // Linux and others
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "flickrget")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "flickrget")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// Errors
var (
	ErrKeyNotFound    = errors.New("API key not found")
	ErrInvalidKey     = errors.New("invalid API key")
	ErrSourceReadOnly = errors.New("key source is read-only")
)
