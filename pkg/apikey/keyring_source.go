package apikey

import (
	"fmt"
	"os"
	"runtime"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "flickrget"
	keyringKey     = "api_key"
)

// KeyringSource stores the API key in the system keychain
type KeyringSource struct{}

// NewKeyringSource creates a keychain-backed key source
func NewKeyringSource() (*KeyringSource, error) {
	// Test if keyring is available
	testKey := "test_availability"
	err := keyring.Set(keyringService, testKey, "test")
	if err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, testKey)

	return &KeyringSource{}, nil
}

// Name identifies the source
func (k *KeyringSource) Name() string {
	return "system keyring"
}

// Resolve reads the API key from the keychain
func (k *KeyringSource) Resolve() (string, error) {
	key, err := keyring.Get(keyringService, keyringKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read from keyring: %w", err)
	}
	return key, nil
}

// Store saves the API key to the keychain
func (k *KeyringSource) Store(key string) error {
	if err := keyring.Set(keyringService, keyringKey, key); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}
	return nil
}

// Delete removes the API key from the keychain
func (k *KeyringSource) Delete() error {
	err := keyring.Delete(keyringService, keyringKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrKeyNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}

// IsKeyringAvailable checks if the system keychain is usable on this
// platform without probing it.
func IsKeyringAvailable() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	case "linux":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != "" || os.Getenv("DBUS_SESSION_BUS_ADDRESS") != ""
	default:
		return false
	}
}
