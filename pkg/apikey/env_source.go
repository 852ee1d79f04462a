package apikey

import (
	"os"
	"strings"
)

// EnvKeyVariable is the environment variable holding the API key. The
// config layer loads .env files before the resolver runs, so keys kept in
// a dotenv file arrive here too.
const EnvKeyVariable = "FLICKRGET_API_KEY"

// EnvSource reads the API key from the environment
type EnvSource struct{}

// NewEnvSource creates an environment-based key source
func NewEnvSource() *EnvSource {
	return &EnvSource{}
}

// Name identifies the source
func (e *EnvSource) Name() string {
	return "environment " + EnvKeyVariable
}

// Resolve returns the key from the environment variable
func (e *EnvSource) Resolve() (string, error) {
	key := strings.TrimSpace(os.Getenv(EnvKeyVariable))
	if key == "" {
		return "", ErrKeyNotFound
	}
	return key, nil
}

// Store is not supported for environment variables
func (e *EnvSource) Store(key string) error {
	return ErrSourceReadOnly
}

// Delete is not supported for environment variables
func (e *EnvSource) Delete() error {
	return ErrSourceReadOnly
}
