package apikey

import (
	"flickrget/pkg/logger"
)

// MockSource is an in-memory key source for testing
type MockSource struct {
	name       string
	key        string
	resolveErr error
	storeErr   error
	deleteErr  error
}

// NewMockSource creates a mock source with the given name
func NewMockSource(name string) *MockSource {
	return &MockSource{name: name}
}

// Name identifies the source
func (m *MockSource) Name() string {
	return m.name
}

// Resolve returns the stored key
func (m *MockSource) Resolve() (string, error) {
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	if m.key == "" {
		return "", ErrKeyNotFound
	}
	return m.key, nil
}

// Store saves the key in memory
func (m *MockSource) Store(key string) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	m.key = key
	return nil
}

// Delete removes the key from memory
func (m *MockSource) Delete() error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if m.key == "" {
		return ErrKeyNotFound
	}
	m.key = ""
	return nil
}

// SetKey seeds the mock with a key without going through Store
func (m *MockSource) SetKey(key string) {
	m.key = key
}

// SetResolveError makes Resolve fail with the given error
func (m *MockSource) SetResolveError(err error) {
	m.resolveErr = err
}

// SetStoreError makes Store fail with the given error
func (m *MockSource) SetStoreError(err error) {
	m.storeErr = err
}

// SetDeleteError makes Delete fail with the given error
func (m *MockSource) SetDeleteError(err error) {
	m.deleteErr = err
}

// NewMockResolver creates a resolver backed by the given sources, for testing
func NewMockResolver(sources ...Source) *Resolver {
	return &Resolver{
		sources: sources,
		logger:  logger.GetLogger(),
	}
}
