package storage

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("record not found")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// Record keys.
const (
	KeyPersons = "persons"
	KeyEvents  = "events"
	KeyTheme   = "theme"
)

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateKey checks that a record key is a lowercase identifier.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid record key %q: must be lowercase alphanumeric, hyphens, underscores", key)
	}
	return nil
}

// Storage is a durable string key/value medium.
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value string) error

	// SetMany stores several records. Backends that support transactions
	// write them atomically.
	SetMany(records map[string]string) error

	// Close releases any resources held by the backend.
	Close() error
}
