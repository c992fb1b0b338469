// Package cache provides a generic, thread-safe memoization cache.
//
// The wiring core uses it for structures with permanent memoization
// semantics: a Component's capability->proxy cache (the same proxy instance
// must be returned for the lifetime of the Component) and the speculative
// last-used-constructor cache. Entries live until explicitly deleted or
// cleared; there is no eviction policy.
//
// Statistics are always collected; Prometheus export is optional via the
// WithMetrics functional option.
package cache

import (
	"github.com/c360/wirekit/errors"
)

// Cache represents a generic cache interface parameterized by value type V.
type Cache[V any] interface {
	// Get retrieves a value by key. Returns the value and true if found,
	// zero value and false otherwise.
	Get(key string) (V, bool)

	// Set stores a value with the given key. Returns true if a new entry was
	// created, false if an existing entry was updated.
	Set(key string, value V) (bool, error)

	// Delete removes an entry by key. Returns true if the key existed.
	Delete(key string) (bool, error)

	// Clear removes all entries from the cache.
	Clear() error

	// Size returns the current number of entries.
	Size() int

	// Keys returns a slice of all keys currently in the cache.
	Keys() []string

	// Stats returns cache statistics.
	Stats() *Statistics
}

// validateKey validates a cache key for basic requirements.
func validateKey(key string) error {
	if key == "" {
		return errors.WrapInvalid(errors.New("key cannot be empty"), "cache", "validateKey", "key validation")
	}
	return nil
}
