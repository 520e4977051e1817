// Package store provides persistence for xen definitions.
package store

import "errors"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Store is the interface for definition persistence. Definitions are kept as
// source text that evaluates back to the stored value.
type Store interface {
	// Get retrieves the source stored under name. ok is false if absent.
	Get(name string) (source string, ok bool, err error)
	// Put stores source under name, overwriting if it exists.
	Put(name, source string) error
	// Delete removes a definition by name.
	Delete(name string) error
	// Names returns the stored names in sorted order.
	Names() ([]string, error)
	// Close releases resources.
	Close() error
}

// VersionEntry represents a single version of a persisted definition.
type VersionEntry struct {
	ID      string
	Version int
	Source  string
	Ts      string
}

// HistoryStore extends Store with version history queries.
type HistoryStore interface {
	// GetHistory returns versions oldest first. A positive limit keeps only
	// the most recent limit versions.
	GetHistory(name string, limit int) ([]VersionEntry, error)
}
