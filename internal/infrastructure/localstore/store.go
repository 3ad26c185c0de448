// Package localstore provides the durable key/value store holding operator
// session flags and the visitor identifier, the server-side analog of the
// browser's localStorage. Values are strings; writes are atomic.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys.
const (
	KeyAdminAuth = "admin_auth"
	KeyAdminUser = "admin_user"
)

// Store is a file-backed string key/value store.
type Store struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

// Open loads the store at path, creating an empty one when the file does not
// exist. A corrupt file is treated as empty rather than failing startup.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		s.values = make(map[string]string)
	}

	return s, nil
}

// Get returns the value for key, or "" when absent.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// GetBool reads a boolean-as-string value.
func (s *Store) GetBool(key string) bool {
	return s.Get(key) == "true"
}

// Set writes a value and persists the store.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flushLocked()
}

// SetBool writes a boolean-as-string value.
func (s *Store) SetBool(key string, value bool) error {
	if value {
		return s.Set(key, "true")
	}
	return s.Set(key, "false")
}

// Delete removes a key and persists the store. Deleting an absent key still
// flushes, keeping the file authoritative.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return s.flushLocked()
}

// flushLocked writes the store atomically via a temp file rename. Caller
// must hold the write lock.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}
