// Package memstore provides an in-memory store implementation for testing.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/snappyswift/fixturegen/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is an in-memory store for testing.
type Store struct {
	ext string

	mu        sync.RWMutex
	artifacts map[string][]byte
	writes    int
	failures  map[string]error
}

// New creates a new in-memory store using the given artifact extension.
func New(ext string) *Store {
	return &Store{
		ext:       ext,
		artifacts: make(map[string][]byte),
		failures:  make(map[string]error),
	}
}

// FailWrites makes every subsequent write of name return err (for test setup).
func (s *Store) FailWrites(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[name] = err
}

// WriteArtifact stores a copy of data under name.
func (s *Store) WriteArtifact(ctx context.Context, name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[name]; err != nil {
		return "", err
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	s.artifacts[name] = copied
	s.writes++
	return "mem://" + store.ArtifactName(name, s.ext), nil
}

// ReadArtifact returns a copy of the stored artifact.
func (s *Store) ReadArtifact(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.artifacts[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte{}, data...), nil
}

// List returns the stored artifact names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.artifacts))
	for name := range s.artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Writes returns the number of successful writes.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
