// Package diskstore implements a disk-based filesystem storage backend.
package diskstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/snappyswift/fixturegen/internal/codec"
	"github.com/snappyswift/fixturegen/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store writes artifacts as files directly under a root directory.
type Store struct {
	root string
	ext  string
	perm os.FileMode
}

// Option configures a Store.
type Option func(*Store)

// WithFileMode sets the permission bits for newly created artifacts.
func WithFileMode(perm os.FileMode) Option {
	return func(s *Store) { s.perm = perm }
}

// New creates a new disk store rooted at the given directory.
// The directory is not created; writing into a missing directory fails.
// The codec determines the artifact extension.
func New(root string, c codec.Codec, opts ...Option) (*Store, error) {
	if root == "" {
		return nil, errors.New("diskstore: empty root directory")
	}
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	s := &Store{
		root: root,
		ext:  c.Extension(),
		perm: 0644,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the output directory.
func (s *Store) Root() string {
	return s.root
}

// WriteArtifact creates or truncates the artifact file and writes data.
// The file handle is closed on every path.
func (s *Store) WriteArtifact(ctx context.Context, name string, data []byte) (string, error) {
	// Check for cancellation before starting I/O.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	path := s.artifactPath(name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.perm)
	if err != nil {
		return "", fmt.Errorf("opening artifact: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing artifact: %w", err)
	}

	return path, nil
}

// ReadArtifact reads the artifact file.
func (s *Store) ReadArtifact(ctx context.Context, name string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(s.artifactPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	return data, nil
}

// List returns the names of artifact files in the root directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := store.TrimExtension(entry.Name(), s.ext); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

// artifactPath returns the filesystem path for an artifact.
func (s *Store) artifactPath(name string) string {
	return filepath.Join(s.root, store.ArtifactName(name, s.ext))
}
