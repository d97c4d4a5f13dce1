// Package store defines the storage backend interface for fixture artifacts.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an artifact does not exist in the store.
var ErrNotFound = errors.New("store: artifact not found")

// Store defines the interface for storage backends.
// Implementations derive the artifact location from its name and the codec
// extension, "<root>/<name>.<ext>", and handle path formats internally.
type Store interface {
	// WriteArtifact creates or truncates the named artifact and writes data
	// in full. It returns a human-readable location for the artifact.
	WriteArtifact(ctx context.Context, name string, data []byte) (string, error)

	// ReadArtifact returns the raw bytes of the named artifact.
	ReadArtifact(ctx context.Context, name string) ([]byte, error)

	// List returns the names of all artifacts carrying the store's extension,
	// sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}

// ArtifactName returns the object name for an artifact: name plus ".ext",
// or name alone when ext is empty.
func ArtifactName(name, ext string) string {
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// TrimExtension reverses ArtifactName. It reports false when filename does
// not carry the extension.
func TrimExtension(filename, ext string) (string, bool) {
	if ext == "" {
		return filename, filename != ""
	}
	suffix := "." + ext
	if len(filename) <= len(suffix) || filename[len(filename)-len(suffix):] != suffix {
		return "", false
	}
	return filename[:len(filename)-len(suffix)], true
}
