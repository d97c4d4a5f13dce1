// Package gcsstore implements a Google Cloud Storage backend.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/snappyswift/fixturegen/internal/codec"
	"github.com/snappyswift/fixturegen/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is a Google Cloud Storage backend.
type Store struct {
	client     *storage.Client
	bucket     *storage.BucketHandle
	bucketName string
	prefix     string
	ext        string
}

// New creates a new GCS store.
// The bucket must already exist.
// The codec determines the artifact extension.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client:     client,
		bucket:     client.Bucket(bucketName),
		bucketName: bucketName,
		ext:        c.Extension(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// NewFromURL creates a GCS store from a "gs://bucket/prefix" URL.
func NewFromURL(ctx context.Context, gcsURL string, c codec.Codec) (*Store, error) {
	bucket, prefix, err := ParseURL(gcsURL)
	if err != nil {
		return nil, err
	}
	return New(ctx, bucket, c, WithPrefix(prefix))
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// ParseURL parses "gs://bucket/prefix" into bucket and prefix.
func ParseURL(gcsURL string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(gcsURL, "gs://") {
		return "", "", fmt.Errorf("invalid GCS path: must start with gs://")
	}

	path := strings.TrimPrefix(gcsURL, "gs://")
	parts := strings.SplitN(path, "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("invalid GCS path: missing bucket name")
	}

	bucket = parts[0]
	if len(parts) > 1 {
		prefix = strings.Trim(parts[1], "/")
	}
	return bucket, prefix, nil
}

// WriteArtifact uploads data as the artifact object, replacing any
// existing object.
func (s *Store) WriteArtifact(ctx context.Context, name string, data []byte) (string, error) {
	key := s.artifactKey(name)
	writer := s.bucket.Object(key).NewWriter(ctx)
	writer.ContentType = "application/octet-stream"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("uploading artifact: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing artifact upload: %w", err)
	}

	return s.location(key), nil
}

// ReadArtifact downloads the artifact object.
func (s *Store) ReadArtifact(ctx context.Context, name string) ([]byte, error) {
	// Check for cancellation before starting.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	reader, err := s.bucket.Object(s.artifactKey(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	return data, nil
}

// List returns the artifact names directly under the prefix.
func (s *Store) List(ctx context.Context) ([]string, error) {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: s.prefix, Delimiter: "/"})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		// Synthetic directory entries have only Prefix set.
		if attrs.Name == "" {
			continue
		}
		if name, ok := store.TrimExtension(strings.TrimPrefix(attrs.Name, s.prefix), s.ext); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.client.Close()
}

// artifactKey returns the full object key for an artifact.
func (s *Store) artifactKey(name string) string {
	return s.prefix + store.ArtifactName(name, s.ext)
}

func (s *Store) location(key string) string {
	return "gs://" + s.bucketName + "/" + key
}
