// Package noopcodec provides a no-op codec (no compression).
package noopcodec

import (
	"github.com/snappyswift/fixturegen/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements no compression.
type Codec struct{}

// New returns a new no-op codec.
func New() *Codec {
	return &Codec{}
}

// Compress returns a copy of src.
func (c *Codec) Compress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

// Decompress returns a copy of src.
func (c *Codec) Decompress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

// Name returns "raw".
func (c *Codec) Name() string {
	return "raw"
}

// Extension returns "raw".
func (c *Codec) Extension() string {
	return "raw"
}

// BlockSize returns 0.
func (c *Codec) BlockSize() int {
	return 0
}
