// Package s2codec provides an S2 block-format codec.
package s2codec

import (
	"github.com/klauspost/compress/s2"

	"github.com/snappyswift/fixturegen/internal/codec"
)

// BlockSize matches the default block size of the S2 stream writer.
const BlockSize = 1 << 20

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements S2 block compression.
type Codec struct {
	better bool
}

// Option configures a Codec.
type Option func(*Codec)

// WithBetterCompression trades speed for a better ratio.
func WithBetterCompression() Option {
	return func(c *Codec) { c.better = true }
}

// New returns a new S2 codec.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compress encodes src as a single S2 block.
func (c *Codec) Compress(src []byte) ([]byte, error) {
	if c.better {
		return s2.EncodeBetter(nil, src), nil
	}
	return s2.Encode(nil, src), nil
}

// Decompress decodes an S2 block.
func (c *Codec) Decompress(src []byte) ([]byte, error) {
	return s2.Decode(nil, src)
}

// Name returns "S2", or "S2 (better)" with WithBetterCompression.
func (c *Codec) Name() string {
	if c.better {
		return "S2 (better)"
	}
	return "S2"
}

// Extension returns "s2".
func (c *Codec) Extension() string {
	return "s2"
}

// BlockSize returns 1 MiB.
func (c *Codec) BlockSize() int {
	return BlockSize
}
