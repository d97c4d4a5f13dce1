// Package snappycodec provides a Snappy block-format codec.
package snappycodec

import (
	"github.com/klauspost/compress/s2"

	"github.com/snappyswift/fixturegen/internal/codec"
)

// BlockSize is the Snappy reference compressor's fragment size (kBlockSize).
// Inputs longer than this are compressed as several independent fragments.
const BlockSize = 1 << 16

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements raw Snappy block compression (no framing, no checksum).
type Codec struct{}

// New returns a new Snappy codec.
func New() *Codec {
	return &Codec{}
}

// Compress encodes src as a single Snappy block.
func (c *Codec) Compress(src []byte) ([]byte, error) {
	return s2.EncodeSnappy(nil, src), nil
}

// Decompress decodes a Snappy block.
func (c *Codec) Decompress(src []byte) ([]byte, error) {
	return s2.Decode(nil, src)
}

// Name returns "Snappy".
func (c *Codec) Name() string {
	return "Snappy"
}

// Extension returns "snappy".
func (c *Codec) Extension() string {
	return "snappy"
}

// BlockSize returns 64 KiB.
func (c *Codec) BlockSize() int {
	return BlockSize
}
