// Package zstdcodec provides a zstd compression codec.
package zstdcodec

import (
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/snappyswift/fixturegen/internal/codec"
)

// BlockSize is the maximum size of a zstd block.
const BlockSize = 128 << 10

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements zstd compression.
// The encoder and decoder are created lazily and shared; both are safe for
// concurrent use through EncodeAll and DecodeAll.
type Codec struct {
	once    sync.Once
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	initErr error
}

// New returns a new zstd codec.
func New() *Codec {
	return &Codec{}
}

func (c *Codec) init() error {
	c.once.Do(func() {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		if err != nil {
			c.initErr = err
			return
		}
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			enc.Close()
			c.initErr = err
			return
		}
		c.encoder = enc
		c.decoder = dec
	})
	return c.initErr
}

// Compress encodes src as a single zstd frame.
func (c *Codec) Compress(src []byte) ([]byte, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return c.encoder.EncodeAll(src, nil), nil
}

// Decompress decodes zstd frames.
func (c *Codec) Decompress(src []byte) ([]byte, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return c.decoder.DecodeAll(src, nil)
}

// Name returns "zstd".
func (c *Codec) Name() string {
	return "zstd"
}

// Extension returns "zst".
func (c *Codec) Extension() string {
	return "zst"
}

// BlockSize returns 128 KiB.
func (c *Codec) BlockSize() int {
	return BlockSize
}
