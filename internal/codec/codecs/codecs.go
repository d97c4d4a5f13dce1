// Package codecs resolves codec names used in configuration.
package codecs

import (
	"fmt"
	"sort"

	"github.com/snappyswift/fixturegen/internal/codec"
	"github.com/snappyswift/fixturegen/internal/codec/gzipcodec"
	"github.com/snappyswift/fixturegen/internal/codec/noopcodec"
	"github.com/snappyswift/fixturegen/internal/codec/s2codec"
	"github.com/snappyswift/fixturegen/internal/codec/snappycodec"
	"github.com/snappyswift/fixturegen/internal/codec/zstdcodec"
)

// Default is the codec used when none is configured.
const Default = "snappy"

var constructors = map[string]func() codec.Codec{
	"snappy":    func() codec.Codec { return snappycodec.New() },
	"s2":        func() codec.Codec { return s2codec.New() },
	"s2-better": func() codec.Codec { return s2codec.New(s2codec.WithBetterCompression()) },
	"zstd":      func() codec.Codec { return zstdcodec.New() },
	"gzip":      func() codec.Codec { return gzipcodec.New() },
	"raw":       func() codec.Codec { return noopcodec.New() },
}

// ByName returns a new codec for the given name.
func ByName(name string) (codec.Codec, error) {
	if name == "" {
		name = Default
	}
	newCodec, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec: %s (available: %v)", name, Names())
	}
	return newCodec(), nil
}

// Names returns the supported codec names, sorted.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
