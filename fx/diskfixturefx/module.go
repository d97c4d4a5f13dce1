// Package diskfixturefx provides an fx module for a generator that writes
// fixtures to a local directory.
package diskfixturefx

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/snappyswift/fixturegen"
	"github.com/snappyswift/fixturegen/internal/codec"
	"github.com/snappyswift/fixturegen/internal/codec/codecs"
	"github.com/snappyswift/fixturegen/internal/corpus"
	"github.com/snappyswift/fixturegen/internal/stats"
	"github.com/snappyswift/fixturegen/internal/stats/logger"
	"github.com/snappyswift/fixturegen/internal/store/diskstore"
)

// Config holds configuration for the disk-backed generator.
type Config struct {
	// OutputDir is the directory fixtures are written into. It must exist.
	OutputDir string

	// Codec names the codec, see codecs.Names. Default is "snappy".
	Codec string

	// CorpusFile is an optional YAML corpus manifest.
	// Default is the built-in corpus.
	CorpusFile string

	// Workers is the number of entries processed concurrently. Default is 1.
	Workers int

	// Output receives the diagnostic reports. Default is os.Stdout.
	Output io.Writer
}

// Module provides a disk-backed generator.
// Requires a Config and a *zap.Logger to be provided.
var Module = fx.Module("diskfixture",
	fx.Provide(
		newStatsCollector,
		newCodec,
		newGenerator,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("fixturegen.stats"))
}

func newCodec(cfg Config) (codec.Codec, error) {
	return codecs.ByName(cfg.Codec)
}

// Params holds dependencies for creating the generator.
type Params struct {
	fx.In

	Config    Config
	Codec     codec.Codec
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided generator.
type Result struct {
	fx.Out

	Generator *fixturegen.Generator
}

func newGenerator(p Params) (Result, error) {
	st, err := diskstore.New(p.Config.OutputDir, p.Codec)
	if err != nil {
		return Result{}, err
	}

	opts := []fixturegen.Option{
		fixturegen.WithCodec(p.Codec),
		fixturegen.WithStore(st),
		fixturegen.WithStats(p.Collector),
		fixturegen.WithLogger(p.Logger.Named("fixturegen")),
		fixturegen.WithWorkers(p.Config.Workers),
	}
	if p.Config.CorpusFile != "" {
		c, err := corpus.LoadFile(p.Config.CorpusFile)
		if err != nil {
			return Result{}, err
		}
		opts = append(opts, fixturegen.WithCorpus(c))
	}
	if p.Config.Output != nil {
		opts = append(opts, fixturegen.WithOutput(p.Config.Output))
	}

	gen, err := fixturegen.New(opts...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return gen.Close()
		},
	})

	return Result{Generator: gen}, nil
}
