// Package memoryfixturefx provides an fx module for a generator that keeps
// fixtures in memory.
// Useful for testing.
package memoryfixturefx

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/snappyswift/fixturegen"
	"github.com/snappyswift/fixturegen/internal/codec/snappycodec"
	"github.com/snappyswift/fixturegen/internal/stats"
	"github.com/snappyswift/fixturegen/internal/stats/logger"
	"github.com/snappyswift/fixturegen/internal/store/memstore"
)

// Module provides an in-memory Snappy generator for testing.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("memoryfixture",
	fx.Provide(
		newStatsCollector,
		newMemStore,
		newGenerator,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("fixturegen.stats"))
}

func newMemStore() *memstore.Store {
	return memstore.New(snappycodec.New().Extension())
}

// Params holds dependencies for creating the generator.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Store     *memstore.Store
	Lifecycle fx.Lifecycle
}

// Result holds the provided generator and store.
type Result struct {
	fx.Out

	Generator *fixturegen.Generator
	Store     *memstore.Store // Exposed for test assertions
}

func newGenerator(p Params) (Result, error) {
	gen, err := fixturegen.New(
		fixturegen.WithStore(p.Store),
		fixturegen.WithStats(p.Collector),
		fixturegen.WithLogger(p.Logger.Named("fixturegen")),
		fixturegen.WithOutput(io.Discard),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return gen.Close()
		},
	})

	return Result{
		Generator: gen,
		Store:     p.Store,
	}, nil
}
