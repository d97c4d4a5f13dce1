// Package fixturegen generates deterministic compressed test fixtures for a
// codec's decoder test suite.
//
// Each corpus entry is compressed with the configured codec and written to
// "<output_dir>/<name>.<ext>", and a diagnostic block with the input size,
// compressed size and ratio is printed.
//
// Example usage:
//
//	gen, err := fixturegen.New(
//	    fixturegen.WithOutputDir("Tests/SnappySwiftTests/TestData"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	summary, err := gen.Run(ctx)
//	if err != nil {
//	    log.Fatalf("%d fixtures failed: %v", len(summary.Failures), err)
//	}
package fixturegen

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/snappyswift/fixturegen/internal/codec"
	"github.com/snappyswift/fixturegen/internal/corpus"
	"github.com/snappyswift/fixturegen/internal/manifest"
	"github.com/snappyswift/fixturegen/internal/stats"
	"github.com/snappyswift/fixturegen/internal/store"
	"github.com/snappyswift/fixturegen/internal/store/diskstore"
)

// Generator compresses corpus entries and persists them as artifacts.
// A Generator is safe for concurrent use by multiple goroutines.
type Generator struct {
	codec    codec.Codec
	store    store.Store
	corpus   *corpus.Corpus
	stats    stats.Collector
	logger   *zap.Logger
	workers  int
	failFast bool

	outMu sync.Mutex
	out   io.Writer

	closed atomic.Bool
}

// New creates a new Generator with the given options.
// Either WithStore or WithOutputDir is required.
func New(opts ...Option) (*Generator, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.codec == nil {
		return nil, ErrNoCodec
	}
	if cfg.store == nil && cfg.outputDir != "" {
		st, err := diskstore.New(cfg.outputDir, cfg.codec)
		if err != nil {
			return nil, fmt.Errorf("creating output store: %w", err)
		}
		cfg.store = st
	}
	if cfg.store == nil {
		return nil, ErrNoStore
	}
	if cfg.corpus == nil {
		cfg.corpus = corpus.Default(cfg.codec.BlockSize())
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}

	g := &Generator{
		codec:    cfg.codec,
		store:    cfg.store,
		corpus:   cfg.corpus,
		stats:    cfg.stats,
		logger:   cfg.logger,
		workers:  cfg.workers,
		failFast: cfg.failFast,
		out:      cfg.out,
	}

	g.logger.Debug("generator initialized",
		zap.String("codec", g.codec.Name()),
		zap.Int("blockSize", g.codec.BlockSize()),
		zap.Int("entries", g.corpus.Len()),
		zap.Int("workers", g.workers),
	)

	return g, nil
}

// WriteFixture compresses tc.Input, writes the artifact for tc.Name and
// prints its diagnostic block. An existing artifact is overwritten.
//
// tc.Name must already be a valid filename stem; see corpus.ValidateName.
// Failures are returned as *FixtureError wrapping ErrCompression or ErrIO.
func (g *Generator) WriteFixture(ctx context.Context, tc corpus.TestCase) (*Report, error) {
	if g.closed.Load() {
		return nil, ErrClosed
	}

	report, ferr := g.writeFixture(ctx, tc)
	if ferr != nil {
		g.stats.IncCounter(stats.MetricFailures, 1)
		g.logger.Error("fixture failed",
			zap.String("name", tc.Name),
			zap.Error(ferr.Err),
			zap.String("kind", ferr.Kind.Error()),
		)
		g.printf("%s:\n  ERROR: %v: %v\n\n", tc.Name, ferr.Kind, ferr.Err)
		return nil, ferr
	}

	g.stats.IncCounter(stats.MetricFixtures, 1)
	g.stats.IncCounter(stats.MetricInputBytes, int64(report.InputSize))
	g.stats.IncCounter(stats.MetricCompressedBytes, int64(report.CompressedSize))
	if ratio, ok := report.Ratio(); ok {
		g.stats.ObserveHistogram(stats.MetricCompressionRatio, ratio)
	}
	g.logger.Debug("fixture written",
		zap.String("name", report.Name),
		zap.Int("inputSize", report.InputSize),
		zap.Int("compressedSize", report.CompressedSize),
		zap.String("location", report.Location),
	)

	g.outMu.Lock()
	_, err := report.WriteTo(g.out)
	g.outMu.Unlock()
	if err != nil {
		g.logger.Warn("writing report", zap.String("name", report.Name), zap.Error(err))
	}

	return report, nil
}

func (g *Generator) writeFixture(ctx context.Context, tc corpus.TestCase) (*Report, *FixtureError) {
	compressed, err := g.codec.Compress(tc.Input)
	if err != nil {
		return nil, compressionError(tc.Name, err)
	}

	location, err := g.store.WriteArtifact(ctx, tc.Name, compressed)
	if err != nil {
		return nil, ioError(tc.Name, err)
	}

	return &Report{
		Name:           tc.Name,
		InputSize:      len(tc.Input),
		CompressedSize: len(compressed),
		Location:       location,
		InputSHA256:    manifest.Checksum(tc.Input),
		ArtifactSHA256: manifest.Checksum(compressed),
	}, nil
}

// outcome is the result of one entry within a run.
type outcome struct {
	report    *Report
	err       error
	attempted bool
}

// Run writes a fixture for every corpus entry, in corpus order, and prints
// a banner before and a summary after the pass.
//
// A failed entry does not stop the run unless WithFailFast is set. The
// returned error is non-nil if any entry failed or the context was
// cancelled; the Summary is always returned.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	if g.closed.Load() {
		return nil, ErrClosed
	}

	cases := g.corpus.Cases()
	g.stats.SetGauge(stats.MetricCorpusSize, int64(len(cases)))
	g.printf("Generating %s test data...\n\n", g.codec.Name())

	outcomes := make([]outcome, len(cases))
	if g.workers > 1 {
		g.runParallel(ctx, cases, outcomes)
	} else {
		g.runSequential(ctx, cases, outcomes)
	}

	summary := &Summary{}
	for i, o := range outcomes {
		switch {
		case !o.attempted:
			summary.Skipped = append(summary.Skipped, cases[i].Name)
		case o.err != nil:
			ferr, ok := o.err.(*FixtureError)
			if !ok {
				ferr = ioError(cases[i].Name, o.err)
			}
			summary.Failures = append(summary.Failures, ferr)
		default:
			summary.Reports = append(summary.Reports, o.report)
		}
	}

	g.printSummary(summary)

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	if err := summary.Err(); err != nil {
		return summary, err
	}
	if len(summary.Skipped) > 0 {
		return summary, fmt.Errorf("%d entries skipped", len(summary.Skipped))
	}
	return summary, nil
}

func (g *Generator) runSequential(ctx context.Context, cases []corpus.TestCase, outcomes []outcome) {
	for i, tc := range cases {
		if ctx.Err() != nil {
			return
		}
		report, err := g.WriteFixture(ctx, tc)
		outcomes[i] = outcome{report: report, err: err, attempted: true}
		if err != nil && g.failFast {
			return
		}
	}
}

// runParallel processes entries on up to g.workers goroutines. Each entry
// writes a distinct artifact, so entries need no coordination.
func (g *Generator) runParallel(ctx context.Context, cases []corpus.TestCase, outcomes []outcome) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i, tc := range cases {
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return nil
			}
			report, err := g.WriteFixture(egCtx, tc)
			outcomes[i] = outcome{report: report, err: err, attempted: true}
			if err != nil && g.failFast {
				return err
			}
			return nil
		})
	}

	// Errors are recorded per entry in outcomes.
	_ = eg.Wait()
}

func (g *Generator) printSummary(s *Summary) {
	if !s.Failed() {
		g.printf("Test data generation complete!\n")
		return
	}

	g.printf("Test data generation finished with %d failure(s):\n", len(s.Failures)+len(s.Skipped))
	for _, f := range s.Failures {
		g.printf("  - %s: %v: %v\n", f.Name, f.Kind, f.Err)
	}
	for _, name := range s.Skipped {
		g.printf("  - %s: skipped\n", name)
	}
}

func (g *Generator) printf(format string, args ...any) {
	g.outMu.Lock()
	defer g.outMu.Unlock()
	fmt.Fprintf(g.out, format, args...)
}

// Manifest describes the fixtures in s using the generator's codec.
func (g *Generator) Manifest(s *Summary) *manifest.Manifest {
	return s.Manifest(g.codec.Name(), g.codec.Extension(), g.codec.BlockSize())
}

// Close releases all resources associated with the generator.
// After Close, the generator should not be used.
func (g *Generator) Close() error {
	if !g.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if err := g.store.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

// Codec returns the compression primitive used by this generator.
func (g *Generator) Codec() codec.Codec {
	return g.codec
}

// Corpus returns the corpus this generator writes.
func (g *Generator) Corpus() *corpus.Corpus {
	return g.corpus
}

// Store returns the artifact store used by this generator.
func (g *Generator) Store() store.Store {
	return g.store
}
