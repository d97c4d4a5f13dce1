package fixturegen

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/snappyswift/fixturegen/internal/codec"
	"github.com/snappyswift/fixturegen/internal/codec/snappycodec"
	"github.com/snappyswift/fixturegen/internal/corpus"
	"github.com/snappyswift/fixturegen/internal/stats"
	"github.com/snappyswift/fixturegen/internal/store"
)

// Option configures a Generator.
type Option interface {
	apply(*options)
}

// options holds the generator configuration.
type options struct {
	codec     codec.Codec
	store     store.Store
	outputDir string
	corpus    *corpus.Corpus
	stats     stats.Collector
	logger    *zap.Logger
	out       io.Writer
	workers   int
	failFast  bool
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		codec:   snappycodec.New(),
		stats:   stats.NewNoop(),
		logger:  zap.NewNop(),
		out:     os.Stdout,
		workers: 1,
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithCodec sets the compression primitive.
// If not set, the Snappy block codec is used.
func WithCodec(c codec.Codec) Option {
	return optionFunc(func(o *options) {
		o.codec = c
	})
}

// WithStore sets the artifact store. It takes precedence over WithOutputDir.
func WithStore(s store.Store) Option {
	return optionFunc(func(o *options) {
		o.store = s
	})
}

// WithOutputDir writes artifacts as files directly under dir.
// The directory must exist when fixtures are written.
func WithOutputDir(dir string) Option {
	return optionFunc(func(o *options) {
		o.outputDir = dir
	})
}

// WithCorpus sets the corpus to generate.
// If not set, corpus.Default calibrated to the codec's block size is used.
func WithCorpus(c *corpus.Corpus) Option {
	return optionFunc(func(o *options) {
		o.corpus = c
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithOutput sets where diagnostic reports are printed.
// Default is os.Stdout; pass io.Discard to silence them.
func WithOutput(w io.Writer) Option {
	return optionFunc(func(o *options) {
		o.out = w
	})
}

// WithWorkers sets how many entries are processed concurrently.
// Default is 1, which keeps report output in corpus order.
func WithWorkers(n int) Option {
	return optionFunc(func(o *options) {
		o.workers = n
	})
}

// WithFailFast stops the run at the first failed entry instead of
// continuing with the rest of the corpus.
func WithFailFast(enabled bool) Option {
	return optionFunc(func(o *options) {
		o.failFast = enabled
	})
}
