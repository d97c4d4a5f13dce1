package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/snappyswift/fixturegen/internal/codec"
	"github.com/snappyswift/fixturegen/internal/codec/codecs"
	"github.com/snappyswift/fixturegen/internal/corpus"
)

// DefaultOutputDir is where the decoder test suite looks for fixtures.
const DefaultOutputDir = "Tests/SnappySwiftTests/TestData"

var (
	// Global flags.
	outputDir  string
	codecName  string
	corpusFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "fixturegen",
	Short: "Generate compressed test fixtures for a codec's decoder tests",
	Long: `Fixturegen compresses a fixed corpus of named inputs and writes each
result to <output>/<name>.<ext>, printing the input size, compressed size
and ratio of every entry.

Running without a subcommand is the same as "fixturegen generate".

Examples:
  # Generate Snappy fixtures into the default test data directory
  fixturegen

  # Generate into another directory with another codec
  fixturegen generate -o ./testdata --codec s2

  # Check that every fixture decodes back to its input
  fixturegen verify --strict

  # Show the corpus
  fixturegen list`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runGenerate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", DefaultOutputDir, "directory fixtures are written to (must exist)")
	rootCmd.PersistentFlags().StringVar(&codecName, "codec", codecs.Default, fmt.Sprintf("codec to use: %v", codecs.Names()))
	rootCmd.PersistentFlags().StringVar(&corpusFile, "corpus", "", "YAML corpus manifest (default: built-in corpus)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// loadCodec resolves the --codec flag.
func loadCodec() (codec.Codec, error) {
	return codecs.ByName(codecName)
}

// loadCorpus returns the --corpus manifest, or the built-in corpus
// calibrated to c's block size.
func loadCorpus(c codec.Codec) (*corpus.Corpus, error) {
	if corpusFile == "" {
		return corpus.Default(c.BlockSize()), nil
	}
	return corpus.LoadFile(corpusFile)
}

// newLogger returns a development logger on stderr when --verbose is set.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
