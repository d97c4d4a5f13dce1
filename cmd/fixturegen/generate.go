package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/snappyswift/fixturegen"
	"github.com/snappyswift/fixturegen/internal/codec"
	"github.com/snappyswift/fixturegen/internal/manifest"
	"github.com/snappyswift/fixturegen/internal/stats"
	"github.com/snappyswift/fixturegen/internal/stats/logger"
	"github.com/snappyswift/fixturegen/internal/stats/prometheus"
	"github.com/snappyswift/fixturegen/internal/store"
	"github.com/snappyswift/fixturegen/internal/store/diskstore"
	"github.com/snappyswift/fixturegen/internal/store/gcsstore"
	"github.com/snappyswift/fixturegen/internal/store/s3store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compress the corpus and write one fixture per entry",
	Long: `Compress every corpus entry and write it to <output>/<name>.<ext>.

A failing entry does not stop the run: every failure is reported at the
end and the command exits non-zero. Existing fixtures are overwritten.

Examples:
  # Write fixtures and a checksum manifest
  fixturegen generate -o ./testdata --manifest ./testdata.json

  # Publish fixtures to object storage
  fixturegen generate --output-gcs gs://my-bucket/fixtures
  fixturegen generate --output-s3 s3://my-bucket/fixtures

  # Export run metrics for node_exporter
  fixturegen generate --metrics-textfile /var/lib/node_exporter/fixturegen.prom`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var (
	workers         int
	failFast        bool
	outputGCS       string
	outputS3        string
	s3Region        string
	s3Endpoint      string
	manifestPath    string
	metricsTextfile string
)

func init() {
	generateCmd.Flags().IntVar(&workers, "workers", 1, "number of entries compressed concurrently")
	generateCmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first failed entry")
	generateCmd.Flags().StringVar(&outputGCS, "output-gcs", "", "GCS path for output (gs://bucket/prefix)")
	generateCmd.Flags().StringVar(&outputS3, "output-s3", "", "S3 path for output (s3://bucket/prefix)")
	generateCmd.Flags().StringVar(&s3Region, "s3-region", "", "AWS region for --output-s3")
	generateCmd.Flags().StringVar(&s3Endpoint, "s3-endpoint", "", "custom endpoint for S3-compatible services")
	generateCmd.Flags().StringVar(&manifestPath, "manifest", "", "write a JSON manifest with checksums to this path")
	generateCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file")
	generateCmd.MarkFlagsMutuallyExclusive("output-gcs", "output-s3")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	c, err := loadCodec()
	if err != nil {
		return err
	}
	cp, err := loadCorpus(c)
	if err != nil {
		return err
	}
	st, err := openOutputStore(ctx, c)
	if err != nil {
		return err
	}

	var collectors stats.Tee
	var gatherer prom.Gatherer
	if metricsTextfile != "" {
		registry := prom.NewRegistry()
		gatherer = registry
		collectors = append(collectors, prometheus.New(registry))
	}
	if verbose {
		collectors = append(collectors, logger.New(log.Named("stats")))
	}

	gen, err := fixturegen.New(
		fixturegen.WithCodec(c),
		fixturegen.WithStore(st),
		fixturegen.WithCorpus(cp),
		fixturegen.WithStats(collectors),
		fixturegen.WithLogger(log),
		fixturegen.WithOutput(cmd.OutOrStdout()),
		fixturegen.WithWorkers(workers),
		fixturegen.WithFailFast(failFast),
	)
	if err != nil {
		st.Close()
		return err
	}
	defer gen.Close()

	summary, runErr := gen.Run(ctx)
	return finishGenerate(log, gen, summary, runErr, gatherer)
}

// finishGenerate writes the optional manifest and metrics textfile and
// combines their errors with the outcome of the run.
func finishGenerate(log *zap.Logger, gen *fixturegen.Generator, summary *fixturegen.Summary, runErr error, gatherer prom.Gatherer) error {
	err := runError(summary, runErr, gen.Corpus().Len())

	if manifestPath != "" && summary != nil {
		if werr := manifest.Write(manifestPath, gen.Manifest(summary)); werr != nil {
			err = multierr.Append(err, werr)
		} else {
			log.Info("manifest written", zap.String("path", manifestPath))
		}
	}
	if gatherer != nil {
		err = multierr.Append(err, prometheus.WriteTextfile(metricsTextfile, gatherer))
	}
	return err
}

// runError summarizes a failed run as a count, keeping other errors as is.
func runError(summary *fixturegen.Summary, runErr error, total int) error {
	if runErr != nil && summary != nil && summary.Failed() {
		return fmt.Errorf("%d of %d fixtures failed", len(summary.Failures)+len(summary.Skipped), total)
	}
	return runErr
}

// openOutputStore returns the object store named by --output-gcs or
// --output-s3, or a disk store rooted at --output.
func openOutputStore(ctx context.Context, c codec.Codec) (store.Store, error) {
	switch {
	case outputGCS != "":
		st, err := gcsstore.NewFromURL(ctx, outputGCS, c)
		if err != nil {
			return nil, fmt.Errorf("opening GCS output: %w", err)
		}
		return st, nil
	case outputS3 != "":
		var opts []s3store.Option
		if s3Region != "" {
			opts = append(opts, s3store.WithRegion(s3Region))
		}
		if s3Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(s3Endpoint))
		}
		st, err := s3store.NewFromURL(ctx, outputS3, c, opts...)
		if err != nil {
			return nil, fmt.Errorf("opening S3 output: %w", err)
		}
		return st, nil
	default:
		return diskstore.New(outputDir, c)
	}
}
