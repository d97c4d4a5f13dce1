// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the generator.
const (
	// Per-fixture metrics.
	MetricFixtures         = "fixturegen_fixtures_total"
	MetricFailures         = "fixturegen_failures_total"
	MetricInputBytes       = "fixturegen_input_bytes_total"
	MetricCompressedBytes  = "fixturegen_compressed_bytes_total"
	MetricCompressionRatio = "fixturegen_compression_ratio"

	// Run metrics.
	MetricCorpusSize = "fixturegen_corpus_entries"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}

// Tee fans every call out to each collector in order.
type Tee []Collector

// Compile-time check that Tee implements Collector.
var _ Collector = Tee(nil)

func (t Tee) IncCounter(name string, delta int64) {
	for _, c := range t {
		c.IncCounter(name, delta)
	}
}

func (t Tee) SetGauge(name string, value int64) {
	for _, c := range t {
		c.SetGauge(name, value)
	}
}

func (t Tee) ObserveHistogram(name string, value float64) {
	for _, c := range t {
		c.ObserveHistogram(name, value)
	}
}
