package fixturegen

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/multierr"

	"github.com/snappyswift/fixturegen/internal/analysis"
	"github.com/snappyswift/fixturegen/internal/manifest"
)

// Report describes one written fixture.
type Report struct {
	Name           string
	InputSize      int
	CompressedSize int
	// Location is where the artifact was written (a path or object URL).
	Location       string
	InputSHA256    string
	ArtifactSHA256 string
}

// Ratio returns InputSize / CompressedSize. ok is false when the compressed
// size is zero, in which case the ratio is undefined.
func (r *Report) Ratio() (ratio float64, ok bool) {
	return r.sample().Ratio()
}

// RatioString formats the ratio as a decimal with an "x" suffix, or "N/A".
func (r *Report) RatioString() string {
	ratio, ok := r.Ratio()
	if !ok {
		return "N/A"
	}
	return strconv.FormatFloat(ratio, 'f', 2, 64) + "x"
}

// WriteTo writes the human-readable diagnostic block for r.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "%s:\n  Input size: %d bytes\n  Compressed size: %d bytes\n  Ratio: %s\n  Saved to: %s\n\n",
		r.Name, r.InputSize, r.CompressedSize, r.RatioString(), r.Location)
	return int64(n), err
}

func (r *Report) sample() analysis.Sample {
	return analysis.Sample{Name: r.Name, InputSize: r.InputSize, CompressedSize: r.CompressedSize}
}

// Summary collects the outcome of a run, in corpus order.
type Summary struct {
	Reports  []*Report
	Failures []*FixtureError
	// Skipped lists entries never attempted because the run was cancelled
	// or stopped at the first failure.
	Skipped []string
}

// Failed reports whether any entry failed or was skipped.
func (s *Summary) Failed() bool {
	return len(s.Failures) > 0 || len(s.Skipped) > 0
}

// Err combines every entry failure into one error, or returns nil.
func (s *Summary) Err() error {
	var err error
	for _, f := range s.Failures {
		err = multierr.Append(err, f)
	}
	return err
}

// Analyze returns ratio statistics over the written fixtures.
func (s *Summary) Analyze() *analysis.Summary {
	samples := make([]analysis.Sample, len(s.Reports))
	for i, r := range s.Reports {
		samples[i] = r.sample()
	}
	return analysis.Summarize(samples)
}

// Manifest describes the written fixtures for downstream consumers.
func (s *Summary) Manifest(codecName, ext string, blockSize int) *manifest.Manifest {
	m := &manifest.Manifest{
		Version:     manifest.CurrentVersion,
		Codec:       codecName,
		Extension:   ext,
		BlockSize:   blockSize,
		GeneratedAt: time.Now().UTC(),
		Entries:     make([]manifest.Entry, 0, len(s.Reports)),
	}
	for _, r := range s.Reports {
		m.Entries = append(m.Entries, manifest.Entry{
			Name:           r.Name,
			Location:       r.Location,
			InputSize:      r.InputSize,
			CompressedSize: r.CompressedSize,
			InputSHA256:    r.InputSHA256,
			ArtifactSHA256: r.ArtifactSHA256,
		})
	}
	return m
}
