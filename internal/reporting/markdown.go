// Package reporting renders codec comparison reports.
package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/snappyswift/fixturegen"
)

// CodecResult is one codec's pass over a corpus.
type CodecResult struct {
	Codec   string
	Summary *fixturegen.Summary
}

// MarkdownReport generates comparison reports in Markdown format.
type MarkdownReport struct {
	w   io.Writer
	now func() time.Time
}

// NewMarkdownReport creates a new Markdown report writer.
func NewMarkdownReport(w io.Writer) *MarkdownReport {
	return &MarkdownReport{w: w, now: time.Now}
}

// WriteHeader writes the report header.
func (r *MarkdownReport) WriteHeader(title string) {
	fmt.Fprintf(r.w, "# %s\n\n", title)
	fmt.Fprintf(r.w, "Generated: %s\n\n", r.now().Format(time.RFC3339))
}

// WriteSummaryTable writes one row of aggregate statistics per codec.
func (r *MarkdownReport) WriteSummaryTable(results []CodecResult) {
	fmt.Fprintln(r.w, "## Summary")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Codec | Fixtures | Failures | Input | Output | Overall | Geo Mean | Expanded |")
	fmt.Fprintln(r.w, "|-------|----------|----------|-------|--------|---------|----------|----------|")

	for _, res := range results {
		a := res.Summary.Analyze()
		overall := "N/A"
		if ratio, ok := a.OverallRatio(); ok {
			overall = fmt.Sprintf("%.2fx", ratio)
		}
		fmt.Fprintf(r.w, "| %s | %d | %d | %d | %d | %s | %.2fx | %d |\n",
			res.Codec, len(res.Summary.Reports), len(res.Summary.Failures),
			a.TotalInput, a.TotalCompressed, overall, a.GeoMean, len(a.Expanded))
	}
	fmt.Fprintln(r.w)
}

// WriteEntryTable writes the compressed size and ratio of every entry under
// every codec. names fixes the row order.
func (r *MarkdownReport) WriteEntryTable(names []string, results []CodecResult) {
	fmt.Fprintln(r.w, "## Entries")
	fmt.Fprintln(r.w)

	header := "| Entry | Input |"
	rule := "|-------|-------|"
	for _, res := range results {
		header += " " + res.Codec + " |"
		rule += strings.Repeat("-", len(res.Codec)+2) + "|"
	}
	fmt.Fprintln(r.w, header)
	fmt.Fprintln(r.w, rule)

	byCodec := make([]map[string]*fixturegen.Report, len(results))
	for i, res := range results {
		byCodec[i] = make(map[string]*fixturegen.Report, len(res.Summary.Reports))
		for _, rep := range res.Summary.Reports {
			byCodec[i][rep.Name] = rep
		}
	}

	for _, name := range names {
		input := "-"
		var cells []string
		for i := range results {
			rep, ok := byCodec[i][name]
			if !ok {
				cells = append(cells, "failed")
				continue
			}
			input = fmt.Sprintf("%d", rep.InputSize)
			cells = append(cells, fmt.Sprintf("%d (%s)", rep.CompressedSize, rep.RatioString()))
		}
		fmt.Fprintf(r.w, "| %s | %s | %s |\n", name, input, strings.Join(cells, " | "))
	}
	fmt.Fprintln(r.w)
}

// WriteDistributionChart writes an ASCII chart of ratios on a log2 scale.
func (r *MarkdownReport) WriteDistributionChart(res CodecResult) {
	fmt.Fprintf(r.w, "### %s Ratio Distribution\n\n", res.Codec)
	fmt.Fprintln(r.w, "```")

	hist := makeHistogram(res.Summary.Reports)
	maxCount := 0
	for _, count := range hist {
		maxCount = max(maxCount, count)
	}

	width := 40
	for i, count := range hist {
		barLen := 0
		if maxCount > 0 {
			barLen = count * width / maxCount
		}
		bar := strings.Repeat("█", barLen)
		fmt.Fprintf(r.w, "%-9s │ %s %d\n", bucketLabels[i], bar, count)
	}

	fmt.Fprintln(r.w, "```")
	fmt.Fprintln(r.w)
}

var bucketLabels = []string{"< 1x", "1-2x", "2-4x", "4-16x", "16-256x", ">= 256x"}

// bucketBounds are the exclusive upper bounds of every bucket but the last.
var bucketBounds = []float64{1, 2, 4, 16, 256}

func makeHistogram(reports []*fixturegen.Report) []int {
	hist := make([]int, len(bucketLabels))
	for _, rep := range reports {
		ratio, ok := rep.Ratio()
		if !ok {
			continue
		}
		bucket := len(bucketBounds)
		for i, bound := range bucketBounds {
			if ratio < bound {
				bucket = i
				break
			}
		}
		hist[bucket]++
	}
	return hist
}

// WriteFooter writes the report footer.
func (r *MarkdownReport) WriteFooter() {
	fmt.Fprintln(r.w, "---")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "*Report generated by fixturegen compare*")
}
