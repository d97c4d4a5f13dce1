package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snappyswift/fixturegen/internal/analysis"
	"github.com/snappyswift/fixturegen/internal/store"
	"github.com/snappyswift/fixturegen/internal/store/diskstore"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show compression statistics for the generated fixtures",
	Long: `Display statistics about the fixtures in the output directory including:
- Number of fixtures and missing entries
- Total input and fixture sizes
- Overall, mean and geometric-mean compression ratio
- Best and worst compressing entries`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	c, err := loadCodec()
	if err != nil {
		return err
	}
	cp, err := loadCorpus(c)
	if err != nil {
		return err
	}
	st, err := diskstore.New(outputDir, c)
	if err != nil {
		return err
	}
	defer st.Close()

	var samples []analysis.Sample
	var missing []string
	for _, tc := range cp.Cases() {
		data, err := st.ReadArtifact(cmd.Context(), tc.Name)
		if errors.Is(err, store.ErrNotFound) {
			missing = append(missing, tc.Name)
			continue
		}
		if err != nil {
			return err
		}
		samples = append(samples, analysis.Sample{
			Name:           tc.Name,
			InputSize:      len(tc.Input),
			CompressedSize: len(data),
		})
	}

	out := cmd.OutOrStdout()
	if len(samples) == 0 {
		fmt.Fprintln(out, "No fixtures found in output directory.")
		fmt.Fprintln(out, "Run 'fixturegen generate' to create them.")
		return nil
	}

	s := analysis.Summarize(samples)
	fmt.Fprintf(out, "Output directory: %s\n", outputDir)
	fmt.Fprintf(out, "Codec:            %s\n", c.Name())
	fmt.Fprintf(out, "Fixtures:         %d of %d\n", len(samples), cp.Len())
	fmt.Fprintf(out, "Total input:      %s\n", formatBytes(s.TotalInput))
	fmt.Fprintf(out, "Total fixtures:   %s\n", formatBytes(s.TotalCompressed))
	if overall, ok := s.OverallRatio(); ok {
		fmt.Fprintf(out, "Overall ratio:    %.2fx\n", overall)
	}
	if s.Count > 0 {
		fmt.Fprintf(out, "Mean ratio:       %.2fx (geometric %.2fx, stddev %.2f)\n", s.Mean, s.GeoMean, s.StdDev)
		fmt.Fprintf(out, "Best:             %s (%.2fx)\n", s.Best, s.Max)
		fmt.Fprintf(out, "Worst:            %s (%.2fx)\n", s.Worst, s.Min)
	}
	if len(s.Expanded) > 0 {
		fmt.Fprintf(out, "Expanded:         %s\n", strings.Join(s.Expanded, ", "))
	}
	if len(missing) > 0 {
		fmt.Fprintf(out, "Missing:          %s\n", strings.Join(missing, ", "))
	}

	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
