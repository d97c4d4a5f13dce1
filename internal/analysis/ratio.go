// Package analysis summarizes compression ratios across a fixture run.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is one fixture's sizes.
type Sample struct {
	Name           string
	InputSize      int
	CompressedSize int
}

// Ratio returns InputSize / CompressedSize. ok is false when the compressed
// size is zero and the ratio is undefined.
func (s Sample) Ratio() (ratio float64, ok bool) {
	if s.CompressedSize <= 0 {
		return 0, false
	}
	return float64(s.InputSize) / float64(s.CompressedSize), true
}

// Summary describes the distribution of ratios over a set of samples.
type Summary struct {
	Count           int // Samples in the ratio distribution.
	Undefined       int // Samples with a zero compressed size.
	TotalInput      int64
	TotalCompressed int64
	Min             float64
	Max             float64
	Mean            float64
	GeoMean         float64
	StdDev          float64
	Expanded        []string // Names whose output is larger than the input.
	Best            string
	Worst           string
}

// OverallRatio returns the aggregate ratio of all bytes in to all bytes out.
func (s *Summary) OverallRatio() (float64, bool) {
	if s.TotalCompressed == 0 {
		return 0, false
	}
	return float64(s.TotalInput) / float64(s.TotalCompressed), true
}

// Summarize computes ratio statistics over samples.
// Samples with an empty input contribute to totals but not to the ratio
// distribution, since their ratio is 0 and would dominate the geometric mean.
func Summarize(samples []Sample) *Summary {
	s := &Summary{}

	var ratios []float64
	var names []string
	for _, sample := range samples {
		s.TotalInput += int64(sample.InputSize)
		s.TotalCompressed += int64(sample.CompressedSize)

		ratio, ok := sample.Ratio()
		if !ok {
			s.Undefined++
			continue
		}
		if ratio < 1 {
			s.Expanded = append(s.Expanded, sample.Name)
		}
		if sample.InputSize == 0 {
			continue
		}
		ratios = append(ratios, ratio)
		names = append(names, sample.Name)
	}

	s.Count = len(ratios)
	if s.Count == 0 {
		return s
	}

	s.Min = floats.Min(ratios)
	s.Max = floats.Max(ratios)
	s.Worst = names[floats.MinIdx(ratios)]
	s.Best = names[floats.MaxIdx(ratios)]
	s.Mean = stat.Mean(ratios, nil)
	s.GeoMean = stat.GeometricMean(ratios, nil)
	if s.Count > 1 {
		s.StdDev = stat.StdDev(ratios, nil)
	}
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	return s
}
