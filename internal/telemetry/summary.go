package telemetry

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a score distribution.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Median float64
	P90    float64
}

// Summarize computes the distribution of scores. An empty input yields a
// zero Summary.
func Summarize(scores []int) Summary {
	if len(scores) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(scores))
	for i, s := range scores {
		xs[i] = float64(s)
	}
	sort.Float64s(xs)

	sum := Summary{
		Count:  len(xs),
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		Mean:   stat.Mean(xs, nil),
		Median: stat.Quantile(0.5, stat.Empirical, xs, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, xs, nil),
	}
	if len(xs) > 1 {
		sum.StdDev = stat.StdDev(xs, nil)
	}
	return sum
}

// SummarizeRecords summarizes the scores of CSV records.
func SummarizeRecords(records []RoundRecord) Summary {
	scores := make([]int, len(records))
	for i, r := range records {
		scores[i] = r.Score
	}
	return Summarize(scores)
}

// String formats the summary on one line.
func (s Summary) String() string {
	if s.Count == 0 {
		return "no rounds"
	}
	return fmt.Sprintf("rounds=%d min=%.0f max=%.0f mean=%.2f stddev=%.2f median=%.0f p90=%.0f",
		s.Count, s.Min, s.Max, s.Mean, s.StdDev, s.Median, s.P90)
}
