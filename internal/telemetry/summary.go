package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of one metric.
type Summary struct {
	Metric string  `csv:"metric"`
	N      int     `csv:"n"`
	Mean   float64 `csv:"mean"`
	StdDev float64 `csv:"std"`
	Min    float64 `csv:"min"`
	P50    float64 `csv:"p50"`
	P90    float64 `csv:"p90"`
	Max    float64 `csv:"max"`
}

// Summarize computes the mean, spread and quantiles of values. An empty
// input yields a zero summary carrying only the metric name.
func Summarize(metric string, values []float64) Summary {
	s := Summary{Metric: metric, N: len(values)}
	if len(values) == 0 {
		return s
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		s.StdDev = 0
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return s
}

// Column extracts one metric from a run of samples.
func Column(samples []Sample, pick func(Sample) int) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(pick(s))
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("metric", s.Metric),
		slog.Int("n", s.N),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.StdDev),
		slog.Float64("min", s.Min),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("max", s.Max),
	)
}

// WriteSummaries writes summaries to path as CSV.
func WriteSummaries(path string, summaries []Summary) error {
	return writeCSV(path, summaries)
}
