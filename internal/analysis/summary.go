// Package analysis computes per-channel statistics over a recorded table.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/audiolibrelab/samplelog/internal/table"
)

// ChannelSummary holds descriptive statistics for one channel
type ChannelSummary struct {
	Name   string  `json:"name" yaml:"name"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	RMS    float64 `json:"rms" yaml:"rms"`
	Peak   float64 `json:"peak" yaml:"peak"` // largest absolute value
}

// Summarize returns one summary per column, in table order. Statistics of an
// empty channel are NaN; StdDev needs at least two values.
func Summarize(t *table.Table) []ChannelSummary {
	columns := t.Columns()
	out := make([]ChannelSummary, 0, len(columns))
	for _, c := range columns {
		out = append(out, SummarizeValues(c.Name, c.Values))
	}
	return out
}

// SummarizeValues computes the statistics for a single channel
func SummarizeValues(name string, values []float32) ChannelSummary {
	s := ChannelSummary{Name: name, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		s.Mean, s.StdDev, s.Min, s.Max, s.RMS, s.Peak = nan, nan, nan, nan, nan, nan
		return s
	}

	x := toFloat64(values)

	s.Mean = stat.Mean(x, nil)
	s.StdDev = math.NaN()
	if len(x) > 1 {
		s.StdDev = stat.StdDev(x, nil)
	}
	s.Min = floats.Min(x)
	s.Max = floats.Max(x)
	s.RMS = floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
	s.Peak = floats.Norm(x, math.Inf(1))
	return s
}

func toFloat64(values []float32) []float64 {
	x := make([]float64, len(values))
	for i, v := range values {
		x[i] = float64(v)
	}
	return x
}
