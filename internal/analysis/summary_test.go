package analysis

import (
	"math"
	"testing"

	"github.com/audiolibrelab/samplelog/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeValues(t *testing.T) {
	s := SummarizeValues("gain", []float32{1, -2, 3, -4})

	assert.Equal(t, "gain", s.Name)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, -0.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(29.0/3.0), s.StdDev, 1e-12)
	assert.Equal(t, -4.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
	assert.InDelta(t, math.Sqrt(30.0/4.0), s.RMS, 1e-12)
	assert.Equal(t, 4.0, s.Peak)
}

func TestSummarizeValues_SingleValue(t *testing.T) {
	s := SummarizeValues("x", []float32{0.5})

	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 0.5, s.Mean)
	assert.True(t, math.IsNaN(s.StdDev))
	assert.Equal(t, 0.5, s.Peak)
}

func TestSummarizeValues_Empty(t *testing.T) {
	s := SummarizeValues("x", nil)

	assert.Equal(t, 0, s.Count)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.Min))
	assert.True(t, math.IsNaN(s.Peak))
}

func TestSummarize_KeepsTableOrder(t *testing.T) {
	tbl := table.New()
	tbl.Append("sample", 0.5)
	tbl.Append("envelope", 0.25)
	tbl.Append("sample", -0.5)
	tbl.Append("envelope", 0.5)

	got := Summarize(tbl)
	require.Len(t, got, 2)
	assert.Equal(t, "sample", got[0].Name)
	assert.Equal(t, "envelope", got[1].Name)
	assert.InDelta(t, 0.0, got[0].Mean, 1e-12)
	assert.InDelta(t, 0.375, got[1].Mean, 1e-12)
}
