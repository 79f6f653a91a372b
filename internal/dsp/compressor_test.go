package dsp

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProbe struct {
	calls int
	after int
}

func (p *failingProbe) Record(string, float32) error {
	p.calls++
	if p.calls > p.after {
		return errors.New("probe failed")
	}
	return nil
}

func (p *failingProbe) IsActive() bool { return true }

func testSettings() Settings {
	return Settings{SampleRate: 48000, Threshold: 0.5, Ratio: 4}
}

func TestNewCompressor_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"sample rate", func(s *Settings) { s.SampleRate = 0 }},
		{"threshold", func(s *Settings) { s.Threshold = 0 }},
		{"ratio", func(s *Settings) { s.Ratio = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSettings()
			tt.mutate(&s)
			_, err := NewCompressor(s)
			assert.Error(t, err)
		})
	}
}

func TestProcess_GainCurve(t *testing.T) {
	c, err := NewCompressor(testSettings())
	require.NoError(t, err)

	// Instant attack and release: the envelope is |x|
	buf := []float32{0.25, -0.5, 1.0, -0.9}
	require.NoError(t, c.Process(buf))

	assert.InDelta(t, 0.25, buf[0], 1e-6)
	assert.InDelta(t, -0.5, buf[1], 1e-6)
	assert.InDelta(t, 0.625, buf[2], 1e-6) // 0.5 + 0.5/4
	assert.InDelta(t, -0.6, buf[3], 1e-6)  // 0.5 + 0.4/4
}

func TestProcess_EnvelopeSmoothing(t *testing.T) {
	s := testSettings()
	s.AttackMs = 10
	c, err := NewCompressor(s)
	require.NoError(t, err)

	require.NoError(t, c.Process([]float32{1}))
	coeff := math.Exp(-1 / (10 * 0.001 * 48000))
	assert.InDelta(t, 1-coeff, c.Envelope(), 1e-12)

	c.Reset()
	assert.Zero(t, c.Envelope())
}

func TestProcess_ProbeError(t *testing.T) {
	c, err := NewCompressor(testSettings())
	require.NoError(t, err)
	c.SetProbe(&failingProbe{after: 5})

	err = c.Process(make([]float32, 4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample 1")
}

func TestSineBurst(t *testing.T) {
	buf := SineBurst(8000, 1000, 16, 0.1, 1.0)
	require.Len(t, buf, 16)

	assert.InDelta(t, 0, buf[0], 1e-6)
	assert.InDelta(t, 0.1, buf[2], 1e-6) // quarter period at 1 kHz / 8 kHz
	assert.InDelta(t, 1.0, buf[10], 1e-6)
}
