// Package dsp holds a small feed-forward compressor that reports its internal
// state to a Probe on every sample. The demo command uses it to show how a
// plugin drives a recorder.
package dsp

import (
	"fmt"
	"math"
)

// Channel names recorded by the compressor
const (
	ChannelInput    = "sample"
	ChannelEnvelope = "envelope"
	ChannelGain     = "gain"
	ChannelOutput   = "output"
)

// Probe receives per-sample diagnostics. *recorder.Recorder satisfies it.
type Probe interface {
	Record(channel string, value float32) error
	IsActive() bool
}

// Settings configures a Compressor
type Settings struct {
	SampleRate int
	Threshold  float64 // linear amplitude
	Ratio      float64
	AttackMs   float64
	ReleaseMs  float64
}

type Compressor struct {
	settings     Settings
	attackCoeff  float64
	releaseCoeff float64
	envelope     float64
	probe        Probe
}

// NewCompressor validates s and builds a Compressor
func NewCompressor(s Settings) (*Compressor, error) {
	if s.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0, got: %d", s.SampleRate)
	}
	if s.Threshold <= 0 {
		return nil, fmt.Errorf("threshold must be > 0, got: %.2f", s.Threshold)
	}
	if s.Ratio < 1 {
		return nil, fmt.Errorf("ratio must be >= 1, got: %.2f", s.Ratio)
	}

	return &Compressor{
		settings:     s,
		attackCoeff:  smoothingCoeff(s.AttackMs, s.SampleRate),
		releaseCoeff: smoothingCoeff(s.ReleaseMs, s.SampleRate),
	}, nil
}

// smoothingCoeff returns the one-pole coefficient for a time constant in ms.
// Zero means the envelope follows the input instantly.
func smoothingCoeff(ms float64, sampleRate int) float64 {
	if ms <= 0 {
		return 0
	}
	return math.Exp(-1 / (ms * 0.001 * float64(sampleRate)))
}

// SetProbe attaches p, or detaches the current probe when p is nil
func (c *Compressor) SetProbe(p Probe) {
	c.probe = p
}

// Envelope returns the current envelope level
func (c *Compressor) Envelope() float64 {
	return c.envelope
}

// Reset clears the envelope
func (c *Compressor) Reset() {
	c.envelope = 0
}

// Process compresses buf in place. A probe error aborts processing and is
// returned; samples already processed keep their new values.
func (c *Compressor) Process(buf []float32) error {
	for i, x := range buf {
		in := float64(x)
		level := math.Abs(in)

		coeff := c.releaseCoeff
		if level > c.envelope {
			coeff = c.attackCoeff
		}
		c.envelope = coeff*c.envelope + (1-coeff)*level

		gain := c.gainFor(c.envelope)
		out := float32(in * gain)
		buf[i] = out

		if c.probe != nil && c.probe.IsActive() {
			if err := c.report(x, gain, out); err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
		}
	}
	return nil
}

// gainFor is the static gain curve: unity below threshold, ratio:1 above
func (c *Compressor) gainFor(envelope float64) float64 {
	t := c.settings.Threshold
	if envelope <= t {
		return 1
	}
	return (t + (envelope-t)/c.settings.Ratio) / envelope
}

func (c *Compressor) report(in float32, gain float64, out float32) error {
	if err := c.probe.Record(ChannelInput, in); err != nil {
		return err
	}
	if err := c.probe.Record(ChannelEnvelope, float32(c.envelope)); err != nil {
		return err
	}
	if err := c.probe.Record(ChannelGain, float32(gain)); err != nil {
		return err
	}
	return c.probe.Record(ChannelOutput, out)
}
