//go:build !samplelog_disabled

// Package recorder accumulates named float channels sample by sample and
// writes them to a CSV file for offline inspection.
//
// Callers record every channel once per processed sample, one of them being
// the "sample" channel, and call Flush at shutdown. The table is checked after
// every write: channels may be at most one value apart, and once any channel
// holds two values a "sample" channel must exist.
//
// Building with the samplelog_disabled tag replaces the Recorder with a stub
// of the same API that keeps no state, so instrumented code costs nothing in
// production builds.
package recorder

import (
	"io"
	"log/slog"

	"github.com/audiolibrelab/samplelog/internal/csvtable"
	"github.com/audiolibrelab/samplelog/internal/table"
)

// Enabled reports whether recording is compiled in
const Enabled = true

// Recorder is not safe for concurrent use. It is meant to live on the
// processing thread it observes; separate Recorders are independent.
type Recorder struct {
	table      *table.Table
	samples    uint64
	stopAfter  uint64
	hasStop    bool
	outputFile string
	logger     *slog.Logger
}

// New creates an empty Recorder that flushes to outputFile
func New(outputFile string) *Recorder {
	return &Recorder{
		table:      table.New(),
		outputFile: outputFile,
		logger:     slog.Default(),
	}
}

// SetLogger replaces the logger used for flush and diagnostics messages
func (r *Recorder) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	r.logger = logger
}

// SetStopAfter stops recording once n samples have been seen.
// It takes effect on the next write.
func (r *Recorder) SetStopAfter(n uint64) {
	r.stopAfter = n
	r.hasStop = true
}

// StopAfter returns the stop threshold and whether one is set
func (r *Recorder) StopAfter() (uint64, bool) {
	return r.stopAfter, r.hasStop
}

// IsActive reports whether Record still stores values. Callers can use it to
// skip computing expensive diagnostics.
func (r *Recorder) IsActive() bool {
	return !r.hasStop || r.samples < r.stopAfter
}

// Record appends value to channel. Once the stop threshold is reached it
// returns nil without storing anything.
//
// An *ImbalanceError means the write broke the table's alignment. The value
// is kept, so the recording can no longer be trusted and callers should stop
// recording.
func (r *Recorder) Record(channel string, value float32) error {
	if !r.IsActive() {
		return nil
	}
	if channel == "" {
		return ErrEmptyChannel
	}

	r.table.Append(channel, value)

	if channel == SampleChannel {
		r.samples++
		if r.hasStop && r.samples == r.stopAfter {
			r.logger.Debug("Sample recorder reached stop threshold", "samples", r.samples, "file", r.outputFile)
		}
	}

	if err := r.check(channel); err != nil {
		r.logger.Warn("Sample recorder table imbalance", "channel", channel, "error", err)
		return err
	}
	return nil
}

// check verifies the table invariants. channel names the write being checked.
func (r *Recorder) check(channel string) error {
	min, max := r.table.LengthRange()
	if max-min > 1 {
		return &ImbalanceError{Channel: channel, Reason: ReasonSkew, Min: min, Max: max}
	}
	if max >= 2 && !r.table.Has(SampleChannel) {
		return &ImbalanceError{Channel: channel, Reason: ReasonMissingSample, Min: min, Max: max}
	}
	return nil
}

// SamplesSeen returns how many values were written to the sample channel
func (r *Recorder) SamplesSeen() uint64 {
	return r.samples
}

// OutputFile returns the path Flush writes to
func (r *Recorder) OutputFile() string {
	return r.outputFile
}

// Table returns a copy of the recorded channels
func (r *Recorder) Table() *table.Table {
	return r.table.Clone()
}

// Flush writes the table to the output file, replacing any previous
// contents. Nothing is written if the table is imbalanced. Recording state is
// kept, so Flush may be called again later.
func (r *Recorder) Flush() error {
	if err := r.check(""); err != nil {
		return err
	}

	if err := csvtable.WriteFile(r.outputFile, r.table); err != nil {
		return err
	}

	r.logger.Debug("Sample recorder flushed", "file", r.outputFile, "channels", r.table.Len(), "rows", r.table.Rows())
	return nil
}

// FlushTo is Flush for an arbitrary writer
func (r *Recorder) FlushTo(w io.Writer) error {
	if err := r.check(""); err != nil {
		return err
	}
	return csvtable.Write(w, r.table)
}
