// Package samplelog records named float channels sample by sample inside
// real-time audio code and writes them to CSV for offline inspection.
//
// A minimal plugin integration:
//
//	rec := samplelog.New("/tmp/compressor.csv")
//	rec.SetStopAfter(48000)
//
//	// for every processed sample
//	if rec.IsActive() {
//	    _ = rec.Record("sample", in)
//	    _ = rec.Record("gain", gain)
//	}
//
//	// on deactivation
//	if err := rec.Flush(); err != nil { ... }
//
// Build with -tags samplelog_disabled to compile every call down to a no-op.
package samplelog

import (
	"io"

	"github.com/audiolibrelab/samplelog/internal/csvtable"
	"github.com/audiolibrelab/samplelog/internal/recorder"
	"github.com/audiolibrelab/samplelog/internal/table"
)

// Recorder accumulates channels and flushes them to a CSV file.
type Recorder = recorder.Recorder

// ImbalanceError reports a write that broke per-sample alignment.
type ImbalanceError = recorder.ImbalanceError

// ParseError reports a CSV field or row that could not be decoded.
type ParseError = csvtable.ParseError

// Table is an insertion-ordered set of named channels.
type Table = table.Table

// SampleChannel is the heartbeat channel name.
const SampleChannel = recorder.SampleChannel

// Enabled is false in builds tagged samplelog_disabled.
const Enabled = recorder.Enabled

var (
	ErrImbalance     = recorder.ErrImbalance
	ErrEmptyChannel  = recorder.ErrEmptyChannel
	ErrMissingHeader = csvtable.ErrMissingHeader
)

// New creates a Recorder that flushes to outputFile.
func New(outputFile string) *Recorder {
	return recorder.New(outputFile)
}

// ReadFile loads a CSV written by Flush.
func ReadFile(path string) (*Table, error) {
	return csvtable.ReadFile(path)
}

// Read decodes a CSV written by Flush.
func Read(r io.Reader) (*Table, error) {
	return csvtable.Read(r)
}

// ReadMap loads a CSV written by Flush into a plain name to values map.
func ReadMap(path string) (map[string][]float32, error) {
	t, err := csvtable.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return t.Map(), nil
}

// WriteFile writes t as CSV to path.
func WriteFile(path string, t *Table) error {
	return csvtable.WriteFile(path, t)
}
