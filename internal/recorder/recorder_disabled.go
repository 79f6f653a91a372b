//go:build samplelog_disabled

package recorder

import (
	"io"
	"log/slog"

	"github.com/audiolibrelab/samplelog/internal/table"
)

// Enabled reports whether recording is compiled in
const Enabled = false

// Recorder is the compiled-out stub. Every method returns immediately and no
// values are kept.
type Recorder struct {
	outputFile string
}

// New returns a stub that remembers outputFile and nothing else
func New(outputFile string) *Recorder {
	return &Recorder{outputFile: outputFile}
}

// SetLogger does nothing
func (r *Recorder) SetLogger(*slog.Logger) {}

// SetStopAfter does nothing
func (r *Recorder) SetStopAfter(uint64) {}

// StopAfter never reports a threshold
func (r *Recorder) StopAfter() (uint64, bool) {
	return 0, false
}

// IsActive is always false so callers skip their instrumentation work
func (r *Recorder) IsActive() bool {
	return false
}

// Record discards the value and never fails
func (r *Recorder) Record(string, float32) error {
	return nil
}

// SamplesSeen is always zero
func (r *Recorder) SamplesSeen() uint64 {
	return 0
}

// OutputFile returns the path given to New
func (r *Recorder) OutputFile() string {
	return r.outputFile
}

// Table always returns an empty table
func (r *Recorder) Table() *table.Table {
	return table.New()
}

// Flush writes nothing and never fails
func (r *Recorder) Flush() error {
	return nil
}

// FlushTo writes nothing and never fails
func (r *Recorder) FlushTo(io.Writer) error {
	return nil
}
