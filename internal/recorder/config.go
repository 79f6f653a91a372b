package recorder

import "github.com/audiolibrelab/samplelog/internal/config"

// FromConfig creates a Recorder for cfg.Output.File, applying the configured
// stop threshold
func FromConfig(cfg *config.Config) *Recorder {
	r := New(cfg.Output.File)
	if n, ok := cfg.StopAfter(); ok {
		r.SetStopAfter(n)
	}
	return r
}
