package recorder

import (
	"errors"
	"fmt"
)

// SampleChannel is the heartbeat channel. Every write to it counts one sample.
const SampleChannel = "sample"

var (
	// ErrImbalance matches every *ImbalanceError via errors.Is
	ErrImbalance = errors.New("channel table imbalance")

	// ErrEmptyChannel is returned by Record for an empty channel name
	ErrEmptyChannel = errors.New("channel name must not be empty")
)

// ImbalanceReason tells which table rule a write broke
type ImbalanceReason string

const (
	// ReasonSkew means two channels are more than one value apart
	ReasonSkew ImbalanceReason = "skew"
	// ReasonMissingSample means a channel holds two or more values but no
	// "sample" channel was ever written
	ReasonMissingSample ImbalanceReason = "missing sample channel"
)

// ImbalanceError reports that the channel table lost its per-sample
// alignment. The offending value has already been stored, so the recording
// cannot be repaired and should be abandoned.
type ImbalanceError struct {
	Channel string // channel of the write that broke the table, empty for Flush
	Reason  ImbalanceReason
	Min     int // shortest channel length
	Max     int // longest channel length
}

func (e *ImbalanceError) Error() string {
	switch e.Reason {
	case ReasonMissingSample:
		return fmt.Sprintf("channel %q: %d values recorded but no %q channel is present", e.Channel, e.Max, SampleChannel)
	default:
		return fmt.Sprintf("channel %q: value caused imbalance, channel lengths range from %d to %d", e.Channel, e.Min, e.Max)
	}
}

func (e *ImbalanceError) Is(target error) bool {
	return target == ErrImbalance
}
