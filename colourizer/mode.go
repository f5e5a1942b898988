package colourizer

import "fmt"

// ProcessingMode selects the filter topology.
type ProcessingMode int

const (
	// ModeMono filters a single downmixed signal and applies the wet
	// result uniformly to all output channels.
	ModeMono ProcessingMode = iota

	// ModeMulti filters each channel through its own independent filter
	// instance, preserving inter-channel differences.
	ModeMulti
)

// String returns the host-facing mode name.
func (m ProcessingMode) String() string {
	switch m {
	case ModeMono:
		return "Mono"
	case ModeMulti:
		return "Multi"
	default:
		return fmt.Sprintf("ProcessingMode(%d)", int(m))
	}
}

func (m ProcessingMode) valid() bool {
	return m == ModeMono || m == ModeMulti
}

// ParseProcessingMode maps a host-facing mode name to a ProcessingMode.
func ParseProcessingMode(name string) (ProcessingMode, error) {
	switch name {
	case "Mono", "mono":
		return ModeMono, nil
	case "Multi", "multi":
		return ModeMulti, nil
	default:
		return 0, fmt.Errorf("%w: processing mode %q", ErrInvalidParameter, name)
	}
}

// DownmixPolicy selects how Mono mode derives its representative signal
// from a multi-channel block.
type DownmixPolicy int

const (
	// DownmixAverage sums all channels and divides by the channel count.
	DownmixAverage DownmixPolicy = iota

	// DownmixFirstChannel uses the first channel's samples unmodified.
	DownmixFirstChannel
)

// String returns a readable policy name.
func (p DownmixPolicy) String() string {
	switch p {
	case DownmixAverage:
		return "Average"
	case DownmixFirstChannel:
		return "FirstChannel"
	default:
		return fmt.Sprintf("DownmixPolicy(%d)", int(p))
	}
}

func (p DownmixPolicy) valid() bool {
	return p == DownmixAverage || p == DownmixFirstChannel
}
