package btaudio

import (
	"encoding/json"
	"fmt"
)

// ChannelMode represents the audio channel arrangement of a stream.
type ChannelMode uint8

// Channel modes.
const (
	ChannelModeUnknown ChannelMode = iota
	Mono
	Stereo
	DualMono
)

// String returns the human-readable string representation of a ChannelMode.
func (ch ChannelMode) String() string {
	switch ch {
	case Mono:
		return "MONO"
	case Stereo:
		return "STEREO"
	case DualMono:
		return "DUALMONO"
	default:
		return "UNKNOWN"
	}
}

// Count returns the number of audio channels carried in the mode.
func (ch ChannelMode) Count() int {
	switch ch {
	case Mono:
		return 1
	case Stereo, DualMono:
		return 2 //nolint:mnd
	default:
		return 0
	}
}

// ParseChannelMode parses the representation produced by ChannelMode.String.
func ParseChannelMode(s string) (ChannelMode, error) {
	switch s {
	case "MONO":
		return Mono, nil
	case "STEREO":
		return Stereo, nil
	case "DUALMONO":
		return DualMono, nil
	case "UNKNOWN", "":
		return ChannelModeUnknown, nil
	}
	return ChannelModeUnknown, fmt.Errorf("unknown channel mode %q", s)
}

// MarshalJSON encodes the channel mode by name.
func (ch ChannelMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(ch.String())
}

// UnmarshalJSON decodes a channel mode name.
func (ch *ChannelMode) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err = json.Unmarshal(data, &s); err != nil {
		return
	}
	*ch, err = ParseChannelMode(s)
	return
}
