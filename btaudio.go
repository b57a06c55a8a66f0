package btaudio

import (
	"errors"
	"fmt"
)

// ErrNoCommonConfiguration is wrapped by BuildConfiguration failures when local and remote capabilities
// share no value for some field.
var ErrNoCommonConfiguration = errors.New("no common configuration")

// CodecParameters holds the codec independent part of a negotiated configuration.
// The same type is used as a negotiation hint, where zero fields mean "no preference".
type CodecParameters struct {
	ChannelMode         ChannelMode `json:"channelMode"`         // Selected channel mode.
	SamplingFrequencyHz int         `json:"samplingFrequencyHz"` // Selected sampling frequency.
	Bitdepth            int         `json:"bitdepth"`            // Bits per sample on the PCM side.
	MinBitrate          int         `json:"minBitrate"`          // Lower bitrate bound in bits per second.
	MaxBitrate          int         `json:"maxBitrate"`          // Upper bitrate bound in bits per second.
}

// Common returns p. It lets CodecParameters serve as Parameters for codecs without specific
// fields, and it is promoted to the codec specific types embedding it.
func (p CodecParameters) Common() CodecParameters {
	return p
}

// String returns a compact representation used in logs.
func (p CodecParameters) String() string {
	return fmt.Sprintf("%s %dHz %dbit %d-%dbps",
		p.ChannelMode, p.SamplingFrequencyHz, p.Bitdepth, p.MinBitrate, p.MaxBitrate)
}

// CodecInfo describes a codec descriptor and its local capability record.
type CodecInfo struct {
	ID                  CodecID       // Stable codec identifier.
	Name                string        // Human readable codec name.
	Capabilities        []byte        // Packed local capability record.
	SamplingFrequencyHz []int         // Sampling frequencies enabled in Capabilities.
	ChannelModes        []ChannelMode // Channel modes enabled in Capabilities.
	Bitdepth            []int         // Supported PCM bit depths.
}

// Parameters is a parsed configuration: the codec independent fields plus whatever the codec
// family adds (SBC block length and bitpool, AAC object type and VBR).
type Parameters interface {
	Common() CodecParameters
	String() string
}

// Codec defines the negotiation contract of a bitmask (A2DP) codec descriptor.
type Codec interface {
	ID() CodecID      // Returns the codec identifier.
	Info() *CodecInfo // Returns the codec description, including its capability record.

	// ParseConfiguration validates a configuration record against the local capabilities.
	// The result is the codec specific parameters type. The returned error is a Status on
	// validation failure, with nil parameters.
	ParseConfiguration(configuration []byte) (Parameters, error)

	// BuildConfiguration selects a configuration supported by both the local and the remote
	// capability records, steered by hint when it is not nil.
	BuildConfiguration(remoteCapabilities []byte, hint *CodecParameters) ([]byte, error)
}
