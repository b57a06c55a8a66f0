// Package leaudio matches predefined LE audio endpoint configuration templates against remote
// capability declarations, caller requirements, QoS requirements and broadcast requirements.
//
// Templates are plain values: every match returns filtered copies and never mutates its input.
package leaudio

import (
	"fmt"

	"github.com/ugparu/btaudio"
)

// Direction selects the sink or source side of an endpoint.
type Direction uint8

// Directions.
const (
	Sink Direction = iota + 1
	Source
)

func (d Direction) String() string {
	switch d {
	case Sink:
		return "SINK"
	case Source:
		return "SOURCE"
	}
	return "UNKNOWN"
}

// AudioContext is a bitmask of audio usage contexts.
type AudioContext uint32

// Audio contexts.
const (
	ContextUnspecified     AudioContext = 0x0001
	ContextConversational  AudioContext = 0x0002
	ContextMedia           AudioContext = 0x0004
	ContextGame            AudioContext = 0x0008
	ContextInstructional   AudioContext = 0x0010
	ContextVoiceAssistants AudioContext = 0x0020
	ContextLiveAudio       AudioContext = 0x0040
	ContextSoundEffects    AudioContext = 0x0080
	ContextNotifications   AudioContext = 0x0100
	ContextRingtoneAlerts  AudioContext = 0x0200
	ContextAlerts          AudioContext = 0x0400
	ContextEmergencyAlarm  AudioContext = 0x0800
)

func (c AudioContext) String() string {
	return fmt.Sprintf("CONTEXT(%#04x)", uint32(c))
}

// ConfigurationTag identifies a codec specific configuration field.
type ConfigurationTag uint8

// Configuration field tags.
const (
	SamplingFrequency ConfigurationTag = iota + 1
	FrameDuration
	AudioChannelAllocation
	OctetsPerCodecFrame
	CodecFrameBlocksPerSDU
)

func (t ConfigurationTag) String() string {
	switch t {
	case SamplingFrequency:
		return "SAMPLING_FREQUENCY"
	case FrameDuration:
		return "FRAME_DURATION"
	case AudioChannelAllocation:
		return "AUDIO_CHANNEL_ALLOCATION"
	case OctetsPerCodecFrame:
		return "OCTETS_PER_CODEC_FRAME"
	case CodecFrameBlocksPerSDU:
		return "CODEC_FRAME_BLOCKS_PER_SDU"
	}
	return fmt.Sprintf("CONFIGURATION_TAG(%d)", uint8(t))
}

// Frame duration codes carried by a FrameDuration field.
const (
	FrameDuration7500us  uint32 = 0x00
	FrameDuration10000us uint32 = 0x01
)

// Channel locations carried by an AudioChannelAllocation field.
const (
	LocationFrontLeft   uint32 = 0x00000001
	LocationFrontRight  uint32 = 0x00000002
	LocationFrontCenter uint32 = 0x00000004
	LocationStereo             = LocationFrontLeft | LocationFrontRight
)

// ConfigurationField is one concrete value of an endpoint configuration.
type ConfigurationField struct {
	Tag   ConfigurationTag `json:"tag"   yaml:"tag"`
	Value uint32           `json:"value" yaml:"value"`
}

func (f ConfigurationField) String() string {
	return fmt.Sprintf("%s=%d", f.Tag, f.Value)
}

// CapabilityTag identifies a codec specific capability declared by a remote device.
type CapabilityTag uint8

// Capability tags.
const (
	SupportedSamplingFrequencies CapabilityTag = iota + 1
	SupportedFrameDurations
	SupportedAudioChannelCounts
	SupportedOctetsPerCodecFrame
	SupportedMaxCodecFramesPerSDU
)

func (t CapabilityTag) String() string {
	switch t {
	case SupportedSamplingFrequencies:
		return "SUPPORTED_SAMPLING_FREQUENCIES"
	case SupportedFrameDurations:
		return "SUPPORTED_FRAME_DURATIONS"
	case SupportedAudioChannelCounts:
		return "SUPPORTED_AUDIO_CHANNEL_COUNTS"
	case SupportedOctetsPerCodecFrame:
		return "SUPPORTED_OCTETS_PER_CODEC_FRAME"
	case SupportedMaxCodecFramesPerSDU:
		return "SUPPORTED_MAX_CODEC_FRAMES_PER_SDU"
	}
	return fmt.Sprintf("CAPABILITY_TAG(%d)", uint8(t))
}

// Frame duration bits of a SupportedFrameDurations bitmask.
const (
	SupportedFrameDuration7500us  uint32 = 0x01
	SupportedFrameDuration10000us uint32 = 0x02
)

// CapabilityField is one capability declared by a remote device. Bitmask tags use Bitmask,
// SupportedOctetsPerCodecFrame uses Min and Max, SupportedMaxCodecFramesPerSDU uses Max.
type CapabilityField struct {
	Tag     CapabilityTag `json:"tag"`
	Bitmask uint32        `json:"bitmask,omitempty"`
	Min     uint32        `json:"min,omitempty"`
	Max     uint32        `json:"max,omitempty"`
}

// MetadataTag identifies a metadata entry of a capability declaration.
type MetadataTag uint8

// Metadata tags.
const (
	PreferredAudioContexts MetadataTag = iota + 1
	StreamingAudioContexts
)

// Metadata is one metadata entry of a capability declaration.
type Metadata struct {
	Tag      MetadataTag  `json:"tag"`
	Contexts AudioContext `json:"contexts"`
}

// DeviceCapabilities is one capability record of a remote device. A nil Metadata means the record
// carries no metadata at all.
type DeviceCapabilities struct {
	CodecID      btaudio.CodecID   `json:"codecId"`
	Capabilities []CapabilityField `json:"capabilities"`
	Metadata     []Metadata        `json:"metadata,omitempty"`
}

// TargetLatency is the latency class an endpoint configuration targets.
type TargetLatency uint8

// Target latency classes.
const (
	LatencyUndefined TargetLatency = iota
	LatencyLower
	LatencyBalancedReliability
	LatencyHigherReliability
)

func (l TargetLatency) String() string {
	switch l {
	case LatencyLower:
		return "LOWER"
	case LatencyBalancedReliability:
		return "BALANCED_LATENCY_RELIABILITY"
	case LatencyHigherReliability:
		return "HIGHER_RELIABILITY"
	}
	return "UNDEFINED"
}

// Phy is a radio physical layer.
type Phy uint8

// Physical layers.
const (
	PhyUndefined Phy = iota
	Phy1M
	Phy2M
	PhyCoded
)

// AseConfiguration is the codec configuration of one audio stream endpoint.
type AseConfiguration struct {
	TargetLatency TargetLatency        `json:"targetLatency"`
	TargetPhy     Phy                  `json:"targetPhy,omitempty"`
	CodecID       *btaudio.CodecID     `json:"codecId,omitempty"`
	Configuration []ConfigurationField `json:"configuration"`
}

// Field returns the configuration field with the given tag.
func (a AseConfiguration) Field(tag ConfigurationTag) (ConfigurationField, bool) {
	for _, f := range a.Configuration {
		if f.Tag == tag {
			return f, true
		}
	}
	return ConfigurationField{}, false
}

// QosConfiguration is the QoS of one audio stream endpoint.
type QosConfiguration struct {
	MaxTransportLatencyMs int `json:"maxTransportLatencyMs"`
	RetransmissionNum     int `json:"retransmissionNum"`
}

// Data path identifiers.
const (
	DataPathHCI             = 0x00
	DataPathPlatformDefault = 0x01
)

// DataPathConfiguration tells where the isochronous data is routed.
type DataPathConfiguration struct {
	DataPathID  int  `json:"dataPathId"`
	Transparent bool `json:"transparent"`
}

// DirectionConfiguration is one endpoint configuration of a template direction.
type DirectionConfiguration struct {
	Ase      AseConfiguration       `json:"ase"`
	Qos      *QosConfiguration      `json:"qos,omitempty"`
	DataPath *DataPathConfiguration `json:"dataPath,omitempty"`
}

// Setting is an endpoint configuration template. A nil Sink or Source means the template has no
// configuration for that direction.
type Setting struct {
	Name         string                   `json:"name,omitempty"`
	AudioContext AudioContext             `json:"audioContext"`
	Sink         []DirectionConfiguration `json:"sink,omitempty"`
	Source       []DirectionConfiguration `json:"source,omitempty"`
	Flags        uint32                   `json:"flags,omitempty"`
}

// Direction returns the configurations of the given direction.
func (s Setting) Direction(d Direction) []DirectionConfiguration {
	if d == Sink {
		return s.Sink
	}
	return s.Source
}

// withDirection returns a copy of s carrying configs for d only.
func (s Setting) withDirection(d Direction, configs []DirectionConfiguration) Setting {
	filtered := Setting{Name: s.Name, AudioContext: s.AudioContext, Flags: s.Flags}
	if d == Sink {
		filtered.Sink = configs
	} else {
		filtered.Source = configs
	}
	return filtered
}

// DirectionRequirement is a caller requirement for one endpoint.
type DirectionRequirement struct {
	Ase AseConfiguration `json:"ase"`
}

// ConfigurationRequirement is a caller requirement for a template. A nil Sink or Source means no
// requirement for that direction.
type ConfigurationRequirement struct {
	AudioContext AudioContext           `json:"audioContext"`
	Sink         []DirectionRequirement `json:"sink,omitempty"`
	Source       []DirectionRequirement `json:"source,omitempty"`
	Flags        uint32                 `json:"flags,omitempty"`
}

func (r ConfigurationRequirement) direction(d Direction) []DirectionRequirement {
	if d == Sink {
		return r.Sink
	}
	return r.Source
}

// QosDirectionRequirement narrows the QoS of one direction.
type QosDirectionRequirement struct {
	Ase                        AseConfiguration `json:"ase"`
	PreferredRetransmissionNum int              `json:"preferredRetransmissionNum"`
	MaxTransportLatencyMs      int              `json:"maxTransportLatencyMs"`
}

// QosRequirement is a caller QoS request. Only one of Sink and Source is considered, Sink first.
type QosRequirement struct {
	AudioContext AudioContext             `json:"audioContext"`
	Sink         *QosDirectionRequirement `json:"sink,omitempty"`
	Source       *QosDirectionRequirement `json:"source,omitempty"`
}

// QosPair is the result of a QoS match.
type QosPair struct {
	Sink   *QosConfiguration `json:"sink,omitempty"`
	Source *QosConfiguration `json:"source,omitempty"`
}

// BisConfiguration is the codec configuration of one broadcast isochronous stream.
type BisConfiguration struct {
	CodecID       btaudio.CodecID      `json:"codecId"`
	Configuration []ConfigurationField `json:"configuration"`
}

// SubgroupBis is a BIS configuration shared by NumBis streams.
type SubgroupBis struct {
	NumBis int              `json:"numBis"`
	Bis    BisConfiguration `json:"bis"`
}

// BroadcastSubgroup is one subgroup of a broadcast.
type BroadcastSubgroup struct {
	Bis []SubgroupBis `json:"bis"`
}

// BroadcastSetting is a broadcast configuration template.
type BroadcastSetting struct {
	NumBis    int                 `json:"numBis"`
	Phy       []Phy               `json:"phy"`
	Subgroups []BroadcastSubgroup `json:"subgroups"`
}

// SubgroupRequirement is a caller requirement for one broadcast subgroup.
type SubgroupRequirement struct {
	AudioContext      AudioContext `json:"audioContext"`
	BisNumPerSubgroup int          `json:"bisNumPerSubgroup"`
}

// BroadcastRequirement is a caller broadcast request.
type BroadcastRequirement struct {
	Subgroups []SubgroupRequirement `json:"subgroups"`
}

// CodecInfo describes an LE audio codec the local controller offloads.
type CodecInfo struct {
	ID                  btaudio.CodecID `json:"id"                  yaml:"-"`
	Name                string          `json:"name"                yaml:"name"`
	SamplingFrequencyHz []int           `json:"samplingFrequencyHz" yaml:"samplingFrequencyHz"`
	FrameDurationUs     []int           `json:"frameDurationUs"     yaml:"frameDurationUs"`
	OctetsPerCodecFrame []int           `json:"octetsPerCodecFrame" yaml:"octetsPerCodecFrame"`
}
