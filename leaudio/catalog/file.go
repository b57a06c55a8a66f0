package catalog

import (
	"fmt"
	"strings"

	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/leaudio"
)

// DefaultQosConfiguration is used by configurations that name no QoS configuration.
const DefaultQosConfiguration = "QoS_Config_Balanced_Reliability"

const lc3CodingFormat = 0x06

type qosConfiguration struct {
	Name                 string `yaml:"name"`
	TargetLatency        string `yaml:"target_latency"`
	RetransmissionNumber int    `yaml:"retransmission_number"`
	MaxTransportLatency  int    `yaml:"max_transport_latency"`
}

type codecID struct {
	CodingFormat    uint8  `yaml:"coding_format"`
	VendorCompanyID uint16 `yaml:"vendor_company_id"`
	VendorCodecID   uint16 `yaml:"vendor_codec_id"`
}

// id returns the LC3 core id for the LC3 coding format, a vendor id otherwise.
func (c codecID) id() btaudio.CodecID {
	if c.CodingFormat == lc3CodingFormat {
		return btaudio.LC3
	}
	return btaudio.VendorCodecID(c.VendorCompanyID, c.VendorCodecID)
}

type subconfiguration struct {
	Direction              string  `yaml:"direction"`
	CodecID                codecID `yaml:"codec_id"`
	SamplingFrequencyHz    int     `yaml:"sampling_frequency_hz"`
	FrameDurationUs        int     `yaml:"frame_duration_us"`
	AudioChannelAllocation uint32  `yaml:"audio_channel_allocation"`
	OctetsPerCodecFrame    uint32  `yaml:"octets_per_codec_frame"`
	CodecFrameBlocksPerSDU uint32  `yaml:"codec_frame_blocks_per_sdu"`
}

type codecConfiguration struct {
	Name              string             `yaml:"name"`
	Subconfigurations []subconfiguration `yaml:"subconfigurations"`
}

type configuration struct {
	Name            string   `yaml:"name"`
	CodecConfigName string   `yaml:"codec_config_name"`
	QosConfigName   []string `yaml:"qos_config_name"`
}

type broadcastCodec struct {
	Name                string  `yaml:"name"`
	CodecID             codecID `yaml:"codec_id"`
	SamplingFrequencyHz []int   `yaml:"sampling_frequency_hz"`
	FrameDurationUs     []int   `yaml:"frame_duration_us"`
	OctetsPerCodecFrame []int   `yaml:"octets_per_codec_frame"`
}

type configurationsFile struct {
	QosConfigurations   []qosConfiguration   `yaml:"qos_configurations"`
	CodecConfigurations []codecConfiguration `yaml:"codec_configurations"`
	Configurations      []configuration      `yaml:"configurations"`
	BroadcastCodecs     []broadcastCodec     `yaml:"broadcast_codecs"`
}

type scenario struct {
	Name           string   `yaml:"name"`
	Configurations []string `yaml:"configurations"`
}

type scenariosFile struct {
	Scenarios []scenario `yaml:"scenarios"`
}

func targetLatency(s string) leaudio.TargetLatency {
	switch strings.ToUpper(s) {
	case "LOW":
		return leaudio.LatencyLower
	case "BALANCED_RELIABILITY":
		return leaudio.LatencyBalancedReliability
	case "HIGH_RELIABILITY":
		return leaudio.LatencyHigherReliability
	}
	return leaudio.LatencyUndefined
}

func direction(s string) (leaudio.Direction, error) {
	switch strings.ToUpper(s) {
	case "SINK":
		return leaudio.Sink, nil
	case "SOURCE":
		return leaudio.Source, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// scenarioContexts maps scenario names to the contexts their templates serve. Other names get no
// context.
var scenarioContexts = map[string]leaudio.AudioContext{
	"Media": leaudio.ContextAlerts | leaudio.ContextInstructional | leaudio.ContextNotifications |
		leaudio.ContextEmergencyAlarm | leaudio.ContextUnspecified | leaudio.ContextMedia,
	"Conversational":  leaudio.ContextRingtoneAlerts | leaudio.ContextConversational,
	"Live":            leaudio.ContextLiveAudio,
	"Game":            leaudio.ContextGame,
	"VoiceAssistants": leaudio.ContextVoiceAssistants,
}

// Location tells where the codec runs, which decides the data path of every template.
type Location string

// Codec locations.
const (
	LocationHost       Location = "host"
	LocationADSP       Location = "adsp"
	LocationController Location = "controller"
)

// ParseLocation parses a codec location name.
func ParseLocation(s string) (Location, error) {
	switch l := Location(strings.ToLower(s)); l {
	case LocationHost, LocationADSP, LocationController:
		return l, nil
	}
	return "", fmt.Errorf("unknown codec location %q", s)
}

func (l Location) dataPath() leaudio.DataPathConfiguration {
	switch l {
	case LocationADSP:
		return leaudio.DataPathConfiguration{DataPathID: leaudio.DataPathPlatformDefault, Transparent: true}
	case LocationController:
		return leaudio.DataPathConfiguration{DataPathID: leaudio.DataPathPlatformDefault, Transparent: false}
	default:
		return leaudio.DataPathConfiguration{DataPathID: leaudio.DataPathHCI, Transparent: true}
	}
}
