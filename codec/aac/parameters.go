package aac

import (
	"bytes"
	"fmt"

	"github.com/ugparu/btaudio"
)

// UnsupportedValueError is returned when a capability value has no encoding.
type UnsupportedValueError struct {
	Field string
	Value int
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("aac: %s %d cannot be encoded", e.Field, e.Value)
}

// Parameters is the result of parsing an AAC configuration.
type Parameters struct {
	btaudio.CodecParameters
	ObjectType ObjectType `json:"objectType"`
	VBR        bool       `json:"vbr"`
}

func (p Parameters) String() string {
	return fmt.Sprintf("%v object=%v vbr=%t", p.CodecParameters, p.ObjectType, p.VBR)
}

// MPEG4AudioConfig returns the MPEG-4 audio configuration matching the negotiated parameters.
func (p Parameters) MPEG4AudioConfig() (config MPEG4AudioConfig, err error) {
	switch p.ObjectType {
	case MPEG2AACLC, MPEG4AACLC:
		config.ObjectType = AotAacLc
	case MPEG4AACLTP:
		config.ObjectType = AotAacLtp
	case MPEG4AACScalable:
		config.ObjectType = AotAacScalable
	case MPEG4HEAACv1:
		config.ObjectType = AotSbr
	case MPEG4HEAACv2:
		config.ObjectType = AotPs
	case MPEG4AACELDv2:
		config.ObjectType = AotErAacEld
	default:
		return config, fmt.Errorf("aacparser: unknown object type %d", p.ObjectType)
	}

	config.SampleRate = p.SamplingFrequencyHz
	config.SampleRateIndex = sampleRateIndex(p.SamplingFrequencyHz)
	switch p.ChannelMode {
	case btaudio.Mono:
		config.ChannelConfig = 1
	case btaudio.Stereo:
		config.ChannelConfig = 2 //nolint:mnd
	default:
		return config, fmt.Errorf("aacparser: no channel configuration for %v", p.ChannelMode)
	}
	config.Complete()
	return config, nil
}

// AudioSpecificConfig renders the negotiated parameters as an MPEG-4 AudioSpecificConfig, the
// form expected by encoders that are handed the stream configuration.
func (p Parameters) AudioSpecificConfig() ([]byte, error) {
	config, err := p.MPEG4AudioConfig()
	if err != nil {
		return nil, err
	}
	b := new(bytes.Buffer)
	if err = WriteMPEG4AudioConfig(b, config); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
