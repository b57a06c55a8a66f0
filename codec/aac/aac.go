// Package aac implements the MPEG-2/4 AAC bitmask codec descriptor (A2DP 4.5).
package aac

import (
	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/codec"
	"github.com/ugparu/btaudio/utils/bits"
)

// Bit positions of the 6 byte AAC codec information element.
const (
	otMPEG2AACLC = iota
	otMPEG4AACLC
	otMPEG4AACLTP
	otMPEG4AACScalable
	otMPEG4HEAACv1
	otMPEG4HEAACv2
	otMPEG4AACELDv2
	drcEnable
	sf8000
	sf11025
	sf12000
	sf16000
	sf22050
	sf24000
	sf32000
	sf44100
	sf48000
	sf64000
	sf88200
	sf96000
	channels1
	channels2
	channels51
	channels71
	vbrSupported
)

var (
	objectTypeRange        = bits.NewRange(otMPEG2AACLC, otMPEG4AACELDv2)
	samplingFrequencyRange = bits.NewRange(sf8000, sf96000)
	channelsRange          = bits.NewRange(channels1, channels71)
	bitrateRange           = bits.NewRange(25, 47) //nolint:mnd
)

const (
	capabilitiesSize = 48 / 8
	bitdepth         = 24
)

// ObjectType is the MPEG audio object type signalled in the codec information element.
type ObjectType uint8

// Object types.
const (
	MPEG2AACLC ObjectType = iota
	MPEG4AACLC
	MPEG4AACLTP
	MPEG4AACScalable
	MPEG4HEAACv1
	MPEG4HEAACv2
	MPEG4AACELDv2
)

func (o ObjectType) String() string {
	switch o {
	case MPEG2AACLC:
		return "MPEG2_AAC_LC"
	case MPEG4AACLC:
		return "MPEG4_AAC_LC"
	case MPEG4AACLTP:
		return "MPEG4_AAC_LTP"
	case MPEG4AACScalable:
		return "MPEG4_AAC_SCALABLE"
	case MPEG4HEAACv1:
		return "MPEG4_HE_AAC_V1"
	case MPEG4HEAACv2:
		return "MPEG4_HE_AAC_V2"
	case MPEG4AACELDv2:
		return "MPEG4_AAC_ELD_V2"
	}
	return "UNKNOWN"
}

// MarshalText encodes the object type by name.
func (o ObjectType) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

var objectTypes = codec.Table[ObjectType]{
	{Bit: otMPEG2AACLC, Value: MPEG2AACLC},
	{Bit: otMPEG4AACLC, Value: MPEG4AACLC},
	{Bit: otMPEG4AACLTP, Value: MPEG4AACLTP},
	{Bit: otMPEG4AACScalable, Value: MPEG4AACScalable},
	{Bit: otMPEG4HEAACv1, Value: MPEG4HEAACv1},
	{Bit: otMPEG4HEAACv2, Value: MPEG4HEAACv2},
	{Bit: otMPEG4AACELDv2, Value: MPEG4AACELDv2},
}

var samplingFrequencies = codec.Table[int]{
	{Bit: sf8000, Value: 8000},
	{Bit: sf11025, Value: 11025},
	{Bit: sf12000, Value: 12000},
	{Bit: sf16000, Value: 16000},
	{Bit: sf22050, Value: 22050},
	{Bit: sf24000, Value: 24000},
	{Bit: sf32000, Value: 32000},
	{Bit: sf44100, Value: 44100},
	{Bit: sf48000, Value: 48000},
	{Bit: sf64000, Value: 64000},
	{Bit: sf88200, Value: 88200},
	{Bit: sf96000, Value: 96000},
}

// 5.1 and 7.1 have no channel mode and decode as unknown.
var channelModes = codec.Table[btaudio.ChannelMode]{
	{Bit: channels1, Value: btaudio.Mono},
	{Bit: channels2, Value: btaudio.Stereo},
}

// Capabilities selects the local AAC capabilities.
type Capabilities struct {
	ObjectTypes         []ObjectType
	SamplingFrequencyHz []int
	ChannelModes        []btaudio.ChannelMode
	VBR                 bool
	Bitrate             int // Upper bitrate bound, 0 for none.
}

// DefaultCapabilities are MPEG-2 and MPEG-4 AAC LC, 44.1 and 48 kHz, mono and stereo, with VBR.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		ObjectTypes:         []ObjectType{MPEG2AACLC, MPEG4AACLC},
		SamplingFrequencyHz: []int{44100, 48000},
		ChannelModes:        []btaudio.ChannelMode{btaudio.Mono, btaudio.Stereo},
		VBR:                 true,
	}
}

// Codec is the AAC descriptor. It is immutable after construction and safe for concurrent use.
type Codec struct {
	codec.Descriptor
}

// New returns the AAC descriptor with DefaultCapabilities.
func New() *Codec {
	c, _ := NewWithCapabilities(DefaultCapabilities())
	return c
}

// NewWithCapabilities returns an AAC descriptor advertising caps. Values that cannot be encoded
// in the codec information element are rejected.
func NewWithCapabilities(caps Capabilities) (*Codec, error) {
	c := &Codec{Descriptor: codec.NewDescriptor(btaudio.AAC, "AAC", capabilitiesSize)}
	lcaps := c.Capabilities()

	for _, o := range caps.ObjectTypes {
		b := objectTypes.Bit(o)
		if b < 0 {
			return nil, &UnsupportedValueError{Field: "object type", Value: int(o)}
		}
		lcaps.SetBit(b, true)
	}
	for _, hz := range caps.SamplingFrequencyHz {
		b := samplingFrequencies.Bit(hz)
		if b < 0 {
			return nil, &UnsupportedValueError{Field: "sampling frequency", Value: hz}
		}
		lcaps.SetBit(b, true)
	}
	for _, ch := range caps.ChannelModes {
		b := channelModes.Bit(ch)
		if b < 0 {
			return nil, &UnsupportedValueError{Field: "channel mode", Value: int(ch)}
		}
		lcaps.SetBit(b, true)
	}
	lcaps.SetBit(vbrSupported, caps.VBR)
	if caps.Bitrate < 0 || caps.Bitrate >= 1<<bitrateRange.Len {
		return nil, &UnsupportedValueError{Field: "bitrate", Value: caps.Bitrate}
	}
	lcaps.Set(bitrateRange, uint(caps.Bitrate))

	c.CodecInfo.SamplingFrequencyHz = samplingFrequencies.Supported(lcaps)
	c.CodecInfo.ChannelModes = channelModes.Supported(lcaps)
	c.CodecInfo.Bitdepth = []int{bitdepth}
	return c, nil
}

var _ btaudio.Codec = (*Codec)(nil)
