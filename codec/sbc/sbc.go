// Package sbc implements the SBC bitmask codec descriptor (A2DP 4.3).
package sbc

import (
	"fmt"

	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/codec"
	"github.com/ugparu/btaudio/utils/bits"
)

// Bit positions of the 4 byte SBC codec information element.
const (
	sf16000 = iota
	sf32000
	sf44100
	sf48000
	chMono
	chDualChannel
	chStereo
	chJointStereo
	block4
	block8
	block12
	block16
	subbands8
	subbands4
	allocSNR
	allocLoudness
)

var (
	samplingFrequencyRange = bits.NewRange(sf16000, sf48000)
	channelModeRange       = bits.NewRange(chMono, chJointStereo)
	blockLengthRange       = bits.NewRange(block4, block16)
	subbandsRange          = bits.NewRange(subbands8, subbands4)
	allocationMethodRange  = bits.NewRange(allocSNR, allocLoudness)
	minimumBitpoolRange    = bits.NewRange(16, 23) //nolint:mnd
	maximumBitpoolRange    = bits.NewRange(24, 31) //nolint:mnd
)

const (
	capabilitiesSize = 32 / 8
	bitdepth         = 16

	// MinBitpool and MaxBitpool bound every bitpool value.
	MinBitpool = 2
	MaxBitpool = 250
)

var samplingFrequencies = codec.Table[int]{
	{Bit: sf16000, Value: 16000},
	{Bit: sf32000, Value: 32000},
	{Bit: sf44100, Value: 44100},
	{Bit: sf48000, Value: 48000},
}

// Joint stereo comes first so that a stereo hint selects it.
var channelModes = codec.Table[btaudio.ChannelMode]{
	{Bit: chMono, Value: btaudio.Mono},
	{Bit: chDualChannel, Value: btaudio.DualMono},
	{Bit: chJointStereo, Value: btaudio.Stereo},
	{Bit: chStereo, Value: btaudio.Stereo},
}

var blockLengths = codec.Table[int]{
	{Bit: block4, Value: 4},
	{Bit: block8, Value: 8},
	{Bit: block12, Value: 12},
	{Bit: block16, Value: 16},
}

var subbandCounts = codec.Table[int]{
	{Bit: subbands8, Value: 8},
	{Bit: subbands4, Value: 4},
}

// AllocationMethod is the SBC bit allocation method.
type AllocationMethod uint8

// Allocation methods.
const (
	AllocationSNR AllocationMethod = iota
	AllocationLoudness
)

func (a AllocationMethod) String() string {
	switch a {
	case AllocationSNR:
		return "SNR"
	case AllocationLoudness:
		return "LOUDNESS"
	}
	return "UNKNOWN"
}

// MarshalText encodes the allocation method by name.
func (a AllocationMethod) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

var allocationMethods = codec.Table[AllocationMethod]{
	{Bit: allocSNR, Value: AllocationSNR},
	{Bit: allocLoudness, Value: AllocationLoudness},
}

// Parameters is the result of parsing an SBC configuration.
type Parameters struct {
	btaudio.CodecParameters
	BlockLength      int              `json:"blockLength"`
	Subbands         int              `json:"subbands"`
	AllocationMethod AllocationMethod `json:"allocationMethod"`
	MinBitpool       int              `json:"minBitpool"`
	MaxBitpool       int              `json:"maxBitpool"`
}

func (p Parameters) String() string {
	return fmt.Sprintf("%v blocks=%d subbands=%d alloc=%v bitpool=%d-%d",
		p.CodecParameters, p.BlockLength, p.Subbands, p.AllocationMethod, p.MinBitpool, p.MaxBitpool)
}

// Codec is the SBC descriptor. It is immutable after New and safe for concurrent use.
type Codec struct {
	codec.Descriptor
}

// New returns the SBC descriptor with the local capabilities: 44.1 and 48 kHz, every channel
// mode, block length, subband count and allocation method, bitpool 2 to 250.
func New() *Codec {
	c := &Codec{Descriptor: codec.NewDescriptor(btaudio.SBC, "SBC", capabilitiesSize)}

	caps := c.Capabilities()
	for _, b := range []int{
		sf44100, sf48000,
		chMono, chDualChannel, chStereo, chJointStereo,
		block4, block8, block12, block16,
		subbands4, subbands8,
		allocSNR, allocLoudness,
	} {
		caps.SetBit(b, true)
	}
	caps.Set(minimumBitpoolRange, MinBitpool)
	caps.Set(maximumBitpoolRange, MaxBitpool)

	c.CodecInfo.SamplingFrequencyHz = samplingFrequencies.Supported(caps)
	c.CodecInfo.ChannelModes = channelModes.Supported(caps)
	c.CodecInfo.Bitdepth = []int{bitdepth}
	return c
}

var _ btaudio.Codec = (*Codec)(nil)
