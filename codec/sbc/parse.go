package sbc

import (
	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/utils/bits"
)

// ParseConfiguration implements btaudio.Codec.
func (c *Codec) ParseConfiguration(configuration []byte) (btaudio.Parameters, error) {
	p, err := c.ParseSBC(configuration)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ParseSBC validates configuration against the local capabilities and returns the SBC specific
// parameters along with the common ones. On failure the error is a btaudio.Status.
func (c *Codec) ParseSBC(configuration []byte) (p Parameters, err error) {
	if err = c.CheckLength(configuration); err != nil {
		return
	}

	config := bits.View(configuration)
	lcaps := c.Capabilities()

	samplingFrequency := config.FindActiveBit(samplingFrequencyRange)
	if samplingFrequency < 0 {
		return p, btaudio.InvalidSamplingFrequency
	}
	if !lcaps.Bit(samplingFrequency) {
		return p, btaudio.NotSupportedSamplingFrequency
	}

	channelMode := config.FindActiveBit(channelModeRange)
	if channelMode < 0 {
		return p, btaudio.InvalidChannelMode
	}
	if !lcaps.Bit(channelMode) {
		return p, btaudio.NotSupportedChannelMode
	}

	// Every block length is mandatory for a sink, there is nothing to check against.
	blockLength := config.FindActiveBit(blockLengthRange)
	if blockLength < 0 {
		return p, btaudio.InvalidBlockLength
	}

	subbands := config.FindActiveBit(subbandsRange)
	if subbands < 0 {
		return p, btaudio.InvalidSubbands
	}
	if !lcaps.Bit(subbands) {
		return p, btaudio.NotSupportedSubbands
	}

	allocationMethod := config.FindActiveBit(allocationMethodRange)
	if allocationMethod < 0 {
		return p, btaudio.InvalidAllocationMethod
	}
	if !lcaps.Bit(allocationMethod) {
		return p, btaudio.NotSupportedAllocationMethod
	}

	minBitpool := int(config.Get(minimumBitpoolRange))
	if minBitpool < MinBitpool || minBitpool > MaxBitpool {
		return p, btaudio.InvalidMinimumBitpoolValue
	}
	if minBitpool < int(lcaps.Get(minimumBitpoolRange)) {
		return p, btaudio.NotSupportedMinimumBitpoolValue
	}

	maxBitpool := int(config.Get(maximumBitpoolRange))
	if maxBitpool < MinBitpool || maxBitpool > MaxBitpool {
		return p, btaudio.InvalidMaximumBitpoolValue
	}
	if maxBitpool > int(lcaps.Get(maximumBitpoolRange)) {
		return p, btaudio.NotSupportedMaximumBitpoolValue
	}

	p.ChannelMode, _ = channelModes.Value(channelMode)
	p.SamplingFrequencyHz, _ = samplingFrequencies.Value(samplingFrequency)
	p.Bitdepth = bitdepth
	p.MinBitrate = Bitrate(config, minBitpool)
	p.MaxBitrate = Bitrate(config, maxBitpool)

	p.BlockLength, _ = blockLengths.Value(blockLength)
	p.Subbands, _ = subbandCounts.Value(subbands)
	p.AllocationMethod, _ = allocationMethods.Value(allocationMethod)
	p.MinBitpool = minBitpool
	p.MaxBitpool = maxBitpool
	return p, nil
}
