package aac

import (
	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/utils/bits"
)

// ParseConfiguration implements btaudio.Codec.
func (c *Codec) ParseConfiguration(configuration []byte) (btaudio.Parameters, error) {
	p, err := c.ParseAAC(configuration)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ParseAAC validates configuration against the local capabilities and returns the AAC specific
// parameters along with the common ones. On failure the error is a btaudio.Status.
func (c *Codec) ParseAAC(configuration []byte) (p Parameters, err error) {
	if err = c.CheckLength(configuration); err != nil {
		return
	}

	config := bits.View(configuration)
	lcaps := c.Capabilities()

	objectType := config.FindActiveBit(objectTypeRange)
	if objectType < 0 {
		return p, btaudio.InvalidObjectType
	}
	if !lcaps.Bit(objectType) {
		return p, btaudio.NotSupportedObjectType
	}

	samplingFrequency := config.FindActiveBit(samplingFrequencyRange)
	if samplingFrequency < 0 {
		return p, btaudio.InvalidSamplingFrequency
	}
	if !lcaps.Bit(samplingFrequency) {
		return p, btaudio.NotSupportedSamplingFrequency
	}

	channels := config.FindActiveBit(channelsRange)
	if channels < 0 {
		return p, btaudio.InvalidChannels
	}
	if !lcaps.Bit(channels) {
		return p, btaudio.NotSupportedChannels
	}

	vbr := config.Bit(vbrSupported)
	if vbr && !lcaps.Bit(vbrSupported) {
		return p, btaudio.NotSupportedVBR
	}

	bitrate := int(config.Get(bitrateRange))
	if maxBitrate := int(lcaps.Get(bitrateRange)); vbr && maxBitrate != 0 && bitrate > maxBitrate {
		return p, btaudio.NotSupportedBitRate
	}

	p.ChannelMode, _ = channelModes.Value(channels)
	p.SamplingFrequencyHz, _ = samplingFrequencies.Value(samplingFrequency)
	p.Bitdepth = bitdepth
	if !vbr {
		p.MinBitrate = bitrate
	}
	p.MaxBitrate = bitrate

	p.ObjectType, _ = objectTypes.Value(objectType)
	p.VBR = vbr
	return p, nil
}
