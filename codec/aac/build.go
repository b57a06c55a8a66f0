package aac

import (
	"fmt"

	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/codec"
	"github.com/ugparu/btaudio/utils/bits"
)

var (
	objectTypeLadder        = codec.Ladder{otMPEG2AACLC, otMPEG4AACLC}
	samplingFrequencyLadder = codec.Ladder{sf96000, sf88200, sf48000, sf44100}
	channelsLadder          = codec.Ladder{channels2, channels1}
)

// BuildConfiguration implements btaudio.Codec. Fields follow their fallback ladder after the
// hinted value. VBR is requested only without a minimum bitrate hint, and the bitrate is the local
// bound lowered to the hinted maximum.
func (c *Codec) BuildConfiguration(remoteCapabilities []byte, hint *btaudio.CodecParameters) ([]byte, error) {
	if err := c.CheckLength(remoteCapabilities); err != nil {
		return nil, err
	}

	lcaps := c.Capabilities()
	rcaps := bits.View(remoteCapabilities)
	config := c.NewConfiguration()

	samplingFrequencyHint, channelsHint := -1, -1
	if hint != nil {
		samplingFrequencyHint = samplingFrequencies.Bit(hint.SamplingFrequencyHz)
		channelsHint = channelModes.Bit(hint.ChannelMode)
	}

	for _, field := range []struct {
		name   string
		ladder codec.Ladder
		hint   int
	}{
		{"object type", objectTypeLadder, -1},
		{"sampling frequency", samplingFrequencyLadder, samplingFrequencyHint},
		{"channels", channelsLadder, channelsHint},
	} {
		b := field.ladder.Select(lcaps, rcaps, field.hint)
		if b < 0 {
			return nil, fmt.Errorf("%w: aac %s", btaudio.ErrNoCommonConfiguration, field.name)
		}
		config.SetBit(b, true)
	}

	if hint == nil || hint.MinBitrate == 0 {
		config.SetBit(vbrSupported, lcaps.Bit(vbrSupported) && rcaps.Bit(vbrSupported))
	}

	bitrate := int(lcaps.Get(bitrateRange))
	if hint != nil && hint.MaxBitrate > 0 {
		if bitrate != 0 {
			bitrate = min(hint.MaxBitrate, bitrate)
		} else {
			bitrate = min(hint.MaxBitrate, 1<<bitrateRange.Len-1)
		}
	}
	config.Set(bitrateRange, uint(bitrate)) //nolint:gosec // non negative

	return config, nil
}
