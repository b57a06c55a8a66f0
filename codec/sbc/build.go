package sbc

import (
	"fmt"

	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/codec"
	"github.com/ugparu/btaudio/utils/bits"
)

var (
	samplingFrequencyLadder = codec.Ladder{sf44100, sf48000}
	channelModeLadder       = codec.Ladder{chJointStereo, chStereo, chDualChannel, chMono}
	blockLengthLadder       = codec.Ladder{block16, block12, block8, block4}
	subbandsLadder          = codec.Ladder{subbands8, subbands4}
	allocationMethodLadder  = codec.Ladder{allocLoudness, allocSNR}
)

// BuildConfiguration implements btaudio.Codec. Each field takes the hinted value when both sides
// support it, otherwise the first value of its ladder supported by both sides.
func (c *Codec) BuildConfiguration(remoteCapabilities []byte, hint *btaudio.CodecParameters) ([]byte, error) {
	if err := c.CheckLength(remoteCapabilities); err != nil {
		return nil, err
	}

	lcaps := c.Capabilities()
	rcaps := bits.View(remoteCapabilities)
	config := c.NewConfiguration()

	samplingFrequencyHint, channelModeHint := -1, -1
	if hint != nil {
		samplingFrequencyHint = samplingFrequencies.Bit(hint.SamplingFrequencyHz)
		channelModeHint = channelModes.Bit(hint.ChannelMode)
	}

	for _, field := range []struct {
		name   string
		ladder codec.Ladder
		hint   int
	}{
		{"sampling frequency", samplingFrequencyLadder, samplingFrequencyHint},
		{"channel mode", channelModeLadder, channelModeHint},
		{"block length", blockLengthLadder, -1},
		{"subbands", subbandsLadder, -1},
		{"allocation method", allocationMethodLadder, -1},
	} {
		b := field.ladder.Select(lcaps, rcaps, field.hint)
		if b < 0 {
			return nil, fmt.Errorf("%w: sbc %s", btaudio.ErrNoCommonConfiguration, field.name)
		}
		config.SetBit(b, true)
	}

	minBitpool := int(rcaps.Get(minimumBitpoolRange))
	maxBitpool := int(rcaps.Get(maximumBitpoolRange))
	if minBitpool < MinBitpool || minBitpool > MaxBitpool ||
		maxBitpool < MinBitpool || maxBitpool > MaxBitpool || minBitpool > maxBitpool {
		minBitpool, maxBitpool = MinBitpool, MaxBitpool
	}

	// Both bounds take the larger of the local and remote values.
	minBitpool = max(minBitpool, int(lcaps.Get(minimumBitpoolRange)))
	maxBitpool = max(maxBitpool, int(lcaps.Get(maximumBitpoolRange)))

	if hint != nil {
		minBitpool = max(minBitpool, Bitpool(config, hint.MinBitrate))
		if hint.MaxBitrate != 0 && hint.MaxBitrate >= hint.MinBitrate {
			maxBitpool = min(maxBitpool, Bitpool(config, hint.MaxBitrate))
		}
	}

	config.Set(minimumBitpoolRange, uint(minBitpool)) //nolint:gosec // bounded by MaxBitpool
	config.Set(maximumBitpoolRange, uint(maxBitpool)) //nolint:gosec // bounded by MaxBitpool
	return config, nil
}
