package sbc

import "github.com/ugparu/btaudio/utils/bits"

const headerSize = 4

// FrameSize returns the size in bytes of an SBC frame encoded with configuration at bitpool.
func FrameSize(configuration bits.View, bitpool int) int {
	subbands, _ := subbandCounts.Value(configuration.FindActiveBit(subbandsRange))
	blocks, _ := blockLengths.Value(configuration.FindActiveBit(blockLengthRange))

	scaleFactors := 4 * subbands //nolint:mnd
	if !configuration.Bit(chMono) {
		scaleFactors <<= 1
	}
	samples := blocks * bitpool
	if configuration.Bit(chDualChannel) {
		samples <<= 1
	}
	n := scaleFactors + samples
	if configuration.Bit(chJointStereo) {
		n += subbands
	}

	return headerSize + (n+7)>>3 //nolint:mnd
}

// Bitrate returns the bitrate in bits per second of a stream encoded with configuration at
// bitpool. It returns 0 when configuration does not select a block length and subband count.
func Bitrate(configuration bits.View, bitpool int) int {
	samplingFrequency, _ := samplingFrequencies.Value(configuration.FindActiveBit(samplingFrequencyRange))
	subbands, _ := subbandCounts.Value(configuration.FindActiveBit(subbandsRange))
	blocks, _ := blockLengths.Value(configuration.FindActiveBit(blockLengthRange))
	if blocks*subbands == 0 {
		return 0
	}

	return 8 * FrameSize(configuration, bitpool) * samplingFrequency / (blocks * subbands) //nolint:mnd
}

// Bitpool returns the largest bitpool whose bitrate stays below bitrate, clamped to
// [MinBitpool, MaxBitpool].
func Bitpool(configuration bits.View, bitrate int) int {
	bitpool := 0
	for i := 128; i > 0; i >>= 1 {
		if bitrate > Bitrate(configuration, bitpool+i) {
			bitpool += i
		}
	}
	return min(max(bitpool, MinBitpool), MaxBitpool)
}
