package leaudio

import "slices"

// samplingFrequencies lists the rates in the order of their configuration codes, starting at 0x01.
var samplingFrequencies = []int{
	8000, 11025, 16000, 22050, 24000, 32000, 44100, 48000, 88200, 96000, 176400, 192000, 384000,
}

// SamplingFrequencyCode returns the SamplingFrequency field value for hz.
func SamplingFrequencyCode(hz int) (uint32, bool) {
	i := slices.Index(samplingFrequencies, hz)
	if i < 0 {
		return 0, false
	}
	return uint32(i + 1), true //nolint:gosec // bounded by the table
}

// SamplingFrequencyHz returns the rate of a SamplingFrequency field value.
func SamplingFrequencyHz(code uint32) (int, bool) {
	if code == 0 || code > uint32(len(samplingFrequencies)) {
		return 0, false
	}
	return samplingFrequencies[code-1], true
}

// SupportedSamplingFrequencyMask returns the SupportedSamplingFrequencies bitmask of the given rates.
// Unknown rates are ignored.
func SupportedSamplingFrequencyMask(hz ...int) uint32 {
	var mask uint32
	for _, f := range hz {
		if code, ok := SamplingFrequencyCode(f); ok {
			mask |= 1 << (code - 1)
		}
	}
	return mask
}

// FrameDurationCode returns the FrameDuration field value for a duration in microseconds.
func FrameDurationCode(us int) (uint32, bool) {
	switch us {
	case 7500:
		return FrameDuration7500us, true
	case 10000:
		return FrameDuration10000us, true
	}
	return 0, false
}

// samplingFrequencySupported reports whether the bit of code is set in mask.
func samplingFrequencySupported(code, mask uint32) bool {
	if _, ok := SamplingFrequencyHz(code); !ok {
		return false
	}
	return mask&(1<<(code-1)) != 0
}

func frameDurationSupported(code, mask uint32) bool {
	switch code {
	case FrameDuration7500us:
		return mask&SupportedFrameDuration7500us != 0
	case FrameDuration10000us:
		return mask&SupportedFrameDuration10000us != 0
	}
	return false
}
