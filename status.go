package btaudio

import "errors"

// Status is the result of validating a configuration record.
// Every value except OK implements error.
type Status uint8

// Status values.
const (
	OK Status = iota
	BadLength
	BadPayload
	InvalidObjectType
	NotSupportedObjectType
	InvalidSamplingFrequency
	NotSupportedSamplingFrequency
	InvalidChannels
	NotSupportedChannels
	InvalidChannelMode
	NotSupportedChannelMode
	InvalidBlockLength
	InvalidSubbands
	NotSupportedSubbands
	InvalidAllocationMethod
	NotSupportedAllocationMethod
	InvalidMinimumBitpoolValue
	NotSupportedMinimumBitpoolValue
	InvalidMaximumBitpoolValue
	NotSupportedMaximumBitpoolValue
	NotSupportedVBR
	NotSupportedBitRate
	NotSupportedCodecType
)

// StatusKind groups Status values by how a caller should react to them.
type StatusKind uint8

// Status kinds.
const (
	KindOK          StatusKind = iota
	KindStructural             // Record has the wrong shape, never retried.
	KindDecode                 // An enumerated field is not one-hot.
	KindUnsupported            // Valid value outside the local capabilities, try another codec.
)

// String returns a human-readable string representation of the status.
func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case BadLength:
		return "BAD_LENGTH"
	case BadPayload:
		return "BAD_PAYLOAD"
	case InvalidObjectType:
		return "INVALID_OBJECT_TYPE"
	case NotSupportedObjectType:
		return "NOT_SUPPORTED_OBJECT_TYPE"
	case InvalidSamplingFrequency:
		return "INVALID_SAMPLING_FREQUENCY"
	case NotSupportedSamplingFrequency:
		return "NOT_SUPPORTED_SAMPLING_FREQUENCY"
	case InvalidChannels:
		return "INVALID_CHANNELS"
	case NotSupportedChannels:
		return "NOT_SUPPORTED_CHANNELS"
	case InvalidChannelMode:
		return "INVALID_CHANNEL_MODE"
	case NotSupportedChannelMode:
		return "NOT_SUPPORTED_CHANNEL_MODE"
	case InvalidBlockLength:
		return "INVALID_BLOCK_LENGTH"
	case InvalidSubbands:
		return "INVALID_SUBBANDS"
	case NotSupportedSubbands:
		return "NOT_SUPPORTED_SUBBANDS"
	case InvalidAllocationMethod:
		return "INVALID_ALLOCATION_METHOD"
	case NotSupportedAllocationMethod:
		return "NOT_SUPPORTED_ALLOCATION_METHOD"
	case InvalidMinimumBitpoolValue:
		return "INVALID_MINIMUM_BITPOOL_VALUE"
	case NotSupportedMinimumBitpoolValue:
		return "NOT_SUPPORTED_MINIMUM_BITPOOL_VALUE"
	case InvalidMaximumBitpoolValue:
		return "INVALID_MAXIMUM_BITPOOL_VALUE"
	case NotSupportedMaximumBitpoolValue:
		return "NOT_SUPPORTED_MAXIMUM_BITPOOL_VALUE"
	case NotSupportedVBR:
		return "NOT_SUPPORTED_VBR"
	case NotSupportedBitRate:
		return "NOT_SUPPORTED_BIT_RATE"
	case NotSupportedCodecType:
		return "NOT_SUPPORTED_CODEC_TYPE"
	default:
		return "?"
	}
}

// Error implements error.
func (s Status) Error() string {
	return "a2dp status " + s.String()
}

// Kind classifies the status.
func (s Status) Kind() StatusKind {
	switch s { //nolint: exhaustive // remaining values are unsupported values
	case OK:
		return KindOK
	case BadLength, BadPayload:
		return KindStructural
	case InvalidObjectType, InvalidSamplingFrequency, InvalidChannels, InvalidChannelMode,
		InvalidBlockLength, InvalidSubbands, InvalidAllocationMethod,
		InvalidMinimumBitpoolValue, InvalidMaximumBitpoolValue:
		return KindDecode
	default:
		return KindUnsupported
	}
}

// StatusOf extracts the Status carried by err. A nil error maps to OK, and an error that
// does not carry a Status maps to BadPayload.
func StatusOf(err error) Status {
	if err == nil {
		return OK
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return BadPayload
}
