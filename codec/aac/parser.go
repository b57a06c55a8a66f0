//nolint:mnd // .
package aac

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/utils/bits"
)

// MPEG-4 audio object types, from libavcodec/mpeg4audio.h.
const (
	AotAacMain     = 1
	AotAacLc       = 2
	AotAacSsr      = 3
	AotAacLtp      = 4
	AotSbr         = 5
	AotAacScalable = 6
	AotPs          = 29
	AotErAacEld    = 39
)

// MPEG4AudioConfig is the decoded form of an AudioSpecificConfig.
type MPEG4AudioConfig struct {
	SampleRate      int
	ChannelMode     btaudio.ChannelMode
	ObjectType      uint
	SampleRateIndex uint
	ChannelConfig   uint
}

func (config *MPEG4AudioConfig) IsValid() bool {
	return config.ObjectType > 0
}

// Complete fills SampleRate and ChannelMode from their indexes.
func (config *MPEG4AudioConfig) Complete() {
	if config.SampleRateIndex < uint(len(sampleRateTable)) {
		config.SampleRate = sampleRateTable[config.SampleRateIndex]
	}
	switch config.ChannelConfig {
	case 1:
		config.ChannelMode = btaudio.Mono
	case 2:
		config.ChannelMode = btaudio.Stereo
	default:
		config.ChannelMode = btaudio.ChannelModeUnknown
	}
}

const explicitSampleRate = 0xf

var sampleRateTable = []int{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000, 7350,
}

// sampleRateIndex returns the table index of rate, or the explicit rate escape.
func sampleRateIndex(rate int) uint {
	for i, r := range sampleRateTable {
		if r == rate {
			return uint(i) //nolint:gosec // table is short
		}
	}
	return explicitSampleRate
}

func readObjectType(r *bits.Reader) (objectType uint, err error) {
	if objectType, err = r.ReadBits(5); err != nil {
		return
	}
	// Escape value is 31, object type = 32 + 6-bit value
	const escapeValue = 31
	if objectType == escapeValue {
		var i uint
		if i, err = r.ReadBits(6); err != nil {
			return
		}
		objectType = 32 + i
	}
	return
}

func writeObjectType(w *bits.Writer, objectType uint) (err error) {
	if objectType >= 32 {
		const escapeValue = 31
		if err = w.WriteBits(escapeValue, 5); err != nil {
			return
		}
		return w.WriteBits(objectType-32, 6)
	}
	return w.WriteBits(objectType, 5)
}

func readSampleRate(r *bits.Reader, config *MPEG4AudioConfig) (err error) {
	if config.SampleRateIndex, err = r.ReadBits(4); err != nil {
		return
	}
	if config.SampleRateIndex == explicitSampleRate {
		var rate uint
		if rate, err = r.ReadBits(24); err != nil {
			return
		}
		config.SampleRate = int(rate) //nolint:gosec // 24 bits
	}
	return
}

func writeSampleRate(w *bits.Writer, config MPEG4AudioConfig) (err error) {
	if config.SampleRateIndex >= explicitSampleRate {
		if err = w.WriteBits(explicitSampleRate, 4); err != nil {
			return
		}
		return w.WriteBits(uint(config.SampleRate), 24) //nolint:gosec // rate checked by caller
	}
	return w.WriteBits(config.SampleRateIndex, 4)
}

// ParseMPEG4AudioConfigBytes decodes the object type, sampling frequency and channel
// configuration of an AudioSpecificConfig.
func ParseMPEG4AudioConfigBytes(data []byte) (config MPEG4AudioConfig, err error) {
	if len(data) == 0 {
		return config, errors.New("aacparser: empty MPEG4 audio config data")
	}

	br := &bits.Reader{R: bytes.NewReader(data)}

	if config.ObjectType, err = readObjectType(br); err != nil {
		return config, fmt.Errorf("aacparser: insufficient data for object type: %w", err)
	}
	if err = readSampleRate(br, &config); err != nil {
		return config, fmt.Errorf("aacparser: insufficient data for sample rate index: %w", err)
	}
	if config.ChannelConfig, err = br.ReadBits(4); err != nil {
		return config, fmt.Errorf("aacparser: insufficient data for channel config: %w", err)
	}

	explicitRate := config.SampleRate
	config.Complete()
	if config.SampleRateIndex == explicitSampleRate {
		config.SampleRate = explicitRate
	}
	return
}

// WriteMPEG4AudioConfig writes the AudioSpecificConfig of config followed by a GASpecificConfig
// with all flags cleared.
func WriteMPEG4AudioConfig(w io.Writer, config MPEG4AudioConfig) (err error) {
	if w == nil {
		return errors.New("aacparser: writer is nil")
	}
	if !config.IsValid() {
		return errors.New("aacparser: invalid MPEG4 audio configuration")
	}
	if config.SampleRateIndex >= explicitSampleRate && (config.SampleRate <= 0 || config.SampleRate >= 1<<24) {
		return fmt.Errorf("aacparser: invalid sample rate %d", config.SampleRate)
	}
	if config.ChannelConfig > 7 {
		return fmt.Errorf("aacparser: invalid channel configuration: %d", config.ChannelConfig)
	}

	bw := &bits.Writer{W: w}
	if err = writeObjectType(bw, config.ObjectType); err != nil {
		return
	}
	if err = writeSampleRate(bw, config); err != nil {
		return
	}
	if err = bw.WriteBits(config.ChannelConfig, 4); err != nil {
		return
	}
	// frameLengthFlag, dependsOnCoreCoder, extensionFlag
	if err = bw.WriteBits(0, 3); err != nil {
		return
	}
	return bw.FlushBits()
}
