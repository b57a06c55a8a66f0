package codec

import (
	"fmt"

	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/utils/bits"
)

// Descriptor is the part shared by every bitmask codec descriptor: the codec identity, the
// packed local capability record and the lists derived from it.
type Descriptor struct {
	CodecInfo btaudio.CodecInfo
}

// NewDescriptor returns a descriptor with a zeroed capability record of size bytes.
func NewDescriptor(id btaudio.CodecID, name string, size int) Descriptor {
	return Descriptor{CodecInfo: btaudio.CodecInfo{
		ID:           id,
		Name:         name,
		Capabilities: make([]byte, size),
	}}
}

// ID returns the codec identifier.
func (d *Descriptor) ID() btaudio.CodecID {
	if d == nil {
		return btaudio.CodecID{}
	}
	return d.CodecInfo.ID
}

// Info returns the codec description. The returned value must not be modified.
func (d *Descriptor) Info() *btaudio.CodecInfo {
	if d == nil {
		return nil
	}
	return &d.CodecInfo
}

// Capabilities returns a view over the local capability record.
func (d *Descriptor) Capabilities() bits.View {
	return bits.View(d.CodecInfo.Capabilities)
}

// CheckLength fails with btaudio.BadLength unless record has the size of the capability record.
func (d *Descriptor) CheckLength(record []byte) error {
	if len(record) != len(d.CodecInfo.Capabilities) {
		return btaudio.BadLength
	}
	return nil
}

// NewConfiguration allocates an empty configuration record.
func (d *Descriptor) NewConfiguration() bits.View {
	return make(bits.View, len(d.CodecInfo.Capabilities))
}

func (d *Descriptor) String() string {
	if d == nil {
		return "EMPTY_CODEC_DESCRIPTOR"
	}
	return fmt.Sprintf("CODEC_DESCRIPTOR codec=%v", d.CodecInfo.ID)
}
