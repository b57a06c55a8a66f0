// Package a2dp ranks the bitmask codec descriptors and negotiates a configuration with a remote
// device from its list of advertised capabilities.
package a2dp

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/codec/aac"
	"github.com/ugparu/btaudio/codec/sbc"
	"github.com/ugparu/btaudio/utils"
	"github.com/ugparu/btaudio/utils/logger"
)

// RemoteCapabilities is one codec capability record advertised by a remote stream endpoint.
type RemoteCapabilities struct {
	SEID         int             `json:"seid"`
	ID           btaudio.CodecID `json:"id"`
	Capabilities []byte          `json:"capabilities"`
}

// ConfigurationHint steers negotiation. Nil fields mean no preference.
type ConfigurationHint struct {
	CodecID    *btaudio.CodecID          `json:"codecId,omitempty"`
	Parameters *btaudio.CodecParameters `json:"parameters,omitempty"`
}

// Configuration is the result of a successful negotiation. Parameters holds the codec specific
// type (sbc.Parameters, aac.Parameters).
type Configuration struct {
	RemoteSEID    int                `json:"remoteSeid"`
	ID            btaudio.CodecID    `json:"id"`
	Configuration []byte             `json:"configuration"`
	Parameters    btaudio.Parameters `json:"parameters"`
}

// Factory holds codec descriptors in priority order. It is immutable after construction and
// safe for concurrent use.
type Factory struct {
	name   string
	codecs []btaudio.Codec
}

// NewFactory returns a factory ranking codecs in the given order.
func NewFactory(name string, codecs ...btaudio.Codec) *Factory {
	return &Factory{name: name, codecs: slices.Clone(codecs)}
}

// Default returns the offload factory: AAC, then SBC.
func Default() *Factory {
	return NewFactory("Offload", aac.New(), sbc.New())
}

// NewCodec returns the descriptor registered under name ("aac" or "sbc", case insensitive).
func NewCodec(name string) (btaudio.Codec, error) {
	switch strings.ToLower(name) {
	case "aac":
		return aac.New(), nil
	case "sbc":
		return sbc.New(), nil
	}
	return nil, &utils.UnknownCodecError{Codec: codecName(name)}
}

// NewFactoryFromNames returns a factory ranking the named codecs in order.
func NewFactoryFromNames(name string, names []string) (*Factory, error) {
	codecs := make([]btaudio.Codec, 0, len(names))
	for _, n := range names {
		c, err := NewCodec(n)
		if err != nil {
			return nil, err
		}
		if slices.ContainsFunc(codecs, func(o btaudio.Codec) bool { return o.ID() == c.ID() }) {
			return nil, fmt.Errorf("a2dp: codec %s listed twice", c.ID())
		}
		codecs = append(codecs, c)
	}
	return NewFactory(name, codecs...), nil
}

type codecName string

func (n codecName) String() string { return string(n) }

func (f *Factory) String() string {
	return fmt.Sprintf("A2DP_FACTORY name=%s", f.name)
}

// Name returns the factory name.
func (f *Factory) Name() string {
	return f.name
}

// Codecs returns the codecs in priority order.
func (f *Factory) Codecs() []btaudio.Codec {
	return slices.Clone(f.codecs)
}

// GetCodec returns the codec with the given id.
func (f *Factory) GetCodec(id btaudio.CodecID) (btaudio.Codec, bool) {
	i := slices.IndexFunc(f.codecs, func(c btaudio.Codec) bool { return c.ID() == id })
	if i < 0 {
		return nil, false
	}
	return f.codecs[i], true
}

// Parse validates configuration with the codec id and returns the codec specific parameters.
// Unknown codecs fail with *utils.UnknownCodecError, invalid configurations with a
// btaudio.Status.
func (f *Factory) Parse(id btaudio.CodecID, configuration []byte) (btaudio.Parameters, error) {
	c, ok := f.GetCodec(id)
	if !ok {
		return nil, &utils.UnknownCodecError{Codec: id}
	}
	p, err := c.ParseConfiguration(configuration)
	if err != nil {
		logger.Debugf(f, "Configuration %x rejected by %v: %v", configuration, id, err)
	}
	return p, err
}

// ranked returns the codecs in negotiation order: the hinted codec first when registered, then
// the others in priority order.
func (f *Factory) ranked(hint *btaudio.CodecID) []btaudio.Codec {
	if hint == nil {
		return f.codecs
	}
	hinted, ok := f.GetCodec(*hint)
	if !ok {
		return f.codecs
	}
	codecs := make([]btaudio.Codec, 0, len(f.codecs))
	codecs = append(codecs, hinted)
	for _, c := range f.codecs {
		if c.ID() != hinted.ID() {
			codecs = append(codecs, c)
		}
	}
	return codecs
}

// GetConfiguration returns the configuration built by the first codec, in negotiation order,
// that has a remote capability record and can build a configuration from it. The first record
// advertising a codec is the one used for it.
func (f *Factory) GetConfiguration(remote []RemoteCapabilities, hint ConfigurationHint) (Configuration, bool) {
	for _, c := range f.ranked(hint.CodecID) {
		i := slices.IndexFunc(remote, func(rc RemoteCapabilities) bool { return rc.ID == c.ID() })
		if i < 0 {
			continue
		}
		rc := remote[i]

		configuration, err := c.BuildConfiguration(rc.Capabilities, hint.Parameters)
		if err != nil {
			logger.Debugf(f, "%v skipped for SEID %d: %v", c.ID(), rc.SEID, err)
			continue
		}

		parameters, err := c.ParseConfiguration(configuration)
		if err != nil {
			panic(fmt.Sprintf("a2dp: %v built configuration %x that does not parse: %v", c.ID(), configuration, err))
		}

		logger.Debugf(f, "Selected %v for SEID %d: %v", c.ID(), rc.SEID, parameters)
		return Configuration{
			RemoteSEID:    rc.SEID,
			ID:            c.ID(),
			Configuration: configuration,
			Parameters:    parameters,
		}, true
	}

	logger.Infof(f, "No common configuration among %d remote capabilities", len(remote))
	return Configuration{}, false
}
