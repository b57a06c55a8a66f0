package a2dp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/btaudio"
	"github.com/ugparu/btaudio/codec/aac"
	"github.com/ugparu/btaudio/codec/sbc"
	"github.com/ugparu/btaudio/utils"
)

var (
	aacRemote = RemoteCapabilities{SEID: 1, ID: btaudio.AAC, Capabilities: []byte{0x80, 0x00, 0x84, 0x80, 0x00, 0x00}}
	sbcRemote = RemoteCapabilities{SEID: 2, ID: btaudio.SBC, Capabilities: []byte{0xff, 0xff, 0x02, 0x35}}
)

func TestDefault(t *testing.T) {
	t.Parallel()

	f := Default()
	require.Equal(t, "Offload", f.Name())
	require.Equal(t, "A2DP_FACTORY name=Offload", f.String())

	codecs := f.Codecs()
	require.Len(t, codecs, 2)
	require.Equal(t, btaudio.AAC, codecs[0].ID())
	require.Equal(t, btaudio.SBC, codecs[1].ID())

	c, ok := f.GetCodec(btaudio.SBC)
	require.True(t, ok)
	require.Equal(t, "SBC", c.Info().Name)

	_, ok = f.GetCodec(btaudio.LC3)
	require.False(t, ok)
}

func TestParse(t *testing.T) {
	t.Parallel()

	f := Default()

	p, err := f.Parse(btaudio.SBC, []byte{0x21, 0x19, 0x02, 0x35})
	require.NoError(t, err)
	require.Equal(t, 44100, p.Common().SamplingFrequencyHz)
	sbcParams, ok := p.(sbc.Parameters)
	require.True(t, ok)
	require.Equal(t, 16, sbcParams.BlockLength)
	require.Equal(t, 53, sbcParams.MaxBitpool)

	p, err = f.Parse(btaudio.AAC, []byte{0x80, 0x01, 0x08, 0x83, 0xe8, 0x00})
	require.NoError(t, err)
	aacParams, ok := p.(aac.Parameters)
	require.True(t, ok)
	require.Equal(t, aac.MPEG2AACLC, aacParams.ObjectType)
	require.True(t, aacParams.VBR)

	p, err = f.Parse(btaudio.SBC, []byte{0x21, 0x19, 0x02})
	require.ErrorIs(t, err, btaudio.BadLength)
	require.Nil(t, p)

	_, err = f.Parse(btaudio.LC3, []byte{0x00})
	var unknown *utils.UnknownCodecError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "unknown codec LC3", err.Error())
}

func TestGetConfiguration(t *testing.T) {
	t.Parallel()

	sbcID, lc3ID := btaudio.SBC, btaudio.LC3
	aacLTPOnly := RemoteCapabilities{SEID: 3, ID: btaudio.AAC, Capabilities: []byte{0x20, 0xff, 0xff, 0x80, 0x00, 0x00}}

	tests := []struct {
		name   string
		remote []RemoteCapabilities
		hint   ConfigurationHint
		ok     bool
		id     btaudio.CodecID
		seid   int
	}{
		{"default_order", []RemoteCapabilities{sbcRemote, aacRemote}, ConfigurationHint{}, true, btaudio.AAC, 1},
		{"hinted_codec_first", []RemoteCapabilities{sbcRemote, aacRemote}, ConfigurationHint{CodecID: &sbcID}, true, btaudio.SBC, 2},
		{"unregistered_hint_ignored", []RemoteCapabilities{sbcRemote, aacRemote}, ConfigurationHint{CodecID: &lc3ID}, true, btaudio.AAC, 1},
		{"hinted_codec_not_remote", []RemoteCapabilities{aacRemote}, ConfigurationHint{CodecID: &sbcID}, true, btaudio.AAC, 1},
		{"remote_sbc_only", []RemoteCapabilities{sbcRemote}, ConfigurationHint{}, true, btaudio.SBC, 2},
		{"aac_fails_sbc_wins", []RemoteCapabilities{aacLTPOnly, sbcRemote}, ConfigurationHint{}, true, btaudio.SBC, 2},
		{"first_record_per_codec", []RemoteCapabilities{aacLTPOnly, aacRemote}, ConfigurationHint{}, false, btaudio.CodecID{}, 0},
		{"no_remote", nil, ConfigurationHint{}, false, btaudio.CodecID{}, 0},
		{"unknown_remote_codec", []RemoteCapabilities{{SEID: 4, ID: btaudio.LC3, Capabilities: []byte{0x01}}}, ConfigurationHint{}, false, btaudio.CodecID{}, 0},
	}

	f := Default()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, ok := f.GetConfiguration(tt.remote, tt.hint)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.id, cfg.ID)
			require.Equal(t, tt.seid, cfg.RemoteSEID)
			if !ok {
				return
			}
			p, err := f.Parse(cfg.ID, cfg.Configuration)
			require.NoError(t, err)
			require.Equal(t, p, cfg.Parameters)
		})
	}
}

func TestGetConfigurationHintParameters(t *testing.T) {
	t.Parallel()

	sbcID := btaudio.SBC
	cfg, ok := Default().GetConfiguration([]RemoteCapabilities{aacRemote, sbcRemote}, ConfigurationHint{
		CodecID:    &sbcID,
		Parameters: &btaudio.CodecParameters{ChannelMode: btaudio.Mono, SamplingFrequencyHz: 48000},
	})
	require.True(t, ok)
	require.Equal(t, btaudio.SBC, cfg.ID)
	require.IsType(t, sbc.Parameters{}, cfg.Parameters)
	require.Equal(t, btaudio.Mono, cfg.Parameters.Common().ChannelMode)
	require.Equal(t, 48000, cfg.Parameters.Common().SamplingFrequencyHz)
}

type brokenCodec struct {
	btaudio.Codec
}

func (brokenCodec) ID() btaudio.CodecID { return btaudio.SBC }

func (brokenCodec) BuildConfiguration([]byte, *btaudio.CodecParameters) ([]byte, error) {
	return []byte{0x00}, nil
}

func (brokenCodec) ParseConfiguration([]byte) (btaudio.Parameters, error) {
	return nil, btaudio.BadLength
}

func TestGetConfigurationInvariant(t *testing.T) {
	t.Parallel()

	f := NewFactory("broken", brokenCodec{})
	require.Panics(t, func() {
		f.GetConfiguration([]RemoteCapabilities{sbcRemote}, ConfigurationHint{})
	})
}

func TestNewFactoryFromNames(t *testing.T) {
	t.Parallel()

	f, err := NewFactoryFromNames("custom", []string{"sbc", "AAC"})
	require.NoError(t, err)
	codecs := f.Codecs()
	require.Len(t, codecs, 2)
	require.Equal(t, btaudio.SBC, codecs[0].ID())
	require.Equal(t, btaudio.AAC, codecs[1].ID())

	cfg, ok := f.GetConfiguration([]RemoteCapabilities{aacRemote, sbcRemote}, ConfigurationHint{})
	require.True(t, ok)
	require.Equal(t, btaudio.SBC, cfg.ID)

	_, err = NewFactoryFromNames("custom", []string{"opus"})
	var unknown *utils.UnknownCodecError
	require.ErrorAs(t, err, &unknown)

	_, err = NewFactoryFromNames("custom", []string{"sbc", "sbc"})
	require.Error(t, err)
}
