package btaudio

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, OK, StatusOf(nil))
	require.Equal(t, BadLength, StatusOf(BadLength))
	require.Equal(t, InvalidSubbands, StatusOf(fmt.Errorf("sbc: %w", InvalidSubbands)))
	require.Equal(t, BadPayload, StatusOf(errors.New("other")))
}

func TestStatusKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		kind   StatusKind
	}{
		{OK, KindOK},
		{BadLength, KindStructural},
		{InvalidChannelMode, KindDecode},
		{InvalidMaximumBitpoolValue, KindDecode},
		{NotSupportedSamplingFrequency, KindUnsupported},
		{NotSupportedVBR, KindUnsupported},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.status.String(), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.kind, tt.status.Kind())
		})
	}
}

func TestCodecIDString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "SBC", SBC.String())
	require.Equal(t, "AAC", AAC.String())
	require.Equal(t, "LC3", LC3.String())
	require.Equal(t, "VENDOR(004f:0001)", VendorCodecID(0x4f, 1).String())
	require.NotEqual(t, AAC, CVSD)
	require.True(t, VendorCodecID(1, 2).IsVendor())
}

func TestChannelModeJSON(t *testing.T) {
	t.Parallel()

	data, err := Stereo.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"STEREO"`, string(data))

	var ch ChannelMode
	require.NoError(t, ch.UnmarshalJSON([]byte(`"DUALMONO"`)))
	require.Equal(t, DualMono, ch)
	require.Equal(t, 2, ch.Count())

	require.Error(t, ch.UnmarshalJSON([]byte(`"QUAD"`)))
}
