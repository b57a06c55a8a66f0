package bits

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewGetSet(t *testing.T) {
	t.Parallel()

	buf := make(View, 4)
	buf.SetBit(0, true)
	require.Equal(t, byte(0x80), buf[0])
	buf.SetBit(15, true)
	require.Equal(t, byte(0x01), buf[1])
	require.True(t, buf.Bit(15))
	buf.SetBit(15, false)
	require.False(t, buf.Bit(15))

	r := NewRange(16, 23)
	require.Equal(t, 8, r.Len)
	require.Equal(t, 23, r.Last())
	buf.Set(r, 250)
	require.Equal(t, byte(250), buf[2])
	require.Equal(t, uint(250), buf.Get(r))

	// Ranges may straddle bytes.
	straddle := NewRange(25, 47)
	wide := make(View, 6)
	wide.Set(straddle, 320000)
	require.Equal(t, uint(320000), wide.Get(straddle))
	require.False(t, wide.Bit(24))
}

func TestViewSetClearsBits(t *testing.T) {
	t.Parallel()

	buf := View{0xff}
	buf.Set(NewRange(2, 5), 0)
	require.Equal(t, byte(0xc3), buf[0])
}

func TestFindActiveBit(t *testing.T) {
	t.Parallel()

	r := NewRange(4, 7)
	tests := []struct {
		name string
		b    byte
		want int
	}{
		{"first", 0x08, 4},
		{"second", 0x04, 5},
		{"third", 0x02, 6},
		{"last", 0x01, 7},
		{"zero", 0x00, -1},
		{"two_bits", 0x03, -1},
		{"all_bits", 0x0f, -1},
		{"outside_range_ignored", 0xf1, 7},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, View{tt.b}.FindActiveBit(r))
		})
	}
}

func TestFindActiveBitReconstructsField(t *testing.T) {
	t.Parallel()

	r := NewRange(8, 19)
	for i := 0; i < r.Len; i++ {
		buf := make(View, 3)
		buf.SetBit(r.BitAt(i), true)
		active := buf.FindActiveBit(r)
		require.Equal(t, r.BitAt(i), active)

		rebuilt := make(View, 3)
		rebuilt.SetBit(active, true)
		require.Equal(t, buf.Get(r), rebuilt.Get(r))
	}
}

func TestReaderWriter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	w := &Writer{W: &out}
	require.NoError(t, w.WriteBits(2, 5))
	require.NoError(t, w.WriteBits(3, 4))
	require.NoError(t, w.WriteBits(2, 4))
	require.NoError(t, w.FlushBits())
	require.Equal(t, []byte{0x11, 0x90}, out.Bytes())

	r := &Reader{R: bytes.NewReader(out.Bytes())}
	v, err := r.ReadBits(5)
	require.NoError(t, err)
	require.Equal(t, uint(2), v)
	v, err = r.ReadBits(4)
	require.NoError(t, err)
	require.Equal(t, uint(3), v)
	bit, err := r.ReadBit()
	require.NoError(t, err)
	require.False(t, bit)
	_, err = r.ReadBits(8)
	require.ErrorIs(t, err, io.EOF)

	_, err = r.ReadBits(33)
	require.Error(t, err)
}
