package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarIntBoundaries(t *testing.T) {
	testCases := []struct {
		value uint32
		bytes int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{2097151, 3},
		{2097152, 4},
		{268435455, 4},
	}

	for _, tc := range testCases {
		buf := make([]byte, 4)
		n := EncodeVarInt(buf, tc.value)
		require.Equal(t, tc.bytes, n, "encode %d", tc.value)
		assert.Equal(t, tc.bytes, VarIntSize(tc.value))

		value, n, err := DecodeVarInt(buf[:n])
		require.NoError(t, err)
		assert.Equal(t, tc.value, value)
		assert.Equal(t, tc.bytes, n)
	}
}

func TestVarIntEncodeOverMax(t *testing.T) {
	buf := make([]byte, 8)
	assert.Equal(t, 0, EncodeVarInt(buf, 268435456))
}

func TestVarIntDecodeIncomplete(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{0x80},
		{0xFF, 0xFF},
		{0x80, 0x80, 0x80},
	} {
		_, _, err := DecodeVarInt(data)
		assert.ErrorIs(t, err, ErrIncompletePacket, "% x", data)
	}
}

func TestVarIntDecodeOverlong(t *testing.T) {
	// Four continuation bytes: no fifth byte is ever valid.
	_, _, err := DecodeVarInt([]byte{0x80, 0x80, 0x80, 0x80})
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, _, err = DecodeVarInt([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x7F})
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestUint16RoundTrip(t *testing.T) {
	buf := make([]byte, 2)
	require.Equal(t, 2, EncodeUint16(buf, 0xBEEF))
	assert.Equal(t, []byte{0xBE, 0xEF}, buf)

	value, n, ok := DecodeUint16(buf)
	require.True(t, ok)
	assert.Equal(t, uint16(0xBEEF), value)
	assert.Equal(t, 2, n)

	_, _, ok = DecodeUint16([]byte{0xBE})
	assert.False(t, ok)
}

func TestDecodePID(t *testing.T) {
	pid, n, err := DecodePID([]byte{0x00, 0x01})
	require.NoError(t, err)
	assert.Equal(t, PID(1), pid)
	assert.Equal(t, 2, n)

	_, _, err = DecodePID([]byte{0x00, 0x00})
	assert.ErrorIs(t, err, ErrInvalidPacketID)

	_, _, err = DecodePID([]byte{0x00})
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

func TestStringRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	n := EncodeString(buf, "to/pic")
	require.Equal(t, 8, n)
	assert.Equal(t, []byte{0x00, 0x06, 't', 'o', '/', 'p', 'i', 'c'}, buf[:n])

	s, n, err := DecodeString(buf[:n], 0)
	require.NoError(t, err)
	assert.Equal(t, "to/pic", s)
	assert.Equal(t, 8, n)
}

func TestDecodeStringErrors(t *testing.T) {
	t.Run("short prefix", func(t *testing.T) {
		_, _, err := DecodeString([]byte{0x00}, 0)
		assert.ErrorIs(t, err, ErrMalformedPacket)
	})

	t.Run("prefix exceeds data", func(t *testing.T) {
		_, _, err := DecodeString([]byte{0x00, 0x05, 'a', 'b'}, 0)
		assert.ErrorIs(t, err, ErrMalformedPacket)
	})

	t.Run("exceeds cap", func(t *testing.T) {
		_, _, err := DecodeString([]byte{0x00, 0x03, 'a', 'b', 'c'}, 2)
		assert.ErrorIs(t, err, ErrInvalidLength)
	})

	t.Run("invalid UTF-8", func(t *testing.T) {
		_, _, err := DecodeString([]byte{0x00, 0x02, 0xC3, 0x28}, 0)
		assert.ErrorIs(t, err, ErrInvalidUTF8)
	})

	t.Run("null character", func(t *testing.T) {
		_, _, err := DecodeString([]byte{0x00, 0x01, 0x00}, 0)
		assert.ErrorIs(t, err, ErrInvalidUTF8)
	})
}

func TestDecodeBytes(t *testing.T) {
	data, n, err := DecodeBytes([]byte{0x00, 0x02, 0xDE, 0xAD}, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD}, data)
	assert.Equal(t, 4, n)

	data, n, err = DecodeBytes([]byte{0x00, 0x00}, 0)
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, 2, n)
}

func TestFixedHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	n := EncodeFixedHeader(buf, TypePublish, 0x0B, 321)
	require.Equal(t, 3, n)

	packetType, flags, remainingLength, headerLen, err := DecodeFixedHeader(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, TypePublish, packetType)
	assert.Equal(t, byte(0x0B), flags)
	assert.Equal(t, uint32(321), remainingLength)
	assert.Equal(t, 3, headerLen)
}

func TestDecodeFixedHeaderIncomplete(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{0x10},
		{0x10, 0x80},
		{0x10, 0xFF, 0xFF, 0xFF},
	} {
		_, _, _, _, err := DecodeFixedHeader(data)
		assert.ErrorIs(t, err, ErrIncompletePacket, "% x", data)
	}
}

func TestDecodeFixedHeaderMalformed(t *testing.T) {
	// Reserved type nibbles 0 and 15.
	_, _, _, _, err := DecodeFixedHeader([]byte{0x00, 0x00})
	assert.ErrorIs(t, err, ErrUnknownPacketType)

	_, _, _, _, err = DecodeFixedHeader([]byte{0xF0, 0x00})
	assert.ErrorIs(t, err, ErrUnknownPacketType)

	// Over-long remaining length.
	_, _, _, _, err = DecodeFixedHeader([]byte{0x10, 0x80, 0x80, 0x80, 0x80, 0x01})
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestValidateUTF8(t *testing.T) {
	assert.NoError(t, ValidateUTF8([]byte("plain")))
	assert.NoError(t, ValidateUTF8([]byte("ünïcødé")))
	assert.ErrorIs(t, ValidateUTF8([]byte{0xFF}), ErrInvalidUTF8)
	assert.ErrorIs(t, ValidateUTF8([]byte{'a', 0x00, 'b'}), ErrInvalidUTF8)
	// UTF-16 surrogate half encoded as UTF-8.
	assert.ErrorIs(t, ValidateUTF8([]byte{0xED, 0xA0, 0x80}), ErrInvalidUTF8)
}
