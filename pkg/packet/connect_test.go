package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqttwire/mqttwire/pkg/buffer"
)

func TestConnectMinimalRoundTrip(t *testing.T) {
	connect := NewConnect("client-1", true, 30)

	buf := buffer.NewGrowable(64)
	require.NoError(t, Encode(connect, buf))

	decoded, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, connect, decoded)
}

func TestConnectLegacyProtocolRoundTrip(t *testing.T) {
	connect := &Connect{
		ProtocolName:    "MQIsdp",
		ProtocolVersion: Version31,
		ClientID:        "legacy",
		CleanSession:    false,
		KeepAlive:       120,
	}

	buf := buffer.NewGrowable(64)
	require.NoError(t, Encode(connect, buf))

	decoded, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, connect, decoded)
}

func TestConnectWireLayout(t *testing.T) {
	connect := NewConnect("id", true, 10)

	buf := buffer.NewGrowable(32)
	require.NoError(t, Encode(connect, buf))

	assert.Equal(t, []byte{
		0x10, 14, // fixed header
		0x00, 0x04, 'M', 'Q', 'T', 'T', // protocol name
		0x04,       // protocol level
		0x02,       // flags: clean session
		0x00, 0x0A, // keep alive
		0x00, 0x02, 'i', 'd', // client id
	}, buf.Bytes())
}

func TestDecodeConnectInvalidProtocol(t *testing.T) {
	testCases := []struct {
		name  string
		pname string
		level byte
	}{
		{"wrong name", "MQTX", 4},
		{"wrong level for MQTT", "MQTT", 3},
		{"wrong level for MQIsdp", "MQIsdp", 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			connect := &Connect{
				ProtocolName:    tc.pname,
				ProtocolVersion: Version(tc.level),
				ClientID:        "x",
			}
			wire := make([]byte, connect.EncodedSize())
			require.Equal(t, len(wire), connect.Encode(wire))

			_, err := DecodeConnect(wire[2:], DefaultLimits)
			assert.ErrorIs(t, err, ErrInvalidProtocol)
		})
	}
}

func TestDecodeConnectReservedFlagBit(t *testing.T) {
	connect := NewConnect("x", false, 0)
	wire := make([]byte, connect.EncodedSize())
	require.Equal(t, len(wire), connect.Encode(wire))

	// Flags byte sits after the fixed header (2), protocol name (6)
	// and level (1).
	wire[9] |= 0x01

	_, err := DecodeConnect(wire[2:], DefaultLimits)
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

func TestDecodeConnectPasswordWithoutUsername(t *testing.T) {
	connect := NewConnect("x", false, 0)
	connect.PasswordFlag = true
	connect.Password = []byte("p")
	wire := make([]byte, connect.EncodedSize())
	require.Equal(t, len(wire), connect.Encode(wire))

	_, err := DecodeConnect(wire[2:], DefaultLimits)
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

func TestDecodeConnectWillQoSWithoutWill(t *testing.T) {
	connect := NewConnect("x", false, 0)
	wire := make([]byte, connect.EncodedSize())
	require.Equal(t, len(wire), connect.Encode(wire))

	wire[9] |= 1 << 3 // will QoS 1 while the will flag is clear

	_, err := DecodeConnect(wire[2:], DefaultLimits)
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

func TestDecodeConnectTrailingBytes(t *testing.T) {
	connect := NewConnect("x", false, 0)
	wire := make([]byte, connect.EncodedSize())
	require.Equal(t, len(wire), connect.Encode(wire))

	payload := append(wire[2:], 0xAB)
	_, err := DecodeConnect(payload, DefaultLimits)
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

func TestDecodeConnackInvalidAckFlags(t *testing.T) {
	_, err := DecodeConnack([]byte{0x02, 0x00})
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

func TestPublishInvalidQoSFlags(t *testing.T) {
	buf := buffer.NewGrowable(16)
	// PUBLISH with QoS bits 11 (invalid).
	require.NoError(t, buf.Append([]byte{0x36, 0x03, 0x00, 0x01, 'a'}))

	_, err := Decode(buf)
	assert.ErrorIs(t, err, ErrInvalidQoS)
	assert.Zero(t, buf.Len(), "content error consumes the packet span")
}

func TestPublishDupWithQoS0(t *testing.T) {
	buf := buffer.NewGrowable(16)
	require.NoError(t, buf.Append([]byte{0x38, 0x03, 0x00, 0x01, 'a'}))

	_, err := Decode(buf)
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

func TestPublishZeroPacketID(t *testing.T) {
	buf := buffer.NewGrowable(16)
	// QoS 1 PUBLISH with packet identifier 0.
	require.NoError(t, buf.Append([]byte{0x32, 0x05, 0x00, 0x01, 'a', 0x00, 0x00}))

	_, err := Decode(buf)
	assert.ErrorIs(t, err, ErrInvalidPacketID)
}

func TestPublishEmptyPayloadRoundTrip(t *testing.T) {
	publish := NewPublish("a/b", nil, AtMostOnce(), true)

	buf := buffer.NewGrowable(16)
	require.NoError(t, Encode(publish, buf))

	decoded, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, publish, decoded)
}
