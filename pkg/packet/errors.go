package packet

import "errors"

// Sentinel errors for packet decoding and encoding.
var (
	// ErrMalformedPacket indicates the packet content is structurally
	// invalid, including payloads shorter than the remaining length
	// claims.
	ErrMalformedPacket = errors.New("malformed packet")

	// ErrInvalidLength indicates a remaining length encoding that
	// exceeds the 4-byte maximum, or a decoded element that would
	// overflow a bounded capacity.
	ErrInvalidLength = errors.New("invalid length")

	// ErrUnknownPacketType indicates a type nibble that does not map to
	// any of the fourteen control packet types.
	ErrUnknownPacketType = errors.New("unknown packet type")

	// ErrInvalidFlags indicates invalid fixed header flags for the
	// packet type.
	ErrInvalidFlags = errors.New("invalid packet flags")

	// ErrInvalidQoS indicates an invalid QoS level.
	ErrInvalidQoS = errors.New("invalid QoS level")

	// ErrInvalidProtocol indicates an unrecognized protocol name or
	// level in a CONNECT packet.
	ErrInvalidProtocol = errors.New("invalid protocol name or level")

	// ErrInvalidUTF8 indicates a string field contains invalid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 string")

	// ErrInvalidPacketID indicates a zero packet identifier.
	ErrInvalidPacketID = errors.New("invalid packet identifier")

	// ErrInvalidConnackCode indicates a CONNACK return code outside 0-5.
	ErrInvalidConnackCode = errors.New("invalid connect return code")

	// ErrInvalidSubscribeCode indicates a SUBACK return code that is
	// neither 0x80 nor a valid QoS.
	ErrInvalidSubscribeCode = errors.New("invalid subscribe return code")

	// ErrIncompletePacket indicates more data is needed to determine the
	// fixed header. It is reported by the header primitives only; Decode
	// maps it to a nil packet with a nil error so the caller can retry
	// after buffering more bytes.
	ErrIncompletePacket = errors.New("incomplete packet")
)
