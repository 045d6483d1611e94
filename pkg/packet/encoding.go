package packet

import (
	"encoding/binary"
	"unicode/utf8"
)

// EncodeVarInt encodes a variable byte integer into buf and returns the
// number of bytes written. Returns 0 if the value exceeds
// MaxRemainingLength or the buffer is too small.
// MQTT 3.1.1 Section 2.2.3
func EncodeVarInt(buf []byte, value uint32) int {
	if value > MaxRemainingLength {
		return 0
	}

	i := 0
	for {
		if i >= len(buf) {
			return 0
		}
		encodedByte := byte(value & 0x7F)
		value >>= 7
		if value > 0 {
			encodedByte |= 0x80
		}
		buf[i] = encodedByte
		i++
		if value == 0 {
			break
		}
	}
	return i
}

// DecodeVarInt decodes a variable byte integer from buf.
// Returns the value and the number of bytes consumed. The error
// distinguishes a buffer that ends before the terminating byte
// (ErrIncompletePacket, retry with more data) from an encoding that
// exceeds the 4-byte maximum (ErrInvalidLength, malformed).
// MQTT 3.1.1 Section 2.2.3
func DecodeVarInt(buf []byte) (value uint32, n int, err error) {
	var multiplier uint32 = 1

	for i := 0; i < len(buf); i++ {
		if i == 4 {
			return 0, 0, ErrInvalidLength
		}
		encodedByte := buf[i]
		value += uint32(encodedByte&0x7F) * multiplier
		if encodedByte&0x80 == 0 {
			return value, i + 1, nil
		}
		multiplier *= 128
	}

	if len(buf) >= 4 {
		// Four continuation bytes seen; no fifth byte is ever valid.
		return 0, 0, ErrInvalidLength
	}
	return 0, 0, ErrIncompletePacket
}

// VarIntSize returns the number of bytes needed to encode a value as a
// variable byte integer.
func VarIntSize(value uint32) int {
	switch {
	case value < 128:
		return 1
	case value < 16384:
		return 2
	case value < 2097152:
		return 3
	default:
		return 4
	}
}

// EncodeUint16 encodes a 16-bit unsigned integer in big-endian order.
// Returns 2 on success, 0 if buffer is too small.
func EncodeUint16(buf []byte, value uint16) int {
	if len(buf) < 2 {
		return 0
	}
	binary.BigEndian.PutUint16(buf, value)
	return 2
}

// DecodeUint16 decodes a 16-bit unsigned integer from big-endian bytes.
// Returns the value, 2 bytes consumed, and success flag.
func DecodeUint16(buf []byte) (value uint16, n int, ok bool) {
	if len(buf) < 2 {
		return 0, 0, false
	}
	return binary.BigEndian.Uint16(buf), 2, true
}

// DecodePID decodes a packet identifier: 2 bytes big-endian, never zero.
func DecodePID(buf []byte) (PID, int, error) {
	v, n, ok := DecodeUint16(buf)
	if !ok {
		return 0, 0, ErrMalformedPacket
	}
	if v == 0 {
		return 0, 0, ErrInvalidPacketID
	}
	return PID(v), n, nil
}

// EncodeString encodes a UTF-8 string with a 2-byte length prefix.
// Returns the number of bytes written, or 0 on error.
// MQTT 3.1.1 Section 1.5.3
func EncodeString(buf []byte, s string) int {
	slen := len(s)
	if slen > 65535 {
		return 0
	}
	if len(buf) < 2+slen {
		return 0
	}
	binary.BigEndian.PutUint16(buf, uint16(slen))
	copy(buf[2:], s)
	return 2 + slen
}

// EncodeBytes encodes binary data with a 2-byte length prefix.
// Returns the number of bytes written, or 0 on error.
func EncodeBytes(buf []byte, data []byte) int {
	dlen := len(data)
	if dlen > 65535 {
		return 0
	}
	if len(buf) < 2+dlen {
		return 0
	}
	binary.BigEndian.PutUint16(buf, uint16(dlen))
	copy(buf[2:], data)
	return 2 + dlen
}

// DecodeString decodes a length-prefixed UTF-8 string from buf into an
// owned string. maxLen > 0 caps the byte length for bounded-capacity
// deployments; exceeding it is ErrInvalidLength. A prefix that claims
// more bytes than buf holds is ErrMalformedPacket, since the packet's
// span was already established by the remaining length.
func DecodeString(buf []byte, maxLen int) (s string, n int, err error) {
	data, n, err := decodePrefixed(buf, maxLen)
	if err != nil {
		return "", 0, err
	}
	if err := ValidateUTF8(data); err != nil {
		return "", 0, err
	}
	return string(data), n, nil
}

// DecodeBytes decodes length-prefixed binary data from buf into an owned
// slice. Nil is returned for a zero-length field.
func DecodeBytes(buf []byte, maxLen int) (data []byte, n int, err error) {
	raw, n, err := decodePrefixed(buf, maxLen)
	if err != nil {
		return nil, 0, err
	}
	if len(raw) == 0 {
		return nil, n, nil
	}
	data = make([]byte, len(raw))
	copy(data, raw)
	return data, n, nil
}

func decodePrefixed(buf []byte, maxLen int) ([]byte, int, error) {
	if len(buf) < 2 {
		return nil, 0, ErrMalformedPacket
	}
	dlen := int(binary.BigEndian.Uint16(buf))
	if maxLen > 0 && dlen > maxLen {
		return nil, 0, ErrInvalidLength
	}
	if len(buf) < 2+dlen {
		return nil, 0, ErrMalformedPacket
	}
	return buf[2 : 2+dlen], 2 + dlen, nil
}

// ValidateUTF8 validates that a byte slice is valid UTF-8 without null
// characters or surrogate code points.
// MQTT 3.1.1 Section 1.5.3
func ValidateUTF8(data []byte) error {
	if !utf8.Valid(data) {
		return ErrInvalidUTF8
	}

	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == 0 {
			return ErrInvalidUTF8
		}
		if r >= 0xD800 && r <= 0xDFFF {
			return ErrInvalidUTF8
		}
		i += size
	}

	return nil
}

// FixedHeaderSize calculates the size of the fixed header for a given
// remaining length.
func FixedHeaderSize(remainingLength uint32) int {
	return 1 + VarIntSize(remainingLength)
}

// EncodeFixedHeader encodes the fixed header into buf.
// Returns the number of bytes written, or 0 on error.
func EncodeFixedHeader(buf []byte, packetType Type, flags byte, remainingLength uint32) int {
	if len(buf) < 1 {
		return 0
	}
	buf[0] = byte(packetType)<<4 | (flags & 0x0F)
	n := EncodeVarInt(buf[1:], remainingLength)
	if n == 0 {
		return 0
	}
	return 1 + n
}

// DecodeFixedHeader decodes the fixed header from buf without consuming
// it. Returns the packet type, flags, remaining length, and header byte
// count. ErrIncompletePacket means the buffer ends before the header
// does; ErrUnknownPacketType and ErrInvalidLength mean the header is
// malformed and no amount of further data can repair it.
func DecodeFixedHeader(buf []byte) (packetType Type, flags byte, remainingLength uint32, n int, err error) {
	if len(buf) < 1 {
		return 0, 0, 0, 0, ErrIncompletePacket
	}

	packetType = Type(buf[0] >> 4)
	flags = buf[0] & 0x0F
	if !packetType.Valid() {
		return 0, 0, 0, 0, ErrUnknownPacketType
	}

	remainingLength, varIntLen, err := DecodeVarInt(buf[1:])
	if err != nil {
		return 0, 0, 0, 0, err
	}

	return packetType, flags, remainingLength, 1 + varIntLen, nil
}
