package packet

// ConnackCode is the CONNECT return code carried by a CONNACK packet.
// MQTT 3.1.1 Section 3.2.2.3
type ConnackCode byte

const (
	ConnackAccepted                    ConnackCode = 0x00 // Connection Accepted
	ConnackUnacceptableProtocolVersion ConnackCode = 0x01 // Connection Refused, unacceptable protocol version
	ConnackIdentifierRejected          ConnackCode = 0x02 // Connection Refused, identifier rejected
	ConnackServerUnavailable           ConnackCode = 0x03 // Connection Refused, Server unavailable
	ConnackBadUsernameOrPassword       ConnackCode = 0x04 // Connection Refused, bad user name or password
	ConnackNotAuthorized               ConnackCode = 0x05 // Connection Refused, not authorized
)

// Valid returns true if the code is one of the six defined values.
func (c ConnackCode) Valid() bool {
	return c <= ConnackNotAuthorized
}

// IsAccepted returns true if the connection was accepted.
func (c ConnackCode) IsAccepted() bool {
	return c == ConnackAccepted
}

// String returns a human-readable description of the return code.
func (c ConnackCode) String() string {
	switch c {
	case ConnackAccepted:
		return "connection accepted"
	case ConnackUnacceptableProtocolVersion:
		return "unacceptable protocol version"
	case ConnackIdentifierRejected:
		return "identifier rejected"
	case ConnackServerUnavailable:
		return "server unavailable"
	case ConnackBadUsernameOrPassword:
		return "bad user name or password"
	case ConnackNotAuthorized:
		return "not authorized"
	default:
		return "unknown return code"
	}
}

// Connack represents an MQTT CONNACK packet.
// MQTT 3.1.1 Section 3.2
type Connack struct {
	SessionPresent bool        `msgpack:"sp"`
	Code           ConnackCode `msgpack:"c"`
}

// Type returns TypeConnack.
func (c *Connack) Type() Type {
	return TypeConnack
}

// EncodedSize returns the total size of the encoded CONNACK packet.
func (c *Connack) EncodedSize() int {
	// Fixed header (2) + acknowledge flags (1) + return code (1)
	return 4
}

// Encode encodes the CONNACK packet into buf.
// Returns the number of bytes written, or 0 on error.
func (c *Connack) Encode(buf []byte) int {
	if len(buf) < 4 {
		return 0
	}

	pos := EncodeFixedHeader(buf, TypeConnack, 0, 2)
	if c.SessionPresent {
		buf[pos] = 0x01
	} else {
		buf[pos] = 0x00
	}
	pos++
	buf[pos] = byte(c.Code)
	pos++

	return pos
}

// DecodeConnack decodes a CONNACK packet from buf.
// buf holds exactly the bytes after the fixed header.
func DecodeConnack(buf []byte) (*Connack, error) {
	if len(buf) != 2 {
		return nil, ErrMalformedPacket
	}

	// Bits 7-1 of the acknowledge flags must be 0
	if buf[0]&0xFE != 0 {
		return nil, ErrMalformedPacket
	}

	code := ConnackCode(buf[1])
	if !code.Valid() {
		return nil, ErrInvalidConnackCode
	}

	return &Connack{
		SessionPresent: buf[0]&0x01 != 0,
		Code:           code,
	}, nil
}
