package packet

// Connect represents an MQTT CONNECT packet.
// MQTT 3.1.1 Section 3.1
type Connect struct {
	// Protocol identification. "MQTT" level 4 (3.1.1) or the legacy
	// "MQIsdp" level 3 (3.1).
	ProtocolName    string  `msgpack:"pn"`
	ProtocolVersion Version `msgpack:"pv"`

	// Connect flags
	CleanSession bool `msgpack:"cs"`
	WillFlag     bool `msgpack:"wf"`
	WillQoS      QoS  `msgpack:"wq"`
	WillRetain   bool `msgpack:"wr"`
	PasswordFlag bool `msgpack:"pf"`
	UsernameFlag bool `msgpack:"uf"`

	// Keep alive (seconds)
	KeepAlive uint16 `msgpack:"ka"`

	// Payload fields
	ClientID    string `msgpack:"ci"`
	WillTopic   string `msgpack:"wt"`
	WillPayload []byte `msgpack:"wp"`
	Username    string `msgpack:"un"`
	Password    []byte `msgpack:"pw"`
}

// NewConnect creates a CONNECT packet for MQTT 3.1.1.
func NewConnect(clientID string, cleanSession bool, keepAlive uint16) *Connect {
	return &Connect{
		ProtocolName:    "MQTT",
		ProtocolVersion: Version311,
		ClientID:        clientID,
		CleanSession:    cleanSession,
		KeepAlive:       keepAlive,
	}
}

// Type returns TypeConnect.
func (c *Connect) Type() Type {
	return TypeConnect
}

// connectFlag bit positions in the connect flags byte.
const (
	connectFlagCleanSession = 1 << 1
	connectFlagWill         = 1 << 2
	connectFlagWillRetain   = 1 << 5
	connectFlagPassword     = 1 << 6
	connectFlagUsername     = 1 << 7
)

func (c *Connect) remainingLength() int {
	// Variable header: protocol name (2 + len) + level (1) + flags (1) + keepalive (2)
	size := 2 + len(c.ProtocolName) + 1 + 1 + 2

	size += 2 + len(c.ClientID)
	if c.WillFlag {
		size += 2 + len(c.WillTopic)
		size += 2 + len(c.WillPayload)
	}
	if c.UsernameFlag {
		size += 2 + len(c.Username)
	}
	if c.PasswordFlag {
		size += 2 + len(c.Password)
	}
	return size
}

// EncodedSize returns the total size of the encoded CONNECT packet.
func (c *Connect) EncodedSize() int {
	remainingLength := c.remainingLength()
	return FixedHeaderSize(uint32(remainingLength)) + remainingLength
}

// Encode encodes the CONNECT packet into buf.
// Returns the number of bytes written, or 0 on error.
func (c *Connect) Encode(buf []byte) int {
	if len(buf) < c.EncodedSize() {
		return 0
	}

	pos := EncodeFixedHeader(buf, TypeConnect, 0, uint32(c.remainingLength()))
	if pos == 0 {
		return 0
	}

	// Variable header
	pos += EncodeString(buf[pos:], c.ProtocolName)
	buf[pos] = byte(c.ProtocolVersion)
	pos++

	var flags byte
	if c.CleanSession {
		flags |= connectFlagCleanSession
	}
	if c.WillFlag {
		flags |= connectFlagWill
		flags |= byte(c.WillQoS) << 3
		if c.WillRetain {
			flags |= connectFlagWillRetain
		}
	}
	if c.PasswordFlag {
		flags |= connectFlagPassword
	}
	if c.UsernameFlag {
		flags |= connectFlagUsername
	}
	buf[pos] = flags
	pos++

	pos += EncodeUint16(buf[pos:], c.KeepAlive)

	// Payload
	pos += EncodeString(buf[pos:], c.ClientID)
	if c.WillFlag {
		pos += EncodeString(buf[pos:], c.WillTopic)
		pos += EncodeBytes(buf[pos:], c.WillPayload)
	}
	if c.UsernameFlag {
		pos += EncodeString(buf[pos:], c.Username)
	}
	if c.PasswordFlag {
		pos += EncodeBytes(buf[pos:], c.Password)
	}

	return pos
}

// DecodeConnect decodes a CONNECT packet from buf.
// buf holds exactly the bytes after the fixed header.
func DecodeConnect(buf []byte, lim Limits) (*Connect, error) {
	c := &Connect{}
	pos := 0

	name, n, err := DecodeString(buf[pos:], lim.MaxStringLen)
	if err != nil {
		return nil, err
	}
	c.ProtocolName = name
	pos += n

	if pos >= len(buf) {
		return nil, ErrMalformedPacket
	}
	c.ProtocolVersion = Version(buf[pos])
	pos++

	valid := (c.ProtocolName == "MQTT" && c.ProtocolVersion == Version311) ||
		(c.ProtocolName == "MQIsdp" && c.ProtocolVersion == Version31)
	if !valid {
		return nil, ErrInvalidProtocol
	}

	if pos >= len(buf) {
		return nil, ErrMalformedPacket
	}
	flags := buf[pos]
	pos++

	// Reserved bit must be 0
	if flags&0x01 != 0 {
		return nil, ErrMalformedPacket
	}

	c.CleanSession = flags&connectFlagCleanSession != 0
	c.WillFlag = flags&connectFlagWill != 0
	c.WillQoS = QoS((flags >> 3) & 0x03)
	c.WillRetain = flags&connectFlagWillRetain != 0
	c.PasswordFlag = flags&connectFlagPassword != 0
	c.UsernameFlag = flags&connectFlagUsername != 0

	if !c.WillFlag {
		if c.WillQoS != 0 || c.WillRetain {
			return nil, ErrMalformedPacket
		}
	} else if !c.WillQoS.Valid() {
		return nil, ErrInvalidQoS
	}

	// MQTT-3.1.2-22: password requires username
	if c.PasswordFlag && !c.UsernameFlag {
		return nil, ErrMalformedPacket
	}

	keepAlive, n, ok := DecodeUint16(buf[pos:])
	if !ok {
		return nil, ErrMalformedPacket
	}
	c.KeepAlive = keepAlive
	pos += n

	// Payload
	clientID, n, err := DecodeString(buf[pos:], lim.MaxStringLen)
	if err != nil {
		return nil, err
	}
	c.ClientID = clientID
	pos += n

	if c.WillFlag {
		topic, n, err := DecodeString(buf[pos:], lim.MaxStringLen)
		if err != nil {
			return nil, err
		}
		c.WillTopic = topic
		pos += n

		payload, n, err := DecodeBytes(buf[pos:], lim.MaxStringLen)
		if err != nil {
			return nil, err
		}
		c.WillPayload = payload
		pos += n
	}

	if c.UsernameFlag {
		username, n, err := DecodeString(buf[pos:], lim.MaxStringLen)
		if err != nil {
			return nil, err
		}
		c.Username = username
		pos += n
	}

	if c.PasswordFlag {
		password, n, err := DecodeBytes(buf[pos:], lim.MaxStringLen)
		if err != nil {
			return nil, err
		}
		c.Password = password
		pos += n
	}

	if pos != len(buf) {
		return nil, ErrMalformedPacket
	}

	return c, nil
}
