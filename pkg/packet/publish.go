package packet

// Publish represents an MQTT PUBLISH packet.
// MQTT 3.1.1 Section 3.3
type Publish struct {
	// Fixed header flags
	Dup    bool `msgpack:"d"` // Duplicate delivery flag
	Retain bool `msgpack:"r"` // Retain flag

	// Delivery carries the QoS and, for QoS > 0, the packet identifier.
	Delivery QoSPID `msgpack:"qp"`

	// Variable header
	TopicName string `msgpack:"n"`

	// Payload is the application message. It is not length-prefixed on
	// the wire; it spans whatever the remaining length leaves after the
	// topic and identifier.
	Payload []byte `msgpack:"p"`
}

// Type returns TypePublish.
func (p *Publish) Type() Type {
	return TypePublish
}

// flags returns the fixed header flags for this PUBLISH packet.
func (p *Publish) flags() byte {
	var flags byte
	if p.Retain {
		flags |= PublishFlagRetain
	}
	flags |= byte(p.Delivery.QoS()) << 1
	if p.Dup {
		flags |= PublishFlagDup
	}
	return flags
}

func (p *Publish) remainingLength() int {
	size := 2 + len(p.TopicName)
	if _, ok := p.Delivery.PID(); ok {
		size += 2
	}
	return size + len(p.Payload)
}

// EncodedSize returns the total size of the encoded PUBLISH packet.
func (p *Publish) EncodedSize() int {
	remainingLength := p.remainingLength()
	return FixedHeaderSize(uint32(remainingLength)) + remainingLength
}

// Encode encodes the PUBLISH packet into buf.
// Returns the number of bytes written, or 0 on error.
func (p *Publish) Encode(buf []byte) int {
	if len(buf) < p.EncodedSize() {
		return 0
	}

	pos := EncodeFixedHeader(buf, TypePublish, p.flags(), uint32(p.remainingLength()))
	if pos == 0 {
		return 0
	}

	pos += EncodeString(buf[pos:], p.TopicName)
	if pid, ok := p.Delivery.PID(); ok {
		pos += EncodeUint16(buf[pos:], uint16(pid))
	}

	copy(buf[pos:], p.Payload)
	pos += len(p.Payload)

	return pos
}

// DecodePublish decodes a PUBLISH packet from buf.
// flags are the fixed header flags (lower 4 bits of the first byte);
// buf holds exactly the bytes after the fixed header.
func DecodePublish(flags byte, buf []byte, lim Limits) (*Publish, error) {
	qos := QoS((flags >> 1) & 0x03)
	if !qos.Valid() {
		return nil, ErrInvalidQoS
	}

	p := &Publish{
		Retain: flags&PublishFlagRetain != 0,
		Dup:    flags&PublishFlagDup != 0,
	}

	// MQTT-3.3.1-2: DUP must be 0 for QoS 0
	if qos == QoS0 && p.Dup {
		return nil, ErrMalformedPacket
	}

	topic, pos, err := DecodeString(buf, lim.MaxStringLen)
	if err != nil {
		return nil, err
	}
	p.TopicName = topic

	switch qos {
	case QoS0:
		p.Delivery = AtMostOnce()
	default:
		pid, n, err := DecodePID(buf[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
		if qos == QoS1 {
			p.Delivery = AtLeastOnce(pid)
		} else {
			p.Delivery = ExactlyOnce(pid)
		}
	}

	if pos < len(buf) {
		p.Payload = make([]byte, len(buf)-pos)
		copy(p.Payload, buf[pos:])
	}

	return p, nil
}

// NewPublish creates a PUBLISH packet.
func NewPublish(topic string, payload []byte, delivery QoSPID, retain bool) *Publish {
	return &Publish{
		TopicName: topic,
		Payload:   payload,
		Delivery:  delivery,
		Retain:    retain,
	}
}
