package packet

// The four QoS acknowledgement packets carry nothing but a packet
// identifier. MQTT 3.1.1 Sections 3.4 through 3.7

// Puback represents an MQTT PUBACK packet (QoS 1 acknowledgment).
type Puback struct {
	PacketID PID `msgpack:"i"`
}

// Type returns TypePuback.
func (p *Puback) Type() Type { return TypePuback }

// EncodedSize returns the total size of the encoded PUBACK packet.
func (p *Puback) EncodedSize() int { return ackEncodedSize }

// Encode encodes the PUBACK packet into buf.
func (p *Puback) Encode(buf []byte) int {
	return encodeAck(buf, TypePuback, 0, p.PacketID)
}

// DecodePuback decodes a PUBACK packet from buf.
func DecodePuback(buf []byte) (*Puback, error) {
	pid, err := decodeAck(buf)
	if err != nil {
		return nil, err
	}
	return &Puback{PacketID: pid}, nil
}

// Pubrec represents an MQTT PUBREC packet (QoS 2 part 1).
type Pubrec struct {
	PacketID PID `msgpack:"i"`
}

// Type returns TypePubrec.
func (p *Pubrec) Type() Type { return TypePubrec }

// EncodedSize returns the total size of the encoded PUBREC packet.
func (p *Pubrec) EncodedSize() int { return ackEncodedSize }

// Encode encodes the PUBREC packet into buf.
func (p *Pubrec) Encode(buf []byte) int {
	return encodeAck(buf, TypePubrec, 0, p.PacketID)
}

// DecodePubrec decodes a PUBREC packet from buf.
func DecodePubrec(buf []byte) (*Pubrec, error) {
	pid, err := decodeAck(buf)
	if err != nil {
		return nil, err
	}
	return &Pubrec{PacketID: pid}, nil
}

// Pubrel represents an MQTT PUBREL packet (QoS 2 part 2).
// Its fixed header carries the reserved flag value 0010.
type Pubrel struct {
	PacketID PID `msgpack:"i"`
}

// Type returns TypePubrel.
func (p *Pubrel) Type() Type { return TypePubrel }

// EncodedSize returns the total size of the encoded PUBREL packet.
func (p *Pubrel) EncodedSize() int { return ackEncodedSize }

// Encode encodes the PUBREL packet into buf.
func (p *Pubrel) Encode(buf []byte) int {
	return encodeAck(buf, TypePubrel, PubrelFlags, p.PacketID)
}

// DecodePubrel decodes a PUBREL packet from buf.
func DecodePubrel(buf []byte) (*Pubrel, error) {
	pid, err := decodeAck(buf)
	if err != nil {
		return nil, err
	}
	return &Pubrel{PacketID: pid}, nil
}

// Pubcomp represents an MQTT PUBCOMP packet (QoS 2 part 3).
type Pubcomp struct {
	PacketID PID `msgpack:"i"`
}

// Type returns TypePubcomp.
func (p *Pubcomp) Type() Type { return TypePubcomp }

// EncodedSize returns the total size of the encoded PUBCOMP packet.
func (p *Pubcomp) EncodedSize() int { return ackEncodedSize }

// Encode encodes the PUBCOMP packet into buf.
func (p *Pubcomp) Encode(buf []byte) int {
	return encodeAck(buf, TypePubcomp, 0, p.PacketID)
}

// DecodePubcomp decodes a PUBCOMP packet from buf.
func DecodePubcomp(buf []byte) (*Pubcomp, error) {
	pid, err := decodeAck(buf)
	if err != nil {
		return nil, err
	}
	return &Pubcomp{PacketID: pid}, nil
}

// ackEncodedSize is fixed header (2) + packet identifier (2).
const ackEncodedSize = 4

func encodeAck(buf []byte, t Type, flags byte, pid PID) int {
	if len(buf) < ackEncodedSize {
		return 0
	}
	pos := EncodeFixedHeader(buf, t, flags, 2)
	pos += EncodeUint16(buf[pos:], uint16(pid))
	return pos
}

func decodeAck(buf []byte) (PID, error) {
	if len(buf) != 2 {
		return 0, ErrMalformedPacket
	}
	pid, _, err := DecodePID(buf)
	return pid, err
}
