package packet

// Unsubscribe represents an MQTT UNSUBSCRIBE packet.
// MQTT 3.1.1 Section 3.10
type Unsubscribe struct {
	PacketID PID      `msgpack:"i"`
	Topics   []string `msgpack:"t"`
}

// Type returns TypeUnsubscribe.
func (u *Unsubscribe) Type() Type {
	return TypeUnsubscribe
}

func (u *Unsubscribe) remainingLength() int {
	size := 2
	for _, topic := range u.Topics {
		size += 2 + len(topic)
	}
	return size
}

// EncodedSize returns the total size of the encoded UNSUBSCRIBE packet.
func (u *Unsubscribe) EncodedSize() int {
	remainingLength := u.remainingLength()
	return FixedHeaderSize(uint32(remainingLength)) + remainingLength
}

// Encode encodes the UNSUBSCRIBE packet into buf.
// Returns the number of bytes written, or 0 on error.
func (u *Unsubscribe) Encode(buf []byte) int {
	if len(buf) < u.EncodedSize() {
		return 0
	}

	pos := EncodeFixedHeader(buf, TypeUnsubscribe, UnsubscribeFlags, uint32(u.remainingLength()))
	if pos == 0 {
		return 0
	}

	pos += EncodeUint16(buf[pos:], uint16(u.PacketID))
	for _, topic := range u.Topics {
		pos += EncodeString(buf[pos:], topic)
	}

	return pos
}

// DecodeUnsubscribe decodes an UNSUBSCRIBE packet from buf.
// buf holds exactly the bytes after the fixed header; elements are
// consumed until the payload boundary is reached exactly.
func DecodeUnsubscribe(buf []byte, lim Limits) (*Unsubscribe, error) {
	pid, pos, err := DecodePID(buf)
	if err != nil {
		return nil, err
	}

	topics := newSeq[string](lim)
	for pos < len(buf) {
		topic, n, err := DecodeString(buf[pos:], lim.MaxStringLen)
		if err != nil {
			return nil, err
		}
		pos += n

		if err := topics.Append(topic); err != nil {
			return nil, ErrInvalidLength
		}
	}

	return &Unsubscribe{PacketID: pid, Topics: topics.Values()}, nil
}

// Unsuback represents an MQTT UNSUBACK packet.
// MQTT 3.1.1 Section 3.11
type Unsuback struct {
	PacketID PID `msgpack:"i"`
}

// Type returns TypeUnsuback.
func (u *Unsuback) Type() Type { return TypeUnsuback }

// EncodedSize returns the total size of the encoded UNSUBACK packet.
func (u *Unsuback) EncodedSize() int { return ackEncodedSize }

// Encode encodes the UNSUBACK packet into buf.
func (u *Unsuback) Encode(buf []byte) int {
	return encodeAck(buf, TypeUnsuback, 0, u.PacketID)
}

// DecodeUnsuback decodes an UNSUBACK packet from buf.
func DecodeUnsuback(buf []byte) (*Unsuback, error) {
	pid, err := decodeAck(buf)
	if err != nil {
		return nil, err
	}
	return &Unsuback{PacketID: pid}, nil
}
