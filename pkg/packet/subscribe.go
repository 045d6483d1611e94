package packet

// Subscription is a single topic filter with its requested QoS.
type Subscription struct {
	TopicFilter string `msgpack:"f"`
	QoS         QoS    `msgpack:"q"`
}

// Subscribe represents an MQTT SUBSCRIBE packet.
// MQTT 3.1.1 Section 3.8
//
// The protocol requires a non-empty topic list; enforcing that is left to
// the protocol layer, the codec round-trips whatever it is given.
type Subscribe struct {
	PacketID PID            `msgpack:"i"`
	Topics   []Subscription `msgpack:"t"`
}

// Type returns TypeSubscribe.
func (s *Subscribe) Type() Type {
	return TypeSubscribe
}

func (s *Subscribe) remainingLength() int {
	size := 2
	for _, sub := range s.Topics {
		size += 2 + len(sub.TopicFilter) + 1 // length + filter + QoS byte
	}
	return size
}

// EncodedSize returns the total size of the encoded SUBSCRIBE packet.
func (s *Subscribe) EncodedSize() int {
	remainingLength := s.remainingLength()
	return FixedHeaderSize(uint32(remainingLength)) + remainingLength
}

// Encode encodes the SUBSCRIBE packet into buf.
// Returns the number of bytes written, or 0 on error.
func (s *Subscribe) Encode(buf []byte) int {
	if len(buf) < s.EncodedSize() {
		return 0
	}

	pos := EncodeFixedHeader(buf, TypeSubscribe, SubscribeFlags, uint32(s.remainingLength()))
	if pos == 0 {
		return 0
	}

	pos += EncodeUint16(buf[pos:], uint16(s.PacketID))
	for _, sub := range s.Topics {
		pos += EncodeString(buf[pos:], sub.TopicFilter)
		buf[pos] = byte(sub.QoS)
		pos++
	}

	return pos
}

// DecodeSubscribe decodes a SUBSCRIBE packet from buf.
// buf holds exactly the bytes after the fixed header; elements are
// consumed until the payload boundary is reached exactly.
func DecodeSubscribe(buf []byte, lim Limits) (*Subscribe, error) {
	pid, pos, err := DecodePID(buf)
	if err != nil {
		return nil, err
	}

	topics := newSeq[Subscription](lim)
	for pos < len(buf) {
		filter, n, err := DecodeString(buf[pos:], lim.MaxStringLen)
		if err != nil {
			return nil, err
		}
		pos += n

		if pos >= len(buf) {
			return nil, ErrMalformedPacket
		}
		qos := QoS(buf[pos])
		pos++
		if !qos.Valid() {
			return nil, ErrInvalidQoS
		}

		if err := topics.Append(Subscription{TopicFilter: filter, QoS: qos}); err != nil {
			return nil, ErrInvalidLength
		}
	}

	return &Subscribe{PacketID: pid, Topics: topics.Values()}, nil
}

// SubscribeReturnCode is the per-topic outcome in a SUBACK packet:
// the granted QoS, or 0x80 for failure.
// MQTT 3.1.1 Section 3.9.3
type SubscribeReturnCode byte

// SubscribeFailure rejects the corresponding topic filter.
const SubscribeFailure SubscribeReturnCode = 0x80

// GrantedQoS returns the return code granting q.
func GrantedQoS(q QoS) SubscribeReturnCode {
	return SubscribeReturnCode(q)
}

// Valid returns true if the code is 0x80 or a valid QoS.
func (c SubscribeReturnCode) Valid() bool {
	return c == SubscribeFailure || QoS(c).Valid()
}

// Granted returns the granted QoS and true, or false for a failure code.
func (c SubscribeReturnCode) Granted() (QoS, bool) {
	if c == SubscribeFailure {
		return 0, false
	}
	return QoS(c), true
}

// String returns a human-readable description of the return code.
func (c SubscribeReturnCode) String() string {
	if c == SubscribeFailure {
		return "failure"
	}
	return QoS(c).String()
}

// Suback represents an MQTT SUBACK packet. Return codes are ordered to
// match the topic order of the SUBSCRIBE being acknowledged.
// MQTT 3.1.1 Section 3.9
type Suback struct {
	PacketID    PID                   `msgpack:"i"`
	ReturnCodes []SubscribeReturnCode `msgpack:"r"`
}

// Type returns TypeSuback.
func (s *Suback) Type() Type {
	return TypeSuback
}

func (s *Suback) remainingLength() int {
	return 2 + len(s.ReturnCodes)
}

// EncodedSize returns the total size of the encoded SUBACK packet.
func (s *Suback) EncodedSize() int {
	remainingLength := s.remainingLength()
	return FixedHeaderSize(uint32(remainingLength)) + remainingLength
}

// Encode encodes the SUBACK packet into buf.
// Returns the number of bytes written, or 0 on error.
func (s *Suback) Encode(buf []byte) int {
	if len(buf) < s.EncodedSize() {
		return 0
	}

	pos := EncodeFixedHeader(buf, TypeSuback, 0, uint32(s.remainingLength()))
	if pos == 0 {
		return 0
	}

	pos += EncodeUint16(buf[pos:], uint16(s.PacketID))
	for _, code := range s.ReturnCodes {
		buf[pos] = byte(code)
		pos++
	}

	return pos
}

// DecodeSuback decodes a SUBACK packet from buf.
// buf holds exactly the bytes after the fixed header.
func DecodeSuback(buf []byte, lim Limits) (*Suback, error) {
	pid, pos, err := DecodePID(buf)
	if err != nil {
		return nil, err
	}

	codes := newSeq[SubscribeReturnCode](lim)
	for pos < len(buf) {
		code := SubscribeReturnCode(buf[pos])
		pos++
		if !code.Valid() {
			return nil, ErrInvalidSubscribeCode
		}
		if err := codes.Append(code); err != nil {
			return nil, ErrInvalidLength
		}
	}

	return &Suback{PacketID: pid, ReturnCodes: codes.Values()}, nil
}
