package packet

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Envelope interop: packets can be carried through external data formats
// (session stores, inter-node relays) as msgpack with a one-byte kind
// tag. This is independent of the MQTT wire encoding and has no effect
// on it.

// MarshalPacket serializes p as a kind tag followed by the msgpack
// encoding of its fields.
func MarshalPacket(p Packet) ([]byte, error) {
	body, err := msgpack.Marshal(p)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+len(body))
	out = append(out, byte(p.Type()))
	return append(out, body...), nil
}

// UnmarshalPacket reverses MarshalPacket.
func UnmarshalPacket(data []byte) (Packet, error) {
	if len(data) < 1 {
		return nil, ErrMalformedPacket
	}

	var p Packet
	switch Type(data[0]) {
	case TypeConnect:
		p = &Connect{}
	case TypeConnack:
		p = &Connack{}
	case TypePublish:
		p = &Publish{}
	case TypePuback:
		p = &Puback{}
	case TypePubrec:
		p = &Pubrec{}
	case TypePubrel:
		p = &Pubrel{}
	case TypePubcomp:
		p = &Pubcomp{}
	case TypeSubscribe:
		p = &Subscribe{}
	case TypeSuback:
		p = &Suback{}
	case TypeUnsubscribe:
		p = &Unsubscribe{}
	case TypeUnsuback:
		p = &Unsuback{}
	case TypePingreq:
		p = &Pingreq{}
	case TypePingresp:
		p = &Pingresp{}
	case TypeDisconnect:
		p = &Disconnect{}
	default:
		return nil, ErrUnknownPacketType
	}

	if err := msgpack.Unmarshal(data[1:], p); err != nil {
		return nil, err
	}
	return p, nil
}

var (
	_ msgpack.CustomEncoder = (*QoSPID)(nil)
	_ msgpack.CustomDecoder = (*QoSPID)(nil)
)

// EncodeMsgpack serializes the pairing as a two-element array so the
// structural invariant survives external formats.
func (qp *QoSPID) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeUint8(uint8(qp.qos)); err != nil {
		return err
	}
	return enc.EncodeUint16(uint16(qp.pid))
}

// DecodeMsgpack reverses EncodeMsgpack, re-validating the invariant.
func (qp *QoSPID) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return ErrMalformedPacket
	}
	q, err := dec.DecodeUint8()
	if err != nil {
		return err
	}
	pid, err := dec.DecodeUint16()
	if err != nil {
		return err
	}

	qos := QoS(q)
	if !qos.Valid() {
		return ErrInvalidQoS
	}
	switch qos {
	case QoS0:
		*qp = AtMostOnce()
	default:
		validated, err := NewPID(pid)
		if err != nil {
			return err
		}
		if qos == QoS1 {
			*qp = AtLeastOnce(validated)
		} else {
			*qp = ExactlyOnce(validated)
		}
	}
	return nil
}
