package packet

import (
	"errors"

	"github.com/mqttwire/mqttwire/pkg/buffer"
)

// Packet is the interface implemented by all fourteen MQTT 3.1.1 control
// packets. The set is closed: Connect, Connack, Publish, Puback, Pubrec,
// Pubrel, Pubcomp, Subscribe, Suback, Unsubscribe, Unsuback, Pingreq,
// Pingresp and Disconnect.
type Packet interface {
	// Type returns the packet type.
	Type() Type

	// Encode encodes the whole packet, fixed header included, into buf.
	// Returns the number of bytes written, or 0 on error.
	Encode(buf []byte) int

	// EncodedSize returns the total size of the encoded packet.
	EncodedSize() int
}

// Encode appends the wire encoding of p to out. The write is
// all-or-nothing: if out cannot hold the whole packet the buffer is left
// exactly as it was and buffer.ErrNoSpace is returned.
func Encode(p Packet, out buffer.Buffer) error {
	size := p.EncodedSize()
	start := out.Len()

	dst, err := out.Extend(size)
	if err != nil {
		return err
	}
	if n := p.Encode(dst); n != size {
		// A field exceeded its wire-representable size, e.g. a string
		// longer than 65535 bytes.
		out.Truncate(start)
		return ErrInvalidLength
	}
	return nil
}

// Decode consumes exactly one packet from the front of in and returns it.
//
// A (nil, nil) return means in does not yet hold a complete packet; no
// bytes are consumed and the caller should retry after buffering more.
// A non-nil error means the input violates the wire format. Header-level
// errors (unknown type nibble, over-long remaining length) leave the
// buffer untouched, since the stream framing itself is broken. Content
// errors inside an already-framed packet consume that packet's span, so
// any following packets stay decodable.
func Decode(in buffer.Buffer) (Packet, error) {
	return DecodeLimits(in, DefaultLimits)
}

// DecodeLimits is Decode with decode-time capacity caps applied.
func DecodeLimits(in buffer.Buffer, lim Limits) (Packet, error) {
	data := in.Bytes()

	packetType, flags, remainingLength, headerLen, err := DecodeFixedHeader(data)
	if err != nil {
		if errors.Is(err, ErrIncompletePacket) {
			return nil, nil
		}
		return nil, err
	}

	total := headerLen + int(remainingLength)
	if len(data) < total {
		return nil, nil
	}

	payload := data[headerLen:total]
	pkt, err := decodeBody(packetType, flags, payload, lim)
	in.Discard(total)
	if err != nil {
		return nil, err
	}
	return pkt, nil
}

// decodeBody validates the reserved fixed-header flags for the packet
// type and dispatches to the matching payload codec. data holds exactly
// remaining-length bytes.
func decodeBody(packetType Type, flags byte, data []byte, lim Limits) (Packet, error) {
	switch packetType {
	case TypeConnect, TypeConnack, TypePuback, TypePubrec, TypePubcomp,
		TypeSuback, TypeUnsuback, TypePingreq, TypePingresp, TypeDisconnect:
		if flags != 0 {
			return nil, ErrInvalidFlags
		}
	case TypePubrel, TypeSubscribe, TypeUnsubscribe:
		if flags != 0x02 {
			return nil, ErrInvalidFlags
		}
	case TypePublish:
		// PUBLISH flags carry dup/QoS/retain, validated in DecodePublish
	}

	switch packetType {
	case TypeConnect:
		return DecodeConnect(data, lim)

	case TypeConnack:
		return DecodeConnack(data)

	case TypePublish:
		return DecodePublish(flags, data, lim)

	case TypePuback:
		return DecodePuback(data)

	case TypePubrec:
		return DecodePubrec(data)

	case TypePubrel:
		return DecodePubrel(data)

	case TypePubcomp:
		return DecodePubcomp(data)

	case TypeSubscribe:
		return DecodeSubscribe(data, lim)

	case TypeSuback:
		return DecodeSuback(data, lim)

	case TypeUnsubscribe:
		return DecodeUnsubscribe(data, lim)

	case TypeUnsuback:
		return DecodeUnsuback(data)

	case TypePingreq:
		if len(data) != 0 {
			return nil, ErrMalformedPacket
		}
		return &Pingreq{}, nil

	case TypePingresp:
		if len(data) != 0 {
			return nil, ErrMalformedPacket
		}
		return &Pingresp{}, nil

	case TypeDisconnect:
		if len(data) != 0 {
			return nil, ErrMalformedPacket
		}
		return &Disconnect{}, nil

	default:
		return nil, ErrUnknownPacketType
	}
}
