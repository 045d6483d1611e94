// Package packet implements the MQTT 3.1.1 control packet wire codec.
//
// The codec performs no I/O: Encode and Decode are synchronous functions
// over a caller-supplied buffer, so the same code runs under a threaded
// runtime, an event loop, or a bare-metal poll loop. Decode is streaming
// safe: fed fewer bytes than a full packet it returns (nil, nil) without
// consuming anything, and the caller retries once more bytes arrive.
//
// Protocol-level validation that is not part of the wire format (non-empty
// subscription lists, wildcard characters in PUBLISH topic names) is the
// caller's responsibility; the codec encodes and decodes whatever
// structurally valid value it is given.
package packet

// Type represents an MQTT control packet type.
type Type byte

// MQTT Control Packet types as defined in MQTT 3.1.1 Section 2.2.1.
const (
	TypeConnect     Type = 1  // Client request to connect to Server
	TypeConnack     Type = 2  // Connect acknowledgment
	TypePublish     Type = 3  // Publish message
	TypePuback      Type = 4  // Publish acknowledgment (QoS 1)
	TypePubrec      Type = 5  // Publish received (QoS 2 part 1)
	TypePubrel      Type = 6  // Publish release (QoS 2 part 2)
	TypePubcomp     Type = 7  // Publish complete (QoS 2 part 3)
	TypeSubscribe   Type = 8  // Subscribe request
	TypeSuback      Type = 9  // Subscribe acknowledgment
	TypeUnsubscribe Type = 10 // Unsubscribe request
	TypeUnsuback    Type = 11 // Unsubscribe acknowledgment
	TypePingreq     Type = 12 // PING request
	TypePingresp    Type = 13 // PING response
	TypeDisconnect  Type = 14 // Disconnect notification
)

// String returns the string representation of the packet type.
func (t Type) String() string {
	switch t {
	case TypeConnect:
		return "CONNECT"
	case TypeConnack:
		return "CONNACK"
	case TypePublish:
		return "PUBLISH"
	case TypePuback:
		return "PUBACK"
	case TypePubrec:
		return "PUBREC"
	case TypePubrel:
		return "PUBREL"
	case TypePubcomp:
		return "PUBCOMP"
	case TypeSubscribe:
		return "SUBSCRIBE"
	case TypeSuback:
		return "SUBACK"
	case TypeUnsubscribe:
		return "UNSUBSCRIBE"
	case TypeUnsuback:
		return "UNSUBACK"
	case TypePingreq:
		return "PINGREQ"
	case TypePingresp:
		return "PINGRESP"
	case TypeDisconnect:
		return "DISCONNECT"
	default:
		return "RESERVED"
	}
}

// Valid returns true if the packet type is one of the fourteen control
// packet types. Nibble values 0 and 15 are reserved in MQTT 3.1.1.
func (t Type) Valid() bool {
	return t >= TypeConnect && t <= TypeDisconnect
}

// Version represents an MQTT protocol level.
type Version byte

const (
	Version31  Version = 3 // MQTT 3.1 (protocol name "MQIsdp")
	Version311 Version = 4 // MQTT 3.1.1 (protocol name "MQTT")
)

// String returns the string representation of the MQTT version.
func (v Version) String() string {
	switch v {
	case Version31:
		return "3.1"
	case Version311:
		return "3.1.1"
	default:
		return "unknown"
	}
}

// QoS represents MQTT Quality of Service level.
type QoS byte

const (
	QoS0 QoS = 0 // At most once delivery
	QoS1 QoS = 1 // At least once delivery
	QoS2 QoS = 2 // Exactly once delivery
)

// Valid returns true if the QoS level is valid.
func (q QoS) Valid() bool {
	return q <= QoS2
}

// String returns the string representation of the QoS level.
func (q QoS) String() string {
	switch q {
	case QoS0:
		return "QoS0"
	case QoS1:
		return "QoS1"
	case QoS2:
		return "QoS2"
	default:
		return "invalid"
	}
}

// PID is a 16-bit packet identifier correlating requests and
// acknowledgements for QoS > 0 flows. Zero is reserved by the protocol
// and never valid; construct through NewPID.
type PID uint16

// NewPID validates v as a packet identifier. Returns ErrInvalidPacketID
// for zero.
func NewPID(v uint16) (PID, error) {
	if v == 0 {
		return 0, ErrInvalidPacketID
	}
	return PID(v), nil
}

// QoSPID pairs a delivery QoS with the packet identifier that accompanies
// it on the wire. The identifier exists exactly when QoS is 1 or 2; the
// pairing is structural, so codecs never carry a QoS plus a separately
// trusted identifier.
type QoSPID struct {
	qos QoS
	pid PID
}

// AtMostOnce returns the QoS 0 pairing, which carries no identifier.
func AtMostOnce() QoSPID {
	return QoSPID{}
}

// AtLeastOnce returns the QoS 1 pairing carrying pid.
func AtLeastOnce(pid PID) QoSPID {
	return QoSPID{qos: QoS1, pid: pid}
}

// ExactlyOnce returns the QoS 2 pairing carrying pid.
func ExactlyOnce(pid PID) QoSPID {
	return QoSPID{qos: QoS2, pid: pid}
}

// QoS returns the delivery QoS.
func (qp QoSPID) QoS() QoS {
	return qp.qos
}

// PID returns the packet identifier and whether one is present
// (QoS 1 and 2 only).
func (qp QoSPID) PID() (PID, bool) {
	if qp.qos == QoS0 {
		return 0, false
	}
	return qp.pid, true
}

// Fixed header flag bits for specific packet types.
const (
	// PUBLISH flags (bits 3-0 of first byte)
	PublishFlagRetain = 1 << 0 // Bit 0: RETAIN flag
	PublishFlagQoS1   = 1 << 1 // Bit 1: QoS LSB
	PublishFlagQoS2   = 1 << 2 // Bit 2: QoS MSB
	PublishFlagDup    = 1 << 3 // Bit 3: DUP flag

	// Reserved flags that MUST be set for certain packet types
	PubrelFlags      = 0x02 // PUBREL MUST have flags 0010
	SubscribeFlags   = 0x02 // SUBSCRIBE MUST have flags 0010
	UnsubscribeFlags = 0x02 // UNSUBSCRIBE MUST have flags 0010
)

// MaxRemainingLength is the maximum remaining length value (256MB - 1).
const MaxRemainingLength = 268435455
