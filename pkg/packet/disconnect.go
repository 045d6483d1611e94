package packet

// Disconnect represents an MQTT DISCONNECT packet.
// MQTT 3.1.1 Section 3.14
type Disconnect struct{}

// Type returns TypeDisconnect.
func (d *Disconnect) Type() Type {
	return TypeDisconnect
}

// EncodedSize returns the total size of the encoded DISCONNECT packet.
func (d *Disconnect) EncodedSize() int {
	return 2 // Fixed header only, remaining length = 0
}

// Encode encodes the DISCONNECT packet into buf.
func (d *Disconnect) Encode(buf []byte) int {
	if len(buf) < 2 {
		return 0
	}
	buf[0] = byte(TypeDisconnect) << 4
	buf[1] = 0 // Remaining length
	return 2
}
