package packet

import (
	"io"

	"github.com/mqttwire/mqttwire/pkg/buffer"
)

// Reader reads MQTT packets from an io.Reader by buffering bytes and
// driving the streaming Decode loop. It performs no connection
// management; it only moves bytes from r into the codec.
type Reader struct {
	r     io.Reader
	buf   *buffer.Growable
	chunk []byte
	lim   Limits
}

// NewReader creates a packet reader with the given read chunk size.
func NewReader(r io.Reader, bufSize int) *Reader {
	if bufSize < 1024 {
		bufSize = 1024
	}
	return &Reader{
		r:     r,
		buf:   buffer.NewGrowable(bufSize),
		chunk: make([]byte, bufSize),
		lim:   DefaultLimits,
	}
}

// SetLimits applies decode-time capacity caps to subsequent packets.
func (r *Reader) SetLimits(lim Limits) {
	r.lim = lim
}

// ReadPacket returns the next packet from the stream, reading more bytes
// whenever the buffered data does not yet hold a complete packet.
func (r *Reader) ReadPacket() (Packet, error) {
	for {
		pkt, err := DecodeLimits(r.buf, r.lim)
		if err != nil {
			return nil, err
		}
		if pkt != nil {
			return pkt, nil
		}

		n, err := r.r.Read(r.chunk)
		if n > 0 {
			r.buf.Append(r.chunk[:n])
			continue
		}
		if err != nil {
			return nil, err
		}
	}
}

// Buffered returns the number of bytes read but not yet decoded.
func (r *Reader) Buffered() int {
	return r.buf.Len()
}
