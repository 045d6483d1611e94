package packet

import (
	"io"
	"sync"
)

// scratchPool provides reusable buffers for WritePacket encoding.
var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 4096)
		return &buf
	},
}

// WritePacket encodes p and writes it to w in a single Write call,
// using a pooled scratch buffer.
func WritePacket(w io.Writer, p Packet) error {
	size := p.EncodedSize()

	bp := scratchPool.Get().(*[]byte)
	defer scratchPool.Put(bp)
	buf := *bp
	if cap(buf) < size {
		buf = make([]byte, size)
		*bp = buf
	}
	buf = buf[:size]

	if n := p.Encode(buf); n != size {
		return ErrInvalidLength
	}
	_, err := w.Write(buf)
	return err
}
