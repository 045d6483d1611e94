package packet

import (
	"testing"

	"github.com/mqttwire/mqttwire/pkg/buffer"
)

func FuzzDecode(f *testing.F) {
	for _, pkt := range []Packet{
		NewConnect("c", true, 30),
		&Connack{Code: ConnackAccepted},
		NewPublish("a/b", []byte("x"), AtMostOnce(), false),
		&Pingreq{},
		&Disconnect{},
	} {
		wire := buffer.NewGrowable(64)
		if err := Encode(pkt, wire); err != nil {
			f.Fatal(err)
		}
		f.Add(wire.Bytes())
	}
	f.Add([]byte{0x82, 50, 0x00, 0x01})
	f.Add([]byte{0x10, 0x80, 0x80, 0x80, 0x80, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		buf := buffer.NewGrowable(len(data))
		if err := buf.Append(data); err != nil {
			t.Fatal(err)
		}
		before := buf.Len()

		pkt, err := Decode(buf)
		switch {
		case err != nil:
			// Malformed input may consume bytes but never panics.
		case pkt == nil:
			// Incomplete input must be left untouched.
			if buf.Len() != before {
				t.Fatalf("incomplete decode consumed %d bytes", before-buf.Len())
			}
		default:
			// A decoded packet must re-encode without error.
			out := buffer.NewGrowable(pkt.EncodedSize())
			if err := Encode(pkt, out); err != nil {
				t.Fatalf("re-encode of decoded %s: %v", pkt.Type(), err)
			}
		}
	})
}

func FuzzDecodeVarInt(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0x7F})
	f.Add([]byte{0x80, 0x01})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0x7F})
	f.Add([]byte{0x80, 0x80, 0x80, 0x80})

	f.Fuzz(func(t *testing.T, data []byte) {
		value, n, err := DecodeVarInt(data)
		if err != nil {
			return
		}
		if n < 1 || n > 4 {
			t.Fatalf("decoded length %d out of range", n)
		}
		if value > MaxRemainingLength {
			t.Fatalf("decoded value %d over maximum", value)
		}

		// The decoder accepts non-minimal encodings, so only the value
		// is required to round-trip.
		out := make([]byte, 4)
		m := EncodeVarInt(out, value)
		back, _, err := DecodeVarInt(out[:m])
		if err != nil || back != value {
			t.Fatalf("re-encode of %d: got %d, err %v", value, back, err)
		}
	})
}
