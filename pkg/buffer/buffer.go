// Package buffer provides the byte buffers and element sequences the codec
// operates on. Two implementations exist behind each interface: a growable
// one for hosted deployments and a fixed-capacity one for constrained
// deployments, where running out of space is an explicit error instead of a
// reallocation.
package buffer

import "errors"

// ErrNoSpace is returned when a fixed-capacity buffer or sequence cannot
// hold another write.
var ErrNoSpace = errors.New("buffer: no space left")

// Buffer is a byte buffer with an appendable tail and a consumable front.
// The codec's encode path appends via Extend; the decode path inspects
// Bytes and removes consumed packets via Discard.
type Buffer interface {
	// Len returns the number of unconsumed bytes.
	Len() int

	// Bytes returns the unconsumed bytes. The slice is only valid until
	// the next mutating call.
	Bytes() []byte

	// Extend appends n bytes to the buffer and returns the writable
	// region. Returns ErrNoSpace if the buffer cannot grow.
	Extend(n int) ([]byte, error)

	// Discard removes n bytes from the front of the buffer.
	// n must not exceed Len.
	Discard(n int)

	// Truncate drops bytes from the end until Len == n.
	// n must not exceed Len.
	Truncate(n int)
}

// Growable is a Buffer backed by an ordinary slice. It reallocates as
// needed and Extend never fails.
type Growable struct {
	b []byte
}

// NewGrowable creates a growable buffer with the given initial capacity.
func NewGrowable(capacity int) *Growable {
	return &Growable{b: make([]byte, 0, capacity)}
}

// Len returns the number of unconsumed bytes.
func (g *Growable) Len() int { return len(g.b) }

// Bytes returns the unconsumed bytes.
func (g *Growable) Bytes() []byte { return g.b }

// Extend appends n bytes and returns the writable region.
func (g *Growable) Extend(n int) ([]byte, error) {
	end := len(g.b)
	if end+n <= cap(g.b) {
		g.b = g.b[:end+n]
	} else {
		grown := make([]byte, end+n, (end+n)*2)
		copy(grown, g.b)
		g.b = grown
	}
	return g.b[end:], nil
}

// Append copies p onto the end of the buffer.
func (g *Growable) Append(p []byte) error {
	dst, _ := g.Extend(len(p))
	copy(dst, p)
	return nil
}

// Discard removes n bytes from the front.
func (g *Growable) Discard(n int) {
	g.b = g.b[n:]
}

// Truncate drops bytes from the end until Len == n.
func (g *Growable) Truncate(n int) {
	g.b = g.b[:n]
}

// Fixed is a Buffer with a capacity chosen at construction. It never
// allocates after construction; writes past capacity fail with ErrNoSpace.
type Fixed struct {
	b []byte
	n int
}

// NewFixed creates a fixed-capacity buffer.
func NewFixed(capacity int) *Fixed {
	return &Fixed{b: make([]byte, capacity)}
}

// Len returns the number of unconsumed bytes.
func (f *Fixed) Len() int { return f.n }

// Bytes returns the unconsumed bytes.
func (f *Fixed) Bytes() []byte { return f.b[:f.n] }

// Extend appends n bytes and returns the writable region, or ErrNoSpace
// if the remaining capacity is insufficient.
func (f *Fixed) Extend(n int) ([]byte, error) {
	if f.n+n > len(f.b) {
		return nil, ErrNoSpace
	}
	region := f.b[f.n : f.n+n]
	f.n += n
	return region, nil
}

// Append copies p onto the end of the buffer, or fails with ErrNoSpace.
func (f *Fixed) Append(p []byte) error {
	dst, err := f.Extend(len(p))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

// Discard removes n bytes from the front, shifting the remainder down so
// the storage is reused without allocation.
func (f *Fixed) Discard(n int) {
	copy(f.b, f.b[n:f.n])
	f.n -= n
}

// Truncate drops bytes from the end until Len == n.
func (f *Fixed) Truncate(n int) {
	f.n = n
}
