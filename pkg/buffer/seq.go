package buffer

// Seq is an append-only sequence of elements. The unbounded implementation
// grows as needed; the bounded one holds a fixed maximum element count and
// fails explicitly on overflow.
type Seq[T any] interface {
	// Append adds v to the sequence. Returns ErrNoSpace if the sequence
	// is bounded and full.
	Append(v T) error

	// Len returns the number of elements.
	Len() int

	// Values returns the accumulated elements. Nil if nothing was
	// appended.
	Values() []T
}

// NewSeq creates an unbounded sequence.
func NewSeq[T any]() Seq[T] {
	return &unboundedSeq[T]{}
}

// NewBounded creates a sequence capped at max elements. All storage is
// allocated up front; Append never reallocates.
func NewBounded[T any](max int) Seq[T] {
	return &boundedSeq[T]{items: make([]T, 0, max)}
}

type unboundedSeq[T any] struct {
	items []T
}

func (s *unboundedSeq[T]) Append(v T) error {
	s.items = append(s.items, v)
	return nil
}

func (s *unboundedSeq[T]) Len() int { return len(s.items) }

func (s *unboundedSeq[T]) Values() []T { return s.items }

type boundedSeq[T any] struct {
	items []T
}

func (s *boundedSeq[T]) Append(v T) error {
	if len(s.items) == cap(s.items) {
		return ErrNoSpace
	}
	s.items = append(s.items, v)
	return nil
}

func (s *boundedSeq[T]) Len() int { return len(s.items) }

func (s *boundedSeq[T]) Values() []T {
	if len(s.items) == 0 {
		return nil
	}
	return s.items
}
