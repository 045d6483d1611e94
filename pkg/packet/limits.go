package packet

import "github.com/mqttwire/mqttwire/pkg/buffer"

// Limits caps list and string sizes during decode for memory-constrained
// deployments. A zero value means unbounded. Exceeding a cap is reported
// as ErrInvalidLength, never silent truncation.
type Limits struct {
	// MaxTopics caps the element count of topic and return-code lists
	// in SUBSCRIBE, SUBACK and UNSUBSCRIBE packets.
	MaxTopics int

	// MaxStringLen caps the byte length of every string and binary
	// field.
	MaxStringLen int
}

// DefaultLimits places no caps; decode allocates as needed.
var DefaultLimits = Limits{}

// EmbeddedLimits mirrors the fixed capacities of constrained deployments:
// at most 5 list elements and 256-byte strings.
var EmbeddedLimits = Limits{MaxTopics: 5, MaxStringLen: 256}

func newSeq[T any](lim Limits) buffer.Seq[T] {
	if lim.MaxTopics > 0 {
		return buffer.NewBounded[T](lim.MaxTopics)
	}
	return buffer.NewSeq[T]()
}
