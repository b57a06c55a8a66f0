package codec

import "github.com/ugparu/btaudio/utils/bits"

// Entry binds one bit of a one-hot field to the value it encodes.
type Entry[T comparable] struct {
	Bit   int
	Value T
}

// Table maps the bits of a one-hot field to values. Several bits may encode the same value, in
// which case the first entry is the canonical bit for that value.
type Table[T comparable] []Entry[T]

// Value returns the value encoded by bit.
func (t Table[T]) Value(bit int) (v T, ok bool) {
	for _, e := range t {
		if e.Bit == bit {
			return e.Value, true
		}
	}
	return
}

// Bit returns the canonical bit for v, or -1.
func (t Table[T]) Bit(v T) int {
	for _, e := range t {
		if e.Value == v {
			return e.Bit
		}
	}
	return -1
}

// Supported lists, in table order and without duplicates, the values whose bit is set in caps.
func (t Table[T]) Supported(caps bits.View) []T {
	var values []T
	for _, e := range t {
		if !caps.Bit(e.Bit) {
			continue
		}
		dup := false
		for _, v := range values {
			if v == e.Value {
				dup = true
				break
			}
		}
		if !dup {
			values = append(values, e.Value)
		}
	}
	return values
}

// Ladder is the fallback order of candidate bits for one field, most preferred first.
type Ladder []int

// Select returns the hinted bit when both sides support it, else the first ladder bit supported
// by both sides. It returns -1 when there is no common bit. A negative hint means no hint.
func (l Ladder) Select(local, remote bits.View, hint int) int {
	if hint >= 0 && local.Bit(hint) && remote.Bit(hint) {
		return hint
	}
	for _, b := range l {
		if local.Bit(b) && remote.Bit(b) {
			return b
		}
	}
	return -1
}
