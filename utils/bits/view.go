package bits

// Range addresses Len consecutive bits starting at First. Bit 0 is the most significant bit of
// byte 0.
type Range struct {
	First int
	Len   int
}

// NewRange returns the range covering bits first through last inclusive.
func NewRange(first, last int) Range {
	return Range{First: first, Len: last - first + 1}
}

// Bit returns the single-bit range at index.
func Bit(index int) Range {
	return Range{First: index, Len: 1}
}

// BitAt returns the absolute index of the i-th bit of the range, counted from its first bit.
func (r Range) BitAt(i int) int {
	return r.First + i
}

// Last returns the absolute index of the last bit of the range.
func (r Range) Last() int {
	return r.First + r.Len - 1
}

// View reads and writes bit fields of a byte slice, MSB first within each byte.
// A View does not copy the slice; writes go to the underlying buffer.
type View []byte

// Bit reports whether bit b is set.
func (v View) Bit(b int) bool {
	return (v[b>>3]>>(7-(b&7)))&1 == 1
}

// Get reads the range as an unsigned integer, first bit most significant.
func (v View) Get(r Range) uint {
	var val uint
	for i := 0; i < r.Len; i++ {
		if v.Bit(r.First + i) {
			val |= 1 << (r.Len - 1 - i)
		}
	}
	return val
}

// SetBit sets or clears bit b.
func (v View) SetBit(b int, value bool) {
	m := byte(1) << (7 - (b & 7))
	if value {
		v[b>>3] |= m
	} else {
		v[b>>3] &^= m
	}
}

// Set writes value into the range, first bit most significant. Bits of value above the range
// length are ignored.
func (v View) Set(r Range, value uint) {
	for i := 0; i < r.Len; i++ {
		v.SetBit(r.First+i, (value>>(r.Len-1-i))&1 == 1)
	}
}

// FindActiveBit interprets the range as a one-hot field and returns the absolute index of its
// only set bit. It returns -1 when no bit or more than one bit is set.
func (v View) FindActiveBit(r Range) int {
	val := v.Get(r)
	i := 0
	for ; i < r.Len && (val>>i)&1 == 0; i++ {
	}
	if i < r.Len && val^(1<<i) == 0 {
		return r.First + (r.Len - 1) - i
	}
	return -1
}
