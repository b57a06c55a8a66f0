package bits

import (
	"errors"
	"io"
)

var errTooManyBits = errors.New("bits: cannot transfer more than 32 bits at once")

// Reader reads MSB-first bit fields from an io.Reader.
type Reader struct {
	R    io.Reader
	n    int
	bits uint64
}

// ReadBits reads n bits and returns them right aligned.
func (r *Reader) ReadBits(n int) (uint, error) {
	if n > 32 { //nolint:mnd
		return 0, errTooManyBits
	}
	for r.n < n {
		var b [1]byte
		if _, err := io.ReadFull(r.R, b[:]); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				err = io.EOF
			}
			return 0, err
		}
		r.bits = r.bits<<8 | uint64(b[0])
		r.n += 8
	}
	r.n -= n
	return uint((r.bits >> r.n) & (1<<n - 1)), nil
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	v, err := r.ReadBits(1)
	return v == 1, err
}

// Writer writes MSB-first bit fields to an io.Writer. FlushBits must be called to emit a
// trailing partial byte.
type Writer struct {
	W    io.Writer
	n    int
	bits uint64
}

// WriteBits writes the n least significant bits of val.
func (w *Writer) WriteBits(val uint, n int) error {
	if n > 32 { //nolint:mnd
		return errTooManyBits
	}
	w.bits = w.bits<<n | uint64(val)&(1<<n-1)
	w.n += n
	for w.n >= 8 {
		w.n -= 8
		if _, err := w.W.Write([]byte{byte(w.bits >> w.n)}); err != nil {
			return err
		}
	}
	return nil
}

// FlushBits pads the pending bits with zeros up to a byte boundary and writes them.
func (w *Writer) FlushBits() error {
	if w.n == 0 {
		return nil
	}
	b := byte(w.bits << (8 - w.n))
	w.n = 0
	w.bits = 0
	_, err := w.W.Write([]byte{b})
	return err
}
