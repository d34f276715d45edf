// Package xdr provides the little-endian primitives used by the binary grid
// format in bsdfio.
//
// Reader decodes from an in-memory buffer with bounds checks on every read.
// Writer appends to a growing buffer. Strings are length-prefixed and float
// arrays are written as a count followed by the elements.
package xdr

import (
	"encoding/binary"
	"errors"
	"math"
)

var (
	// ErrShortBuffer is returned when a read runs past the end of the data.
	ErrShortBuffer = errors.New("xdr: buffer too short")

	// ErrTooLarge is returned when a length prefix exceeds the remaining data
	// or the caller's limit.
	ErrTooLarge = errors.New("xdr: length prefix too large")
)

// ByteOrder is the byte order of every multi-byte value.
var ByteOrder = binary.LittleEndian

// Reader decodes little-endian values from a byte slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || n > r.Len() {
		return nil, ErrShortBuffer
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadBytes returns the next n bytes. The result aliases the input.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.next(n)
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint32(b), nil
}

// ReadFloat32 reads an IEEE 754 single.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads an IEEE 754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(ByteOrder.Uint64(b)), nil
}

// ReadCount reads a uint32 length prefix and checks that count elements of
// elemSize bytes fit in the remaining data and that count <= limit.
func (r *Reader) ReadCount(elemSize, limit int) (int, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	n := int(v)
	if n < 0 || n > limit || n*elemSize > r.Len() {
		return 0, ErrTooLarge
	}
	return n, nil
}

// ReadString reads a length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadCount(1, math.MaxInt32)
	if err != nil {
		return "", err
	}
	b, err := r.next(n)
	return string(b), err
}

// ReadFloat32s reads a length-prefixed float32 array of at most limit
// elements.
func (r *Reader) ReadFloat32s(limit int) ([]float32, error) {
	n, err := r.ReadCount(4, limit)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	return out, r.ReadFloat32sInto(out)
}

// ReadFloat32sInto fills dst without a length prefix.
func (r *Reader) ReadFloat32sInto(dst []float32) error {
	b, err := r.next(4 * len(dst))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = math.Float32frombits(ByteOrder.Uint32(b[4*i:]))
	}
	return nil
}

// ReadFloat64s reads a length-prefixed float64 array of at most limit
// elements.
func (r *Reader) ReadFloat64s(limit int) ([]float64, error) {
	n, err := r.ReadCount(8, limit)
	if err != nil {
		return nil, err
	}
	b, err := r.next(8 * n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(ByteOrder.Uint64(b[8*i:]))
	}
	return out, nil
}

// Writer appends little-endian values to a growing buffer.
type Writer struct {
	buf []byte
}

// NewWriter creates a Writer with an initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the written data. It is valid until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteUint8 appends one byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint32 appends an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = ByteOrder.AppendUint32(w.buf, v)
}

// WriteFloat32 appends an IEEE 754 single.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 appends an IEEE 754 double.
func (w *Writer) WriteFloat64(v float64) {
	w.buf = ByteOrder.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteString appends a length-prefixed string.
func (w *Writer) WriteString(s string) {
	w.WriteUint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteFloat32s appends a length-prefixed float32 array.
func (w *Writer) WriteFloat32s(v []float32) {
	w.WriteUint32(uint32(len(v)))
	w.WriteFloat32sRaw(v)
}

// WriteFloat32sRaw appends a float32 array without a length prefix.
func (w *Writer) WriteFloat32sRaw(v []float32) {
	for _, f := range v {
		w.WriteFloat32(f)
	}
}

// WriteFloat64s appends a length-prefixed float64 array.
func (w *Writer) WriteFloat64s(v []float64) {
	w.WriteUint32(uint32(len(v)))
	for _, f := range v {
		w.WriteFloat64(f)
	}
}
