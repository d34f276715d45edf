package xdr

import (
	"bytes"
	"testing"
)

// FuzzReaderReadString tests string reading with arbitrary data.
func FuzzReaderReadString(f *testing.F) {
	f.Add([]byte("\x05\x00\x00\x00hello"))
	f.Add([]byte("\x00\x00\x00\x00"))
	f.Add([]byte{})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff})
	f.Add(append([]byte{0x10, 0x27, 0, 0}, bytes.Repeat([]byte{'A'}, 100)...))

	f.Fuzz(func(t *testing.T, data []byte) {
		r := NewReader(data)
		s, err := r.ReadString()
		if err != nil {
			return
		}
		if r.Pos() != 4+len(s) {
			t.Errorf("Pos() = %d after %d byte string", r.Pos(), len(s))
		}
	})
}

// FuzzReaderArrays tests that length prefixes never cause large allocations
// or out-of-range reads.
func FuzzReaderArrays(f *testing.F) {
	f.Add([]byte{0x02, 0, 0, 0, 0, 0, 0x80, 0x3f, 0, 0, 0, 0x40})
	f.Add([]byte{0xff, 0xff, 0xff, 0x7f})
	f.Add([]byte{0x01, 0, 0, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		if v, err := NewReader(data).ReadFloat32s(1 << 20); err == nil && 4+4*len(v) > len(data) {
			t.Errorf("read %d floats from %d bytes", len(v), len(data))
		}
		if v, err := NewReader(data).ReadFloat64s(1 << 20); err == nil && 4+8*len(v) > len(data) {
			t.Errorf("read %d doubles from %d bytes", len(v), len(data))
		}
	})
}
