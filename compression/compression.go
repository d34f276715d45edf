// Package compression provides the codecs used for the spectra block of
// binary BSDF grid files.
//
// Spectra are stored as little-endian float32 values. Smooth reflectance
// data compresses well once the four bytes of each value are split into
// planes and delta-coded, which is what MethodZlibShuffle does before
// handing the block to zlib. MethodRLE suits sparse grids whose cells are
// mostly zero.
package compression

import (
	"errors"
	"fmt"
)

// Errors returned by Decompress.
var (
	ErrCorrupted     = errors.New("compression: corrupted data")
	ErrOverflow      = errors.New("compression: decompressed size overflow")
	ErrUnknownMethod = errors.New("compression: unknown method")
)

// Method identifies a codec. The numeric values are stored in files.
type Method uint8

// Methods.
const (
	MethodNone Method = iota
	MethodRLE
	MethodZlib
	MethodZlibShuffle
)

func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodRLE:
		return "rle"
	case MethodZlib:
		return "zlib"
	case MethodZlibShuffle:
		return "zlib+shuffle"
	}
	return fmt.Sprintf("Method(%d)", m)
}

// ParseMethod returns the Method whose String is name.
func ParseMethod(name string) (Method, error) {
	for m := MethodNone; m <= MethodZlibShuffle; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Compress encodes src with m. level is used by the zlib methods only.
// src is not modified.
func Compress(src []byte, m Method, level Level) ([]byte, error) {
	switch m {
	case MethodNone:
		return append([]byte(nil), src...), nil
	case MethodRLE:
		return RLECompress(src), nil
	case MethodZlib:
		return ZlibCompress(src, level)
	case MethodZlibShuffle:
		return ZlibCompress(Shuffle(src, floatSize), level)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
}

// Decompress decodes src, which must expand to exactly size bytes.
func Decompress(src []byte, m Method, size int) ([]byte, error) {
	switch m {
	case MethodNone:
		if len(src) != size {
			return nil, ErrCorrupted
		}
		return append([]byte(nil), src...), nil
	case MethodRLE:
		return RLEDecompress(src, size)
	case MethodZlib:
		return ZlibDecompress(src, size)
	case MethodZlibShuffle:
		dst, err := ZlibDecompress(src, size)
		if err != nil {
			return nil, err
		}
		return Unshuffle(dst, floatSize), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
}
