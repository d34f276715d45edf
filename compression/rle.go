package compression

const (
	rleMinRunLength = 3
	rleMaxRunLength = 127
)

// RLECompress run-length encodes src.
//
// Each packet starts with a signed count byte:
//   - Negative count (-n): The next byte is repeated (n+1) times (run)
//   - Positive count (+n): The next (n+1) bytes are copied literally
//
// For example:
//
//	[A, A, A, A, B, C, D] -> [-3, A, 2, B, C, D]
func RLECompress(src []byte) []byte {
	dst := make([]byte, 0, len(src)/2+2)

	for i := 0; i < len(src); {
		run := 1
		for i+run < len(src) && src[i+run] == src[i] && run < rleMaxRunLength {
			run++
		}
		if run >= rleMinRunLength {
			dst = append(dst, byte(-(run - 1)), src[i])
			i += run
			continue
		}

		start := i
		for i < len(src) && i-start < rleMaxRunLength {
			if i+rleMinRunLength <= len(src) && src[i+1] == src[i] && src[i+2] == src[i] {
				break
			}
			i++
		}
		dst = append(dst, byte(i-start-1))
		dst = append(dst, src[start:i]...)
	}
	return dst
}

// RLEDecompress decodes src, which must expand to exactly size bytes.
func RLEDecompress(src []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	pos := 0

	for i := 0; i < len(src); {
		count := int(int8(src[i]))
		i++

		if count < 0 {
			n := -count + 1
			if i >= len(src) {
				return nil, ErrCorrupted
			}
			if pos+n > size {
				return nil, ErrOverflow
			}
			for end := pos + n; pos < end; pos++ {
				dst[pos] = src[i]
			}
			i++
			continue
		}

		n := count + 1
		if i+n > len(src) {
			return nil, ErrCorrupted
		}
		if pos+n > size {
			return nil, ErrOverflow
		}
		pos += copy(dst[pos:], src[i:i+n])
		i += n
	}

	if pos != size {
		return nil, ErrCorrupted
	}
	return dst, nil
}
