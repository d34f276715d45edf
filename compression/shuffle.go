package compression

// floatSize is the width of one stored spectrum value.
const floatSize = 4

// Shuffle returns src with its bytes grouped into planes by position within
// each stride-byte element, then delta-coded:
//
//	[a0,a1,a2,a3, b0,b1,b2,b3] -> delta([a0,b0, a1,b1, a2,b2, a3,b3])
//
// Trailing bytes that do not fill an element are kept at the end.
func Shuffle(src []byte, stride int) []byte {
	dst := make([]byte, len(src))
	if stride <= 1 {
		copy(dst, src)
	} else {
		n := len(src) / stride
		for offset := 0; offset < stride; offset++ {
			plane := dst[offset*n : (offset+1)*n]
			for elem := range plane {
				plane[elem] = src[elem*stride+offset]
			}
		}
		copy(dst[n*stride:], src[n*stride:])
	}

	for i := len(dst) - 1; i > 0; i-- {
		dst[i] -= dst[i-1]
	}
	return dst
}

// Unshuffle reverses Shuffle in place and returns the restored data.
func Unshuffle(data []byte, stride int) []byte {
	for i := 1; i < len(data); i++ {
		data[i] += data[i-1]
	}
	if stride <= 1 {
		return data
	}

	dst := make([]byte, len(data))
	n := len(data) / stride
	for offset := 0; offset < stride; offset++ {
		plane := data[offset*n : (offset+1)*n]
		for elem, b := range plane {
			dst[elem*stride+offset] = b
		}
	}
	copy(dst[n*stride:], data[n*stride:])
	return dst
}
