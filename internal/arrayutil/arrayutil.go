// Package arrayutil provides numeric slice helpers used to build and search
// the angle and wavelength axes of tabular BSDF data.
//
// Axes are plain ordered slices. Lookups on them return bracketing sample
// pairs for interpolation, and fall back to the two nearest boundary samples
// when a value lies outside the axis so callers can extrapolate.
package arrayutil

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// Number is any integer or floating-point element type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Tolerance used by IsEqual, relative to the larger magnitude.
const Tolerance = 1e-5

// IsEqual reports whether a and b are equal within Tolerance.
func IsEqual[T constraints.Float](a, b T) bool {
	diff := math.Abs(float64(a - b))
	scale := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	if scale < 1 {
		scale = 1
	}
	return diff <= Tolerance*scale
}

// Copy converts and copies every element of src into dst.
// dst must hold at least len(src) elements.
func Copy[S, D Number](src []S, dst []D) {
	if len(dst) < len(src) {
		panic("arrayutil: destination shorter than source")
	}
	for i, v := range src {
		dst[i] = D(v)
	}
}

// AppendElement returns a new slice holding arr followed by value.
// The input slice is never aliased by the result.
func AppendElement[T Number](arr []T, value T) []T {
	out := make([]T, len(arr)+1)
	copy(out, arr)
	out[len(arr)] = value
	return out
}

// LinSpaced returns n evenly spaced values from lo to hi inclusive.
// A single element holds lo.
func LinSpaced(n int, lo, hi float64) []float64 {
	if n <= 0 {
		return nil
	}
	arr := make([]float64, n)
	if n == 1 {
		arr[0] = lo
		return arr
	}
	step := (hi - lo) / float64(n-1)
	for i := range arr {
		arr[i] = lo + step*float64(i)
	}
	arr[n-1] = hi
	return arr
}

// CreateExponential returns numElements values from 0 to maxValue whose
// interior points are warped by (v/maxValue)^exponent. Exponents above 1
// concentrate samples near 0.
func CreateExponential(numElements int, maxValue, exponent float64) []float64 {
	arr := LinSpaced(numElements, 0, maxValue)
	for i := 1; i < len(arr)-1; i++ {
		ratio := math.Pow(arr[i]/maxValue, exponent)
		arr[i] = ratio * maxValue
	}
	return arr
}

// IsEqualInterval reports whether arr is an arithmetic progression starting
// at 0. Slices with two or fewer elements are never considered equal-interval.
func IsEqualInterval[T constraints.Float](arr []T) bool {
	n := len(arr)
	if n <= 2 {
		return false
	}

	interval := float64(arr[n-1]) / float64(n-1)
	for i, v := range arr {
		if !IsEqual(float64(v), interval*float64(i)) {
			return false
		}
	}
	return true
}

// Bounds is the bracketing sample pair found by FindBounds.
type Bounds struct {
	LowerIndex, UpperIndex int
	LowerValue, UpperValue float64
}

// Weight returns the linear interpolation weight of value between the
// bounds. Values outside the bounds give weights outside [0, 1], which
// extrapolates. Coincident bounds give 0.
func (b Bounds) Weight(value float64) float64 {
	d := b.UpperValue - b.LowerValue
	if d == 0 {
		return 0
	}
	return (value - b.LowerValue) / d
}

// FindBounds locates the samples of the ascending slice values that bracket
// value. If value lies outside the slice, the two nearest boundary samples
// are returned. A single-element slice returns index 0 for both bounds.
// equalInterval enables an arithmetic lookup for slices built as step*i.
func FindBounds(values []float64, value float64, equalInterval bool) Bounds {
	n := len(values)
	if n == 0 {
		panic("arrayutil: empty axis")
	}
	if n == 1 {
		return Bounds{0, 0, values[0], values[0]}
	}

	var upper int
	if equalInterval {
		interval := values[n-1] / float64(n-1)
		switch pos := value / interval; {
		case !(pos > 0):
			upper = 1
		case pos >= float64(n-1):
			upper = n - 1
		default:
			upper = int(pos) + 1
		}
		// Rounding in pos can land one interval off.
		if upper > 1 && values[upper-1] > value {
			upper--
		} else if upper < n-1 && values[upper] < value {
			upper++
		}
	} else {
		upper = sort.SearchFloat64s(values, value)
	}
	upper = max(1, min(upper, n-1))

	return Bounds{
		LowerIndex: upper - 1,
		UpperIndex: upper,
		LowerValue: values[upper-1],
		UpperValue: values[upper],
	}
}
