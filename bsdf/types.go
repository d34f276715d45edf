// Package bsdf provides tabular BRDF and BTDF data and the algorithms that
// convert it between angular parameterizations.
//
// A SampleSet stores spectra on a four-dimensional angle grid. A Brdf pairs a
// SampleSet with a CoordinateSystem that gives the four angles their meaning
// and maps them to incoming and outgoing direction vectors. A Btdf adapts a
// Brdf to the transmission hemisphere.
//
// Measured or generated data is typically exported by converting it to
// specular-centered coordinates and arranging the grid:
//
//	spec, err := bsdf.Convert(brdf)
//	if err != nil {
//		return err
//	}
//	out, err := bsdf.Arrange(spec, bsdf.BRDFData)
//
// Direction vectors use a local frame where +Z is the surface normal.
package bsdf

import (
	"errors"
	"math"
)

// Errors returned by this package.
var (
	ErrUnsupportedColorModel       = errors.New("bsdf: unsupported color model")
	ErrUnsupportedCoordinateSystem = errors.New("bsdf: unsupported coordinate system")
	ErrInvalidData                 = errors.New("bsdf: invalid sample data")
)

// Vec3 is a direction or a three-channel value.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a Vec3.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Subtract returns v - o.
func (v Vec3) Subtract(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Multiply returns v scaled by s.
func (v Vec3) Multiply(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the Euclidean norm.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Sum returns the sum of the components.
func (v Vec3) Sum() float64 {
	return v.X + v.Y + v.Z
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ColorModel identifies how the wavelength axis of a SampleSet is interpreted.
type ColorModel int

// Color models.
const (
	Monochromatic ColorModel = iota
	RGB
	XYZ
	Spectral
)

func (c ColorModel) String() string {
	switch c {
	case Monochromatic:
		return "monochromatic"
	case RGB:
		return "RGB"
	case XYZ:
		return "XYZ"
	case Spectral:
		return "spectral"
	}
	return "invalid"
}

// DataType distinguishes reflection from transmission data.
type DataType int

// Data types.
const (
	BRDFData DataType = iota
	BTDFData
)

func (d DataType) String() string {
	switch d {
	case BRDFData:
		return "BRDF"
	case BTDFData:
		return "BTDF"
	}
	return "invalid"
}

// SourceType records where tabular data came from.
type SourceType int

// Source types.
const (
	SourceUnknown SourceType = iota
	SourceMeasured
	SourceGenerated
	SourceEdited
)

func (s SourceType) String() string {
	switch s {
	case SourceMeasured:
		return "Measured"
	case SourceGenerated:
		return "Generated"
	case SourceEdited:
		return "Edited"
	}
	return "Unknown"
}

// ReflectanceModel is an analytic model evaluated by SetupTabularBrdf.
// Evaluate returns three channels for a pair of unit directions.
type ReflectanceModel interface {
	Evaluate(inDir, outDir Vec3) Vec3
}

// Spectrum holds one value per wavelength.
type Spectrum []float32

// IsFinite reports whether no value is NaN or infinite.
func (s Spectrum) IsFinite() bool {
	for _, v := range s {
		if !isFinite(float64(v)) {
			return false
		}
	}
	return true
}

// HasNaN reports whether any value is NaN.
func (s Spectrum) HasNaN() bool {
	for _, v := range s {
		if v != v {
			return true
		}
	}
	return false
}
