package bsdf

import (
	"math"

	"github.com/mrjoshuak/go-bsdf/internal/arrayutil"
)

// Brdf is tabular reflectance data in one coordinate system.
//
// A Brdf exclusively owns its SampleSet. It is not safe for concurrent
// mutation; concurrent lookups through Spectrum are safe.
type Brdf struct {
	samples    *SampleSet
	coords     CoordinateSystem
	sourceType SourceType
	name       string

	// Per-incoming-polar lobe tilt, Specular coordinates only. nil means
	// all zero.
	specularOffsets []float64
}

// NewBrdf creates a zero-filled Brdf. Each axis is spaced evenly from 0 to
// the coordinate system's maximum angle; an axis of size 1 holds 0.
func NewBrdf(coords CoordinateSystem, n0, n1, n2, n3 int, colorModel ColorModel, numWavelengths int) *Brdf {
	var angles [NumAxes][]float64
	for axis, n := range [NumAxes]int{n0, n1, n2, n3} {
		angles[axis] = arrayutil.LinSpaced(n, 0, coords.MaxAngle(axis))
	}
	return NewBrdfWithAngles(coords, angles, colorModel, numWavelengths)
}

// NewBrdfWithAngles creates a zero-filled Brdf with the given axes.
func NewBrdfWithAngles(coords CoordinateSystem, angles [NumAxes][]float64, colorModel ColorModel, numWavelengths int) *Brdf {
	ss := NewSampleSet(len(angles[0]), len(angles[1]), len(angles[2]), len(angles[3]), colorModel, numWavelengths)
	for axis := range angles {
		copy(ss.angles[axis], angles[axis])
	}
	ss.UpdateAngleAttributes()
	return NewBrdfFromSampleSet(coords, ss)
}

// NewBrdfFromSampleSet wraps an existing SampleSet. The Brdf takes
// ownership of ss.
func NewBrdfFromSampleSet(coords CoordinateSystem, ss *SampleSet) *Brdf {
	if !coords.Valid() {
		panic("bsdf: invalid coordinate system")
	}
	return &Brdf{samples: ss, coords: coords}
}

// Samples returns the underlying grid.
func (b *Brdf) Samples() *SampleSet { return b.samples }

// CoordinateSystem returns the angular parameterization.
func (b *Brdf) CoordinateSystem() CoordinateSystem { return b.coords }

// SourceType returns the provenance tag.
func (b *Brdf) SourceType() SourceType { return b.sourceType }

// SetSourceType sets the provenance tag.
func (b *Brdf) SetSourceType(t SourceType) { b.sourceType = t }

// Name returns the optional name.
func (b *Brdf) Name() string { return b.name }

// SetName sets the optional name.
func (b *Brdf) SetName(name string) { b.name = name }

// Clone returns a deep copy.
func (b *Brdf) Clone() *Brdf {
	c := *b
	c.samples = b.samples.Clone()
	if b.specularOffsets != nil {
		c.specularOffsets = append([]float64(nil), b.specularOffsets...)
	}
	return &c
}

// HasSpecularOffsets reports whether any specular offset is non-zero.
func (b *Brdf) HasSpecularOffsets() bool {
	for _, o := range b.specularOffsets {
		if o != 0 {
			return true
		}
	}
	return false
}

// SpecularOffset returns the offset of incoming polar sample i.
func (b *Brdf) SpecularOffset(i int) float64 {
	if b.specularOffsets == nil {
		return 0
	}
	return b.specularOffsets[i]
}

// SpecularOffsets returns a copy of the offsets, one per axis 0 sample.
func (b *Brdf) SpecularOffsets() []float64 {
	out := make([]float64, b.samples.NumAngles(0))
	copy(out, b.specularOffsets)
	return out
}

// SetSpecularOffsets sets the lobe tilt for each axis 0 sample. Only
// Specular coordinates use offsets.
func (b *Brdf) SetSpecularOffsets(offsets []float64) {
	if b.coords != Specular {
		panic("bsdf: specular offsets require specular coordinates")
	}
	if len(offsets) != b.samples.NumAngles(0) {
		panic("bsdf: specular offset length mismatch")
	}
	b.specularOffsets = append([]float64(nil), offsets...)
}

// SpecularOffsetAt interpolates the offset at an incoming polar angle.
// Angles outside axis 0 take the offset of the nearest sample.
func (b *Brdf) SpecularOffsetAt(inTheta float64) float64 {
	if b.specularOffsets == nil {
		return 0
	}
	ss := b.samples
	bounds := arrayutil.FindBounds(ss.angles[0], inTheta, ss.equalInterval[0])
	w := math.Max(0, math.Min(1, bounds.Weight(inTheta)))
	return b.specularOffsets[bounds.LowerIndex]*(1-w) + b.specularOffsets[bounds.UpperIndex]*w
}

// InOutDirection returns the direction pair represented by a grid cell.
func (b *Brdf) InOutDirection(i0, i1, i2, i3 int) (in, out Vec3) {
	ss := b.samples
	a0, a1, a2, a3 := ss.angles[0][i0], ss.angles[1][i1], ss.angles[2][i2], ss.angles[3][i3]
	if b.coords == Specular {
		return SpecularToXYZ(a0, a1, a2, a3, b.SpecularOffset(i0))
	}
	return b.coords.ToXYZ(a0, a1, a2, a3)
}

// Angles returns the coordinates of a direction pair in this Brdf's
// coordinate system, including its specular offsets.
func (b *Brdf) Angles(in, out Vec3) (a0, a1, a2, a3 float64) {
	in, out = in.Normalize(), out.Normalize()
	if b.coords == Specular && b.specularOffsets != nil {
		inTheta, _ := SphericalFromXYZ(in)
		return SpecularFromXYZ(in, out, b.SpecularOffsetAt(inTheta))
	}
	return b.coords.FromXYZ(in, out)
}

// Spectrum returns the interpolated spectrum for a direction pair.
// Isotropic grids are looked up with the pair rotated so that axis 1 is 0.
func (b *Brdf) Spectrum(in, out Vec3) Spectrum {
	a0, a1, a2, a3 := b.Angles(in, out)
	if b.samples.IsIsotropic() && a1 != 0 {
		in, out = rotateZ(in, -a1), rotateZ(out, -a1)
		a0, _, a2, a3 = b.Angles(in, out)
		a1 = 0
	}
	return b.SpectrumAtAngles(a0, a1, a2, a3)
}

// SpectrumAtAngles multilinearly interpolates the grid at four angles.
// One-sided grids mirror axis 3 values above π. Azimuth axes starting at
// 0 wrap around 2π. Values outside an axis are linearly extrapolated from
// its two boundary samples and the result is clamped to be non-negative.
func (b *Brdf) SpectrumAtAngles(a0, a1, a2, a3 float64) Spectrum {
	ss := b.samples
	if ss.oneSide && a3 > math.Pi {
		a3 = twoPi - a3
	}

	values := [NumAxes]float64{a0, a1, a2, a3}
	var bounds [NumAxes]arrayutil.Bounds
	var weights [NumAxes]float64
	for axis, v := range values {
		if axis == 1 || axis == 3 {
			bounds[axis] = azimuthBounds(ss.angles[axis], v, ss.equalInterval[axis])
		} else {
			bounds[axis] = arrayutil.FindBounds(ss.angles[axis], v, ss.equalInterval[axis])
		}
		weights[axis] = bounds[axis].Weight(v)
	}

	nwl := ss.NumWavelengths()
	acc := make([]float64, nwl)
	for corner := 0; corner < 1<<NumAxes; corner++ {
		weight := 1.0
		var idx [NumAxes]int
		for axis := 0; axis < NumAxes; axis++ {
			if corner&(1<<axis) != 0 {
				weight *= weights[axis]
				idx[axis] = bounds[axis].UpperIndex
			} else {
				weight *= 1 - weights[axis]
				idx[axis] = bounds[axis].LowerIndex
			}
		}
		if weight == 0 {
			continue
		}
		sp := ss.Spectrum(idx[0], idx[1], idx[2], idx[3])
		for i, v := range sp {
			acc[i] += weight * float64(v)
		}
	}

	out := make(Spectrum, nwl)
	for i, v := range acc {
		out[i] = float32(math.Max(v, 0))
	}
	return out
}

// azimuthBounds is FindBounds with periodic wrap between the last sample
// and 2π when the axis starts at 0.
func azimuthBounds(values []float64, v float64, equalInterval bool) arrayutil.Bounds {
	n := len(values)
	last := values[n-1]
	if n > 1 && v > last && values[0] == 0 && last < twoPi && v <= twoPi {
		return arrayutil.Bounds{
			LowerIndex: n - 1,
			UpperIndex: 0,
			LowerValue: last,
			UpperValue: twoPi,
		}
	}
	return arrayutil.FindBounds(values, v, equalInterval)
}
