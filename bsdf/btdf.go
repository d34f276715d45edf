package bsdf

import "math"

// Btdf is transmission data backed by a Brdf. The Brdf grid stores the
// magnitude of the outgoing polar angle; the transmitted direction is its
// mirror below the surface.
//
// A Btdf holds no grid data of its own. The wrapped Brdf must stay valid
// for as long as the Btdf is used.
type Btdf struct {
	brdf *Brdf
}

// NewBtdf wraps b.
func NewBtdf(b *Brdf) *Btdf {
	return &Btdf{brdf: b}
}

// Brdf returns the wrapped data.
func (t *Btdf) Brdf() *Brdf { return t.brdf }

// Samples returns the wrapped grid.
func (t *Btdf) Samples() *SampleSet { return t.brdf.samples }

// Spectrum returns the interpolated spectrum for a direction pair. Both
// directions are folded into the upper hemisphere before the lookup.
func (t *Btdf) Spectrum(in, out Vec3) Spectrum {
	in.Z = math.Abs(in.Z)
	out.Z = math.Abs(out.Z)
	return t.brdf.Spectrum(in, out)
}

// InOutDirection returns the direction pair of a grid cell with the
// outgoing direction in the transmission hemisphere.
func (t *Btdf) InOutDirection(i0, i1, i2, i3 int) (in, out Vec3) {
	in, out = t.brdf.InOutDirection(i0, i1, i2, i3)
	out.Z = -out.Z
	return in, out
}
