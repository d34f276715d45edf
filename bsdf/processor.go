package bsdf

import (
	"fmt"
	"math"
	"sort"

	"github.com/mrjoshuak/go-bsdf/internal/arrayutil"
)

// The functions in this file modify the Brdf they are given, except for
// the ones that return a new Brdf. Convert and Arrange apply them to
// copies.

// isAngle reports whether a and b are the same angle within tolerance.
func isAngle(a, b float64) bool {
	return arrayutil.IsEqual(a, b)
}

// Resample returns a new Brdf in coords with the given axes, filled by
// looking up src at the direction pair of every cell. Cells whose
// directions point below the surface are left at zero; for Specular
// targets FillBackSide fills them afterwards.
func Resample(src *Brdf, coords CoordinateSystem, angles [NumAxes][]float64) *Brdf {
	sss := src.samples
	dst := NewBrdfWithAngles(coords, angles, sss.ColorModel(), sss.NumWavelengths())
	dst.samples.SetWavelengths(sss.wavelengths)
	dst.sourceType = src.sourceType
	dst.name = src.name

	dss := dst.samples
	for i0 := range angles[0] {
		for i1 := range angles[1] {
			for i2 := range angles[2] {
				for i3 := range angles[3] {
					in, out := dst.InOutDirection(i0, i1, i2, i3)
					if in.Z < 0 || out.Z < 0 {
						continue
					}
					dss.SetSpectrum(i0, i1, i2, i3, src.Spectrum(in, out))
				}
			}
		}
	}

	if coords == Specular {
		fillBackSide(dst)
	}
	return dst
}

// resampleAngles returns a copy of src on new axes of the same coordinate
// system, interpolating in angle space. Specular offsets are interpolated
// onto the new axis 0.
func resampleAngles(src *Brdf, angles [NumAxes][]float64) *Brdf {
	sss := src.samples
	dst := NewBrdfWithAngles(src.coords, angles, sss.ColorModel(), sss.NumWavelengths())
	dst.samples.SetWavelengths(sss.wavelengths)
	dst.sourceType = src.sourceType
	dst.name = src.name

	if src.specularOffsets != nil {
		offsets := make([]float64, len(angles[0]))
		for i, a := range angles[0] {
			offsets[i] = src.SpecularOffsetAt(a)
		}
		dst.specularOffsets = offsets
	}

	for i0, a0 := range angles[0] {
		for i1, a1 := range angles[1] {
			for i2, a2 := range angles[2] {
				for i3, a3 := range angles[3] {
					dst.samples.SetSpectrum(i0, i1, i2, i3, src.SpectrumAtAngles(a0, a1, a2, a3))
				}
			}
		}
	}
	return dst
}

// FillBackSide fills the cells of a Specular Brdf whose outgoing direction
// points below the surface. Each one gets the spectrum of the nearest cell
// towards the specular direction, along axis 2, that points upward.
func FillBackSide(b *Brdf) error {
	if b.coords != Specular {
		return fmt.Errorf("%w: back side filling needs specular coordinates, got %v",
			ErrUnsupportedCoordinateSystem, b.coords)
	}
	fillBackSide(b)
	return nil
}

// fillBackSide copies along axis 2 from the last upward cell. b must use
// Specular coordinates.
func fillBackSide(b *Brdf) {
	ss := b.samples
	n0, n1, n2, n3 := ss.NumAngles(0), ss.NumAngles(1), ss.NumAngles(2), ss.NumAngles(3)
	for i0 := 0; i0 < n0; i0++ {
		for i1 := 0; i1 < n1; i1++ {
			for i3 := 0; i3 < n3; i3++ {
				last := -1
				for i2 := 0; i2 < n2; i2++ {
					_, out := b.InOutDirection(i0, i1, i2, i3)
					if out.Z >= 0 {
						last = i2
						continue
					}
					if last >= 0 {
						copy(ss.Spectrum(i0, i1, i2, i3), ss.Spectrum(i0, i1, last, i3))
					}
				}
			}
		}
	}
}

// EqualizeOverlappingSamples replaces the spectra of cells that represent
// the same direction pair with their mean:
//   - all axis 3 samples at axis 2 angle 0 (outgoing pole or specular
//     direction);
//   - the azimuth seam, where axis 1 or axis 3 holds both 0 and 2π;
//   - for Spherical data, all axis 1 samples at incoming polar angle 0.
func EqualizeOverlappingSamples(b *Brdf) {
	ss := b.samples
	n0, n1, n2, n3 := ss.NumAngles(0), ss.NumAngles(1), ss.NumAngles(2), ss.NumAngles(3)
	nwl := ss.NumWavelengths()

	average := func(cells [][NumAxes]int) {
		if len(cells) < 2 {
			return
		}
		mean := make([]float64, nwl)
		for _, c := range cells {
			for i, v := range ss.Spectrum(c[0], c[1], c[2], c[3]) {
				mean[i] += float64(v)
			}
		}
		sp := make(Spectrum, nwl)
		for i := range mean {
			sp[i] = float32(mean[i] / float64(len(cells)))
		}
		for _, c := range cells {
			ss.SetSpectrum(c[0], c[1], c[2], c[3], sp)
		}
	}

	cells := make([][NumAxes]int, 0, max(n1, n3))

	for i2 := 0; i2 < n2; i2++ {
		if !isAngle(ss.angles[2][i2], 0) {
			continue
		}
		for i0 := 0; i0 < n0; i0++ {
			for i1 := 0; i1 < n1; i1++ {
				cells = cells[:0]
				for i3 := 0; i3 < n3; i3++ {
					cells = append(cells, [NumAxes]int{i0, i1, i2, i3})
				}
				average(cells)
			}
		}
	}

	if hasSeam(ss.angles[3]) {
		for i0 := 0; i0 < n0; i0++ {
			for i1 := 0; i1 < n1; i1++ {
				for i2 := 0; i2 < n2; i2++ {
					average([][NumAxes]int{{i0, i1, i2, 0}, {i0, i1, i2, n3 - 1}})
				}
			}
		}
	}

	if hasSeam(ss.angles[1]) {
		for i0 := 0; i0 < n0; i0++ {
			for i2 := 0; i2 < n2; i2++ {
				for i3 := 0; i3 < n3; i3++ {
					average([][NumAxes]int{{i0, 0, i2, i3}, {i0, n1 - 1, i2, i3}})
				}
			}
		}
	}

	if b.coords == Spherical && n1 > 1 {
		for i0 := 0; i0 < n0; i0++ {
			if !isAngle(ss.angles[0][i0], 0) {
				continue
			}
			for i2 := 0; i2 < n2; i2++ {
				for i3 := 0; i3 < n3; i3++ {
					cells = cells[:0]
					for i1 := 0; i1 < n1; i1++ {
						cells = append(cells, [NumAxes]int{i0, i1, i2, i3})
					}
					average(cells)
				}
			}
		}
	}
}

// hasSeam reports whether an azimuth axis holds both 0 and 2π.
func hasSeam(angles []float64) bool {
	n := len(angles)
	return n > 1 && isAngle(angles[0], 0) && isAngle(angles[n-1], twoPi)
}

// ExpandAngles returns b on axes that cover the full angular range:
// one-sided axis 3 data is mirrored into (π, 2π], polar axes gain a 0
// sample and azimuth axes gain 0 and 2π samples where missing. Axis 1 of
// isotropic data is left alone. If nothing is missing a copy is returned.
func ExpandAngles(b *Brdf) *Brdf {
	ss := b.samples

	angles := [NumAxes][]float64{ss.Angles(0), ss.Angles(1), ss.Angles(2), ss.Angles(3)}
	changed := false

	if ss.oneSide {
		mirrored := angles[3]
		for _, a := range angles[3] {
			if a < math.Pi && !isAngle(a, math.Pi) {
				mirrored = arrayutil.AppendElement(mirrored, twoPi-a)
			}
		}
		angles[3] = mirrored
		changed = true
	}

	for _, axis := range []int{0, 2} {
		if !isAngle(angles[axis][0], 0) {
			angles[axis] = append([]float64{0}, angles[axis]...)
			changed = true
		}
	}

	azimuthAxes := []int{3}
	if !ss.IsIsotropic() {
		azimuthAxes = append(azimuthAxes, 1)
	}
	for _, axis := range azimuthAxes {
		a := angles[axis]
		if !containsAngle(a, 0) {
			a = arrayutil.AppendElement(a, 0)
			changed = true
		}
		if !containsAngle(a, twoPi) {
			a = arrayutil.AppendElement(a, twoPi)
			changed = true
		}
		angles[axis] = a
	}

	if !changed {
		return b.Clone()
	}

	for axis := range angles {
		angles[axis] = sortUnique(angles[axis])
	}
	logger.Infof("expanding angles to %d x %d x %d x %d",
		len(angles[0]), len(angles[1]), len(angles[2]), len(angles[3]))
	return resampleAngles(b, angles)
}

func containsAngle(angles []float64, v float64) bool {
	for _, a := range angles {
		if isAngle(a, v) {
			return true
		}
	}
	return false
}

func sortUnique(angles []float64) []float64 {
	sort.Float64s(angles)
	out := angles[:0]
	for i, a := range angles {
		if i > 0 && isAngle(a, out[len(out)-1]) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// CopySpectraFromPhiOf0To360 copies the azimuth 0 slice onto the 2π slice
// of axis 3, and of axis 1 for anisotropic data, where both are present.
func CopySpectraFromPhiOf0To360(b *Brdf) {
	ss := b.samples
	n0, n1, n2, n3 := ss.NumAngles(0), ss.NumAngles(1), ss.NumAngles(2), ss.NumAngles(3)

	if hasSeam(ss.angles[3]) {
		for i0 := 0; i0 < n0; i0++ {
			for i1 := 0; i1 < n1; i1++ {
				for i2 := 0; i2 < n2; i2++ {
					copy(ss.Spectrum(i0, i1, i2, n3-1), ss.Spectrum(i0, i1, i2, 0))
				}
			}
		}
	}

	if hasSeam(ss.angles[1]) {
		for i0 := 0; i0 < n0; i0++ {
			for i2 := 0; i2 < n2; i2++ {
				for i3 := 0; i3 < n3; i3++ {
					copy(ss.Spectrum(i0, n1-1, i2, i3), ss.Spectrum(i0, 0, i2, i3))
				}
			}
		}
	}
}

// trapezoidWeights returns the quadrature weight of each sample of an
// ascending axis.
func trapezoidWeights(x []float64) []float64 {
	n := len(x)
	w := make([]float64, n)
	for i := 0; i < n-1; i++ {
		h := (x[i+1] - x[i]) / 2
		w[i] += h
		w[i+1] += h
	}
	return w
}

// Reflectance integrates the cosine-weighted spectrum over outgoing
// directions for incoming sample (i0, i1) and returns one value per
// wavelength. Only Spherical and Specular data are supported.
func Reflectance(b *Brdf, i0, i1 int) ([]float64, error) {
	if b.coords != Spherical && b.coords != Specular {
		return nil, fmt.Errorf("%w: reflectance needs spherical or specular coordinates, got %v",
			ErrUnsupportedCoordinateSystem, b.coords)
	}

	ss := b.samples
	thetaW := trapezoidWeights(ss.angles[2])
	phiW := trapezoidWeights(ss.angles[3])

	phis := ss.angles[3]
	phiScale := 1.0
	if span := phis[len(phis)-1] - phis[0]; span > 0 {
		phiScale = twoPi / span
	} else {
		phiW[0] = twoPi
	}

	r := make([]float64, ss.NumWavelengths())
	for i2, theta := range ss.angles[2] {
		sinTheta := math.Sin(theta)
		for i3 := range phis {
			_, out := b.InOutDirection(i0, i1, i2, i3)
			if out.Z <= 0 {
				continue
			}
			w := out.Z * sinTheta * thetaW[i2] * phiW[i3] * phiScale
			for i, v := range ss.Spectrum(i0, i1, i2, i3) {
				r[i] += w * float64(v)
			}
		}
	}
	return r, nil
}

// FixEnergyConservation scales every incoming direction whose reflectance
// exceeds 1 at some wavelength so that it equals 1 at that wavelength.
func FixEnergyConservation(b *Brdf) error {
	ss := b.samples
	n0, n1, n2, n3 := ss.NumAngles(0), ss.NumAngles(1), ss.NumAngles(2), ss.NumAngles(3)

	for i0 := 0; i0 < n0; i0++ {
		for i1 := 0; i1 < n1; i1++ {
			r, err := Reflectance(b, i0, i1)
			if err != nil {
				return err
			}
			for wl, refl := range r {
				if refl <= 1 {
					continue
				}
				logger.Infof("reflectance %.4f at (%d, %d) wavelength %d exceeds 1", refl, i0, i1, wl)
				scale := float32(1 / refl)
				for i2 := 0; i2 < n2; i2++ {
					for i3 := 0; i3 < n3; i3++ {
						ss.Spectrum(i0, i1, i2, i3)[wl] *= scale
					}
				}
			}
		}
	}
	return nil
}

// FillSpectraAtInThetaOf90 sets every value at incoming polar angle π/2
// to value.
func FillSpectraAtInThetaOf90(b *Brdf, value float32) {
	ss := b.samples
	n1, n2, n3 := ss.NumAngles(1), ss.NumAngles(2), ss.NumAngles(3)

	for i0, a := range ss.angles[0] {
		if !isAngle(a, halfPi) {
			continue
		}
		for i1 := 0; i1 < n1; i1++ {
			for i2 := 0; i2 < n2; i2++ {
				for i3 := 0; i3 < n3; i3++ {
					sp := ss.Spectrum(i0, i1, i2, i3)
					for i := range sp {
						sp[i] = value
					}
				}
			}
		}
	}
}
