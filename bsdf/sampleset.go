package bsdf

import (
	"math"

	"github.com/mrjoshuak/go-bsdf/internal/arrayutil"
	"github.com/mrjoshuak/go-bsdf/internal/log"
)

var logger = log.New("bsdf")

// NumAxes is the number of angle axes of a SampleSet.
const NumAxes = 4

// SampleSet stores spectra on a four-dimensional angle grid.
//
// The spectra of all cells share one backing slice. Cells are laid out
// row-major with axis 0 varying slowest.
//
// A SampleSet is not safe for concurrent mutation.
type SampleSet struct {
	angles      [NumAxes][]float64
	wavelengths []float32
	spectra     []float32
	colorModel  ColorModel

	equalInterval [NumAxes]bool
	oneSide       bool
}

// NewSampleSet creates a zero-filled grid with the given axis sizes.
// Monochromatic data always has one wavelength and RGB/XYZ data three;
// numWavelengths is used only for spectral data. All counts must be
// positive.
func NewSampleSet(n0, n1, n2, n3 int, colorModel ColorModel, numWavelengths int) *SampleSet {
	ss := &SampleSet{colorModel: colorModel}
	ss.ResizeAngles(n0, n1, n2, n3)

	switch colorModel {
	case Monochromatic:
		ss.ResizeWavelengths(1)
	case RGB, XYZ:
		ss.ResizeWavelengths(3)
	default:
		ss.ResizeWavelengths(numWavelengths)
	}
	return ss
}

// ResizeAngles reallocates the four axes and the spectra. Existing
// content is discarded; use Resample to keep data across a grid change.
func (ss *SampleSet) ResizeAngles(n0, n1, n2, n3 int) {
	if n0 <= 0 || n1 <= 0 || n2 <= 0 || n3 <= 0 {
		panic("bsdf: angle counts must be positive")
	}

	for axis, n := range [NumAxes]int{n0, n1, n2, n3} {
		ss.angles[axis] = make([]float64, n)
	}
	ss.spectra = make([]float32, ss.NumSamples()*max(len(ss.wavelengths), 1))
	ss.UpdateAngleAttributes()
}

// ResizeWavelengths reallocates every spectrum to n zeros and the
// wavelength axis to n entries.
func (ss *SampleSet) ResizeWavelengths(n int) {
	if n <= 0 {
		panic("bsdf: wavelength count must be positive")
	}
	ss.wavelengths = make([]float32, n)
	ss.spectra = make([]float32, ss.NumSamples()*n)
}

// NumSamples returns the number of grid cells.
func (ss *SampleSet) NumSamples() int {
	n := 1
	for _, a := range ss.angles {
		n *= len(a)
	}
	return n
}

// NumAngles returns the size of an axis.
func (ss *SampleSet) NumAngles(axis int) int {
	return len(ss.angles[axis])
}

// Angle returns one value of an axis.
func (ss *SampleSet) Angle(axis, i int) float64 {
	return ss.angles[axis][i]
}

// Angles returns a copy of an axis.
func (ss *SampleSet) Angles(axis int) []float64 {
	return append([]float64(nil), ss.angles[axis]...)
}

// SetAngles replaces the values of an axis and refreshes the cached
// attributes. len(values) must equal the axis size.
func (ss *SampleSet) SetAngles(axis int, values []float64) {
	if len(values) != len(ss.angles[axis]) {
		panic("bsdf: axis length mismatch")
	}
	copy(ss.angles[axis], values)
	ss.UpdateAngleAttributes()
}

// ColorModel returns the color model.
func (ss *SampleSet) ColorModel() ColorModel {
	return ss.colorModel
}

// NumWavelengths returns the length of every spectrum.
func (ss *SampleSet) NumWavelengths() int {
	return len(ss.wavelengths)
}

// Wavelength returns one wavelength.
func (ss *SampleSet) Wavelength(i int) float32 {
	return ss.wavelengths[i]
}

// Wavelengths returns a copy of the wavelength axis.
func (ss *SampleSet) Wavelengths() []float32 {
	return append([]float32(nil), ss.wavelengths...)
}

// SetWavelength sets one wavelength.
func (ss *SampleSet) SetWavelength(i int, wl float32) {
	ss.wavelengths[i] = wl
}

// SetWavelengths replaces the wavelength axis. len(wls) must equal
// NumWavelengths.
func (ss *SampleSet) SetWavelengths(wls []float32) {
	if len(wls) != len(ss.wavelengths) {
		panic("bsdf: wavelength length mismatch")
	}
	copy(ss.wavelengths, wls)
}

// Index returns the flat cell index of an index tuple.
func (ss *SampleSet) Index(i0, i1, i2, i3 int) int {
	return ((i0*len(ss.angles[1])+i1)*len(ss.angles[2])+i2)*len(ss.angles[3]) + i3
}

// Spectrum returns the spectrum of a cell. The returned slice aliases the
// grid storage.
func (ss *SampleSet) Spectrum(i0, i1, i2, i3 int) Spectrum {
	return ss.spectrumAt(ss.Index(i0, i1, i2, i3))
}

func (ss *SampleSet) spectrumAt(index int) Spectrum {
	n := len(ss.wavelengths)
	return ss.spectra[index*n : (index+1)*n : (index+1)*n]
}

// SpectraData returns the storage of all spectra, cell after cell in
// Index order. The returned slice aliases the grid storage.
func (ss *SampleSet) SpectraData() []float32 {
	return ss.spectra
}

// SetSpectrum copies sp into a cell. len(sp) must equal NumWavelengths.
func (ss *SampleSet) SetSpectrum(i0, i1, i2, i3 int, sp Spectrum) {
	if len(sp) != len(ss.wavelengths) {
		panic("bsdf: spectrum length mismatch")
	}
	copy(ss.Spectrum(i0, i1, i2, i3), sp)
}

// IsEqualInterval reports whether an axis is an arithmetic progression
// from 0, as of the last attribute refresh.
func (ss *SampleSet) IsEqualInterval(axis int) bool {
	return ss.equalInterval[axis]
}

// IsOneSide reports whether axis 3 covers only one half of the azimuth
// range, as of the last attribute refresh.
func (ss *SampleSet) IsOneSide() bool {
	return ss.oneSide
}

// IsIsotropic reports whether axis 1 has a single sample.
func (ss *SampleSet) IsIsotropic() bool {
	return len(ss.angles[1]) == 1
}

// UpdateAngleAttributes recomputes the equal-interval flags and the
// one-side flag from the current axis values.
func (ss *SampleSet) UpdateAngleAttributes() {
	for axis := range ss.angles {
		ss.equalInterval[axis] = arrayutil.IsEqualInterval(ss.angles[axis])
	}
	ss.oneSide = isOneSide(ss.angles[3])

	logger.Debugf("angle attributes: equal interval %v, one side %v", ss.equalInterval, ss.oneSide)
}

// oneSideEpsilon is the angular tolerance used near 0, π and 2π.
const oneSideEpsilon = 2 * 1.1920929e-7

func isOneSide(angles []float64) bool {
	var firstHalf, secondHalf bool
	for _, a := range angles {
		if a > twoPi {
			a = math.Mod(a, twoPi)
		}
		if a > oneSideEpsilon && a < math.Pi-oneSideEpsilon {
			firstHalf = true
		}
		if a > math.Pi+oneSideEpsilon && a < twoPi-oneSideEpsilon {
			secondHalf = true
		}
	}
	return !firstHalf || !secondHalf
}

// Clone returns a deep copy.
func (ss *SampleSet) Clone() *SampleSet {
	c := *ss
	for axis := range c.angles {
		c.angles[axis] = append([]float64(nil), ss.angles[axis]...)
	}
	c.wavelengths = append([]float32(nil), ss.wavelengths...)
	c.spectra = append([]float32(nil), ss.spectra...)
	return &c
}
