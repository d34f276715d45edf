package bsdfio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/mrjoshuak/go-bsdf/bsdf"
)

// ddrGenerator appears in the comment line at the top of DDR files.
const ddrGenerator = "go-bsdf"

// xyzToSRGB converts CIE XYZ to linear sRGB (D65).
var xyzToSRGB = [3][3]float64{
	{3.2404542, -1.5371385, -0.4985314},
	{-0.9692660, 1.8760108, 0.0415560},
	{0.0556434, -0.2040259, 1.0572252},
}

var rgbChannelNames = [3]string{"red", "gre", "blu"}

// ddrColor is the DDR color model: BW, RGB or spectral.
type ddrColor int

const (
	ddrBW ddrColor = iota
	ddrRGB
	ddrSpectral
)

// colorOf picks the DDR color model. Any single-wavelength grid is BW.
func colorOf(ss *bsdf.SampleSet) ddrColor {
	switch {
	case ss.NumWavelengths() == 1:
		return ddrBW
	case ss.ColorModel() == bsdf.RGB, ss.ColorModel() == bsdf.XYZ:
		return ddrRGB
	default:
		return ddrSpectral
	}
}

// WriteDDR writes b as a DDR file. b must use Specular coordinates; use
// Export for data in other coordinate systems.
//
// Values are written as BRDF times π. XYZ data is written as RGB.
func WriteDDR(w io.Writer, b *bsdf.Brdf) error {
	if b.CoordinateSystem() != bsdf.Specular {
		return fmt.Errorf("%w: DDR requires specular coordinates, got %v",
			bsdf.ErrUnsupportedCoordinateSystem, b.CoordinateSystem())
	}

	ss := b.Samples()
	for axis := 0; axis < bsdf.NumAxes; axis++ {
		for _, a := range ss.Angles(axis) {
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return fmt.Errorf("%w: non-finite angle on axis %d", bsdf.ErrInvalidData, axis)
			}
		}
	}

	bw := bufio.NewWriter(w)
	dw := &ddrWriter{w: bw}
	dw.header(b)
	dw.data(b)
	if err := bw.Flush(); err != nil {
		return err
	}

	logger.Infof("wrote DDR: %d x %d x %d x %d samples, %v",
		ss.NumAngles(0), ss.NumAngles(1), ss.NumAngles(2), ss.NumAngles(3), ss.ColorModel())
	return nil
}

// WriteDDRFile writes b to a new DDR file at path.
func WriteDDRFile(path string, b *bsdf.Brdf) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteDDR(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ddrWriter writes through a bufio.Writer, whose first error sticks and is
// reported by Flush.
type ddrWriter struct {
	w   *bufio.Writer
	num []byte
}

func (d *ddrWriter) line(s string) {
	d.w.WriteString(s)
	d.w.WriteByte('\n')
}

func (d *ddrWriter) value(v float64) {
	d.num = strconv.AppendFloat(d.num[:0], v, 'g', 6, 64)
	d.w.WriteByte(' ')
	d.w.Write(d.num)
}

func (d *ddrWriter) degrees(name string, angles []float64) {
	d.line(name + " " + strconv.Itoa(len(angles)))
	for _, a := range angles {
		d.value(a * 180 / math.Pi)
	}
	d.w.WriteByte('\n')
}

func (d *ddrWriter) header(b *bsdf.Brdf) {
	ss := b.Samples()

	d.line(";; This file is generated by " + ddrGenerator + ".")
	d.line("")

	source := b.SourceType()
	if source == bsdf.SourceUnknown {
		source = bsdf.SourceMeasured
	}
	d.line("Source " + source.String())

	if ss.IsIsotropic() {
		d.line("TypeSym ASymmetrical")
	} else {
		d.line("TypeSym ASymmetrical 4D")
	}

	switch colorOf(ss) {
	case ddrBW:
		d.line("TypeColorModel BW")
	case ddrRGB:
		d.line("TypeColorModel RGB")
	default:
		d.line("TypeColorModel spectral " + strconv.Itoa(ss.NumWavelengths()))
	}

	d.line("TypeData Luminance Absolute")

	if !ss.IsIsotropic() {
		d.degrees("psi", ss.Angles(1))
	}
	d.degrees("sigma", ss.Angles(0))
	d.degrees("phi", ss.Angles(3))
	d.degrees("theta", ss.Angles(2))
}

func (d *ddrWriter) data(b *bsdf.Brdf) {
	ss := b.Samples()
	n0, n1, n2, n3 := ss.NumAngles(0), ss.NumAngles(1), ss.NumAngles(2), ss.NumAngles(3)
	color := colorOf(ss)
	isXYZ := color == ddrRGB && ss.ColorModel() == bsdf.XYZ

	for wl := 0; wl < ss.NumWavelengths(); wl++ {
		switch color {
		case ddrBW:
			d.line("bw")
		case ddrRGB:
			d.line(rgbChannelNames[wl])
		default:
			d.line("wl " + strconv.FormatFloat(float64(ss.Wavelength(wl)), 'g', 6, 32))
		}

		d.line(" kbdf")
		for i := 0; i < n0; i++ {
			d.w.WriteString(" 1.0")
		}
		d.w.WriteByte('\n')
		d.line(" def")

		for i1 := 0; i1 < n1; i1++ {
			d.line(";; Psi = " + strconv.FormatFloat(ss.Angle(1, i1)*180/math.Pi, 'g', 6, 64))
			for i0 := 0; i0 < n0; i0++ {
				d.line(";; Sigma = " + strconv.FormatFloat(ss.Angle(0, i0)*180/math.Pi, 'g', 6, 64))
				for i3 := 0; i3 < n3; i3++ {
					for i2 := 0; i2 < n2; i2++ {
						sp := ss.Spectrum(i0, i1, i2, i3)
						var v float64
						if isXYZ {
							m := xyzToSRGB[wl]
							v = m[0]*float64(sp[0]) + m[1]*float64(sp[1]) + m[2]*float64(sp[2])
						} else {
							v = float64(sp[wl])
						}
						d.value(v * math.Pi)
					}
					d.w.WriteByte('\n')
				}
			}
		}
		d.line(" enddef")
	}
}
