package bsdf

import (
	"fmt"
	"math"

	"github.com/mrjoshuak/go-bsdf/internal/arrayutil"
)

// Grid sizes used when converting into specular coordinates.
const (
	minSpecThetaSamples = 181 // 1 degree over [0, π]
	minSpecPhiSamples   = 73  // 5 degrees over [0, 2π]

	genericInThetaSamples   = 19
	genericInPhiSamples     = 37
	genericSpecThetaSamples = 91
	genericSpecPhiSamples   = 73
	genericSpecThetaExp     = 2.0

	arrangedInThetaSamples = 10
)

// Convert returns b in Specular coordinates. b is not modified.
//
// Specular data is copied. Spherical data keeps its incoming axes and is
// resampled onto specular axes at least as dense as its outgoing ones.
// Any other coordinate system is resampled onto a fixed grid whose
// specular polar axis is denser near the lobe center.
func Convert(b *Brdf) (*Brdf, error) {
	ss := b.samples

	var angles [NumAxes][]float64
	switch b.coords {
	case Specular:
		return b.Clone(), nil
	case Spherical:
		angles[0] = ss.Angles(0)
		angles[1] = ss.Angles(1)
		angles[2] = arrayutil.LinSpaced(max(ss.NumAngles(2), minSpecThetaSamples), 0, math.Pi)
		angles[3] = arrayutil.LinSpaced(max(ss.NumAngles(3), minSpecPhiSamples), 0, twoPi)
	case HalfDifference:
		angles[0] = arrayutil.LinSpaced(genericInThetaSamples, 0, halfPi)
		if ss.IsIsotropic() {
			angles[1] = []float64{0}
		} else {
			angles[1] = arrayutil.LinSpaced(genericInPhiSamples, 0, twoPi)
		}
		angles[2] = arrayutil.CreateExponential(genericSpecThetaSamples, math.Pi, genericSpecThetaExp)
		angles[3] = arrayutil.LinSpaced(genericSpecPhiSamples, 0, twoPi)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCoordinateSystem, b.coords)
	}

	logger.Infof("converting %v data to specular coordinates (%d x %d x %d x %d)",
		b.coords, len(angles[0]), len(angles[1]), len(angles[2]), len(angles[3]))
	return Resample(b, Specular, angles), nil
}

// Arrange prepares specular data for writing. b is not modified.
//
// A single incoming polar sample is broadcast over [0, π/2]. Coincident
// cells are averaged, the axes are expanded to the full angular range,
// the azimuth seam is made consistent and reflectance above 1 is scaled
// down. For BTDFData the grazing incoming slice is zeroed.
func Arrange(b *Brdf, dataType DataType) (*Brdf, error) {
	if b.coords != Specular {
		return nil, fmt.Errorf("%w: arrange needs specular coordinates, got %v",
			ErrUnsupportedCoordinateSystem, b.coords)
	}

	out := b.Clone()
	if out.samples.NumAngles(0) == 1 {
		ss := out.samples
		angles := [NumAxes][]float64{
			arrayutil.LinSpaced(arrangedInThetaSamples, 0, halfPi),
			ss.Angles(1),
			ss.Angles(2),
			ss.Angles(3),
		}
		out = resampleAngles(out, angles)
	}

	EqualizeOverlappingSamples(out)
	out = ExpandAngles(out)
	CopySpectraFromPhiOf0To360(out)
	if err := FixEnergyConservation(out); err != nil {
		return nil, err
	}

	if dataType == BTDFData {
		FillSpectraAtInThetaOf90(out, 0)
	}
	return out, nil
}
