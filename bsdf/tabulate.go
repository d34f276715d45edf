package bsdf

import (
	"fmt"
	"math"
)

// minDirZ keeps tabulated directions off the horizon.
const minDirZ = 0.001

// SetupTabularBrdf fills b by evaluating model at the direction pair of
// every cell. Channel values above maxValue are clamped to it.
//
// Only RGB and monochromatic grids are supported; monochromatic cells
// store the channel mean. For BTDFData the outgoing direction is mirrored
// below the surface before evaluation. Specular grids skip cells whose
// outgoing direction points downward and fill them with FillBackSide.
//
// Cells are filled through ParallelFor over axis 2. Every cell is written
// once, so the result does not depend on scheduling.
func SetupTabularBrdf(model ReflectanceModel, b *Brdf, dataType DataType, maxValue float32) error {
	ss := b.samples

	cm := ss.ColorModel()
	if cm != RGB && cm != Monochromatic {
		logger.Errorf("unsupported color model for tabulation: %v", cm)
		return fmt.Errorf("%w: %v (model %T)", ErrUnsupportedColorModel, cm, model)
	}

	backSideFillable := b.coords == Specular
	n0, n1, n2, n3 := ss.NumAngles(0), ss.NumAngles(1), ss.NumAngles(2), ss.NumAngles(3)

	ParallelFor(n2, func(i2 int) {
		sp := make(Spectrum, ss.NumWavelengths())
		for i0 := 0; i0 < n0; i0++ {
			for i1 := 0; i1 < n1; i1++ {
				for i3 := 0; i3 < n3; i3++ {
					in, out := b.InOutDirection(i0, i1, i2, i3)
					if backSideFillable && out.Z < 0 {
						continue
					}

					in.Z = math.Max(in.Z, minDirZ)
					out.Z = math.Max(out.Z, minDirZ)
					if math.Abs(out.X) <= minDirZ && math.Abs(out.Y) <= minDirZ && out.Z <= minDirZ {
						out.X = 1
					}
					in, out = in.Normalize(), out.Normalize()

					if dataType == BTDFData {
						out.Z = -out.Z
					}

					v := model.Evaluate(in, out)
					if cm == RGB {
						sp[0] = min(float32(v.X), maxValue)
						sp[1] = min(float32(v.Y), maxValue)
						sp[2] = min(float32(v.Z), maxValue)
					} else {
						sp[0] = min(float32(v.Sum()/3), maxValue)
					}
					ss.SetSpectrum(i0, i1, i2, i3, sp)
				}
			}
		}
	})

	if backSideFillable {
		fillBackSide(b)
	}
	return nil
}
