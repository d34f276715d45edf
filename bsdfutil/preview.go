package bsdfutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/mrjoshuak/go-jpeg2000"

	"github.com/mrjoshuak/go-bsdf/bsdf"
)

// ErrSliceIndex is returned when a preview names a cell outside the grid.
var ErrSliceIndex = errors.New("bsdfutil: slice index out of range")

// maxResolutions matches five decomposition levels plus the base.
const maxResolutions = 6

// PreviewOptions selects the slice shown by a preview.
type PreviewOptions struct {
	// InTheta and InPhi index axes 0 and 1.
	InTheta, InPhi int

	// Wavelength indexes the spectrum.
	Wavelength int

	// Scale multiplies values before they are quantized; a value of Scale
	// times 1 maps to white. Zero means 1.
	Scale float64
}

// Slice returns the values of one wavelength over axes 2 and 3 at fixed
// axis 0 and 1 indices, as a Gray16 image with axis 2 along y and axis 3
// along x. Values are clamped to [0, 1] after scaling.
func Slice(b *bsdf.Brdf, opts PreviewOptions) (*image.Gray16, error) {
	ss := b.Samples()
	if opts.InTheta < 0 || opts.InTheta >= ss.NumAngles(0) ||
		opts.InPhi < 0 || opts.InPhi >= ss.NumAngles(1) ||
		opts.Wavelength < 0 || opts.Wavelength >= ss.NumWavelengths() {
		return nil, fmt.Errorf("%w: (%d, %d) wavelength %d", ErrSliceIndex, opts.InTheta, opts.InPhi, opts.Wavelength)
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	n2, n3 := ss.NumAngles(2), ss.NumAngles(3)
	img := image.NewGray16(image.Rect(0, 0, n3, n2))
	for i2 := 0; i2 < n2; i2++ {
		for i3 := 0; i3 < n3; i3++ {
			v := float64(ss.Spectrum(opts.InTheta, opts.InPhi, i2, i3)[opts.Wavelength]) * scale
			if math.IsNaN(v) {
				v = 0
			}
			v = math.Max(0, math.Min(1, v))
			img.SetGray16(i3, i2, color.Gray16{Y: uint16(math.Round(v * 0xffff))})
		}
	}
	return img, nil
}

// numResolutions returns the resolution count for an image, limited so
// that the smallest level keeps at least one sample per side.
func numResolutions(bounds image.Rectangle) int {
	side := min(bounds.Dx(), bounds.Dy())
	n := 1
	for side > 1 && n < maxResolutions {
		side /= 2
		n++
	}
	return n
}

// EncodePreview writes a slice of b as a lossless JPEG 2000 codestream.
func EncodePreview(w io.Writer, b *bsdf.Brdf, opts PreviewOptions) error {
	img, err := Slice(b, opts)
	if err != nil {
		return err
	}

	j2kOpts := &jpeg2000.Options{
		Format:         jpeg2000.FormatJ2K,
		Lossless:       true,
		NumResolutions: numResolutions(img.Bounds()),
	}

	var buf bytes.Buffer
	if err := jpeg2000.Encode(&buf, img, j2kOpts); err != nil {
		return fmt.Errorf("bsdfutil: jpeg2000 encode failed: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// DecodePreview reads a codestream written by EncodePreview.
func DecodePreview(r io.Reader) (*image.Gray16, error) {
	img, err := jpeg2000.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bsdfutil: jpeg2000 decode failed: %w", err)
	}
	if gray, ok := img.(*image.Gray16); ok {
		return gray, nil
	}

	bounds := img.Bounds()
	gray := image.NewGray16(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.Gray16Model.Convert(img.At(x, y)))
		}
	}
	return gray, nil
}
