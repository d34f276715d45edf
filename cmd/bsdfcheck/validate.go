package main

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/mrjoshuak/go-bsdf/bsdf"
	"github.com/mrjoshuak/go-bsdf/bsdfio"
)

// maxFileSize limits the memory used for one file.
const maxFileSize = 1 << 30

// reflectanceTolerance allows for quadrature error before a direction is
// reported as reflecting more than it receives.
const reflectanceTolerance = 1.01

// validateFile validates a single grid file and returns the results.
func validateFile(filename string, strict bool) (*report, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() > maxFileSize {
		result := &report{filename: filename, checks: []string{"file size"}}
		result.errorf("file too large for validation (%d bytes, max %d)", stat.Size(), maxFileSize)
		return result, nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return validateData(filename, data, strict), nil
}

func validateData(filename string, data []byte, strict bool) *report {
	result := &report{filename: filename}

	result.checks = append(result.checks, "magic number")
	if !bytes.HasPrefix(data, bsdfio.MagicNumber) {
		result.errorf("invalid magic number")
		return result
	}

	result.checks = append(result.checks, "structure")
	b, err := bsdfio.ReadGrid(bytes.NewReader(data))
	if err != nil {
		switch {
		case errors.Is(err, bsdfio.ErrUnsupportedVersion):
			result.errorf("%v", err)
		default:
			result.errorf("failed to parse file: %v", err)
		}
		return result
	}

	result.checks = append(result.checks, "finite values")
	for _, d := range b.Samples().Validate().Invalid() {
		result.errorf("%s: %s", d.Category, d.Message)
	}

	result.checks = append(result.checks, "axis order")
	validateAxisOrder(b, result)

	if strict {
		result.checks = append(result.checks, "angle ranges", "negative values", "energy conservation")
		validateAngleRanges(b, result)
		validateNegativeValues(b, result)
		validateEnergy(b, result)
	}
	return result
}

func validateAxisOrder(b *bsdf.Brdf, result *report) {
	ss := b.Samples()
	for axis := 0; axis < bsdf.NumAxes; axis++ {
		angles := ss.Angles(axis)
		for i := 1; i < len(angles); i++ {
			if !(angles[i] > angles[i-1]) {
				result.errorf("axis %d (%s) is not strictly ascending at index %d",
					axis, b.CoordinateSystem().AngleName(axis), i)
				break
			}
		}
	}
}

func validateAngleRanges(b *bsdf.Brdf, result *report) {
	ss := b.Samples()
	coords := b.CoordinateSystem()
	for axis := 0; axis < bsdf.NumAxes; axis++ {
		limit := coords.MaxAngle(axis)
		angles := ss.Angles(axis)
		if angles[0] < 0 || angles[len(angles)-1] > limit*(1+1e-6) {
			result.warnf("axis %d (%s) leaves [0, %.4f]", axis, coords.AngleName(axis), limit)
		}
	}
}

func validateNegativeValues(b *bsdf.Brdf, result *report) {
	count := 0
	for _, v := range b.Samples().SpectraData() {
		if v < 0 {
			count++
		}
	}
	if count > 0 {
		result.warnf("%d negative values", count)
	}
}

func validateEnergy(b *bsdf.Brdf, result *report) {
	ss := b.Samples()
	for i0 := 0; i0 < ss.NumAngles(0); i0++ {
		for i1 := 0; i1 < ss.NumAngles(1); i1++ {
			r, err := bsdf.Reflectance(b, i0, i1)
			if err != nil {
				// Not defined for this coordinate system.
				return
			}
			for wl, v := range r {
				if v > reflectanceTolerance {
					result.warnf("reflectance %.4f at (%d, %d) wavelength %d exceeds 1", v, i0, i1, wl)
				}
			}
		}
	}
}
