// Package bsdfutil provides higher-level helpers for inspecting tabular
// BSDF data: summaries of a grid and image previews of its slices.
package bsdfutil

import (
	"math"

	"github.com/mrjoshuak/go-bsdf/bsdf"
)

// AxisInfo describes one angle axis.
type AxisInfo struct {
	Name          string
	Count         int
	Min, Max      float64
	EqualInterval bool
}

// Info summarizes a Brdf.
type Info struct {
	Name             string
	CoordinateSystem bsdf.CoordinateSystem
	ColorModel       bsdf.ColorModel
	SourceType       bsdf.SourceType
	Axes             [bsdf.NumAxes]AxisInfo
	Wavelengths      []float32
	NumSamples       int

	Isotropic          bool
	OneSide            bool
	HasSpecularOffsets bool

	// Statistics over all finite values.
	MinValue, MaxValue, MeanValue float64
	NonFinite                     int

	// Reflectance per wavelength for the first incoming direction, or nil
	// for coordinate systems without a reflectance integral.
	Reflectance []float64
}

// Summarize computes an Info for b.
func Summarize(b *bsdf.Brdf) *Info {
	ss := b.Samples()
	info := &Info{
		Name:               b.Name(),
		CoordinateSystem:   b.CoordinateSystem(),
		ColorModel:         ss.ColorModel(),
		SourceType:         b.SourceType(),
		Wavelengths:        ss.Wavelengths(),
		NumSamples:         ss.NumSamples(),
		Isotropic:          ss.IsIsotropic(),
		OneSide:            ss.IsOneSide(),
		HasSpecularOffsets: b.HasSpecularOffsets(),
	}

	for axis := range info.Axes {
		angles := ss.Angles(axis)
		info.Axes[axis] = AxisInfo{
			Name:          b.CoordinateSystem().AngleName(axis),
			Count:         len(angles),
			Min:           angles[0],
			Max:           angles[len(angles)-1],
			EqualInterval: ss.IsEqualInterval(axis),
		}
	}

	info.MinValue = math.Inf(1)
	info.MaxValue = math.Inf(-1)
	var sum float64
	var count int
	for _, v := range ss.SpectraData() {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			info.NonFinite++
			continue
		}
		info.MinValue = math.Min(info.MinValue, f)
		info.MaxValue = math.Max(info.MaxValue, f)
		sum += f
		count++
	}
	if count > 0 {
		info.MeanValue = sum / float64(count)
	} else {
		info.MinValue, info.MaxValue = 0, 0
	}

	if r, err := bsdf.Reflectance(b, 0, 0); err == nil {
		info.Reflectance = r
	}
	return info
}
