package bsdfio

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mrjoshuak/go-bsdf/bsdf"
)

func TestWriteDDR(t *testing.T) {
	angles := [bsdf.NumAxes][]float64{{0}, {0}, {0, math.Pi / 2}, {0, math.Pi}}
	b := bsdf.NewBrdfWithAngles(bsdf.Specular, angles, bsdf.Monochromatic, 0)
	ss := b.Samples()
	for i3 := 0; i3 < 2; i3++ {
		ss.SetSpectrum(0, 0, 1, i3, bsdf.Spectrum{1})
	}

	var buf bytes.Buffer
	if err := WriteDDR(&buf, b); err != nil {
		t.Fatalf("WriteDDR() error = %v", err)
	}

	want := strings.Join([]string{
		";; This file is generated by go-bsdf.",
		"",
		"Source Measured",
		"TypeSym ASymmetrical",
		"TypeColorModel BW",
		"TypeData Luminance Absolute",
		"sigma 1",
		" 0",
		"phi 2",
		" 0 180",
		"theta 2",
		" 0 90",
		"bw",
		" kbdf",
		" 1.0",
		" def",
		";; Psi = 0",
		";; Sigma = 0",
		" 0 3.14159",
		" 0 3.14159",
		" enddef",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("DDR mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDDRHeader(t *testing.T) {
	tests := []struct {
		name     string
		n1       int
		model    bsdf.ColorModel
		wls      []float32
		source   bsdf.SourceType
		contains []string
		excludes []string
	}{
		{
			name:     "rgb isotropic",
			n1:       1,
			model:    bsdf.RGB,
			source:   bsdf.SourceGenerated,
			contains: []string{"Source Generated\n", "TypeColorModel RGB\n", "red\n", "gre\n", "blu\n", ";; Psi = 0\n"},
			excludes: []string{"psi", "4D"},
		},
		{
			name:     "xyz written as rgb",
			n1:       1,
			model:    bsdf.XYZ,
			contains: []string{"TypeColorModel RGB\n", "red\n", "blu\n"},
		},
		{
			name:     "spectral anisotropic",
			n1:       2,
			model:    bsdf.Spectral,
			wls:      []float32{450, 550},
			source:   bsdf.SourceEdited,
			contains: []string{"Source Edited\n", "TypeSym ASymmetrical 4D\n", "TypeColorModel spectral 2\n", "psi 2\n", ";; Psi = 360\n", "wl 450\n", "wl 550\n"},
		},
		{
			name:     "single wavelength spectral as bw",
			n1:       1,
			model:    bsdf.Spectral,
			wls:      []float32{550},
			contains: []string{"TypeColorModel BW\n", "bw\n kbdf\n"},
			excludes: []string{"spectral", "wl 550"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bsdf.NewBrdf(bsdf.Specular, 2, tt.n1, 3, 3, tt.model, len(tt.wls))
			b.SetSourceType(tt.source)
			if tt.wls != nil {
				b.Samples().SetWavelengths(tt.wls)
			}

			var buf bytes.Buffer
			if err := WriteDDR(&buf, b); err != nil {
				t.Fatalf("WriteDDR() error = %v", err)
			}
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output does not contain %q", s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out, s) {
					t.Errorf("output contains %q", s)
				}
			}
			if got, want := strings.Count(out, " enddef\n"), b.Samples().NumWavelengths(); got != want {
				t.Errorf("%d data blocks, want %d", got, want)
			}
		})
	}
}

func TestWriteDDRConvertsXYZ(t *testing.T) {
	angles := [bsdf.NumAxes][]float64{{0}, {0}, {0}, {0}}
	b := bsdf.NewBrdfWithAngles(bsdf.Specular, angles, bsdf.XYZ, 0)
	b.Samples().SetSpectrum(0, 0, 0, 0, bsdf.Spectrum{0, 1, 0})

	var buf bytes.Buffer
	if err := WriteDDR(&buf, b); err != nil {
		t.Fatal(err)
	}

	// Y only selects the second column of the matrix.
	for _, s := range []string{"red\n kbdf\n 1.0\n def\n;; Psi = 0\n;; Sigma = 0\n -4.82906\n", "gre\n kbdf\n 1.0\n def\n;; Psi = 0\n;; Sigma = 0\n 5.89366\n"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("output does not contain %q:\n%s", s, buf.String())
		}
	}
}

func TestWriteDDRRequiresSpecular(t *testing.T) {
	b := bsdf.NewBrdf(bsdf.Spherical, 2, 1, 3, 3, bsdf.RGB, 0)
	var buf bytes.Buffer
	err := WriteDDR(&buf, b)
	if !errors.Is(err, bsdf.ErrUnsupportedCoordinateSystem) {
		t.Errorf("WriteDDR() error = %v, want ErrUnsupportedCoordinateSystem", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes on error", buf.Len())
	}
}
