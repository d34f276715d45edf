package bsdfio

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrjoshuak/go-bsdf/bsdf"
)

func TestExport(t *testing.T) {
	b := bsdf.NewBrdf(bsdf.Spherical, 2, 1, 5, 9, bsdf.RGB, 0)
	data := b.Samples().SpectraData()
	for i := range data {
		data[i] = 0.1
	}

	var buf bytes.Buffer
	if err := Export(&buf, b, bsdf.BRDFData); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	for _, s := range []string{"TypeColorModel RGB\n", "sigma 2\n", "theta 181\n", "phi 73\n"} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q", s)
		}
	}
	if got := strings.Count(out, " enddef\n"); got != 3 {
		t.Errorf("%d data blocks, want 3", got)
	}
}

func TestExportRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name  string
		value float32
	}{
		{"nan", float32(math.NaN())},
		{"inf", float32(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bsdf.NewBrdf(bsdf.Specular, 2, 1, 3, 3, bsdf.Monochromatic, 0)
			b.Samples().SetSpectrum(1, 0, 2, 1, bsdf.Spectrum{tt.value})

			var buf bytes.Buffer
			err := Export(&buf, b, bsdf.BRDFData)
			if !errors.Is(err, bsdf.ErrInvalidData) {
				t.Errorf("Export() error = %v, want ErrInvalidData", err)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes for invalid data", buf.Len())
			}
		})
	}
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()

	b := bsdf.NewBrdf(bsdf.Specular, 2, 1, 3, 5, bsdf.Monochromatic, 0)
	path := filepath.Join(dir, "ok.ddr")
	if err := ExportFile(path, b, bsdf.BTDFData); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("Stat() = %v, %v", info, err)
	}

	b.Samples().SetSpectrum(0, 0, 0, 0, bsdf.Spectrum{float32(math.NaN())})
	bad := filepath.Join(dir, "bad.ddr")
	if err := ExportFile(bad, b, bsdf.BRDFData); err == nil {
		t.Fatal("ExportFile() should fail for invalid data")
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Errorf("failed export left a file behind: %v", err)
	}
}
