package bsdfutil

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/mrjoshuak/go-bsdf/bsdf"
)

func rampBrdf() *bsdf.Brdf {
	b := bsdf.NewBrdf(bsdf.Specular, 2, 1, 16, 24, bsdf.RGB, 0)
	ss := b.Samples()
	for i2 := 0; i2 < 16; i2++ {
		for i3 := 0; i3 < 24; i3++ {
			v := float32(i2*24+i3) / (16 * 24)
			ss.SetSpectrum(1, 0, i2, i3, bsdf.Spectrum{v, 2 * v, -v})
		}
	}
	return b
}

func TestSlice(t *testing.T) {
	b := rampBrdf()

	tests := []struct {
		name   string
		opts   PreviewOptions
		x, y   int
		wantY  uint16
		bounds image.Rectangle
	}{
		{"origin", PreviewOptions{InTheta: 1}, 0, 0, 0, image.Rect(0, 0, 24, 16)},
		{"half", PreviewOptions{InTheta: 1}, 0, 8, 0x8000, image.Rect(0, 0, 24, 16)},
		{"scaled", PreviewOptions{InTheta: 1, Scale: 2}, 0, 8, 0xffff, image.Rect(0, 0, 24, 16)},
		{"clamped high", PreviewOptions{InTheta: 1, Wavelength: 1}, 0, 12, 0xffff, image.Rect(0, 0, 24, 16)},
		{"clamped low", PreviewOptions{InTheta: 1, Wavelength: 2}, 5, 5, 0, image.Rect(0, 0, 24, 16)},
		{"empty slice", PreviewOptions{InTheta: 0}, 5, 5, 0, image.Rect(0, 0, 24, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Slice(b, tt.opts)
			if err != nil {
				t.Fatalf("Slice() error = %v", err)
			}
			if img.Bounds() != tt.bounds {
				t.Errorf("Bounds() = %v, want %v", img.Bounds(), tt.bounds)
			}
			if got := img.Gray16At(tt.x, tt.y).Y; got != tt.wantY {
				t.Errorf("pixel (%d, %d) = %#x, want %#x", tt.x, tt.y, got, tt.wantY)
			}
		})
	}
}

func TestSliceIndexErrors(t *testing.T) {
	b := rampBrdf()
	for _, opts := range []PreviewOptions{
		{InTheta: 2},
		{InPhi: -1},
		{Wavelength: 3},
	} {
		if _, err := Slice(b, opts); !errors.Is(err, ErrSliceIndex) {
			t.Errorf("Slice(%+v) error = %v, want ErrSliceIndex", opts, err)
		}
	}
}

func TestNumResolutions(t *testing.T) {
	tests := []struct {
		w, h int
		want int
	}{
		{1, 1, 1},
		{2, 8, 2},
		{16, 24, 5},
		{181, 73, 6},
	}
	for _, tt := range tests {
		if got := numResolutions(image.Rect(0, 0, tt.w, tt.h)); got != tt.want {
			t.Errorf("numResolutions(%dx%d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestPreviewRoundTrip(t *testing.T) {
	b := rampBrdf()

	var buf bytes.Buffer
	if err := EncodePreview(&buf, b, PreviewOptions{InTheta: 1}); err != nil {
		t.Fatalf("EncodePreview() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("EncodePreview() wrote nothing")
	}

	img, err := DecodePreview(&buf)
	if err != nil {
		t.Fatalf("DecodePreview() error = %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(24, 16) {
		t.Errorf("decoded size = %v, want 24x16", got)
	}
}

func TestEncodePreviewIndexError(t *testing.T) {
	var buf bytes.Buffer
	err := EncodePreview(&buf, rampBrdf(), PreviewOptions{InTheta: 5})
	if !errors.Is(err, ErrSliceIndex) {
		t.Errorf("EncodePreview() error = %v, want ErrSliceIndex", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes on error", buf.Len())
	}
}

func TestDecodePreviewGarbage(t *testing.T) {
	if _, err := DecodePreview(bytes.NewReader([]byte("not a codestream"))); err == nil {
		t.Error("DecodePreview() should fail on garbage")
	}
}
