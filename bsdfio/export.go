package bsdfio

import (
	"fmt"
	"io"
	"os"

	"github.com/mrjoshuak/go-bsdf/bsdf"
)

// Export validates b, converts it to specular coordinates, arranges it
// for rendering and writes it as DDR. Nothing is written if b is invalid.
func Export(w io.Writer, b *bsdf.Brdf, dataType bsdf.DataType) error {
	report := b.Samples().Validate()
	if !report.Valid {
		return fmt.Errorf("%w: %d problems found", bsdf.ErrInvalidData, len(report.Invalid()))
	}

	spec, err := bsdf.Convert(b)
	if err != nil {
		return err
	}
	arranged, err := bsdf.Arrange(spec, dataType)
	if err != nil {
		return err
	}
	return WriteDDR(w, arranged)
}

// ExportFile exports b to a new DDR file at path.
func ExportFile(path string, b *bsdf.Brdf, dataType bsdf.DataType) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Export(f, b, dataType); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
