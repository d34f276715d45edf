// Package bsdfio reads and writes tabular BSDF data.
//
// Two formats are supported:
//
//   - DDR, the text format read by common renderers. It holds specular
//     coordinate data only; Export converts and arranges any Brdf first.
//   - A binary grid format that stores a Brdf exactly, in any coordinate
//     system, with an optionally compressed spectra block.
//
// Writing a grid and reading it back:
//
//	var buf bytes.Buffer
//	if err := bsdfio.WriteGrid(&buf, b, bsdfio.DefaultWriteOptions()); err != nil {
//		return err
//	}
//	b2, err := bsdfio.ReadGrid(&buf)
package bsdfio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mrjoshuak/go-bsdf/bsdf"
	"github.com/mrjoshuak/go-bsdf/compression"
	"github.com/mrjoshuak/go-bsdf/internal/log"
	"github.com/mrjoshuak/go-bsdf/internal/xdr"
)

var logger = log.New("bsdfio")

// Errors returned when reading grid files.
var (
	ErrBadMagic           = errors.New("bsdfio: not a BSDF grid file")
	ErrUnsupportedVersion = errors.New("bsdfio: unsupported grid file version")
	ErrCorrupt            = errors.New("bsdfio: corrupt grid file")
)

// MagicNumber starts every grid file.
var MagicNumber = []byte("BSDG")

// GridVersion is the version written by WriteGrid.
const GridVersion = 1

// Limits applied when reading, so that a corrupt header cannot request
// huge allocations.
const (
	maxAxisSamples = 1 << 16
	maxWavelengths = 1 << 12
	maxSpectraSize = 1<<31 - 1

	// maxExpansion bounds the ratio of raw to stored spectra size. Deflate
	// cannot exceed 1032:1 and RLE 64:1.
	maxExpansion = 1032
)

// WriteOptions controls WriteGrid.
type WriteOptions struct {
	Compression compression.Method
	Level       compression.Level
}

// DefaultWriteOptions returns shuffled zlib at the default level.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Compression: compression.MethodZlibShuffle,
		Level:       compression.LevelDefault,
	}
}

// WriteGrid writes b in the binary grid format.
//
// Layout, little-endian:
//
//	magic "BSDG", version uint32
//	coordinate system, source type, color model, compression: uint8 each
//	name: length-prefixed string
//	4 axes: length-prefixed float64 arrays
//	wavelengths: length-prefixed float32 array
//	specular offsets: uint8 flag, then a float64 array if set
//	spectra: raw size uint32, stored size uint32, stored bytes
func WriteGrid(w io.Writer, b *bsdf.Brdf, opts WriteOptions) error {
	ss := b.Samples()

	hw := xdr.NewWriter(256)
	hw.WriteBytes(MagicNumber)
	hw.WriteUint32(GridVersion)
	hw.WriteUint8(uint8(b.CoordinateSystem()))
	hw.WriteUint8(uint8(b.SourceType()))
	hw.WriteUint8(uint8(ss.ColorModel()))
	hw.WriteUint8(uint8(opts.Compression))
	hw.WriteString(b.Name())
	for axis := 0; axis < bsdf.NumAxes; axis++ {
		hw.WriteFloat64s(ss.Angles(axis))
	}
	hw.WriteFloat32s(ss.Wavelengths())
	if b.HasSpecularOffsets() {
		hw.WriteUint8(1)
		hw.WriteFloat64s(b.SpecularOffsets())
	} else {
		hw.WriteUint8(0)
	}

	sw := xdr.NewWriter(4 * len(ss.SpectraData()))
	sw.WriteFloat32sRaw(ss.SpectraData())
	raw := sw.Bytes()
	if len(raw) > maxSpectraSize {
		return fmt.Errorf("bsdfio: spectra block of %d bytes is too large", len(raw))
	}
	stored, err := compression.Compress(raw, opts.Compression, opts.Level)
	if err != nil {
		return fmt.Errorf("bsdfio: compressing spectra: %w", err)
	}
	hw.WriteUint32(uint32(len(raw)))
	hw.WriteUint32(uint32(len(stored)))

	if _, err := w.Write(hw.Bytes()); err != nil {
		return err
	}
	if _, err := w.Write(stored); err != nil {
		return err
	}

	logger.Infof("wrote %v grid: %d cells, spectra %d -> %d bytes (%v)",
		b.CoordinateSystem(), ss.NumSamples(), len(raw), len(stored), opts.Compression)
	return nil
}

// WriteGridFile writes b to a new file at path.
func WriteGridFile(path string, b *bsdf.Brdf, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteGrid(f, b, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadGrid reads a Brdf written by WriteGrid.
func ReadGrid(r io.Reader) (*bsdf.Brdf, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeGrid(data)
}

// ReadGridFile reads a grid file from the filesystem.
func ReadGridFile(path string) (*bsdf.Brdf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeGrid(data)
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}

func decodeGrid(data []byte) (*bsdf.Brdf, error) {
	if len(data) < len(MagicNumber) || !bytes.Equal(data[:len(MagicNumber)], MagicNumber) {
		return nil, ErrBadMagic
	}
	r := xdr.NewReader(data[len(MagicNumber):])

	version, err := r.ReadUint32()
	if err != nil {
		return nil, corrupt("version: %v", err)
	}
	if version != GridVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var tags [4]uint8
	for i := range tags {
		if tags[i], err = r.ReadUint8(); err != nil {
			return nil, corrupt("header: %v", err)
		}
	}
	coords := bsdf.CoordinateSystem(tags[0])
	source := bsdf.SourceType(tags[1])
	colorModel := bsdf.ColorModel(tags[2])
	method := compression.Method(tags[3])
	if !coords.Valid() {
		return nil, corrupt("coordinate system %d", tags[0])
	}
	if source > bsdf.SourceEdited {
		return nil, corrupt("source type %d", tags[1])
	}
	if colorModel > bsdf.Spectral {
		return nil, corrupt("color model %d", tags[2])
	}

	name, err := r.ReadString()
	if err != nil {
		return nil, corrupt("name: %v", err)
	}

	var angles [bsdf.NumAxes][]float64
	cells := 1
	for axis := range angles {
		if angles[axis], err = r.ReadFloat64s(maxAxisSamples); err != nil {
			return nil, corrupt("axis %d: %v", axis, err)
		}
		if len(angles[axis]) == 0 {
			return nil, corrupt("axis %d is empty", axis)
		}
		cells *= len(angles[axis])
		if cells > maxSpectraSize {
			return nil, corrupt("%d cells", cells)
		}
	}

	wavelengths, err := r.ReadFloat32s(maxWavelengths)
	if err != nil {
		return nil, corrupt("wavelengths: %v", err)
	}
	if n := len(wavelengths); n == 0 ||
		(colorModel == bsdf.Monochromatic && n != 1) ||
		((colorModel == bsdf.RGB || colorModel == bsdf.XYZ) && n != 3) {
		return nil, corrupt("%d wavelengths for %v data", n, colorModel)
	}

	hasOffsets, err := r.ReadUint8()
	if err != nil {
		return nil, corrupt("offset flag: %v", err)
	}
	var offsets []float64
	if hasOffsets != 0 {
		if coords != bsdf.Specular {
			return nil, corrupt("specular offsets in %v data", coords)
		}
		if offsets, err = r.ReadFloat64s(maxAxisSamples); err != nil {
			return nil, corrupt("specular offsets: %v", err)
		}
		if len(offsets) != len(angles[0]) {
			return nil, corrupt("%d specular offsets for %d incoming angles", len(offsets), len(angles[0]))
		}
	}

	rawSize, err := r.ReadUint32()
	if err != nil {
		return nil, corrupt("spectra size: %v", err)
	}
	storedSize, err := r.ReadUint32()
	if err != nil {
		return nil, corrupt("spectra size: %v", err)
	}
	want := int64(cells) * int64(len(wavelengths)) * 4
	if want > maxSpectraSize || int64(rawSize) != want {
		return nil, corrupt("spectra size %d, want %d", rawSize, want)
	}
	if int64(rawSize) > int64(storedSize)*maxExpansion+64 {
		return nil, corrupt("spectra size %d from %d stored bytes", rawSize, storedSize)
	}
	stored, err := r.ReadBytes(int(storedSize))
	if err != nil {
		return nil, corrupt("spectra: %v", err)
	}
	raw, err := compression.Decompress(stored, method, int(rawSize))
	if err != nil {
		return nil, corrupt("spectra: %v", err)
	}

	b := bsdf.NewBrdfWithAngles(coords, angles, colorModel, len(wavelengths))
	b.SetName(name)
	b.SetSourceType(source)
	b.Samples().SetWavelengths(wavelengths)
	if offsets != nil {
		b.SetSpecularOffsets(offsets)
	}
	if err := xdr.NewReader(raw).ReadFloat32sInto(b.Samples().SpectraData()); err != nil {
		return nil, corrupt("spectra: %v", err)
	}

	if r.Len() != 0 {
		logger.Warningf("ignoring %d trailing bytes", r.Len())
	}
	logger.Debugf("read %v grid %q: %d cells", coords, name, cells)
	return b, nil
}
