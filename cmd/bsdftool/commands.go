package main

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/mrjoshuak/go-bsdf/bsdf"
	"github.com/mrjoshuak/go-bsdf/bsdfio"
	"github.com/mrjoshuak/go-bsdf/bsdfutil"
	"github.com/mrjoshuak/go-bsdf/compression"
	"github.com/mrjoshuak/go-bsdf/model"
)

var defaultSamples = [bsdf.NumAxes]int{10, 1, 91, 73}

// modelParams holds the flags shared by all models.
type modelParams struct {
	color           bsdf.Vec3
	shininess       float64
	roughness       float64
	refractiveIndex float64
}

func newModel(name string, p modelParams) (bsdf.ReflectanceModel, error) {
	switch name {
	case "lambertian":
		return model.NewLambertian(p.color), nil
	case "transmission":
		return model.NewLambertianTransmission(p.color), nil
	case "blinn-phong":
		return model.NewBlinnPhong(p.color, p.shininess), nil
	case "ggx":
		return model.NewGGX(p.color, p.roughness, p.refractiveIndex), nil
	}
	return nil, fmt.Errorf("unknown model %q", name)
}

func sampleCounts(values []int) ([bsdf.NumAxes]int, error) {
	if len(values) == 0 {
		return defaultSamples, nil
	}
	var counts [bsdf.NumAxes]int
	if len(values) != bsdf.NumAxes {
		return counts, fmt.Errorf("expected %d sample counts, got %d", bsdf.NumAxes, len(values))
	}
	for axis, n := range values {
		if n <= 0 {
			return counts, fmt.Errorf("sample count of axis %d must be positive", axis)
		}
		counts[axis] = n
	}
	return counts, nil
}

// Tabulate an analytic model into a grid file.
func Tabulate(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing output file argument")
	}

	coords, err := bsdf.ParseCoordinateSystem(ctx.String("coords"))
	if err != nil {
		return err
	}
	counts, err := sampleCounts(ctx.IntSlice("samples"))
	if err != nil {
		return err
	}
	method, err := compression.ParseMethod(ctx.String("compression"))
	if err != nil {
		return err
	}
	m, err := newModel(ctx.String("model"), modelParams{
		color:           bsdf.NewVec3(ctx.Float64("red"), ctx.Float64("green"), ctx.Float64("blue")),
		shininess:       ctx.Float64("shininess"),
		roughness:       ctx.Float64("roughness"),
		refractiveIndex: ctx.Float64("ior"),
	})
	if err != nil {
		return err
	}

	colorModel := bsdf.RGB
	if ctx.Bool("mono") {
		colorModel = bsdf.Monochromatic
	}
	dataType := bsdf.BRDFData
	if ctx.Bool("btdf") {
		dataType = bsdf.BTDFData
	}

	b := bsdf.NewBrdf(coords, counts[0], counts[1], counts[2], counts[3], colorModel, 0)
	b.SetName(ctx.String("model"))
	b.SetSourceType(bsdf.SourceGenerated)

	logger.Noticef("tabulating %s %v on a %v grid of %d x %d x %d x %d",
		ctx.String("model"), dataType, coords, counts[0], counts[1], counts[2], counts[3])
	if err := bsdf.SetupTabularBrdf(m, b, dataType, float32(ctx.Float64("max-value"))); err != nil {
		return err
	}

	return bsdfio.WriteGridFile(ctx.Args().First(), b, bsdfio.WriteOptions{
		Compression: method,
		Level:       compression.LevelDefault,
	})
}

// Convert a grid file to DDR, or to an arranged grid file.
func Convert(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("expected input and output file arguments")
	}
	in, out := ctx.Args().Get(0), ctx.Args().Get(1)

	b, err := bsdfio.ReadGridFile(in)
	if err != nil {
		return err
	}

	dataType := bsdf.BRDFData
	if ctx.Bool("btdf") {
		dataType = bsdf.BTDFData
	}

	if !ctx.Bool("grid") {
		logger.Noticef("exporting %s to %s", in, out)
		return bsdfio.ExportFile(out, b, dataType)
	}

	if report := b.Samples().Validate(); !report.Valid {
		return fmt.Errorf("%w: %s", bsdf.ErrInvalidData, in)
	}
	spec, err := bsdf.Convert(b)
	if err != nil {
		return err
	}
	arranged, err := bsdf.Arrange(spec, dataType)
	if err != nil {
		return err
	}
	logger.Noticef("writing arranged grid to %s", out)
	return bsdfio.WriteGridFile(out, arranged, bsdfio.DefaultWriteOptions())
}

// Display grid file information.
func ShowInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing grid file argument")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		file := ctx.Args().Get(idx)
		b, err := bsdfio.ReadGridFile(file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		logger.Noticef("%s\n%s", file, formatInfo(bsdfutil.Summarize(b)))
	}
	return nil
}

func formatInfo(info *bsdfutil.Info) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "name:        %s\n", info.Name)
	fmt.Fprintf(&buf, "source:      %v\n", info.SourceType)
	fmt.Fprintf(&buf, "coordinates: %v\n", info.CoordinateSystem)
	fmt.Fprintf(&buf, "color model: %v (%d wavelengths)\n", info.ColorModel, len(info.Wavelengths))
	fmt.Fprintf(&buf, "samples:     %d (isotropic %t, one side %t)\n", info.NumSamples, info.Isotropic, info.OneSide)
	fmt.Fprintf(&buf, "values:      [%g, %g], mean %g", info.MinValue, info.MaxValue, info.MeanValue)
	if info.NonFinite > 0 {
		fmt.Fprintf(&buf, ", %d non-finite", info.NonFinite)
	}
	buf.WriteByte('\n')
	if info.Reflectance != nil {
		fmt.Fprintf(&buf, "reflectance: %s\n", formatFloats(info.Reflectance))
	}

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Axis", "Name", "Samples", "Min (deg)", "Max (deg)", "Equal interval"})
	for axis, a := range info.Axes {
		table.Append([]string{
			fmt.Sprintf("%d", axis),
			a.Name,
			fmt.Sprintf("%d", a.Count),
			fmt.Sprintf("%.2f", a.Min*180/math.Pi),
			fmt.Sprintf("%.2f", a.Max*180/math.Pi),
			fmt.Sprintf("%t", a.EqualInterval),
		})
	}
	table.Render()

	return buf.String()
}

func formatFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	return strings.Join(parts, " ")
}

// Write a slice of a grid file as a JPEG 2000 image.
func Preview(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("expected input and output file arguments")
	}
	in, out := ctx.Args().Get(0), ctx.Args().Get(1)

	b, err := bsdfio.ReadGridFile(in)
	if err != nil {
		return err
	}

	opts := bsdfutil.PreviewOptions{
		InTheta:    ctx.Int("in-theta"),
		InPhi:      ctx.Int("in-phi"),
		Wavelength: ctx.Int("wavelength"),
		Scale:      ctx.Float64("scale"),
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := bsdfutil.EncodePreview(f, b, opts); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	logger.Noticef("wrote %s", out)
	return f.Close()
}
