package model

import (
	"math"
	"testing"

	"github.com/mrjoshuak/go-bsdf/bsdf"
)

func dir(theta, phi float64) bsdf.Vec3 {
	return bsdf.SphericalToXYZ(theta, phi)
}

func closeVec(a, b bsdf.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestLambertian_Constant(t *testing.T) {
	albedo := bsdf.NewVec3(0.5, 0.7, 0.9)
	l := NewLambertian(albedo)
	want := albedo.Multiply(1 / math.Pi)

	for _, out := range []bsdf.Vec3{dir(0, 0), dir(0.5, 1), dir(1.4, 4)} {
		if got := l.Evaluate(dir(0.3, 0), out); !closeVec(got, want, 1e-12) {
			t.Errorf("Evaluate(%v) = %v, want %v", out, got, want)
		}
	}

	below := bsdf.NewVec3(0, 0, -1)
	if got := l.Evaluate(dir(0.3, 0), below); got != (bsdf.Vec3{}) {
		t.Errorf("Evaluate below surface = %v, want zero", got)
	}
}

// Tabulating a Lambertian and integrating it gives back its albedo.
func TestLambertian_Reflectance(t *testing.T) {
	b := bsdf.NewBrdf(bsdf.Spherical, 4, 1, 91, 37, bsdf.RGB, 0)
	if err := bsdf.SetupTabularBrdf(NewLambertian(bsdf.NewVec3(0.2, 0.5, 0.8)), b, bsdf.BRDFData, 10); err != nil {
		t.Fatal(err)
	}

	r, err := bsdf.Reflectance(b, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{0.2, 0.5, 0.8} {
		if math.Abs(r[i]-want) > 1e-3 {
			t.Errorf("channel %d reflectance = %v, want %v", i, r[i], want)
		}
	}
}

func TestLambertianTransmission_Sides(t *testing.T) {
	l := NewLambertianTransmission(bsdf.NewVec3(1, 1, 1))
	in := dir(0.3, 0)

	if got := l.Evaluate(in, dir(0.5, 1)); got != (bsdf.Vec3{}) {
		t.Errorf("same side = %v, want zero", got)
	}

	out := dir(0.5, 1)
	out.Z = -out.Z
	if got := l.Evaluate(in, out); math.Abs(got.X-1/math.Pi) > 1e-12 {
		t.Errorf("opposite side = %v, want 1/π", got)
	}
}

func TestSpecularModels(t *testing.T) {
	models := []struct {
		name  string
		model bsdf.ReflectanceModel
	}{
		{"ggx", NewGGX(bsdf.NewVec3(1, 1, 1), 0.2, 1.5)},
		{"blinn-phong", NewBlinnPhong(bsdf.NewVec3(1, 1, 1), 50)},
	}

	in := dir(0.6, 0.4)
	mirror := bsdf.NewVec3(-in.X, -in.Y, in.Z)
	off := dir(0.2, 2.5)

	for _, tt := range models {
		t.Run(tt.name, func(t *testing.T) {
			peak := tt.model.Evaluate(in, mirror)
			side := tt.model.Evaluate(in, off)
			if !(peak.X > side.X) {
				t.Errorf("mirror value %v should exceed off-specular value %v", peak.X, side.X)
			}

			a, b := tt.model.Evaluate(in, off), tt.model.Evaluate(off, in)
			if !closeVec(a, b, 1e-9*math.Max(1, a.X)) {
				t.Errorf("not reciprocal: %v vs %v", a, b)
			}

			if got := tt.model.Evaluate(in, bsdf.NewVec3(0, 0, -1)); got != (bsdf.Vec3{}) {
				t.Errorf("below surface = %v, want zero", got)
			}
		})
	}
}

func TestGGX_ClampsRoughness(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, minRoughness},
		{0.3, 0.3},
		{4, 1},
	}

	for _, tt := range tests {
		if got := NewGGX(bsdf.Vec3{}, tt.in, 1.5).Roughness; got != tt.want {
			t.Errorf("NewGGX(roughness %v).Roughness = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSchlickFresnel(t *testing.T) {
	if got := schlickFresnel(1, 1.5); math.Abs(got-0.04) > 1e-12 {
		t.Errorf("normal incidence = %v, want 0.04", got)
	}
	if got := schlickFresnel(0, 1.5); math.Abs(got-1) > 1e-12 {
		t.Errorf("grazing incidence = %v, want 1", got)
	}
}
