package bsdf

import (
	"errors"
	"math"
	"testing"
)

const angleEps = 1e-9

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func nearVec(a, b Vec3, eps float64) bool {
	return near(a.X, b.X, eps) && near(a.Y, b.Y, eps) && near(a.Z, b.Z, eps)
}

func TestCoordinateRoundTrip(t *testing.T) {
	tests := []struct {
		coords CoordinateSystem
		angles [4]float64
	}{
		{Spherical, [4]float64{0.4, 1.1, 0.9, 4.0}},
		{Spherical, [4]float64{1.2, 5.5, 0.2, 0.3}},
		{Specular, [4]float64{0.4, 1.0, 0.3, 2.0}},
		{Specular, [4]float64{1.3, 3.5, 2.5, 5.0}},
		{HalfDifference, [4]float64{0.3, 1.2, 0.5, 0.7}},
		{HalfDifference, [4]float64{0.1, 4.2, 1.0, 3.0}},
	}

	for _, tt := range tests {
		t.Run(tt.coords.String(), func(t *testing.T) {
			a := tt.angles
			in, out := tt.coords.ToXYZ(a[0], a[1], a[2], a[3])
			if !near(in.Length(), 1, angleEps) || !near(out.Length(), 1, angleEps) {
				t.Fatalf("directions not unit length: %v %v", in, out)
			}

			g0, g1, g2, g3 := tt.coords.FromXYZ(in, out)
			got := [4]float64{g0, g1, g2, g3}
			for axis := range got {
				if !near(got[axis], a[axis], 1e-7) {
					t.Errorf("%s = %v, want %v", tt.coords.AngleName(axis), got[axis], a[axis])
				}
			}
		})
	}
}

func TestSpecularCenterIsMirror(t *testing.T) {
	for _, inTheta := range []float64{0, 0.3, 1.0, halfPi} {
		for _, inPhi := range []float64{0, 1.0, 4.0} {
			in, out := SpecularToXYZ(inTheta, inPhi, 0, 0, 0)
			mirror := Vec3{-in.X, -in.Y, in.Z}
			if !nearVec(out, mirror, angleEps) {
				t.Errorf("(%v, %v): out = %v, want %v", inTheta, inPhi, out, mirror)
			}
		}
	}
}

func TestSpecularOffsetTiltsCenter(t *testing.T) {
	_, out := SpecularToXYZ(0.5, 1.0, 0, 0, 0.2)
	want := SphericalToXYZ(0.7, 1.0+math.Pi)
	if !nearVec(out, want, angleEps) {
		t.Errorf("out = %v, want %v", out, want)
	}

	in, out := SpecularToXYZ(0.5, 1.0, 0.4, 2.0, 0.2)
	_, _, specTheta, specPhi := SpecularFromXYZ(in, out, 0.2)
	if !near(specTheta, 0.4, 1e-7) || !near(specPhi, 2.0, 1e-7) {
		t.Errorf("SpecularFromXYZ = (%v, %v), want (0.4, 2)", specTheta, specPhi)
	}
}

func TestMaxAngles(t *testing.T) {
	tests := []struct {
		coords CoordinateSystem
		want   [4]float64
	}{
		{Spherical, [4]float64{halfPi, twoPi, halfPi, twoPi}},
		{Specular, [4]float64{halfPi, twoPi, math.Pi, twoPi}},
		{HalfDifference, [4]float64{halfPi, twoPi, halfPi, twoPi}},
	}

	for _, tt := range tests {
		for axis := 0; axis < NumAxes; axis++ {
			if got := tt.coords.MaxAngle(axis); got != tt.want[axis] {
				t.Errorf("%v.MaxAngle(%d) = %v, want %v", tt.coords, axis, got, tt.want[axis])
			}
		}
	}
}

func TestCoordinateSystemValid(t *testing.T) {
	if CoordinateSystem(0).Valid() {
		t.Error("zero value should be invalid")
	}
	if CoordinateSystem(99).Valid() {
		t.Error("out of range value should be invalid")
	}
	if got := CoordinateSystem(99).String(); got != "invalid" {
		t.Errorf("String() = %q, want invalid", got)
	}
	if got := Specular.AngleName(2); got != "specTheta" {
		t.Errorf("AngleName(2) = %q, want specTheta", got)
	}
}

func TestParseCoordinateSystem(t *testing.T) {
	for _, c := range []CoordinateSystem{Spherical, Specular, HalfDifference} {
		got, err := ParseCoordinateSystem(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCoordinateSystem(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCoordinateSystem("polar"); !errors.Is(err, ErrUnsupportedCoordinateSystem) {
		t.Errorf("ParseCoordinateSystem(polar) error = %v", err)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{-halfPi, 1.5 * math.Pi},
		{twoPi, 0},
		{twoPi + 1, 1},
	}

	for _, tt := range tests {
		if got := wrapAngle(tt.in); !near(got, tt.want, angleEps) {
			t.Errorf("wrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalize()
	if !nearVec(v, Vec3{0.6, 0, 0.8}, angleEps) {
		t.Errorf("Normalize() = %v", v)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", z)
	}
}
