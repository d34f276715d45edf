package bsdf

import (
	"fmt"
	"math"
)

// CoordinateSystem is the angular parameterization of a Brdf's four axes.
type CoordinateSystem int

// Supported coordinate systems.
const (
	// Spherical uses (inTheta, inPhi, outTheta, outPhi).
	Spherical CoordinateSystem = iota + 1
	// Specular uses (inTheta, inPhi, specTheta, specPhi). The outgoing
	// direction is measured around the mirror direction of the incoming one.
	Specular
	// HalfDifference uses (halfTheta, halfPhi, diffTheta, diffPhi).
	HalfDifference
)

const (
	twoPi  = 2 * math.Pi
	halfPi = math.Pi / 2
)

type coordFuncs struct {
	name      string
	angles    [4]string
	maxAngles [4]float64
	toXYZ     func(a0, a1, a2, a3 float64) (in, out Vec3)
	fromXYZ   func(in, out Vec3) (a0, a1, a2, a3 float64)
}

var coordTable = [...]coordFuncs{
	Spherical: {
		name:      "spherical",
		angles:    [4]string{"inTheta", "inPhi", "outTheta", "outPhi"},
		maxAngles: [4]float64{halfPi, twoPi, halfPi, twoPi},
		toXYZ: func(a0, a1, a2, a3 float64) (Vec3, Vec3) {
			return SphericalToXYZ(a0, a1), SphericalToXYZ(a2, a3)
		},
		fromXYZ: func(in, out Vec3) (a0, a1, a2, a3 float64) {
			a0, a1 = SphericalFromXYZ(in)
			a2, a3 = SphericalFromXYZ(out)
			return
		},
	},
	Specular: {
		name:      "specular",
		angles:    [4]string{"inTheta", "inPhi", "specTheta", "specPhi"},
		maxAngles: [4]float64{halfPi, twoPi, math.Pi, twoPi},
		toXYZ: func(a0, a1, a2, a3 float64) (Vec3, Vec3) {
			return SpecularToXYZ(a0, a1, a2, a3, 0)
		},
		fromXYZ: func(in, out Vec3) (a0, a1, a2, a3 float64) {
			return SpecularFromXYZ(in, out, 0)
		},
	},
	HalfDifference: {
		name:      "half-difference",
		angles:    [4]string{"halfTheta", "halfPhi", "diffTheta", "diffPhi"},
		maxAngles: [4]float64{halfPi, twoPi, halfPi, twoPi},
		toXYZ:     halfDiffToXYZ,
		fromXYZ:   halfDiffFromXYZ,
	},
}

func (c CoordinateSystem) funcs() *coordFuncs {
	if !c.Valid() {
		panic("bsdf: invalid coordinate system")
	}
	return &coordTable[c]
}

// Valid reports whether c is a known coordinate system.
func (c CoordinateSystem) Valid() bool {
	return c >= Spherical && int(c) < len(coordTable)
}

func (c CoordinateSystem) String() string {
	if !c.Valid() {
		return "invalid"
	}
	return coordTable[c].name
}

// ParseCoordinateSystem returns the CoordinateSystem whose String is name.
func ParseCoordinateSystem(name string) (CoordinateSystem, error) {
	for c := Spherical; c.Valid(); c++ {
		if coordTable[c].name == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedCoordinateSystem, name)
}

// ToXYZ maps four angles to incoming and outgoing unit directions.
func (c CoordinateSystem) ToXYZ(a0, a1, a2, a3 float64) (in, out Vec3) {
	return c.funcs().toXYZ(a0, a1, a2, a3)
}

// FromXYZ maps a direction pair to four angles. Directions are normalized
// first and azimuths are returned in [0, 2π).
func (c CoordinateSystem) FromXYZ(in, out Vec3) (a0, a1, a2, a3 float64) {
	return c.funcs().fromXYZ(in.Normalize(), out.Normalize())
}

// MaxAngle returns the largest valid angle of the given axis.
func (c CoordinateSystem) MaxAngle(axis int) float64 {
	return c.funcs().maxAngles[axis]
}

// AngleName returns the role of the given axis, e.g. "inTheta".
func (c CoordinateSystem) AngleName(axis int) string {
	return c.funcs().angles[axis]
}

// SphericalToXYZ returns the unit vector with polar angle theta and
// azimuth phi.
func SphericalToXYZ(theta, phi float64) Vec3 {
	sinTheta := math.Sin(theta)
	return Vec3{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: math.Cos(theta),
	}
}

// SphericalFromXYZ returns the polar angle and azimuth of a unit vector.
func SphericalFromXYZ(dir Vec3) (theta, phi float64) {
	z := math.Max(-1, math.Min(1, dir.Z))
	theta = math.Acos(z)
	phi = wrapAngle(math.Atan2(dir.Y, dir.X))
	return theta, phi
}

// SpecularToXYZ maps specular-centered angles to a direction pair. The
// lobe is centered on the direction with polar angle inTheta+offset on the
// mirror side of the incoming direction.
func SpecularToXYZ(inTheta, inPhi, specTheta, specPhi, offset float64) (in, out Vec3) {
	in = SphericalToXYZ(inTheta, inPhi)
	local := SphericalToXYZ(specTheta, specPhi)
	out = rotateZ(rotateY(local, inTheta+offset), inPhi+math.Pi)
	return in, out
}

// SpecularFromXYZ is the inverse of SpecularToXYZ.
func SpecularFromXYZ(in, out Vec3, offset float64) (inTheta, inPhi, specTheta, specPhi float64) {
	inTheta, inPhi = SphericalFromXYZ(in)
	local := rotateY(rotateZ(out, -(inPhi + math.Pi)), -(inTheta + offset))
	specTheta, specPhi = SphericalFromXYZ(local)
	return
}

func halfDiffToXYZ(halfTheta, halfPhi, diffTheta, diffPhi float64) (in, out Vec3) {
	diff := SphericalToXYZ(diffTheta, diffPhi)
	in = rotateZ(rotateY(diff, halfTheta), halfPhi)
	half := SphericalToXYZ(halfTheta, halfPhi)
	out = half.Multiply(2 * half.Dot(in)).Subtract(in)
	return in, out
}

func halfDiffFromXYZ(in, out Vec3) (halfTheta, halfPhi, diffTheta, diffPhi float64) {
	half := in.Add(out).Normalize()
	if half.Length() == 0 {
		half = Vec3{0, 0, 1}
	}
	halfTheta, halfPhi = SphericalFromXYZ(half)
	diff := rotateY(rotateZ(in, -halfPhi), -halfTheta)
	diffTheta, diffPhi = SphericalFromXYZ(diff)
	return
}

// rotateY rotates v by angle around the Y axis; +angle tilts +Z towards +X.
func rotateY(v Vec3, angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: c*v.X + s*v.Z,
		Y: v.Y,
		Z: -s*v.X + c*v.Z,
	}
}

// rotateZ rotates v by angle around the Z axis.
func rotateZ(v Vec3, angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: c*v.X - s*v.Y,
		Y: s*v.X + c*v.Y,
		Z: v.Z,
	}
}

// wrapAngle maps an azimuth into [0, 2π).
func wrapAngle(phi float64) float64 {
	phi = math.Mod(phi, twoPi)
	if phi < 0 {
		phi += twoPi
	}
	if phi >= twoPi {
		phi = 0
	}
	return phi
}
