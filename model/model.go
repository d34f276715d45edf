// Package model provides analytic reflectance models that can be tabulated
// with bsdf.SetupTabularBrdf.
//
// Every model implements bsdf.ReflectanceModel. Directions are unit vectors
// in the local surface frame with +Z as the normal, both pointing away from
// the surface. Returned values are per-channel BSDF values in 1/sr.
package model

import (
	"math"

	"github.com/mrjoshuak/go-bsdf/bsdf"
)

// Lambertian is a perfectly diffuse reflector.
type Lambertian struct {
	Color bsdf.Vec3 // hemispherical reflectance
}

// NewLambertian creates a Lambertian reflector.
func NewLambertian(color bsdf.Vec3) *Lambertian {
	return &Lambertian{Color: color}
}

// Evaluate returns Color/π for directions above the surface.
func (l *Lambertian) Evaluate(in, out bsdf.Vec3) bsdf.Vec3 {
	if in.Z <= 0 || out.Z <= 0 {
		return bsdf.Vec3{}
	}
	return l.Color.Multiply(1 / math.Pi)
}

// LambertianTransmission scatters light diffusely through the surface.
type LambertianTransmission struct {
	Color bsdf.Vec3 // hemispherical transmittance
}

// NewLambertianTransmission creates a diffuse transmitter.
func NewLambertianTransmission(color bsdf.Vec3) *LambertianTransmission {
	return &LambertianTransmission{Color: color}
}

// Evaluate returns Color/π when in and out lie on opposite sides.
func (l *LambertianTransmission) Evaluate(in, out bsdf.Vec3) bsdf.Vec3 {
	if in.Z*out.Z >= 0 {
		return bsdf.Vec3{}
	}
	return l.Color.Multiply(1 / math.Pi)
}

// BlinnPhong is the energy-normalized Blinn-Phong specular lobe.
type BlinnPhong struct {
	Color     bsdf.Vec3
	Shininess float64
}

// NewBlinnPhong creates a Blinn-Phong lobe. Negative shininess is treated
// as 0.
func NewBlinnPhong(color bsdf.Vec3, shininess float64) *BlinnPhong {
	return &BlinnPhong{Color: color, Shininess: math.Max(shininess, 0)}
}

// Evaluate returns Color·(n+8)/(8π)·cos^n of the half-vector angle.
func (m *BlinnPhong) Evaluate(in, out bsdf.Vec3) bsdf.Vec3 {
	if in.Z <= 0 || out.Z <= 0 {
		return bsdf.Vec3{}
	}
	h := in.Add(out).Normalize()
	norm := (m.Shininess + 8) / (8 * math.Pi)
	return m.Color.Multiply(norm * math.Pow(math.Max(h.Z, 0), m.Shininess))
}

// GGX is a Cook-Torrance microfacet reflector with the GGX (Trowbridge-Reitz)
// distribution, Smith masking and Schlick's Fresnel approximation.
type GGX struct {
	Color bsdf.Vec3

	// Roughness is the distribution width α, clamped to [0.001, 1].
	Roughness float64

	// RefractiveIndex sets the reflectance at normal incidence.
	RefractiveIndex float64
}

const minRoughness = 0.001

// NewGGX creates a GGX reflector.
func NewGGX(color bsdf.Vec3, roughness, refractiveIndex float64) *GGX {
	return &GGX{
		Color:           color,
		Roughness:       math.Max(minRoughness, math.Min(1, roughness)),
		RefractiveIndex: refractiveIndex,
	}
}

// Evaluate returns the microfacet BRDF for directions above the surface.
func (m *GGX) Evaluate(in, out bsdf.Vec3) bsdf.Vec3 {
	if in.Z <= 0 || out.Z <= 0 {
		return bsdf.Vec3{}
	}

	h := in.Add(out).Normalize()
	a2 := m.Roughness * m.Roughness

	d := ggxDistribution(h.Z, a2)
	g := smithG1(in.Z, a2) * smithG1(out.Z, a2)
	f := schlickFresnel(in.Dot(h), m.RefractiveIndex)

	return m.Color.Multiply(d * g * f / (4 * in.Z * out.Z))
}

func ggxDistribution(cosH, a2 float64) float64 {
	if cosH <= 0 {
		return 0
	}
	c2 := cosH * cosH
	t := c2*(a2-1) + 1
	return a2 / (math.Pi * t * t)
}

func smithG1(cosTheta, a2 float64) float64 {
	c2 := cosTheta * cosTheta
	return 2 * cosTheta / (cosTheta + math.Sqrt(a2+(1-a2)*c2))
}

// schlickFresnel approximates the unpolarized Fresnel reflectance of a
// dielectric with index n in air.
func schlickFresnel(cosTheta, n float64) float64 {
	f0 := (n - 1) / (n + 1)
	f0 *= f0
	return f0 + (1-f0)*math.Pow(1-math.Max(0, math.Min(1, cosTheta)), 5)
}
