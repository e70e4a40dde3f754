// Package layout computes deterministic particle placements for the atom model:
// golden-angle packing of nucleons on a sphere and even angular spacing of
// electrons on a shell ring.
package layout

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// GoldenAngle is the angular increment of the Fibonacci sphere spiral, π(3-√5).
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// ErrNegativeCount is returned when a particle count is below zero.
var ErrNegativeCount = errors.New("layout: negative particle count")

// NucleonKind labels a nucleon by its position in the generation order.
type NucleonKind uint8

const (
	Proton NucleonKind = iota
	Neutron
)

func (k NucleonKind) String() string {
	switch k {
	case Proton:
		return "proton"
	case Neutron:
		return "neutron"
	}
	return fmt.Sprintf("NucleonKind(%d)", k)
}

// Nucleon is a placed nucleus particle.
type Nucleon struct {
	Index int
	Kind  NucleonKind
	Pos   r3.Vec
}

// Nucleus places protons+neutrons on a sphere of radius scale using the
// golden-angle spiral. The first protons indices are protons, the rest neutrons.
//
// A single particle sits on the +Y pole so that every nucleon stays at
// distance scale from the origin.
func Nucleus(protons, neutrons int, scale float64) ([]Nucleon, error) {
	if protons < 0 || neutrons < 0 {
		return nil, fmt.Errorf("%w: protons=%d neutrons=%d", ErrNegativeCount, protons, neutrons)
	}
	total := protons + neutrons
	out := make([]Nucleon, 0, total)
	for i := 0; i < total; i++ {
		kind := Neutron
		if i < protons {
			kind = Proton
		}
		out = append(out, Nucleon{
			Index: i,
			Kind:  kind,
			Pos:   r3.Scale(scale, FibonacciPoint(i, total)),
		})
	}
	return out, nil
}

// FibonacciPoint returns point i of n on the unit sphere.
//
//	y = 1 - (i/(n-1))*2, r = sqrt(1-y²), θ = i*GoldenAngle
func FibonacciPoint(i, n int) r3.Vec {
	t := 0.0
	if n > 1 {
		t = float64(i) / float64(n-1)
	}
	y := 1 - t*2
	radius := math.Sqrt(math.Max(0, 1-y*y))
	theta := GoldenAngle * float64(i)
	return r3.Vec{
		X: math.Cos(theta) * radius,
		Y: y,
		Z: math.Sin(theta) * radius,
	}
}

// Ring places count electrons evenly on a circle of the given radius in the
// local XY plane. The ring's rotation axis is local Z.
func Ring(count int, radius float64) ([]r3.Vec, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: electrons=%d", ErrNegativeCount, count)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("layout: shell radius must be positive, got %f", radius)
	}
	out := make([]r3.Vec, count)
	for i := range out {
		out[i] = RingPoint(RingAngle(i, count), radius)
	}
	return out, nil
}

// RingAngle is the base angle of electron i of count, i*(2π/count).
func RingAngle(i, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(i) * (2 * math.Pi / float64(count))
}

// RingPoint returns the point at angle on a circle of radius in the XY plane.
func RingPoint(angle, radius float64) r3.Vec {
	return r3.Vec{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius}
}

// DistanceFromAxis returns the distance of p from the line through the origin
// along axis.
func DistanceFromAxis(p, axis r3.Vec) float64 {
	u := r3.Unit(axis)
	along := r3.Scale(r3.Dot(p, u), u)
	return r3.Norm(r3.Sub(p, along))
}
