package layout

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Shell is one electron shell of the atom.
type Shell struct {
	Index     int
	Radius    float64
	Electrons int
	AngVel    float64 // radians per second
	TiltX     float64 // plane tilt about X, radians
	TiltZ     float64 // plane tilt about Z, radians
}

// ShellParams describes how shell geometry is derived from the shell index.
type ShellParams struct {
	Capacities   []int
	BaseRadius   float64
	Spacing      float64
	BaseSpeed    float64
	SpeedFalloff float64
	Alternate    bool
	Tilts        [][2]float64 // degrees, cycled
}

// Fill distributes electrons over shells in Bohr order, each shell taking up
// to its capacity. Electrons beyond the listed capacities go to the last shell.
func Fill(electrons int, capacities []int) ([]int, error) {
	if electrons < 0 {
		return nil, fmt.Errorf("%w: electrons=%d", ErrNegativeCount, electrons)
	}
	if len(capacities) == 0 {
		return nil, fmt.Errorf("layout: no shell capacities")
	}
	var out []int
	left := electrons
	for _, c := range capacities {
		if left == 0 {
			break
		}
		n := min(c, left)
		out = append(out, n)
		left -= n
	}
	if left > 0 {
		out[len(out)-1] += left
	}
	return out, nil
}

// Shells derives the shells for an atom with the given electron count.
func Shells(electrons int, p ShellParams) ([]Shell, error) {
	counts, err := Fill(electrons, p.Capacities)
	if err != nil {
		return nil, err
	}
	out := make([]Shell, len(counts))
	for i, n := range counts {
		speed := p.BaseSpeed * math.Pow(p.SpeedFalloff, float64(i))
		if p.Alternate && i%2 == 1 {
			speed = -speed
		}
		sh := Shell{
			Index:     i,
			Radius:    p.BaseRadius + float64(i)*p.Spacing,
			Electrons: n,
			AngVel:    speed,
		}
		if len(p.Tilts) > 0 {
			t := p.Tilts[i%len(p.Tilts)]
			sh.TiltX = t[0] * math.Pi / 180
			sh.TiltZ = t[1] * math.Pi / 180
		}
		out[i] = sh
	}
	return out, nil
}

// Orientation returns the rotation taking the shell's local frame to the atom frame.
func (s Shell) Orientation() r3.Rotation {
	rx := r3.NewRotation(s.TiltX, r3.Vec{X: 1})
	rz := r3.NewRotation(s.TiltZ, r3.Vec{Z: 1})
	// X tilt is applied first, then Z
	return r3.Rotation(quat.Mul(quat.Number(rz), quat.Number(rx)))
}

// Axis is the shell's rotation axis in the atom frame.
func (s Shell) Axis() r3.Vec {
	return s.Orientation().Rotate(r3.Vec{Z: 1})
}

// ElectronPosition returns the atom-frame position of an electron with base
// angle base after the shell has turned by spin radians.
func (s Shell) ElectronPosition(base, spin float64) r3.Vec {
	local := RingPoint(base+spin, s.Radius)
	return s.Orientation().Rotate(local)
}
