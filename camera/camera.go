// Package camera provides a damped orbit camera around a fixed target.
package camera

import (
	"math"

	"github.com/pthm-cable/bohr/config"
)

// polarEpsilon keeps the orbit away from the poles where the up vector flips.
const polarEpsilon = 0.01

// Camera orbits a target point on a sphere of variable radius.
// Angles follow the usual spherical convention: Polar is measured from +Y,
// Azimuth around Y starting at +Z.
type Camera struct {
	// Orbit target in world coordinates
	TargetX, TargetY, TargetZ float32

	// Spherical position relative to the target
	Azimuth, Polar, Distance float32

	// Perspective
	FOV, Near, Far float32 // FOV is vertical, in degrees
	Aspect         float32 // Drives the projection matrix

	// Viewport in window pixels
	ViewportW, ViewportH float32

	// Control tuning
	Damping                  float32
	MinDistance, MaxDistance float32
	RotateSpeed, ZoomSpeed   float32

	// Motion not yet applied, consumed gradually by Update
	pendingAzimuth, pendingPolar float32

	homeAzimuth, homePolar, homeDistance float32
}

// New creates a camera from configuration looking at the configured target.
func New(cfg config.CameraConfig, viewportW, viewportH float32) *Camera {
	c := &Camera{
		TargetX:     float32(cfg.Target[0]),
		TargetY:     float32(cfg.Target[1]),
		TargetZ:     float32(cfg.Target[2]),
		FOV:         float32(cfg.FOV),
		Near:        float32(cfg.Near),
		Far:         float32(cfg.Far),
		Damping:     float32(cfg.Damping),
		MinDistance: float32(cfg.MinDistance),
		MaxDistance: float32(cfg.MaxDistance),
		RotateSpeed: float32(cfg.RotateSpeed),
		ZoomSpeed:   float32(cfg.ZoomSpeed),
		Aspect:      1,
	}

	dx := cfg.Position[0] - cfg.Target[0]
	dy := cfg.Position[1] - cfg.Target[1]
	dz := cfg.Position[2] - cfg.Target[2]
	dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if dist > 0 {
		c.Distance = float32(dist)
		c.Polar = float32(math.Acos(clamp64(dy/dist, -1, 1)))
		c.Azimuth = float32(math.Atan2(dx, dz))
	} else {
		c.Distance = c.MinDistance
		c.Polar = math.Pi / 2
	}
	c.clampOrbit()

	c.homeAzimuth, c.homePolar, c.homeDistance = c.Azimuth, c.Polar, c.Distance
	c.Resize(viewportW, viewportH)
	return c
}

// Resize updates the viewport and the aspect ratio. A zero height is ignored.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportH <= 0 || viewportW <= 0 {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.Aspect = viewportW / viewportH
}

// Rotate queues an orbit by a mouse drag of (dx, dy) pixels.
// Dragging right turns the view left around the target.
func (c *Camera) Rotate(dx, dy float32) {
	c.pendingAzimuth -= dx * c.RotateSpeed
	c.pendingPolar -= dy * c.RotateSpeed
}

// Zoom moves the camera along its view ray. Positive steps move closer.
func (c *Camera) Zoom(steps float32) {
	if steps == 0 {
		return
	}
	c.Distance *= float32(math.Pow(float64(c.ZoomSpeed), float64(steps)))
	c.clampOrbit()
}

// Update applies a damped share of the pending orbit motion.
// Returns true if the camera moved.
func (c *Camera) Update() bool {
	if c.pendingAzimuth == 0 && c.pendingPolar == 0 {
		return false
	}

	damping := c.Damping
	if damping <= 0 || damping > 1 {
		damping = 1
	}

	c.Azimuth += c.pendingAzimuth * damping
	c.Polar += c.pendingPolar * damping
	c.clampOrbit()

	c.pendingAzimuth *= 1 - damping
	c.pendingPolar *= 1 - damping

	// Snap tiny residuals so the camera comes to rest
	if absf(c.pendingAzimuth) < 1e-6 {
		c.pendingAzimuth = 0
	}
	if absf(c.pendingPolar) < 1e-6 {
		c.pendingPolar = 0
	}
	return true
}

// Position returns the camera eye in world coordinates.
func (c *Camera) Position() (x, y, z float32) {
	sinP, cosP := math.Sincos(float64(c.Polar))
	sinA, cosA := math.Sincos(float64(c.Azimuth))
	d := float64(c.Distance)
	x = c.TargetX + float32(d*sinP*sinA)
	y = c.TargetY + float32(d*cosP)
	z = c.TargetZ + float32(d*sinP*cosA)
	return x, y, z
}

// Settled reports whether all queued orbit motion has been applied.
func (c *Camera) Settled() bool {
	return c.pendingAzimuth == 0 && c.pendingPolar == 0
}

// Reset returns the camera to its initial orbit and drops pending motion.
func (c *Camera) Reset() {
	c.Azimuth = c.homeAzimuth
	c.Polar = c.homePolar
	c.Distance = c.homeDistance
	c.pendingAzimuth = 0
	c.pendingPolar = 0
}

func (c *Camera) clampOrbit() {
	c.Polar = clamp(c.Polar, polarEpsilon, math.Pi-polarEpsilon)
	if c.MaxDistance > c.MinDistance {
		c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp64(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
