package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/bohr/config"
)

func testCamera() *Camera {
	return New(config.CameraConfig{
		FOV:         60,
		Near:        0.1,
		Far:         1000,
		Position:    [3]float64{0, 2, 12},
		Damping:     0.05,
		MinDistance: 4,
		MaxDistance: 40,
		RotateSpeed: 0.005,
		ZoomSpeed:   0.95,
	}, 1280, 720)
}

func near(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestNew(t *testing.T) {
	cam := testCamera()

	x, y, z := cam.Position()
	if !near(x, 0, 1e-4) || !near(y, 2, 1e-4) || !near(z, 12, 1e-4) {
		t.Errorf("expected camera at (0, 2, 12), got (%f, %f, %f)", x, y, z)
	}
	if !near(cam.Aspect, 1280.0/720.0, 1e-6) {
		t.Errorf("expected aspect %f, got %f", 1280.0/720.0, cam.Aspect)
	}
}

func TestResize(t *testing.T) {
	cam := testCamera()

	testCases := []struct{ w, h, aspect float32 }{
		{800, 600, 800.0 / 600.0},
		{1920, 1080, 1920.0 / 1080.0},
		{300, 900, 300.0 / 900.0},
	}
	for _, tc := range testCases {
		cam.Resize(tc.w, tc.h)
		if !near(cam.Aspect, tc.aspect, 1e-6) {
			t.Errorf("Resize(%v, %v): aspect %f, want %f", tc.w, tc.h, cam.Aspect, tc.aspect)
		}
		// Idempotent
		cam.Resize(tc.w, tc.h)
		if !near(cam.Aspect, tc.aspect, 1e-6) {
			t.Errorf("second Resize(%v, %v) changed aspect to %f", tc.w, tc.h, cam.Aspect)
		}
	}

	// Zero height is ignored
	cam.Resize(500, 0)
	if cam.ViewportW != 300 {
		t.Errorf("zero-height resize should be ignored, viewport now %v", cam.ViewportW)
	}
}

func TestDampingConverges(t *testing.T) {
	cam := testCamera()
	start := cam.Azimuth

	cam.Rotate(-100, 0) // queue +0.5 rad of azimuth
	cam.Update()

	// First update applies only the damped share
	if !near(cam.Azimuth-start, 0.5*0.05, 1e-5) {
		t.Errorf("first step moved %f, want %f", cam.Azimuth-start, 0.5*0.05)
	}

	for range 1000 {
		if !cam.Update() {
			break
		}
	}
	if !cam.Settled() {
		t.Error("camera did not settle")
	}
	if !near(cam.Azimuth-start, 0.5, 1e-3) {
		t.Errorf("total rotation %f, want 0.5", cam.Azimuth-start)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := testCamera()

	cam.Zoom(1000)
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}

	cam.Zoom(-1000)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}
}

func TestPolarClamp(t *testing.T) {
	cam := testCamera()
	cam.Rotate(0, 1e6)
	for range 2000 {
		cam.Update()
	}
	if cam.Polar < polarEpsilon || cam.Polar > math.Pi-polarEpsilon {
		t.Errorf("polar %f escaped clamp", cam.Polar)
	}
}

func TestReset(t *testing.T) {
	cam := testCamera()
	az, pol, dist := cam.Azimuth, cam.Polar, cam.Distance

	cam.Rotate(50, 30)
	cam.Update()
	cam.Zoom(3)
	cam.Reset()

	if cam.Azimuth != az || cam.Polar != pol || cam.Distance != dist {
		t.Errorf("reset gave (%f, %f, %f), want (%f, %f, %f)",
			cam.Azimuth, cam.Polar, cam.Distance, az, pol, dist)
	}
	if !cam.Settled() {
		t.Error("reset should drop pending motion")
	}
}

func TestDistancePreservedByOrbit(t *testing.T) {
	cam := testCamera()
	cam.Rotate(200, -40)
	for range 100 {
		cam.Update()
	}
	x, y, z := cam.Position()
	d := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if !near(d, cam.Distance, 1e-3) {
		t.Errorf("eye distance %f, want %f", d, cam.Distance)
	}
}
