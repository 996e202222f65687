package light

import (
	"math"
	"testing"
)

func TestProjectShadowBehindLight(t *testing.T) {
	l := NewLight(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	var vp [16]float32
	l.ViewProjection(vp[:])

	// A point behind the light produces w <= 0 and must be reported as not
	// visible, with no coordinates to sample.
	s := ProjectShadow(vp[:], 0, 0, 20)
	if s.Visible {
		t.Fatalf("point behind light reported visible: %+v", s)
	}
}

func TestProjectShadowCenterOfFrustum(t *testing.T) {
	l := NewLight(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	var vp [16]float32
	l.ViewProjection(vp[:])

	// The target sits on the frustum axis: it must project to the center of
	// the shadow map.
	s := ProjectShadow(vp[:], 0, 0, 0)
	if !s.Visible {
		t.Fatal("target not visible from light")
	}
	if math.Abs(float64(s.U-0.5)) > 1e-5 || math.Abs(float64(s.V-0.5)) > 1e-5 {
		t.Errorf("target projected to (%v, %v), want (0.5, 0.5)", s.U, s.V)
	}
	if s.Depth <= 0 || s.Depth >= 1 {
		t.Errorf("target depth = %v, want in (0, 1)", s.Depth)
	}
}

func TestProjectShadowYFlip(t *testing.T) {
	l := NewLight(WithPosition(0, 0, 10), WithTarget(0, 0, 0), WithFOV(90))
	var vp [16]float32
	l.ViewProjection(vp[:])

	// A point above the axis is up in clip space but must land in the upper
	// half of the texture, i.e. v < 0.5.
	up := ProjectShadow(vp[:], 0, 2, 0)
	if !up.Visible {
		t.Fatal("point above axis not visible")
	}
	if up.V >= 0.5 {
		t.Errorf("point above axis has v = %v, want < 0.5", up.V)
	}

	down := ProjectShadow(vp[:], 0, -2, 0)
	if !down.Visible {
		t.Fatal("point below axis not visible")
	}
	if down.V <= 0.5 {
		t.Errorf("point below axis has v = %v, want > 0.5", down.V)
	}
}

func TestProjectShadowDepthIncreasesWithDistance(t *testing.T) {
	l := NewLight(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	var vp [16]float32
	l.ViewProjection(vp[:])

	nearPoint := ProjectShadow(vp[:], 0, 0, 5)
	farPoint := ProjectShadow(vp[:], 0, 0, -5)
	if !nearPoint.Visible || !farPoint.Visible {
		t.Fatal("axis points not visible")
	}
	if nearPoint.Depth >= farPoint.Depth {
		t.Errorf("near depth %v >= far depth %v", nearPoint.Depth, farPoint.Depth)
	}
}

func TestViewProjectionStraightDown(t *testing.T) {
	// A light looking straight down must still produce a usable basis.
	l := NewLight(WithPosition(0, 10, 0), WithTarget(0, 0, 0))
	var vp [16]float32
	l.ViewProjection(vp[:])

	s := ProjectShadow(vp[:], 0, 0, 0)
	if !s.Visible {
		t.Fatal("target below light not visible")
	}
	if math.Abs(float64(s.U-0.5)) > 1e-5 || math.Abs(float64(s.V-0.5)) > 1e-5 {
		t.Errorf("target projected to (%v, %v), want (0.5, 0.5)", s.U, s.V)
	}
}

func TestViewProjectionOrthographic(t *testing.T) {
	l := NewLight(
		WithPosition(0, 20, 0),
		WithTarget(0, 0, 0),
		WithOrthographic(10),
		WithRange(1, 50),
	)
	var vp [16]float32
	l.ViewProjection(vp[:])

	// Under an orthographic projection, offset from the axis maps linearly.
	// Looking straight down with the X-axis up vector, world +z becomes the
	// map's horizontal axis.
	s := ProjectShadow(vp[:], 0, 0, 5)
	if !s.Visible {
		t.Fatal("offset point not visible")
	}
	if math.Abs(float64(s.U-0.75)) > 1e-4 {
		t.Errorf("offset point u = %v, want 0.75", s.U)
	}
}
