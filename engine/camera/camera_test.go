package camera

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"
)

func approxEq(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestGPUCameraUniformLayout(t *testing.T) {
	var u GPUCameraUniform

	if got := u.Size(); got != 80 {
		t.Fatalf("Size() = %d, want 80", got)
	}
	if off := unsafe.Offsetof(u.ViewProj); off != 0 {
		t.Errorf("ViewProj offset = %d, want 0", off)
	}
	if off := unsafe.Offsetof(u.CameraPosition); off != 64 {
		t.Errorf("CameraPosition offset = %d, want 64", off)
	}
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	u := GPUCameraUniform{
		CameraPosition: [3]float32{1, 2, 3},
	}
	for i := range u.ViewProj {
		u.ViewProj[i] = float32(i)
	}

	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("Marshal() length = %d, want 80", len(buf))
	}

	for i := range 16 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != float32(i) {
			t.Errorf("ViewProj[%d] = %v, want %v", i, got, float32(i))
		}
	}
	for i, want := range []float32{1, 2, 3} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[64+i*4:]))
		if got != want {
			t.Errorf("CameraPosition[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestControllerOrbitPosition(t *testing.T) {
	// elevation 0 and azimuth 0 put the camera on the +Z axis at radius distance.
	cc := NewCameraController(
		WithRadius(10),
		WithAzimuth(0),
		WithElevation(0),
		WithElevationBounds(0, float32(math.Pi/2-0.1)),
	)

	x, y, z := cc.Position()
	if !approxEq(x, 0, 1e-5) || !approxEq(y, 0, 1e-5) || !approxEq(z, 10, 1e-5) {
		t.Fatalf("Position() = (%v, %v, %v), want (0, 0, 10)", x, y, z)
	}

	// quarter turn moves the camera to the +X axis
	cc.SetAzimuth(float32(math.Pi / 2))
	x, y, z = cc.Position()
	if !approxEq(x, 10, 1e-4) || !approxEq(z, 0, 1e-4) {
		t.Fatalf("Position() after quarter turn = (%v, %v, %v), want (10, 0, 0)", x, y, z)
	}
}

func TestControllerZoomClamped(t *testing.T) {
	cc := NewCameraController(
		WithRadius(10),
		WithRadiusBounds(5, 20),
		WithZoomSpeed(1),
	)

	cc.Zoom(100) // zooming in is clamped at the minimum radius
	if got := cc.Radius(); got != 5 {
		t.Errorf("Radius() after zoom in = %v, want 5", got)
	}

	cc.Zoom(-100) // zooming out is clamped at the maximum radius
	if got := cc.Radius(); got != 20 {
		t.Errorf("Radius() after zoom out = %v, want 20", got)
	}
}

func TestControllerElevationClamped(t *testing.T) {
	cc := NewCameraController(
		WithElevationBounds(0.1, 1.0),
	)

	cc.SetElevation(5.0)
	if got := cc.Elevation(); got != 1.0 {
		t.Errorf("Elevation() = %v, want clamp to 1.0", got)
	}
	cc.SetElevation(-5.0)
	if got := cc.Elevation(); got != 0.1 {
		t.Errorf("Elevation() = %v, want clamp to 0.1", got)
	}
}

func TestControllerPanPreservesOffset(t *testing.T) {
	cc := NewCameraController(
		WithRadius(10),
		WithAzimuth(0),
		WithElevation(float32(math.Pi/6)),
	)

	px0, py0, pz0 := cc.Position()
	tx0, ty0, tz0 := cc.Target()

	cc.PanRight(3)
	cc.PanUp(-2)

	px1, py1, pz1 := cc.Position()
	tx1, ty1, tz1 := cc.Target()

	// panning shifts position and target by the same offset
	if !approxEq(px1-px0, tx1-tx0, 1e-5) ||
		!approxEq(py1-py0, ty1-ty0, 1e-5) ||
		!approxEq(pz1-pz0, tz1-tz0, 1e-5) {
		t.Fatalf("pan moved position and target by different offsets: pos delta (%v, %v, %v), target delta (%v, %v, %v)",
			px1-px0, py1-py0, pz1-pz0, tx1-tx0, ty1-ty0, tz1-tz0)
	}
}

func TestCameraUpdateComputesViewProjection(t *testing.T) {
	cc := NewCameraController(
		WithRadius(10),
		WithAzimuth(0),
		WithElevation(0),
		WithElevationBounds(0, 1),
	)
	cam := NewCamera(WithController(cc))

	vp := cam.ViewProjectionMatrix()
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if vp == identity {
		t.Fatal("ViewProjectionMatrix() is still identity after construction with a controller")
	}

	// moving the controller and updating must change the matrix
	cc.SetAzimuth(float32(math.Pi / 3))
	cam.Update()
	if cam.ViewProjectionMatrix() == vp {
		t.Fatal("ViewProjectionMatrix() unchanged after controller moved and Update() called")
	}
}
