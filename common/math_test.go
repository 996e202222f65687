package common

import (
	"math"
	"testing"
)

// mulVec4 transforms a vec4 by a column-major 4x4 matrix.
func mulVec4(m []float32, v [4]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m[0*4+row]*v[0] + m[1*4+row]*v[1] + m[2*4+row]*v[2] + m[3*4+row]*v[3]
	}
	return out
}

func approxEq(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}

	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Errorf("identity * m = %v, want %v", out, m)
	}

	Mul4(out[:], m[:], id[:])
	if out != m {
		t.Errorf("m * identity = %v, want %v", out, m)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	// WebGPU clip space maps depth into [0, 1]: the near plane must land on
	// z/w = 0 and the far plane on z/w = 1.
	var proj [16]float32
	near, far := float32(0.1), float32(100.0)
	Perspective(proj[:], float32(math.Pi/4), 1.0, near, far)

	tests := []struct {
		name  string
		z     float32
		depth float32
	}{
		{"near plane", -near, 0.0},
		{"far plane", -far, 1.0},
	}
	for _, tt := range tests {
		clip := mulVec4(proj[:], [4]float32{0, 0, tt.z, 1})
		if clip[3] <= 0 {
			t.Fatalf("%s: w = %v, want > 0", tt.name, clip[3])
		}
		depth := clip[2] / clip[3]
		if !approxEq(depth, tt.depth, 1e-5) {
			t.Errorf("%s: depth = %v, want %v", tt.name, depth, tt.depth)
		}
	}
}

func TestOrthoDepthRange(t *testing.T) {
	var proj [16]float32
	Ortho(proj[:], -10, 10, -10, 10, 1, 50)

	nearClip := mulVec4(proj[:], [4]float32{0, 0, -1, 1})
	if !approxEq(nearClip[2], 0.0, 1e-6) {
		t.Errorf("near plane depth = %v, want 0", nearClip[2])
	}
	farClip := mulVec4(proj[:], [4]float32{0, 0, -50, 1})
	if !approxEq(farClip[2], 1.0, 1e-6) {
		t.Errorf("far plane depth = %v, want 1", farClip[2])
	}
	corner := mulVec4(proj[:], [4]float32{10, -10, -1, 1})
	if !approxEq(corner[0], 1.0, 1e-6) || !approxEq(corner[1], -1.0, 1e-6) {
		t.Errorf("corner = (%v, %v), want (1, -1)", corner[0], corner[1])
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	// A transform with rotation-ish terms, non-uniform scale, and translation.
	m := [16]float32{
		2, 0, 0, 0,
		0, 0, 3, 0,
		0, -1, 0, 0,
		4, 5, 6, 1,
	}
	var inv, out [16]float32
	if !Invert4(inv[:], m[:]) {
		t.Fatal("Invert4 reported singular for an invertible matrix")
	}
	Mul4(out[:], m[:], inv[:])

	var id [16]float32
	Identity(id[:])
	for i := range out {
		if !approxEq(out[i], id[i], 1e-5) {
			t.Fatalf("m * inv(m)[%d] = %v, want %v", i, out[i], id[i])
		}
	}
}

func TestInvert4Singular(t *testing.T) {
	var m, out [16]float32 // all zeros
	out[0] = 42
	if Invert4(out[:], m[:]) {
		t.Error("Invert4 returned true for a singular matrix")
	}
	if out[0] != 42 {
		t.Error("Invert4 modified the output for a singular matrix")
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// Model scales x by 2 and leaves y, z alone. A surface normal on a plane
	// tilted in xy must be transformed by inverse-transpose, not the model
	// matrix, to stay perpendicular.
	model := [16]float32{
		2, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		7, 8, 9, 1, // translation must not affect normals
	}
	var n [9]float32
	if !NormalMatrix(n[:], model[:]) {
		t.Fatal("NormalMatrix reported singular")
	}

	// inverse-transpose of diag(2,1,1) is diag(0.5,1,1)
	want := [9]float32{0.5, 0, 0, 0, 1, 0, 0, 0, 1}
	for i := range n {
		if !approxEq(n[i], want[i], 1e-6) {
			t.Fatalf("NormalMatrix[%d] = %v, want %v", i, n[i], want[i])
		}
	}
}

func TestNormalMatrixPreservesPerpendicularity(t *testing.T) {
	// Surface spanned by tangent (1, 1, 0) with normal (1, -1, 0)/sqrt(2),
	// under non-uniform scale diag(3, 1, 1).
	model := [16]float32{
		3, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	var n [9]float32
	if !NormalMatrix(n[:], model[:]) {
		t.Fatal("NormalMatrix reported singular")
	}

	tangent := [3]float32{3 * 1, 1, 0} // model * (1,1,0)
	normal := [3]float32{
		n[0]*1 + n[3]*-1 + n[6]*0,
		n[1]*1 + n[4]*-1 + n[7]*0,
		n[2]*1 + n[5]*-1 + n[8]*0,
	}
	dot := tangent[0]*normal[0] + tangent[1]*normal[1] + tangent[2]*normal[2]
	if !approxEq(dot, 0, 1e-5) {
		t.Errorf("transformed normal not perpendicular to transformed tangent: dot = %v", dot)
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 5, 3, -2, 0, 0, 0, 0, 1, 0)

	eye := mulVec4(view[:], [4]float32{5, 3, -2, 1})
	for i := 0; i < 3; i++ {
		if !approxEq(eye[i], 0, 1e-5) {
			t.Fatalf("view * eye = %v, want origin", eye)
		}
	}

	// The target must land on the negative z axis in view space.
	target := mulVec4(view[:], [4]float32{0, 0, 0, 1})
	if target[2] >= 0 {
		t.Errorf("target z in view space = %v, want < 0", target[2])
	}
	if !approxEq(target[0], 0, 1e-5) || !approxEq(target[1], 0, 1e-5) {
		t.Errorf("target xy in view space = (%v, %v), want (0, 0)", target[0], target[1])
	}
}

func TestSliceToBytesLength(t *testing.T) {
	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	if len(b) != 12 {
		t.Errorf("len = %d, want 12", len(b))
	}
	if SliceToBytes([]float32(nil)) != nil {
		t.Error("nil slice should produce nil bytes")
	}
}
