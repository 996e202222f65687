package model

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGPUVertexLayout(t *testing.T) {
	var v GPUVertex
	if got := v.Size(); got != 32 {
		t.Fatalf("GPUVertex size = %d, want 32", got)
	}
	if off := unsafe.Offsetof(v.Position); off != 0 {
		t.Errorf("Position offset = %d, want 0", off)
	}
	if off := unsafe.Offsetof(v.TexCoord); off != 12 {
		t.Errorf("TexCoord offset = %d, want 12", off)
	}
	if off := unsafe.Offsetof(v.Normal); off != 20 {
		t.Errorf("Normal offset = %d, want 20", off)
	}
}

func TestGPUInstanceLayout(t *testing.T) {
	var g GPUInstance
	if got := g.Size(); got != 112 {
		t.Fatalf("GPUInstance size = %d, want 112", got)
	}
	if off := unsafe.Offsetof(g.NormalMat0); off != 64 {
		t.Errorf("NormalMat0 offset = %d, want 64", off)
	}
	if off := unsafe.Offsetof(g.NormalMat2); off != 96 {
		t.Errorf("NormalMat2 offset = %d, want 96", off)
	}
	if len(g.Marshal()) != 112 {
		t.Errorf("marshal length = %d, want 112", len(g.Marshal()))
	}
}

func TestSetNormalMatrixIdentity(t *testing.T) {
	var g GPUInstance
	for i := 0; i < 4; i++ {
		g.Model[i*4+i] = 1
	}
	g.SetNormalMatrix()

	want := [3][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
	got := [3][4]float32{g.NormalMat0, g.NormalMat1, g.NormalMat2}
	if got != want {
		t.Errorf("normal matrix of identity = %v, want %v", got, want)
	}
}

func TestSetNormalMatrixInverseTranspose(t *testing.T) {
	// Non-uniform scale diag(2, 1, 1): normal matrix must be diag(0.5, 1, 1),
	// not the model's own 3x3.
	var g GPUInstance
	g.Model[0] = 2
	g.Model[5] = 1
	g.Model[10] = 1
	g.Model[15] = 1
	g.SetNormalMatrix()

	if g.NormalMat0[0] != 0.5 {
		t.Errorf("normal matrix [0][0] = %v, want 0.5", g.NormalMat0[0])
	}
	if g.NormalMat1[1] != 1 || g.NormalMat2[2] != 1 {
		t.Errorf("normal matrix diagonal = (%v, %v), want (1, 1)", g.NormalMat1[1], g.NormalMat2[2])
	}
}

func TestSetNormalMatrixSingularFallback(t *testing.T) {
	// Zero scale collapses the 3x3; the fallback keeps the model's own values
	// so rendering continues instead of producing NaNs.
	var g GPUInstance
	g.SetNormalMatrix()
	if g.NormalMat0 != [4]float32{0, 0, 0, 0} {
		t.Errorf("singular fallback column 0 = %v, want zeros", g.NormalMat0)
	}
}

func TestInstanceGPUInstanceTranslation(t *testing.T) {
	inst := NewInstance(3, 4, 5)
	g := inst.GPUInstance()

	// Column-major: translation lives in elements 12..14.
	if g.Model[12] != 3 || g.Model[13] != 4 || g.Model[14] != 5 {
		t.Errorf("translation = (%v, %v, %v), want (3, 4, 5)",
			g.Model[12], g.Model[13], g.Model[14])
	}
	// Identity rotation and unit scale leave the normal matrix at identity.
	if g.NormalMat0[0] != 1 || g.NormalMat1[1] != 1 || g.NormalMat2[2] != 1 {
		t.Error("normal matrix of a pure translation is not identity")
	}
}

func TestMarshalVerticesRoundTrip(t *testing.T) {
	vertices := []GPUVertex{
		{Position: [3]float32{1, 2, 3}, TexCoord: [2]float32{0.5, 0.25}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-1, -2, -3}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 0, -1}},
	}
	buf := MarshalVertices(vertices)
	if len(buf) != 64 {
		t.Fatalf("buffer length = %d, want 64", len(buf))
	}

	// Second vertex's normal z at offset 32 + 28.
	got := math.Float32frombits(binary.LittleEndian.Uint32(buf[60:64]))
	if got != -1 {
		t.Errorf("second vertex normal z = %v, want -1", got)
	}
}

func TestNewInstanceGrid(t *testing.T) {
	instances := NewInstanceGrid(10, 10, 3.0)
	if len(instances) != 100 {
		t.Fatalf("instance count = %d, want 100", len(instances))
	}

	identity := 0
	for _, inst := range instances {
		if inst.Position.Len() == 0 {
			identity++
			if inst.Rotation != mgl32.QuatIdent() {
				t.Errorf("center instance rotation = %+v, want identity", inst.Rotation)
			}
		}
	}
	if identity != 1 {
		t.Errorf("grid has %d instances at the origin, want 1", identity)
	}
}

func TestCubeMesh(t *testing.T) {
	vertices, indices := CubeMesh(1)
	if len(vertices) != 24 {
		t.Errorf("cube vertex count = %d, want 24", len(vertices))
	}
	if len(indices) != 36 {
		t.Errorf("cube index count = %d, want 36", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			t.Fatalf("index %d out of range: %d", i, idx)
		}
	}
	if r := ComputeBoundingRadius(vertices); math.Abs(float64(r)-math.Sqrt(3)) > 1e-5 {
		t.Errorf("cube bounding radius = %v, want sqrt(3)", r)
	}
}

func TestPlaneMesh(t *testing.T) {
	vertices, indices := PlaneMesh(10, 10)
	if len(vertices) != 4 || len(indices) != 6 {
		t.Fatalf("plane mesh = %d vertices / %d indices, want 4 / 6", len(vertices), len(indices))
	}
	for _, v := range vertices {
		if v.Normal != [3]float32{0, 1, 0} {
			t.Errorf("plane normal = %v, want up", v.Normal)
		}
		if v.Position[1] != 0 {
			t.Errorf("plane vertex y = %v, want 0", v.Position[1])
		}
	}
}
