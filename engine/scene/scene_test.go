package scene

import (
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/corbin-hale/lumen-go/engine/light"
	"github.com/corbin-hale/lumen-go/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

func TestMarshalInstancesLayout(t *testing.T) {
	instances := []model.Instance{
		model.NewInstance(1, 2, 3),
		model.NewInstance(-4, 5, -6),
	}

	buf := marshalInstances(instances)
	size := (&model.GPUInstance{}).Size()
	if len(buf) != len(instances)*size {
		t.Fatalf("marshalInstances() length = %d, want %d", len(buf), len(instances)*size)
	}

	// Column-major model matrix stores the translation in elements 12-14.
	readFloat := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	for i, inst := range instances {
		base := i*size + 12*4
		for axis := 0; axis < 3; axis++ {
			got := readFloat(base + axis*4)
			want := inst.Position[axis]
			if got != want {
				t.Errorf("instance %d translation[%d] = %v, want %v", i, axis, got, want)
			}
		}
	}
}

func TestMarshalInstancesEmpty(t *testing.T) {
	if buf := marshalInstances(nil); len(buf) != 0 {
		t.Errorf("marshalInstances(nil) length = %d, want 0", len(buf))
	}
}

func TestWorldBoundingRadiusEmpty(t *testing.T) {
	if r := worldBoundingRadius(nil); r != 0 {
		t.Errorf("worldBoundingRadius(nil) = %v, want 0", r)
	}
}

func TestWorldBoundingRadius(t *testing.T) {
	// CubeMesh(1) puts its corners sqrt(3) from the mesh origin; the instance
	// offset adds its distance from the world origin on top.
	cubes := model.NewModel(
		model.WithMesh(model.CubeMesh(1)),
		model.WithInstances([]model.Instance{
			model.NewInstance(0, 0, 0),
			model.NewInstance(10, 0, 0),
		}),
	)
	ground := model.NewModel(
		model.WithMesh(model.PlaneMesh(3, 3)),
		model.WithInstances([]model.Instance{model.NewInstance(0, -2, 0)}),
	)

	got := worldBoundingRadius([]model.Model{cubes, ground})
	want := 10 + float32(math.Sqrt(3))
	if d := got - want; d < -1e-4 || d > 1e-4 {
		t.Errorf("worldBoundingRadius() = %v, want %v", got, want)
	}
}

func TestWorldBoundingRadiusScaledInstance(t *testing.T) {
	// The largest scale component stretches the mesh bound.
	inst := model.NewInstance(0, 4, 0)
	inst.Scale = mgl32.Vec3{2, 1, 1}
	m := model.NewModel(
		model.WithMesh(model.CubeMesh(1)),
		model.WithInstances([]model.Instance{inst}),
	)

	got := worldBoundingRadius([]model.Model{m})
	want := 4 + 2*float32(math.Sqrt(3))
	if d := got - want; d < -1e-4 || d > 1e-4 {
		t.Errorf("worldBoundingRadius() with scaled instance = %v, want %v", got, want)
	}
}

// blinnPhong mirrors the lit shader's per-fragment accumulation: an ambient
// floor of 0.1 plus each light's diffuse + specular contribution, weighted by
// that light's shadow visibility and normalized by the active light count.
func blinnPhong(normal, viewDir, fragPos [3]float32, lights []light.GPULight, visibility []float32) [3]float32 {
	lighting := [3]float32{0.1, 0.1, 0.1}
	count := float32(len(lights))

	for i, l := range lights {
		lightDir := normalize(sub(l.Position, fragPos))
		halfDir := normalize(add(lightDir, viewDir))
		diffuse := maxf(dot(normal, lightDir), 0)
		specular := float32(math.Pow(float64(maxf(dot(normal, halfDir), 0)), 32))

		for c := 0; c < 3; c++ {
			lighting[c] += visibility[i] * l.Color[c] * (diffuse + specular) / count
		}
	}
	return lighting
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func add(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func normalize(v [3]float32) [3]float32 {
	length := float32(math.Sqrt(float64(dot(v, v))))
	if length == 0 {
		return v
	}
	return [3]float32{v[0] / length, v[1] / length, v[2] / length}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func lightingApproxEq(a, b [3]float32, eps float32) bool {
	for c := 0; c < 3; c++ {
		d := a[c] - b[c]
		if d < 0 {
			d = -d
		}
		if d > eps {
			return false
		}
	}
	return true
}

func TestLightingZeroLightsAmbientOnly(t *testing.T) {
	got := blinnPhong([3]float32{0, 1, 0}, [3]float32{0, 1, 0}, [3]float32{0, 0, 0}, nil, nil)
	want := [3]float32{0.1, 0.1, 0.1}
	if got != want {
		t.Errorf("blinnPhong() with no lights = %v, want %v", got, want)
	}
}

func TestLightingFullyShadowedMatchesAmbient(t *testing.T) {
	lights := []light.GPULight{
		{Position: [3]float32{5, 10, 5}, Color: [3]float32{1, 1, 1}},
		{Position: [3]float32{-5, 10, -5}, Color: [3]float32{1, 0.5, 0.2}},
	}
	visibility := []float32{0, 0}

	got := blinnPhong([3]float32{0, 1, 0}, [3]float32{0, 1, 0}, [3]float32{0, 0, 0}, lights, visibility)
	want := [3]float32{0.1, 0.1, 0.1}
	if !lightingApproxEq(got, want, 1e-6) {
		t.Errorf("fully shadowed lighting = %v, want ambient %v", got, want)
	}
}

func TestLightingCountNormalization(t *testing.T) {
	// N identical fully visible lights must shade exactly like one: the
	// 1/count exposure normalization cancels the duplicated contributions.
	single := []light.GPULight{
		{Position: [3]float32{3, 8, 2}, Color: [3]float32{0.9, 0.8, 0.7}},
	}
	full := make([]light.GPULight, light.MaxLights)
	for i := range full {
		full[i] = single[0]
	}

	normal := [3]float32{0, 1, 0}
	viewDir := normalize([3]float32{0.2, 1, 0.3})
	fragPos := [3]float32{1, 0, -1}

	one := blinnPhong(normal, viewDir, fragPos, single, []float32{1})
	ten := blinnPhong(normal, viewDir, fragPos, full, []float32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1})

	if !lightingApproxEq(one, ten, 1e-5) {
		t.Errorf("exposure normalization broken: 1 light = %v, %d identical lights = %v", one, light.MaxLights, ten)
	}
}

func TestLightingPermutationInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	lights := make([]light.GPULight, 6)
	visibility := make([]float32, len(lights))
	for i := range lights {
		lights[i] = light.GPULight{
			Position: [3]float32{rng.Float32()*20 - 10, rng.Float32()*10 + 2, rng.Float32()*20 - 10},
			Color:    [3]float32{rng.Float32(), rng.Float32(), rng.Float32()},
		}
		visibility[i] = rng.Float32()
	}

	normal := normalize([3]float32{0.1, 1, -0.2})
	viewDir := normalize([3]float32{0.5, 0.8, 0.3})
	fragPos := [3]float32{2, 0, 3}

	want := blinnPhong(normal, viewDir, fragPos, lights, visibility)

	for trial := 0; trial < 5; trial++ {
		perm := rng.Perm(len(lights))
		shuffledLights := make([]light.GPULight, len(lights))
		shuffledVis := make([]float32, len(lights))
		for i, p := range perm {
			shuffledLights[i] = lights[p]
			shuffledVis[i] = visibility[p]
		}

		got := blinnPhong(normal, viewDir, fragPos, shuffledLights, shuffledVis)
		if !lightingApproxEq(got, want, 1e-5) {
			t.Fatalf("trial %d: permuted lighting = %v, want %v", trial, got, want)
		}
	}
}

func TestLightingSingleLightAboveSurface(t *testing.T) {
	// Light directly above a flat surface with the camera on the light axis:
	// diffuse is 1, specular is 1, so lighting = 0.1 + color * 2.
	lights := []light.GPULight{
		{Position: [3]float32{0, 10, 0}, Color: [3]float32{0.5, 0.5, 0.5}},
	}

	got := blinnPhong([3]float32{0, 1, 0}, [3]float32{0, 1, 0}, [3]float32{0, 0, 0}, lights, []float32{1})
	want := [3]float32{1.1, 1.1, 1.1}
	if !lightingApproxEq(got, want, 1e-4) {
		t.Errorf("overhead light shading = %v, want %v", got, want)
	}
}
