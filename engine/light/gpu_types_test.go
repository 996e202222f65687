package light

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"
)

func TestGPULightLayout(t *testing.T) {
	var g GPULight
	if got := g.Size(); got != 96 {
		t.Fatalf("GPULight size = %d, want 96", got)
	}
	if off := unsafe.Offsetof(g.Position); off != 0 {
		t.Errorf("Position offset = %d, want 0", off)
	}
	if off := unsafe.Offsetof(g.Color); off != 16 {
		t.Errorf("Color offset = %d, want 16", off)
	}
	if off := unsafe.Offsetof(g.ViewProj); off != 32 {
		t.Errorf("ViewProj offset = %d, want 32", off)
	}
}

func TestGPULightMarshal(t *testing.T) {
	g := GPULight{
		Position: [3]float32{1, 2, 3},
		Color:    [3]float32{0.5, 0.25, 0.125},
	}
	for i := range g.ViewProj {
		g.ViewProj[i] = float32(i)
	}

	buf := g.Marshal()
	if len(buf) != 96 {
		t.Fatalf("marshal length = %d, want 96", len(buf))
	}

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
	}
	if readF32(0) != 1 || readF32(4) != 2 || readF32(8) != 3 {
		t.Error("position not at offset 0")
	}
	if binary.LittleEndian.Uint32(buf[12:16]) != 0 {
		t.Error("padding after position is not zero")
	}
	if readF32(16) != 0.5 || readF32(20) != 0.25 || readF32(24) != 0.125 {
		t.Error("color not at offset 16")
	}
	for i := 0; i < 16; i++ {
		if got := readF32(32 + i*4); got != float32(i) {
			t.Fatalf("view_proj[%d] = %v, want %v", i, got, float32(i))
		}
	}
}

func TestLightSetTruncation(t *testing.T) {
	tests := []struct {
		name      string
		numLights int
		wantCount int
	}{
		{"empty", 0, 0},
		{"one", 1, 1},
		{"at capacity", 10, 10},
		{"over capacity", 15, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lights := make([]Light, tt.numLights)
			for i := range lights {
				lights[i] = NewLight(WithPosition(float32(i), 1, 0))
			}

			set := NewLightSet()
			if got := set.SetLights(lights); got != tt.wantCount {
				t.Errorf("SetLights returned %d, want %d", got, tt.wantCount)
			}
			if got := set.Apply(); got != uint32(tt.wantCount) {
				t.Errorf("Apply returned %d, want %d", got, tt.wantCount)
			}
			if got := set.ActiveCount(); got != uint32(tt.wantCount) {
				t.Errorf("ActiveCount = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestLightSetTruncationKeepsFirstTen(t *testing.T) {
	lights := make([]Light, 12)
	for i := range lights {
		lights[i] = NewLight(WithPosition(float32(i), 5, 0))
	}

	set := NewLightSet()
	set.SetLights(lights)
	set.Apply()

	for i := 0; i < MaxLights; i++ {
		if got := set.Slot(i).Position[0]; got != float32(i) {
			t.Errorf("slot %d position x = %v, want %v", i, got, float32(i))
		}
	}
}

func TestLightSetStagedUntilApply(t *testing.T) {
	set := NewLightSet()
	set.SetLights([]Light{NewLight(WithColor(1, 0, 0))})
	set.Apply()

	// A new staging must not change what a pass would observe until the frame
	// boundary commits it.
	set.SetLights([]Light{
		NewLight(WithColor(0, 1, 0)),
		NewLight(WithColor(0, 0, 1)),
	})

	if got := set.ActiveCount(); got != 1 {
		t.Fatalf("ActiveCount before Apply = %d, want 1", got)
	}
	if got := set.Slot(0).Color; got != [3]float32{1, 0, 0} {
		t.Fatalf("slot 0 color before Apply = %v, want red", got)
	}

	if got := set.Apply(); got != 2 {
		t.Fatalf("Apply returned %d, want 2", got)
	}
	if got := set.Slot(0).Color; got != [3]float32{0, 1, 0} {
		t.Errorf("slot 0 color after Apply = %v, want green", got)
	}
	if got := set.Slot(1).Color; got != [3]float32{0, 0, 1} {
		t.Errorf("slot 1 color after Apply = %v, want blue", got)
	}
}

func TestLightSetApplyIdempotentWhenClean(t *testing.T) {
	set := NewLightSet()
	set.SetLights([]Light{NewLight()})
	if got := set.Apply(); got != 1 {
		t.Fatalf("first Apply = %d, want 1", got)
	}
	if got := set.Apply(); got != 1 {
		t.Errorf("second Apply = %d, want 1", got)
	}
}

func TestMarshalCount(t *testing.T) {
	set := NewLightSet()
	set.SetLights([]Light{NewLight(), NewLight(), NewLight()})
	set.Apply()

	buf := set.MarshalCount()
	if len(buf) != 4 {
		t.Fatalf("count buffer length = %d, want 4", len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
}

func TestMarshalLightsFixedSize(t *testing.T) {
	set := NewLightSet()
	set.SetLights([]Light{NewLight(WithPosition(7, 8, 9))})
	set.Apply()

	buf := set.MarshalLights()
	if len(buf) != MaxLights*96 {
		t.Fatalf("lights buffer length = %d, want %d", len(buf), MaxLights*96)
	}
	// Slot 0 holds the committed light.
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])); got != 7 {
		t.Errorf("slot 0 position x = %v, want 7", got)
	}
}

func TestMarshalLightsDeterministic(t *testing.T) {
	lights := []Light{
		NewLight(WithPosition(1, 2, 3), WithColor(1, 0, 0)),
		NewLight(WithPosition(-4, 5, 6), WithColor(0, 1, 0), WithFOV(90)),
	}

	a := NewLightSet()
	a.SetLights(lights)
	a.Apply()
	b := NewLightSet()
	b.SetLights(lights)
	b.Apply()

	bufA, bufB := a.MarshalLights(), b.MarshalLights()
	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("byte %d differs between identical sets", i)
		}
	}
	if string(a.MarshalCount()) != string(b.MarshalCount()) {
		t.Error("count buffers differ between identical sets")
	}
}

func TestMarshalSlotMatchesLightArray(t *testing.T) {
	set := NewLightSet()
	set.SetLights([]Light{
		NewLight(WithPosition(0, 10, 0)),
		NewLight(WithPosition(5, 10, 5), WithColor(0.2, 0.4, 0.6)),
	})
	set.Apply()

	all := set.MarshalLights()
	slot1 := set.MarshalSlot(1)
	if len(slot1) != 96 {
		t.Fatalf("slot buffer length = %d, want 96", len(slot1))
	}
	for i := range slot1 {
		if slot1[i] != all[96+i] {
			t.Fatalf("slot 1 uniform byte %d differs from light array", i)
		}
	}
}
