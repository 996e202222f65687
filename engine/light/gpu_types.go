package light

import (
	"encoding/binary"
	"math"
	"sync"
	"unsafe"
)

// MaxLights is the fixed capacity of the GPU light set. The lit shader, the
// shadow map array, and the light storage buffer are all sized against this
// constant; it can only change together with the WGSL sources.
const MaxLights = 10

// GPULight is the GPU-aligned representation of a single light source.
// Matches the WGSL Light struct layout exactly.
// Size: 96 bytes (std140 / WGSL aligned).
//
// Layout:
//
//	vec3<f32>   position   (12 bytes, offset  0) + 4 bytes pad
//	vec3<f32>   color      (12 bytes, offset 16) + 4 bytes pad
//	mat4x4<f32> view_proj  (64 bytes, offset 32)
type GPULight struct {
	Position [3]float32 // offset  0: world-space position
	_pad0    float32    // offset 12: padding to vec4 alignment
	Color    [3]float32 // offset 16: RGB color
	_pad1    float32    // offset 28: padding to vec4 alignment
	ViewProj [16]float32 // offset 32: light-space view-projection, column-major
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU
// upload. The same 96-byte block is used both as an element of the light
// storage buffer and as the per-slot uniform of a shadow depth pass.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 96)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], 0) // padding
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], 0) // padding
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[32+i*4:36+i*4], math.Float32bits(g.ViewProj[i]))
	}
	return buf
}

// ToGPULight converts a Light into its GPU-aligned representation, computing
// the light-space view-projection at conversion time.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	g := GPULight{
		Position: l.Position(),
		Color:    l.Color(),
	}
	l.ViewProjection(g.ViewProj[:])
	return g
}

// LightSet is the fixed-capacity set of lights the GPU evaluates each frame.
//
// Hosts may call SetLights at any time from any goroutine; the replacement is
// staged and becomes visible only when the render loop calls Apply at the next
// frame boundary. Within one frame every shadow pass and the lit pass observe
// the same committed set. Active lights always occupy slots [0, count)
// contiguously; slots at and past the count hold stale data that is never
// rendered into and never sampled.
type LightSet struct {
	mu sync.Mutex

	staged      [MaxLights]GPULight
	stagedCount uint32
	dirty       bool

	active      [MaxLights]GPULight
	activeCount uint32
}

// NewLightSet creates an empty LightSet.
//
// Returns:
//   - *LightSet: a set with zero active lights
func NewLightSet() *LightSet {
	return &LightSet{}
}

// SetLights stages a full replacement of the light set. Lights past the
// MaxLights capacity are dropped; truncation is defined degradation, not an
// error. The staged set does not affect rendering until Apply commits it.
//
// Parameters:
//   - lights: the replacement lights in slot order
//
// Returns:
//   - int: the number of lights staged after truncation
func (s *LightSet) SetLights(lights []Light) int {
	count := len(lights)
	if count > MaxLights {
		count = MaxLights
	}

	var staged [MaxLights]GPULight
	for i := 0; i < count; i++ {
		staged[i] = ToGPULight(lights[i])
	}

	s.mu.Lock()
	s.staged = staged
	s.stagedCount = uint32(count)
	s.dirty = true
	s.mu.Unlock()

	return count
}

// Apply commits the most recently staged set, making it the active set for
// every pass of the coming frame. When nothing was staged since the last call
// the active set is left untouched. Called by the render loop at the frame
// boundary, before any shadow pass is encoded.
//
// Returns:
//   - uint32: the active light count after the commit
func (s *LightSet) Apply() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.active = s.staged
		s.activeCount = s.stagedCount
		s.dirty = false
	}
	return s.activeCount
}

// ActiveCount returns the number of committed active lights.
//
// Returns:
//   - uint32: lights in [0, MaxLights]
func (s *LightSet) ActiveCount() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeCount
}

// Slot returns the committed GPU light in the given slot. Only slots below
// ActiveCount hold meaningful data.
//
// Parameters:
//   - i: slot index in [0, MaxLights)
//
// Returns:
//   - GPULight: the committed light for that slot
func (s *LightSet) Slot(i int) GPULight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[i]
}

// MarshalCount serializes the active light count as the 4-byte u32 uniform
// bound at binding 0 of the lighting bind group.
//
// Returns:
//   - []byte: 4-byte buffer ready for GPU upload
func (s *LightSet) MarshalCount() []byte {
	s.mu.Lock()
	count := s.activeCount
	s.mu.Unlock()

	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, count)
	return buf
}

// MarshalLights serializes all MaxLights slots as the light array bound at
// binding 1 of the lighting bind group. The full fixed-size array is always
// written so the GPU buffer never mixes data from two frames.
//
// Returns:
//   - []byte: 960-byte buffer ready for GPU upload
func (s *LightSet) MarshalLights() []byte {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	lightSize := (&GPULight{}).Size()
	buf := make([]byte, MaxLights*lightSize)
	for i := range active {
		copy(buf[i*lightSize:(i+1)*lightSize], active[i].Marshal())
	}
	return buf
}

// MarshalSlot serializes one committed slot as the 96-byte uniform consumed by
// that slot's shadow depth pass.
//
// Parameters:
//   - i: slot index in [0, ActiveCount())
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (s *LightSet) MarshalSlot(i int) []byte {
	s.mu.Lock()
	g := s.active[i]
	s.mu.Unlock()
	return g.Marshal()
}
