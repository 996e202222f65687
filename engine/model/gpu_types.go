package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/corbin-hale/lumen-go/common"
)

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly.
// Size: 32 bytes (tightly packed vertex buffer layout).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	TexCoord [2]float32 // offset 12: UV texture coordinate (8 bytes)
	Normal   [3]float32 // offset 20: vertex normal for lighting (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.TexCoord[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Normal[2]))
	return buf
}

// MarshalVertices serializes a vertex slice into one contiguous buffer for the
// mesh vertex buffer upload.
//
// Parameters:
//   - vertices: the vertices to serialize in order
//
// Returns:
//   - []byte: len(vertices) × 32 bytes ready for GPU upload.
func MarshalVertices(vertices []GPUVertex) []byte {
	size := (&GPUVertex{}).Size()
	buf := make([]byte, len(vertices)*size)
	for i := range vertices {
		copy(buf[i*size:(i+1)*size], vertices[i].Marshal())
	}
	return buf
}

// GPUInstance is the GPU-aligned per-instance data read by the vertex stages.
// It carries the model-to-world matrix and the normal matrix (the
// inverse-transpose of the model's upper-left 3x3) stored as three
// vec4-aligned columns, which is how WGSL lays out a mat3x3<f32>.
// Size: 112 bytes (std140 / WGSL aligned).
type GPUInstance struct {
	Model      [16]float32 // offset  0: 4x4 model-to-world transform, column-major (64 bytes)
	NormalMat0 [4]float32  // offset 64: normal matrix column 0 in xyz, w padding (16 bytes)
	NormalMat1 [4]float32  // offset 80: normal matrix column 1 in xyz, w padding (16 bytes)
	NormalMat2 [4]float32  // offset 96: normal matrix column 2 in xyz, w padding (16 bytes)
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 112-byte buffer ready for GPU upload.
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, 112)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	cols := [3][4]float32{g.NormalMat0, g.NormalMat1, g.NormalMat2}
	off := 64
	for _, col := range cols {
		for _, v := range col {
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
			off += 4
		}
	}
	return buf
}

// SetNormalMatrix derives the instance's normal matrix from its model matrix.
// Falls back to the model's upper-left 3x3 unchanged when the matrix is
// singular, so degenerate transforms stay renderable.
func (g *GPUInstance) SetNormalMatrix() {
	var n [9]float32
	if !common.NormalMatrix(n[:], g.Model[:]) {
		n = [9]float32{
			g.Model[0], g.Model[1], g.Model[2],
			g.Model[4], g.Model[5], g.Model[6],
			g.Model[8], g.Model[9], g.Model[10],
		}
	}
	g.NormalMat0 = [4]float32{n[0], n[1], n[2], 0}
	g.NormalMat1 = [4]float32{n[3], n[4], n[5], 0}
	g.NormalMat2 = [4]float32{n[6], n[7], n[8], 0}
}

// indicesToBytes serializes a uint32 index slice into a little-endian buffer
// owned by the caller.
func indicesToBytes(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], idx)
	}
	return buf
}

// ComputeBoundingRadius calculates the bounding sphere radius from a slice of
// vertex positions. The radius is the maximum distance from the origin across
// all vertices in the slice.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
