package model

// CubeMesh builds a unit-style cube centered on the origin with per-face
// normals, suitable for both the lit pipelines and the light-marker pipeline.
//
// Parameters:
//   - halfExtent: half the cube's edge length in world units
//
// Returns:
//   - []GPUVertex: 24 vertices, 4 per face
//   - []uint32: 36 triangle list indices
func CubeMesh(halfExtent float32) ([]GPUVertex, []uint32) {
	h := halfExtent
	vertices := []GPUVertex{
		// +Z face
		{Position: [3]float32{-h, -h, h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{h, -h, h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{h, h, h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-h, h, h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
		// -Z face
		{Position: [3]float32{h, -h, -h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-h, -h, -h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-h, h, -h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{h, h, -h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 0, -1}},
		// +X face
		{Position: [3]float32{h, -h, h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, -h, -h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, h, -h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, h, h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{1, 0, 0}},
		// -X face
		{Position: [3]float32{-h, -h, -h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, -h, h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, h, h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, h, -h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{-1, 0, 0}},
		// +Y face
		{Position: [3]float32{-h, h, h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, h, h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, h, -h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-h, h, -h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 1, 0}},
		// -Y face
		{Position: [3]float32{-h, -h, -h}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{h, -h, -h}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{h, -h, h}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{-h, -h, h}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, -1, 0}},
	}

	indices := make([]uint32, 0, 36)
	for face := uint32(0); face < 6; face++ {
		base := face * 4
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return vertices, indices
}

// PlaneMesh builds a flat XZ plane centered on the origin with its normal
// pointing up. Texture coordinates tile once per world unit so a small diffuse
// texture repeats across the surface.
//
// Parameters:
//   - halfWidth: half-size along X in world units
//   - halfDepth: half-size along Z in world units
//
// Returns:
//   - []GPUVertex: 4 vertices
//   - []uint32: 6 triangle list indices
func PlaneMesh(halfWidth, halfDepth float32) ([]GPUVertex, []uint32) {
	up := [3]float32{0, 1, 0}
	vertices := []GPUVertex{
		{Position: [3]float32{-halfWidth, 0, halfDepth}, TexCoord: [2]float32{0, 2 * halfDepth}, Normal: up},
		{Position: [3]float32{halfWidth, 0, halfDepth}, TexCoord: [2]float32{2 * halfWidth, 2 * halfDepth}, Normal: up},
		{Position: [3]float32{halfWidth, 0, -halfDepth}, TexCoord: [2]float32{2 * halfWidth, 0}, Normal: up},
		{Position: [3]float32{-halfWidth, 0, -halfDepth}, TexCoord: [2]float32{0, 0}, Normal: up},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return vertices, indices
}
