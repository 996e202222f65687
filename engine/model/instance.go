package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Instance is one CPU-side placement of a model: a translate-rotate-scale
// transform that is flattened into a GPUInstance every frame.
type Instance struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// NewInstance creates an instance at the given position with identity rotation
// and unit scale.
//
// Parameters:
//   - x, y, z: world-space position
//
// Returns:
//   - Instance: the new instance
func NewInstance(x, y, z float32) Instance {
	return Instance{
		Position: mgl32.Vec3{x, y, z},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// ModelMatrix computes the instance's column-major model-to-world matrix as
// translate * rotate * scale.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
func (i *Instance) ModelMatrix(out []float32) {
	m := mgl32.Translate3D(i.Position.X(), i.Position.Y(), i.Position.Z()).
		Mul4(i.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(i.Scale.X(), i.Scale.Y(), i.Scale.Z()))
	copy(out, m[:])
}

// GPUInstance flattens the instance into its GPU representation, computing the
// model matrix and deriving the normal matrix from it.
//
// Returns:
//   - GPUInstance: the GPU-aligned per-instance data
func (i *Instance) GPUInstance() GPUInstance {
	var g GPUInstance
	i.ModelMatrix(g.Model[:])
	g.SetNormalMatrix()
	return g
}

// NewInstanceGrid lays out rows x cols instances on the XZ plane centered on
// the origin, each rotated around its own position vector so the grid shows
// varied orientations. The instance at the exact center keeps the identity
// rotation since its position vector is degenerate as a rotation axis.
//
// Parameters:
//   - rows: instance count along Z
//   - cols: instance count along X
//   - spacing: world-space distance between neighboring instances
//
// Returns:
//   - []Instance: rows × cols instances in row-major order
func NewInstanceGrid(rows, cols int, spacing float32) []Instance {
	instances := make([]Instance, 0, rows*cols)
	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			pos := mgl32.Vec3{
				spacing * (float32(x) - float32(cols)/2),
				0,
				spacing * (float32(z) - float32(rows)/2),
			}

			rot := mgl32.QuatIdent()
			if pos.Len() > 0 {
				rot = mgl32.QuatRotate(float32(math.Pi/4), pos.Normalize())
			}

			instances = append(instances, Instance{
				Position: pos,
				Rotation: rot,
				Scale:    mgl32.Vec3{1, 1, 1},
			})
		}
	}
	return instances
}
