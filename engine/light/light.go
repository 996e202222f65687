package light

import (
	"github.com/corbin-hale/lumen-go/common"
)

// Projection identifies how a light's shadow frustum is built.
type Projection int

const (
	// ProjectionPerspective builds the light's view-projection from a
	// perspective frustum aimed at the target. Used for point-style and
	// spot-style lights.
	ProjectionPerspective Projection = iota

	// ProjectionOrthographic builds the light's view-projection from an
	// orthographic box aimed at the target. Used for directional-style
	// lights where parallel shadow rays are wanted.
	ProjectionOrthographic
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	projection Projection
	position   [3]float32
	target     [3]float32
	color      [3]float32
	fovDeg     float32
	aspect     float32
	near       float32
	far        float32
	halfExtent float32
}

// Light is a dynamic shadow-casting light source. Each light owns the full
// view-projection matrix used both to render its shadow depth layer and to
// project fragments into that layer during the lit pass.
//
// Lights are plain CPU-side values; the scene stages them into a LightSet and
// commits the set at the frame boundary.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Target returns the world-space point the light's shadow frustum aims at.
	//
	// Returns:
	//   - [3]float32: target as (x, y, z)
	Target() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// ViewProjection computes the light-space view-projection matrix: a LookAt
	// view from the light's position toward its target, composed with either a
	// perspective or orthographic projection using the WebGPU [0, 1] depth
	// convention. This single matrix drives the shadow depth pass and the
	// shadow sampling in the lit pass, so both always agree.
	//
	// Parameters:
	//   - out: destination slice (must be at least 16 elements, column-major)
	ViewProjection(out []float32)

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetTarget sets the point the light's shadow frustum aims at.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light with sensible defaults and any provided options
// applied. Defaults: white perspective light at (0, 10, 0) aimed at the origin
// with a 60 degree frustum covering [0.1, 100].
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		projection: ProjectionPerspective,
		position:   [3]float32{0, 10, 0},
		target:     [3]float32{0, 0, 0},
		color:      [3]float32{1, 1, 1},
		fovDeg:     60.0,
		aspect:     1.0,
		near:       0.1,
		far:        100.0,
		halfExtent: 40.0,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Target() [3]float32 {
	return l.target
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) ViewProjection(out []float32) {
	// If the light sits exactly on its target the view basis degenerates; nudge
	// the eye so LookAt stays well defined.
	eye := l.position
	if eye == l.target {
		eye[1] += 0.0001
	}

	// Up flips to the X axis when the light looks straight up or down.
	upX, upY, upZ := float32(0), float32(1), float32(0)
	dirX := l.target[0] - eye[0]
	dirY := l.target[1] - eye[1]
	dirZ := l.target[2] - eye[2]
	if absF32(dirX) < 1e-6 && absF32(dirZ) < 1e-6 && absF32(dirY) > 0 {
		upX, upY, upZ = 1, 0, 0
	}

	var view, proj [16]float32
	common.LookAt(view[:],
		eye[0], eye[1], eye[2],
		l.target[0], l.target[1], l.target[2],
		upX, upY, upZ,
	)

	switch l.projection {
	case ProjectionOrthographic:
		common.Ortho(proj[:], -l.halfExtent, l.halfExtent, -l.halfExtent, l.halfExtent, l.near, l.far)
	default:
		common.Perspective(proj[:], degToRad(l.fovDeg), l.aspect, l.near, l.far)
	}

	common.Mul4(out, proj[:], view[:])
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetTarget(x, y, z float32) {
	l.target = [3]float32{x, y, z}
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}
