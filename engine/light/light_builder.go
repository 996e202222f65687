package light

import "math"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithTarget is an option builder that sets the world-space point the light's
// shadow frustum aims at.
//
// Parameters:
//   - x: the x target component
//   - y: the y target component
//   - z: the z target component
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = [3]float32{x, y, z}
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithFOV is an option builder that sets the vertical field of view of the
// light's perspective shadow frustum.
//
// Parameters:
//   - fovDeg: vertical field of view in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the field of view option to a lightImpl
func WithFOV(fovDeg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.fovDeg = fovDeg
	}
}

// WithAspect is an option builder that sets the aspect ratio of the light's
// perspective shadow frustum. Shadow map layers are square, so this is 1.0
// unless the host deliberately stretches the frustum.
//
// Parameters:
//   - aspect: frustum aspect ratio (width / height)
//
// Returns:
//   - LightBuilderOption: a function that applies the aspect option to a lightImpl
func WithAspect(aspect float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.aspect = aspect
	}
}

// WithRange is an option builder that sets the near and far planes of the
// light's shadow frustum. Geometry outside this range never lands in the
// shadow map and therefore never occludes.
//
// Parameters:
//   - near: near plane distance (must be > 0 for perspective lights)
//   - far: far plane distance (must be > near)
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(near, far float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.near = near
		l.far = far
	}
}

// WithOrthographic is an option builder that switches the light to an
// orthographic shadow frustum, for directional-style lights.
//
// Parameters:
//   - halfExtent: half-size of the orthographic box in world units
//
// Returns:
//   - LightBuilderOption: a function that applies the orthographic option to a lightImpl
func WithOrthographic(halfExtent float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.projection = ProjectionOrthographic
		l.halfExtent = halfExtent
	}
}

// degToRad converts degrees to radians.
func degToRad(deg float32) float32 {
	return deg * math.Pi / 180.0
}

// absF32 returns the absolute value of a float32.
func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
