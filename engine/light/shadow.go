package light

// ShadowMapResolution is the default width and height in texels of each shadow
// map layer. Scenes use this as their initial value but can override it via
// configuration.
const ShadowMapResolution = 1024

// ShadowDepthBias is the constant rasterizer depth bias applied during shadow
// depth passes to reduce shadow acne.
const ShadowDepthBias int32 = 2

// ShadowDepthBiasSlopeScale is the slope-scaled rasterizer depth bias applied
// during shadow depth passes. Steeply tilted surfaces need a larger offset to
// avoid self-shadowing.
const ShadowDepthBiasSlopeScale float32 = 2.0

// ShadowSample is the host-side reference for projecting a world-space point
// into a light's shadow map layer. It mirrors the lit shader's shadow lookup:
// positions behind the light's projection plane (w <= 0) are fully shadowed,
// otherwise the clip-space position maps to texture coordinates with the
// vertical axis flipped (clip y up, texture v down).
type ShadowSample struct {
	// U, V are the shadow map texture coordinates in [0, 1] when the point
	// falls inside the light frustum.
	U, V float32
	// Depth is the light-space depth (z/w) compared against the stored map.
	Depth float32
	// Visible is false when w <= 0 and the point must be treated as fully
	// shadowed without any texture lookup.
	Visible bool
}

// ProjectShadow computes the shadow map coordinates of a world-space point
// under a light's view-projection matrix.
//
// Parameters:
//   - viewProj: the light's view-projection matrix (16 elements, column-major)
//   - x, y, z: world-space point
//
// Returns:
//   - ShadowSample: the projected coordinates, or Visible=false when w <= 0
func ProjectShadow(viewProj []float32, x, y, z float32) ShadowSample {
	cx := viewProj[0]*x + viewProj[4]*y + viewProj[8]*z + viewProj[12]
	cy := viewProj[1]*x + viewProj[5]*y + viewProj[9]*z + viewProj[13]
	cz := viewProj[2]*x + viewProj[6]*y + viewProj[10]*z + viewProj[14]
	cw := viewProj[3]*x + viewProj[7]*y + viewProj[11]*z + viewProj[15]

	if cw <= 0 {
		return ShadowSample{}
	}

	invW := 1.0 / cw
	return ShadowSample{
		U:       cx*invW*0.5 + 0.5,
		V:       cy*invW*-0.5 + 0.5,
		Depth:   cz * invW,
		Visible: true,
	}
}
