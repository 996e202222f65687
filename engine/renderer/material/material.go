package material

import (
	"github.com/corbin-hale/lumen-go/common"
	"github.com/corbin-hale/lumen-go/engine/renderer/bind_group_provider"
)

// LightingMode selects which lighting pipeline a material is shaded with.
type LightingMode int

const (
	// LightingShadowed shades with the multi-light accumulation pipeline,
	// weighting every light's contribution by its shadow map visibility.
	LightingShadowed LightingMode = iota

	// LightingSimple shades with the unshadowed single-light pipeline: light
	// slot 0 only, no visibility term. Cheaper, and useful to compare against
	// the shadowed result.
	LightingSimple
)

// material is the implementation of the Material interface.
type material struct {
	name              string
	lightingMode      LightingMode
	diffuseTexture    *common.ImportedTexture
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a render material: the diffuse texture a
// surface samples and the lighting pipeline it is shaded with.
//
// Surface properties (name, lighting mode, texture) are set at construction
// and are read-only through this interface. GPU resource references (pipeline
// key, bind group provider) are mutable so they can be configured during the
// scene's GPU-init phase.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// LightingMode retrieves the lighting pipeline selection for this material.
	//
	// Returns:
	//   - LightingMode: LightingShadowed or LightingSimple
	LightingMode() LightingMode

	// DiffuseTexture retrieves the diffuse/albedo texture data reference, or nil if none is set.
	// Materials without a texture are initialized with a 1x1 white texel so the
	// lighting term renders unmodified.
	//
	// Returns:
	//   - *common.ImportedTexture: the diffuse texture, or nil
	DiffuseTexture() *common.ImportedTexture

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults to the shadowed multi-light pipeline with no texture.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		lightingMode: LightingShadowed,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) LightingMode() LightingMode {
	return m.lightingMode
}

func (m *material) DiffuseTexture() *common.ImportedTexture {
	return m.diffuseTexture
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
