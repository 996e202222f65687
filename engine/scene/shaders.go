package scene

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/corbin-hale/lumen-go/engine/light"
	"github.com/corbin-hale/lumen-go/engine/renderer/pipeline"
	"github.com/corbin-hale/lumen-go/engine/renderer/shader"
)

// Pipeline keys for the scene's fixed pipeline set. Materials reference the
// lit and simple keys via their lighting mode; the shadow and marker keys are
// internal to the scene's frame phases.
const (
	// PipelineKeyForwardLit is the shadowed multi-light accumulation pipeline.
	PipelineKeyForwardLit = "forward_lit"

	// PipelineKeyForwardSimple is the unshadowed single-light pipeline.
	PipelineKeyForwardSimple = "forward_simple"

	// PipelineKeyShadowDepth is the depth-only shadow map pipeline.
	PipelineKeyShadowDepth = "shadow_depth"

	// PipelineKeyLightMarker is the debug pipeline drawing a marker cube at
	// each active light's position.
	PipelineKeyLightMarker = "light_marker"
)

//go:embed assets/forward_lit.wgsl
var forwardLitSource string

//go:embed assets/forward_simple.wgsl
var forwardSimpleSource string

//go:embed assets/shadow_depth.wgsl
var shadowDepthSource string

//go:embed assets/light_marker.wgsl
var lightMarkerSource string

// cameraBindGroupLayout describes group 0: the 80-byte camera uniform.
// Visible to both stages since the fragment shader reads the camera position
// for the specular half vector.
func cameraBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 80,
				},
			},
		},
	}
}

// instanceBindGroupLayout describes group 1: the read-only storage buffer of
// 112-byte per-instance blocks, indexed by instance_index in the vertex stage.
func instanceBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Instance Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: 112,
				},
			},
		},
	}
}

// materialBindGroupLayout describes group 2: the material's diffuse texture
// and its filtering sampler.
func materialBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Material Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// lightBindGroupLayout describes group 3 of the lit pipelines and group 1 of
// the marker pipeline: the active light count uniform and the fixed-capacity
// light storage array. Both bindings are visible to both stages so one
// provider (and one structurally identical layout) serves every pipeline
// that reads the committed light set.
func lightBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Light Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 4,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: uint64(light.MaxLights * 96),
				},
			},
		},
	}
}

// shadowSampleBindGroupLayout describes group 4 of the lit pipeline: the
// shadow map depth array and the comparison sampler used for PCF lookups.
func shadowSampleBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Shadow Sample Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2DArray,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeComparison,
				},
			},
		},
	}
}

// shadowPassBindGroupLayout describes group 0 of the shadow depth pipeline:
// the 96-byte uniform holding the light whose layer the pass renders into.
func shadowPassBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Shadow Pass Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 96,
				},
			},
		},
	}
}

// meshVertexLayout is the single interleaved vertex buffer layout shared by
// every pipeline: position, texcoord, normal in a tightly packed 32-byte
// stride, matching the GPUVertex marshal order.
func meshVertexLayout() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: 32,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2},
			},
		},
	}
}

// buildPipelines constructs the scene's fixed pipeline set with each stage's
// bind group layouts declared next to the WGSL that consumes them. The same
// layout constructors back every pipeline sharing a provider, so the layouts
// stay structurally identical across pipelines.
func buildPipelines() []pipeline.Pipeline {
	forwardLitVert := shader.NewShader("forward_lit_vert", shader.ShaderTypeVertex, forwardLitSource,
		shader.WithBindGroupLayoutDescriptor(0, cameraBindGroupLayout()),
		shader.WithBindGroupLayoutDescriptor(1, instanceBindGroupLayout()),
		shader.WithVertexLayout(0, meshVertexLayout()),
	)
	forwardLitFrag := shader.NewShader("forward_lit_frag", shader.ShaderTypeFragment, forwardLitSource,
		shader.WithBindGroupLayoutDescriptor(0, cameraBindGroupLayout()),
		shader.WithBindGroupLayoutDescriptor(2, materialBindGroupLayout()),
		shader.WithBindGroupLayoutDescriptor(3, lightBindGroupLayout()),
		shader.WithBindGroupLayoutDescriptor(4, shadowSampleBindGroupLayout()),
	)

	forwardSimpleVert := shader.NewShader("forward_simple_vert", shader.ShaderTypeVertex, forwardSimpleSource,
		shader.WithBindGroupLayoutDescriptor(0, cameraBindGroupLayout()),
		shader.WithBindGroupLayoutDescriptor(1, instanceBindGroupLayout()),
		shader.WithVertexLayout(0, meshVertexLayout()),
	)
	forwardSimpleFrag := shader.NewShader("forward_simple_frag", shader.ShaderTypeFragment, forwardSimpleSource,
		shader.WithBindGroupLayoutDescriptor(0, cameraBindGroupLayout()),
		shader.WithBindGroupLayoutDescriptor(2, materialBindGroupLayout()),
		shader.WithBindGroupLayoutDescriptor(3, lightBindGroupLayout()),
	)

	shadowDepthVert := shader.NewShader("shadow_depth_vert", shader.ShaderTypeVertex, shadowDepthSource,
		shader.WithBindGroupLayoutDescriptor(0, shadowPassBindGroupLayout()),
		shader.WithBindGroupLayoutDescriptor(1, instanceBindGroupLayout()),
		shader.WithVertexLayout(0, meshVertexLayout()),
	)

	lightMarkerVert := shader.NewShader("light_marker_vert", shader.ShaderTypeVertex, lightMarkerSource,
		shader.WithBindGroupLayoutDescriptor(0, cameraBindGroupLayout()),
		shader.WithBindGroupLayoutDescriptor(1, lightBindGroupLayout()),
		shader.WithVertexLayout(0, meshVertexLayout()),
	)
	lightMarkerFrag := shader.NewShader("light_marker_frag", shader.ShaderTypeFragment, lightMarkerSource)

	return []pipeline.Pipeline{
		pipeline.NewPipeline(PipelineKeyForwardLit, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(forwardLitVert),
			pipeline.WithFragmentShader(forwardLitFrag),
			pipeline.WithCullMode(wgpu.CullModeBack),
		),
		pipeline.NewPipeline(PipelineKeyForwardSimple, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(forwardSimpleVert),
			pipeline.WithFragmentShader(forwardSimpleFrag),
			pipeline.WithCullMode(wgpu.CullModeBack),
		),
		pipeline.NewPipeline(PipelineKeyShadowDepth, pipeline.PipelineTypeShadowDepth,
			pipeline.WithVertexShader(shadowDepthVert),
			pipeline.WithDepthBias(light.ShadowDepthBias, light.ShadowDepthBiasSlopeScale),
			pipeline.WithCullMode(wgpu.CullModeBack),
		),
		pipeline.NewPipeline(PipelineKeyLightMarker, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(lightMarkerVert),
			pipeline.WithFragmentShader(lightMarkerFrag),
			pipeline.WithCullMode(wgpu.CullModeBack),
		),
	}
}
