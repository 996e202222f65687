package scene

import (
	"reflect"
	"strings"
	"testing"

	"github.com/corbin-hale/lumen-go/engine/camera"
	"github.com/corbin-hale/lumen-go/engine/light"
	"github.com/corbin-hale/lumen-go/engine/model"
	"github.com/corbin-hale/lumen-go/engine/renderer/pipeline"
	"github.com/corbin-hale/lumen-go/engine/renderer/shader"
)

func TestBuildPipelinesSet(t *testing.T) {
	pipelines := buildPipelines()

	byKey := make(map[string]pipeline.Pipeline, len(pipelines))
	for _, p := range pipelines {
		byKey[p.PipelineKey()] = p
	}

	tests := []struct {
		key          string
		pipelineType pipeline.PipelineType
		hasFragment  bool
	}{
		{PipelineKeyForwardLit, pipeline.PipelineTypeRender, true},
		{PipelineKeyForwardSimple, pipeline.PipelineTypeRender, true},
		{PipelineKeyShadowDepth, pipeline.PipelineTypeShadowDepth, false},
		{PipelineKeyLightMarker, pipeline.PipelineTypeRender, true},
	}
	if len(pipelines) != len(tests) {
		t.Fatalf("buildPipelines() returned %d pipelines, want %d", len(pipelines), len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p := byKey[tt.key]
			if p == nil {
				t.Fatalf("pipeline %q missing from set", tt.key)
			}
			if p.Type() != tt.pipelineType {
				t.Errorf("Type() = %v, want %v", p.Type(), tt.pipelineType)
			}
			if p.Shader(shader.ShaderTypeVertex) == nil {
				t.Error("vertex shader is nil")
			}
			if got := p.Shader(shader.ShaderTypeFragment) != nil; got != tt.hasFragment {
				t.Errorf("fragment shader present = %v, want %v", got, tt.hasFragment)
			}
		})
	}
}

func TestShadowPipelineBias(t *testing.T) {
	for _, p := range buildPipelines() {
		if p.PipelineKey() != PipelineKeyShadowDepth {
			continue
		}
		if got := p.DepthBias(); got != light.ShadowDepthBias {
			t.Errorf("DepthBias() = %d, want %d", got, light.ShadowDepthBias)
		}
		if got := p.DepthBiasSlopeScale(); got != light.ShadowDepthBiasSlopeScale {
			t.Errorf("DepthBiasSlopeScale() = %v, want %v", got, light.ShadowDepthBiasSlopeScale)
		}
		return
	}
	t.Fatal("shadow depth pipeline not found")
}

func TestBindGroupLayoutSizesMatchGPUTypes(t *testing.T) {
	if got, want := cameraBindGroupLayout().Entries[0].Buffer.MinBindingSize, uint64((&camera.GPUCameraUniform{}).Size()); got != want {
		t.Errorf("camera uniform MinBindingSize = %d, want %d", got, want)
	}
	if got, want := instanceBindGroupLayout().Entries[0].Buffer.MinBindingSize, uint64((&model.GPUInstance{}).Size()); got != want {
		t.Errorf("instance storage MinBindingSize = %d, want %d", got, want)
	}

	lightLayout := lightBindGroupLayout()
	if got := lightLayout.Entries[0].Buffer.MinBindingSize; got != 4 {
		t.Errorf("light count MinBindingSize = %d, want 4", got)
	}
	if got, want := lightLayout.Entries[1].Buffer.MinBindingSize, uint64(light.MaxLights*(&light.GPULight{}).Size()); got != want {
		t.Errorf("light array MinBindingSize = %d, want %d", got, want)
	}

	if got, want := shadowPassBindGroupLayout().Entries[0].Buffer.MinBindingSize, uint64((&light.GPULight{}).Size()); got != want {
		t.Errorf("shadow pass uniform MinBindingSize = %d, want %d", got, want)
	}
}

func TestLightLayoutSharedAcrossPipelines(t *testing.T) {
	var litFrag, markerVert shader.Shader
	for _, p := range buildPipelines() {
		switch p.PipelineKey() {
		case PipelineKeyForwardLit:
			litFrag = p.Shader(shader.ShaderTypeFragment)
		case PipelineKeyLightMarker:
			markerVert = p.Shader(shader.ShaderTypeVertex)
		}
	}
	if litFrag == nil || markerVert == nil {
		t.Fatal("expected pipelines not found")
	}

	// The lit pass binds the light set at group 3 and the marker pass at
	// group 1; both must use a structurally identical layout so one provider
	// serves both pipelines.
	litLights := litFrag.BindGroupLayoutDescriptor(3)
	markerLights := markerVert.BindGroupLayoutDescriptor(1)
	if !reflect.DeepEqual(litLights.Entries, markerLights.Entries) {
		t.Errorf("light bind group layouts differ:\nlit:    %+v\nmarker: %+v", litLights.Entries, markerLights.Entries)
	}
}

func TestMeshVertexLayout(t *testing.T) {
	layouts := meshVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("meshVertexLayout() returned %d buffers, want 1", len(layouts))
	}

	layout := layouts[0]
	if got, want := layout.ArrayStride, uint64((&model.GPUVertex{}).Size()); got != want {
		t.Errorf("ArrayStride = %d, want %d", got, want)
	}

	wantOffsets := []uint64{0, 12, 20}
	if len(layout.Attributes) != len(wantOffsets) {
		t.Fatalf("attribute count = %d, want %d", len(layout.Attributes), len(wantOffsets))
	}
	for i, attr := range layout.Attributes {
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, attr.Offset, wantOffsets[i])
		}
		if attr.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d shader location = %d, want %d", i, attr.ShaderLocation, i)
		}
	}
}

func TestShaderSourcesEmbedded(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		entries []string
	}{
		{"forward_lit", forwardLitSource, []string{"vs_main", "fs_main", "textureSampleCompare", "texture_depth_2d_array"}},
		{"forward_simple", forwardSimpleSource, []string{"vs_main", "fs_main"}},
		{"shadow_depth", shadowDepthSource, []string{"vs_main"}},
		{"light_marker", lightMarkerSource, []string{"vs_main", "fs_main"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.source == "" {
				t.Fatal("embedded source is empty")
			}
			for _, entry := range tt.entries {
				if !strings.Contains(tt.source, entry) {
					t.Errorf("source missing %q", entry)
				}
			}
		})
	}

	// The depth-only pass must not carry a fragment stage.
	if strings.Contains(shadowDepthSource, "@fragment") {
		t.Error("shadow depth shader declares a fragment entry point")
	}
}
