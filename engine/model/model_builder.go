package model

import (
	"github.com/corbin-hale/lumen-go/engine/renderer/bind_group_provider"
	"github.com/corbin-hale/lumen-go/engine/renderer/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh is an option builder that sets the model's geometry from typed
// vertex and index slices, marshalling the vertex data and computing the
// bounding radius in one step.
//
// Parameters:
//   - vertices: the mesh vertices
//   - indices: the triangle list indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(vertices []GPUVertex, indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = MarshalVertices(vertices)
		m.indexData = indicesToBytes(indices)
		m.indexCount = len(indices)
		m.boundingRadius = ComputeBoundingRadius(vertices)
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider for mesh GPU resources.
//
// Parameters:
//   - provider: the BindGroupProvider holding vertex/index buffers and bind group data
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}

// WithBoundingRadius is an option builder that manually sets the bounding sphere radius.
// Use this to override the auto-computed value from ComputeBoundingRadius when a manually
// tuned conservative bound is preferred.
//
// Parameters:
//   - radius: the bounding radius to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounding radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}

// WithMaterial is an option builder that sets the render-ready material for the Model.
//
// Parameters:
//   - mat: the material to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the material option to a model
func WithMaterial(mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.renderMaterial = mat
	}
}

// WithInstances is an option builder that sets the CPU-side instance placements.
//
// Parameters:
//   - instances: the instances to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the instances option to a model
func WithInstances(instances []Instance) ModelBuilderOption {
	return func(m *model) {
		m.instances = instances
	}
}

// WithVertexData is an option builder that sets the raw vertex data for this model's mesh.
//
// Parameters:
//   - data: the vertex data to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertex data option to a model
func WithVertexData(data []byte) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = data
	}
}

// WithIndexData is an option builder that sets the raw index data for this model's mesh.
//
// Parameters:
//   - data: the index data to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the index data option to a model
func WithIndexData(data []byte) ModelBuilderOption {
	return func(m *model) {
		m.indexData = data
	}
}

// WithIndexCount is an option builder that sets the number of indices in the model's mesh.
//
// Parameters:
//   - count: the index count to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the index count option to a model
func WithIndexCount(count int) ModelBuilderOption {
	return func(m *model) {
		m.indexCount = count
	}
}
