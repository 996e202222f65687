package model

import (
	"github.com/corbin-hale/lumen-go/engine/renderer/bind_group_provider"
	"github.com/corbin-hale/lumen-go/engine/renderer/material"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	renderMaterial        material.Material
	meshProvider          bind_group_provider.BindGroupProvider
	instanceProvider      bind_group_provider.BindGroupProvider
	instances             []Instance
	boundingRadius        float32
	vertexData, indexData []byte
	indexCount            int
}

// Model defines the interface for a renderable mesh.
// A Model is a GPU-ready container holding mesh data via a BindGroupProvider,
// an instance list flattened to a GPU buffer each frame, and the material that
// selects its lighting pipeline. The same model is rasterized by both the
// shadow depth passes and the lit pass.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider assigns the bind group provider for mesh GPU resources.
	//
	// Parameters:
	//   - provider: the mesh bind group provider to associate
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	// InstanceProvider retrieves the BindGroupProvider holding the per-instance
	// storage buffer, or nil before GPU initialization.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the instance provider, or nil
	InstanceProvider() bind_group_provider.BindGroupProvider

	// SetInstanceProvider assigns the bind group provider for per-instance data.
	//
	// Parameters:
	//   - provider: the instance bind group provider to associate
	SetInstanceProvider(provider bind_group_provider.BindGroupProvider)

	// Material retrieves the render-ready material for this model.
	//
	// Returns:
	//   - material.Material: the material, or nil if none was set
	Material() material.Material

	// SetMaterial replaces the render-ready material for this model.
	//
	// Parameters:
	//   - mat: the material to set
	SetMaterial(mat material.Material)

	// Instances retrieves the CPU-side instance placements.
	//
	// Returns:
	//   - []Instance: the instance list
	Instances() []Instance

	// SetInstances replaces the CPU-side instance placements. The new list
	// takes effect the next time instance data is flattened for the GPU.
	//
	// Parameters:
	//   - instances: the instances to set
	SetInstances(instances []Instance)

	// InstanceCount returns the number of instances drawn per draw call.
	//
	// Returns:
	//   - int: the instance count
	InstanceCount() int

	// VertexData returns the raw vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// SetVertexData sets the raw vertex data for this model's mesh.
	//
	// Parameters:
	//   - data: the vertex data to set
	SetVertexData(data []byte)

	// IndexData returns the raw index data for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// SetIndexData sets the raw index data for this model's mesh.
	//
	// Parameters:
	//   - data: the index data to set
	SetIndexData(data []byte)

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetIndexCount sets the number of indices in the model's mesh.
	//
	// Parameters:
	//   - count: the index count to set
	SetIndexCount(count int)

	// BoundingRadius returns the bounding sphere radius for this model,
	// measured as the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		instances: []Instance{NewInstance(0, 0, 0)},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}

func (m *model) InstanceProvider() bind_group_provider.BindGroupProvider {
	return m.instanceProvider
}

func (m *model) SetInstanceProvider(provider bind_group_provider.BindGroupProvider) {
	m.instanceProvider = provider
}

func (m *model) Material() material.Material {
	return m.renderMaterial
}

func (m *model) SetMaterial(mat material.Material) {
	m.renderMaterial = mat
}

func (m *model) Instances() []Instance {
	return m.instances
}

func (m *model) SetInstances(instances []Instance) {
	m.instances = instances
}

func (m *model) InstanceCount() int {
	return len(m.instances)
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) SetVertexData(data []byte) {
	m.vertexData = data
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) SetIndexData(data []byte) {
	m.indexData = data
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) SetIndexCount(count int) {
	m.indexCount = count
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
