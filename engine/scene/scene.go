// package scene owns the per-frame lifecycle of a rendered world: the models
// it draws, the light set it shades with, and the GPU resources (bind groups,
// shadow map array, pipelines) that connect them to the renderer. The engine
// drives each scene through three phases per frame: ApplyLights + Update
// commit state and upload buffers, PrepareShadows renders one depth layer per
// active light, and DrawCalls encodes the color passes.
package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/corbin-hale/lumen-go/common"
	"github.com/corbin-hale/lumen-go/engine/camera"
	"github.com/corbin-hale/lumen-go/engine/light"
	"github.com/corbin-hale/lumen-go/engine/logger"
	"github.com/corbin-hale/lumen-go/engine/model"
	"github.com/corbin-hale/lumen-go/engine/renderer"
	"github.com/corbin-hale/lumen-go/engine/renderer/bind_group_provider"
	"github.com/corbin-hale/lumen-go/engine/renderer/material"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer

	// models are the drawables of this scene, with instanceCaps holding the
	// GPU buffer capacity (in instances) allocated for each at AddModel time.
	models       []model.Model
	instanceCaps []int

	// lights is the staged/committed light set. lightsProvider binds the
	// committed count and array to the lit, simple, and marker pipelines.
	lights         *light.LightSet
	lightsProvider bind_group_provider.BindGroupProvider

	// Shadow map resources: one Depth32Float layer per light slot, rendered
	// through per-layer views and sampled through the array view.
	shadowResolution     int
	shadowLayerViews     []*wgpu.TextureView
	shadowArrayView      *wgpu.TextureView
	shadowTexture        *wgpu.Texture
	shadowSampleProvider bind_group_provider.BindGroupProvider
	shadowPassProviders  [light.MaxLights]bind_group_provider.BindGroupProvider

	// markerMesh holds the shared cube drawn at each light position when
	// markers are enabled.
	markersEnabled bool
	markerMesh     bind_group_provider.BindGroupProvider

	// updatePool fans the per-model instance flattening out across reusable
	// worker goroutines each frame.
	updateWorkers int
	updatePool    worker.DynamicWorkerPool

	// Reusable per-frame scratch, grown once and recycled to keep steady-state
	// frames allocation-free.
	instanceData       [][]byte
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider

	// pendingModels and pendingLights buffer builder options until GPU
	// resources exist; both are drained at the end of NewScene.
	pendingModels []model.Model
	pendingLights []light.Light

	log *zap.Logger
}

// Scene represents a renderable world the engine drives each frame. A scene
// owns its models, its light set, and the GPU resources binding them to the
// renderer; the engine invokes ApplyLights, Update, PrepareShadows, and
// DrawCalls in that order every frame the scene is active.
type Scene interface {
	// Name retrieves the scene identifier.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// SetName sets the scene identifier.
	//
	// Parameters:
	//   - name: the name to set
	SetName(name string)

	// Active reports whether the scene participates in the frame lifecycle.
	//
	// Returns:
	//   - bool: true when the scene is rendered
	Active() bool

	// SetActive enables or disables the scene's participation in the frame
	// lifecycle.
	//
	// Parameters:
	//   - active: true to render the scene
	SetActive(active bool)

	// Camera retrieves the scene camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// SetCamera replaces the scene camera.
	//
	// Parameters:
	//   - cam: the camera to set
	SetCamera(cam camera.Camera)

	// Renderer retrieves the renderer this scene draws through.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// SetRenderer replaces the renderer this scene draws through.
	//
	// Parameters:
	//   - r: the renderer to set
	SetRenderer(r renderer.Renderer)

	// Models retrieves the drawables registered with this scene.
	//
	// Returns:
	//   - []model.Model: a copy of the registered model list
	Models() []model.Model

	// AddModel registers a model with the scene, creating its GPU mesh
	// buffers, per-instance storage buffer, and material bind group. Models
	// without a material get a default white shadowed material. The instance
	// buffer is sized for the model's instance count at registration; later
	// growth past that capacity is truncated.
	//
	// Parameters:
	//   - m: the model to register (must carry vertex and index data)
	//
	// Returns:
	//   - error: error if GPU resource creation fails
	AddModel(m model.Model) error

	// BoundingRadius returns the radius of the sphere centered at the world
	// origin that encloses every registered model instance. Hosts use it to
	// fit light shadow frustum extents and placement to the scene's content.
	//
	// Returns:
	//   - float32: the world bounding radius, 0 for a scene with no models
	BoundingRadius() float32

	// SetLights stages a full replacement of the scene's light set. The
	// replacement is committed at the next frame boundary; lights past the
	// fixed capacity are dropped.
	//
	// Parameters:
	//   - lights: the replacement lights in slot order
	//
	// Returns:
	//   - int: the number of lights staged after truncation
	SetLights(lights []light.Light) int

	// ActiveLightCount reports the number of committed active lights.
	//
	// Returns:
	//   - uint32: lights in [0, capacity]
	ActiveLightCount() uint32

	// LightMarkersEnabled reports whether debug marker cubes are drawn at
	// active light positions.
	//
	// Returns:
	//   - bool: true when markers are drawn
	LightMarkersEnabled() bool

	// SetLightMarkers enables or disables the debug marker cubes drawn at
	// active light positions.
	//
	// Parameters:
	//   - enabled: true to draw markers
	SetLightMarkers(enabled bool)

	// ApplyLights commits the most recently staged light set and uploads the
	// committed count and light array to the GPU. Called by the engine at the
	// frame boundary, before any shadow pass is encoded, so every pass of the
	// frame shades from the same set.
	ApplyLights()

	// Update uploads the frame's CPU-derived GPU state: the camera uniform
	// and every model's flattened instance data. Instance flattening fans out
	// across the scene's worker pool; all resulting writes are coalesced into
	// a single renderer submission.
	Update()

	// PrepareShadows renders one depth-only pass per active light into that
	// light's shadow map layer. All passes are encoded into a single command
	// submission, so the lit pass never samples a half-written map. A scene
	// with zero active lights skips the shadow frame entirely.
	//
	// Returns:
	//   - error: error if the shadow command encoder could not be created
	PrepareShadows() error

	// DrawCalls encodes the scene's color draws into the renderer's current
	// frame: one instanced draw per model through its material's pipeline,
	// plus the light markers when enabled. Must be called between the
	// renderer's BeginFrame and EndFrame.
	//
	// Returns:
	//   - error: error if a draw call could not be encoded
	DrawCalls() error

	// Release frees the GPU resources owned by the scene: bind group
	// providers, the shadow map texture and its views. The scene must not be
	// rendered after Release.
	Release()
}

var _ Scene = &scene{}

// NewScene creates a Scene bound to a camera and renderer, registers the
// fixed pipeline set, and allocates the scene's GPU resources: the camera
// bind group, the light set buffers, the shadow map array with its per-slot
// pass uniforms, and the light marker mesh. Construction is a
// programming-error boundary: nil dependencies or GPU init failures panic.
//
// Parameters:
//   - name: the scene identifier, used in GPU resource labels and log fields
//   - cam: the scene camera (must not be nil)
//   - r: the renderer to draw through (must not be nil)
//   - options: variadic list of SceneBuilderOption functions to configure the scene
//
// Returns:
//   - Scene: the fully initialized scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: camera must not be nil")
	}
	if r == nil {
		panic("scene: renderer must not be nil")
	}

	s := &scene{
		mu:               &sync.RWMutex{},
		name:             name,
		active:           true,
		cam:              cam,
		r:                r,
		lights:           light.NewLightSet(),
		shadowResolution: light.ShadowMapResolution,
		updateWorkers:    max(runtime.NumCPU()-1, 1),
		log:              logger.Named("scene").With(zap.String("scene", name)),
	}
	for _, opt := range options {
		opt(s)
	}

	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)

	if err := r.RegisterPipelines(buildPipelines()...); err != nil {
		panic(errors.Wrapf(err, "scene %s: failed to register pipelines", name))
	}

	// Camera bind group — shared with other scenes using the same camera, so
	// only create the provider when the camera doesn't carry one yet.
	if cam.BindGroupProvider() == nil {
		cam.SetBindGroupProvider(bind_group_provider.NewBindGroupProvider(name + " Camera"))
	}
	if err := r.InitBindGroup(cam.BindGroupProvider(), cameraBindGroupLayout(), nil, nil); err != nil {
		panic(errors.Wrapf(err, "scene %s: failed to init camera bind group", name))
	}

	// Light set buffers: count uniform at binding 0, fixed-capacity light
	// array at binding 1.
	s.lightsProvider = bind_group_provider.NewBindGroupProvider(name + " Lights")
	if err := r.InitBindGroup(s.lightsProvider, lightBindGroupLayout(), nil, nil); err != nil {
		panic(errors.Wrapf(err, "scene %s: failed to init light bind group", name))
	}

	s.initShadowResources()
	s.initLightMarkerMesh()

	for _, m := range s.pendingModels {
		if err := s.AddModel(m); err != nil {
			panic(errors.Wrapf(err, "scene %s: failed to add model %s", name, m.Name()))
		}
	}
	s.pendingModels = nil

	if len(s.pendingLights) > 0 {
		s.lights.SetLights(s.pendingLights)
		s.pendingLights = nil
	}

	return s
}

// initShadowResources allocates the shadow map array (one Depth32Float layer
// per light slot), the PCF comparison sampler, the sampling bind group used
// by the lit pipeline, and the per-slot pass uniforms consumed by the shadow
// depth pipeline.
func (s *scene) initShadowResources() {
	layerViews, arrayView, tex, err := s.r.CreateShadowDepthTextureArray(s.shadowResolution, s.shadowResolution, light.MaxLights)
	if err != nil {
		panic(errors.Wrapf(err, "scene %s: failed to create shadow depth texture array", s.name))
	}
	s.shadowLayerViews = layerViews
	s.shadowArrayView = arrayView
	s.shadowTexture = tex

	sampler, err := s.r.CreateComparisonSampler()
	if err != nil {
		panic(errors.Wrapf(err, "scene %s: failed to create comparison sampler", s.name))
	}

	s.shadowSampleProvider = bind_group_provider.NewBindGroupProvider(s.name + " Shadow Maps")
	s.shadowSampleProvider.SetTextureView(0, arrayView)
	s.shadowSampleProvider.SetSampler(1, sampler)
	if err := s.r.InitBindGroup(s.shadowSampleProvider, shadowSampleBindGroupLayout(), nil, nil); err != nil {
		panic(errors.Wrapf(err, "scene %s: failed to init shadow sample bind group", s.name))
	}

	for i := range s.shadowPassProviders {
		p := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s Shadow Slot %d", s.name, i))
		if err := s.r.InitBindGroup(p, shadowPassBindGroupLayout(), nil, nil); err != nil {
			panic(errors.Wrapf(err, "scene %s: failed to init shadow pass bind group %d", s.name, i))
		}
		s.shadowPassProviders[i] = p
	}
}

// initLightMarkerMesh uploads the shared marker cube mesh. The marker
// pipeline positions it per-instance from the light storage buffer, so one
// mesh serves every light slot.
func (s *scene) initLightMarkerMesh() {
	markerModel := model.NewModel(
		model.WithName(s.name+" light marker"),
		model.WithMesh(model.CubeMesh(0.2)),
	)
	s.markerMesh = bind_group_provider.NewBindGroupProvider(s.name + " Light Marker Mesh")
	if err := s.r.InitMeshBuffers(s.markerMesh, markerModel.VertexData(), markerModel.IndexData(), markerModel.IndexCount()); err != nil {
		panic(errors.Wrapf(err, "scene %s: failed to init light marker mesh", s.name))
	}
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Models() []model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]model.Model, len(s.models))
	copy(cp, s.models)
	return cp
}

func (s *scene) AddModel(m model.Model) error {
	if m == nil {
		return errors.New("model must not be nil")
	}
	if len(m.VertexData()) == 0 || len(m.IndexData()) == 0 {
		return errors.Errorf("model %s has no mesh data", m.Name())
	}

	if m.MeshProvider() == nil {
		mp := bind_group_provider.NewBindGroupProvider(m.Name() + " Mesh")
		if err := s.r.InitMeshBuffers(mp, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
			return errors.Wrapf(err, "failed to init mesh buffers for model %s", m.Name())
		}
		m.SetMeshProvider(mp)
	}

	// Per-instance storage buffer sized for the instance count at
	// registration time. Later SetInstances growth past this is truncated.
	instanceCap := max(m.InstanceCount(), 1)
	instanceSize := (&model.GPUInstance{}).Size()
	ip := bind_group_provider.NewBindGroupProvider(m.Name() + " Instances")
	sizeOverrides := map[int]uint64{0: uint64(instanceCap * instanceSize)}
	if err := s.r.InitBindGroup(ip, instanceBindGroupLayout(), nil, sizeOverrides); err != nil {
		return errors.Wrapf(err, "failed to init instance bind group for model %s", m.Name())
	}
	m.SetInstanceProvider(ip)

	mat := m.Material()
	if mat == nil {
		mat = material.NewMaterial(material.WithName(m.Name() + " material"))
		m.SetMaterial(mat)
	}
	if err := s.initMaterial(mat); err != nil {
		return errors.Wrapf(err, "failed to init material for model %s", m.Name())
	}

	s.mu.Lock()
	s.models = append(s.models, m)
	s.instanceCaps = append(s.instanceCaps, instanceCap)
	s.instanceData = append(s.instanceData, nil)
	s.mu.Unlock()

	s.log.Info("model added",
		zap.String("model", m.Name()),
		zap.Int("instances", m.InstanceCount()),
		zap.String("pipeline", mat.PipelineKey()),
	)
	return nil
}

// initMaterial creates the material's diffuse texture, sampler, and bind
// group, and resolves its pipeline key from the lighting mode when the host
// didn't pin one. Materials without a texture get a 1x1 white texel so the
// lighting term renders unmodified.
func (s *scene) initMaterial(mat material.Material) error {
	if mat.PipelineKey() == "" {
		switch mat.LightingMode() {
		case material.LightingSimple:
			mat.SetPipelineKey(PipelineKeyForwardSimple)
		default:
			mat.SetPipelineKey(PipelineKeyForwardLit)
		}
	}

	if mat.BindGroupProvider() != nil {
		return nil
	}

	staging := common.WhiteTexture()
	var samplerStaging common.SamplerStagingData
	if tex := mat.DiffuseTexture(); tex != nil {
		pixels, width, height, err := tex.Decode()
		if err != nil {
			return errors.Wrapf(err, "failed to decode diffuse texture %s", tex.Name)
		}
		staging = common.TextureStagingData{Pixels: pixels, Width: width, Height: height}
		if tex.SamplerData != nil {
			samplerStaging = *tex.SamplerData
		}
	}

	provider := bind_group_provider.NewBindGroupProvider(mat.Name() + " Material")
	if err := s.r.InitTextureView(provider, 0, staging); err != nil {
		return errors.Wrap(err, "failed to init diffuse texture view")
	}
	if err := s.r.InitSampler(provider, 1, samplerStaging); err != nil {
		return errors.Wrap(err, "failed to init diffuse sampler")
	}
	if err := s.r.InitBindGroup(provider, materialBindGroupLayout(), nil, nil); err != nil {
		return errors.Wrap(err, "failed to init material bind group")
	}
	mat.SetBindGroupProvider(provider)
	return nil
}

func (s *scene) BoundingRadius() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return worldBoundingRadius(s.models)
}

func (s *scene) SetLights(lights []light.Light) int {
	staged := s.lights.SetLights(lights)
	if staged < len(lights) {
		s.log.Warn("light set truncated to capacity",
			zap.Int("requested", len(lights)),
			zap.Int("staged", staged),
		)
	}
	return staged
}

func (s *scene) ActiveLightCount() uint32 {
	return s.lights.ActiveCount()
}

func (s *scene) LightMarkersEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.markersEnabled
}

func (s *scene) SetLightMarkers(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markersEnabled = enabled
}

func (s *scene) ApplyLights() {
	s.lights.Apply()

	// The full fixed-size array is always written so the GPU buffer never
	// mixes slots from two different commits.
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.lightsProvider, Binding: 0, Data: s.lights.MarshalCount()},
		{Provider: s.lightsProvider, Binding: 1, Data: s.lights.MarshalLights()},
	})
}

func (s *scene) Update() {
	s.mu.RLock()
	models := s.models
	caps := s.instanceCaps
	s.mu.RUnlock()

	s.cam.Update()
	camUniform := camera.GPUCameraUniform{ViewProj: s.cam.ViewProjectionMatrix()}
	if ctrl := s.cam.Controller(); ctrl != nil {
		x, y, z := ctrl.Position()
		camUniform.CameraPosition = [3]float32{x, y, z}
	}

	// Parallel phase: flatten each model's instances to GPU bytes on the
	// worker pool. Tasks write disjoint slots of instanceData, and the
	// WaitGroup gives the per-frame barrier (pool.Wait blocks until workers
	// idle-exit, which is unsuitable for frame-rate workloads).
	instanceSize := (&model.GPUInstance{}).Size()
	var wg sync.WaitGroup
	for i := range models {
		if models[i].InstanceCount() == 0 {
			s.instanceData[i] = s.instanceData[i][:0]
			continue
		}

		wg.Add(1)
		idx := i
		mdl := models[i]
		capBytes := caps[i] * instanceSize
		s.updatePool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				data := marshalInstances(mdl.Instances())
				if len(data) > capBytes {
					data = data[:capBytes]
				}
				s.instanceData[idx] = data
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Serial phase: coalesce every write of the frame into one renderer
	// submission.
	writes := s.writePool[:0]
	writes = append(writes, bind_group_provider.BufferWrite{
		Provider: s.cam.BindGroupProvider(),
		Binding:  0,
		Data:     camUniform.Marshal(),
	})
	for i := range models {
		if len(s.instanceData[i]) == 0 {
			continue
		}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: models[i].InstanceProvider(),
			Binding:  0,
			Data:     s.instanceData[i],
		})
	}
	s.r.WriteBuffers(writes)
	s.writePool = writes
}

func (s *scene) PrepareShadows() error {
	count := int(s.lights.ActiveCount())
	if count == 0 {
		return nil
	}

	s.mu.RLock()
	models := s.models
	caps := s.instanceCaps
	s.mu.RUnlock()

	if err := s.r.BeginShadowFrame(); err != nil {
		return errors.Wrap(err, "failed to begin shadow frame")
	}

	for i := 0; i < count; i++ {
		// Each slot owns its pass uniform, so writes queued here land before
		// the single submission at EndShadowFrame without cross-pass clobber.
		s.r.WriteBuffers([]bind_group_provider.BufferWrite{
			{Provider: s.shadowPassProviders[i], Binding: 0, Data: s.lights.MarshalSlot(i)},
		})

		s.r.BeginShadowPass(s.shadowLayerViews[i])
		for j := range models {
			instances := min(models[j].InstanceCount(), caps[j])
			if instances == 0 {
				continue
			}
			bindGroups := []bind_group_provider.BindGroupProvider{
				s.shadowPassProviders[i],
				models[j].InstanceProvider(),
			}
			if err := s.r.ShadowDrawCall(PipelineKeyShadowDepth, models[j].MeshProvider(), uint32(instances), bindGroups); err != nil {
				s.log.Warn("shadow draw call failed",
					zap.String("model", models[j].Name()),
					zap.Int("light_slot", i),
					zap.Error(err),
				)
			}
		}
		s.r.EndShadowPass()
	}

	s.r.EndShadowFrame()
	return nil
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	models := s.models
	caps := s.instanceCaps
	markersEnabled := s.markersEnabled
	s.mu.RUnlock()

	bindGroups := s.drawBindGroupsPool
	for j := range models {
		mat := models[j].Material()
		if mat == nil || mat.BindGroupProvider() == nil {
			continue
		}
		instances := min(models[j].InstanceCount(), caps[j])
		if instances == 0 {
			continue
		}

		// Bind groups in group-index order: camera, instances, material,
		// lights, and the shadow maps for the shadowed pipeline.
		bindGroups = bindGroups[:0]
		bindGroups = append(bindGroups,
			s.cam.BindGroupProvider(),
			models[j].InstanceProvider(),
			mat.BindGroupProvider(),
			s.lightsProvider,
		)
		if mat.LightingMode() == material.LightingShadowed {
			bindGroups = append(bindGroups, s.shadowSampleProvider)
		}

		if err := s.r.DrawCall(mat.PipelineKey(), models[j].MeshProvider(), uint32(instances), bindGroups); err != nil {
			s.log.Warn("draw call failed",
				zap.String("model", models[j].Name()),
				zap.String("pipeline", mat.PipelineKey()),
				zap.Error(err),
			)
		}
	}
	s.drawBindGroupsPool = bindGroups

	if markersEnabled {
		if count := s.lights.ActiveCount(); count > 0 {
			markerGroups := []bind_group_provider.BindGroupProvider{
				s.cam.BindGroupProvider(),
				s.lightsProvider,
			}
			if err := s.r.DrawCall(PipelineKeyLightMarker, s.markerMesh, count, markerGroups); err != nil {
				s.log.Warn("light marker draw call failed", zap.Error(err))
			}
		}
	}

	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.models {
		if mp := m.MeshProvider(); mp != nil {
			mp.Release()
		}
		if ip := m.InstanceProvider(); ip != nil {
			ip.Release()
		}
		if mat := m.Material(); mat != nil && mat.BindGroupProvider() != nil {
			mat.BindGroupProvider().Release()
		}
	}
	s.models = nil
	s.instanceCaps = nil
	s.instanceData = nil

	if s.lightsProvider != nil {
		s.lightsProvider.Release()
	}
	if s.shadowSampleProvider != nil {
		s.shadowSampleProvider.Release()
	}
	for i := range s.shadowPassProviders {
		if s.shadowPassProviders[i] != nil {
			s.shadowPassProviders[i].Release()
		}
	}
	if s.markerMesh != nil {
		s.markerMesh.Release()
	}

	for _, v := range s.shadowLayerViews {
		if v != nil {
			v.Release()
		}
	}
	s.shadowLayerViews = nil
	if s.shadowArrayView != nil {
		s.shadowArrayView.Release()
		s.shadowArrayView = nil
	}
	if s.shadowTexture != nil {
		s.shadowTexture.Release()
		s.shadowTexture = nil
	}
}

// worldBoundingRadius returns the radius of the origin-centered sphere
// enclosing every instance of every model: each instance contributes its
// distance from the origin plus the model's mesh bounding radius stretched by
// the instance's largest scale component.
func worldBoundingRadius(models []model.Model) float32 {
	var radius float32
	for _, m := range models {
		meshRadius := m.BoundingRadius()
		for _, inst := range m.Instances() {
			scale := max(inst.Scale[0], inst.Scale[1], inst.Scale[2])
			if r := inst.Position.Len() + meshRadius*scale; r > radius {
				radius = r
			}
		}
	}
	return radius
}

// marshalInstances flattens an instance list into the contiguous byte layout
// of the per-instance storage buffer.
func marshalInstances(instances []model.Instance) []byte {
	size := (&model.GPUInstance{}).Size()
	buf := make([]byte, len(instances)*size)
	for i := range instances {
		g := instances[i].GPUInstance()
		copy(buf[i*size:(i+1)*size], g.Marshal())
	}
	return buf
}
