package scene

import (
	"github.com/corbin-hale/lumen-go/engine/light"
	"github.com/corbin-hale/lumen-go/engine/model"
)

// SceneBuilderOption is a functional option used to configure a Scene during construction.
type SceneBuilderOption func(*scene)

// WithActive sets whether the scene starts active. Inactive scenes skip the
// whole frame lifecycle until re-activated.
//
// Parameters:
//   - active: true to render the scene from the first frame
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithUpdateWorkers sets the number of worker goroutines used to flatten
// per-model instance data each frame. Values <= 0 keep the default
// (NumCPU - 1, minimum 1).
//
// Parameters:
//   - workers: worker goroutine count
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdateWorkers(workers int) SceneBuilderOption {
	return func(s *scene) {
		if workers > 0 {
			s.updateWorkers = workers
		}
	}
}

// WithShadowMapResolution sets the width and height in texels of each shadow
// map layer. Values <= 0 keep the default resolution.
//
// Parameters:
//   - resolution: shadow map layer size in texels
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowMapResolution(resolution int) SceneBuilderOption {
	return func(s *scene) {
		if resolution > 0 {
			s.shadowResolution = resolution
		}
	}
}

// WithModels registers models during scene construction. The models are added
// (and their GPU resources created) after the scene's own GPU init completes;
// a failure to add any of them panics, matching NewScene's construction-time
// error handling.
//
// Parameters:
//   - models: the models to register
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithModels(models ...model.Model) SceneBuilderOption {
	return func(s *scene) {
		s.pendingModels = append(s.pendingModels, models...)
	}
}

// WithLights stages the scene's initial light set during construction. The
// set is committed at the first frame boundary like any staged replacement.
//
// Parameters:
//   - lights: the initial lights in slot order
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.pendingLights = append(s.pendingLights, lights...)
	}
}

// WithLightMarkers enables the debug marker cubes drawn at each active
// light's position.
//
// Parameters:
//   - enabled: true to draw markers
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLightMarkers(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.markersEnabled = enabled
	}
}
