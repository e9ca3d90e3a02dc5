package scene

import (
	"fmt"
	"sort"

	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/geometry"
	"github.com/pgadula/raytracing/pkg/integrator"
)

type builtin struct {
	displayName string
	build       func() (*Scene, error)
}

var builtins = map[string]builtin{
	"default": {
		displayName: "Default Scene",
		build:       NewDefaultScene,
	},
	"mirrors": {
		displayName: "Mirrors",
		build:       NewMirrorsScene,
	},
	"cubes": {
		displayName: "Cubes",
		build:       NewCubesScene,
	},
	"pointer": {
		displayName: "Pointer Light",
		build:       NewPointerScene,
	},
	"single-sphere": {
		displayName: "Single Sphere",
		build:       NewSingleSphereScene,
	},
	"empty": {
		displayName: "Empty",
		build:       NewEmptyScene,
	},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the named built-in scene
func Create(name string) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return b.build()
}

// NewDefaultScene builds the three sphere preview scene: two small spheres in
// front of the camera lit by a distant emissive sphere below them.
func NewDefaultScene() (*Scene, error) {
	camera := geometry.NewCamera(core.NewVec3(0, 0, -1), 90, 0.5)

	objects := []geometry.Object{
		geometry.NewSphere(geometry.Surface{
			Name:               "left",
			Position:           core.NewVec3(0.5, 0, -2),
			Reflectivity:       core.NewVec3(0.8, 0.5, 0.5),
			Roughness:          1,
			ReflectionStrength: 0.9,
		}, 0.2),
		geometry.NewSphere(geometry.Surface{
			Name:               "center",
			Position:           core.NewVec3(0, 0, -2),
			Reflectivity:       core.NewVec3(0.5, 0.5, 0.5),
			Roughness:          1,
			ReflectionStrength: 0.9,
		}, 0.2),
		geometry.NewSphere(geometry.Surface{
			Name:               "light",
			Position:           core.NewVec3(0, -8, -12),
			Emission:           core.NewVec3(1, 0.5, 0.5),
			Reflectivity:       core.NewVec3(1, 1, 1),
			Roughness:          1,
			ReflectionStrength: 0.5,
		}, 0.3),
	}

	return New("default", camera, objects, DefaultRenderConfig(),
		WithDescription("Two rough reflective spheres lit by a small emissive sphere"),
		WithOrder(OrderFarToNear))
}

// NewPointerScene is the default scene with the light bound to the pointer
func NewPointerScene() (*Scene, error) {
	s, err := NewDefaultScene()
	if err != nil {
		return nil, err
	}

	return New("pointer", s.Camera, s.Objects, s.Render,
		WithDescription("Default scene with the light following the pointer"),
		WithOrder(OrderFarToNear),
		WithPointer(DefaultPointerBinding("light")))
}

// NewMirrorsScene creates reflective spheres above a floor plane
func NewMirrorsScene() (*Scene, error) {
	camera := geometry.NewCamera(core.NewVec3(0, 0, 0), 60, 1)

	objects := []geometry.Object{
		geometry.NewPlane(geometry.Surface{
			Name:               "floor",
			Position:           core.NewVec3(0, -0.5, 0),
			Reflectivity:       core.NewVec3(0.6, 0.6, 0.6),
			Roughness:          0.3,
			ReflectionStrength: 0.5,
		}, core.NewVec3(0, 1, 0)),
		geometry.NewSphere(geometry.Surface{
			Name:               "mirror",
			Position:           core.NewVec3(0, 0, -3),
			Reflectivity:       core.NewVec3(0.9, 0.9, 0.9),
			Roughness:          0.05,
			ReflectionStrength: 0.9,
		}, 0.5),
		geometry.NewSphere(geometry.Surface{
			Name:               "red",
			Position:           core.NewVec3(-1, 0, -4),
			Emission:           core.NewVec3(1, 0.2, 0.2),
			Reflectivity:       core.NewVec3(0.5, 0.5, 0.5),
			Roughness:          0.5,
			ReflectionStrength: 0.3,
		}, 0.5),
		geometry.NewSphere(geometry.Surface{
			Name:     "light",
			Position: core.NewVec3(0, 3, -4),
			Emission: core.NewVec3(1, 1, 1),
		}, 1),
	}

	cfg := DefaultRenderConfig()
	cfg.SamplesPerPixel = 2
	return New("mirrors", camera, objects, cfg,
		WithDescription("Reflective spheres over a rough floor plane"),
		WithOrder(OrderFarToNear))
}

// NewCubesScene creates two boxes, one of them built with a negative extent
func NewCubesScene() (*Scene, error) {
	camera := geometry.NewCamera(core.NewVec3(0, 0.5, 1), 70, 1)

	objects := []geometry.Object{
		geometry.NewCube(geometry.Surface{
			Name:               "blue",
			Position:           core.NewVec3(-1.5, -0.5, -4),
			Emission:           core.NewVec3(0.2, 0.4, 1),
			Reflectivity:       core.NewVec3(0.5, 0.5, 0.5),
			ReflectionStrength: 0.5,
		}, core.NewVec3(1, 1, 1)),
		geometry.NewCube(geometry.Surface{
			Name:               "orange",
			Position:           core.NewVec3(1.5, -0.5, -4),
			Emission:           core.NewVec3(1, 0.6, 0.2),
			Reflectivity:       core.NewVec3(0.5, 0.5, 0.5),
			ReflectionStrength: 0.5,
		}, core.NewVec3(-1, 1, 1)),
		geometry.NewSphere(geometry.Surface{
			Name:     "light",
			Position: core.NewVec3(0, 2, -5),
			Emission: core.NewVec3(1, 1, 1),
		}, 0.5),
		geometry.NewPlane(geometry.Surface{
			Name:               "floor",
			Position:           core.NewVec3(0, -0.5, 0),
			Reflectivity:       core.NewVec3(0.7, 0.7, 0.7),
			Roughness:          0.5,
			ReflectionStrength: 0.6,
		}, core.NewVec3(0, 1, 0)),
	}

	return New("cubes", camera, objects, DefaultRenderConfig(),
		WithDescription("Axis-aligned boxes, one with a negative extent, under a light"),
		WithOrder(OrderFarToNear))
}

// NewSingleSphereScene creates one red sphere straight ahead of the camera.
// The center pixel of an odd-sized image renders pure red with depth 0 and
// intensity 1.
func NewSingleSphereScene() (*Scene, error) {
	camera := geometry.NewCamera(core.Vec3{}, 90, 1)

	objects := []geometry.Object{
		geometry.NewSphere(geometry.Surface{
			Name:     "red",
			Position: core.NewVec3(0, 0, -2),
			Emission: core.NewVec3(1, 0, 0),
		}, 1),
	}

	cfg := DefaultRenderConfig()
	cfg.Width, cfg.Height = 101, 101
	cfg.MaxDepth = 0
	cfg.Intensity = 1
	return New("single-sphere", camera, objects, cfg,
		WithDescription("One red emissive sphere in front of the camera"))
}

// NewEmptyScene creates a scene with no objects and a transparent background
func NewEmptyScene() (*Scene, error) {
	cfg := DefaultRenderConfig()
	cfg.Miss = integrator.TransparentBlack
	return New("empty", geometry.NewCamera(core.Vec3{}, 90, 1), nil, cfg,
		WithDescription("No objects; every pixel is the miss color"))
}
