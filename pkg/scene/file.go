package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/geometry"
)

// SurfaceCfg is the JSON form of geometry.Surface
type SurfaceCfg struct {
	Name               string    `json:"name,omitempty"`
	Position           core.Vec3 `json:"position"`
	Emission           core.Vec3 `json:"emission"`
	Reflectivity       core.Vec3 `json:"reflectivity"`
	Roughness          float64   `json:"roughness"`
	ReflectionStrength float64   `json:"reflectionStrength"`
}

type SphereCfg struct {
	SurfaceCfg
	Radius float64 `json:"radius"`
}

type PlaneCfg struct {
	SurfaceCfg
	Normal core.Vec3 `json:"normal"`
}

type CubeCfg struct {
	SurfaceCfg
	Size core.Vec3 `json:"size"`
}

type CameraCfg struct {
	Position    core.Vec3 `json:"position"`
	FOV         float64   `json:"fov"`
	FocalLength float64   `json:"focalLength"`
}

// RenderCfg holds optional overrides of DefaultRenderConfig. Zero values
// keep the default, except MaxDepth which is a pointer so 0 and -1 can be set.
type RenderCfg struct {
	Width           int        `json:"width,omitempty"`
	Height          int        `json:"height,omitempty"`
	MaxDepth        *int       `json:"maxDepth,omitempty"`
	SamplesPerPixel int        `json:"samplesPerPixel,omitempty"`
	Intensity       float64    `json:"intensity,omitempty"`
	Miss            *core.Vec4 `json:"miss,omitempty"`
}

// Config is the JSON scene file format. Objects are listed by kind; spheres
// come first, then cubes, then planes, before Order is applied.
type Config struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Camera      CameraCfg       `json:"camera"`
	Render      RenderCfg       `json:"render"`
	Order       Order           `json:"order,omitempty"`
	Spheres     []SphereCfg     `json:"spheres,omitempty"`
	Planes      []PlaneCfg      `json:"planes,omitempty"`
	Cubes       []CubeCfg       `json:"cubes,omitempty"`
	Pointer     *PointerBinding `json:"pointer,omitempty"`
}

func (c SurfaceCfg) surface() geometry.Surface {
	return geometry.Surface{
		Name:               c.Name,
		Position:           c.Position,
		Emission:           c.Emission,
		Reflectivity:       c.Reflectivity,
		Roughness:          c.Roughness,
		ReflectionStrength: c.ReflectionStrength,
	}
}

// Build converts the render overrides into a full configuration
func (c RenderCfg) Build() RenderConfig {
	cfg := DefaultRenderConfig()
	if c.Width > 0 {
		cfg.Width = c.Width
	}
	if c.Height > 0 {
		cfg.Height = c.Height
	}
	if c.MaxDepth != nil {
		cfg.MaxDepth = *c.MaxDepth
	}
	if c.SamplesPerPixel > 0 {
		cfg.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.Intensity > 0 {
		cfg.Intensity = c.Intensity
	}
	if c.Miss != nil {
		cfg.Miss = *c.Miss
	}
	return cfg
}

// Build validates the configuration and creates the scene
func (c Config) Build() (*Scene, error) {
	var objects []geometry.Object
	for _, s := range c.Spheres {
		objects = append(objects, geometry.NewSphere(s.surface(), s.Radius))
	}
	for _, b := range c.Cubes {
		objects = append(objects, geometry.NewCube(b.surface(), b.Size))
	}
	for _, p := range c.Planes {
		objects = append(objects, geometry.NewPlane(p.surface(), p.Normal))
	}

	camera := geometry.NewCamera(c.Camera.Position, c.Camera.FOV, c.Camera.FocalLength)
	opts := []Option{WithDescription(c.Description), WithOrder(c.Order)}
	if c.Pointer != nil {
		opts = append(opts, WithPointer(*c.Pointer))
	}
	return New(c.Name, camera, objects, c.Render.Build(), opts...)
}

// Parse decodes a JSON scene
func Parse(data []byte) (*Scene, error) {
	cfg, err := decodeConfig(data)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}

// decodeConfig rejects unknown fields so typos in scene files are reported
func decodeConfig(data []byte) (Config, error) {
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(&cfg)
	return cfg, err
}

// LoadFile reads a JSON scene file. A file without a name takes its base
// name without extension.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	cfg, err := decodeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = fileID(path)
	}

	s, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}
	return s, nil
}
