package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/geometry"
	"github.com/pgadula/raytracing/pkg/integrator"
)

var (
	// ErrInvalidScene is wrapped by every scene configuration error
	ErrInvalidScene = errors.New("invalid scene")
	// ErrUnknownScene is returned by Create for names with no built-in scene
	ErrUnknownScene = errors.New("unknown scene")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Camera      geometry.Camera
	Objects     []geometry.Object // Traversal order; the first hit wins
	Render      RenderConfig
	Order       Order           // How Objects was ordered at construction
	Pointer     *PointerBinding // Optional object that follows the pointer
}

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width           int       // Image width
	Height          int       // Image height
	MaxDepth        int       // Bounce budget; -1 renders emission only
	SamplesPerPixel int       // Traces averaged per pixel per frame
	Intensity       float64   // Scale applied to each frame before accumulation
	Miss            core.Vec4 // Color for rays that hit nothing
}

// DefaultRenderConfig returns the preview settings used by the built-in scenes
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           300,
		Height:          300,
		MaxDepth:        5,
		SamplesPerPixel: 1,
		Intensity:       0.1,
		Miss:            integrator.OpaqueBlack,
	}
}

// Viewport returns the image size as a vector
func (c RenderConfig) Viewport() core.Vec2 {
	return core.NewVec2(float64(c.Width), float64(c.Height))
}

// Validate checks the render settings
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.MaxDepth < -1 || c.MaxDepth > integrator.MaxDepth {
		return fmt.Errorf("max depth must be in [-1, %d], got %d", integrator.MaxDepth, c.MaxDepth)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be at least 1, got %d", c.SamplesPerPixel)
	}
	if math.IsNaN(c.Intensity) || math.IsInf(c.Intensity, 0) || c.Intensity < 0 {
		return fmt.Errorf("intensity must be a non-negative number, got %g", c.Intensity)
	}
	if !c.Miss.IsFinite() {
		return fmt.Errorf("miss color must be finite, got %v", c.Miss)
	}
	return nil
}

// Option customizes a scene built by New
type Option func(*Scene)

// WithDescription sets the human readable description
func WithDescription(description string) Option {
	return func(s *Scene) {
		s.Description = description
	}
}

// WithOrder reorders the objects at construction
func WithOrder(order Order) Option {
	return func(s *Scene) {
		s.Order = order
	}
}

// WithPointer binds a named object to the pointer position
func WithPointer(binding PointerBinding) Option {
	return func(s *Scene) {
		s.Pointer = &binding
	}
}

// New validates the configuration and returns a scene whose objects are
// arranged according to its Order. The objects slice is copied.
func New(name string, camera geometry.Camera, objects []geometry.Object, cfg RenderConfig, opts ...Option) (*Scene, error) {
	s := &Scene{
		Name:    name,
		Camera:  camera,
		Objects: append([]geometry.Object(nil), objects...),
		Render:  cfg,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.Objects = s.Order.Apply(s.Objects, camera.Position)
	return s, nil
}

// Validate reports the first configuration error in the scene
func (s *Scene) Validate() error {
	if err := s.validate(); err != nil {
		return fmt.Errorf("scene %q: %w: %w", s.Name, ErrInvalidScene, err)
	}
	return nil
}

func (s *Scene) validate() error {
	if err := s.Camera.Validate(); err != nil {
		return err
	}
	if err := s.Render.Validate(); err != nil {
		return err
	}
	if _, err := ParseOrder(s.Order.String()); err != nil {
		return err
	}
	for i, obj := range s.Objects {
		if obj == nil {
			return fmt.Errorf("object %d is nil", i)
		}
		if err := obj.Validate(); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	if s.Pointer != nil {
		if err := s.Pointer.validate(s.Objects); err != nil {
			return err
		}
	}
	return nil
}

// Viewport returns the configured image size
func (s *Scene) Viewport() core.Vec2 {
	return s.Render.Viewport()
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// WithRender returns a copy of the scene using cfg. The receiver is unchanged.
func (s *Scene) WithRender(cfg RenderConfig) (*Scene, error) {
	clone := *s
	clone.Objects = append([]geometry.Object(nil), s.Objects...)
	clone.Render = cfg
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	return &clone, nil
}
