package scene

import (
	"fmt"

	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/geometry"
)

// PointerBinding moves a named object to follow the pointer. The object's
// new X and Y are pointer/viewport*Scale+Offset per axis; Z is kept.
type PointerBinding struct {
	Object string    `json:"object"`
	Scale  core.Vec2 `json:"scale"`
	Offset core.Vec2 `json:"offset"`
}

// DefaultPointerBinding maps the viewport onto [-1,-5] on both axes
func DefaultPointerBinding(object string) PointerBinding {
	return PointerBinding{
		Object: object,
		Scale:  core.NewVec2(-4, -4),
		Offset: core.NewVec2(-1, -1),
	}
}

func (p *PointerBinding) validate(objects []geometry.Object) error {
	if p.Object == "" {
		return fmt.Errorf("pointer binding needs an object name")
	}
	if !p.Scale.IsFinite() || !p.Offset.IsFinite() {
		return fmt.Errorf("pointer binding scale and offset must be finite")
	}
	for _, obj := range objects {
		if obj.Material().Name == p.Object {
			return nil
		}
	}
	return fmt.Errorf("pointer binding names unknown object %q", p.Object)
}

// Position maps a pointer position to world X and Y
func (p *PointerBinding) Position(pointer, viewport core.Vec2) (float64, float64) {
	x := pointer.X/viewport.X*p.Scale.X + p.Offset.X
	y := pointer.Y/viewport.Y*p.Scale.Y + p.Offset.Y
	return x, y
}

// ObjectsFor returns the objects to trace for one frame. Without a pointer
// or a binding the scene's own slice is returned. Otherwise the result is a
// new slice in which the bound objects are replaced by moved copies; the
// scene is never modified.
func (s *Scene) ObjectsFor(pointer *core.Vec2, viewport core.Vec2) []geometry.Object {
	if pointer == nil || s.Pointer == nil || viewport.X <= 0 || viewport.Y <= 0 {
		return s.Objects
	}

	x, y := s.Pointer.Position(*pointer, viewport)
	objects := make([]geometry.Object, len(s.Objects))
	for i, obj := range s.Objects {
		surface := obj.Material()
		if surface.Name != s.Pointer.Object {
			objects[i] = obj
			continue
		}
		objects[i] = obj.WithPosition(core.NewVec3(x, y, surface.Position.Z))
	}
	return objects
}
