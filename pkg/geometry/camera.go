package geometry

import (
	"fmt"
	"math"

	"github.com/pgadula/raytracing/pkg/core"
)

// Camera is a pinhole camera looking down -Z
type Camera struct {
	Position    core.Vec3
	FOV         float64 // Vertical field of view in degrees
	FocalLength float64 // Distance from the eye to the projection plane
}

// NewCamera creates a camera
func NewCamera(position core.Vec3, fov, focalLength float64) Camera {
	return Camera{Position: position, FOV: fov, FocalLength: focalLength}
}

// Validate rejects cameras that cannot project rays
func (c Camera) Validate() error {
	if !c.Position.IsFinite() {
		return fmt.Errorf("camera position must be finite, got %v", c.Position)
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("camera fov must be in (0, 180) degrees, got %g", c.FOV)
	}
	if !(c.FocalLength > 0) || math.IsInf(c.FocalLength, 0) {
		return fmt.Errorf("camera focal length must be positive, got %g", c.FocalLength)
	}
	return nil
}

// GetRay projects a pixel coordinate to a world-space ray.
// coord is the pixel position with the origin at the bottom-left, viewport the
// image size in pixels.
func (c Camera) GetRay(coord, viewport core.Vec2) core.Ray {
	ndcX := toNDC(coord.X, viewport.X)
	ndcY := toNDC(coord.Y, viewport.Y)

	aspectRatio := viewport.X / viewport.Y
	halfHeight := math.Tan(c.FOV * math.Pi / 180 / 2)
	halfWidth := halfHeight * aspectRatio

	direction := core.NewVec3(ndcX*halfWidth, ndcY*halfHeight, -c.FocalLength).Normalize()
	return core.NewRay(c.Position, direction)
}

// toNDC maps [0, dimension-1] onto [-1, 1]; a single-pixel axis maps to 0
func toNDC(coord, dimension float64) float64 {
	if dimension <= 1 {
		return 0
	}
	return coord/(dimension-1)*2 - 1
}
