package geometry

import (
	"math"

	"github.com/pgadula/raytracing/pkg/core"
)

// parallelThreshold is the smallest |normal·direction| accepted as a hit
const parallelThreshold = 0.01

// Plane represents an infinite plane through Position
type Plane struct {
	Surface
	Normal core.Vec3 // Expected unit length
}

// NewPlane creates a new plane
func NewPlane(surface Surface, normal core.Vec3) *Plane {
	return &Plane{Surface: surface, Normal: normal}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, sampler core.Sampler) (Intersection, bool) {
	denominator := p.Normal.Dot(ray.Direction)

	// Near-parallel rays never hit
	if !(math.Abs(denominator) >= parallelThreshold) {
		return Intersection{}, false
	}

	t := p.Position.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !(t >= 0) {
		// Plane is behind the ray origin
		return Intersection{}, false
	}

	return p.originRelativeHit(ray, t, sampler)
}

func (p *Plane) Kind() Kind {
	return KindPlane
}

func (p *Plane) Center() core.Vec3 {
	return p.Position
}

func (p *Plane) WithPosition(pos core.Vec3) Object {
	moved := *p
	moved.Position = pos
	return &moved
}

// Validate rejects zero or non-finite normals
func (p *Plane) Validate() error {
	if err := p.validate(KindPlane); err != nil {
		return err
	}
	if _, ok := p.Normal.TryNormalize(); !ok {
		return p.errorf(KindPlane, "normal must be a non-zero finite vector, got %v", p.Normal)
	}
	return nil
}

func (p *Plane) sealed() {}
