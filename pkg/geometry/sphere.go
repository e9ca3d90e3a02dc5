package geometry

import (
	"math"

	"github.com/pgadula/raytracing/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Surface
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(surface Surface, radius float64) *Sphere {
	return &Sphere{Surface: surface, Radius: radius}
}

// Hit tests if a ray intersects with the sphere.
// Uses the geometric solution: project the center onto the ray and compare the
// squared closest-approach distance with the squared radius.
func (s *Sphere) Hit(ray core.Ray, sampler core.Sampler) (Intersection, bool) {
	toCenter := s.Position.Subtract(ray.Origin)
	projection := toCenter.Dot(ray.Direction)
	distanceSq := toCenter.LengthSquared() - projection*projection
	radiusSq := s.Radius * s.Radius

	if !(distanceSq <= radiusSq) {
		return Intersection{}, false
	}

	offset := math.Sqrt(radiusSq - distanceSq)
	t := projection - offset
	if t < 0 {
		// Origin inside the sphere: use the far root
		t = projection + offset
	}
	if t < 0 {
		return Intersection{}, false
	}

	return s.originRelativeHit(ray, t, sampler)
}

func (s *Sphere) Kind() Kind {
	return KindSphere
}

func (s *Sphere) Center() core.Vec3 {
	return s.Position
}

func (s *Sphere) WithPosition(p core.Vec3) Object {
	moved := *s
	moved.Position = p
	return &moved
}

// Validate rejects non-positive or non-finite radii
func (s *Sphere) Validate() error {
	if err := s.validate(KindSphere); err != nil {
		return err
	}
	if math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) || s.Radius <= 0 {
		return s.errorf(KindSphere, "radius must be positive, got %g", s.Radius)
	}
	return nil
}

func (s *Sphere) sealed() {}
