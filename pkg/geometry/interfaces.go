package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/pgadula/raytracing/pkg/core"
)

// ErrInvalidObject is wrapped by every Validate error
var ErrInvalidObject = errors.New("invalid object")

// Kind identifies the concrete primitive behind an Object
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindCube
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindCube:
		return "cube"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Intersection is the result of a successful hit test
type Intersection struct {
	Point  core.Vec3 // World-space hit location
	Normal core.Vec3 // Surface normal, already perturbed by roughness
	T      float64   // Distance along the ray
}

// Object is a scene primitive. The set of implementations is closed:
// *Sphere, *Plane and *Cube.
type Object interface {
	// Hit tests the ray against the primitive. A miss is (Intersection{}, false).
	Hit(ray core.Ray, sampler core.Sampler) (Intersection, bool)
	// Material returns the shared surface attributes
	Material() *Surface
	Kind() Kind
	// WithPosition returns a copy moved to p
	WithPosition(p core.Vec3) Object
	// Center is the point used for depth ordering
	Center() core.Vec3
	Validate() error

	sealed()
}

// Surface holds the attributes shared by every primitive
type Surface struct {
	Name               string    // Optional identifier, used by pointer bindings
	Position           core.Vec3 // Sphere center, point on plane or cube corner
	Emission           core.Vec3 // Self-illumination color
	Reflectivity       core.Vec3 // Per-channel attenuation of the reflected color
	Roughness          float64   // Scale of the random normal perturbation
	ReflectionStrength float64   // Scale of the reflected contribution
}

// Material returns the surface itself so embedding types satisfy Object
func (s *Surface) Material() *Surface {
	return s
}

func (s *Surface) validate(kind Kind) error {
	if !s.Position.IsFinite() || !s.Emission.IsFinite() || !s.Reflectivity.IsFinite() {
		return s.errorf(kind, "position, emission and reflectivity must be finite")
	}
	if math.IsNaN(s.Roughness) || math.IsInf(s.Roughness, 0) || s.Roughness < 0 {
		return s.errorf(kind, "roughness must be a non-negative number, got %g", s.Roughness)
	}
	if math.IsNaN(s.ReflectionStrength) || math.IsInf(s.ReflectionStrength, 0) {
		return s.errorf(kind, "reflection strength must be finite, got %g", s.ReflectionStrength)
	}
	return nil
}

func (s *Surface) errorf(kind Kind, format string, args ...interface{}) error {
	name := s.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Errorf("%s %s: %s: %w", kind, name, fmt.Sprintf(format, args...), ErrInvalidObject)
}

// perturb adds the roughness-scaled random unit vector to normal.
// The result is not renormalized.
func (s *Surface) perturb(normal core.Vec3, sampler core.Sampler) core.Vec3 {
	if s.Roughness == 0 {
		return normal
	}
	return normal.Add(core.RandomUnitVector(normal, sampler).Multiply(s.Roughness))
}

// originRelativeHit builds the intersection used by spheres and planes: the
// normal points from the ray origin to the hit point, not away from the surface.
func (s *Surface) originRelativeHit(ray core.Ray, t float64, sampler core.Sampler) (Intersection, bool) {
	point := ray.At(t)
	normal, ok := point.Subtract(ray.Origin).TryNormalize()
	if !ok || !point.IsFinite() {
		return Intersection{}, false
	}

	normal = s.perturb(normal, sampler)
	if !normal.IsFinite() {
		return Intersection{}, false
	}
	return Intersection{Point: point, Normal: normal, T: t}, true
}
