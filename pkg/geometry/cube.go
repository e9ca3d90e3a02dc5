package geometry

import (
	"math"

	"github.com/pgadula/raytracing/pkg/core"
)

const (
	// faceEpsilon is how close a hit point must be to a boundary to pick that face
	faceEpsilon = 1e-4
	// slabParallelEpsilon treats smaller direction components as parallel to a slab
	slabParallelEpsilon = 1e-12
)

// Cube is an axis-aligned box spanning Position to Position+Size.
// Size components may be negative. Roughness does not perturb cube normals.
type Cube struct {
	Surface
	Size core.Vec3
}

// NewCube creates a new axis-aligned box
func NewCube(surface Surface, size core.Vec3) *Cube {
	return &Cube{Surface: surface, Size: size}
}

// Bounds returns the min and max corners regardless of the sign of Size
func (c *Cube) Bounds() (core.Vec3, core.Vec3) {
	far := c.Position.Add(c.Size)
	return c.Position.Min(far), c.Position.Max(far)
}

// Hit tests the ray against the box using the slab method
func (c *Cube) Hit(ray core.Ray, sampler core.Sampler) (Intersection, bool) {
	lo, hi := c.Bounds()

	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		minB, maxB := lo.Axis(axis), hi.Axis(axis)
		if !(maxB > minB) {
			// Zero extent (or NaN) has no volume to hit
			return Intersection{}, false
		}

		origin := ray.Origin.Axis(axis)
		dir := ray.Direction.Axis(axis)
		if math.Abs(dir) < slabParallelEpsilon {
			// Parallel to this slab: either always inside it or never
			if origin < minB || origin > maxB {
				return Intersection{}, false
			}
			continue
		}

		t0 := (minB - origin) / dir
		t1 := (maxB - origin) / dir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = max(tMin, t0)
		tMax = min(tMax, t1)
	}

	if tMax < 0 || tMin > tMax {
		return Intersection{}, false
	}

	t := tMin
	if t < 0 {
		// Origin inside the box: exit through the far face
		t = tMax
	}
	if math.IsInf(t, 0) || math.IsNaN(t) {
		return Intersection{}, false
	}

	point := ray.At(t)
	if !point.IsFinite() {
		return Intersection{}, false
	}
	return Intersection{Point: point, Normal: faceNormal(point, lo, hi), T: t}, true
}

// faceNormal returns the outward axis normal of the face point lies on.
// When rounding leaves the point outside every epsilon band, the nearest face wins.
func faceNormal(point, lo, hi core.Vec3) core.Vec3 {
	axes := [3]core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}

	best := axes[0].Negate()
	bestDist := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		p := point.Axis(axis)

		if d := math.Abs(p - lo.Axis(axis)); d < bestDist {
			best, bestDist = axes[axis].Negate(), d
		}
		if d := math.Abs(p - hi.Axis(axis)); d < bestDist {
			best, bestDist = axes[axis], d
		}
		if bestDist < faceEpsilon {
			return best
		}
	}
	return best
}

func (c *Cube) Kind() Kind {
	return KindCube
}

// Center returns the middle of the box
func (c *Cube) Center() core.Vec3 {
	return c.Position.Add(c.Size.Multiply(0.5))
}

func (c *Cube) WithPosition(p core.Vec3) Object {
	moved := *c
	moved.Position = p
	return &moved
}

// Validate rejects boxes with zero or non-finite extent on any axis
func (c *Cube) Validate() error {
	if err := c.validate(KindCube); err != nil {
		return err
	}
	if !c.Size.IsFinite() || c.Size.X == 0 || c.Size.Y == 0 || c.Size.Z == 0 {
		return c.errorf(KindCube, "size must be finite and non-zero on every axis, got %v", c.Size)
	}
	return nil
}

func (c *Cube) sealed() {}
