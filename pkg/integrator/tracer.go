package integrator

import (
	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/geometry"
)

// MaxDepth is the largest bounce budget a Tracer accepts
const MaxDepth = 64

// noSkip marks that no object is excluded from a hit search
const noSkip = -1

var (
	// OpaqueBlack is returned for misses in scenes that draw an opaque background
	OpaqueBlack = core.NewVec4(0, 0, 0, 1)
	// TransparentBlack is returned for misses in scenes with a transparent background
	TransparentBlack = core.NewVec4(0, 0, 0, 0)
)

// Tracer evaluates emission plus recursively reflected light.
//
// Objects are tested in list order and the first hit wins; there is no search
// for the nearest hit, so scenes rely on their construction order for
// occlusion. A bounce off an object excludes only that object from the next
// level.
type Tracer struct {
	objects []geometry.Object
	miss    core.Vec4
}

// NewTracer creates a tracer over objects. The slice is read, never modified.
func NewTracer(objects []geometry.Object, miss core.Vec4) *Tracer {
	return &Tracer{objects: objects, miss: miss}
}

// Objects returns the traversal order
func (t *Tracer) Objects() []geometry.Object {
	return t.objects
}

// Miss returns the color for rays that hit nothing
func (t *Tracer) Miss() core.Vec4 {
	return t.miss
}

// Trace returns the color seen along ray. Hits are opaque; misses return the
// configured miss color. depth < 0 returns emission without reflection.
func (t *Tracer) Trace(ray core.Ray, depth int, sampler core.Sampler) core.Vec4 {
	return t.trace(ray, min(depth, MaxDepth), noSkip, sampler)
}

func (t *Tracer) trace(ray core.Ray, depth, skip int, sampler core.Sampler) core.Vec4 {
	index, hit, ok := t.firstHit(ray, skip, sampler)
	if !ok {
		return t.miss
	}

	surface := t.objects[index].Material()
	color := surface.Emission
	if depth >= 0 {
		bounce := core.NewRay(hit.Point, hit.Normal)
		reflected := t.trace(bounce, depth-1, index, sampler).RGB()
		color = color.Add(reflected.MultiplyVec(surface.Reflectivity).Multiply(surface.ReflectionStrength))
	}
	return color.WithAlpha(1)
}

// firstHit returns the first object in list order that reports a finite hit,
// ignoring the object at skip
func (t *Tracer) firstHit(ray core.Ray, skip int, sampler core.Sampler) (int, geometry.Intersection, bool) {
	for i, obj := range t.objects {
		if i == skip {
			continue
		}
		hit, ok := obj.Hit(ray, sampler)
		if !ok {
			continue
		}
		if !hit.Point.IsFinite() || !hit.Normal.IsFinite() {
			continue
		}
		return i, hit, true
	}
	return noSkip, geometry.Intersection{}, false
}

// FirstHit returns the object a ray sees first and where it was hit, without
// following reflections
func (t *Tracer) FirstHit(ray core.Ray, sampler core.Sampler) (geometry.Object, geometry.Intersection, bool) {
	index, hit, ok := t.firstHit(ray, noSkip, sampler)
	if !ok {
		return nil, hit, false
	}
	return t.objects[index], hit, true
}
