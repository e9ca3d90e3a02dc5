package core

import "math/rand"

// Sampler provides random numbers for rendering.
// Each goroutine owns its own Sampler; implementations need not be safe for
// concurrent use.
type Sampler interface {
	Get1D() float64
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// maxUnitVectorDraws bounds the rejection loop in RandomUnitVector
const maxUnitVectorDraws = 16

// RandomUnitVector draws a vector uniformly from [-1,1]^3, flips it onto the
// side of normal and normalizes it. Draws that are zero length or lie exactly
// in the tangent plane are redrawn; if every draw is degenerate the normalized
// normal is returned.
func RandomUnitVector(normal Vec3, sampler Sampler) Vec3 {
	for range maxUnitVectorDraws {
		u := sampler.Get3D()
		v := Vec3{X: u.X*2 - 1, Y: u.Y*2 - 1, Z: u.Z*2 - 1}

		d := normal.Dot(v)
		if d == 0 {
			continue
		}
		if d < 0 {
			v = v.Negate()
		}
		if unit, ok := v.TryNormalize(); ok {
			return unit
		}
	}
	return normal.Normalize()
}
