package integrator

import "github.com/pgadula/raytracing/pkg/core"

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace returns the RGBA color carried back along ray with the given
	// bounce budget. The sampler must not be shared between goroutines.
	Trace(ray core.Ray, depth int, sampler core.Sampler) core.Vec4
}
