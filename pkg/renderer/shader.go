package renderer

import (
	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/geometry"
	"github.com/pgadula/raytracing/pkg/integrator"
)

// ShaderConfig controls how a pixel is sampled
type ShaderConfig struct {
	MaxDepth        int     // Bounce budget passed to the integrator
	SamplesPerPixel int     // Traces averaged per call; values below 1 mean 1
	Intensity       float64 // Scale applied to the average before accumulation
}

// PixelShader computes one pixel's contribution for a frame
type PixelShader struct {
	camera     geometry.Camera
	integrator integrator.Integrator
	config     ShaderConfig
}

// NewPixelShader creates a shader that traces through camera with integ
func NewPixelShader(camera geometry.Camera, integ integrator.Integrator, config ShaderConfig) *PixelShader {
	if config.SamplesPerPixel < 1 {
		config.SamplesPerPixel = 1
	}
	return &PixelShader{camera: camera, integrator: integ, config: config}
}

// SamplesPerPixel returns the number of traces per Shade call
func (ps *PixelShader) SamplesPerPixel() int {
	return ps.config.SamplesPerPixel
}

// Shade traces the pixel at coord, averages the samples, scales them by the
// intensity and adds the result to frag. The returned alpha is always 1.
func (ps *PixelShader) Shade(frag core.Vec4, coord, viewport core.Vec2, sampler core.Sampler) core.Vec4 {
	ray := ps.camera.GetRay(coord, viewport)

	var sum core.Vec3
	for range ps.config.SamplesPerPixel {
		sum = sum.Add(ps.integrator.Trace(ray, ps.config.MaxDepth, sampler).RGB())
	}

	contribution := sum.Multiply(ps.config.Intensity / float64(ps.config.SamplesPerPixel))
	return frag.RGB().Add(contribution).WithAlpha(1)
}
